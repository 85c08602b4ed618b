package complaint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fixora-app/fixora/internal/domain/user"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
)

func studentIn(t *testing.T, id uint, hostel uservo.Hostel) user.Profile {
	t.Helper()
	return user.Profile{
		ID:           id,
		Name:         "student",
		Role:         user.Student(),
		Hostel:       hostel,
		Room:         "R1",
		HostelGender: hostel.Wing(),
	}
}

func wardenOf(t *testing.T, id uint, wing uservo.Wing) user.Profile {
	t.Helper()
	role, err := user.Warden(wing)
	require.NoError(t, err)
	return user.Profile{ID: id, Name: "warden", Role: role, HostelGender: wing}
}

func staffOf(t *testing.T, id uint, wing uservo.Wing) user.Profile {
	t.Helper()
	role, err := user.Staff(wing)
	require.NoError(t, err)
	return user.Profile{ID: id, Name: "staff", Role: role, HostelGender: wing}
}

func newSubmitted(t *testing.T, owner user.Profile, visibility string) *Complaint {
	t.Helper()
	c, err := NewComplaint(NewComplaintInput{
		Description: "Fan broken",
		Category:    "Electrical",
		Visibility:  visibility,
	}, owner)
	require.NoError(t, err)
	return c
}
