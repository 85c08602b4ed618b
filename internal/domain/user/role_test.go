package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input     string
		kind      RoleKind
		wing      vo.Wing
		canonical string
	}{
		{"student", RoleKindStudent, vo.WingUndefined, "student"},
		{"wardenMale", RoleKindWarden, vo.WingMale, "wardenMale"},
		{"wardenFemale", RoleKindWarden, vo.WingFemale, "wardenFemale"},
		{"wardenB", RoleKindWarden, vo.WingMale, "wardenMale"},
		{"wardenF", RoleKindWarden, vo.WingFemale, "wardenFemale"},
		{"staff", RoleKindStaff, vo.WingUndefined, "staff"},
		{"staffMale", RoleKindStaff, vo.WingMale, "staffMale"},
		{"staffFemale", RoleKindStaff, vo.WingFemale, "staffFemale"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			role, err := ParseRole(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, role.Kind())
			assert.Equal(t, tt.wing, role.Wing())
			assert.Equal(t, tt.canonical, role.String())
			assert.True(t, role.IsValid())
		})
	}
}

func TestParseRole_Rejects(t *testing.T) {
	for _, input := range []string{"", "warden", "admin", "Student", "staffmale"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRole(input)
			assert.Error(t, err)
		})
	}
}

func TestWarden_RequiresWing(t *testing.T) {
	_, err := Warden(vo.WingUndefined)
	assert.Error(t, err)
}

func TestRole_IsWingScoped(t *testing.T) {
	wardenMale, _ := Warden(vo.WingMale)
	staffFemale, _ := Staff(vo.WingFemale)
	staffAny, _ := Staff(vo.WingUndefined)

	assert.True(t, wardenMale.IsWingScoped())
	assert.True(t, staffFemale.IsWingScoped())
	assert.False(t, staffAny.IsWingScoped())
	assert.False(t, Student().IsWingScoped())
}

func TestRole_ZeroValueIsInvalid(t *testing.T) {
	var r Role
	assert.False(t, r.IsValid())
	assert.False(t, r.IsStudent())
	assert.False(t, r.IsWarden())
	assert.False(t, r.IsStaff())
	assert.Equal(t, "", r.String())
}
