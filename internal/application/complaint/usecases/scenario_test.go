package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

// TestComplaintLifecycle_EndToEnd walks one complaint from submission to
// fix: a vote and its retraction, approval freezing the tally, the fix and
// a late edit attempt by the owner.
func TestComplaintLifecycle_EndToEnd(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNopLogger()
	store := newMemStore()
	publisher := &mockEventPublisher{}

	create := NewCreateComplaintUseCase(store, nil, nil, publisher, log)
	vote := NewCastVoteUseCase(store, store, &mockTransactor{}, nil, nil, publisher, log)
	approve := NewApproveComplaintUseCase(store, nil, publisher, log)
	fix := NewMarkFixedUseCase(store, nil, publisher, log)
	edit := NewEditComplaintUseCase(store, store, nil, publisher, log)
	get := NewGetComplaintUseCase(store, store, nil, nil, nil, log)

	studentA := studentProfile(1, uservo.HostelBlockA)
	studentB := studentProfile(2, uservo.HostelBlockD)
	warden := wardenProfile(t, 3, uservo.WingMale)
	staff := staffProfile(t, 4, uservo.WingMale)

	created, err := create.Execute(ctx, CreateComplaintCommand{
		Submitter:   studentA,
		Description: "Fan broken",
		Category:    "Electrical",
		Visibility:  "public",
	})
	require.NoError(t, err)
	assert.Equal(t, "male", created.HostelType)
	assert.Equal(t, 0, created.Votes)

	voted, err := vote.Execute(ctx, CastVoteCommand{Viewer: studentB, SID: created.ID, Direction: "up"})
	require.NoError(t, err)
	assert.Equal(t, 1, voted.Votes)
	assert.Equal(t, "up", voted.Direction)

	voted, err = vote.Execute(ctx, CastVoteCommand{Viewer: studentB, SID: created.ID, Direction: "up"})
	require.NoError(t, err)
	assert.Equal(t, 0, voted.Votes)
	assert.Equal(t, "none", voted.Direction)

	approved, err := approve.Execute(ctx, TransitionCommand{Actor: warden, SID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, 0, approved.Votes)

	frozen, err := vote.Execute(ctx, CastVoteCommand{Viewer: studentB, SID: created.ID, Direction: "down"})
	require.NoError(t, err)
	assert.False(t, frozen.Applied)
	assert.Equal(t, 0, frozen.Votes)

	fixed, err := fix.Execute(ctx, TransitionCommand{Actor: staff, SID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "fixed", fixed.Status)

	_, err = edit.Execute(ctx, EditComplaintCommand{Actor: studentA, SID: created.ID, Description: strPtr("Fan still broken")})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenEditError(err))

	final, err := get.Execute(ctx, GetComplaintQuery{Viewer: studentA, SID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "fixed", final.Status)
	assert.Equal(t, 0, final.Votes)
	assert.Equal(t, "Fan broken", final.Description)
	assert.False(t, final.CanEdit)

	assert.Equal(t, []string{"created", "voted", "voted", "approved", "fixed"}, eventNames(publisher))
}

func eventNames(p *mockEventPublisher) []string {
	out := make([]string, 0)
	for _, t := range p.types() {
		out = append(out, string(t))
	}
	return out
}

// TestCastVote_TallyMatchesDirections replays a fixed vote sequence from
// several students through the use case and checks the stored tally equals
// the sum of the stored directions.
func TestCastVote_TallyMatchesDirections(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	log := logger.NewNopLogger()

	create := NewCreateComplaintUseCase(store, nil, nil, nil, log)
	vote := NewCastVoteUseCase(store, store, &mockTransactor{}, nil, nil, nil, log)

	created, err := create.Execute(ctx, CreateComplaintCommand{Submitter: studentProfile(1, uservo.HostelBlockA), Description: "Leak"})
	require.NoError(t, err)

	sequence := []struct {
		voter     uint
		direction string
	}{
		{2, "up"}, {3, "down"}, {2, "down"}, {4, "up"}, {3, "down"},
		{5, "up"}, {2, "up"}, {4, "up"}, {6, "down"}, {1, "up"},
	}

	var last int
	for _, step := range sequence {
		res, err := vote.Execute(ctx, CastVoteCommand{
			Viewer:    studentProfile(step.voter, uservo.HostelBlockB),
			SID:       created.ID,
			Direction: step.direction,
		})
		require.NoError(t, err)
		last = res.Votes
	}

	c, err := store.GetBySID(ctx, created.ID)
	require.NoError(t, err)

	sum := 0
	for key, d := range store.votes {
		if key[0] == c.ID() {
			sum += d.Weight()
		}
	}
	assert.Equal(t, sum, c.Votes())
	assert.Equal(t, c.Votes(), last)
	// 2 up, 3 none, 4 none, 5 up, 6 down, 1 up
	assert.Equal(t, 2, c.Votes())
}
