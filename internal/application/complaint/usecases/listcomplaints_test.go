package usecases

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/domain/user"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

// feedFixture returns complaints from two wings: a public and a private one
// in the male wing and a public one in the female wing.
func feedFixture(t *testing.T) (owner user.Profile, all []*complaint.Complaint) {
	owner = studentProfile(1, uservo.HostelBlockA)
	girl := studentProfile(2, uservo.HostelGirls)

	public := persisted(t, 10, owner, "public")
	private := persisted(t, 11, owner, "private")
	female := persisted(t, 12, girl, "public")
	return owner, []*complaint.Complaint{public, private, female}
}

func TestListComplaintsUseCase_Execute_Online(t *testing.T) {
	_, all := feedFixture(t)
	viewer := studentProfile(5, uservo.HostelBlockB)

	var snapshot []*complaint.Complaint
	cache := &mockComplaintCache{
		SaveLocalFunc: func(ctx context.Context, complaints []*complaint.Complaint) error {
			snapshot = complaints
			return nil
		},
	}
	repo := &mockComplaintRepository{
		ListFunc: func(ctx context.Context, filter complaint.ListFilter) ([]*complaint.Complaint, error) {
			return all, nil
		},
	}
	votes := &mockVoteRepository{
		GetDirectionsFunc: func(ctx context.Context, userID uint, ids []uint) (map[uint]vo.VoteDirection, error) {
			assert.Equal(t, viewer.ID, userID)
			assert.Equal(t, []uint{10}, ids)
			return map[uint]vo.VoteDirection{10: vo.VoteUp}, nil
		},
	}

	uc := NewListComplaintsUseCase(repo, votes, cache, nil, logger.NewNopLogger())
	feed, err := uc.Execute(context.Background(), ListComplaintsQuery{Viewer: viewer})

	require.NoError(t, err)
	assert.False(t, feed.Offline)
	require.Equal(t, 1, feed.Total)
	assert.Equal(t, all[0].SID(), feed.Items[0].ID)
	assert.Equal(t, "up", feed.Items[0].MyVote)
	assert.True(t, feed.Items[0].CanVote)
	assert.Len(t, snapshot, 3)
}

func TestListComplaintsUseCase_Execute_SnapshotRefreshedOnlyWhenDue(t *testing.T) {
	_, all := feedFixture(t)
	repo := &mockComplaintRepository{
		ListFunc: func(ctx context.Context, filter complaint.ListFilter) ([]*complaint.Complaint, error) {
			return all, nil
		},
	}

	due := false
	saves := 0
	cache := &mockComplaintCache{
		NeedsRefreshFunc: func(ctx context.Context) (bool, error) {
			return due, nil
		},
		SaveLocalFunc: func(ctx context.Context, complaints []*complaint.Complaint) error {
			saves++
			return nil
		},
	}
	uc := NewListComplaintsUseCase(repo, &mockVoteRepository{}, cache, nil, logger.NewNopLogger())
	query := ListComplaintsQuery{Viewer: studentProfile(5, uservo.HostelBlockB)}

	for i := 0; i < 3; i++ {
		_, err := uc.Execute(context.Background(), query)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, saves)

	due = true
	_, err := uc.Execute(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 1, saves)

	cache.NeedsRefreshFunc = func(ctx context.Context) (bool, error) {
		return false, stderrors.New("redis down")
	}
	_, err = uc.Execute(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 1, saves)
}

func TestListComplaintsUseCase_Execute_TabAppliesToOwner(t *testing.T) {
	owner, all := feedFixture(t)
	repo := &mockComplaintRepository{
		ListFunc: func(ctx context.Context, filter complaint.ListFilter) ([]*complaint.Complaint, error) {
			return all, nil
		},
	}
	uc := NewListComplaintsUseCase(repo, &mockVoteRepository{}, nil, nil, logger.NewNopLogger())

	feed, err := uc.Execute(context.Background(), ListComplaintsQuery{Viewer: owner, Tab: "Submitted"})
	require.NoError(t, err)
	assert.Equal(t, 2, feed.Total)
	assert.Equal(t, "submitted", feed.Tab)

	feed, err = uc.Execute(context.Background(), ListComplaintsQuery{Viewer: owner, Tab: "approved"})
	require.NoError(t, err)
	assert.Equal(t, 0, feed.Total)
	assert.NotNil(t, feed.Items)
}

func TestListComplaintsUseCase_Execute_InvalidTab(t *testing.T) {
	uc := NewListComplaintsUseCase(&mockComplaintRepository{}, &mockVoteRepository{}, nil, nil, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ListComplaintsQuery{Viewer: studentProfile(1, uservo.HostelBlockA), Tab: "closed"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestListComplaintsUseCase_Execute_OfflineFallback(t *testing.T) {
	_, all := feedFixture(t)
	warden := wardenProfile(t, 9, uservo.WingMale)

	repo := &mockComplaintRepository{
		ListFunc: func(ctx context.Context, filter complaint.ListFilter) ([]*complaint.Complaint, error) {
			return nil, complaint.ErrStoreUnavailable
		},
	}
	cache := &mockComplaintCache{
		LoadLocalFunc: func(ctx context.Context) ([]*complaint.Complaint, error) {
			return all, nil
		},
		SaveLocalFunc: func(ctx context.Context, complaints []*complaint.Complaint) error {
			t.Fatal("snapshot must not be rewritten from itself")
			return nil
		},
	}

	uc := NewListComplaintsUseCase(repo, &mockVoteRepository{}, cache, &mockVoteDirectionCache{}, logger.NewNopLogger())
	feed, err := uc.Execute(context.Background(), ListComplaintsQuery{Viewer: warden})

	require.NoError(t, err)
	assert.True(t, feed.Offline)
	assert.Equal(t, 2, feed.Total)
	for _, item := range feed.Items {
		assert.Equal(t, "male", item.HostelType)
		assert.True(t, item.CanApprove)
	}
}

func TestListComplaintsUseCase_Execute_OfflineUsesCachedDirections(t *testing.T) {
	_, all := feedFixture(t)
	viewer := studentProfile(5, uservo.HostelBlockB)

	repo := &mockComplaintRepository{
		ListFunc: func(ctx context.Context, filter complaint.ListFilter) ([]*complaint.Complaint, error) {
			return nil, complaint.ErrStoreUnavailable
		},
	}
	cache := &mockComplaintCache{
		LoadLocalFunc: func(ctx context.Context) ([]*complaint.Complaint, error) {
			return all, nil
		},
	}
	dirs := &mockVoteDirectionCache{
		GetFunc: func(ctx context.Context, sid string, viewerID uint) (vo.VoteDirection, error) {
			return vo.VoteDown, nil
		},
	}

	uc := NewListComplaintsUseCase(repo, &mockVoteRepository{}, cache, dirs, logger.NewNopLogger())
	feed, err := uc.Execute(context.Background(), ListComplaintsQuery{Viewer: viewer})

	require.NoError(t, err)
	require.Equal(t, 1, feed.Total)
	assert.Equal(t, "down", feed.Items[0].MyVote)
}

func TestListComplaintsUseCase_Execute_StoreAndCacheDown(t *testing.T) {
	repo := &mockComplaintRepository{
		ListFunc: func(ctx context.Context, filter complaint.ListFilter) ([]*complaint.Complaint, error) {
			return nil, complaint.ErrStoreUnavailable
		},
	}
	cache := &mockComplaintCache{
		LoadLocalFunc: func(ctx context.Context) ([]*complaint.Complaint, error) {
			return nil, stderrors.New("redis down")
		},
	}

	uc := NewListComplaintsUseCase(repo, &mockVoteRepository{}, cache, nil, logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), ListComplaintsQuery{Viewer: studentProfile(1, uservo.HostelBlockA)})

	require.Error(t, err)
	assert.True(t, errors.IsStoreUnavailableError(err))
}
