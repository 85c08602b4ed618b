package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

func TestApproveComplaintUseCase_Execute(t *testing.T) {
	owner := studentProfile(1, uservo.HostelBlockA)
	warden := wardenProfile(t, 9, uservo.WingMale)

	t.Run("warden approves with compare-and-set", func(t *testing.T) {
		c := persisted(t, 10, owner, "public")
		var expected vo.Status
		repo := &mockComplaintRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*complaint.Complaint, error) {
				return c, nil
			},
			UpdateStatusFunc: func(ctx context.Context, c *complaint.Complaint, exp vo.Status) error {
				expected = exp
				return nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := NewApproveComplaintUseCase(repo, nil, publisher, logger.NewNopLogger())

		result, err := uc.Execute(context.Background(), TransitionCommand{Actor: warden, SID: c.SID()})
		require.NoError(t, err)
		assert.Equal(t, "approved", result.Status)
		assert.NotNil(t, result.ApprovedAt)
		assert.False(t, result.CanApprove)
		assert.Equal(t, vo.StatusSubmitted, expected)
		assert.Equal(t, []complaint.ChangeType{complaint.ChangeApproved}, publisher.types())
	})

	t.Run("student cannot approve", func(t *testing.T) {
		c := persisted(t, 10, owner, "public")
		repo := &mockComplaintRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*complaint.Complaint, error) {
				return c, nil
			},
			UpdateStatusFunc: func(ctx context.Context, c *complaint.Complaint, exp vo.Status) error {
				t.Fatal("rejected transition must not be written")
				return nil
			},
		}
		uc := NewApproveComplaintUseCase(repo, nil, nil, logger.NewNopLogger())

		_, err := uc.Execute(context.Background(), TransitionCommand{Actor: owner, SID: c.SID()})
		require.Error(t, err)
		assert.True(t, errors.IsForbiddenTransitionError(err))
		assert.Equal(t, vo.StatusSubmitted, c.Status())
	})

	t.Run("concurrent approval loses the compare-and-set", func(t *testing.T) {
		c := persisted(t, 10, owner, "public")
		repo := &mockComplaintRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*complaint.Complaint, error) {
				return c, nil
			},
			UpdateStatusFunc: func(ctx context.Context, c *complaint.Complaint, exp vo.Status) error {
				return complaint.ErrForbiddenTransition
			},
		}
		publisher := &mockEventPublisher{}
		uc := NewApproveComplaintUseCase(repo, nil, publisher, logger.NewNopLogger())

		_, err := uc.Execute(context.Background(), TransitionCommand{Actor: warden, SID: c.SID()})
		require.Error(t, err)
		assert.True(t, errors.IsForbiddenTransitionError(err))
		assert.Empty(t, publisher.events)
	})
}

func TestMarkFixedUseCase_Execute(t *testing.T) {
	owner := studentProfile(1, uservo.HostelGirls)
	staff := staffProfile(t, 20, uservo.WingFemale)

	tests := []struct {
		name    string
		approve bool
		wantErr bool
	}{
		{name: "approved complaint is fixed", approve: true},
		{name: "submitted complaint cannot skip approval", approve: false, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := persisted(t, 10, owner, "public")
			if tt.approve {
				require.NoError(t, c.Approve(wardenProfile(t, 9, uservo.WingFemale)))
			}
			var expected vo.Status
			repo := &mockComplaintRepository{
				GetBySIDFunc: func(ctx context.Context, sid string) (*complaint.Complaint, error) {
					return c, nil
				},
				UpdateStatusFunc: func(ctx context.Context, c *complaint.Complaint, exp vo.Status) error {
					expected = exp
					return nil
				},
			}
			uc := NewMarkFixedUseCase(repo, nil, nil, logger.NewNopLogger())

			result, err := uc.Execute(context.Background(), TransitionCommand{Actor: staff, SID: c.SID()})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsForbiddenTransitionError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "fixed", result.Status)
			assert.NotNil(t, result.FixedAt)
			assert.Equal(t, vo.StatusApproved, expected)
		})
	}
}
