package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

func strPtr(s string) *string {
	return &s
}

func TestEditComplaintUseCase_Execute(t *testing.T) {
	owner := studentProfile(1, uservo.HostelBlockA)

	t.Run("owner edits", func(t *testing.T) {
		c := persisted(t, 10, owner, "public")
		var updated *complaint.Complaint
		repo := &mockComplaintRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*complaint.Complaint, error) {
				return c, nil
			},
			UpdateFunc: func(ctx context.Context, c *complaint.Complaint) error {
				updated = c
				return nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := NewEditComplaintUseCase(repo, &mockVoteRepository{}, nil, publisher, logger.NewNopLogger())

		result, err := uc.Execute(context.Background(), EditComplaintCommand{
			Actor:       owner,
			SID:         c.SID(),
			Description: strPtr("Fan and light broken"),
			Visibility:  strPtr("private"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Fan and light broken", result.Description)
		assert.Equal(t, "private", result.Visibility)
		assert.Equal(t, "Electrical", result.Category)
		assert.NotNil(t, result.LastEditedAt)
		require.NotNil(t, updated)
		assert.Equal(t, 2, updated.Version())
		assert.Equal(t, []complaint.ChangeType{complaint.ChangeEdited}, publisher.types())
	})

	t.Run("rejections", func(t *testing.T) {
		approved := persisted(t, 11, owner, "public")
		require.NoError(t, approved.Approve(wardenProfile(t, 9, uservo.WingMale)))
		submitted := persisted(t, 12, owner, "public")

		repo := &mockComplaintRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*complaint.Complaint, error) {
				switch sid {
				case approved.SID():
					return approved, nil
				case submitted.SID():
					return submitted, nil
				}
				return nil, complaint.ErrComplaintNotFound
			},
			UpdateFunc: func(ctx context.Context, c *complaint.Complaint) error {
				// status moved on after the read
				return complaint.ErrForbiddenEdit
			},
		}
		uc := NewEditComplaintUseCase(repo, &mockVoteRepository{}, nil, nil, logger.NewNopLogger())

		tests := []struct {
			name  string
			cmd   EditComplaintCommand
			check func(error) bool
		}{
			{"not the owner", EditComplaintCommand{Actor: studentProfile(2, uservo.HostelBlockA), SID: submitted.SID(), Description: strPtr("x")}, errors.IsForbiddenEditError},
			{"already approved", EditComplaintCommand{Actor: owner, SID: approved.SID(), Description: strPtr("x")}, errors.IsForbiddenEditError},
			{"invalid category", EditComplaintCommand{Actor: owner, SID: submitted.SID(), Category: strPtr("Garden")}, errors.IsValidationError},
			{"empty patch", EditComplaintCommand{Actor: owner, SID: submitted.SID()}, errors.IsValidationError},
			{"lost race with approval", EditComplaintCommand{Actor: owner, SID: submitted.SID(), Category: strPtr("Plumbing")}, errors.IsForbiddenEditError},
			{"missing", EditComplaintCommand{Actor: owner, SID: "cmp_missing", Description: strPtr("x")}, errors.IsNotFoundError},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Execute(context.Background(), tt.cmd)
				require.Error(t, err)
				assert.True(t, tt.check(err), "unexpected error: %v", err)
			})
		}
	})
}

func TestDeleteComplaintUseCase_Execute(t *testing.T) {
	owner := studentProfile(1, uservo.HostelBlockA)

	t.Run("owner deletes and caches are evicted", func(t *testing.T) {
		c := persisted(t, 10, owner, "public")
		var deletedID uint
		repo := &mockComplaintRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*complaint.Complaint, error) {
				return c, nil
			},
			DeleteFunc: func(ctx context.Context, id uint) error {
				deletedID = id
				return nil
			},
		}
		var removed, cleared string
		cache := &mockComplaintCache{
			RemoveLocalFunc: func(ctx context.Context, sid string) error {
				removed = sid
				return nil
			},
		}
		dirs := &mockVoteDirectionCache{
			ClearFunc: func(ctx context.Context, sid string) error {
				cleared = sid
				return nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := NewDeleteComplaintUseCase(repo, cache, dirs, publisher, logger.NewNopLogger())

		require.NoError(t, uc.Execute(context.Background(), DeleteComplaintCommand{Actor: owner, SID: c.SID()}))
		assert.Equal(t, uint(10), deletedID)
		assert.Equal(t, c.SID(), removed)
		assert.Equal(t, c.SID(), cleared)
		require.Len(t, publisher.events, 1)
		assert.Equal(t, complaint.ChangeDeleted, publisher.events[0].Type)
		assert.Equal(t, owner.ID, publisher.events[0].Scope.SubmitterID)
	})

	t.Run("other users and later states are refused", func(t *testing.T) {
		c := persisted(t, 10, owner, "public")
		repo := &mockComplaintRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*complaint.Complaint, error) {
				return c, nil
			},
			DeleteFunc: func(ctx context.Context, id uint) error {
				return complaint.ErrForbiddenEdit
			},
		}
		uc := NewDeleteComplaintUseCase(repo, nil, nil, nil, logger.NewNopLogger())

		err := uc.Execute(context.Background(), DeleteComplaintCommand{Actor: wardenProfile(t, 9, uservo.WingMale), SID: c.SID()})
		assert.True(t, errors.IsForbiddenEditError(err))

		// owner passes the aggregate check but the store guard refuses
		err = uc.Execute(context.Background(), DeleteComplaintCommand{Actor: owner, SID: c.SID()})
		assert.True(t, errors.IsForbiddenEditError(err))
	})
}
