package usecases

import (
	"context"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

type DeleteComplaintCommand struct {
	Actor user.Profile
	SID   string
}

type DeleteComplaintUseCase struct {
	repo     complaint.Repository
	dirCache VoteDirectionCache
	effects  sideEffects
	logger   logger.Interface
}

func NewDeleteComplaintUseCase(
	repo complaint.Repository,
	cache ComplaintCache,
	dirCache VoteDirectionCache,
	publisher ComplaintEventPublisher,
	logger logger.Interface,
) *DeleteComplaintUseCase {
	return &DeleteComplaintUseCase{
		repo:     repo,
		dirCache: dirCache,
		effects:  sideEffects{cache: cache, publisher: publisher, logger: logger},
		logger:   logger,
	}
}

// Execute hard deletes the complaint together with its votes.
func (uc *DeleteComplaintUseCase) Execute(ctx context.Context, cmd DeleteComplaintCommand) error {
	uc.logger.Infow("executing delete complaint use case", "complaint_sid", cmd.SID, "actor_id", cmd.Actor.ID)

	c, err := uc.repo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get complaint", "complaint_sid", cmd.SID, "error", err)
		return toAppError(err, "failed to delete complaint")
	}

	if err := c.CheckDelete(cmd.Actor); err != nil {
		uc.logger.Errorw("complaint delete rejected", "complaint_sid", cmd.SID, "actor_id", cmd.Actor.ID, "error", err)
		return toAppError(err, "failed to delete complaint")
	}

	event := complaint.NewChangeEvent(c, complaint.ChangeDeleted)
	if err := uc.repo.Delete(ctx, c.ID()); err != nil {
		uc.logger.Errorw("failed to delete complaint", "complaint_sid", cmd.SID, "error", err)
		return toAppError(err, "failed to delete complaint")
	}

	uc.effects.forget(ctx, c.SID())
	if uc.dirCache != nil {
		if err := uc.dirCache.Clear(ctx, c.SID()); err != nil {
			uc.logger.Warnw("failed to clear cached vote directions", "complaint_sid", cmd.SID, "error", err)
		}
	}
	uc.effects.announce(ctx, event)

	uc.logger.Infow("complaint deleted successfully", "complaint_sid", cmd.SID, "actor_id", cmd.Actor.ID)
	return nil
}
