package usecases

import (
	"context"

	"github.com/fixora-app/fixora/internal/application/complaint/dto"
	"github.com/fixora-app/fixora/internal/domain/complaint"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

// EditComplaintCommand patches the fields that are set.
type EditComplaintCommand struct {
	Actor       user.Profile
	SID         string
	Description *string
	Category    *string
	Visibility  *string
}

type EditComplaintUseCase struct {
	repo     complaint.Repository
	voteRepo complaint.VoteRepository
	effects  sideEffects
	logger   logger.Interface
}

func NewEditComplaintUseCase(
	repo complaint.Repository,
	voteRepo complaint.VoteRepository,
	cache ComplaintCache,
	publisher ComplaintEventPublisher,
	logger logger.Interface,
) *EditComplaintUseCase {
	return &EditComplaintUseCase{
		repo:     repo,
		voteRepo: voteRepo,
		effects:  sideEffects{cache: cache, publisher: publisher, logger: logger},
		logger:   logger,
	}
}

func (uc *EditComplaintUseCase) Execute(ctx context.Context, cmd EditComplaintCommand) (*dto.ComplaintDTO, error) {
	uc.logger.Infow("executing edit complaint use case", "complaint_sid", cmd.SID, "actor_id", cmd.Actor.ID)

	c, err := uc.repo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get complaint", "complaint_sid", cmd.SID, "error", err)
		return nil, toAppError(err, "failed to edit complaint")
	}

	patch := complaint.EditPatch{
		Description: cmd.Description,
		Category:    cmd.Category,
		Visibility:  cmd.Visibility,
	}
	if err := c.Edit(cmd.Actor, patch); err != nil {
		uc.logger.Errorw("complaint edit rejected", "complaint_sid", cmd.SID, "actor_id", cmd.Actor.ID, "error", err)
		return nil, toAppError(err, "failed to edit complaint")
	}

	// The store re-checks the status so an approval that lands between the
	// read and this write wins.
	if err := uc.repo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update complaint", "complaint_sid", cmd.SID, "error", err)
		return nil, toAppError(err, "failed to edit complaint")
	}

	uc.effects.remember(ctx, c)
	uc.effects.announce(ctx, complaint.NewChangeEvent(c, complaint.ChangeEdited))

	uc.logger.Infow("complaint edited successfully", "complaint_sid", cmd.SID, "actor_id", cmd.Actor.ID)

	direction, err := uc.voteRepo.GetDirection(ctx, c.ID(), cmd.Actor.ID)
	if err != nil {
		uc.logger.Warnw("failed to read vote direction", "complaint_sid", cmd.SID, "error", err)
	}
	return dto.ToComplaintDTO(c, cmd.Actor, direction), nil
}
