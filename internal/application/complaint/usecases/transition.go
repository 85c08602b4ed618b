package usecases

import (
	"context"

	"github.com/fixora-app/fixora/internal/application/complaint/dto"
	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

// TransitionCommand advances a complaint one step on behalf of Actor.
type TransitionCommand struct {
	Actor user.Profile
	SID   string
}

// transitioner loads a complaint, applies step and persists the result
// with a compare-and-set on the status it was loaded with.
type transitioner struct {
	repo    complaint.Repository
	effects sideEffects
	logger  logger.Interface
}

func (t transitioner) run(
	ctx context.Context,
	cmd TransitionCommand,
	name string,
	change complaint.ChangeType,
	step func(c *complaint.Complaint, actor user.Profile) error,
) (*dto.ComplaintDTO, error) {
	t.logger.Infow("executing "+name+" complaint use case", "complaint_sid", cmd.SID, "actor_id", cmd.Actor.ID)

	c, err := t.repo.GetBySID(ctx, cmd.SID)
	if err != nil {
		t.logger.Errorw("failed to get complaint", "complaint_sid", cmd.SID, "error", err)
		return nil, toAppError(err, "failed to "+name+" complaint")
	}

	expected := c.Status()
	if err := step(c, cmd.Actor); err != nil {
		t.logger.Errorw("complaint transition rejected",
			"complaint_sid", cmd.SID,
			"actor_id", cmd.Actor.ID,
			"status", expected,
			"error", err,
		)
		return nil, toAppError(err, "failed to "+name+" complaint")
	}

	if err := t.repo.UpdateStatus(ctx, c, expected); err != nil {
		t.logger.Errorw("failed to persist complaint transition", "complaint_sid", cmd.SID, "error", err)
		return nil, toAppError(err, "failed to "+name+" complaint")
	}

	t.effects.remember(ctx, c)
	t.effects.announce(ctx, complaint.NewChangeEvent(c, change))

	t.logger.Infow("complaint status changed successfully",
		"complaint_sid", cmd.SID,
		"actor_id", cmd.Actor.ID,
		"old_status", expected,
		"new_status", c.Status(),
	)

	return dto.ToComplaintDTO(c, cmd.Actor, vo.VoteNone), nil
}

type ApproveComplaintUseCase struct {
	transitioner
}

func NewApproveComplaintUseCase(
	repo complaint.Repository,
	cache ComplaintCache,
	publisher ComplaintEventPublisher,
	logger logger.Interface,
) *ApproveComplaintUseCase {
	return &ApproveComplaintUseCase{transitioner{
		repo:    repo,
		effects: sideEffects{cache: cache, publisher: publisher, logger: logger},
		logger:  logger,
	}}
}

// Execute approves a submitted complaint. Any warden may approve.
func (uc *ApproveComplaintUseCase) Execute(ctx context.Context, cmd TransitionCommand) (*dto.ComplaintDTO, error) {
	return uc.run(ctx, cmd, "approve", complaint.ChangeApproved, (*complaint.Complaint).Approve)
}

type MarkFixedUseCase struct {
	transitioner
}

func NewMarkFixedUseCase(
	repo complaint.Repository,
	cache ComplaintCache,
	publisher ComplaintEventPublisher,
	logger logger.Interface,
) *MarkFixedUseCase {
	return &MarkFixedUseCase{transitioner{
		repo:    repo,
		effects: sideEffects{cache: cache, publisher: publisher, logger: logger},
		logger:  logger,
	}}
}

// Execute marks an approved complaint fixed. Any staff member may do it.
func (uc *MarkFixedUseCase) Execute(ctx context.Context, cmd TransitionCommand) (*dto.ComplaintDTO, error) {
	return uc.run(ctx, cmd, "mark fixed", complaint.ChangeFixed, (*complaint.Complaint).MarkFixed)
}
