package usecases

import (
	"context"
	stderrors "errors"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/db"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

type CastVoteCommand struct {
	Viewer    user.Profile
	SID       string
	Direction string
}

// CastVoteResult carries the authoritative tally after the vote. Applied
// is false when the vote was a no-op.
type CastVoteResult struct {
	SID       string `json:"id"`
	Votes     int    `json:"votes"`
	Direction string `json:"direction"`
	Applied   bool   `json:"applied"`
}

type CastVoteUseCase struct {
	repo     complaint.Repository
	voteRepo complaint.VoteRepository
	txMgr    db.Transactor
	dirCache VoteDirectionCache
	effects  sideEffects
	logger   logger.Interface
}

func NewCastVoteUseCase(
	repo complaint.Repository,
	voteRepo complaint.VoteRepository,
	txMgr db.Transactor,
	cache ComplaintCache,
	dirCache VoteDirectionCache,
	publisher ComplaintEventPublisher,
	logger logger.Interface,
) *CastVoteUseCase {
	return &CastVoteUseCase{
		repo:     repo,
		voteRepo: voteRepo,
		txMgr:    txMgr,
		dirCache: dirCache,
		effects:  sideEffects{cache: cache, publisher: publisher, logger: logger},
		logger:   logger,
	}
}

// Execute toggles the viewer's vote. The complaint row is locked before the
// viewer's prior direction is read, and the direction and tally delta are
// written in the same transaction; the tally returned is the one the store
// holds afterwards, never a locally computed value.
func (uc *CastVoteUseCase) Execute(ctx context.Context, cmd CastVoteCommand) (*CastVoteResult, error) {
	uc.logger.Infow("executing cast vote use case",
		"complaint_sid", cmd.SID,
		"actor_id", cmd.Viewer.ID,
		"direction", cmd.Direction,
	)

	requested, err := vo.NewCastDirection(cmd.Direction)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	c, err := uc.repo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get complaint", "complaint_sid", cmd.SID, "error", err)
		return nil, toAppError(err, "failed to cast vote")
	}
	if !c.IsVisibleTo(cmd.Viewer) {
		return nil, errors.NewNotFoundError("complaint not found")
	}

	var outcome complaint.VoteOutcome
	tally := c.Votes()
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.repo.LockForVote(txCtx, c.ID()); err != nil {
			return err
		}
		prior, err := uc.voteRepo.GetDirection(txCtx, c.ID(), cmd.Viewer.ID)
		if err != nil {
			return err
		}

		outcome, err = c.CastVote(cmd.Viewer, requested, prior)
		if err != nil || !outcome.Applied {
			return err
		}

		if err := uc.voteRepo.SetDirection(txCtx, c.ID(), cmd.Viewer.ID, outcome.Direction); err != nil {
			return err
		}
		tally, err = uc.repo.AdjustVotes(txCtx, c.ID(), outcome.Delta)
		return err
	})

	if stderrors.Is(err, complaint.ErrVotingClosed) {
		// A transition won the race; the rolled back vote is a no-op.
		uc.logger.Infow("vote ignored after status change", "complaint_sid", cmd.SID, "actor_id", cmd.Viewer.ID)
		return uc.noop(ctx, cmd, outcome.Previous)
	}
	if err != nil {
		uc.logger.Errorw("failed to cast vote", "complaint_sid", cmd.SID, "actor_id", cmd.Viewer.ID, "error", err)
		return nil, toAppError(err, "failed to cast vote")
	}

	c.SyncVotes(tally)

	if outcome.Applied {
		uc.effects.remember(ctx, c)
		if uc.dirCache != nil {
			if err := uc.dirCache.Set(ctx, c.SID(), cmd.Viewer.ID, outcome.Direction); err != nil {
				uc.logger.Warnw("failed to cache vote direction", "complaint_sid", cmd.SID, "error", err)
			}
		}
		uc.effects.announce(ctx, complaint.NewChangeEvent(c, complaint.ChangeVoted))

		uc.logger.Infow("vote cast successfully",
			"complaint_sid", cmd.SID,
			"actor_id", cmd.Viewer.ID,
			"delta", outcome.Delta,
			"votes", tally,
		)
	}

	return &CastVoteResult{
		SID:       c.SID(),
		Votes:     c.Votes(),
		Direction: outcome.Direction.String(),
		Applied:   outcome.Applied,
	}, nil
}

func (uc *CastVoteUseCase) noop(ctx context.Context, cmd CastVoteCommand, prior vo.VoteDirection) (*CastVoteResult, error) {
	c, err := uc.repo.GetBySID(ctx, cmd.SID)
	if err != nil {
		return nil, toAppError(err, "failed to cast vote")
	}
	if !prior.IsValid() {
		prior, err = uc.voteRepo.GetDirection(ctx, c.ID(), cmd.Viewer.ID)
		if err != nil {
			prior = vo.VoteNone
		}
	}
	uc.effects.remember(ctx, c)
	return &CastVoteResult{
		SID:       c.SID(),
		Votes:     c.Votes(),
		Direction: prior.String(),
		Applied:   false,
	}, nil
}
