package usecases

import (
	"context"
	stderrors "errors"

	"github.com/fixora-app/fixora/internal/application/complaint/dto"
	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

type GetComplaintQuery struct {
	Viewer user.Profile
	SID    string
}

type GetComplaintUseCase struct {
	repo     complaint.Repository
	voteRepo complaint.VoteRepository
	cache    ComplaintCache
	dirCache VoteDirectionCache
	renderer DescriptionRenderer
	logger   logger.Interface
}

func NewGetComplaintUseCase(
	repo complaint.Repository,
	voteRepo complaint.VoteRepository,
	cache ComplaintCache,
	dirCache VoteDirectionCache,
	renderer DescriptionRenderer,
	logger logger.Interface,
) *GetComplaintUseCase {
	return &GetComplaintUseCase{
		repo:     repo,
		voteRepo: voteRepo,
		cache:    cache,
		dirCache: dirCache,
		renderer: renderer,
		logger:   logger,
	}
}

// Execute returns the complaint if the viewer can see it. A complaint the
// viewer cannot see is reported as not found.
func (uc *GetComplaintUseCase) Execute(ctx context.Context, query GetComplaintQuery) (*dto.ComplaintDTO, error) {
	uc.logger.Infow("executing get complaint use case", "complaint_sid", query.SID, "actor_id", query.Viewer.ID)

	if query.SID == "" {
		return nil, errors.NewValidationError("complaint ID is required")
	}

	offline := false
	c, err := uc.repo.GetBySID(ctx, query.SID)
	if stderrors.Is(err, complaint.ErrStoreUnavailable) {
		c, err = uc.fromCache(ctx, query.SID, err)
		offline = err == nil
	}
	if err != nil {
		uc.logger.Errorw("failed to get complaint", "complaint_sid", query.SID, "error", err)
		return nil, toAppError(err, "failed to get complaint")
	}

	if !c.IsVisibleTo(query.Viewer) {
		return nil, errors.NewNotFoundError("complaint not found")
	}

	result := dto.ToComplaintDTO(c, query.Viewer, uc.direction(ctx, c, query.Viewer, offline))
	if uc.renderer != nil {
		html, err := uc.renderer.Render(c.Description())
		if err != nil {
			uc.logger.Warnw("failed to render description", "complaint_sid", c.SID(), "error", err)
		} else {
			result.DescriptionHTML = html
		}
	}

	return result, nil
}

func (uc *GetComplaintUseCase) fromCache(ctx context.Context, sid string, storeErr error) (*complaint.Complaint, error) {
	if uc.cache == nil {
		return nil, storeErr
	}
	cached, err := uc.cache.LoadLocal(ctx)
	if err != nil {
		uc.logger.Warnw("local snapshot unavailable", "error", err)
		return nil, storeErr
	}
	for _, c := range cached {
		if c.SID() == sid {
			uc.logger.Warnw("serving complaint from local snapshot", "complaint_sid", sid)
			return c, nil
		}
	}
	return nil, storeErr
}

func (uc *GetComplaintUseCase) direction(ctx context.Context, c *complaint.Complaint, viewer user.Profile, offline bool) vo.VoteDirection {
	if !viewer.Role.IsStudent() {
		return vo.VoteNone
	}

	if !offline {
		d, err := uc.voteRepo.GetDirection(ctx, c.ID(), viewer.ID)
		if err == nil {
			return d
		}
		uc.logger.Warnw("failed to read vote direction", "complaint_sid", c.SID(), "error", err)
	}

	if uc.dirCache == nil {
		return vo.VoteNone
	}
	d, err := uc.dirCache.Get(ctx, c.SID(), viewer.ID)
	if err != nil {
		return vo.VoteNone
	}
	return d
}
