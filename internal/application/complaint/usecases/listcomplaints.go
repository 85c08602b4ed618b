package usecases

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/fixora-app/fixora/internal/application/complaint/dto"
	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

// ListComplaintsQuery selects one tab of the viewer's feed. An empty Tab
// returns every status.
type ListComplaintsQuery struct {
	Viewer user.Profile
	Tab    string
}

type ListComplaintsUseCase struct {
	repo     complaint.Repository
	voteRepo complaint.VoteRepository
	cache    ComplaintCache
	dirCache VoteDirectionCache
	logger   logger.Interface
}

func NewListComplaintsUseCase(
	repo complaint.Repository,
	voteRepo complaint.VoteRepository,
	cache ComplaintCache,
	dirCache VoteDirectionCache,
	logger logger.Interface,
) *ListComplaintsUseCase {
	return &ListComplaintsUseCase{
		repo:     repo,
		voteRepo: voteRepo,
		cache:    cache,
		dirCache: dirCache,
		logger:   logger,
	}
}

func (uc *ListComplaintsUseCase) Execute(ctx context.Context, query ListComplaintsQuery) (*dto.FeedDTO, error) {
	uc.logger.Infow("executing list complaints use case", "actor_id", query.Viewer.ID, "tab", query.Tab)

	tab, err := parseTab(query.Tab)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	offline := false
	all, err := uc.repo.List(ctx, complaint.ListFilter{})
	switch {
	case err == nil:
		uc.refreshSnapshot(ctx, all)
	case stderrors.Is(err, complaint.ErrStoreUnavailable) && uc.cache != nil:
		cached, cacheErr := uc.cache.LoadLocal(ctx)
		if cacheErr != nil {
			uc.logger.Errorw("store and local snapshot both unavailable", "error", err, "cache_error", cacheErr)
			return nil, toAppError(err, "failed to list complaints")
		}
		uc.logger.Warnw("serving feed from local snapshot", "error", err, "count", len(cached))
		all = cached
		offline = true
	default:
		uc.logger.Errorw("failed to list complaints", "error", err)
		return nil, toAppError(err, "failed to list complaints")
	}

	feed := complaint.FilterFeed(all, query.Viewer, tab)
	directions := uc.directions(ctx, feed, query.Viewer, offline)

	uc.logger.Infow("complaint feed listed",
		"actor_id", query.Viewer.ID,
		"tab", tab,
		"count", len(feed),
		"offline", offline,
	)

	return dto.ToFeedDTO(feed, query.Viewer, directions, tab, offline), nil
}

// parseTab accepts status names in any case.
func parseTab(raw string) (vo.Status, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "all" {
		return "", nil
	}
	return vo.NewStatus(raw)
}

// refreshSnapshot rewrites the whole snapshot only when it is due; writes
// keep it current in between.
func (uc *ListComplaintsUseCase) refreshSnapshot(ctx context.Context, all []*complaint.Complaint) {
	if uc.cache == nil {
		return
	}
	due, err := uc.cache.NeedsRefresh(ctx)
	if err != nil {
		uc.logger.Warnw("failed to check local snapshot age", "error", err)
		return
	}
	if !due {
		return
	}
	if err := uc.cache.SaveLocal(ctx, all); err != nil {
		uc.logger.Warnw("failed to refresh local snapshot", "error", err)
	}
}

func (uc *ListComplaintsUseCase) directions(ctx context.Context, feed []*complaint.Complaint, viewer user.Profile, offline bool) map[uint]vo.VoteDirection {
	directions := make(map[uint]vo.VoteDirection)
	if !viewer.Role.IsStudent() || len(feed) == 0 {
		return directions
	}

	if !offline {
		ids := make([]uint, 0, len(feed))
		for _, c := range feed {
			ids = append(ids, c.ID())
		}
		found, err := uc.voteRepo.GetDirections(ctx, viewer.ID, ids)
		if err == nil {
			return found
		}
		uc.logger.Warnw("failed to read vote directions", "actor_id", viewer.ID, "error", err)
	}

	if uc.dirCache == nil {
		return directions
	}
	for _, c := range feed {
		d, err := uc.dirCache.Get(ctx, c.SID(), viewer.ID)
		if err != nil {
			continue
		}
		if d.IsCast() {
			directions[c.ID()] = d
		}
	}
	return directions
}
