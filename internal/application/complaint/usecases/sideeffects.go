package usecases

import (
	"context"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

// sideEffects keeps the local cache and subscribers in step after a write
// has committed. Failures are logged and never fail the write.
type sideEffects struct {
	cache     ComplaintCache
	publisher ComplaintEventPublisher
	logger    logger.Interface
}

func (s sideEffects) remember(ctx context.Context, c *complaint.Complaint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.PutLocal(ctx, c); err != nil {
		s.logger.Warnw("failed to cache complaint", "complaint_sid", c.SID(), "error", err)
	}
}

func (s sideEffects) forget(ctx context.Context, sid string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.RemoveLocal(ctx, sid); err != nil {
		s.logger.Warnw("failed to evict cached complaint", "complaint_sid", sid, "error", err)
	}
}

func (s sideEffects) announce(ctx context.Context, event complaint.ChangeEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warnw("failed to publish complaint event",
			"complaint_sid", event.SID,
			"event_type", event.Type,
			"error", err,
		)
	}
}
