// Package services provides infrastructure services.
package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/biztime"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

// FeedEvent is the SSE payload for one complaint change. It never carries
// the description or the submitter; clients refetch what they need.
type FeedEvent struct {
	Type       complaint.ChangeType `json:"type"`
	ID         string               `json:"id"`
	Status     string               `json:"status"`
	Votes      int                  `json:"votes"`
	HostelType string               `json:"hostel_type"`
	Timestamp  int64                `json:"timestamp"`
}

// FeedConn is one open feed stream.
type FeedConn struct {
	ID          string
	Viewer      user.Profile
	Send        chan []byte
	ConnectedAt time.Time
	closed      atomic.Bool
}

// TrySend returns false if the connection is closed or its buffer is full.
func (c *FeedConn) TrySend(data []byte) (sent bool) {
	if c.closed.Load() {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			sent = false
		}
	}()

	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *FeedConn) Close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.Send)
	}
}

// FeedHub fans complaint changes out to open streams. Each connection only
// receives events its viewer is allowed to see.
type FeedHub struct {
	conns     map[string]*FeedConn
	userConns map[uint]int
	mu        sync.RWMutex

	maxConnsPerUser int
	shutdown        atomic.Bool

	logger logger.Interface
}

type FeedHubConfig struct {
	MaxConnsPerUser int // default 5
}

func NewFeedHub(log logger.Interface, config *FeedHubConfig) *FeedHub {
	maxConns := 5
	if config != nil && config.MaxConnsPerUser > 0 {
		maxConns = config.MaxConnsPerUser
	}
	return &FeedHub{
		conns:           make(map[string]*FeedConn),
		userConns:       make(map[uint]int),
		maxConnsPerUser: maxConns,
		logger:          log,
	}
}

// Register returns nil when the viewer is over the connection limit or the
// hub is shut down.
func (h *FeedHub) Register(connID string, viewer user.Profile) *FeedConn {
	if h.shutdown.Load() {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.userConns[viewer.ID] >= h.maxConnsPerUser {
		h.logger.Warnw("feed connection limit exceeded",
			"user_id", viewer.ID,
			"limit", h.maxConnsPerUser,
		)
		return nil
	}

	conn := &FeedConn{
		ID:          connID,
		Viewer:      viewer,
		Send:        make(chan []byte, 64),
		ConnectedAt: biztime.NowUTC(),
	}
	h.conns[connID] = conn
	h.userConns[viewer.ID]++

	h.logger.Infow("feed connection registered",
		"conn_id", connID,
		"user_id", viewer.ID,
		"role", viewer.Role.String(),
	)
	return conn
}

func (h *FeedHub) Unregister(connID string) {
	h.mu.Lock()
	conn, ok := h.conns[connID]
	if ok {
		delete(h.conns, connID)
		if h.userConns[conn.Viewer.ID] > 0 {
			h.userConns[conn.Viewer.ID]--
		}
		if h.userConns[conn.Viewer.ID] == 0 {
			delete(h.userConns, conn.Viewer.ID)
		}
	}
	h.mu.Unlock()

	if ok {
		conn.Close()
		h.logger.Infow("feed connection unregistered",
			"conn_id", connID,
			"user_id", conn.Viewer.ID,
		)
	}
}

// Broadcast delivers event to every connection whose viewer can see the
// complaint. Slow readers drop events rather than block the hub.
func (h *FeedHub) Broadcast(event complaint.ChangeEvent) {
	data, err := formatFeedEvent(event)
	if err != nil {
		h.logger.Errorw("failed to format feed event",
			"event_type", event.Type,
			"error", err,
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.conns {
		if !complaint.CanView(event.Scope, conn.Viewer) {
			continue
		}
		if !conn.TrySend(data) {
			h.logger.Warnw("failed to send feed event, channel full",
				"conn_id", conn.ID,
				"event_type", event.Type,
			)
		}
	}
}

func (h *FeedHub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Shutdown closes every stream. Safe to call more than once.
func (h *FeedHub) Shutdown() {
	if !h.shutdown.CompareAndSwap(false, true) {
		return
	}

	h.mu.Lock()
	for _, conn := range h.conns {
		conn.Close()
	}
	h.conns = make(map[string]*FeedConn)
	h.userConns = make(map[uint]int)
	h.mu.Unlock()
}

// formatFeedEvent renders "event: <type>\ndata: <json>\n\n".
func formatFeedEvent(event complaint.ChangeEvent) ([]byte, error) {
	data, err := json.Marshal(FeedEvent{
		Type:       event.Type,
		ID:         event.SID,
		Status:     event.Status.String(),
		Votes:      event.Votes,
		HostelType: event.Scope.HostelType.String(),
		Timestamp:  event.OccurredAt.UnixMilli(),
	})
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, data)), nil
}
