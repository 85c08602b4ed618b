// Package common holds the event-stream plumbing shared by SSE handlers.
package common

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fixora-app/fixora/internal/infrastructure/services"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

const (
	SSEKeepaliveInterval = 30 * time.Second

	// SSEReconnectDelay is sent as the retry field so EventSource clients
	// back off before reconnecting.
	SSEReconnectDelay = 3 * time.Second

	SSEContentType = "text/event-stream"
)

// SSEHandlerBase holds the pieces every event stream handler needs.
type SSEHandlerBase struct {
	hub               *services.FeedHub
	logger            logger.Interface
	keepaliveInterval time.Duration
}

func NewSSEHandlerBase(hub *services.FeedHub, log logger.Interface) *SSEHandlerBase {
	return &SSEHandlerBase{
		hub:               hub,
		logger:            log,
		keepaliveInterval: SSEKeepaliveInterval,
	}
}

// WithKeepalive overrides the keepalive interval.
func (h *SSEHandlerBase) WithKeepalive(d time.Duration) *SSEHandlerBase {
	if d > 0 {
		h.keepaliveInterval = d
	}
	return h
}

func (h *SSEHandlerBase) Hub() *services.FeedHub {
	return h.hub
}

// SetupSSEResponse sets the stream headers. X-Accel-Buffering stops nginx
// from holding frames back.
func (h *SSEHandlerBase) SetupSSEResponse(c *gin.Context) {
	c.Header("Content-Type", SSEContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
}

func (h *SSEHandlerBase) GenerateConnID() string {
	return uuid.New().String()
}

// SendInitialConnection writes the opening comment and retry hint. False
// means the client is already gone.
func (h *SSEHandlerBase) SendInitialConnection(c *gin.Context) bool {
	preamble := fmt.Sprintf(": connected\nretry: %d\n\n", SSEReconnectDelay.Milliseconds())
	if _, err := c.Writer.WriteString(preamble); err != nil {
		return false
	}
	c.Writer.Flush()
	return true
}

// RunEventLoop blocks until the client disconnects, a write fails or the
// hub closes the connection. The connection is unregistered on return.
func (h *SSEHandlerBase) RunEventLoop(c *gin.Context, conn *services.FeedConn, logPrefix string) {
	defer h.hub.Unregister(conn.ID)

	keepAliveTicker := time.NewTicker(h.keepaliveInterval)
	defer keepAliveTicker.Stop()

	ctx := c.Request.Context()

	for {
		select {
		case <-ctx.Done():
			h.logger.Infow(logPrefix+" connection closed by client",
				"conn_id", conn.ID,
				"user_sid", conn.Viewer.SID,
			)
			return

		case data, ok := <-conn.Send:
			if !ok {
				return
			}
			if _, err := c.Writer.Write(data); err != nil {
				h.logger.Warnw(logPrefix+" write error",
					"conn_id", conn.ID,
					"error", err,
				)
				return
			}
			c.Writer.Flush()

		case <-keepAliveTicker.C:
			if _, err := c.Writer.WriteString(": keepalive\n\n"); err != nil {
				h.logger.Warnw(logPrefix+" keepalive error",
					"conn_id", conn.ID,
					"error", err,
				)
				return
			}
			c.Writer.Flush()
		}
	}
}
