package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fixora-app/fixora/internal/interfaces/http/handlers/common"
	"github.com/fixora-app/fixora/internal/shared/logger"
	"github.com/fixora-app/fixora/internal/shared/utils"
)

// ComplaintStreamHandler pushes live complaint changes over SSE. Events
// carry ids, status and tallies only; clients refetch for details.
type ComplaintStreamHandler struct {
	*common.SSEHandlerBase
	logger logger.Interface
}

func NewComplaintStreamHandler(base *common.SSEHandlerBase, logger logger.Interface) *ComplaintStreamHandler {
	return &ComplaintStreamHandler{
		SSEHandlerBase: base,
		logger:         logger,
	}
}

// Stream handles GET /complaints/stream
// @Summary Complaint change stream
// @Description Server-sent events for complaint changes the caller can see. The token may be passed as access_token
// @Tags complaints
// @Produce text/event-stream
// @Security Bearer
// @Param access_token query string false "Bearer token for EventSource clients"
// @Success 200 {string} string "text/event-stream"
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /complaints/stream [get]
func (h *ComplaintStreamHandler) Stream(c *gin.Context) {
	viewer, ok := requireProfile(c)
	if !ok {
		return
	}

	connID := h.GenerateConnID()
	conn := h.Hub().Register(connID, viewer)
	if conn == nil {
		utils.ErrorResponse(c, http.StatusTooManyRequests, "too many open streams")
		return
	}

	h.SetupSSEResponse(c)
	c.Status(http.StatusOK)

	if !h.SendInitialConnection(c) {
		h.Hub().Unregister(connID)
		h.logger.Warnw("complaint stream initial write failed", "conn_id", connID)
		return
	}

	h.logger.Infow("complaint stream opened", "conn_id", connID, "user_sid", viewer.SID)
	h.RunEventLoop(c, conn, "complaint stream")
}
