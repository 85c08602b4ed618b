package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fixora-app/fixora/internal/application/complaint/usecases"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/interfaces/http/middleware"
	"github.com/fixora-app/fixora/internal/shared/constants"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/id"
	"github.com/fixora-app/fixora/internal/shared/logger"
	"github.com/fixora-app/fixora/internal/shared/utils"
)

const imageFormField = "image"

type ComplaintHandler struct {
	uc     ComplaintUseCases
	logger logger.Interface
}

func NewComplaintHandler(uc ComplaintUseCases, logger logger.Interface) *ComplaintHandler {
	return &ComplaintHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListComplaints handles GET /complaints?tab=submitted|approved|fixed
// @Summary List complaints
// @Description Feed of complaints visible to the caller, newest first. Offline is set when served from the local snapshot
// @Tags complaints
// @Produce json
// @Security Bearer
// @Param tab query string false "Status tab" Enums(submitted, approved, fixed)
// @Success 200 {object} utils.APIResponse{data=dto.FeedDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /complaints [get]
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	viewer, ok := requireProfile(c)
	if !ok {
		return
	}

	result, err := h.uc.List.Execute(c.Request.Context(), usecases.ListComplaintsQuery{
		Viewer: viewer,
		Tab:    c.Query("tab"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetComplaint handles GET /complaints/:id
// @Summary Get complaint
// @Description Get one complaint the caller can see
// @Tags complaints
// @Produce json
// @Security Bearer
// @Param id path string true "Complaint ID (cmp_...)"
// @Success 200 {object} utils.APIResponse{data=dto.ComplaintDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	viewer, ok := requireProfile(c)
	if !ok {
		return
	}
	sid, err := parseComplaintSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetComplaintQuery{
		Viewer: viewer,
		SID:    sid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateComplaint handles POST /complaints
// @Summary Create complaint
// @Description Submit a complaint as JSON, or as multipart form data with an optional image part
// @Tags complaints
// @Accept json,mpfd
// @Produce json
// @Security Bearer
// @Param body body CreateComplaintRequest true "Complaint"
// @Param image formData file false "Photo (multipart only)"
// @Success 201 {object} utils.APIResponse{data=dto.ComplaintDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /complaints [post]
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	viewer, ok := requireProfile(c)
	if !ok {
		return
	}

	var req CreateComplaintRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warnw("invalid request body for create complaint", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.CreateComplaintCommand{
		Submitter:   viewer,
		Description: req.Description,
		Category:    req.Category,
		Visibility:  req.Visibility,
	}

	if c.ContentType() == constants.ContentTypeMultipart {
		file, header, err := c.Request.FormFile(imageFormField)
		switch {
		case err == nil:
			defer file.Close()
			cmd.Image = imageUpload(file, header)
		case err != http.ErrMissingFile:
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid image upload"))
			return
		}
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Complaint submitted successfully")
}

// EditComplaint handles PATCH /complaints/:id
// @Summary Edit complaint
// @Description Submitter edits a complaint that is still submitted
// @Tags complaints
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Complaint ID (cmp_...)"
// @Param body body EditComplaintRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.ComplaintDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /complaints/{id} [patch]
func (h *ComplaintHandler) EditComplaint(c *gin.Context) {
	viewer, ok := requireProfile(c)
	if !ok {
		return
	}
	sid, err := parseComplaintSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req EditComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	if req.isEmpty() {
		utils.ErrorResponseWithError(c, errors.NewValidationError("nothing to update"))
		return
	}

	result, err := h.uc.Edit.Execute(c.Request.Context(), usecases.EditComplaintCommand{
		Actor:       viewer,
		SID:         sid,
		Description: req.Description,
		Category:    req.Category,
		Visibility:  req.Visibility,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Complaint updated successfully", result)
}

// DeleteComplaint handles DELETE /complaints/:id
// @Summary Delete complaint
// @Description Submitter deletes a complaint that is still submitted
// @Tags complaints
// @Produce json
// @Security Bearer
// @Param id path string true "Complaint ID (cmp_...)"
// @Success 204 "No Content"
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /complaints/{id} [delete]
func (h *ComplaintHandler) DeleteComplaint(c *gin.Context) {
	viewer, ok := requireProfile(c)
	if !ok {
		return
	}
	sid, err := parseComplaintSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), usecases.DeleteComplaintCommand{
		Actor: viewer,
		SID:   sid,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ApproveComplaint handles POST /complaints/:id/approve
// @Summary Approve complaint
// @Description Warden approves a submitted complaint
// @Tags complaints
// @Produce json
// @Security Bearer
// @Param id path string true "Complaint ID (cmp_...)"
// @Success 200 {object} utils.APIResponse{data=dto.ComplaintDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /complaints/{id}/approve [post]
func (h *ComplaintHandler) ApproveComplaint(c *gin.Context) {
	h.transition(c, h.uc.Approve, "Complaint approved")
}

// MarkFixed handles POST /complaints/:id/fix
// @Summary Mark complaint fixed
// @Description Staff marks an approved complaint fixed
// @Tags complaints
// @Produce json
// @Security Bearer
// @Param id path string true "Complaint ID (cmp_...)"
// @Success 200 {object} utils.APIResponse{data=dto.ComplaintDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /complaints/{id}/fix [post]
func (h *ComplaintHandler) MarkFixed(c *gin.Context) {
	h.transition(c, h.uc.Fix, "Complaint marked as fixed")
}

func (h *ComplaintHandler) transition(c *gin.Context, uc transitionComplaintUseCase, message string) {
	viewer, ok := requireProfile(c)
	if !ok {
		return
	}
	sid, err := parseComplaintSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := uc.Execute(c.Request.Context(), usecases.TransitionCommand{
		Actor: viewer,
		SID:   sid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// CastVote handles POST /complaints/:id/vote. Repeating the current
// direction withdraws the vote.
// @Summary Vote on complaint
// @Description Cast or toggle the caller's vote; repeating the current direction retracts it
// @Tags complaints
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Complaint ID (cmp_...)"
// @Param body body CastVoteRequest true "Direction"
// @Success 200 {object} utils.APIResponse{data=usecases.CastVoteResult}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /complaints/{id}/vote [post]
func (h *ComplaintHandler) CastVote(c *gin.Context) {
	viewer, ok := requireProfile(c)
	if !ok {
		return
	}
	sid, err := parseComplaintSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.Vote.Execute(c.Request.Context(), usecases.CastVoteCommand{
		Viewer:    viewer,
		SID:       sid,
		Direction: req.Direction,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func requireProfile(c *gin.Context) (user.Profile, bool) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return user.Profile{}, false
	}
	return profile, true
}

func parseComplaintSID(c *gin.Context) (string, error) {
	return utils.ParseSIDParam(c, "id", id.PrefixComplaint, "complaint")
}

func imageUpload(file multipart.File, header *multipart.FileHeader) *usecases.ImageUpload {
	return &usecases.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get(constants.HeaderContentType),
		Size:        header.Size,
		Body:        file,
	}
}
