package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/fixora-app/fixora/internal/application/user/dto"
	"github.com/fixora-app/fixora/internal/application/user/usecases"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/id"
	"github.com/fixora-app/fixora/internal/shared/logger"
	"github.com/fixora-app/fixora/internal/shared/utils"
)

type addStaffUseCase interface {
	Execute(ctx context.Context, cmd usecases.AddStaffCommand) (*dto.UserDTO, error)
}

type listStaffUseCase interface {
	Execute(ctx context.Context, actor user.Profile) ([]*dto.UserDTO, error)
}

type removeStaffUseCase interface {
	Execute(ctx context.Context, cmd usecases.RemoveStaffCommand) error
}

// StaffHandler lets wardens manage maintenance staff accounts.
type StaffHandler struct {
	addStaffUC    addStaffUseCase
	listStaffUC   listStaffUseCase
	removeStaffUC removeStaffUseCase
	logger        logger.Interface
}

func NewStaffHandler(
	addStaffUC addStaffUseCase,
	listStaffUC listStaffUseCase,
	removeStaffUC removeStaffUseCase,
	logger logger.Interface,
) *StaffHandler {
	return &StaffHandler{
		addStaffUC:    addStaffUC,
		listStaffUC:   listStaffUC,
		removeStaffUC: removeStaffUC,
		logger:        logger,
	}
}

type AddStaffRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Department string `json:"department" binding:"required,department"`
	Wing       string `json:"wing" binding:"omitempty,oneof=male female undefined"`
}

// ListStaff handles GET /staff
// @Summary List staff
// @Description Maintenance staff accounts
// @Tags staff
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]dto.UserDTO}}
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /staff [get]
func (h *StaffHandler) ListStaff(c *gin.Context) {
	actor, ok := requireProfile(c)
	if !ok {
		return
	}

	result, err := h.listStaffUC.Execute(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result, len(result))
}

// AddStaff handles POST /staff
// @Summary Add staff
// @Description Warden creates a maintenance staff account
// @Tags staff
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body AddStaffRequest true "Staff account"
// @Success 201 {object} utils.APIResponse{data=dto.UserDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /staff [post]
func (h *StaffHandler) AddStaff(c *gin.Context) {
	actor, ok := requireProfile(c)
	if !ok {
		return
	}

	var req AddStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add staff", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.addStaffUC.Execute(c.Request.Context(), usecases.AddStaffCommand{
		Actor:      actor,
		Email:      req.Email,
		Name:       req.Name,
		Password:   req.Password,
		Department: req.Department,
		Wing:       req.Wing,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Staff member added successfully")
}

// RemoveStaff handles DELETE /staff/:id
// @Summary Remove staff
// @Description Warden removes a maintenance staff account
// @Tags staff
// @Produce json
// @Security Bearer
// @Param id path string true "User ID (usr_...)"
// @Success 204 "No Content"
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /staff/{id} [delete]
func (h *StaffHandler) RemoveStaff(c *gin.Context) {
	actor, ok := requireProfile(c)
	if !ok {
		return
	}
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixUser, "staff")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.removeStaffUC.Execute(c.Request.Context(), usecases.RemoveStaffCommand{
		Actor:    actor,
		StaffSID: sid,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
