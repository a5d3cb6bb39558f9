package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/examsync/examsync/internal/app/models/dto"
	"github.com/examsync/examsync/internal/app/services"
	"github.com/examsync/examsync/internal/middleware"
	"github.com/examsync/examsync/internal/pkg/apperrors"
)

// RescheduleController handles the reschedule request workflow
type RescheduleController struct {
	rescheduleService *services.RescheduleService
	logger            zerolog.Logger
}

// NewRescheduleController creates a new RescheduleController
func NewRescheduleController(rescheduleService *services.RescheduleService, logger zerolog.Logger) *RescheduleController {
	return &RescheduleController{
		rescheduleService: rescheduleService,
		logger:            logger,
	}
}

// Create opens a reschedule request for one of the examiner's schedules
// @Summary Request a reschedule
// @Description Opens a pending request to move a schedule to a proposed time. At most one pending request may exist per schedule and examiner.
// @Tags reschedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRescheduleRequest true "Proposed time and reason"
// @Success 201 {object} dto.APIResponse{data=models.RescheduleRequest}
// @Failure 403 {object} dto.ErrorResponse "Not the assigned examiner"
// @Failure 409 {object} dto.ErrorResponse "A pending request already exists"
// @Router /reschedules [post]
func (c *RescheduleController) Create(ctx *gin.Context) {
	examinerID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.CreateRescheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	request, err := c.rescheduleService.CreateRequest(ctx.Request.Context(), examinerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(request, "Reschedule requested"))
}

// ListPending returns all open requests
// @Summary List pending reschedule requests
// @Tags reschedules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.RescheduleRequest}
// @Router /reschedules/pending [get]
func (c *RescheduleController) ListPending(ctx *gin.Context) {
	requests, err := c.rescheduleService.ListPending(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(requests, ""))
}

// MyRequests returns the authenticated examiner's requests
// @Summary List own reschedule requests
// @Tags reschedules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.RescheduleRequest}
// @Router /reschedules/me [get]
func (c *RescheduleController) MyRequests(ctx *gin.Context) {
	examinerID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	requests, err := c.rescheduleService.ListByExaminer(ctx.Request.Context(), examinerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(requests, ""))
}

// Approve approves a pending request and moves its schedule
// @Summary Approve a reschedule request
// @Description Marks the request APPROVED and moves its schedule to the proposed time atomically. A decided request returns 409.
// @Tags reschedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.RescheduleRequest}
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already decided"
// @Router /reschedules/{id}/approve [post]
func (c *RescheduleController) Approve(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	request, err := c.rescheduleService.Approve(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(request, "Reschedule approved"))
}

// Reject rejects a pending request
// @Summary Reject a reschedule request
// @Tags reschedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.RescheduleRequest}
// @Failure 409 {object} dto.ErrorResponse "Request already decided"
// @Router /reschedules/{id}/reject [post]
func (c *RescheduleController) Reject(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	request, err := c.rescheduleService.Reject(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(request, "Reschedule rejected"))
}
