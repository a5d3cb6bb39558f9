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

// AvailabilityController handles availability and examiner matching endpoints
type AvailabilityController struct {
	availabilityService *services.AvailabilityService
	logger              zerolog.Logger
}

// NewAvailabilityController creates a new AvailabilityController
func NewAvailabilityController(availabilityService *services.AvailabilityService, logger zerolog.Logger) *AvailabilityController {
	return &AvailabilityController{
		availabilityService: availabilityService,
		logger:              logger,
	}
}

// Submit declares the authenticated examiner's slots for one date
// @Summary Submit availability
// @Description Declares free slots for a future date. Resubmitting for the same date replaces the stored slots.
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitAvailabilityRequest true "Date and slots"
// @Success 200 {object} dto.APIResponse{data=models.ExaminerAvailability}
// @Failure 400 {object} dto.ErrorResponse "Past date or malformed slot"
// @Router /availability [post]
func (c *AvailabilityController) Submit(ctx *gin.Context) {
	examinerID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.SubmitAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	availability, err := c.availabilityService.SubmitAvailability(ctx.Request.Context(), examinerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(availability, "Availability saved"))
}

// MyAvailability returns the authenticated examiner's upcoming entries
// @Summary List own availability
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ExaminerAvailability}
// @Router /availability/me [get]
func (c *AvailabilityController) MyAvailability(ctx *gin.Context) {
	examinerID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	entries, err := c.availabilityService.GetAvailability(ctx.Request.Context(), examinerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(entries, ""))
}

// MatchForEvent returns examiners whose availability covers an event window
// @Summary Match examiners for an event
// @Description Lists examiners whose declared availability covers the event's daily time window on every date of the window.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /availability/match/{id} [get]
func (c *AvailabilityController) MatchForEvent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	matched, err := c.availabilityService.MatchExaminersForEvent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(matched, ""))
}

// Browse lists examiners with capacity, load and prior modules
// @Summary Browse examiners
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ExaminerCandidate}
// @Router /availability/browse [get]
func (c *AvailabilityController) Browse(ctx *gin.Context) {
	candidates, err := c.availabilityService.BrowseExaminers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(candidates, ""))
}
