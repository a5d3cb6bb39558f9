package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/examsync/examsync/internal/app/models/dto"
	"github.com/examsync/examsync/internal/app/services"
	"github.com/examsync/examsync/internal/middleware"
	"github.com/examsync/examsync/internal/pkg/apperrors"
)

// ScheduleController handles schedule query and meeting link endpoints
type ScheduleController struct {
	eventService *services.EventService
	logger       zerolog.Logger
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(eventService *services.EventService, logger zerolog.Logger) *ScheduleController {
	return &ScheduleController{
		eventService: eventService,
		logger:       logger,
	}
}

func parseMonthParams(ctx *gin.Context) (year, month int, err error) {
	now := time.Now().UTC()

	year, err = strconv.Atoi(ctx.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil || year < 2000 || year > 2200 {
		return 0, 0, apperrors.NewValidationError("invalid year parameter")
	}

	month, err = strconv.Atoi(ctx.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, apperrors.NewValidationError("invalid month parameter")
	}

	return year, month, nil
}

// MySchedules returns the authenticated user's schedules for one month.
// Examiners see the schedules they conduct, students the ones they sit.
// @Summary List own schedules for a month
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year (defaults to current)"
// @Param month query int false "Month 1-12 (defaults to current)"
// @Success 200 {object} dto.APIResponse{data=[]models.Schedule}
// @Router /schedules/me [get]
func (c *ScheduleController) MySchedules(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}
	role, _ := middleware.GetRoleType(ctx)

	year, month, err := parseMonthParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var schedules interface{}
	if role == "EXAMINER" {
		schedules, err = c.eventService.GetExaminerSchedules(ctx.Request.Context(), userID, year, month)
	} else {
		schedules, err = c.eventService.GetStudentSchedules(ctx.Request.Context(), userID, year, month)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(schedules, ""))
}

// SetMeetingLink attaches a meeting link to a schedule
// @Summary Set a schedule's meeting link
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Param request body dto.MeetingLinkRequest true "Meeting link"
// @Success 200 {object} dto.APIResponse{data=models.Schedule}
// @Failure 403 {object} dto.ErrorResponse "Not the assigned examiner"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Router /schedules/{id}/meeting-link [put]
func (c *ScheduleController) SetMeetingLink(ctx *gin.Context) {
	examinerID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.MeetingLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	schedule, err := c.eventService.SetMeetingLink(ctx.Request.Context(), id, examinerID, req.MeetingLink)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(schedule, "Meeting link set"))
}
