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

// NotificationController handles notification dispatch and assignment responses
type NotificationController struct {
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// Notify dispatches assignment notices to examiners
// @Summary Notify examiners about an event
// @Description Creates one notification plus one pending assignment per examiner and hands each notice to the mailer. Delivery failures are recorded without aborting the dispatch.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NotifyExaminersRequest true "Event, examiners and message"
// @Success 201 {object} dto.APIResponse{data=[]models.Notification}
// @Failure 404 {object} dto.ErrorResponse "Event or examiner not found"
// @Router /notifications [post]
func (c *NotificationController) Notify(ctx *gin.Context) {
	var req dto.NotifyExaminersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	notifications, err := c.notificationService.NotifyExaminers(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(notifications, "Examiners notified"))
}

// MyNotifications returns the authenticated examiner's notifications
// @Summary List own notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Notification}
// @Router /notifications/me [get]
func (c *NotificationController) MyNotifications(ctx *gin.Context) {
	examinerID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	notifications, err := c.notificationService.ListNotifications(ctx.Request.Context(), examinerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notifications, ""))
}

// MyAssignments returns the authenticated examiner's assignments
// @Summary List own assignments
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Assignment}
// @Router /assignments/me [get]
func (c *NotificationController) MyAssignments(ctx *gin.Context) {
	examinerID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	assignments, err := c.notificationService.ListAssignments(ctx.Request.Context(), examinerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignments, ""))
}

// Respond records the examiner's accept or decline on an assignment
// @Summary Respond to an assignment
// @Description Accepts or declines an assignment. Declining requires a reason; a decided assignment returns 409.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.RespondAssignmentRequest true "Response"
// @Success 200 {object} dto.APIResponse{data=models.Assignment}
// @Failure 403 {object} dto.ErrorResponse "Not the addressed examiner"
// @Failure 409 {object} dto.ErrorResponse "Assignment already decided"
// @Router /assignments/{id}/respond [post]
func (c *NotificationController) Respond(ctx *gin.Context) {
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

	var req dto.RespondAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	assignment, err := c.notificationService.RespondAssignment(ctx.Request.Context(), examinerID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Response recorded"))
}
