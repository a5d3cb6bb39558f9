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

// EvaluationController handles grade submission and reporting endpoints
type EvaluationController struct {
	evaluationService *services.EvaluationService
	logger            zerolog.Logger
}

// NewEvaluationController creates a new EvaluationController
func NewEvaluationController(evaluationService *services.EvaluationService, logger zerolog.Logger) *EvaluationController {
	return &EvaluationController{
		evaluationService: evaluationService,
		logger:            logger,
	}
}

// Submit records a grade for one schedule
// @Summary Submit an evaluation
// @Description Records a grade and presentation notes for one schedule. Submitting again for the same schedule overwrites the stored values.
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitEvaluationRequest true "Evaluation"
// @Success 200 {object} dto.APIResponse{data=models.Evaluation}
// @Failure 400 {object} dto.ErrorResponse "Grade out of range"
// @Failure 403 {object} dto.ErrorResponse "Not the assigned examiner"
// @Router /evaluations [post]
func (c *EvaluationController) Submit(ctx *gin.Context) {
	examinerID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.SubmitEvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	evaluation, err := c.evaluationService.Submit(ctx.Request.Context(), examinerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(evaluation, "Evaluation recorded"))
}

// SubmitBatch records several evaluations in one call
// @Summary Submit evaluations in batch
// @Description Records several evaluations, returning a per-item outcome instead of failing the batch on the first bad item.
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchEvaluationRequest true "Evaluations"
// @Success 200 {object} dto.APIResponse{data=[]services.BatchResult}
// @Router /evaluations/batch [post]
func (c *EvaluationController) SubmitBatch(ctx *gin.Context) {
	examinerID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.BatchEvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	results, err := c.evaluationService.SubmitBatch(ctx.Request.Context(), examinerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(results, "Batch processed"))
}

// EventReport returns every evaluation of one event
// @Summary Event evaluation report
// @Tags evaluations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Evaluation}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /evaluations/events/{id} [get]
func (c *EvaluationController) EventReport(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	evaluations, err := c.evaluationService.EventReport(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(evaluations, ""))
}

// MyResults returns the authenticated student's evaluations
// @Summary List own evaluation results
// @Tags evaluations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Evaluation}
// @Router /evaluations/me [get]
func (c *EvaluationController) MyResults(ctx *gin.Context) {
	studentID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	evaluations, err := c.evaluationService.StudentResults(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(evaluations, ""))
}
