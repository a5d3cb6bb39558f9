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

// ModuleController handles module management and student registration
type ModuleController struct {
	moduleService *services.ModuleService
	logger        zerolog.Logger
}

// NewModuleController creates a new ModuleController
func NewModuleController(moduleService *services.ModuleService, logger zerolog.Logger) *ModuleController {
	return &ModuleController{
		moduleService: moduleService,
		logger:        logger,
	}
}

// CreateModule creates a module
// @Summary Create a module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateModuleRequest true "Module information"
// @Success 201 {object} dto.APIResponse{data=models.Module}
// @Failure 409 {object} dto.ErrorResponse "Module code already exists"
// @Router /modules [post]
func (c *ModuleController) CreateModule(ctx *gin.Context) {
	var req dto.CreateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	module, err := c.moduleService.CreateModule(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(module, "Module created"))
}

// ListModules returns all modules
// @Summary List modules
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Module}
// @Router /modules [get]
func (c *ModuleController) ListModules(ctx *gin.Context) {
	modules, err := c.moduleService.ListModules(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(modules, ""))
}

// GetModule returns one module by code
// @Summary Get a module
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param code path string true "Module code"
// @Success 200 {object} dto.APIResponse{data=models.Module}
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /modules/{code} [get]
func (c *ModuleController) GetModule(ctx *gin.Context) {
	module, err := c.moduleService.GetModule(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(module, ""))
}

// UpdateModule updates a module
// @Summary Update a module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Module code"
// @Param request body dto.UpdateModuleRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Module}
// @Router /modules/{code} [put]
func (c *ModuleController) UpdateModule(ctx *gin.Context) {
	var req dto.UpdateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	module, err := c.moduleService.UpdateModule(ctx.Request.Context(), ctx.Param("code"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(module, "Module updated"))
}

// DeleteModule deletes a module
// @Summary Delete a module
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param code path string true "Module code"
// @Success 200 {object} dto.APIResponse
// @Router /modules/{code} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	if err := c.moduleService.DeleteModule(ctx.Request.Context(), ctx.Param("code")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("moduleCode", ctx.Param("code")).Msg("Module deleted")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Module deleted"))
}

// Register enrolls the authenticated student into a module
// @Summary Register for a module
// @Description Enrolls the authenticated student into a module using the module's shared password.
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ModuleRegistrationRequest true "Module code and password"
// @Success 201 {object} dto.APIResponse{data=models.ModuleRegistration}
// @Failure 401 {object} dto.ErrorResponse "Wrong module password"
// @Failure 409 {object} dto.ErrorResponse "Already registered"
// @Router /modules/register [post]
func (c *ModuleController) Register(ctx *gin.Context) {
	studentID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.ModuleRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	reg, err := c.moduleService.RegisterStudent(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(reg, "Registered for module"))
}

// MyRegistrations returns the authenticated student's registrations
// @Summary List own module registrations
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ModuleRegistration}
// @Router /modules/registrations/me [get]
func (c *ModuleController) MyRegistrations(ctx *gin.Context) {
	studentID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	regs, err := c.moduleService.GetStudentRegistrations(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(regs, ""))
}
