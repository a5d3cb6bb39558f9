package services

import (
	"context"

	"github.com/examsync/examsync/internal/app/models"
	"github.com/examsync/examsync/internal/app/models/dto"
	"github.com/examsync/examsync/internal/pkg/apperrors"
	"github.com/examsync/examsync/internal/pkg/auth"
	"github.com/examsync/examsync/internal/pkg/logger"
)

// ModuleStore is the persistence surface for modules and registrations
type ModuleStore interface {
	Create(ctx context.Context, module *models.Module) error
	GetByCode(ctx context.Context, code string) (*models.Module, error)
	GetAll(ctx context.Context) ([]*models.Module, error)
	Update(ctx context.Context, module *models.Module) error
	Delete(ctx context.Context, code string) error
	RegisterStudent(ctx context.Context, studentID int64, moduleCode string) (*models.ModuleRegistration, error)
	GetRegisteredStudentIDs(ctx context.Context, moduleCode string) ([]int64, error)
	GetRegistrationsByStudent(ctx context.Context, studentID int64) ([]*models.ModuleRegistration, error)
}

// ModuleService handles module management and student registration
type ModuleService struct {
	modules ModuleStore
}

// NewModuleService creates a new module service
func NewModuleService(modules ModuleStore) *ModuleService {
	return &ModuleService{
		modules: modules,
	}
}

// CreateModule creates a module with a hashed registration password
func (s *ModuleService) CreateModule(ctx context.Context, req *dto.CreateModuleRequest) (*models.Module, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	module := &models.Module{
		Code:     req.Code,
		Name:     req.Name,
		Password: hashed,
	}

	if err := s.modules.Create(ctx, module); err != nil {
		return nil, err
	}

	logger.Info().Str("moduleCode", module.Code).Msg("Module created")
	return module, nil
}

// GetModule retrieves one module by code
func (s *ModuleService) GetModule(ctx context.Context, code string) (*models.Module, error) {
	return s.modules.GetByCode(ctx, code)
}

// ListModules retrieves all modules
func (s *ModuleService) ListModules(ctx context.Context) ([]*models.Module, error) {
	return s.modules.GetAll(ctx)
}

// UpdateModule merges the non-nil fields of the request into the module
func (s *ModuleService) UpdateModule(ctx context.Context, code string, req *dto.UpdateModuleRequest) (*models.Module, error) {
	module, err := s.modules.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		module.Name = *req.Name
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		module.Password = hashed
	}

	if err := s.modules.Update(ctx, module); err != nil {
		return nil, err
	}

	return module, nil
}

// DeleteModule deletes a module by code
func (s *ModuleService) DeleteModule(ctx context.Context, code string) error {
	return s.modules.Delete(ctx, code)
}

// RegisterStudent enrolls a student into a module after checking the
// module's shared registration password.
func (s *ModuleService) RegisterStudent(ctx context.Context, studentID int64, req *dto.ModuleRegistrationRequest) (*models.ModuleRegistration, error) {
	module, err := s.modules.GetByCode(ctx, req.ModuleCode)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(module.Password, req.Password) {
		return nil, apperrors.ErrWrongModulePassword
	}

	reg, err := s.modules.RegisterStudent(ctx, studentID, req.ModuleCode)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentId", studentID).Str("moduleCode", req.ModuleCode).Msg("Student registered for module")
	return reg, nil
}

// GetStudentRegistrations retrieves the modules a student has joined
func (s *ModuleService) GetStudentRegistrations(ctx context.Context, studentID int64) ([]*models.ModuleRegistration, error) {
	return s.modules.GetRegistrationsByStudent(ctx, studentID)
}
