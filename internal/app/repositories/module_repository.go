package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examsync/examsync/internal/app/models"
	"github.com/examsync/examsync/internal/pkg/apperrors"
	"github.com/examsync/examsync/internal/pkg/dberrors"
)

// ModuleRepository handles database operations for modules and registrations
type ModuleRepository struct {
	db *pgxpool.Pool
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(db *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{
		db: db,
	}
}

// Create creates a new module
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	now := time.Now()
	module.CreatedAt = now
	module.UpdatedAt = now

	err := r.db.QueryRow(ctx, `
		INSERT INTO modules (code, name, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		module.Code, module.Name, module.Password, module.CreatedAt, module.UpdatedAt,
	).Scan(&module.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "modules_code_key") {
			return apperrors.ErrModuleAlreadyExists
		}
		return fmt.Errorf("error creating module: %w", err)
	}

	return nil
}

// GetByCode retrieves a module by its unique code
func (r *ModuleRepository) GetByCode(ctx context.Context, code string) (*models.Module, error) {
	var module models.Module
	err := r.db.QueryRow(ctx, `
		SELECT id, code, name, password, created_at, updated_at
		FROM modules WHERE code = $1`, code).
		Scan(&module.ID, &module.Code, &module.Name, &module.Password, &module.CreatedAt, &module.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleNotFound
		}
		return nil, fmt.Errorf("error retrieving module: %w", err)
	}
	return &module, nil
}

// GetAll retrieves all modules
func (r *ModuleRepository) GetAll(ctx context.Context) ([]*models.Module, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, name, password, created_at, updated_at
		FROM modules ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving modules: %w", err)
	}
	defer rows.Close()

	var modules []*models.Module
	for rows.Next() {
		var module models.Module
		if err := rows.Scan(&module.ID, &module.Code, &module.Name, &module.Password,
			&module.CreatedAt, &module.UpdatedAt); err != nil {
			return nil, err
		}
		modules = append(modules, &module)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return modules, nil
}

// Update updates a module's mutable fields
func (r *ModuleRepository) Update(ctx context.Context, module *models.Module) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE modules SET name = $1, password = $2, updated_at = $3 WHERE code = $4`,
		module.Name, module.Password, time.Now(), module.Code)
	if err != nil {
		return fmt.Errorf("error updating module: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}

	return nil
}

// Delete deletes a module by code
func (r *ModuleRepository) Delete(ctx context.Context, code string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM modules WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("error deleting module: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}

	return nil
}

// RegisterStudent records a student's registration for a module.
// A (student, module) pair may exist at most once.
func (r *ModuleRepository) RegisterStudent(ctx context.Context, studentID int64, moduleCode string) (*models.ModuleRegistration, error) {
	reg := &models.ModuleRegistration{
		StudentID:    studentID,
		ModuleCode:   moduleCode,
		RegisteredAt: time.Now(),
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO module_registrations (student_id, module_code, registered_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		reg.StudentID, reg.ModuleCode, reg.RegisteredAt,
	).Scan(&reg.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "module_registrations_student_id_module_code_key") {
			return nil, apperrors.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("error registering student: %w", err)
	}

	return reg, nil
}

// GetRegisteredStudentIDs returns the IDs of all students registered for a module
func (r *ModuleRepository) GetRegisteredStudentIDs(ctx context.Context, moduleCode string) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT student_id FROM module_registrations
		WHERE module_code = $1 ORDER BY registered_at, student_id`, moduleCode)
	if err != nil {
		return nil, fmt.Errorf("error retrieving registrations: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// GetRegistrationsByStudent returns the registrations of one student
func (r *ModuleRepository) GetRegistrationsByStudent(ctx context.Context, studentID int64) ([]*models.ModuleRegistration, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, module_code, registered_at
		FROM module_registrations WHERE student_id = $1 ORDER BY registered_at`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student registrations: %w", err)
	}
	defer rows.Close()

	var regs []*models.ModuleRegistration
	for rows.Next() {
		var reg models.ModuleRegistration
		if err := rows.Scan(&reg.ID, &reg.StudentID, &reg.ModuleCode, &reg.RegisteredAt); err != nil {
			return nil, err
		}
		regs = append(regs, &reg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return regs, nil
}
