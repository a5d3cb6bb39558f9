package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examsync/examsync/internal/app/models"
)

// EvaluationRepository handles database operations for evaluations
type EvaluationRepository struct {
	db *pgxpool.Pool
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{
		db: db,
	}
}

// Upsert writes an evaluation for one (student, examiner, schedule, module)
// tuple. A re-submission overwrites grade and presentation in place.
func (r *EvaluationRepository) Upsert(ctx context.Context, evaluation *models.Evaluation) error {
	evaluation.SubmittedAt = time.Now()

	err := r.db.QueryRow(ctx, `
		INSERT INTO evaluations (student_id, examiner_id, schedule_id, module_code, grade, presentation, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (student_id, examiner_id, schedule_id, module_code)
		DO UPDATE SET grade = EXCLUDED.grade, presentation = EXCLUDED.presentation, submitted_at = EXCLUDED.submitted_at
		RETURNING id`,
		evaluation.StudentID, evaluation.ExaminerID, evaluation.ScheduleID,
		evaluation.ModuleCode, evaluation.Grade, evaluation.Presentation, evaluation.SubmittedAt,
	).Scan(&evaluation.ID)
	if err != nil {
		return fmt.Errorf("error upserting evaluation: %w", err)
	}

	return nil
}

// ExistsForSchedule checks whether any evaluation exists for a schedule
func (r *EvaluationRepository) ExistsForSchedule(ctx context.Context, scheduleID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM evaluations WHERE schedule_id = $1)`, scheduleID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking evaluation existence: %w", err)
	}
	return exists, nil
}

// ListByEvent retrieves every evaluation belonging to one event's schedules
func (r *EvaluationRepository) ListByEvent(ctx context.Context, eventID int64) ([]*models.Evaluation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ev.id, ev.student_id, ev.examiner_id, ev.schedule_id, ev.module_code, ev.grade, ev.presentation, ev.submitted_at
		FROM evaluations ev
		JOIN schedules s ON s.id = ev.schedule_id
		WHERE s.event_id = $1
		ORDER BY ev.student_id, ev.id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing event evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []*models.Evaluation
	for rows.Next() {
		var evaluation models.Evaluation
		if err := rows.Scan(&evaluation.ID, &evaluation.StudentID, &evaluation.ExaminerID,
			&evaluation.ScheduleID, &evaluation.ModuleCode, &evaluation.Grade,
			&evaluation.Presentation, &evaluation.SubmittedAt); err != nil {
			return nil, err
		}
		evaluations = append(evaluations, &evaluation)
	}

	return evaluations, rows.Err()
}

// ListByStudent retrieves a student's evaluations, newest first
func (r *EvaluationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Evaluation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, examiner_id, schedule_id, module_code, grade, presentation, submitted_at
		FROM evaluations WHERE student_id = $1
		ORDER BY submitted_at DESC, id DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []*models.Evaluation
	for rows.Next() {
		var evaluation models.Evaluation
		if err := rows.Scan(&evaluation.ID, &evaluation.StudentID, &evaluation.ExaminerID,
			&evaluation.ScheduleID, &evaluation.ModuleCode, &evaluation.Grade,
			&evaluation.Presentation, &evaluation.SubmittedAt); err != nil {
			return nil, err
		}
		evaluations = append(evaluations, &evaluation)
	}

	return evaluations, rows.Err()
}
