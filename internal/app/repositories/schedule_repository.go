package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examsync/examsync/internal/app/models"
	"github.com/examsync/examsync/internal/db"
	"github.com/examsync/examsync/internal/pkg/apperrors"
)

// ScheduleRepository handles database operations for exam schedules
type ScheduleRepository struct {
	db *pgxpool.Pool
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{
		db: db,
	}
}

const scheduleColumns = `id, event_id, student_id, examiner_id, module_code, scheduled_date, slots, meeting_link, created_at, updated_at`

func scanSchedule(row pgx.Row) (*models.Schedule, error) {
	var schedule models.Schedule
	err := row.Scan(
		&schedule.ID,
		&schedule.EventID,
		&schedule.StudentID,
		&schedule.ExaminerID,
		&schedule.ModuleCode,
		&schedule.ScheduledTime.Date,
		&schedule.ScheduledTime.Slots,
		&schedule.MeetingLink,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("error scanning schedule: %w", err)
	}
	return &schedule, nil
}

// CreateForEvent inserts all schedules of one event expansion atomically.
// Either every schedule lands or none does.
func (r *ScheduleRepository) CreateForEvent(ctx context.Context, schedules []*models.Schedule) error {
	now := time.Now()

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, schedule := range schedules {
			schedule.CreatedAt = now
			schedule.UpdatedAt = now

			err := tx.QueryRow(ctx, `
				INSERT INTO schedules (event_id, student_id, examiner_id, module_code, scheduled_date, slots, meeting_link, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING id`,
				schedule.EventID, schedule.StudentID, schedule.ExaminerID, schedule.ModuleCode,
				schedule.ScheduledTime.Date, schedule.ScheduledTime.Slots,
				schedule.MeetingLink, schedule.CreatedAt, schedule.UpdatedAt,
			).Scan(&schedule.ID)
			if err != nil {
				return fmt.Errorf("error creating schedule for student %d: %w", schedule.StudentID, err)
			}
		}
		return nil
	})
}

// GetByID retrieves a schedule by ID
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`
	return scanSchedule(r.db.QueryRow(ctx, query, id))
}

func (r *ScheduleRepository) listWithEvaluationFlag(ctx context.Context, query string, args ...any) ([]*models.Schedule, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*models.Schedule
	for rows.Next() {
		var schedule models.Schedule
		err := rows.Scan(
			&schedule.ID,
			&schedule.EventID,
			&schedule.StudentID,
			&schedule.ExaminerID,
			&schedule.ModuleCode,
			&schedule.ScheduledTime.Date,
			&schedule.ScheduledTime.Slots,
			&schedule.MeetingLink,
			&schedule.CreatedAt,
			&schedule.UpdatedAt,
			&schedule.HasEvaluation,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning schedule: %w", err)
		}
		schedules = append(schedules, &schedule)
	}

	return schedules, rows.Err()
}

// ListByExaminerBetween retrieves an examiner's schedules within a date range,
// annotated with whether an evaluation already exists for each.
func (r *ScheduleRepository) ListByExaminerBetween(ctx context.Context, examinerID int64, from, to time.Time) ([]*models.Schedule, error) {
	query := `
		SELECT s.id, s.event_id, s.student_id, s.examiner_id, s.module_code, s.scheduled_date, s.slots, s.meeting_link, s.created_at, s.updated_at,
			EXISTS(SELECT 1 FROM evaluations ev WHERE ev.schedule_id = s.id) AS has_evaluation
		FROM schedules s
		WHERE s.examiner_id = $1 AND s.scheduled_date >= $2 AND s.scheduled_date <= $3
		ORDER BY s.scheduled_date, s.id`
	return r.listWithEvaluationFlag(ctx, query, examinerID, from, to)
}

// ListByStudentBetween retrieves a student's schedules within a date range
func (r *ScheduleRepository) ListByStudentBetween(ctx context.Context, studentID int64, from, to time.Time) ([]*models.Schedule, error) {
	query := `
		SELECT s.id, s.event_id, s.student_id, s.examiner_id, s.module_code, s.scheduled_date, s.slots, s.meeting_link, s.created_at, s.updated_at,
			EXISTS(SELECT 1 FROM evaluations ev WHERE ev.schedule_id = s.id) AS has_evaluation
		FROM schedules s
		WHERE s.student_id = $1 AND s.scheduled_date >= $2 AND s.scheduled_date <= $3
		ORDER BY s.scheduled_date, s.id`
	return r.listWithEvaluationFlag(ctx, query, studentID, from, to)
}

// ListByEvent retrieves every schedule of one event
func (r *ScheduleRepository) ListByEvent(ctx context.Context, eventID int64) ([]*models.Schedule, error) {
	query := `
		SELECT s.id, s.event_id, s.student_id, s.examiner_id, s.module_code, s.scheduled_date, s.slots, s.meeting_link, s.created_at, s.updated_at,
			EXISTS(SELECT 1 FROM evaluations ev WHERE ev.schedule_id = s.id) AS has_evaluation
		FROM schedules s
		WHERE s.event_id = $1
		ORDER BY s.scheduled_date, s.id`
	return r.listWithEvaluationFlag(ctx, query, eventID)
}

// UpdateMeetingLink sets or clears a schedule's meeting link
func (r *ScheduleRepository) UpdateMeetingLink(ctx context.Context, id int64, link *string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE schedules SET meeting_link = $1, updated_at = $2 WHERE id = $3`,
		link, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating meeting link: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}

	return nil
}

// CountByExaminer counts an examiner's schedules from the given date on
func (r *ScheduleRepository) CountByExaminer(ctx context.Context, examinerID int64, from time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM schedules WHERE examiner_id = $1 AND scheduled_date >= $2`,
		examinerID, from).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting examiner schedules: %w", err)
	}
	return count, nil
}

// DistinctModulesByExaminer returns the module codes an examiner has examined
func (r *ScheduleRepository) DistinctModulesByExaminer(ctx context.Context, examinerID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT module_code FROM schedules WHERE examiner_id = $1 ORDER BY module_code`,
		examinerID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving examiner modules: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	return codes, rows.Err()
}
