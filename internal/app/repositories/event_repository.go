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

// EventRepository handles database operations for examination events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
	}
}

// Create inserts an event together with its examiner links in one transaction
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO events (name, start_date, end_date, duration, module_code, status, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			event.Name, event.StartDate, event.EndDate, event.Duration,
			event.ModuleCode, event.Status, event.CreatedBy, event.CreatedAt, event.UpdatedAt,
		).Scan(&event.ID)
		if err != nil {
			return fmt.Errorf("error creating event: %w", err)
		}

		for _, examinerID := range event.ExaminerIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO event_examiners (event_id, examiner_id) VALUES ($1, $2)`,
				event.ID, examinerID); err != nil {
				return fmt.Errorf("error linking examiner %d: %w", examinerID, err)
			}
		}

		return nil
	})
}

// GetByID retrieves an event with its examiner and schedule IDs
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	err := r.db.QueryRow(ctx, `
		SELECT id, name, start_date, end_date, duration, module_code, status, created_by, created_at, updated_at
		FROM events WHERE id = $1`, id).
		Scan(&event.ID, &event.Name, &event.StartDate, &event.EndDate, &event.Duration,
			&event.ModuleCode, &event.Status, &event.CreatedBy, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}

	event.ExaminerIDs, err = r.getExaminerIDs(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	event.ScheduleIDs, err = r.getScheduleIDs(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) getExaminerIDs(ctx context.Context, eventID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT examiner_id FROM event_examiners WHERE event_id = $1 ORDER BY examiner_id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving event examiners: %w", err)
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
	return ids, rows.Err()
}

func (r *EventRepository) getScheduleIDs(ctx context.Context, eventID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM schedules WHERE event_id = $1 ORDER BY id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving event schedules: %w", err)
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
	return ids, rows.Err()
}

// List retrieves events ordered by start date, newest first, with pagination
func (r *EventRepository) List(ctx context.Context, offset, limit int) ([]*models.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, start_date, end_date, duration, module_code, status, created_by, created_at, updated_at
		FROM events ORDER BY start_date DESC, id DESC
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Name, &event.StartDate, &event.EndDate, &event.Duration,
			&event.ModuleCode, &event.Status, &event.CreatedBy, &event.CreatedAt, &event.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, event := range events {
		if event.ExaminerIDs, err = r.getExaminerIDs(ctx, event.ID); err != nil {
			return nil, err
		}
	}

	return events, nil
}

// Count returns the total number of events
func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}
	return count, nil
}

// ListByExaminer retrieves the events an examiner is linked to
func (r *EventRepository) ListByExaminer(ctx context.Context, examinerID int64) ([]*models.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.name, e.start_date, e.end_date, e.duration, e.module_code, e.status, e.created_by, e.created_at, e.updated_at
		FROM events e
		JOIN event_examiners ee ON ee.event_id = e.id
		WHERE ee.examiner_id = $1
		ORDER BY e.start_date DESC, e.id DESC`, examinerID)
	if err != nil {
		return nil, fmt.Errorf("error listing examiner events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Name, &event.StartDate, &event.EndDate, &event.Duration,
			&event.ModuleCode, &event.Status, &event.CreatedBy, &event.CreatedAt, &event.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	return events, rows.Err()
}

// Update updates an event's mutable fields
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE events
		SET name = $1, start_date = $2, end_date = $3, duration = $4, status = $5, updated_at = $6
		WHERE id = $7`,
		event.Name, event.StartDate, event.EndDate, event.Duration, event.Status, time.Now(), event.ID)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// UpdateExaminers replaces the examiner links of an event
func (r *EventRepository) UpdateExaminers(ctx context.Context, eventID int64, examinerIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM event_examiners WHERE event_id = $1`, eventID); err != nil {
			return fmt.Errorf("error clearing event examiners: %w", err)
		}

		for _, examinerID := range examinerIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO event_examiners (event_id, examiner_id) VALUES ($1, $2)`,
				eventID, examinerID); err != nil {
				return fmt.Errorf("error linking examiner %d: %w", examinerID, err)
			}
		}

		return nil
	})
}

// SetStatus moves an event to a new lifecycle state
func (r *EventRepository) SetStatus(ctx context.Context, id int64, status models.EventStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE events SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating event status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// Delete removes an event and everything derived from it in one transaction
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			DELETE FROM reschedule_requests
			WHERE schedule_id IN (SELECT id FROM schedules WHERE event_id = $1)`, id); err != nil {
			return fmt.Errorf("error deleting event reschedule requests: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM evaluations
			WHERE schedule_id IN (SELECT id FROM schedules WHERE event_id = $1)`, id); err != nil {
			return fmt.Errorf("error deleting event evaluations: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM schedules WHERE event_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting event schedules: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM assignments WHERE event_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting event assignments: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM notifications WHERE event_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting event notifications: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM event_examiners WHERE event_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting event examiners: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting event: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrEventNotFound
		}

		return nil
	})
}
