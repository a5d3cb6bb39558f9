package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examsync/examsync/internal/app/models"
)

// AvailabilityRepository handles database operations for examiner availability
type AvailabilityRepository struct {
	db *pgxpool.Pool
}

// NewAvailabilityRepository creates a new availability repository
func NewAvailabilityRepository(db *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{
		db: db,
	}
}

// Upsert writes an examiner's availability for one date. A resubmission for
// the same (examiner, date) replaces the stored slots entirely.
func (r *AvailabilityRepository) Upsert(ctx context.Context, availability *models.ExaminerAvailability) error {
	availability.UpdatedAt = time.Now()

	err := r.db.QueryRow(ctx, `
		INSERT INTO examiner_availability (examiner_id, available_date, slots, weekly, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (examiner_id, available_date)
		DO UPDATE SET slots = EXCLUDED.slots, weekly = EXCLUDED.weekly, updated_at = EXCLUDED.updated_at
		RETURNING id`,
		availability.ExaminerID, availability.Date, availability.Slots,
		availability.Weekly, availability.UpdatedAt,
	).Scan(&availability.ID)
	if err != nil {
		return fmt.Errorf("error upserting availability: %w", err)
	}

	return nil
}

// ListByExaminerFrom retrieves an examiner's availability entries on or after
// the given date, earliest first, capped at limit (0 means no cap).
func (r *AvailabilityRepository) ListByExaminerFrom(ctx context.Context, examinerID int64, from time.Time, limit int) ([]*models.ExaminerAvailability, error) {
	query := `
		SELECT id, examiner_id, available_date, slots, weekly, updated_at
		FROM examiner_availability
		WHERE examiner_id = $1 AND available_date >= $2
		ORDER BY available_date`
	args := []any{examinerID, from}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing availability: %w", err)
	}
	defer rows.Close()

	var entries []*models.ExaminerAvailability
	for rows.Next() {
		var entry models.ExaminerAvailability
		if err := rows.Scan(&entry.ID, &entry.ExaminerID, &entry.Date, &entry.Slots,
			&entry.Weekly, &entry.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// ListForExaminersBetween retrieves the availability of a set of examiners
// within an inclusive date range, grouped by examiner in the result order.
// Weekly templates apply to any date matching their weekday, so they are
// returned regardless of where their anchor date falls.
func (r *AvailabilityRepository) ListForExaminersBetween(ctx context.Context, examinerIDs []int64, from, to time.Time) ([]*models.ExaminerAvailability, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, examiner_id, available_date, slots, weekly, updated_at
		FROM examiner_availability
		WHERE examiner_id = ANY($1) AND (weekly OR (available_date >= $2 AND available_date <= $3))
		ORDER BY examiner_id, available_date`, examinerIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing availability for examiners: %w", err)
	}
	defer rows.Close()

	var entries []*models.ExaminerAvailability
	for rows.Next() {
		var entry models.ExaminerAvailability
		if err := rows.Scan(&entry.ID, &entry.ExaminerID, &entry.Date, &entry.Slots,
			&entry.Weekly, &entry.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
