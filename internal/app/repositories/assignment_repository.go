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
)

// AssignmentRepository handles database operations for examiner assignments
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{
		db: db,
	}
}

// Create inserts an assignment in PENDING state, paired with a notification
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	assignment.Status = models.ResponsePending
	assignment.CreatedAt = time.Now()

	err := r.db.QueryRow(ctx, `
		INSERT INTO assignments (event_id, examiner_id, notification_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		assignment.EventID, assignment.ExaminerID, assignment.NotificationID,
		assignment.Status, assignment.CreatedAt,
	).Scan(&assignment.ID)
	if err != nil {
		return fmt.Errorf("error creating assignment: %w", err)
	}

	return nil
}

const assignmentColumns = `id, event_id, examiner_id, notification_id, status, decline_reason, responded_at, created_at`

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var assignment models.Assignment
	err := row.Scan(
		&assignment.ID,
		&assignment.EventID,
		&assignment.ExaminerID,
		&assignment.NotificationID,
		&assignment.Status,
		&assignment.DeclineReason,
		&assignment.RespondedAt,
		&assignment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error scanning assignment: %w", err)
	}
	return &assignment, nil
}

// GetByID retrieves an assignment by ID
func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`
	return scanAssignment(r.db.QueryRow(ctx, query, id))
}

// ListByExaminer retrieves an examiner's assignments, newest first
func (r *AssignmentRepository) ListByExaminer(ctx context.Context, examinerID int64) ([]*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments
		WHERE examiner_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, examinerID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

// UpdateResponse records the examiner's decision. The guard on status makes
// a second decision a no-op at the database level.
func (r *AssignmentRepository) UpdateResponse(ctx context.Context, id int64, status models.ResponseStatus, declineReason *string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE assignments
		SET status = $1, decline_reason = $2, responded_at = $3
		WHERE id = $4 AND status = 'PENDING'`,
		status, declineReason, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating assignment response: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentDecided
	}

	return nil
}
