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
	"github.com/examsync/examsync/internal/pkg/dberrors"
)

// RescheduleRepository handles database operations for reschedule requests
type RescheduleRepository struct {
	db *pgxpool.Pool
}

// NewRescheduleRepository creates a new reschedule repository
func NewRescheduleRepository(db *pgxpool.Pool) *RescheduleRepository {
	return &RescheduleRepository{
		db: db,
	}
}

// Create inserts a pending reschedule request. A partial unique index on
// (schedule_id, examiner_id) WHERE status = 'PENDING' enforces at most one
// open request per pair.
func (r *RescheduleRepository) Create(ctx context.Context, request *models.RescheduleRequest) error {
	request.Status = models.ReschedulePending
	request.CreatedAt = time.Now()

	err := r.db.QueryRow(ctx, `
		INSERT INTO reschedule_requests (schedule_id, examiner_id, proposed_date, proposed_start, proposed_end, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		request.ScheduleID, request.ExaminerID,
		request.ProposedTime.Date, request.ProposedTime.StartTime, request.ProposedTime.EndTime,
		request.Reason, request.Status, request.CreatedAt,
	).Scan(&request.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrReschedulePending
		}
		return fmt.Errorf("error creating reschedule request: %w", err)
	}

	return nil
}

const rescheduleColumns = `id, schedule_id, examiner_id, proposed_date, proposed_start, proposed_end, reason, status, created_at, decided_at`

func scanReschedule(row pgx.Row) (*models.RescheduleRequest, error) {
	var request models.RescheduleRequest
	err := row.Scan(
		&request.ID,
		&request.ScheduleID,
		&request.ExaminerID,
		&request.ProposedTime.Date,
		&request.ProposedTime.StartTime,
		&request.ProposedTime.EndTime,
		&request.Reason,
		&request.Status,
		&request.CreatedAt,
		&request.DecidedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRescheduleNotFound
		}
		return nil, fmt.Errorf("error scanning reschedule request: %w", err)
	}
	return &request, nil
}

// GetByID retrieves a reschedule request by ID
func (r *RescheduleRepository) GetByID(ctx context.Context, id int64) (*models.RescheduleRequest, error) {
	query := `SELECT ` + rescheduleColumns + ` FROM reschedule_requests WHERE id = $1`
	return scanReschedule(r.db.QueryRow(ctx, query, id))
}

// ListPending retrieves all open requests, oldest first
func (r *RescheduleRepository) ListPending(ctx context.Context) ([]*models.RescheduleRequest, error) {
	query := `SELECT ` + rescheduleColumns + ` FROM reschedule_requests
		WHERE status = 'PENDING' ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing pending reschedule requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.RescheduleRequest
	for rows.Next() {
		request, err := scanReschedule(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// ListByExaminer retrieves one examiner's requests, newest first
func (r *RescheduleRepository) ListByExaminer(ctx context.Context, examinerID int64) ([]*models.RescheduleRequest, error) {
	query := `SELECT ` + rescheduleColumns + ` FROM reschedule_requests
		WHERE examiner_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, examinerID)
	if err != nil {
		return nil, fmt.Errorf("error listing reschedule requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.RescheduleRequest
	for rows.Next() {
		request, err := scanReschedule(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// Approve marks the request APPROVED and rewrites the schedule's time in
// one transaction. Either both rows change or neither does.
func (r *RescheduleRepository) Approve(ctx context.Context, request *models.RescheduleRequest) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		now := time.Now()

		cmdTag, err := tx.Exec(ctx, `
			UPDATE reschedule_requests SET status = 'APPROVED', decided_at = $1
			WHERE id = $2 AND status = 'PENDING'`, now, request.ID)
		if err != nil {
			return fmt.Errorf("error approving reschedule request: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrRescheduleTerminal
		}

		slot := request.ProposedTime.StartTime + "-" + request.ProposedTime.EndTime
		cmdTag, err = tx.Exec(ctx, `
			UPDATE schedules SET scheduled_date = $1, slots = $2, updated_at = $3
			WHERE id = $4`,
			request.ProposedTime.Date, []string{slot}, now, request.ScheduleID)
		if err != nil {
			return fmt.Errorf("error applying reschedule to schedule: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrScheduleNotFound
		}

		request.Status = models.RescheduleApproved
		request.DecidedAt = &now
		return nil
	})
}

// Reject marks the request REJECTED. The schedule keeps its time.
func (r *RescheduleRepository) Reject(ctx context.Context, id int64) error {
	now := time.Now()

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE reschedule_requests SET status = 'REJECTED', decided_at = $1
		WHERE id = $2 AND status = 'PENDING'`, now, id)
	if err != nil {
		return fmt.Errorf("error rejecting reschedule request: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRescheduleTerminal
	}

	return nil
}
