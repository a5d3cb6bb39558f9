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

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

// Create inserts a notification record
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.CreatedAt = time.Now()

	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (event_id, examiner_id, message, delivery, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		notification.EventID, notification.ExaminerID, notification.Message,
		notification.Delivery, notification.CreatedAt,
	).Scan(&notification.ID)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// GetByID retrieves a notification by ID, response state joined in from
// its paired assignment.
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.QueryRow(ctx, `
		SELECT n.id, n.event_id, n.examiner_id, n.message, n.delivery, n.created_at,
			COALESCE(a.status, 'PENDING')
		FROM notifications n
		LEFT JOIN assignments a ON a.notification_id = n.id
		WHERE n.id = $1`, id).
		Scan(&notification.ID, &notification.EventID, &notification.ExaminerID,
			&notification.Message, &notification.Delivery, &notification.CreatedAt,
			&notification.Response)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("error retrieving notification: %w", err)
	}
	return &notification, nil
}

// ListByExaminer retrieves an examiner's notifications, newest first.
// Each row carries the response status of its paired assignment.
func (r *NotificationRepository) ListByExaminer(ctx context.Context, examinerID int64) ([]*models.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT n.id, n.event_id, n.examiner_id, n.message, n.delivery, n.created_at,
			COALESCE(a.status, 'PENDING')
		FROM notifications n
		LEFT JOIN assignments a ON a.notification_id = n.id
		WHERE n.examiner_id = $1
		ORDER BY n.created_at DESC, n.id DESC`, examinerID)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var notification models.Notification
		if err := rows.Scan(&notification.ID, &notification.EventID, &notification.ExaminerID,
			&notification.Message, &notification.Delivery, &notification.CreatedAt,
			&notification.Response); err != nil {
			return nil, err
		}
		notifications = append(notifications, &notification)
	}

	return notifications, rows.Err()
}

// SetDelivery records the mailer outcome for a notification
func (r *NotificationRepository) SetDelivery(ctx context.Context, id int64, delivery models.DeliveryStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notifications SET delivery = $1 WHERE id = $2`, delivery, id)
	if err != nil {
		return fmt.Errorf("error updating notification delivery: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}
