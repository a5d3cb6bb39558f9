package services

import (
	"context"

	"github.com/examsync/examsync/internal/app/models"
	"github.com/examsync/examsync/internal/app/models/dto"
	"github.com/examsync/examsync/internal/pkg/apperrors"
	"github.com/examsync/examsync/internal/pkg/email"
	"github.com/examsync/examsync/internal/pkg/logger"
)

// NotificationStore is the persistence surface for notifications
type NotificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	ListByExaminer(ctx context.Context, examinerID int64) ([]*models.Notification, error)
	SetDelivery(ctx context.Context, id int64, delivery models.DeliveryStatus) error
}

// AssignmentStore is the persistence surface for assignments
type AssignmentStore interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
	ListByExaminer(ctx context.Context, examinerID int64) ([]*models.Assignment, error)
	UpdateResponse(ctx context.Context, id int64, status models.ResponseStatus, declineReason *string) error
}

// NotificationService dispatches assignment notices and records responses
type NotificationService struct {
	notifications NotificationStore
	assignments   AssignmentStore
	events        EventStore
	users         UserStore
	mailer        email.Mailer
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifications NotificationStore, assignments AssignmentStore, events EventStore, users UserStore, mailer email.Mailer) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		assignments:   assignments,
		events:        events,
		users:         users,
		mailer:        mailer,
	}
}

// NotifyExaminers creates one notification plus one pending assignment per
// examiner and hands each notice to the mailer. A mailer failure is
// recorded on the notification but does not abort the dispatch.
func (s *NotificationService) NotifyExaminers(ctx context.Context, req *dto.NotifyExaminersRequest) ([]*models.Notification, error) {
	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	count, err := s.users.CountWithRole(ctx, req.ExaminerIDs, models.RoleExaminer)
	if err != nil {
		return nil, err
	}
	if count != len(req.ExaminerIDs) {
		return nil, apperrors.ErrExaminerNotFound
	}

	examiners, err := s.users.GetByIDs(ctx, req.ExaminerIDs)
	if err != nil {
		return nil, err
	}

	notifications := make([]*models.Notification, 0, len(examiners))
	for _, examiner := range examiners {
		notification := &models.Notification{
			EventID:    event.ID,
			ExaminerID: examiner.ID,
			Message:    req.Message,
			Delivery:   models.DeliverySent,
			Response:   models.ResponsePending,
		}

		if err := s.mailer.SendAssignmentNotice(examiner.Email, examiner.Name, event.Name, req.Message); err != nil {
			logger.Warn().Err(err).Int64("examinerId", examiner.ID).Msg("Assignment notice delivery failed")
			notification.Delivery = models.DeliveryFailed
		}

		if err := s.notifications.Create(ctx, notification); err != nil {
			return nil, err
		}

		assignment := &models.Assignment{
			EventID:        event.ID,
			ExaminerID:     examiner.ID,
			NotificationID: notification.ID,
		}
		if err := s.assignments.Create(ctx, assignment); err != nil {
			return nil, err
		}

		notifications = append(notifications, notification)
	}

	logger.Info().
		Int64("eventId", event.ID).
		Int("examiners", len(notifications)).
		Msg("Examiners notified")

	return notifications, nil
}

// ListNotifications retrieves an examiner's notifications with the
// response state of each paired assignment.
func (s *NotificationService) ListNotifications(ctx context.Context, examinerID int64) ([]*models.Notification, error) {
	return s.notifications.ListByExaminer(ctx, examinerID)
}

// ListAssignments retrieves an examiner's assignments
func (s *NotificationService) ListAssignments(ctx context.Context, examinerID int64) ([]*models.Assignment, error) {
	return s.assignments.ListByExaminer(ctx, examinerID)
}

// RespondAssignment records an examiner's accept or decline. Declining
// requires a reason. Only the addressed examiner may respond, and an
// assignment can be decided once.
func (s *NotificationService) RespondAssignment(ctx context.Context, examinerID, assignmentID int64, req *dto.RespondAssignmentRequest) (*models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.ExaminerID != examinerID {
		return nil, apperrors.NewForbiddenError("only the addressed examiner may respond to this assignment")
	}
	if assignment.Status != models.ResponsePending {
		return nil, apperrors.ErrAssignmentDecided
	}

	status := models.ResponseStatus(req.Status)

	var declineReason *string
	if status == models.ResponseDeclined {
		if req.DeclineReason == "" {
			return nil, apperrors.ErrDeclineReasonRequired
		}
		declineReason = &req.DeclineReason
	}

	if err := s.assignments.UpdateResponse(ctx, assignmentID, status, declineReason); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("assignmentId", assignmentID).
		Str("status", req.Status).
		Msg("Assignment response recorded")

	return s.assignments.GetByID(ctx, assignmentID)
}
