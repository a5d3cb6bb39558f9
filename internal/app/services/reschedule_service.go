package services

import (
	"context"
	"time"

	"github.com/examsync/examsync/internal/app/models"
	"github.com/examsync/examsync/internal/app/models/dto"
	"github.com/examsync/examsync/internal/pkg/apperrors"
	"github.com/examsync/examsync/internal/pkg/helpers"
	"github.com/examsync/examsync/internal/pkg/logger"
	"github.com/examsync/examsync/internal/pkg/validation"
)

// RescheduleStore is the persistence surface for reschedule requests
type RescheduleStore interface {
	Create(ctx context.Context, request *models.RescheduleRequest) error
	GetByID(ctx context.Context, id int64) (*models.RescheduleRequest, error)
	ListPending(ctx context.Context) ([]*models.RescheduleRequest, error)
	ListByExaminer(ctx context.Context, examinerID int64) ([]*models.RescheduleRequest, error)
	Approve(ctx context.Context, request *models.RescheduleRequest) error
	Reject(ctx context.Context, id int64) error
}

// RescheduleService handles the reschedule request workflow
type RescheduleService struct {
	reschedules RescheduleStore
	schedules   ScheduleStore
}

// NewRescheduleService creates a new reschedule service
func NewRescheduleService(reschedules RescheduleStore, schedules ScheduleStore) *RescheduleService {
	return &RescheduleService{
		reschedules: reschedules,
		schedules:   schedules,
	}
}

// CreateRequest opens a pending reschedule request for a schedule. Only
// the schedule's own examiner may request a move, and only one open
// request per (schedule, examiner) pair may exist at a time.
func (s *RescheduleService) CreateRequest(ctx context.Context, examinerID int64, req *dto.CreateRescheduleRequest) (*models.RescheduleRequest, error) {
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return nil, apperrors.NewValidationError("date must use the 2006-01-02 format")
	}
	if !validation.CompiledPatterns.Clock.MatchString(req.StartTime) ||
		!validation.CompiledPatterns.Clock.MatchString(req.EndTime) {
		return nil, apperrors.ErrInvalidTimeSlot
	}
	if _, _, err := helpers.ParseSlot(req.StartTime + "-" + req.EndTime); err != nil {
		return nil, apperrors.ErrInvalidTimeSlot
	}

	schedule, err := s.schedules.GetByID(ctx, req.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.ExaminerID != examinerID {
		return nil, apperrors.NewForbiddenError("only the assigned examiner may request a reschedule")
	}

	request := &models.RescheduleRequest{
		ScheduleID: req.ScheduleID,
		ExaminerID: examinerID,
		ProposedTime: models.ProposedTime{
			Date:      date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		},
		Reason: req.Reason,
	}

	if err := s.reschedules.Create(ctx, request); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("requestId", request.ID).
		Int64("scheduleId", req.ScheduleID).
		Msg("Reschedule request created")

	return request, nil
}

// ListPending retrieves every open request, oldest first
func (s *RescheduleService) ListPending(ctx context.Context) ([]*models.RescheduleRequest, error) {
	return s.reschedules.ListPending(ctx)
}

// ListByExaminer retrieves one examiner's requests
func (s *RescheduleService) ListByExaminer(ctx context.Context, examinerID int64) ([]*models.RescheduleRequest, error) {
	return s.reschedules.ListByExaminer(ctx, examinerID)
}

// Approve marks a pending request APPROVED and moves its schedule to the
// proposed time in one atomic step. A decided request cannot be approved
// again.
func (s *RescheduleService) Approve(ctx context.Context, id int64) (*models.RescheduleRequest, error) {
	request, err := s.reschedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.ReschedulePending {
		return nil, apperrors.ErrRescheduleTerminal
	}

	if err := s.reschedules.Approve(ctx, request); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("requestId", request.ID).
		Int64("scheduleId", request.ScheduleID).
		Msg("Reschedule request approved, schedule moved")

	return request, nil
}

// Reject marks a pending request REJECTED, leaving its schedule untouched
func (s *RescheduleService) Reject(ctx context.Context, id int64) (*models.RescheduleRequest, error) {
	request, err := s.reschedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.ReschedulePending {
		return nil, apperrors.ErrRescheduleTerminal
	}

	if err := s.reschedules.Reject(ctx, id); err != nil {
		return nil, err
	}

	return s.reschedules.GetByID(ctx, id)
}
