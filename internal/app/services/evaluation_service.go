package services

import (
	"context"

	"github.com/examsync/examsync/internal/app/models"
	"github.com/examsync/examsync/internal/app/models/dto"
	"github.com/examsync/examsync/internal/pkg/apperrors"
	"github.com/examsync/examsync/internal/pkg/logger"
)

// EvaluationStore is the persistence surface for evaluations
type EvaluationStore interface {
	Upsert(ctx context.Context, evaluation *models.Evaluation) error
	ExistsForSchedule(ctx context.Context, scheduleID int64) (bool, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*models.Evaluation, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Evaluation, error)
}

// EvaluationService handles grade submission and reporting
type EvaluationService struct {
	evaluations EvaluationStore
	schedules   ScheduleStore
	events      EventStore
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(evaluations EvaluationStore, schedules ScheduleStore, events EventStore) *EvaluationService {
	return &EvaluationService{
		evaluations: evaluations,
		schedules:   schedules,
		events:      events,
	}
}

// Submit records a grade for one schedule. Re-submission for the same
// (student, examiner, schedule, module) tuple overwrites the stored grade
// and presentation. Only the schedule's own examiner may submit.
func (s *EvaluationService) Submit(ctx context.Context, examinerID int64, req *dto.SubmitEvaluationRequest) (*models.Evaluation, error) {
	if req.Grade < 0 || req.Grade > 100 {
		return nil, apperrors.ErrGradeOutOfRange
	}

	schedule, err := s.schedules.GetByID(ctx, req.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.ExaminerID != examinerID {
		return nil, apperrors.NewForbiddenError("only the assigned examiner may submit an evaluation")
	}
	if schedule.StudentID != req.StudentID {
		return nil, apperrors.NewValidationError("student does not belong to this schedule")
	}
	if schedule.ModuleCode != req.ModuleCode {
		return nil, apperrors.NewValidationError("module does not match this schedule")
	}

	evaluation := &models.Evaluation{
		StudentID:    req.StudentID,
		ExaminerID:   examinerID,
		ScheduleID:   req.ScheduleID,
		ModuleCode:   req.ModuleCode,
		Grade:        req.Grade,
		Presentation: req.Presentation,
	}

	if err := s.evaluations.Upsert(ctx, evaluation); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("scheduleId", req.ScheduleID).
		Int64("studentId", req.StudentID).
		Msg("Evaluation submitted")

	return evaluation, nil
}

// BatchResult reports the outcome of one item of a batch submission
type BatchResult struct {
	ScheduleID int64              `json:"scheduleId"`
	Evaluation *models.Evaluation `json:"evaluation,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// SubmitBatch records several evaluations, collecting per-item outcomes
// instead of failing the whole batch on the first bad item.
func (s *EvaluationService) SubmitBatch(ctx context.Context, examinerID int64, req *dto.BatchEvaluationRequest) ([]BatchResult, error) {
	results := make([]BatchResult, 0, len(req.Evaluations))
	for i := range req.Evaluations {
		item := &req.Evaluations[i]
		evaluation, err := s.Submit(ctx, examinerID, item)
		result := BatchResult{ScheduleID: item.ScheduleID}
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Evaluation = evaluation
		}
		results = append(results, result)
	}
	return results, nil
}

// EventReport retrieves every evaluation recorded for one event
func (s *EvaluationService) EventReport(ctx context.Context, eventID int64) ([]*models.Evaluation, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.evaluations.ListByEvent(ctx, eventID)
}

// StudentResults retrieves a student's own evaluations
func (s *EvaluationService) StudentResults(ctx context.Context, studentID int64) ([]*models.Evaluation, error) {
	return s.evaluations.ListByStudent(ctx, studentID)
}
