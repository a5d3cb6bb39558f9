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

// MaxExaminerLoad is the capacity ceiling reported alongside each
// examiner's upcoming-schedule count in the browse listing
const MaxExaminerLoad = 5

// browseDateCount is how many upcoming availability dates the browse
// listing shows per examiner
const browseDateCount = 2

// AvailabilityStore is the persistence surface for examiner availability
type AvailabilityStore interface {
	Upsert(ctx context.Context, availability *models.ExaminerAvailability) error
	ListByExaminerFrom(ctx context.Context, examinerID int64, from time.Time, limit int) ([]*models.ExaminerAvailability, error)
	ListForExaminersBetween(ctx context.Context, examinerIDs []int64, from, to time.Time) ([]*models.ExaminerAvailability, error)
}

// AvailabilityService handles availability declarations and examiner matching
type AvailabilityService struct {
	availability AvailabilityStore
	schedules    ScheduleStore
	events       EventStore
	users        UserStore
	now          func() time.Time
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(availability AvailabilityStore, schedules ScheduleStore, events EventStore, users UserStore) *AvailabilityService {
	return &AvailabilityService{
		availability: availability,
		schedules:    schedules,
		events:       events,
		users:        users,
		now:          time.Now,
	}
}

// SubmitAvailability validates and upserts an examiner's slots for one date.
// A resubmission for the same date replaces the stored slots.
func (s *AvailabilityService) SubmitAvailability(ctx context.Context, examinerID int64, req *dto.SubmitAvailabilityRequest) (*models.ExaminerAvailability, error) {
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return nil, apperrors.NewValidationError("date must use the 2006-01-02 format")
	}

	if !date.After(helpers.DateOnly(s.now())) {
		return nil, apperrors.ErrAvailabilityInPast
	}

	if len(req.Slots) == 0 {
		return nil, apperrors.ErrNoSlotsProvided
	}
	for _, slot := range req.Slots {
		if !validation.CompiledPatterns.Slot.MatchString(slot) {
			return nil, apperrors.ErrInvalidTimeSlot
		}
		if _, _, err := helpers.ParseSlot(slot); err != nil {
			return nil, apperrors.ErrInvalidTimeSlot
		}
	}

	availability := &models.ExaminerAvailability{
		ExaminerID: examinerID,
		Date:       date,
		Slots:      req.Slots,
		Weekly:     req.Weekly,
	}

	if err := s.availability.Upsert(ctx, availability); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("examinerId", examinerID).
		Str("date", req.Date).
		Int("slots", len(req.Slots)).
		Msg("Availability submitted")

	return availability, nil
}

// GetAvailability retrieves an examiner's upcoming availability entries
func (s *AvailabilityService) GetAvailability(ctx context.Context, examinerID int64) ([]*models.ExaminerAvailability, error) {
	return s.availability.ListByExaminerFrom(ctx, examinerID, helpers.DateOnly(s.now()), 0)
}

// MatchExaminersForEvent returns the examiners whose declared availability
// covers the event's daily time window on every date of the event window.
func (s *AvailabilityService) MatchExaminersForEvent(ctx context.Context, eventID int64) ([]*models.User, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	examiners, err := s.users.GetByRole(ctx, models.RoleExaminer)
	if err != nil {
		return nil, err
	}
	if len(examiners) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(examiners))
	byID := make(map[int64]*models.User, len(examiners))
	for i, e := range examiners {
		ids[i] = e.ID
		byID[e.ID] = e
	}

	entries, err := s.availability.ListForExaminersBetween(ctx, ids,
		helpers.DateOnly(event.StartDate), helpers.DateOnly(event.EndDate))
	if err != nil {
		return nil, err
	}

	matchedIDs := matchExaminersForWindow(ids, entries,
		event.StartDate, event.EndDate, dailyStart(event.StartDate), dailyEnd(event.EndDate))

	matched := make([]*models.User, 0, len(matchedIDs))
	for _, id := range matchedIDs {
		matched = append(matched, byID[id])
	}
	return matched, nil
}

// BrowseExaminers lists every examiner with their next availability dates,
// current load against the capacity ceiling and prior examining experience.
// Saturated examiners stay in the listing so coordinators can see who is
// at capacity.
func (s *AvailabilityService) BrowseExaminers(ctx context.Context) ([]dto.ExaminerCandidate, error) {
	examiners, err := s.users.GetByRole(ctx, models.RoleExaminer)
	if err != nil {
		return nil, err
	}

	today := helpers.DateOnly(s.now())
	candidates := make([]dto.ExaminerCandidate, 0, len(examiners))

	for _, examiner := range examiners {
		load, err := s.schedules.CountByExaminer(ctx, examiner.ID, today)
		if err != nil {
			return nil, err
		}

		entries, err := s.availability.ListByExaminerFrom(ctx, examiner.ID, today, browseDateCount)
		if err != nil {
			return nil, err
		}

		modules, err := s.schedules.DistinctModulesByExaminer(ctx, examiner.ID)
		if err != nil {
			return nil, err
		}

		next := make([]string, 0, len(entries))
		for _, entry := range entries {
			next = append(next, helpers.DateOnly(entry.Date).Format("2006-01-02"))
		}

		candidates = append(candidates, dto.ExaminerCandidate{
			ExaminerID:    examiner.ID,
			Name:          examiner.Name,
			Email:         examiner.Email,
			NextAvailable: next,
			Load:          load,
			MaxLoad:       MaxExaminerLoad,
			Modules:       modules,
		})
	}

	return candidates, nil
}
