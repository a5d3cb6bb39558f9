package services

import (
	"context"
	"fmt"
	"time"

	"github.com/examsync/examsync/internal/app/models"
	"github.com/examsync/examsync/internal/app/models/dto"
	"github.com/examsync/examsync/internal/pkg/apperrors"
	"github.com/examsync/examsync/internal/pkg/helpers"
	"github.com/examsync/examsync/internal/pkg/logger"
)

// MinScheduleDuration is the smallest slot length an event may use, in minutes
const MinScheduleDuration = 15

// EventStore is the persistence surface for events
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, offset, limit int) ([]*models.Event, error)
	Count(ctx context.Context) (int64, error)
	ListByExaminer(ctx context.Context, examinerID int64) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	UpdateExaminers(ctx context.Context, eventID int64, examinerIDs []int64) error
	SetStatus(ctx context.Context, id int64, status models.EventStatus) error
	Delete(ctx context.Context, id int64) error
}

// ScheduleStore is the persistence surface for schedules
type ScheduleStore interface {
	CreateForEvent(ctx context.Context, schedules []*models.Schedule) error
	GetByID(ctx context.Context, id int64) (*models.Schedule, error)
	ListByExaminerBetween(ctx context.Context, examinerID int64, from, to time.Time) ([]*models.Schedule, error)
	ListByStudentBetween(ctx context.Context, studentID int64, from, to time.Time) ([]*models.Schedule, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*models.Schedule, error)
	UpdateMeetingLink(ctx context.Context, id int64, link *string) error
	CountByExaminer(ctx context.Context, examinerID int64, from time.Time) (int, error)
	DistinctModulesByExaminer(ctx context.Context, examinerID int64) ([]string, error)
}

// EventService handles examination events and their schedule expansion
type EventService struct {
	events    EventStore
	schedules ScheduleStore
	modules   ModuleStore
	users     UserStore
}

// NewEventService creates a new event service
func NewEventService(events EventStore, schedules ScheduleStore, modules ModuleStore, users UserStore) *EventService {
	return &EventService{
		events:    events,
		schedules: schedules,
		modules:   modules,
		users:     users,
	}
}

// CreateEvent validates and creates an event in PENDING state
func (s *EventService) CreateEvent(ctx context.Context, createdBy int64, req *dto.CreateEventRequest) (*models.Event, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.ErrEventWindowInvalid
	}
	if dailyEnd(req.EndDate) <= dailyStart(req.StartDate) {
		return nil, apperrors.NewValidationError("daily end time must be after daily start time")
	}
	if req.Duration < MinScheduleDuration {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("duration must be at least %d minutes", MinScheduleDuration))
	}

	if _, err := s.modules.GetByCode(ctx, req.ModuleCode); err != nil {
		return nil, err
	}

	if err := s.requireExaminers(ctx, req.ExaminerIDs); err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:        req.Name,
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate.UTC(),
		Duration:    req.Duration,
		ModuleCode:  req.ModuleCode,
		Status:      models.EventPending,
		CreatedBy:   createdBy,
		ExaminerIDs: req.ExaminerIDs,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	logger.Info().Int64("eventId", event.ID).Str("moduleCode", event.ModuleCode).Msg("Event created")
	return event, nil
}

func (s *EventService) requireExaminers(ctx context.Context, ids []int64) error {
	count, err := s.users.CountWithRole(ctx, ids, models.RoleExaminer)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return apperrors.ErrExaminerNotFound
	}
	return nil
}

// GetEvent retrieves one event with its examiner and schedule IDs
func (s *EventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	return s.events.GetByID(ctx, id)
}

// ListEvents retrieves a page of events with pagination metadata
func (s *EventService) ListEvents(ctx context.Context, page, size int) ([]*models.Event, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	events, err := s.events.List(ctx, int(offset), limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	total, err := s.events.Count(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return events, helpers.NewPaginationInfo(total, page, limit), nil
}

// ListEventsByExaminer retrieves the events an examiner is linked to
func (s *EventService) ListEventsByExaminer(ctx context.Context, examinerID int64) ([]*models.Event, error) {
	return s.events.ListByExaminer(ctx, examinerID)
}

// UpdateEvent merges the non-nil fields of the request into the event
func (s *EventService) UpdateEvent(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.StartDate != nil {
		event.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		event.EndDate = req.EndDate.UTC()
	}
	if !event.EndDate.After(event.StartDate) {
		return nil, apperrors.ErrEventWindowInvalid
	}
	if req.Duration != nil {
		if *req.Duration < MinScheduleDuration {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("duration must be at least %d minutes", MinScheduleDuration))
		}
		event.Duration = *req.Duration
	}
	if req.Status != nil {
		status := models.EventStatus(*req.Status)
		switch status {
		case models.EventPending, models.EventUpcoming, models.EventCompleted:
		default:
			return nil, apperrors.NewValidationError("status must be one of PENDING, UPCOMING, COMPLETED")
		}
		event.Status = status
	}

	// Validate everything before writing anything
	if req.ExaminerIDs != nil {
		if err := s.requireExaminers(ctx, req.ExaminerIDs); err != nil {
			return nil, err
		}
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	if req.ExaminerIDs != nil {
		if err := s.events.UpdateExaminers(ctx, id, req.ExaminerIDs); err != nil {
			return nil, err
		}
		event.ExaminerIDs = req.ExaminerIDs
	}

	return event, nil
}

// DeleteEvent removes an event and all its derived records
func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("eventId", id).Msg("Event deleted with derived schedules")
	return nil
}

// ScheduleEvent expands an event into one schedule per registered student.
// Students are spread round-robin across the event's examiners and packed
// into consecutive slots inside the event's daily time window. The whole
// expansion is written atomically and the event moves to UPCOMING.
func (s *EventService) ScheduleEvent(ctx context.Context, eventID int64) ([]*models.Schedule, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if len(event.ExaminerIDs) == 0 {
		return nil, apperrors.ErrEventNoExaminers
	}

	studentIDs, err := s.modules.GetRegisteredStudentIDs(ctx, event.ModuleCode)
	if err != nil {
		return nil, err
	}
	if len(studentIDs) == 0 {
		return nil, apperrors.ErrNoRegisteredStudents
	}

	schedules, err := expandSchedules(event, studentIDs)
	if err != nil {
		return nil, err
	}

	if err := s.schedules.CreateForEvent(ctx, schedules); err != nil {
		return nil, err
	}

	if err := s.events.SetStatus(ctx, eventID, models.EventUpcoming); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("eventId", eventID).
		Int("schedules", len(schedules)).
		Msg("Event expanded into schedules")

	return schedules, nil
}

func dailyStart(t time.Time) int {
	t = t.UTC()
	return t.Hour()*60 + t.Minute()
}

func dailyEnd(t time.Time) int {
	t = t.UTC()
	return t.Hour()*60 + t.Minute()
}

// expandSchedules lays students out in consecutive duration-sized slots.
// Each day runs from the start date's time of day to the end date's time
// of day; when a day is full the next student starts the next day.
func expandSchedules(event *models.Event, studentIDs []int64) ([]*models.Schedule, error) {
	dayStart := dailyStart(event.StartDate)
	dayEnd := dailyEnd(event.EndDate)
	if dayEnd <= dayStart {
		return nil, apperrors.ErrEventWindowInvalid
	}

	date := helpers.DateOnly(event.StartDate.UTC())
	lastDate := helpers.DateOnly(event.EndDate.UTC())
	cursor := dayStart

	schedules := make([]*models.Schedule, 0, len(studentIDs))
	for i, studentID := range studentIDs {
		if cursor+event.Duration > dayEnd {
			date = date.AddDate(0, 0, 1)
			cursor = dayStart
		}
		if date.After(lastDate) || cursor+event.Duration > dayEnd {
			return nil, apperrors.ErrEventWindowTooSmall
		}

		slot := helpers.FormatClock(cursor) + "-" + helpers.FormatClock(cursor+event.Duration)
		schedules = append(schedules, &models.Schedule{
			EventID:    event.ID,
			StudentID:  studentID,
			ExaminerID: event.ExaminerIDs[i%len(event.ExaminerIDs)],
			ModuleCode: event.ModuleCode,
			ScheduledTime: models.ScheduledTime{
				Date:  date,
				Slots: []string{slot},
			},
		})

		cursor += event.Duration
	}

	return schedules, nil
}

// GetExaminerSchedules retrieves an examiner's schedules for one month
func (s *EventService) GetExaminerSchedules(ctx context.Context, examinerID int64, year, month int) ([]*models.Schedule, error) {
	from, to := helpers.MonthRange(year, month)
	return s.schedules.ListByExaminerBetween(ctx, examinerID, from, to.AddDate(0, 0, -1))
}

// GetStudentSchedules retrieves a student's schedules for one month
func (s *EventService) GetStudentSchedules(ctx context.Context, studentID int64, year, month int) ([]*models.Schedule, error) {
	from, to := helpers.MonthRange(year, month)
	return s.schedules.ListByStudentBetween(ctx, studentID, from, to.AddDate(0, 0, -1))
}

// GetEventSchedules retrieves every schedule of one event
func (s *EventService) GetEventSchedules(ctx context.Context, eventID int64) ([]*models.Schedule, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.schedules.ListByEvent(ctx, eventID)
}

// SetMeetingLink attaches a meeting link to a schedule. Only the schedule's
// examiner may set it.
func (s *EventService) SetMeetingLink(ctx context.Context, scheduleID, examinerID int64, link string) (*models.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if schedule.ExaminerID != examinerID {
		return nil, apperrors.NewForbiddenError("only the assigned examiner may set the meeting link")
	}

	if err := s.schedules.UpdateMeetingLink(ctx, scheduleID, &link); err != nil {
		return nil, err
	}

	schedule.MeetingLink = &link
	return schedule, nil
}
