package services

import (
	"context"
	"errors"
	"time"

	"github.com/examsync/examsync/internal/app/models"
	"github.com/examsync/examsync/internal/app/repositories"
	"github.com/examsync/examsync/internal/pkg/apperrors"
	"github.com/examsync/examsync/internal/pkg/helpers"
)

// In-memory stores backing the service tests.

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (s *fakeUserStore) add(name, email string, role models.RoleType) *models.User {
	user := &models.User{
		ID:       s.nextID,
		Name:     name,
		Email:    email,
		RoleType: role,
		IsActive: true,
	}
	s.users[user.ID] = user
	s.nextID++
	return user
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	var out []*models.User
	for id := int64(1); id < s.nextID; id++ {
		if u, ok := s.users[id]; ok && u.RoleType == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	var out []*models.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) CountWithRole(ctx context.Context, ids []int64, role models.RoleType) (int, error) {
	count := 0
	for _, id := range ids {
		if u, ok := s.users[id]; ok && u.RoleType == role {
			count++
		}
	}
	return count, nil
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	return err == nil, nil
}

func (s *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, id int64) error {
	now := time.Now()
	if u, ok := s.users[id]; ok {
		u.LastLoginAt = &now
	}
	return nil
}

type fakeTokenStore struct {
	tokens map[string]*repositories.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*repositories.RefreshToken)}
}

func (s *fakeTokenStore) Save(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	s.tokens[token] = &repositories.RefreshToken{UserID: userID, Token: token, ExpiresAt: expiresAt}
	return nil
}

func (s *fakeTokenStore) Get(ctx context.Context, token string) (*repositories.RefreshToken, error) {
	rt, ok := s.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenInvalid
	}
	return rt, nil
}

func (s *fakeTokenStore) Revoke(ctx context.Context, token string) error {
	if rt, ok := s.tokens[token]; ok {
		rt.Revoked = true
	}
	return nil
}

type fakeModuleStore struct {
	modules       map[string]*models.Module
	registrations map[string][]int64
	nextID        int64
}

func newFakeModuleStore() *fakeModuleStore {
	return &fakeModuleStore{
		modules:       make(map[string]*models.Module),
		registrations: make(map[string][]int64),
		nextID:        1,
	}
}

func (s *fakeModuleStore) add(code, name, password string) *models.Module {
	module := &models.Module{ID: s.nextID, Code: code, Name: name, Password: password}
	s.modules[code] = module
	s.nextID++
	return module
}

func (s *fakeModuleStore) Create(ctx context.Context, module *models.Module) error {
	if _, ok := s.modules[module.Code]; ok {
		return apperrors.ErrModuleAlreadyExists
	}
	module.ID = s.nextID
	s.nextID++
	s.modules[module.Code] = module
	return nil
}

func (s *fakeModuleStore) GetByCode(ctx context.Context, code string) (*models.Module, error) {
	module, ok := s.modules[code]
	if !ok {
		return nil, apperrors.ErrModuleNotFound
	}
	return module, nil
}

func (s *fakeModuleStore) GetAll(ctx context.Context) ([]*models.Module, error) {
	var out []*models.Module
	for _, m := range s.modules {
		out = append(out, m)
	}
	return out, nil
}

func (s *fakeModuleStore) Update(ctx context.Context, module *models.Module) error {
	if _, ok := s.modules[module.Code]; !ok {
		return apperrors.ErrModuleNotFound
	}
	s.modules[module.Code] = module
	return nil
}

func (s *fakeModuleStore) Delete(ctx context.Context, code string) error {
	if _, ok := s.modules[code]; !ok {
		return apperrors.ErrModuleNotFound
	}
	delete(s.modules, code)
	return nil
}

func (s *fakeModuleStore) RegisterStudent(ctx context.Context, studentID int64, moduleCode string) (*models.ModuleRegistration, error) {
	for _, id := range s.registrations[moduleCode] {
		if id == studentID {
			return nil, apperrors.ErrAlreadyRegistered
		}
	}
	s.registrations[moduleCode] = append(s.registrations[moduleCode], studentID)
	return &models.ModuleRegistration{
		StudentID:    studentID,
		ModuleCode:   moduleCode,
		RegisteredAt: time.Now(),
	}, nil
}

func (s *fakeModuleStore) GetRegisteredStudentIDs(ctx context.Context, moduleCode string) ([]int64, error) {
	return s.registrations[moduleCode], nil
}

func (s *fakeModuleStore) GetRegistrationsByStudent(ctx context.Context, studentID int64) ([]*models.ModuleRegistration, error) {
	var out []*models.ModuleRegistration
	for code, ids := range s.registrations {
		for _, id := range ids {
			if id == studentID {
				out = append(out, &models.ModuleRegistration{StudentID: id, ModuleCode: code})
			}
		}
	}
	return out, nil
}

type fakeEventStore struct {
	events map[int64]*models.Event
	nextID int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]*models.Event), nextID: 1}
}

func (s *fakeEventStore) Create(ctx context.Context, event *models.Event) error {
	event.ID = s.nextID
	s.nextID++
	s.events[event.ID] = event
	return nil
}

// GetByID returns a copy, matching row-scan semantics: mutating the result
// does not change stored state until Update is called.
func (s *fakeEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	clone := *event
	return &clone, nil
}

func (s *fakeEventStore) List(ctx context.Context, offset, limit int) ([]*models.Event, error) {
	var out []*models.Event
	for id := int64(1); id < s.nextID; id++ {
		if e, ok := s.events[id]; ok {
			out = append(out, e)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (s *fakeEventStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.events)), nil
}

func (s *fakeEventStore) ListByExaminer(ctx context.Context, examinerID int64) ([]*models.Event, error) {
	var out []*models.Event
	for _, e := range s.events {
		for _, id := range e.ExaminerIDs {
			if id == examinerID {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeEventStore) Update(ctx context.Context, event *models.Event) error {
	if _, ok := s.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	s.events[event.ID] = event
	return nil
}

func (s *fakeEventStore) UpdateExaminers(ctx context.Context, eventID int64, examinerIDs []int64) error {
	event, ok := s.events[eventID]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	event.ExaminerIDs = examinerIDs
	return nil
}

func (s *fakeEventStore) SetStatus(ctx context.Context, id int64, status models.EventStatus) error {
	event, ok := s.events[id]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	event.Status = status
	return nil
}

func (s *fakeEventStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

type fakeScheduleStore struct {
	schedules map[int64]*models.Schedule
	nextID    int64
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{schedules: make(map[int64]*models.Schedule), nextID: 1}
}

func (s *fakeScheduleStore) CreateForEvent(ctx context.Context, schedules []*models.Schedule) error {
	for _, schedule := range schedules {
		schedule.ID = s.nextID
		s.nextID++
		s.schedules[schedule.ID] = schedule
	}
	return nil
}

func (s *fakeScheduleStore) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	schedule, ok := s.schedules[id]
	if !ok {
		return nil, apperrors.ErrScheduleNotFound
	}
	return schedule, nil
}

func (s *fakeScheduleStore) listBetween(match func(*models.Schedule) bool, from, to time.Time) []*models.Schedule {
	var out []*models.Schedule
	for id := int64(1); id < s.nextID; id++ {
		schedule, ok := s.schedules[id]
		if !ok || !match(schedule) {
			continue
		}
		d := schedule.ScheduledTime.Date
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, schedule)
	}
	return out
}

func (s *fakeScheduleStore) ListByExaminerBetween(ctx context.Context, examinerID int64, from, to time.Time) ([]*models.Schedule, error) {
	return s.listBetween(func(sc *models.Schedule) bool { return sc.ExaminerID == examinerID }, from, to), nil
}

func (s *fakeScheduleStore) ListByStudentBetween(ctx context.Context, studentID int64, from, to time.Time) ([]*models.Schedule, error) {
	return s.listBetween(func(sc *models.Schedule) bool { return sc.StudentID == studentID }, from, to), nil
}

func (s *fakeScheduleStore) ListByEvent(ctx context.Context, eventID int64) ([]*models.Schedule, error) {
	var out []*models.Schedule
	for id := int64(1); id < s.nextID; id++ {
		if sc, ok := s.schedules[id]; ok && sc.EventID == eventID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *fakeScheduleStore) UpdateMeetingLink(ctx context.Context, id int64, link *string) error {
	schedule, ok := s.schedules[id]
	if !ok {
		return apperrors.ErrScheduleNotFound
	}
	schedule.MeetingLink = link
	return nil
}

func (s *fakeScheduleStore) CountByExaminer(ctx context.Context, examinerID int64, from time.Time) (int, error) {
	count := 0
	for _, sc := range s.schedules {
		if sc.ExaminerID == examinerID && !sc.ScheduledTime.Date.Before(from) {
			count++
		}
	}
	return count, nil
}

func (s *fakeScheduleStore) DistinctModulesByExaminer(ctx context.Context, examinerID int64) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for id := int64(1); id < s.nextID; id++ {
		sc, ok := s.schedules[id]
		if !ok || sc.ExaminerID != examinerID || seen[sc.ModuleCode] {
			continue
		}
		seen[sc.ModuleCode] = true
		out = append(out, sc.ModuleCode)
	}
	return out, nil
}

type fakeAvailabilityStore struct {
	entries map[int64]map[string]*models.ExaminerAvailability
	nextID  int64
}

func newFakeAvailabilityStore() *fakeAvailabilityStore {
	return &fakeAvailabilityStore{
		entries: make(map[int64]map[string]*models.ExaminerAvailability),
		nextID:  1,
	}
}

func (s *fakeAvailabilityStore) Upsert(ctx context.Context, availability *models.ExaminerAvailability) error {
	byDate, ok := s.entries[availability.ExaminerID]
	if !ok {
		byDate = make(map[string]*models.ExaminerAvailability)
		s.entries[availability.ExaminerID] = byDate
	}
	key := helpers.DateOnly(availability.Date).Format("2006-01-02")
	if existing, ok := byDate[key]; ok {
		availability.ID = existing.ID
	} else {
		availability.ID = s.nextID
		s.nextID++
	}
	availability.UpdatedAt = time.Now()
	byDate[key] = availability
	return nil
}

func (s *fakeAvailabilityStore) ListByExaminerFrom(ctx context.Context, examinerID int64, from time.Time, limit int) ([]*models.ExaminerAvailability, error) {
	var out []*models.ExaminerAvailability
	for d := from; len(out) < 1000; d = d.AddDate(0, 0, 1) {
		if d.Sub(from) > 365*24*time.Hour {
			break
		}
		if e, ok := s.entries[examinerID][d.Format("2006-01-02")]; ok {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *fakeAvailabilityStore) ListForExaminersBetween(ctx context.Context, examinerIDs []int64, from, to time.Time) ([]*models.ExaminerAvailability, error) {
	var out []*models.ExaminerAvailability
	for _, id := range examinerIDs {
		for _, e := range s.entries[id] {
			d := helpers.DateOnly(e.Date)
			if e.Weekly || (!d.Before(from) && !d.After(to)) {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

type fakeRescheduleStore struct {
	requests  map[int64]*models.RescheduleRequest
	schedules *fakeScheduleStore
	nextID    int64
}

func newFakeRescheduleStore(schedules *fakeScheduleStore) *fakeRescheduleStore {
	return &fakeRescheduleStore{
		requests:  make(map[int64]*models.RescheduleRequest),
		schedules: schedules,
		nextID:    1,
	}
}

func (s *fakeRescheduleStore) Create(ctx context.Context, request *models.RescheduleRequest) error {
	for _, r := range s.requests {
		if r.ScheduleID == request.ScheduleID && r.ExaminerID == request.ExaminerID &&
			r.Status == models.ReschedulePending {
			return apperrors.ErrReschedulePending
		}
	}
	request.ID = s.nextID
	s.nextID++
	request.Status = models.ReschedulePending
	request.CreatedAt = time.Now()
	s.requests[request.ID] = request
	return nil
}

func (s *fakeRescheduleStore) GetByID(ctx context.Context, id int64) (*models.RescheduleRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, apperrors.ErrRescheduleNotFound
	}
	return request, nil
}

func (s *fakeRescheduleStore) ListPending(ctx context.Context) ([]*models.RescheduleRequest, error) {
	var out []*models.RescheduleRequest
	for id := int64(1); id < s.nextID; id++ {
		if r, ok := s.requests[id]; ok && r.Status == models.ReschedulePending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRescheduleStore) ListByExaminer(ctx context.Context, examinerID int64) ([]*models.RescheduleRequest, error) {
	var out []*models.RescheduleRequest
	for id := int64(1); id < s.nextID; id++ {
		if r, ok := s.requests[id]; ok && r.ExaminerID == examinerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRescheduleStore) Approve(ctx context.Context, request *models.RescheduleRequest) error {
	stored, ok := s.requests[request.ID]
	if !ok || stored.Status != models.ReschedulePending {
		return apperrors.ErrRescheduleTerminal
	}
	schedule, ok := s.schedules.schedules[request.ScheduleID]
	if !ok {
		return apperrors.ErrScheduleNotFound
	}
	now := time.Now()
	stored.Status = models.RescheduleApproved
	stored.DecidedAt = &now
	request.Status = models.RescheduleApproved
	request.DecidedAt = &now
	schedule.ScheduledTime = models.ScheduledTime{
		Date:  request.ProposedTime.Date,
		Slots: []string{request.ProposedTime.StartTime + "-" + request.ProposedTime.EndTime},
	}
	return nil
}

func (s *fakeRescheduleStore) Reject(ctx context.Context, id int64) error {
	stored, ok := s.requests[id]
	if !ok || stored.Status != models.ReschedulePending {
		return apperrors.ErrRescheduleTerminal
	}
	now := time.Now()
	stored.Status = models.RescheduleRejected
	stored.DecidedAt = &now
	return nil
}

type fakeEvaluationStore struct {
	evaluations map[int64]*models.Evaluation
	nextID      int64
}

func newFakeEvaluationStore() *fakeEvaluationStore {
	return &fakeEvaluationStore{evaluations: make(map[int64]*models.Evaluation), nextID: 1}
}

func (s *fakeEvaluationStore) Upsert(ctx context.Context, evaluation *models.Evaluation) error {
	for _, e := range s.evaluations {
		if e.StudentID == evaluation.StudentID && e.ExaminerID == evaluation.ExaminerID &&
			e.ScheduleID == evaluation.ScheduleID && e.ModuleCode == evaluation.ModuleCode {
			e.Grade = evaluation.Grade
			e.Presentation = evaluation.Presentation
			e.SubmittedAt = time.Now()
			evaluation.ID = e.ID
			return nil
		}
	}
	evaluation.ID = s.nextID
	s.nextID++
	evaluation.SubmittedAt = time.Now()
	clone := *evaluation
	s.evaluations[evaluation.ID] = &clone
	return nil
}

func (s *fakeEvaluationStore) ExistsForSchedule(ctx context.Context, scheduleID int64) (bool, error) {
	for _, e := range s.evaluations {
		if e.ScheduleID == scheduleID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeEvaluationStore) ListByEvent(ctx context.Context, eventID int64) ([]*models.Evaluation, error) {
	// The fake has no schedule join; tests use ListByStudent instead.
	var out []*models.Evaluation
	for id := int64(1); id < s.nextID; id++ {
		if e, ok := s.evaluations[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeEvaluationStore) ListByStudent(ctx context.Context, studentID int64) ([]*models.Evaluation, error) {
	var out []*models.Evaluation
	for id := int64(1); id < s.nextID; id++ {
		if e, ok := s.evaluations[id]; ok && e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeNotificationStore struct {
	notifications map[int64]*models.Notification
	nextID        int64
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifications: make(map[int64]*models.Notification), nextID: 1}
}

func (s *fakeNotificationStore) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = s.nextID
	s.nextID++
	notification.CreatedAt = time.Now()
	s.notifications[notification.ID] = notification
	return nil
}

func (s *fakeNotificationStore) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	notification, ok := s.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	return notification, nil
}

func (s *fakeNotificationStore) ListByExaminer(ctx context.Context, examinerID int64) ([]*models.Notification, error) {
	var out []*models.Notification
	for id := int64(1); id < s.nextID; id++ {
		if n, ok := s.notifications[id]; ok && n.ExaminerID == examinerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) SetDelivery(ctx context.Context, id int64, delivery models.DeliveryStatus) error {
	notification, ok := s.notifications[id]
	if !ok {
		return apperrors.ErrNotificationNotFound
	}
	notification.Delivery = delivery
	return nil
}

type fakeAssignmentStore struct {
	assignments map[int64]*models.Assignment
	nextID      int64
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{assignments: make(map[int64]*models.Assignment), nextID: 1}
}

func (s *fakeAssignmentStore) Create(ctx context.Context, assignment *models.Assignment) error {
	assignment.ID = s.nextID
	s.nextID++
	assignment.Status = models.ResponsePending
	assignment.CreatedAt = time.Now()
	s.assignments[assignment.ID] = assignment
	return nil
}

func (s *fakeAssignmentStore) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	assignment, ok := s.assignments[id]
	if !ok {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return assignment, nil
}

func (s *fakeAssignmentStore) ListByExaminer(ctx context.Context, examinerID int64) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for id := int64(1); id < s.nextID; id++ {
		if a, ok := s.assignments[id]; ok && a.ExaminerID == examinerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAssignmentStore) UpdateResponse(ctx context.Context, id int64, status models.ResponseStatus, declineReason *string) error {
	assignment, ok := s.assignments[id]
	if !ok || assignment.Status != models.ResponsePending {
		return apperrors.ErrAssignmentDecided
	}
	now := time.Now()
	assignment.Status = status
	assignment.DeclineReason = declineReason
	assignment.RespondedAt = &now
	return nil
}

type fakeMailer struct {
	sent    []string
	failFor map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: make(map[string]bool)}
}

func (m *fakeMailer) SendAssignmentNotice(toEmail, toName, eventName, message string) error {
	if m.failFor[toEmail] {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, toEmail)
	return nil
}
