package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/examsync/examsync/internal/app/models"
	"github.com/examsync/examsync/internal/app/models/dto"
	"github.com/examsync/examsync/internal/pkg/apperrors"
)

type eventFixture struct {
	service   *EventService
	events    *fakeEventStore
	schedules *fakeScheduleStore
	modules   *fakeModuleStore
	users     *fakeUserStore
}

func newEventFixture() *eventFixture {
	events := newFakeEventStore()
	schedules := newFakeScheduleStore()
	modules := newFakeModuleStore()
	users := newFakeUserStore()
	return &eventFixture{
		service:   NewEventService(events, schedules, modules, users),
		events:    events,
		schedules: schedules,
		modules:   modules,
		users:     users,
	}
}

func (f *eventFixture) addExaminer(name string) *models.User {
	return f.users.add(name, name+"@campus.edu", models.RoleExaminer)
}

func (f *eventFixture) addStudent(name string) *models.User {
	return f.users.add(name, name+"@campus.edu", models.RoleStudent)
}

func TestCreateEventValidation(t *testing.T) {
	ctx := context.Background()

	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(f *eventFixture, req *dto.CreateEventRequest)
		wantErr error
	}{
		{
			name: "end before start",
			mutate: func(f *eventFixture, req *dto.CreateEventRequest) {
				req.EndDate = start.Add(-time.Hour)
			},
			wantErr: apperrors.ErrEventWindowInvalid,
		},
		{
			name: "daily end before daily start",
			mutate: func(f *eventFixture, req *dto.CreateEventRequest) {
				req.EndDate = time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC)
			},
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name: "duration below minimum",
			mutate: func(f *eventFixture, req *dto.CreateEventRequest) {
				req.Duration = 10
			},
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name: "unknown module",
			mutate: func(f *eventFixture, req *dto.CreateEventRequest) {
				req.ModuleCode = "NOPE"
			},
			wantErr: apperrors.ErrModuleNotFound,
		},
		{
			name: "examiner id with wrong role",
			mutate: func(f *eventFixture, req *dto.CreateEventRequest) {
				student := f.addStudent("sam")
				req.ExaminerIDs = append(req.ExaminerIDs, student.ID)
			},
			wantErr: apperrors.ErrExaminerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEventFixture()
			f.modules.add("CS101", "Data Structures", "hash")
			examiner := f.addExaminer("alice")

			req := &dto.CreateEventRequest{
				Name:        "ITP Final Viva",
				StartDate:   start,
				EndDate:     end,
				Duration:    30,
				ModuleCode:  "CS101",
				ExaminerIDs: []int64{examiner.ID},
			}
			tt.mutate(f, req)

			_, err := f.service.CreateEvent(ctx, 1, req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateEvent() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	f.modules.add("CS101", "Data Structures", "hash")
	examiner := f.addExaminer("alice")

	event, err := f.service.CreateEvent(ctx, 42, &dto.CreateEventRequest{
		Name:        "ITP Final Viva",
		StartDate:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC),
		Duration:    30,
		ModuleCode:  "CS101",
		ExaminerIDs: []int64{examiner.ID},
	})
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}

	if event.Status != models.EventPending {
		t.Errorf("Status = %v, want %v", event.Status, models.EventPending)
	}
	if event.CreatedBy != 42 {
		t.Errorf("CreatedBy = %d, want 42", event.CreatedBy)
	}
	if len(event.ExaminerIDs) != 1 || event.ExaminerIDs[0] != examiner.ID {
		t.Errorf("ExaminerIDs = %v, want [%d]", event.ExaminerIDs, examiner.ID)
	}
}

func TestScheduleEvent(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	f.modules.add("CS101", "Data Structures", "hash")
	examiner := f.addExaminer("alice")
	s1 := f.addStudent("bob")
	s2 := f.addStudent("carol")
	f.modules.registrations["CS101"] = []int64{s1.ID, s2.ID}

	event := &models.Event{
		Name:        "ITP Final Viva",
		StartDate:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Duration:    30,
		ModuleCode:  "CS101",
		Status:      models.EventPending,
		ExaminerIDs: []int64{examiner.ID},
	}
	if err := f.events.Create(ctx, event); err != nil {
		t.Fatalf("seeding event: %v", err)
	}

	schedules, err := f.service.ScheduleEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ScheduleEvent() error = %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("got %d schedules, want 2", len(schedules))
	}

	wantDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	wantSlots := []string{"09:00-09:30", "09:30-10:00"}
	for i, schedule := range schedules {
		if !schedule.ScheduledTime.Date.Equal(wantDate) {
			t.Errorf("schedule %d date = %v, want %v", i, schedule.ScheduledTime.Date, wantDate)
		}
		if len(schedule.ScheduledTime.Slots) != 1 || schedule.ScheduledTime.Slots[0] != wantSlots[i] {
			t.Errorf("schedule %d slots = %v, want [%s]", i, schedule.ScheduledTime.Slots, wantSlots[i])
		}
		if schedule.ExaminerID != examiner.ID {
			t.Errorf("schedule %d examiner = %d, want %d", i, schedule.ExaminerID, examiner.ID)
		}
	}
	if schedules[0].StudentID != s1.ID || schedules[1].StudentID != s2.ID {
		t.Errorf("students = [%d %d], want [%d %d]",
			schedules[0].StudentID, schedules[1].StudentID, s1.ID, s2.ID)
	}

	stored, _ := f.events.GetByID(ctx, event.ID)
	if stored.Status != models.EventUpcoming {
		t.Errorf("event status = %v, want %v", stored.Status, models.EventUpcoming)
	}
}

func TestScheduleEventRoundRobin(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	f.modules.add("CS101", "Data Structures", "hash")
	e1 := f.addExaminer("alice")
	e2 := f.addExaminer("dan")
	var studentIDs []int64
	for _, name := range []string{"s1", "s2", "s3", "s4"} {
		studentIDs = append(studentIDs, f.addStudent(name).ID)
	}
	f.modules.registrations["CS101"] = studentIDs

	event := &models.Event{
		StartDate:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC),
		Duration:    30,
		ModuleCode:  "CS101",
		ExaminerIDs: []int64{e1.ID, e2.ID},
	}
	if err := f.events.Create(ctx, event); err != nil {
		t.Fatalf("seeding event: %v", err)
	}

	schedules, err := f.service.ScheduleEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ScheduleEvent() error = %v", err)
	}

	want := []int64{e1.ID, e2.ID, e1.ID, e2.ID}
	for i, schedule := range schedules {
		if schedule.ExaminerID != want[i] {
			t.Errorf("schedule %d examiner = %d, want %d", i, schedule.ExaminerID, want[i])
		}
	}
}

func TestScheduleEventRollsToNextDay(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	f.modules.add("CS101", "Data Structures", "hash")
	examiner := f.addExaminer("alice")
	s1 := f.addStudent("bob")
	s2 := f.addStudent("carol")
	f.modules.registrations["CS101"] = []int64{s1.ID, s2.ID}

	// One 60-minute slot fits per day, so the second student rolls over.
	event := &models.Event{
		StartDate:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		Duration:    60,
		ModuleCode:  "CS101",
		ExaminerIDs: []int64{examiner.ID},
	}
	if err := f.events.Create(ctx, event); err != nil {
		t.Fatalf("seeding event: %v", err)
	}

	schedules, err := f.service.ScheduleEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ScheduleEvent() error = %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("got %d schedules, want 2", len(schedules))
	}

	day1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if !schedules[0].ScheduledTime.Date.Equal(day1) {
		t.Errorf("first schedule date = %v, want %v", schedules[0].ScheduledTime.Date, day1)
	}
	if !schedules[1].ScheduledTime.Date.Equal(day2) {
		t.Errorf("second schedule date = %v, want %v", schedules[1].ScheduledTime.Date, day2)
	}
	for i, schedule := range schedules {
		if schedule.ScheduledTime.Slots[0] != "09:00-10:00" {
			t.Errorf("schedule %d slot = %v, want 09:00-10:00", i, schedule.ScheduledTime.Slots)
		}
	}
}

func TestScheduleEventWindowTooSmall(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	f.modules.add("CS101", "Data Structures", "hash")
	examiner := f.addExaminer("alice")
	var studentIDs []int64
	for _, name := range []string{"s1", "s2", "s3"} {
		studentIDs = append(studentIDs, f.addStudent(name).ID)
	}
	f.modules.registrations["CS101"] = studentIDs

	// Two 30-minute slots fit on the single day, three students do not.
	event := &models.Event{
		StartDate:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Duration:    30,
		ModuleCode:  "CS101",
		ExaminerIDs: []int64{examiner.ID},
	}
	if err := f.events.Create(ctx, event); err != nil {
		t.Fatalf("seeding event: %v", err)
	}

	_, err := f.service.ScheduleEvent(ctx, event.ID)
	if !errors.Is(err, apperrors.ErrEventWindowTooSmall) {
		t.Fatalf("ScheduleEvent() error = %v, want %v", err, apperrors.ErrEventWindowTooSmall)
	}
	if len(f.schedules.schedules) != 0 {
		t.Errorf("got %d stored schedules, want none", len(f.schedules.schedules))
	}
}

func TestScheduleEventPreconditions(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	f.modules.add("CS101", "Data Structures", "hash")
	examiner := f.addExaminer("alice")

	noExaminers := &models.Event{
		StartDate:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC),
		Duration:   30,
		ModuleCode: "CS101",
	}
	if err := f.events.Create(ctx, noExaminers); err != nil {
		t.Fatalf("seeding event: %v", err)
	}
	if _, err := f.service.ScheduleEvent(ctx, noExaminers.ID); !errors.Is(err, apperrors.ErrEventNoExaminers) {
		t.Errorf("ScheduleEvent() error = %v, want %v", err, apperrors.ErrEventNoExaminers)
	}

	noStudents := &models.Event{
		StartDate:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC),
		Duration:    30,
		ModuleCode:  "CS101",
		ExaminerIDs: []int64{examiner.ID},
	}
	if err := f.events.Create(ctx, noStudents); err != nil {
		t.Fatalf("seeding event: %v", err)
	}
	if _, err := f.service.ScheduleEvent(ctx, noStudents.ID); !errors.Is(err, apperrors.ErrNoRegisteredStudents) {
		t.Errorf("ScheduleEvent() error = %v, want %v", err, apperrors.ErrNoRegisteredStudents)
	}

	if _, err := f.service.ScheduleEvent(ctx, 999); !errors.Is(err, apperrors.ErrEventNotFound) {
		t.Errorf("ScheduleEvent() error = %v, want %v", err, apperrors.ErrEventNotFound)
	}
}

func TestSetMeetingLink(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	owner := f.addExaminer("alice")
	other := f.addExaminer("dan")

	schedule := &models.Schedule{
		EventID:    1,
		StudentID:  10,
		ExaminerID: owner.ID,
		ModuleCode: "CS101",
	}
	if err := f.schedules.CreateForEvent(ctx, []*models.Schedule{schedule}); err != nil {
		t.Fatalf("seeding schedule: %v", err)
	}

	if _, err := f.service.SetMeetingLink(ctx, schedule.ID, other.ID, "https://meet.example/x"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("SetMeetingLink() by non-owner error = %v, want %v", err, apperrors.ErrPermissionDenied)
	}

	updated, err := f.service.SetMeetingLink(ctx, schedule.ID, owner.ID, "https://meet.example/x")
	if err != nil {
		t.Fatalf("SetMeetingLink() error = %v", err)
	}
	if updated.MeetingLink == nil || *updated.MeetingLink != "https://meet.example/x" {
		t.Errorf("MeetingLink = %v, want https://meet.example/x", updated.MeetingLink)
	}
}

func TestUpdateEventWindowCheck(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	f.modules.add("CS101", "Data Structures", "hash")
	examiner := f.addExaminer("alice")

	event := &models.Event{
		Name:        "ITP Final Viva",
		StartDate:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 5, 17, 0, 0, 0, time.UTC),
		Duration:    30,
		ModuleCode:  "CS101",
		ExaminerIDs: []int64{examiner.ID},
	}
	if err := f.events.Create(ctx, event); err != nil {
		t.Fatalf("seeding event: %v", err)
	}

	badEnd := time.Date(2025, 5, 30, 17, 0, 0, 0, time.UTC)
	if _, err := f.service.UpdateEvent(ctx, event.ID, &dto.UpdateEventRequest{EndDate: &badEnd}); !errors.Is(err, apperrors.ErrEventWindowInvalid) {
		t.Errorf("UpdateEvent() error = %v, want %v", err, apperrors.ErrEventWindowInvalid)
	}

	newName := "ITP Final Viva R2"
	updated, err := f.service.UpdateEvent(ctx, event.ID, &dto.UpdateEventRequest{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateEvent() error = %v", err)
	}
	if updated.Name != newName {
		t.Errorf("Name = %q, want %q", updated.Name, newName)
	}

	stored, _ := f.events.GetByID(ctx, event.ID)
	if !stored.EndDate.Equal(event.EndDate) {
		t.Errorf("stored EndDate = %v, want %v", stored.EndDate, event.EndDate)
	}
}

func TestUpdateEventRejectedFieldsNotPersisted(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	f.modules.add("CS101", "Data Structures", "hash")
	examiner := f.addExaminer("alice")
	student := f.addStudent("sam")

	event := &models.Event{
		Name:        "ITP Final Viva",
		StartDate:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 5, 17, 0, 0, 0, time.UTC),
		Duration:    30,
		ModuleCode:  "CS101",
		ExaminerIDs: []int64{examiner.ID},
	}
	if err := f.events.Create(ctx, event); err != nil {
		t.Fatalf("seeding event: %v", err)
	}

	// A rename bundled with a bad examiner list must fail as a whole.
	newName := "ITP Final Viva R2"
	_, err := f.service.UpdateEvent(ctx, event.ID, &dto.UpdateEventRequest{
		Name:        &newName,
		ExaminerIDs: []int64{student.ID},
	})
	if !errors.Is(err, apperrors.ErrExaminerNotFound) {
		t.Fatalf("UpdateEvent() error = %v, want %v", err, apperrors.ErrExaminerNotFound)
	}

	stored, _ := f.events.GetByID(ctx, event.ID)
	if stored.Name != "ITP Final Viva" {
		t.Errorf("stored Name = %q, want %q", stored.Name, "ITP Final Viva")
	}
	if len(stored.ExaminerIDs) != 1 || stored.ExaminerIDs[0] != examiner.ID {
		t.Errorf("stored ExaminerIDs = %v, want [%d]", stored.ExaminerIDs, examiner.ID)
	}
}

func TestUpdateEventStatusValidation(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	f.modules.add("CS101", "Data Structures", "hash")
	examiner := f.addExaminer("alice")

	event := &models.Event{
		Name:        "ITP Final Viva",
		StartDate:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 5, 17, 0, 0, 0, time.UTC),
		Duration:    30,
		ModuleCode:  "CS101",
		Status:      models.EventPending,
		ExaminerIDs: []int64{examiner.ID},
	}
	if err := f.events.Create(ctx, event); err != nil {
		t.Fatalf("seeding event: %v", err)
	}

	bogus := "CANCELLED"
	if _, err := f.service.UpdateEvent(ctx, event.ID, &dto.UpdateEventRequest{Status: &bogus}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("UpdateEvent() error = %v, want %v", err, apperrors.ErrValidationFailed)
	}

	stored, _ := f.events.GetByID(ctx, event.ID)
	if stored.Status != models.EventPending {
		t.Errorf("stored Status = %v, want %v", stored.Status, models.EventPending)
	}

	completed := string(models.EventCompleted)
	updated, err := f.service.UpdateEvent(ctx, event.ID, &dto.UpdateEventRequest{Status: &completed})
	if err != nil {
		t.Fatalf("UpdateEvent() error = %v", err)
	}
	if updated.Status != models.EventCompleted {
		t.Errorf("Status = %v, want %v", updated.Status, models.EventCompleted)
	}
}
