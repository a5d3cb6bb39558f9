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

type availabilityFixture struct {
	service      *AvailabilityService
	availability *fakeAvailabilityStore
	schedules    *fakeScheduleStore
	events       *fakeEventStore
	users        *fakeUserStore
}

func newAvailabilityFixture() *availabilityFixture {
	availability := newFakeAvailabilityStore()
	schedules := newFakeScheduleStore()
	events := newFakeEventStore()
	users := newFakeUserStore()
	service := NewAvailabilityService(availability, schedules, events, users)
	service.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return &availabilityFixture{
		service:      service,
		availability: availability,
		schedules:    schedules,
		events:       events,
		users:        users,
	}
}

func TestSubmitAvailabilityValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     dto.SubmitAvailabilityRequest
		wantErr error
	}{
		{
			name:    "malformed date",
			req:     dto.SubmitAvailabilityRequest{Date: "02-06-2025", Slots: []string{"09:00-12:00"}},
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "date in the past",
			req:     dto.SubmitAvailabilityRequest{Date: "2025-05-30", Slots: []string{"09:00-12:00"}},
			wantErr: apperrors.ErrAvailabilityInPast,
		},
		{
			name:    "today is not a future date",
			req:     dto.SubmitAvailabilityRequest{Date: "2025-06-01", Slots: []string{"09:00-12:00"}},
			wantErr: apperrors.ErrAvailabilityInPast,
		},
		{
			name:    "no slots",
			req:     dto.SubmitAvailabilityRequest{Date: "2025-06-02", Slots: nil},
			wantErr: apperrors.ErrNoSlotsProvided,
		},
		{
			name:    "malformed slot",
			req:     dto.SubmitAvailabilityRequest{Date: "2025-06-02", Slots: []string{"9am-12pm"}},
			wantErr: apperrors.ErrInvalidTimeSlot,
		},
		{
			name:    "slot ends before it starts",
			req:     dto.SubmitAvailabilityRequest{Date: "2025-06-02", Slots: []string{"12:00-09:00"}},
			wantErr: apperrors.ErrInvalidTimeSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAvailabilityFixture()
			_, err := f.service.SubmitAvailability(ctx, 1, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SubmitAvailability() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubmitAvailabilityReplacesSameDate(t *testing.T) {
	ctx := context.Background()
	f := newAvailabilityFixture()

	first, err := f.service.SubmitAvailability(ctx, 1, &dto.SubmitAvailabilityRequest{
		Date:  "2025-06-02",
		Slots: []string{"09:00-12:00"},
	})
	if err != nil {
		t.Fatalf("SubmitAvailability() error = %v", err)
	}

	second, err := f.service.SubmitAvailability(ctx, 1, &dto.SubmitAvailabilityRequest{
		Date:  "2025-06-02",
		Slots: []string{"13:00-15:00"},
	})
	if err != nil {
		t.Fatalf("SubmitAvailability() error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("resubmission created a new entry: id %d, want %d", second.ID, first.ID)
	}

	entries, err := f.service.GetAvailability(ctx, 1)
	if err != nil {
		t.Fatalf("GetAvailability() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if len(entries[0].Slots) != 1 || entries[0].Slots[0] != "13:00-15:00" {
		t.Errorf("stored slots = %v, want [13:00-15:00]", entries[0].Slots)
	}
}

func TestMatchExaminersForEvent(t *testing.T) {
	ctx := context.Background()
	f := newAvailabilityFixture()

	covered := f.users.add("alice", "alice@campus.edu", models.RoleExaminer)
	uncovered := f.users.add("dan", "dan@campus.edu", models.RoleExaminer)

	event := &models.Event{
		StartDate:   time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC),
		Duration:    30,
		ModuleCode:  "CS101",
		ExaminerIDs: []int64{covered.ID},
	}
	if err := f.events.Create(ctx, event); err != nil {
		t.Fatalf("seeding event: %v", err)
	}

	for _, date := range []string{"2025-06-02", "2025-06-03"} {
		if err := f.availability.Upsert(ctx, dated(covered.ID, date, "09:00-12:00")); err != nil {
			t.Fatalf("seeding availability: %v", err)
		}
	}
	if err := f.availability.Upsert(ctx, dated(uncovered.ID, "2025-06-02", "09:00-12:00")); err != nil {
		t.Fatalf("seeding availability: %v", err)
	}

	matched, err := f.service.MatchExaminersForEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("MatchExaminersForEvent() error = %v", err)
	}
	if len(matched) != 1 || matched[0].ID != covered.ID {
		ids := make([]int64, 0, len(matched))
		for _, m := range matched {
			ids = append(ids, m.ID)
		}
		t.Errorf("matched = %v, want [%d]", ids, covered.ID)
	}
}

func TestMatchExaminersForEventWeeklyTemplate(t *testing.T) {
	ctx := context.Background()
	f := newAvailabilityFixture()

	examiner := f.users.add("alice", "alice@campus.edu", models.RoleExaminer)

	// Weekly declaration anchored weeks before the event window. It still
	// applies to any later date falling on the same weekday.
	if err := f.availability.Upsert(ctx, weeklyOn(examiner.ID, "2025-06-02", "08:00-18:00")); err != nil {
		t.Fatalf("seeding availability: %v", err)
	}

	event := &models.Event{
		StartDate:   time.Date(2025, 7, 7, 9, 0, 0, 0, time.UTC), // a Monday
		EndDate:     time.Date(2025, 7, 7, 10, 0, 0, 0, time.UTC),
		Duration:    30,
		ModuleCode:  "CS101",
		ExaminerIDs: []int64{examiner.ID},
	}
	if err := f.events.Create(ctx, event); err != nil {
		t.Fatalf("seeding event: %v", err)
	}

	matched, err := f.service.MatchExaminersForEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("MatchExaminersForEvent() error = %v", err)
	}
	if len(matched) != 1 || matched[0].ID != examiner.ID {
		ids := make([]int64, 0, len(matched))
		for _, m := range matched {
			ids = append(ids, m.ID)
		}
		t.Errorf("matched = %v, want [%d]", ids, examiner.ID)
	}
}

func TestBrowseExaminers(t *testing.T) {
	ctx := context.Background()
	f := newAvailabilityFixture()

	free := f.users.add("alice", "alice@campus.edu", models.RoleExaminer)
	busy := f.users.add("dan", "dan@campus.edu", models.RoleExaminer)

	// The busy examiner sits at the load ceiling but is still listed.
	var overloaded []*models.Schedule
	for i := 0; i < MaxExaminerLoad; i++ {
		overloaded = append(overloaded, &models.Schedule{
			EventID:    1,
			StudentID:  int64(100 + i),
			ExaminerID: busy.ID,
			ModuleCode: "CS101",
			ScheduledTime: models.ScheduledTime{
				Date:  time.Date(2025, 6, 10+i, 0, 0, 0, 0, time.UTC),
				Slots: []string{"09:00-09:30"},
			},
		})
	}
	if err := f.schedules.CreateForEvent(ctx, overloaded); err != nil {
		t.Fatalf("seeding schedules: %v", err)
	}

	prior := &models.Schedule{
		EventID:    2,
		StudentID:  200,
		ExaminerID: free.ID,
		ModuleCode: "CS205",
		ScheduledTime: models.ScheduledTime{
			Date:  time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
			Slots: []string{"10:00-10:30"},
		},
	}
	if err := f.schedules.CreateForEvent(ctx, []*models.Schedule{prior}); err != nil {
		t.Fatalf("seeding schedule: %v", err)
	}

	for _, date := range []string{"2025-06-02", "2025-06-03", "2025-06-04"} {
		if err := f.availability.Upsert(ctx, dated(free.ID, date, "09:00-12:00")); err != nil {
			t.Fatalf("seeding availability: %v", err)
		}
	}

	candidates, err := f.service.BrowseExaminers(ctx)
	if err != nil {
		t.Fatalf("BrowseExaminers() error = %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	byID := make(map[int64]dto.ExaminerCandidate, len(candidates))
	for _, c := range candidates {
		byID[c.ExaminerID] = c
	}

	c, ok := byID[free.ID]
	if !ok {
		t.Fatalf("candidate %d missing from listing", free.ID)
	}
	if c.Load != 1 {
		t.Errorf("Load = %d, want 1", c.Load)
	}
	if c.MaxLoad != MaxExaminerLoad {
		t.Errorf("MaxLoad = %d, want %d", c.MaxLoad, MaxExaminerLoad)
	}
	// Only the first two upcoming dates are listed.
	if len(c.NextAvailable) != 2 || c.NextAvailable[0] != "2025-06-02" || c.NextAvailable[1] != "2025-06-03" {
		t.Errorf("NextAvailable = %v, want [2025-06-02 2025-06-03]", c.NextAvailable)
	}
	if len(c.Modules) != 1 || c.Modules[0] != "CS205" {
		t.Errorf("Modules = %v, want [CS205]", c.Modules)
	}

	saturated, ok := byID[busy.ID]
	if !ok {
		t.Fatalf("candidate %d missing from listing", busy.ID)
	}
	if saturated.Load != MaxExaminerLoad {
		t.Errorf("Load = %d, want %d", saturated.Load, MaxExaminerLoad)
	}
	if saturated.MaxLoad != MaxExaminerLoad {
		t.Errorf("MaxLoad = %d, want %d", saturated.MaxLoad, MaxExaminerLoad)
	}
}
