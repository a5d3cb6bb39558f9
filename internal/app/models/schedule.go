package models

import "time"

// ScheduledTime is the authoritative time of one exam slot: a calendar date
// plus one or more "HH:mm-HH:mm" ranges on that date.
type ScheduledTime struct {
	Date  time.Time `json:"date" db:"scheduled_date"`
	Slots []string  `json:"slots" db:"slots" example:"09:00-09:30"`
}

// Schedule binds one student, one examiner and a time, based on the
// 'schedules' table. Created by expanding an Event; its ScheduledTime is
// overwritten when a reschedule request is approved.
type Schedule struct {
	ID            int64         `json:"id" db:"id" example:"1"`
	EventID       int64         `json:"eventId" db:"event_id"`
	StudentID     int64         `json:"studentId" db:"student_id"`
	ExaminerID    int64         `json:"examinerId" db:"examiner_id"`
	ModuleCode    string        `json:"moduleCode" db:"module_code"`
	ScheduledTime ScheduledTime `json:"scheduledTime"`
	MeetingLink   *string       `json:"meetingLink,omitempty" db:"meeting_link"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
	HasEvaluation bool          `json:"hasEvaluation"` // annotation, no db column
}
