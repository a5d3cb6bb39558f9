package models

import "time"

// ProposedTime is the replacement slot carried by a reschedule request.
type ProposedTime struct {
	Date      time.Time `json:"date" db:"proposed_date"`
	StartTime string    `json:"startTime" db:"proposed_start" example:"10:00"`
	EndTime   string    `json:"endTime" db:"proposed_end" example:"11:00"`
}

// RescheduleRequest is an examiner's request to move a Schedule, based on
// the 'reschedule_requests' table. At most one pending request may exist
// per (schedule, examiner) pair; APPROVED and REJECTED are terminal.
type RescheduleRequest struct {
	ID           int64            `json:"id" db:"id"`
	ScheduleID   int64            `json:"scheduleId" db:"schedule_id"`
	ExaminerID   int64            `json:"examinerId" db:"examiner_id"`
	ProposedTime ProposedTime     `json:"proposedTime"`
	Reason       string           `json:"reason" db:"reason"`
	Status       RescheduleStatus `json:"status" db:"status" example:"PENDING"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	DecidedAt    *time.Time       `json:"decidedAt,omitempty" db:"decided_at"`
}
