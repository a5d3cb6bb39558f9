package models

import "time"

// Event defines a coordinator-created examination window based on the 'events' table.
// Expanding an event produces one Schedule per registered student.
type Event struct {
	ID          int64       `json:"id" db:"id" example:"1"`
	Name        string      `json:"name" db:"name" example:"ITP Final Viva"`
	StartDate   time.Time   `json:"startDate" db:"start_date"`
	EndDate     time.Time   `json:"endDate" db:"end_date"`
	Duration    int         `json:"duration" db:"duration" example:"30"` // minutes per schedule, >= 15
	ModuleCode  string      `json:"moduleCode" db:"module_code" example:"CS101"`
	Status      EventStatus `json:"status" db:"status" example:"PENDING"`
	CreatedBy   int64       `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
	ExaminerIDs []int64     `json:"examinerIds"` // from event_examiners, no db tag
	ScheduleIDs []int64     `json:"scheduleIds"` // derived schedules, no db tag
}
