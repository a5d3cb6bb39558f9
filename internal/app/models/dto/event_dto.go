package dto

import "time"

// CreateEventRequest is the payload for creating an examination event
type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required" example:"ITP Final Viva"`
	StartDate   time.Time `json:"startDate" binding:"required" example:"2025-06-01T09:00:00Z"`
	EndDate     time.Time `json:"endDate" binding:"required" example:"2025-06-01T17:00:00Z"`
	Duration    int       `json:"duration" binding:"required" example:"30"` // minutes
	ModuleCode  string    `json:"moduleCode" binding:"required" example:"CS101"`
	ExaminerIDs []int64   `json:"examinerIds" binding:"required,min=1"`
}

// UpdateEventRequest is the payload for partially updating an event.
// Only non-nil fields are merged.
type UpdateEventRequest struct {
	Name        *string    `json:"name,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Duration    *int       `json:"duration,omitempty"`
	Status      *string    `json:"status,omitempty" binding:"omitempty,oneof=PENDING UPCOMING COMPLETED" example:"UPCOMING"`
	ExaminerIDs []int64    `json:"examinerIds,omitempty"`
}
