package dto

// CreateRescheduleRequest proposes a new time for an existing schedule.
// Date uses "2006-01-02"; times use "HH:mm".
type CreateRescheduleRequest struct {
	ScheduleID int64  `json:"scheduleId" binding:"required" example:"1"`
	Date       string `json:"date" binding:"required" example:"2025-06-02"`
	StartTime  string `json:"startTime" binding:"required" example:"10:00"`
	EndTime    string `json:"endTime" binding:"required" example:"11:00"`
	Reason     string `json:"reason" binding:"required" example:"clash with faculty meeting"`
}
