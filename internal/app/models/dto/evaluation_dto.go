package dto

// SubmitEvaluationRequest records a grade for one schedule
type SubmitEvaluationRequest struct {
	StudentID    int64   `json:"studentId" binding:"required" example:"7"`
	ScheduleID   int64   `json:"scheduleId" binding:"required" example:"1"`
	ModuleCode   string  `json:"moduleCode" binding:"required" example:"CS101"`
	Grade        float64 `json:"grade" example:"78.5"`
	Presentation string  `json:"presentation,omitempty" example:"Confident delivery, weak on edge cases"`
}

// BatchEvaluationRequest submits several evaluations in one call
type BatchEvaluationRequest struct {
	Evaluations []SubmitEvaluationRequest `json:"evaluations" binding:"required,min=1"`
}
