package dto

// NotifyExaminersRequest asks the dispatcher to notify examiners about an event
type NotifyExaminersRequest struct {
	EventID     int64   `json:"eventId" binding:"required" example:"1"`
	ExaminerIDs []int64 `json:"examinerIds" binding:"required,min=1"`
	Message     string  `json:"message" binding:"required" example:"You have been assigned to the ITP Final Viva."`
}

// RespondAssignmentRequest is the examiner's accept/decline payload
type RespondAssignmentRequest struct {
	Status        string `json:"status" binding:"required,oneof=ACCEPTED DECLINED" example:"DECLINED"`
	DeclineReason string `json:"declineReason,omitempty" example:"on leave that week"`
}
