package dto

// SubmitAvailabilityRequest declares an examiner's free slots for one date.
// Date uses "2006-01-02"; slots use "HH:mm-HH:mm".
type SubmitAvailabilityRequest struct {
	Date   string   `json:"date" binding:"required" example:"2025-06-02"`
	Slots  []string `json:"slots" binding:"required,min=1" example:"09:00-12:00,13:00-15:00"`
	Weekly bool     `json:"weekly" example:"false"`
}
