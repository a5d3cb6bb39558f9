package dto

// MeetingLinkRequest sets the online meeting link of a schedule
type MeetingLinkRequest struct {
	MeetingLink string `json:"meetingLink" binding:"required,url" example:"https://meet.example.com/abc"`
}
