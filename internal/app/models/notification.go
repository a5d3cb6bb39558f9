package models

import "time"

// Notification is the delivery record of a message sent to one examiner
// about one event, based on the 'notifications' table. The examiner's
// response lives on the paired Assignment.
type Notification struct {
	ID         int64          `json:"id" db:"id"`
	EventID    int64          `json:"eventId" db:"event_id"`
	ExaminerID int64          `json:"examinerId" db:"examiner_id"`
	Message    string         `json:"message" db:"message"`
	Delivery   DeliveryStatus `json:"delivery" db:"delivery" example:"SENT"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
	Response   ResponseStatus `json:"response"` // derived from the paired assignment, no db column
}

// Assignment is the accept/decline record paired 1:1 with a Notification,
// based on the 'assignments' table. Mutated only by the addressed examiner.
type Assignment struct {
	ID             int64          `json:"id" db:"id"`
	EventID        int64          `json:"eventId" db:"event_id"`
	ExaminerID     int64          `json:"examinerId" db:"examiner_id"`
	NotificationID int64          `json:"notificationId" db:"notification_id"`
	Status         ResponseStatus `json:"status" db:"status" example:"PENDING"`
	DeclineReason  *string        `json:"declineReason,omitempty" db:"decline_reason"`
	RespondedAt    *time.Time     `json:"respondedAt,omitempty" db:"responded_at"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
}
