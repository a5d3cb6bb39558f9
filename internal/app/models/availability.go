package models

import "time"

// ExaminerAvailability is the declared set of free time slots for one
// examiner on one date, based on the 'examiner_availability' table.
// Upserts are keyed by (examiner_id, date). Weekly marks a recurring
// template rather than a one-off date.
type ExaminerAvailability struct {
	ID         int64     `json:"id" db:"id"`
	ExaminerID int64     `json:"examinerId" db:"examiner_id"`
	Date       time.Time `json:"date" db:"available_date"`
	Slots      []string  `json:"slots" db:"slots" example:"09:00-12:00"`
	Weekly     bool      `json:"weekly" db:"weekly"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
