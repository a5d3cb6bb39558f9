package models

import "time"

// Evaluation is a grade plus notes for one (student, examiner, schedule,
// module) tuple, based on the 'evaluations' table. Re-submission for the
// same tuple overwrites grade and presentation (upsert).
type Evaluation struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	ExaminerID   int64     `json:"examinerId" db:"examiner_id"`
	ScheduleID   int64     `json:"scheduleId" db:"schedule_id"`
	ModuleCode   string    `json:"moduleCode" db:"module_code"`
	Grade        float64   `json:"grade" db:"grade" example:"78.5"` // 0-100 inclusive
	Presentation string    `json:"presentation" db:"presentation"`
	SubmittedAt  time.Time `json:"submittedAt" db:"submitted_at"`
}
