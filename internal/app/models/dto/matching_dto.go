package dto

// ExaminerCandidate is one row of the examiner browse listing: who the
// examiner is, how soon they are free, how loaded they are and which
// modules they have examined before.
type ExaminerCandidate struct {
	ExaminerID    int64    `json:"examinerId" example:"3"`
	Name          string   `json:"name" example:"Dr. Perera"`
	Email         string   `json:"email" example:"perera@campus.edu"`
	NextAvailable []string `json:"nextAvailable" example:"2025-06-02,2025-06-04"` // at most two upcoming dates
	Load          int      `json:"load" example:"2"`                              // upcoming schedule count
	MaxLoad       int      `json:"maxLoad" example:"5"`                           // capacity ceiling
	Modules       []string `json:"modules" example:"CS101,CS204"`                 // prior examining experience
}
