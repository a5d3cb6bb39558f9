package models

import "time"

// Module defines a course/subject unit based on the 'modules' table
type Module struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Code      string    `json:"code" db:"code" example:"CS101"`
	Name      string    `json:"name" db:"name" example:"Data Structures"`
	Password  string    `json:"-" db:"password"` // shared registration password, hashed
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ModuleRegistration links a student to a module. A student may register
// for a given module code at most once.
type ModuleRegistration struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	ModuleCode   string    `json:"moduleCode" db:"module_code"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`
	Student      *User     `json:"student,omitempty"` // relation, no db tag
}
