package models

import "time"

// ClassGroup defines one class offering based on the 'classes' table.
// The subject set only ever grows: repeated imports union new subjects into
// Subjects, nothing is dropped.
type ClassGroup struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	ClassCode    string    `json:"classCode" db:"class_code" example:"COM-SCI-A-SEM03-2526"` // Derived class code, unique
	ClassName    string    `json:"className" db:"class_name"`                                // Human-readable label assembled at creation
	Department   *string   `json:"department,omitempty" db:"department"`
	Stream       *string   `json:"stream,omitempty" db:"stream"`
	Division     *string   `json:"division,omitempty" db:"division"`
	Semester     *string   `json:"semester,omitempty" db:"semester"`
	AcademicYear *string   `json:"academicYear,omitempty" db:"academic_year"`
	Faculty      *string   `json:"faculty,omitempty" db:"faculty"`
	Subjects     *string   `json:"subjects,omitempty" db:"subjects"` // Comma-joined aggregated subject set
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// ClassKey is the attribute tuple that identifies a class offering
// independently of its derived code.
type ClassKey struct {
	Department   string
	Stream       string
	Division     string
	Semester     string
	AcademicYear string
}
