package models

import "time"

// Student defines the student model based on the 'students' table.
// A student record is scoped to one class offering: the same human appearing
// under a different (department, stream, division, semester, academic year)
// tuple is a separate record by design.
type Student struct {
	ID               int64      `json:"id" db:"id" example:"1"`                                       // Unique identifier for the student record
	StudentCode      string     `json:"studentCode" db:"student_code" example:"COM-SCI-A-3-25-007"`   // Derived identity code, fixed at insert
	RollNo           string     `json:"rollNo" db:"roll_no" example:"7"`                              // Roll number within the class
	Name             string     `json:"name" db:"name" example:"Rahul Deshmukh"`                      // Display name
	Email            string     `json:"email" db:"email" example:"rahul.d@student.moderncollege.edu"` // Email address
	Mobile           *string    `json:"mobile,omitempty" db:"mobile"`                                 // Contact number (nullable)
	Faculty          *string    `json:"faculty,omitempty" db:"faculty" example:"Science"`             // Faculty (nullable)
	Department       *string    `json:"department,omitempty" db:"department" example:"Computer Science"` // Department (nullable)
	Stream           *string    `json:"stream,omitempty" db:"stream" example:"Science"`               // Stream (nullable)
	Division         *string    `json:"division,omitempty" db:"division" example:"A"`                 // Division (nullable)
	Semester         *string    `json:"semester,omitempty" db:"semester" example:"3"`                 // Semester (nullable)
	AcademicYear     *string    `json:"academicYear,omitempty" db:"academic_year" example:"2025-26"`  // Academic year (nullable)
	Subjects         *string    `json:"subjects,omitempty" db:"subjects" example:"Java,DBMS"`         // Comma-joined subject list (nullable)
	Password         string     `json:"-" db:"password"`                                              // Hashed password, empty until set via reset flow
	LastResetRequest *time.Time `json:"-" db:"last_reset_request"`                                    // Timestamp of the last password-reset request
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
}

// ClassTuple returns the class-scoped natural key used to match students on
// re-import.
func (s *Student) ClassTuple() ClassKey {
	return ClassKey{
		Department:   deref(s.Department),
		Stream:       deref(s.Stream),
		Division:     deref(s.Division),
		Semester:     deref(s.Semester),
		AcademicYear: deref(s.AcademicYear),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
