package models

import "time"

// Teacher defines the teacher model based on the 'teachers' table
type Teacher struct {
	ID               int64      `json:"id" db:"id" example:"1"`                                  // Unique identifier for the teacher record
	TeacherCode      string     `json:"teacherCode" db:"teacher_code" example:"T-CS-001"`        // Natural identity code, supplied by the CSV feed
	Name             string     `json:"name" db:"name" example:"Asha Kulkarni"`                  // Display name
	Email            string     `json:"email" db:"email" example:"asha.k@moderncollege.edu"`     // Email address, natural key alongside the code
	Mobile           *string    `json:"mobile,omitempty" db:"mobile" example:"9822011223"`       // Contact number (nullable)
	Faculty          *string    `json:"faculty,omitempty" db:"faculty" example:"Science"`        // Faculty the teacher belongs to (nullable)
	Department       *string    `json:"department,omitempty" db:"department" example:"Computer Science"` // Department (nullable)
	Subjects         *string    `json:"subjects,omitempty" db:"subjects" example:"Java,Python"`  // Comma-joined subject list (nullable)
	Password         string     `json:"-" db:"password"`                                         // Hashed password, empty until set via reset flow
	LastResetRequest *time.Time `json:"-" db:"last_reset_request"`                               // Timestamp of the last password-reset request
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
}
