package dto

import "github.com/omkar/campuslms/internal/app/models"

// ClassRosterEntry is one student row in a class detail response
type ClassRosterEntry struct {
	StudentID        int64   `json:"studentId"`
	StudentCode      string  `json:"studentCode"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	RollNo           string  `json:"rollNo"`
	EnrolledSubjects *string `json:"enrolledSubjects,omitempty"`
}

// ClassDetailResponse is a class together with its enrolled students
type ClassDetailResponse struct {
	Class    models.ClassGroup  `json:"class"`
	Students []ClassRosterEntry `json:"students"`
}
