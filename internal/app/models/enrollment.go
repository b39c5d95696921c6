package models

import "time"

// ClassMembership defines one student's membership in a class based on the
// 'class_students' table. At most one row exists per (class, student).
type ClassMembership struct {
	ID               int64     `json:"id" db:"id"`
	ClassID          int64     `json:"classId" db:"class_id"`
	StudentID        int64     `json:"studentId" db:"student_id"`
	StudentCode      string    `json:"studentCode" db:"student_code"`
	EnrolledSubjects *string   `json:"enrolledSubjects,omitempty" db:"enrolled_subjects"` // Comma-joined subject list at enrollment time
	EnrollmentDate   time.Time `json:"enrollmentDate" db:"enrollment_date"`
}

// SubjectEnrollment defines a single (student, class, subject) fact based on
// the 'subject_enrollments' table, finer-grained than ClassMembership.
type SubjectEnrollment struct {
	ID             int64     `json:"id" db:"id"`
	StudentID      int64     `json:"studentId" db:"student_id"`
	ClassID        int64     `json:"classId" db:"class_id"`
	Subject        string    `json:"subject" db:"subject"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`
}

// ClassTeacher defines a teacher's assignment to a class based on the
// 'class_teachers' table.
type ClassTeacher struct {
	ID           int64     `json:"id" db:"id"`
	ClassID      int64     `json:"classId" db:"class_id"`
	TeacherID    int64     `json:"teacherId" db:"teacher_id"`
	Subjects     *string   `json:"subjects,omitempty" db:"subjects"`
	AssignedDate time.Time `json:"assignedDate" db:"assigned_date"`
	IsPrimary    bool      `json:"isPrimary" db:"is_primary"`
}
