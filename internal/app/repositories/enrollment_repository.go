package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omkar/campuslms/internal/pkg/dberrors"
)

// EnrollmentRepository handles class membership and per-subject enrollment
// facts
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// HasMembership reports whether a (class, student) membership row exists
func (r *EnrollmentRepository) HasMembership(ctx context.Context, classID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM class_students WHERE class_id = $1 AND student_id = $2)`,
		classID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking class membership: %w", err)
	}

	return exists, nil
}

// InsertMembership creates the (class, student) membership row. A unique
// violation means a concurrent batch already enrolled the student; that is
// reported as inserted=false, not as an error.
func (r *EnrollmentRepository) InsertMembership(ctx context.Context, classID, studentID int64, studentCode string, enrolledSubjects *string) (bool, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO class_students (class_id, student_id, student_code, enrolled_subjects)
		VALUES ($1, $2, $3, $4)
	`, classID, studentID, studentCode, enrolledSubjects)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("error inserting class membership: %w", err)
	}

	return true, nil
}

// EnsureSubjectFact inserts one (student, class, subject) fact if absent.
// Returns whether a new row was created.
func (r *EnrollmentRepository) EnsureSubjectFact(ctx context.Context, studentID, classID int64, subject string) (bool, error) {
	result, err := r.db.Exec(ctx, `
		INSERT INTO subject_enrollments (student_id, class_id, subject)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, class_id, subject) DO NOTHING
	`, studentID, classID, subject)
	if err != nil {
		return false, fmt.Errorf("error inserting subject enrollment: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// AssignTeacher links a teacher to a class for a subject set, once
func (r *EnrollmentRepository) AssignTeacher(ctx context.Context, classID, teacherID int64, subjects *string, isPrimary bool) (bool, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO class_teachers (class_id, teacher_id, subjects, is_primary)
		VALUES ($1, $2, $3, $4)
	`, classID, teacherID, subjects, isPrimary)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("error assigning teacher to class: %w", err)
	}

	return true, nil
}

// AllSubjectLists returns every non-empty subject string assigned on
// teacher-class rows
func (r *EnrollmentRepository) AllSubjectLists(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT subjects FROM class_teachers WHERE subjects IS NOT NULL AND subjects <> ''`)
	if err != nil {
		return nil, fmt.Errorf("error listing class teacher subjects: %w", err)
	}
	defer rows.Close()

	lists := make([]string, 0)
	for rows.Next() {
		var subjects string
		if err := rows.Scan(&subjects); err != nil {
			return nil, fmt.Errorf("error scanning subjects: %w", err)
		}
		lists = append(lists, subjects)
	}

	return lists, rows.Err()
}
