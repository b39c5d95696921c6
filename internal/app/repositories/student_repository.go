package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/pkg/apperrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, student_code, roll_no, name, email, mobile, faculty, department, stream, division, semester, academic_year, subjects, password, last_reset_request, created_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.StudentCode, &s.RollNo, &s.Name, &s.Email, &s.Mobile,
		&s.Faculty, &s.Department, &s.Stream, &s.Division, &s.Semester,
		&s.AcademicYear, &s.Subjects, &s.Password, &s.LastResetRequest,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a student by id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentColumns)

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByEmail retrieves the first student matching an email. Multiple records
// can share an email across class offerings; login takes the earliest one.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE email = $1 ORDER BY id LIMIT 1`, studentColumns)

	student, err := scanStudent(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by email: %w", err)
	}

	return student, nil
}

// FindByClassTuple matches a student by roll number within one exact class
// offering. Email and code deliberately play no part in this match: the same
// person in a later semester is a distinct record. IS NOT DISTINCT FROM makes
// the comparison hold when both sides are NULL.
func (r *StudentRepository) FindByClassTuple(ctx context.Context, rollNo string, key models.ClassKey) (*models.Student, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM students
		WHERE roll_no = $1
		  AND department IS NOT DISTINCT FROM $2
		  AND stream IS NOT DISTINCT FROM $3
		  AND division IS NOT DISTINCT FROM $4
		  AND semester IS NOT DISTINCT FROM $5
		  AND academic_year IS NOT DISTINCT FROM $6
		LIMIT 1
	`, studentColumns)

	student, err := scanStudent(r.db.QueryRow(ctx, query,
		rollNo,
		nullIfEmpty(key.Department),
		nullIfEmpty(key.Stream),
		nullIfEmpty(key.Division),
		nullIfEmpty(key.Semester),
		nullIfEmpty(key.AcademicYear),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error matching student by class tuple: %w", err)
	}

	return student, nil
}

// Insert creates a new student record and returns its id
func (r *StudentRepository) Insert(ctx context.Context, s *models.Student) (int64, error) {
	query, args, err := squirrel.Insert("students").
		Columns("student_code", "roll_no", "name", "email", "mobile", "faculty",
			"department", "stream", "division", "semester", "academic_year",
			"subjects", "password").
		Values(s.StudentCode, s.RollNo, s.Name, s.Email, s.Mobile, s.Faculty,
			s.Department, s.Stream, s.Division, s.Semester, s.AcademicYear,
			s.Subjects, s.Password).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building student insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting student: %w", err)
	}

	return id, nil
}

// UpdateCoalesce applies partial-update semantics on a matched student.
// The class tuple, identity code and password are never touched here.
func (r *StudentRepository) UpdateCoalesce(ctx context.Context, id int64, name, email, mobile, faculty, subjects *string) error {
	query := `
		UPDATE students
		SET name = COALESCE($1, name),
		    email = COALESCE($2, email),
		    mobile = COALESCE($3, mobile),
		    faculty = COALESCE($4, faculty),
		    subjects = COALESCE($5, subjects)
		WHERE id = $6
	`

	result, err := r.db.Exec(ctx, query, name, email, mobile, faculty, subjects, id)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// GetAll retrieves all students ordered by code
func (r *StudentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students ORDER BY student_code, roll_no`, studentColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, *student)
	}

	return students, rows.Err()
}

// UpdatePassword sets a new password hash for a student
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.Exec(ctx, `UPDATE students SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("error updating student password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// TouchResetRequest records when a password reset was last requested
func (r *StudentRepository) TouchResetRequest(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE students SET last_reset_request = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("error recording student reset request: %w", err)
	}

	return nil
}

// AllSubjectLists returns every non-empty subjects string across students
func (r *StudentRepository) AllSubjectLists(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT subjects FROM students WHERE subjects IS NOT NULL AND subjects <> ''`)
	if err != nil {
		return nil, fmt.Errorf("error listing student subjects: %w", err)
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

// nullIfEmpty maps an empty string to SQL NULL for tuple comparisons
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
