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
	"github.com/omkar/campuslms/internal/app/models/dto"
	"github.com/omkar/campuslms/internal/pkg/apperrors"
)

// ClassRepository handles database operations for class offerings
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: db}
}

const classColumns = `id, class_code, class_name, department, stream, division, semester, academic_year, faculty, subjects, is_active, created_at, updated_at`

func scanClass(row pgx.Row) (*models.ClassGroup, error) {
	var c models.ClassGroup
	err := row.Scan(
		&c.ID, &c.ClassCode, &c.ClassName, &c.Department, &c.Stream,
		&c.Division, &c.Semester, &c.AcademicYear, &c.Faculty, &c.Subjects,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID retrieves a class by id
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.ClassGroup, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE id = $1`, classColumns)

	class, err := scanClass(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return class, nil
}

// FindByCodeOrKey matches a class on its derived code or on the attribute
// tuple; either match means "same class". NULL attributes compare equal via
// IS NOT DISTINCT FROM.
func (r *ClassRepository) FindByCodeOrKey(ctx context.Context, code string, key models.ClassKey) (*models.ClassGroup, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM classes
		WHERE class_code = $1
		   OR (department IS NOT DISTINCT FROM $2
		       AND stream IS NOT DISTINCT FROM $3
		       AND division IS NOT DISTINCT FROM $4
		       AND semester IS NOT DISTINCT FROM $5
		       AND academic_year IS NOT DISTINCT FROM $6)
		LIMIT 1
	`, classColumns)

	class, err := scanClass(r.db.QueryRow(ctx, query,
		code,
		nullIfEmpty(key.Department),
		nullIfEmpty(key.Stream),
		nullIfEmpty(key.Division),
		nullIfEmpty(key.Semester),
		nullIfEmpty(key.AcademicYear),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error matching class by code or key: %w", err)
	}

	return class, nil
}

// Insert creates a new class record and returns its id
func (r *ClassRepository) Insert(ctx context.Context, c *models.ClassGroup) (int64, error) {
	query, args, err := squirrel.Insert("classes").
		Columns("class_code", "class_name", "department", "stream", "division",
			"semester", "academic_year", "faculty", "subjects", "is_active").
		Values(c.ClassCode, c.ClassName, c.Department, c.Stream, c.Division,
			c.Semester, c.AcademicYear, c.Faculty, c.Subjects, true).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building class insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting class: %w", err)
	}

	return id, nil
}

// UpdateSubjects writes back the merged subject set for a class
func (r *ClassRepository) UpdateSubjects(ctx context.Context, id int64, subjects string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE classes SET subjects = $1, updated_at = $2 WHERE id = $3`,
		subjects, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating class subjects: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// GetAll retrieves all active classes ordered by code
func (r *ClassRepository) GetAll(ctx context.Context) ([]models.ClassGroup, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE is_active ORDER BY class_code`, classColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	defer rows.Close()

	classes := make([]models.ClassGroup, 0)
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning class row: %w", err)
		}
		classes = append(classes, *class)
	}

	return classes, rows.Err()
}

// GetRoster retrieves the enrolled students of a class
func (r *ClassRepository) GetRoster(ctx context.Context, classID int64) ([]dto.ClassRosterEntry, error) {
	query := `
		SELECT s.id, cs.student_code, s.name, s.email, s.roll_no, cs.enrolled_subjects
		FROM class_students cs
		JOIN students s ON s.id = cs.student_id
		WHERE cs.class_id = $1
		ORDER BY s.roll_no
	`

	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing class roster: %w", err)
	}
	defer rows.Close()

	roster := make([]dto.ClassRosterEntry, 0)
	for rows.Next() {
		var entry dto.ClassRosterEntry
		err := rows.Scan(&entry.StudentID, &entry.StudentCode, &entry.Name,
			&entry.Email, &entry.RollNo, &entry.EnrolledSubjects)
		if err != nil {
			return nil, fmt.Errorf("error scanning roster row: %w", err)
		}
		roster = append(roster, entry)
	}

	return roster, rows.Err()
}

// AllSubjectLists returns every non-empty aggregated subject string stored on
// class rows
func (r *ClassRepository) AllSubjectLists(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT subjects FROM classes WHERE subjects IS NOT NULL AND subjects <> ''`)
	if err != nil {
		return nil, fmt.Errorf("error listing class subjects: %w", err)
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
