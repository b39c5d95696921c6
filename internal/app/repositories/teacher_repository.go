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

// TeacherRepository handles database operations for teachers
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: db}
}

const teacherColumns = `id, teacher_code, name, email, mobile, faculty, department, subjects, password, last_reset_request, created_at`

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var t models.Teacher
	err := row.Scan(
		&t.ID, &t.TeacherCode, &t.Name, &t.Email, &t.Mobile,
		&t.Faculty, &t.Department, &t.Subjects, &t.Password,
		&t.LastResetRequest, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID retrieves a teacher by id
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := fmt.Sprintf(`SELECT %s FROM teachers WHERE id = $1`, teacherColumns)

	teacher, err := scanTeacher(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

// GetByEmail retrieves a teacher by email
func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	query := fmt.Sprintf(`SELECT %s FROM teachers WHERE email = $1`, teacherColumns)

	teacher, err := scanTeacher(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher by email: %w", err)
	}

	return teacher, nil
}

// FindByCodeOrEmail matches a teacher on either natural key. A match on
// one key is enough to treat a re-imported row as the same teacher.
func (r *TeacherRepository) FindByCodeOrEmail(ctx context.Context, code, email string) (*models.Teacher, error) {
	query := fmt.Sprintf(`SELECT %s FROM teachers WHERE teacher_code = $1 OR email = $2 LIMIT 1`, teacherColumns)

	teacher, err := scanTeacher(r.db.QueryRow(ctx, query, code, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error matching teacher by code or email: %w", err)
	}

	return teacher, nil
}

// Insert creates a new teacher record and returns its id
func (r *TeacherRepository) Insert(ctx context.Context, t *models.Teacher) (int64, error) {
	query, args, err := squirrel.Insert("teachers").
		Columns("teacher_code", "name", "email", "mobile", "faculty", "department", "subjects", "password").
		Values(t.TeacherCode, t.Name, t.Email, t.Mobile, t.Faculty, t.Department, t.Subjects, t.Password).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building teacher insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting teacher: %w", err)
	}

	return id, nil
}

// UpdateCoalesce applies partial-update semantics: nil incoming fields keep
// the stored value. Identity code and password are never touched here.
func (r *TeacherRepository) UpdateCoalesce(ctx context.Context, id int64, name, email, mobile, faculty, department, subjects *string) error {
	query := `
		UPDATE teachers
		SET name = COALESCE($1, name),
		    email = COALESCE($2, email),
		    mobile = COALESCE($3, mobile),
		    faculty = COALESCE($4, faculty),
		    department = COALESCE($5, department),
		    subjects = COALESCE($6, subjects)
		WHERE id = $7
	`

	result, err := r.db.Exec(ctx, query, name, email, mobile, faculty, department, subjects, id)
	if err != nil {
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// GetAll retrieves all teachers ordered by name
func (r *TeacherRepository) GetAll(ctx context.Context) ([]models.Teacher, error) {
	query := fmt.Sprintf(`SELECT %s FROM teachers ORDER BY name`, teacherColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	teachers := make([]models.Teacher, 0)
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, *teacher)
	}

	return teachers, rows.Err()
}

// UpdatePassword sets a new password hash for a teacher
func (r *TeacherRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.Exec(ctx, `UPDATE teachers SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("error updating teacher password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// TouchResetRequest records when a password reset was last requested
func (r *TeacherRepository) TouchResetRequest(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE teachers SET last_reset_request = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("error recording teacher reset request: %w", err)
	}

	return nil
}

// DistinctDepartments returns the distinct non-null department values
func (r *TeacherRepository) DistinctDepartments(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "department")
}

// DistinctFaculties returns the distinct non-null faculty values
func (r *TeacherRepository) DistinctFaculties(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "faculty")
}

func (r *TeacherRepository) distinctColumn(ctx context.Context, column string) ([]string, error) {
	builder := squirrel.Select("DISTINCT " + column).
		From("teachers").
		Where(column + " IS NOT NULL AND " + column + " <> ''").
		OrderBy(column).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building distinct query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing distinct values: %w", err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("error scanning distinct value: %w", err)
		}
		values = append(values, value)
	}

	return values, rows.Err()
}

// AllSubjectLists returns every non-empty subjects string across teachers
func (r *TeacherRepository) AllSubjectLists(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT subjects FROM teachers WHERE subjects IS NOT NULL AND subjects <> ''`)
	if err != nil {
		return nil, fmt.Errorf("error listing teacher subjects: %w", err)
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
