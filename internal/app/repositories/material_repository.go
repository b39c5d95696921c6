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

// MaterialRepository handles database operations for study materials
type MaterialRepository struct {
	db *pgxpool.Pool
}

// NewMaterialRepository creates a new MaterialRepository
func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{db: db}
}

const materialColumns = `id, class_id, teacher_id, subject, title, description, material_type, file_url, file_name, file_size, youtube_link, is_active, upload_date, updated_at`

func scanMaterial(row pgx.Row) (*models.StudyMaterial, error) {
	var m models.StudyMaterial
	err := row.Scan(&m.ID, &m.ClassID, &m.TeacherID, &m.Subject, &m.Title,
		&m.Description, &m.MaterialType, &m.FileURL, &m.FileName, &m.FileSize,
		&m.YoutubeLink, &m.IsActive, &m.UploadDate, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts new study material metadata and returns its id
func (r *MaterialRepository) Create(ctx context.Context, m *models.StudyMaterial) (int64, error) {
	query, args, err := squirrel.Insert("study_materials").
		Columns("class_id", "teacher_id", "subject", "title", "description",
			"material_type", "file_url", "file_name", "file_size", "youtube_link", "is_active").
		Values(m.ClassID, m.TeacherID, m.Subject, m.Title, m.Description,
			m.MaterialType, m.FileURL, m.FileName, m.FileSize, m.YoutubeLink, true).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building material insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting study material: %w", err)
	}

	return id, nil
}

// GetByID retrieves one study material record
func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*models.StudyMaterial, error) {
	query := fmt.Sprintf(`SELECT %s FROM study_materials WHERE id = $1`, materialColumns)

	material, err := scanMaterial(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("error retrieving study material: %w", err)
	}

	return material, nil
}

// GetByClass retrieves the active materials of a class, optionally filtered
// by subject
func (r *MaterialRepository) GetByClass(ctx context.Context, classID int64, subject *string) ([]models.StudyMaterial, error) {
	builder := squirrel.Select(materialColumns).
		From("study_materials").
		Where(squirrel.Eq{"class_id": classID, "is_active": true}).
		OrderBy("upload_date DESC").
		PlaceholderFormat(squirrel.Dollar)

	if subject != nil && *subject != "" {
		builder = builder.Where(squirrel.Eq{"subject": *subject})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building material query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing study materials: %w", err)
	}
	defer rows.Close()

	materials := make([]models.StudyMaterial, 0)
	for rows.Next() {
		material, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning material row: %w", err)
		}
		materials = append(materials, *material)
	}

	return materials, rows.Err()
}

// Update rewrites the mutable fields of a study material record
func (r *MaterialRepository) Update(ctx context.Context, m *models.StudyMaterial) error {
	query, args, err := squirrel.Update("study_materials").
		Set("subject", m.Subject).
		Set("title", m.Title).
		Set("description", m.Description).
		Set("material_type", m.MaterialType).
		Set("file_url", m.FileURL).
		Set("file_name", m.FileName).
		Set("file_size", m.FileSize).
		Set("youtube_link", m.YoutubeLink).
		Set("is_active", m.IsActive).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": m.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building material update: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating study material: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}

	return nil
}

// Delete removes a study material record
func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM study_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting study material: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}

	return nil
}
