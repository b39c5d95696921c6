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

// AnnouncementRepository handles database operations for announcements
type AnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

const announcementColumns = `id, class_id, teacher_id, title, content, announcement_type, created_at, updated_at`

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	var a models.Announcement
	err := row.Scan(&a.ID, &a.ClassID, &a.TeacherID, &a.Title, &a.Content,
		&a.Type, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new announcement and returns its id
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) (int64, error) {
	query, args, err := squirrel.Insert("announcements").
		Columns("class_id", "teacher_id", "title", "content", "announcement_type").
		Values(a.ClassID, a.TeacherID, a.Title, a.Content, a.Type).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building announcement insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting announcement: %w", err)
	}

	return id, nil
}

// GetByID retrieves an announcement by id
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	query := fmt.Sprintf(`SELECT %s FROM announcements WHERE id = $1`, announcementColumns)

	announcement, err := scanAnnouncement(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("error retrieving announcement: %w", err)
	}

	return announcement, nil
}

// GetByClass retrieves the announcements of a class, newest first
func (r *AnnouncementRepository) GetByClass(ctx context.Context, classID int64) ([]models.Announcement, error) {
	query := fmt.Sprintf(`SELECT %s FROM announcements WHERE class_id = $1 ORDER BY created_at DESC`, announcementColumns)

	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing announcements: %w", err)
	}
	defer rows.Close()

	announcements := make([]models.Announcement, 0)
	for rows.Next() {
		announcement, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcements = append(announcements, *announcement)
	}

	return announcements, rows.Err()
}

// Update rewrites the mutable fields of an announcement
func (r *AnnouncementRepository) Update(ctx context.Context, a *models.Announcement) error {
	query, args, err := squirrel.Update("announcements").
		Set("title", a.Title).
		Set("content", a.Content).
		Set("announcement_type", a.Type).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": a.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building announcement update: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating announcement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}

	return nil
}

// Delete removes an announcement
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}

	return nil
}
