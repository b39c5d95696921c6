package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/app/models/dto"
	"github.com/omkar/campuslms/internal/app/repositories"
	"github.com/omkar/campuslms/internal/pkg/apperrors"
	"github.com/omkar/campuslms/internal/pkg/helpers"
)

// AnnouncementService handles class-scoped announcements
type AnnouncementService struct {
	announcementRepo *repositories.AnnouncementRepository
	classRepo        *repositories.ClassRepository
	logger           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(
	announcementRepo *repositories.AnnouncementRepository,
	classRepo *repositories.ClassRepository,
	logger zerolog.Logger,
) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		classRepo:        classRepo,
		logger:           logger,
	}
}

// Create publishes a new announcement authored by a teacher
func (s *AnnouncementService) Create(ctx context.Context, teacherID int64, req *dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	if _, err := s.classRepo.GetByID(ctx, req.ClassID); err != nil {
		return nil, err
	}

	announcementType := req.Type
	if announcementType == "" {
		announcementType = "general"
	}

	announcement := &models.Announcement{
		ClassID:   req.ClassID,
		TeacherID: teacherID,
		Title:     req.Title,
		Content:   helpers.NullableString(req.Content),
		Type:      announcementType,
	}

	id, err := s.announcementRepo.Create(ctx, announcement)
	if err != nil {
		return nil, err
	}

	return s.announcementRepo.GetByID(ctx, id)
}

// ListForClass returns the announcements of one class
func (s *AnnouncementService) ListForClass(ctx context.Context, classID int64) ([]models.Announcement, error) {
	if _, err := s.classRepo.GetByID(ctx, classID); err != nil {
		return nil, err
	}
	return s.announcementRepo.GetByClass(ctx, classID)
}

// Update rewrites an announcement. Only the authoring teacher may update it.
func (s *AnnouncementService) Update(ctx context.Context, teacherID, announcementID int64, req *dto.UpdateAnnouncementRequest) (*models.Announcement, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, announcementID)
	if err != nil {
		return nil, err
	}
	if announcement.TeacherID != teacherID {
		return nil, apperrors.ErrPermissionDenied
	}

	announcement.Title = req.Title
	announcement.Content = helpers.NullableString(req.Content)
	if req.Type != "" {
		announcement.Type = req.Type
	}

	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return nil, err
	}

	return s.announcementRepo.GetByID(ctx, announcementID)
}

// Delete removes an announcement. Admins may delete any; teachers only their
// own.
func (s *AnnouncementService) Delete(ctx context.Context, callerID int64, callerRole models.Role, announcementID int64) error {
	announcement, err := s.announcementRepo.GetByID(ctx, announcementID)
	if err != nil {
		return err
	}
	if callerRole != models.RoleAdmin && announcement.TeacherID != callerID {
		return apperrors.ErrPermissionDenied
	}

	return s.announcementRepo.Delete(ctx, announcementID)
}
