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

// MaterialService handles study material metadata scoped to classes
type MaterialService struct {
	materialRepo *repositories.MaterialRepository
	classRepo    *repositories.ClassRepository
	logger       zerolog.Logger
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(
	materialRepo *repositories.MaterialRepository,
	classRepo *repositories.ClassRepository,
	logger zerolog.Logger,
) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		classRepo:    classRepo,
		logger:       logger,
	}
}

// Create registers new study material for a class
func (s *MaterialService) Create(ctx context.Context, teacherID int64, req *dto.CreateMaterialRequest) (*models.StudyMaterial, error) {
	if _, err := s.classRepo.GetByID(ctx, req.ClassID); err != nil {
		return nil, err
	}

	material := &models.StudyMaterial{
		ClassID:      req.ClassID,
		TeacherID:    teacherID,
		Subject:      helpers.NullableString(req.Subject),
		Title:        req.Title,
		Description:  helpers.NullableString(req.Description),
		MaterialType: helpers.NullableString(req.MaterialType),
		FileURL:      helpers.NullableString(req.FileURL),
		FileName:     helpers.NullableString(req.FileName),
		YoutubeLink:  helpers.NullableString(req.YoutubeLink),
	}
	if req.FileSize > 0 {
		material.FileSize = &req.FileSize
	}

	id, err := s.materialRepo.Create(ctx, material)
	if err != nil {
		return nil, err
	}

	return s.materialRepo.GetByID(ctx, id)
}

// ListForClass returns the active materials of one class, optionally
// filtered by subject
func (s *MaterialService) ListForClass(ctx context.Context, classID int64, subject *string) ([]models.StudyMaterial, error) {
	if _, err := s.classRepo.GetByID(ctx, classID); err != nil {
		return nil, err
	}
	return s.materialRepo.GetByClass(ctx, classID, subject)
}

// Update rewrites a material record. Only the uploading teacher may update
// it.
func (s *MaterialService) Update(ctx context.Context, teacherID, materialID int64, req *dto.UpdateMaterialRequest) (*models.StudyMaterial, error) {
	material, err := s.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if material.TeacherID != teacherID {
		return nil, apperrors.ErrPermissionDenied
	}

	material.Subject = helpers.NullableString(req.Subject)
	material.Title = req.Title
	material.Description = helpers.NullableString(req.Description)
	material.MaterialType = helpers.NullableString(req.MaterialType)
	material.FileURL = helpers.NullableString(req.FileURL)
	material.FileName = helpers.NullableString(req.FileName)
	material.YoutubeLink = helpers.NullableString(req.YoutubeLink)
	if req.FileSize > 0 {
		material.FileSize = &req.FileSize
	} else {
		material.FileSize = nil
	}
	if req.IsActive != nil {
		material.IsActive = *req.IsActive
	}

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}

	return s.materialRepo.GetByID(ctx, materialID)
}

// Delete removes a material record. Admins may delete any; teachers only
// their own.
func (s *MaterialService) Delete(ctx context.Context, callerID int64, callerRole models.Role, materialID int64) error {
	material, err := s.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return err
	}
	if callerRole != models.RoleAdmin && material.TeacherID != callerID {
		return apperrors.ErrPermissionDenied
	}

	return s.materialRepo.Delete(ctx, materialID)
}
