package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/app/models/dto"
	"github.com/omkar/campuslms/internal/app/repositories"
)

// ClassService exposes class listing, detail and teacher assignment
type ClassService struct {
	classRepo      *repositories.ClassRepository
	teacherRepo    *repositories.TeacherRepository
	enrollmentRepo *repositories.EnrollmentRepository
	logger         zerolog.Logger
}

// NewClassService creates a new ClassService
func NewClassService(
	classRepo *repositories.ClassRepository,
	teacherRepo *repositories.TeacherRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	logger zerolog.Logger,
) *ClassService {
	return &ClassService{
		classRepo:      classRepo,
		teacherRepo:    teacherRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// ListClasses returns all active classes
func (s *ClassService) ListClasses(ctx context.Context) ([]models.ClassGroup, error) {
	return s.classRepo.GetAll(ctx)
}

// GetClassDetail returns one class with its roster
func (s *ClassService) GetClassDetail(ctx context.Context, id int64) (*dto.ClassDetailResponse, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roster, err := s.classRepo.GetRoster(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ClassDetailResponse{
		Class:    *class,
		Students: roster,
	}, nil
}

// AssignTeacher links a teacher to a class for a subject set. Assigning the
// same combination twice is a no-op.
func (s *ClassService) AssignTeacher(ctx context.Context, classID, teacherID int64, subjects *string, isPrimary bool) error {
	if _, err := s.classRepo.GetByID(ctx, classID); err != nil {
		return err
	}
	if _, err := s.teacherRepo.GetByID(ctx, teacherID); err != nil {
		return err
	}

	assigned, err := s.enrollmentRepo.AssignTeacher(ctx, classID, teacherID, subjects, isPrimary)
	if err != nil {
		return err
	}
	if !assigned {
		s.logger.Debug().
			Int64("classId", classID).
			Int64("teacherId", teacherID).
			Msg("Teacher already assigned to class")
	}

	return nil
}
