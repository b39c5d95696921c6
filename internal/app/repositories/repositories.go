package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AdminRepository              *AdminRepository
	TeacherRepository            *TeacherRepository
	StudentRepository            *StudentRepository
	ClassRepository              *ClassRepository
	EnrollmentRepository         *EnrollmentRepository
	AnnouncementRepository       *AnnouncementRepository
	MaterialRepository           *MaterialRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AdminRepository:              NewAdminRepository(db),
		TeacherRepository:            NewTeacherRepository(db),
		StudentRepository:            NewStudentRepository(db),
		ClassRepository:              NewClassRepository(db),
		EnrollmentRepository:         NewEnrollmentRepository(db),
		AnnouncementRepository:       NewAnnouncementRepository(db),
		MaterialRepository:           NewMaterialRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
	}
}
