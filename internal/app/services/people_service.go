package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/omkar/campuslms/internal/app/models"
)

// TeacherDirectory is the slice of teacher persistence the people service
// needs
type TeacherDirectory interface {
	GetAll(ctx context.Context) ([]models.Teacher, error)
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	DistinctDepartments(ctx context.Context) ([]string, error)
	DistinctFaculties(ctx context.Context) ([]string, error)
	AllSubjectLists(ctx context.Context) ([]string, error)
}

// StudentDirectory is the slice of student persistence the people service
// needs
type StudentDirectory interface {
	GetAll(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	AllSubjectLists(ctx context.Context) ([]string, error)
}

// SubjectSource yields the comma-joined subject strings stored on one table
type SubjectSource interface {
	AllSubjectLists(ctx context.Context) ([]string, error)
}

// PeopleService exposes read operations over teacher and student records
type PeopleService struct {
	teachers    TeacherDirectory
	students    StudentDirectory
	classes     SubjectSource // aggregated class subject sets
	assignments SubjectSource // teacher-class assignment subjects
	logger      zerolog.Logger
}

// NewPeopleService creates a new PeopleService
func NewPeopleService(
	teachers TeacherDirectory,
	students StudentDirectory,
	classes SubjectSource,
	assignments SubjectSource,
	logger zerolog.Logger,
) *PeopleService {
	return &PeopleService{
		teachers:    teachers,
		students:    students,
		classes:     classes,
		assignments: assignments,
		logger:      logger,
	}
}

// ListTeachers returns all teachers
func (s *PeopleService) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	return s.teachers.GetAll(ctx)
}

// ListStudents returns all students
func (s *PeopleService) ListStudents(ctx context.Context) ([]models.Student, error) {
	return s.students.GetAll(ctx)
}

// GetTeacher returns one teacher by id
func (s *PeopleService) GetTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	return s.teachers.GetByID(ctx, id)
}

// GetStudent returns one student by id
func (s *PeopleService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// Departments returns the distinct departments known to the system
func (s *PeopleService) Departments(ctx context.Context) ([]string, error) {
	return s.teachers.DistinctDepartments(ctx)
}

// Faculties returns the distinct faculties known to the system
func (s *PeopleService) Faculties(ctx context.Context) ([]string, error) {
	return s.teachers.DistinctFaculties(ctx)
}

// Subjects returns the sorted union of every subject mentioned anywhere in
// the system: teacher and student records, aggregated class subject sets and
// teacher-class assignments.
func (s *PeopleService) Subjects(ctx context.Context) ([]string, error) {
	sources := []SubjectSource{s.teachers, s.students, s.classes, s.assignments}

	seen := make(map[string]struct{})
	subjects := make([]string, 0)
	for _, source := range sources {
		lists, err := source.AllSubjectLists(ctx)
		if err != nil {
			return nil, err
		}
		for _, list := range lists {
			for _, subject := range splitSubjects(normalizeSubjects(list)) {
				if _, dup := seen[subject]; dup {
					continue
				}
				seen[subject] = struct{}{}
				subjects = append(subjects, subject)
			}
		}
	}

	sort.Strings(subjects)
	return subjects, nil
}
