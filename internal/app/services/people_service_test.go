package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/pkg/apperrors"
)

type fakeTeacherDirectory struct {
	teachers     []models.Teacher
	departments  []string
	faculties    []string
	subjectLists []string
}

func (f *fakeTeacherDirectory) GetAll(ctx context.Context) ([]models.Teacher, error) {
	return f.teachers, nil
}

func (f *fakeTeacherDirectory) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	for i := range f.teachers {
		if f.teachers[i].ID == id {
			return &f.teachers[i], nil
		}
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (f *fakeTeacherDirectory) DistinctDepartments(ctx context.Context) ([]string, error) {
	return f.departments, nil
}

func (f *fakeTeacherDirectory) DistinctFaculties(ctx context.Context) ([]string, error) {
	return f.faculties, nil
}

func (f *fakeTeacherDirectory) AllSubjectLists(ctx context.Context) ([]string, error) {
	return f.subjectLists, nil
}

type fakeStudentDirectory struct {
	students     []models.Student
	subjectLists []string
}

func (f *fakeStudentDirectory) GetAll(ctx context.Context) ([]models.Student, error) {
	return f.students, nil
}

func (f *fakeStudentDirectory) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	for i := range f.students {
		if f.students[i].ID == id {
			return &f.students[i], nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentDirectory) AllSubjectLists(ctx context.Context) ([]string, error) {
	return f.subjectLists, nil
}

type fakeSubjectSource struct {
	subjectLists []string
}

func (f *fakeSubjectSource) AllSubjectLists(ctx context.Context) ([]string, error) {
	return f.subjectLists, nil
}

func TestSubjects_UnionsAllFourSources(t *testing.T) {
	service := NewPeopleService(
		&fakeTeacherDirectory{subjectLists: []string{"Java,Python"}},
		&fakeStudentDirectory{subjectLists: []string{"Java,DBMS"}},
		&fakeSubjectSource{subjectLists: []string{"Statistics"}},
		&fakeSubjectSource{subjectLists: []string{"Economics,Java"}},
		zerolog.Nop(),
	)

	subjects, err := service.Subjects(context.Background())
	require.NoError(t, err)

	// Subjects held only by a class row or a teacher-class assignment must
	// appear alongside the person-record ones, deduplicated and sorted.
	assert.Equal(t, []string{"DBMS", "Economics", "Java", "Python", "Statistics"}, subjects)
}

func TestSubjects_ClassOnlySubjectSurvives(t *testing.T) {
	service := NewPeopleService(
		&fakeTeacherDirectory{},
		&fakeStudentDirectory{},
		&fakeSubjectSource{subjectLists: []string{" Accounts , Accounts"}},
		&fakeSubjectSource{},
		zerolog.Nop(),
	)

	subjects, err := service.Subjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Accounts"}, subjects)
}

func TestSubjects_EmptySourcesYieldEmptyList(t *testing.T) {
	service := NewPeopleService(
		&fakeTeacherDirectory{},
		&fakeStudentDirectory{},
		&fakeSubjectSource{},
		&fakeSubjectSource{},
		zerolog.Nop(),
	)

	subjects, err := service.Subjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subjects)
}

func TestDepartmentsAndFaculties_Passthrough(t *testing.T) {
	service := NewPeopleService(
		&fakeTeacherDirectory{departments: []string{"Commerce", "Science"}, faculties: []string{"Science"}},
		&fakeStudentDirectory{},
		&fakeSubjectSource{},
		&fakeSubjectSource{},
		zerolog.Nop(),
	)

	departments, err := service.Departments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Commerce", "Science"}, departments)

	faculties, err := service.Faculties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Science"}, faculties)
}
