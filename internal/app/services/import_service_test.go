package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/app/models/dto"
	"github.com/omkar/campuslms/internal/pkg/apperrors"
	"github.com/omkar/campuslms/internal/pkg/email"
)

// --- In-memory fakes ---

type fakeTeacherStore struct {
	teachers []*models.Teacher
	nextID   int64

	// When set, the next Insert call stores the record anyway (simulating a
	// concurrent batch winning the race) and returns a unique violation.
	raceNextInsert bool
}

func (f *fakeTeacherStore) FindByCodeOrEmail(ctx context.Context, code, mail string) (*models.Teacher, error) {
	for _, t := range f.teachers {
		if t.TeacherCode == code || t.Email == mail {
			return t, nil
		}
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (f *fakeTeacherStore) Insert(ctx context.Context, t *models.Teacher) (int64, error) {
	f.nextID++
	t.ID = f.nextID
	f.teachers = append(f.teachers, t)
	if f.raceNextInsert {
		f.raceNextInsert = false
		return 0, &pgconn.PgError{Code: "23505"}
	}
	return t.ID, nil
}

func (f *fakeTeacherStore) UpdateCoalesce(ctx context.Context, id int64, name, mail, mobile, faculty, department, subjects *string) error {
	for _, t := range f.teachers {
		if t.ID == id {
			applyString(&t.Name, name)
			applyString(&t.Email, mail)
			applyPtr(&t.Mobile, mobile)
			applyPtr(&t.Faculty, faculty)
			applyPtr(&t.Department, department)
			applyPtr(&t.Subjects, subjects)
			return nil
		}
	}
	return apperrors.ErrTeacherNotFound
}

type fakeStudentStore struct {
	students []*models.Student
	nextID   int64
}

func (f *fakeStudentStore) FindByClassTuple(ctx context.Context, rollNo string, key models.ClassKey) (*models.Student, error) {
	for _, s := range f.students {
		if s.RollNo == rollNo && s.ClassTuple() == key {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) Insert(ctx context.Context, s *models.Student) (int64, error) {
	f.nextID++
	s.ID = f.nextID
	f.students = append(f.students, s)
	return s.ID, nil
}

func (f *fakeStudentStore) UpdateCoalesce(ctx context.Context, id int64, name, mail, mobile, faculty, subjects *string) error {
	for _, s := range f.students {
		if s.ID == id {
			applyString(&s.Name, name)
			applyString(&s.Email, mail)
			applyPtr(&s.Mobile, mobile)
			applyPtr(&s.Faculty, faculty)
			applyPtr(&s.Subjects, subjects)
			return nil
		}
	}
	return apperrors.ErrStudentNotFound
}

type fakeClassStore struct {
	classes        []*models.ClassGroup
	nextID         int64
	subjectUpdates int
}

func (f *fakeClassStore) FindByCodeOrKey(ctx context.Context, code string, key models.ClassKey) (*models.ClassGroup, error) {
	for _, c := range f.classes {
		if c.ClassCode == code || classKeyOf(c) == key {
			return c, nil
		}
	}
	return nil, apperrors.ErrClassNotFound
}

func (f *fakeClassStore) Insert(ctx context.Context, c *models.ClassGroup) (int64, error) {
	f.nextID++
	c.ID = f.nextID
	c.IsActive = true
	f.classes = append(f.classes, c)
	return c.ID, nil
}

func (f *fakeClassStore) UpdateSubjects(ctx context.Context, id int64, subjects string) error {
	for _, c := range f.classes {
		if c.ID == id {
			c.Subjects = &subjects
			f.subjectUpdates++
			return nil
		}
	}
	return apperrors.ErrClassNotFound
}

type membershipKey struct {
	classID   int64
	studentID int64
}

type factKey struct {
	studentID int64
	classID   int64
	subject   string
}

type fakeEnrollmentStore struct {
	memberships map[membershipKey]*string
	facts       map[factKey]struct{}
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		memberships: make(map[membershipKey]*string),
		facts:       make(map[factKey]struct{}),
	}
}

func (f *fakeEnrollmentStore) HasMembership(ctx context.Context, classID, studentID int64) (bool, error) {
	_, ok := f.memberships[membershipKey{classID, studentID}]
	return ok, nil
}

func (f *fakeEnrollmentStore) InsertMembership(ctx context.Context, classID, studentID int64, studentCode string, enrolledSubjects *string) (bool, error) {
	key := membershipKey{classID, studentID}
	if _, ok := f.memberships[key]; ok {
		return false, nil
	}
	f.memberships[key] = enrolledSubjects
	return true, nil
}

func (f *fakeEnrollmentStore) EnsureSubjectFact(ctx context.Context, studentID, classID int64, subject string) (bool, error) {
	key := factKey{studentID, classID, subject}
	if _, ok := f.facts[key]; ok {
		return false, nil
	}
	f.facts[key] = struct{}{}
	return true, nil
}

type fakeMailer struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeMailer) deliver(to string) error {
	if f.failFor[to] {
		return errors.New("smtp: connection refused")
	}
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeMailer) SendTeacherWelcome(data email.TeacherWelcome) error {
	return f.deliver(data.Email)
}

func (f *fakeMailer) SendStudentWelcome(data email.StudentWelcome) error {
	return f.deliver(data.Email)
}

func (f *fakeMailer) SendPasswordReset(toEmail, toName, token string) error {
	return f.deliver(toEmail)
}

func applyString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func applyPtr(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}

func classKeyOf(c *models.ClassGroup) models.ClassKey {
	get := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	return models.ClassKey{
		Department:   get(c.Department),
		Stream:       get(c.Stream),
		Division:     get(c.Division),
		Semester:     get(c.Semester),
		AcademicYear: get(c.AcademicYear),
	}
}

type importFixture struct {
	teachers    *fakeTeacherStore
	students    *fakeStudentStore
	classes     *fakeClassStore
	enrollments *fakeEnrollmentStore
	mailer      *fakeMailer
	service     *ImportService
}

func newImportFixture() *importFixture {
	f := &importFixture{
		teachers:    &fakeTeacherStore{},
		students:    &fakeStudentStore{},
		classes:     &fakeClassStore{},
		enrollments: newFakeEnrollmentStore(),
		mailer:      &fakeMailer{failFor: map[string]bool{}},
	}
	f.service = NewImportService(f.teachers, f.students, f.classes, f.enrollments, f.mailer, "2025-26", zerolog.Nop())
	return f
}

func teacherRow(code, name, mail string, extra map[string]string) dto.RawRow {
	row := dto.RawRow{"teacher_code": code, "name": name, "email": mail}
	for k, v := range extra {
		row[k] = v
	}
	return row
}

func studentRow(roll, name, mail string, extra map[string]string) dto.RawRow {
	row := dto.RawRow{"roll_no": roll, "name": name, "email": mail}
	for k, v := range extra {
		row[k] = v
	}
	return row
}

// --- Tests ---

func TestImportBatch_RejectsNonImportableRole(t *testing.T) {
	f := newImportFixture()

	_, err := f.service.ImportBatch(context.Background(), []dto.RawRow{}, models.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestImportBatch_TeacherInsertThenReimportUpdates(t *testing.T) {
	f := newImportFixture()
	rows := []dto.RawRow{
		teacherRow("T-001", "Asha Kulkarni", "asha@college.edu", map[string]string{"mobile": "9822011223", "subjects": "Java, Python"}),
		teacherRow("T-002", "Vikram Joshi", "vikram@college.edu", nil),
	}

	result, err := f.service.ImportBatch(context.Background(), rows, models.RoleTeacher)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.Stats.TotalRows)
	assert.Equal(t, 2, result.Stats.Inserted)
	assert.Equal(t, 0, result.Stats.Updated)
	assert.Equal(t, 2, result.Stats.EmailsSent)

	// Same batch again: everything matches by code, nothing is inserted and
	// no welcome email goes out.
	result, err = f.service.ImportBatch(context.Background(), rows, models.RoleTeacher)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 0, result.Stats.Inserted)
	assert.Equal(t, 2, result.Stats.Updated)
	assert.Equal(t, 0, result.Stats.EmailsSent)
	assert.Len(t, f.teachers.teachers, 2)
	assert.Len(t, f.mailer.sent, 2)
}

func TestImportBatch_TeacherMatchesByEmailWhenCodeChanges(t *testing.T) {
	f := newImportFixture()

	first := []dto.RawRow{teacherRow("T-001", "Asha Kulkarni", "asha@college.edu", nil)}
	_, err := f.service.ImportBatch(context.Background(), first, models.RoleTeacher)
	require.NoError(t, err)

	second := []dto.RawRow{teacherRow("T-999", "Asha Kulkarni", "asha@college.edu", nil)}
	result, err := f.service.ImportBatch(context.Background(), second, models.RoleTeacher)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.Inserted)
	assert.Equal(t, 1, result.Stats.Updated)
	assert.Len(t, f.teachers.teachers, 1)
}

func TestImportBatch_RowFailureDoesNotAbortBatch(t *testing.T) {
	f := newImportFixture()
	rows := []dto.RawRow{
		teacherRow("T-001", "Asha Kulkarni", "asha@college.edu", nil),
		{"teacher_code": "T-002", "name": "No Email"},
		teacherRow("T-003", "Vikram Joshi", "vikram@college.edu", nil),
	}

	result, err := f.service.ImportBatch(context.Background(), rows, models.RoleTeacher)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.TotalRows)
	assert.Equal(t, 2, result.Stats.Inserted)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Row 2:")
	assert.Contains(t, result.Errors[0], "email")
}

func TestImportBatch_EmptyRowsAreSkippedSilently(t *testing.T) {
	f := newImportFixture()
	rows := []dto.RawRow{
		{},
		teacherRow("T-001", "Asha Kulkarni", "asha@college.edu", nil),
		{"name": "   ", "email": ""},
	}

	result, err := f.service.ImportBatch(context.Background(), rows, models.RoleTeacher)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.TotalRows)
	assert.Equal(t, 1, result.Stats.Inserted)
	assert.Empty(t, result.Errors)
}

func TestImportBatch_EmailFailureIsWarningNotRowFailure(t *testing.T) {
	f := newImportFixture()
	f.mailer.failFor["asha@college.edu"] = true
	rows := []dto.RawRow{teacherRow("T-001", "Asha Kulkarni", "asha@college.edu", nil)}

	result, err := f.service.ImportBatch(context.Background(), rows, models.RoleTeacher)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.Inserted)
	assert.Equal(t, 0, result.Stats.EmailsSent)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Row 1: asha@college.edu added but email failed", result.Errors[0])
	assert.Len(t, f.teachers.teachers, 1)
}

func TestImportBatch_InsertRaceFallsBackToUpdate(t *testing.T) {
	f := newImportFixture()
	f.teachers.raceNextInsert = true
	rows := []dto.RawRow{teacherRow("T-001", "Asha Kulkarni", "asha@college.edu", nil)}

	result, err := f.service.ImportBatch(context.Background(), rows, models.RoleTeacher)
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	assert.Equal(t, 0, result.Stats.Inserted)
	assert.Equal(t, 1, result.Stats.Updated)
	assert.Len(t, f.teachers.teachers, 1)
}

func TestImportBatch_UpdatePreservesAbsentFields(t *testing.T) {
	f := newImportFixture()

	first := []dto.RawRow{teacherRow("T-001", "Asha Kulkarni", "asha@college.edu", map[string]string{"mobile": "9822011223"})}
	_, err := f.service.ImportBatch(context.Background(), first, models.RoleTeacher)
	require.NoError(t, err)

	// Re-import without the mobile column: the stored value must survive.
	second := []dto.RawRow{teacherRow("T-001", "Asha K", "asha@college.edu", nil)}
	_, err = f.service.ImportBatch(context.Background(), second, models.RoleTeacher)
	require.NoError(t, err)

	teacher := f.teachers.teachers[0]
	require.NotNil(t, teacher.Mobile)
	assert.Equal(t, "9822011223", *teacher.Mobile)
	assert.Equal(t, "Asha K", teacher.Name)
}

func TestImportBatch_StudentsDeriveClassAndEnrollments(t *testing.T) {
	f := newImportFixture()
	classAttrs := map[string]string{
		"department": "Computer Science", "stream": "Science", "division": "A",
		"semester": "3", "academic_year": "2025-26",
	}
	rows := []dto.RawRow{
		studentRow("1", "Rahul Deshmukh", "rahul@college.edu", merge(classAttrs, map[string]string{"subjects": "Java,Python"})),
		studentRow("2", "Sneha Patil", "sneha@college.edu", merge(classAttrs, map[string]string{"subjects": "Java,DBMS"})),
	}

	result, err := f.service.ImportBatch(context.Background(), rows, models.RoleStudent)
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.Stats.Inserted)
	assert.Equal(t, 1, result.Stats.ClassesCreated)
	assert.Equal(t, 0, result.Stats.ClassesUpdated)
	assert.Equal(t, 4, result.Stats.EnrollmentsCreated)

	require.Len(t, f.classes.classes, 1)
	class := f.classes.classes[0]
	require.NotNil(t, class.Subjects)
	assert.Equal(t, "Java,Python,DBMS", *class.Subjects)
	assert.Len(t, f.enrollments.memberships, 2)

	// Student codes are derived, fixed at insert.
	assert.Equal(t, "COM-SCI-A-3-25-001", f.students.students[0].StudentCode)
}

func TestImportBatch_ClassSubjectsOnlyGrow(t *testing.T) {
	f := newImportFixture()
	classAttrs := map[string]string{
		"department": "Commerce", "division": "B", "semester": "1", "academic_year": "2025-26",
	}

	first := []dto.RawRow{studentRow("1", "Amit Shah", "amit@college.edu", merge(classAttrs, map[string]string{"subjects": "Accounts,Economics"}))}
	_, err := f.service.ImportBatch(context.Background(), first, models.RoleStudent)
	require.NoError(t, err)

	// A new subject joins the set.
	second := []dto.RawRow{studentRow("2", "Neha Kulkarni", "neha@college.edu", merge(classAttrs, map[string]string{"subjects": "Statistics"}))}
	result, err := f.service.ImportBatch(context.Background(), second, models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.ClassesUpdated)
	assert.Equal(t, "Accounts,Economics,Statistics", *f.classes.classes[0].Subjects)

	// A strict subset changes nothing.
	third := []dto.RawRow{studentRow("3", "Pooja More", "pooja@college.edu", merge(classAttrs, map[string]string{"subjects": "Accounts"}))}
	result, err = f.service.ImportBatch(context.Background(), third, models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.ClassesUpdated)
	assert.Equal(t, "Accounts,Economics,Statistics", *f.classes.classes[0].Subjects)
}

func TestImportBatch_StudentWithoutSubjectsInheritsClassSet(t *testing.T) {
	f := newImportFixture()
	classAttrs := map[string]string{
		"department": "Science", "division": "A", "semester": "2", "academic_year": "2025-26",
	}
	rows := []dto.RawRow{
		studentRow("1", "Rahul Deshmukh", "rahul@college.edu", merge(classAttrs, map[string]string{"subjects": "Physics,Chemistry"})),
		studentRow("2", "Sneha Patil", "sneha@college.edu", classAttrs),
	}

	result, err := f.service.ImportBatch(context.Background(), rows, models.RoleStudent)
	require.NoError(t, err)

	// The subject-less student gets the full class set: two facts each.
	assert.Equal(t, 4, result.Stats.EnrollmentsCreated)
	assert.Len(t, f.enrollments.facts, 4)
}

func TestImportBatch_ReimportCreatesNoDuplicateEnrollments(t *testing.T) {
	f := newImportFixture()
	classAttrs := map[string]string{
		"department": "Arts", "division": "A", "semester": "1", "academic_year": "2025-26",
	}
	rows := []dto.RawRow{
		studentRow("1", "Kiran Pawar", "kiran@college.edu", merge(classAttrs, map[string]string{"subjects": "History"})),
	}

	_, err := f.service.ImportBatch(context.Background(), rows, models.RoleStudent)
	require.NoError(t, err)

	result, err := f.service.ImportBatch(context.Background(), rows, models.RoleStudent)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.Inserted)
	assert.Equal(t, 1, result.Stats.Updated)
	assert.Equal(t, 0, result.Stats.ClassesCreated)
	assert.Equal(t, 0, result.Stats.EnrollmentsCreated)
	assert.Len(t, f.students.students, 1)
	assert.Len(t, f.enrollments.memberships, 1)
	assert.Len(t, f.enrollments.facts, 1)
}

func TestImportBatch_SameEmailDifferentClassesAreSeparateRecords(t *testing.T) {
	f := newImportFixture()
	rows := []dto.RawRow{
		studentRow("1", "Rahul Deshmukh", "rahul@college.edu", map[string]string{
			"department": "Science", "division": "A", "semester": "1", "academic_year": "2025-26",
		}),
		studentRow("1", "Rahul Deshmukh", "rahul@college.edu", map[string]string{
			"department": "Science", "division": "A", "semester": "3", "academic_year": "2025-26",
		}),
	}

	result, err := f.service.ImportBatch(context.Background(), rows, models.RoleStudent)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.Inserted)
	assert.Equal(t, 2, result.Stats.ClassesCreated)
	assert.Len(t, f.students.students, 2)
}

func merge(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
