package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/app/models/dto"
	"github.com/omkar/campuslms/internal/pkg/apperrors"
	"github.com/omkar/campuslms/internal/pkg/codes"
	"github.com/omkar/campuslms/internal/pkg/dberrors"
	"github.com/omkar/campuslms/internal/pkg/email"
	"github.com/omkar/campuslms/internal/pkg/helpers"
)

// TeacherStore is the slice of teacher persistence the import pipeline needs
type TeacherStore interface {
	FindByCodeOrEmail(ctx context.Context, code, email string) (*models.Teacher, error)
	Insert(ctx context.Context, t *models.Teacher) (int64, error)
	UpdateCoalesce(ctx context.Context, id int64, name, email, mobile, faculty, department, subjects *string) error
}

// StudentStore is the slice of student persistence the import pipeline needs
type StudentStore interface {
	FindByClassTuple(ctx context.Context, rollNo string, key models.ClassKey) (*models.Student, error)
	Insert(ctx context.Context, s *models.Student) (int64, error)
	UpdateCoalesce(ctx context.Context, id int64, name, email, mobile, faculty, subjects *string) error
}

// ClassStore is the slice of class persistence the import pipeline needs
type ClassStore interface {
	FindByCodeOrKey(ctx context.Context, code string, key models.ClassKey) (*models.ClassGroup, error)
	Insert(ctx context.Context, c *models.ClassGroup) (int64, error)
	UpdateSubjects(ctx context.Context, id int64, subjects string) error
}

// EnrollmentStore is the slice of enrollment persistence the import pipeline
// needs
type EnrollmentStore interface {
	HasMembership(ctx context.Context, classID, studentID int64) (bool, error)
	InsertMembership(ctx context.Context, classID, studentID int64, studentCode string, enrolledSubjects *string) (bool, error)
	EnsureSubjectFact(ctx context.Context, studentID, classID int64, subject string) (bool, error)
}

// ImportService drives a CSV batch through validation, person upsert, class
// registration and enrollment reconciliation
type ImportService struct {
	teachers            TeacherStore
	students            StudentStore
	classes             ClassStore
	enrollments         EnrollmentStore
	mailer              email.Service
	defaultAcademicYear string
	logger              zerolog.Logger
}

// NewImportService creates a new ImportService
func NewImportService(
	teachers TeacherStore,
	students StudentStore,
	classes ClassStore,
	enrollments EnrollmentStore,
	mailer email.Service,
	defaultAcademicYear string,
	logger zerolog.Logger,
) *ImportService {
	return &ImportService{
		teachers:            teachers,
		students:            students,
		classes:             classes,
		enrollments:         enrollments,
		mailer:              mailer,
		defaultAcademicYear: defaultAcademicYear,
		logger:              logger,
	}
}

// classAccumulator collects everything the batch learned about one class key
// before any class or enrollment row is written
type classAccumulator struct {
	key      models.ClassKey
	faculty  *string
	subjects string // normalized union across the batch
	members  []classMember
}

type classMember struct {
	studentID   int64
	studentCode string
	subjects    *string // the member's own subject list, nil if the row had none
}

type upsertOutcome struct {
	personID    int64
	personName  string
	personEmail string
	studentCode string // students only
	wasInserted bool
}

// ImportBatch processes one batch of raw rows for the given role. Rows are
// handled strictly sequentially; a single row's failure never aborts the
// batch. Students go through a second pass over the accumulated class map so
// subject unions reflect the whole batch before any class row is written.
func (s *ImportService) ImportBatch(ctx context.Context, rows []dto.RawRow, role models.Role) (*dto.BatchResult, error) {
	if !role.ImportRole() {
		return nil, apperrors.ErrInvalidRole
	}

	result := &dto.BatchResult{Success: true, Errors: []string{}}

	accumulators := make(map[models.ClassKey]*classAccumulator)
	keyOrder := make([]models.ClassKey, 0)

	for i, raw := range rows {
		if raw.IsEmpty() {
			continue
		}
		rowNum := i + 1
		result.Stats.TotalRows++

		row, err := validateRow(raw, role, s.defaultAcademicYear)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, err.Error()))
			continue
		}

		var outcome *upsertOutcome
		switch role {
		case models.RoleTeacher:
			outcome, err = s.upsertTeacher(ctx, row)
		case models.RoleStudent:
			outcome, err = s.upsertStudent(ctx, row)
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, err.Error()))
			continue
		}

		if outcome.wasInserted {
			result.Stats.Inserted++
			if s.sendWelcome(role, row, outcome) {
				result.Stats.EmailsSent++
			} else {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Row %d: %s added but email failed", rowNum, outcome.personEmail))
			}
		} else {
			result.Stats.Updated++
		}

		if role == models.RoleStudent {
			key := row.ClassKey()
			acc, exists := accumulators[key]
			if !exists {
				acc = &classAccumulator{key: key, faculty: row.Faculty}
				accumulators[key] = acc
				keyOrder = append(keyOrder, key)
			}
			if acc.faculty == nil {
				acc.faculty = row.Faculty
			}
			acc.subjects = unionSubjects(acc.subjects, helpers.StringOrEmpty(row.Subjects))
			acc.members = append(acc.members, classMember{
				studentID:   outcome.personID,
				studentCode: outcome.studentCode,
				subjects:    row.Subjects,
			})
		}
	}

	// Second pass: classes and enrollments, per accumulated class key. One
	// key's failure skips its remaining work only.
	for _, key := range keyOrder {
		acc := accumulators[key]
		created, updated, facts, err := s.reconcileClass(ctx, acc)
		result.Stats.EnrollmentsCreated += facts
		if created {
			result.Stats.ClassesCreated++
		}
		if updated {
			result.Stats.ClassesUpdated++
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Class %s: %s", classLabel(key), err.Error()))
		}
	}

	s.logger.Info().
		Str("role", string(role)).
		Int("totalRows", result.Stats.TotalRows).
		Int("inserted", result.Stats.Inserted).
		Int("updated", result.Stats.Updated).
		Int("errors", len(result.Errors)).
		Msg("Import batch processed")

	return result, nil
}

// upsertTeacher finds a teacher by code or email and updates it, or inserts a
// new record. A unique violation on insert means a concurrent batch got there
// first; the row is retried once as an update.
func (s *ImportService) upsertTeacher(ctx context.Context, row *ValidRow) (*upsertOutcome, error) {
	existing, err := s.teachers.FindByCodeOrEmail(ctx, row.TeacherCode, row.Email)
	if err != nil && !errors.Is(err, apperrors.ErrTeacherNotFound) {
		return nil, err
	}

	if existing == nil {
		teacher := &models.Teacher{
			TeacherCode: row.TeacherCode,
			Name:        row.Name,
			Email:       row.Email,
			Mobile:      row.Mobile,
			Faculty:     row.Faculty,
			Department:  row.Department,
			Subjects:    row.Subjects,
		}

		id, insertErr := s.teachers.Insert(ctx, teacher)
		if insertErr == nil {
			return &upsertOutcome{personID: id, personName: row.Name, personEmail: row.Email, wasInserted: true}, nil
		}
		if !dberrors.IsUniqueViolation(insertErr) {
			return nil, insertErr
		}

		existing, err = s.teachers.FindByCodeOrEmail(ctx, row.TeacherCode, row.Email)
		if err != nil {
			return nil, fmt.Errorf("insert raced but no matching teacher found: %w", err)
		}
	}

	err = s.teachers.UpdateCoalesce(ctx, existing.ID,
		&row.Name, &row.Email, row.Mobile, row.Faculty, row.Department, row.Subjects)
	if err != nil {
		return nil, err
	}

	return &upsertOutcome{personID: existing.ID, personName: row.Name, personEmail: row.Email, wasInserted: false}, nil
}

// upsertStudent matches a student within one exact class offering and updates
// it, or inserts a new record with a freshly derived code. The identity code
// is fixed at insert and never regenerated on update.
func (s *ImportService) upsertStudent(ctx context.Context, row *ValidRow) (*upsertOutcome, error) {
	key := row.ClassKey()

	existing, err := s.students.FindByClassTuple(ctx, row.RollNo, key)
	if err != nil && !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, err
	}

	if existing == nil {
		code := codes.StudentCode(codes.StudentAttrs{
			RollNo:       row.RollNo,
			Department:   key.Department,
			Stream:       key.Stream,
			Division:     key.Division,
			Semester:     key.Semester,
			AcademicYear: key.AcademicYear,
		})

		student := &models.Student{
			StudentCode:  code,
			RollNo:       row.RollNo,
			Name:         row.Name,
			Email:        row.Email,
			Mobile:       row.Mobile,
			Faculty:      row.Faculty,
			Department:   row.Department,
			Stream:       row.Stream,
			Division:     row.Division,
			Semester:     row.Semester,
			AcademicYear: row.AcademicYear,
			Subjects:     row.Subjects,
		}

		id, insertErr := s.students.Insert(ctx, student)
		if insertErr == nil {
			return &upsertOutcome{personID: id, personName: row.Name, personEmail: row.Email, studentCode: code, wasInserted: true}, nil
		}
		if !dberrors.IsUniqueViolation(insertErr) {
			return nil, insertErr
		}

		existing, err = s.students.FindByClassTuple(ctx, row.RollNo, key)
		if err != nil {
			return nil, fmt.Errorf("insert raced but no matching student found: %w", err)
		}
	}

	err = s.students.UpdateCoalesce(ctx, existing.ID,
		&row.Name, &row.Email, row.Mobile, row.Faculty, row.Subjects)
	if err != nil {
		return nil, err
	}

	return &upsertOutcome{personID: existing.ID, personName: row.Name, personEmail: row.Email, studentCode: existing.StudentCode, wasInserted: false}, nil
}

// reconcileClass registers the class for one accumulated key and brings its
// memberships and subject facts up to date
func (s *ImportService) reconcileClass(ctx context.Context, acc *classAccumulator) (created, updated bool, facts int, err error) {
	classCode := codes.ClassCode(codes.ClassAttrs{
		Department:   acc.key.Department,
		Stream:       acc.key.Stream,
		Division:     acc.key.Division,
		Semester:     acc.key.Semester,
		AcademicYear: acc.key.AcademicYear,
	})

	class, err := s.classes.FindByCodeOrKey(ctx, classCode, acc.key)
	if err != nil && !errors.Is(err, apperrors.ErrClassNotFound) {
		return false, false, 0, err
	}

	var classID int64
	var classSubjects string

	if class == nil {
		newClass := &models.ClassGroup{
			ClassCode:    classCode,
			ClassName:    classLabel(acc.key),
			Department:   helpers.NullableString(acc.key.Department),
			Stream:       helpers.NullableString(acc.key.Stream),
			Division:     helpers.NullableString(acc.key.Division),
			Semester:     helpers.NullableString(acc.key.Semester),
			AcademicYear: helpers.NullableString(acc.key.AcademicYear),
			Faculty:      acc.faculty,
			Subjects:     helpers.NullableString(acc.subjects),
		}

		classID, err = s.classes.Insert(ctx, newClass)
		if err != nil {
			return false, false, 0, err
		}
		created = true
		classSubjects = acc.subjects
	} else {
		classID = class.ID
		classSubjects = helpers.StringOrEmpty(class.Subjects)

		merged := unionSubjects(classSubjects, acc.subjects)
		if merged != classSubjects {
			if err := s.classes.UpdateSubjects(ctx, classID, merged); err != nil {
				return false, false, 0, err
			}
			updated = true
		}
		classSubjects = merged
	}

	for _, member := range acc.members {
		// A member with no subjects of its own enrolls into the full class set
		effective := helpers.StringOrEmpty(member.subjects)
		if effective == "" {
			effective = classSubjects
		}

		exists, err := s.enrollments.HasMembership(ctx, classID, member.studentID)
		if err != nil {
			return created, updated, facts, err
		}
		if !exists {
			_, err := s.enrollments.InsertMembership(ctx, classID, member.studentID, member.studentCode, helpers.NullableString(effective))
			if err != nil {
				return created, updated, facts, err
			}
		}

		for _, subject := range splitSubjects(effective) {
			inserted, err := s.enrollments.EnsureSubjectFact(ctx, member.studentID, classID, subject)
			if err != nil {
				return created, updated, facts, err
			}
			if inserted {
				facts++
			}
		}
	}

	return created, updated, facts, nil
}

// sendWelcome delivers the role-specific welcome email for a freshly inserted
// person. Failures are reported as warnings by the caller, never as row
// failures.
func (s *ImportService) sendWelcome(role models.Role, row *ValidRow, outcome *upsertOutcome) bool {
	var err error
	switch role {
	case models.RoleTeacher:
		err = s.mailer.SendTeacherWelcome(email.TeacherWelcome{
			Email:       outcome.personEmail,
			Name:        outcome.personName,
			TeacherCode: row.TeacherCode,
		})
	case models.RoleStudent:
		err = s.mailer.SendStudentWelcome(email.StudentWelcome{
			Email:       outcome.personEmail,
			Name:        outcome.personName,
			StudentCode: outcome.studentCode,
			ClassName:   classLabel(row.ClassKey()),
		})
	}

	if err != nil {
		s.logger.Warn().Err(err).Str("email", outcome.personEmail).Msg("Welcome email failed")
		return false
	}

	return true
}

// classLabel builds a human-readable class name from the key attributes
func classLabel(key models.ClassKey) string {
	parts := make([]string, 0, 5)
	if key.Department != "" {
		parts = append(parts, key.Department)
	}
	if key.Stream != "" && !strings.EqualFold(key.Stream, key.Department) {
		parts = append(parts, key.Stream)
	}
	if key.Division != "" {
		parts = append(parts, "Div "+key.Division)
	}
	if key.Semester != "" {
		parts = append(parts, "Sem "+key.Semester)
	}
	if key.AcademicYear != "" {
		parts = append(parts, "("+key.AcademicYear+")")
	}
	if len(parts) == 0 {
		return "General"
	}
	return strings.Join(parts, " ")
}
