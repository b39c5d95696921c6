package services

import (
	"fmt"
	"strings"

	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/app/models/dto"
	"github.com/omkar/campuslms/internal/pkg/helpers"
)

// ValidRow is one import row after trimming and normalization. Nil pointer
// fields mean "absent", which downstream updates must preserve rather than
// overwrite.
type ValidRow struct {
	Name         string
	Email        string
	Mobile       *string
	Faculty      *string
	Department   *string
	Stream       *string
	Division     *string
	Semester     *string
	AcademicYear *string
	RollNo       string  // students only
	TeacherCode  string  // teachers only
	Subjects     *string // comma-joined, normalized
}

// ClassKey returns the class-grouping tuple for a student row
func (v *ValidRow) ClassKey() models.ClassKey {
	return models.ClassKey{
		Department:   helpers.StringOrEmpty(v.Department),
		Stream:       helpers.StringOrEmpty(v.Stream),
		Division:     helpers.StringOrEmpty(v.Division),
		Semester:     helpers.StringOrEmpty(v.Semester),
		AcademicYear: helpers.StringOrEmpty(v.AcademicYear),
	}
}

// roleProfile captures the per-role behavior of the import pipeline, so role
// differences live in one closed table instead of scattered conditionals.
type roleProfile struct {
	requiredFields []string
}

var importProfiles = map[models.Role]roleProfile{
	models.RoleTeacher: {requiredFields: []string{"teacher_code", "name", "email"}},
	models.RoleStudent: {requiredFields: []string{"roll_no", "name", "email"}},
}

// validateRow normalizes one raw row for the given role. A failure is a
// row-level problem, never a batch failure.
func validateRow(raw dto.RawRow, role models.Role, defaultAcademicYear string) (*ValidRow, error) {
	profile, ok := importProfiles[role]
	if !ok {
		return nil, fmt.Errorf("role %s cannot be imported", role)
	}

	for _, field := range profile.requiredFields {
		if raw.Get(field) == "" {
			return nil, fmt.Errorf("missing required field %q", field)
		}
	}

	row := &ValidRow{
		Name:        raw.Get("name"),
		Email:       raw.Get("email"),
		Mobile:      optional(raw, "mobile"),
		Faculty:     optional(raw, "faculty"),
		Department:  optional(raw, "department"),
		RollNo:      raw.Get("roll_no"),
		TeacherCode: raw.Get("teacher_code"),
	}

	if subjects := normalizeSubjects(raw.Get("subjects")); subjects != "" {
		row.Subjects = &subjects
	}

	if role == models.RoleStudent {
		row.Stream = optional(raw, "stream")
		row.Division = optional(raw, "division")
		row.Semester = optional(raw, "semester")
		row.AcademicYear = optional(raw, "academic_year")
		if row.AcademicYear == nil {
			row.AcademicYear = &defaultAcademicYear
		}
	}

	return row, nil
}

// normalizeSubjects splits a comma-separated subject list, trims each token,
// drops empties and re-joins
func normalizeSubjects(subjects string) string {
	if subjects == "" {
		return ""
	}

	tokens := strings.Split(subjects, ",")
	cleaned := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token != "" {
			cleaned = append(cleaned, token)
		}
	}

	return strings.Join(cleaned, ",")
}

// splitSubjects returns the individual subjects of a normalized list
func splitSubjects(subjects string) []string {
	if subjects == "" {
		return nil
	}
	return strings.Split(subjects, ",")
}

// unionSubjects merges two normalized subject lists preserving first-seen
// order and dropping exact duplicates
func unionSubjects(existing, incoming string) string {
	seen := make(map[string]struct{})
	merged := make([]string, 0)

	for _, subject := range append(splitSubjects(existing), splitSubjects(incoming)...) {
		if _, dup := seen[subject]; dup {
			continue
		}
		seen[subject] = struct{}{}
		merged = append(merged, subject)
	}

	return strings.Join(merged, ",")
}

func optional(raw dto.RawRow, key string) *string {
	if value := raw.Get(key); value != "" {
		return &value
	}
	return nil
}
