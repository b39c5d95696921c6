package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/app/models/dto"
)

func TestValidateRow_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		row     dto.RawRow
		wantErr string
	}{
		{
			name:    "teacher without code",
			role:    models.RoleTeacher,
			row:     dto.RawRow{"name": "Asha", "email": "asha@college.edu"},
			wantErr: `missing required field "teacher_code"`,
		},
		{
			name:    "student without roll number",
			role:    models.RoleStudent,
			row:     dto.RawRow{"name": "Rahul", "email": "rahul@college.edu"},
			wantErr: `missing required field "roll_no"`,
		},
		{
			name:    "whitespace-only value counts as missing",
			role:    models.RoleTeacher,
			row:     dto.RawRow{"teacher_code": "T-1", "name": "  ", "email": "a@b.c"},
			wantErr: `missing required field "name"`,
		},
		{
			name: "complete teacher row passes",
			role: models.RoleTeacher,
			row:  dto.RawRow{"teacher_code": "T-1", "name": "Asha", "email": "asha@college.edu"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := validateRow(tt.row, tt.role, "2025-26")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, row)
		})
	}
}

func TestValidateRow_StudentDefaultsAcademicYear(t *testing.T) {
	raw := dto.RawRow{
		"roll_no": "7", "name": "Rahul", "email": "rahul@college.edu",
		"department": "Science", "division": "A", "semester": "3",
	}

	row, err := validateRow(raw, models.RoleStudent, "2025-26")
	require.NoError(t, err)
	require.NotNil(t, row.AcademicYear)
	assert.Equal(t, "2025-26", *row.AcademicYear)

	raw["academic_year"] = "2024-25"
	row, err = validateRow(raw, models.RoleStudent, "2025-26")
	require.NoError(t, err)
	assert.Equal(t, "2024-25", *row.AcademicYear)
}

func TestValidateRow_TeacherIgnoresClassFields(t *testing.T) {
	raw := dto.RawRow{
		"teacher_code": "T-1", "name": "Asha", "email": "asha@college.edu",
		"stream": "Science", "division": "A",
	}

	row, err := validateRow(raw, models.RoleTeacher, "2025-26")
	require.NoError(t, err)
	assert.Nil(t, row.Stream)
	assert.Nil(t, row.Division)
	assert.Nil(t, row.AcademicYear)
}

func TestNormalizeSubjects(t *testing.T) {
	assert.Equal(t, "", normalizeSubjects(""))
	assert.Equal(t, "Java,Python", normalizeSubjects(" Java , Python "))
	assert.Equal(t, "Java", normalizeSubjects("Java,,  ,"))
}

func TestUnionSubjects(t *testing.T) {
	assert.Equal(t, "Java,Python", unionSubjects("Java,Python", "Java"))
	assert.Equal(t, "Java,Python,DBMS", unionSubjects("Java,Python", "DBMS,Java"))
	assert.Equal(t, "DBMS", unionSubjects("", "DBMS"))
	assert.Equal(t, "Java", unionSubjects("Java", ""))
}

func TestClassLabel(t *testing.T) {
	label := classLabel(models.ClassKey{
		Department: "Computer Science", Stream: "Science", Division: "A",
		Semester: "3", AcademicYear: "2025-26",
	})
	assert.Equal(t, "Computer Science Science Div A Sem 3 (2025-26)", label)

	// Stream equal to department is not repeated.
	label = classLabel(models.ClassKey{Department: "Commerce", Stream: "commerce", Division: "B"})
	assert.Equal(t, "Commerce Div B", label)

	assert.Equal(t, "General", classLabel(models.ClassKey{}))
}
