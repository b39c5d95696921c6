package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentCode(t *testing.T) {
	tests := []struct {
		name  string
		attrs StudentAttrs
		want  string
	}{
		{
			name: "all fields present",
			attrs: StudentAttrs{
				RollNo:       "7",
				Department:   "Computer Science",
				Stream:       "Science",
				Division:     "a",
				Semester:     "3",
				AcademicYear: "2025-26",
			},
			want: "COM-SCI-A-3-25-007",
		},
		{
			name: "stream collapses into department",
			attrs: StudentAttrs{
				RollNo:       "7",
				Department:   "Computer Science",
				Stream:       "Computer",
				Division:     "a",
				Semester:     "3",
				AcademicYear: "2025-26",
			},
			want: "COM-A-3-25-007",
		},
		{
			name:  "everything missing falls back to sentinels",
			attrs: StudentAttrs{},
			want:  "GEN-X-000",
		},
		{
			name: "zero semester and unparseable year are omitted",
			attrs: StudentAttrs{
				RollNo:     "42",
				Department: "Commerce",
				Stream:     "Arts",
				Division:   "b",
				Semester:   "0",
			},
			want: "COM-ART-B-042",
		},
		{
			name: "roll number padded to three digits",
			attrs: StudentAttrs{
				RollNo:     "123",
				Department: "Physics",
				Division:   "C",
				Semester:   "5",
			},
			want: "PHY-GEN-C-5-123",
		},
		{
			name: "whitespace in short tokens is stripped",
			attrs: StudentAttrs{
				RollNo:     "1",
				Department: "B C Studies",
				Division:   "a",
			},
			want: "BC-GEN-A-001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StudentCode(tt.attrs))
		})
	}
}

func TestStudentCodeDeterministic(t *testing.T) {
	attrs := StudentAttrs{
		RollNo:       "9",
		Department:   "Computer Science",
		Stream:       "Science",
		Division:     "A",
		Semester:     "4",
		AcademicYear: "2024-25",
	}
	first := StudentCode(attrs)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, StudentCode(attrs))
	}
}

func TestClassCode(t *testing.T) {
	tests := []struct {
		name  string
		attrs ClassAttrs
		want  string
	}{
		{
			name: "year range",
			attrs: ClassAttrs{
				Department:   "Computer Science",
				Stream:       "Science",
				Division:     "a",
				Semester:     "3",
				AcademicYear: "2025-26",
			},
			want: "COM-SCI-A-SEM03-2526",
		},
		{
			name: "single four digit year pairs with successor",
			attrs: ClassAttrs{
				Department:   "Computer Science",
				Stream:       "Science",
				Division:     "A",
				Semester:     "3",
				AcademicYear: "2025",
			},
			want: "COM-SCI-A-SEM03-2526",
		},
		{
			name: "full year range",
			attrs: ClassAttrs{
				Department:   "Commerce",
				Stream:       "Commerce",
				Division:     "B",
				Semester:     "10",
				AcademicYear: "2024-2025",
			},
			want: "COM-COM-B-SEM10-2425",
		},
		{
			name:  "missing everything uses sentinels",
			attrs: ClassAttrs{},
			want:  "GEN-GEN-X-SEM00-2526",
		},
		{
			name: "two digit year range",
			attrs: ClassAttrs{
				Department:   "Arts",
				Semester:     "1",
				AcademicYear: "25-26",
			},
			want: "ART-GEN-X-SEM01-2526",
		},
		{
			name: "single two digit year cannot be paired",
			attrs: ClassAttrs{
				Department:   "Arts",
				AcademicYear: "25",
			},
			want: "ART-GEN-X-SEM00-2526",
		},
		{
			name: "century rollover wraps",
			attrs: ClassAttrs{
				Department:   "History",
				AcademicYear: "2099",
			},
			want: "HIS-GEN-X-SEM00-9900",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassCode(tt.attrs))
		})
	}
}

func TestClassCodeNeverOmitsFields(t *testing.T) {
	// Unlike student codes, a class code always has exactly five segments.
	code := ClassCode(ClassAttrs{Department: "Science", Stream: "Science"})
	assert.Equal(t, "SCI-SCI-X-SEM00-2526", code)
}
