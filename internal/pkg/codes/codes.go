// Package codes derives human-readable identity codes for students and
// classes from raw academic attributes. All functions are pure and total:
// missing input falls back to sentinel segments instead of failing.
package codes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// StudentAttrs holds the raw attributes a student code is derived from.
type StudentAttrs struct {
	RollNo       string
	Department   string
	Stream       string
	Division     string
	Semester     string
	AcademicYear string
}

// ClassAttrs holds the raw attributes a class code is derived from.
type ClassAttrs struct {
	Department   string
	Stream       string
	Division     string
	Semester     string
	AcademicYear string
}

var yearTokenRe = regexp.MustCompile(`\d{4}|\d{2}`)

// StudentCode builds a student code of the form DEPT-STREAM-DIV-SEM-YY-ROLL.
// Segments equal to their "absent" sentinel are omitted: the stream segment
// when it collapses into the department segment, the semester when zero, the
// year fragment when "00". The roll segment is always present, zero-padded
// to three digits.
//
// Note this omission policy is deliberately different from ClassCode, which
// always emits every field.
func StudentCode(a StudentAttrs) string {
	dept := shortToken(a.Department, "GEN")
	stream := shortToken(a.Stream, "GEN")
	div := divisionToken(a.Division)

	sem := strings.TrimSpace(a.Semester)
	if sem == "" {
		sem = "0"
	}

	year := yearFragment(a.AcademicYear)

	roll := strings.TrimSpace(a.RollNo)
	if roll == "" {
		roll = "000"
	}
	roll = leftPad(roll, 3)

	parts := []string{dept}
	if stream != dept {
		parts = append(parts, stream)
	}
	parts = append(parts, div)
	if sem != "0" {
		parts = append(parts, sem)
	}
	if year != "00" {
		parts = append(parts, year)
	}
	parts = append(parts, roll)

	return strings.Join(parts, "-")
}

// ClassCode builds a class code of the form DEPT-STREAM-DIV-SEMnn-YYYY.
// Unlike StudentCode no field is ever omitted; absent attributes yield the
// sentinels GEN, GEN, X, 00 and 2526 respectively.
func ClassCode(a ClassAttrs) string {
	dept := shortToken(a.Department, "GEN")
	stream := shortToken(a.Stream, "GEN")
	div := divisionToken(a.Division)

	sem := strings.TrimSpace(a.Semester)
	if sem == "" {
		sem = "00"
	}
	sem = leftPad(sem, 2)

	return fmt.Sprintf("%s-%s-%s-SEM%s-%s", dept, stream, div, sem, yearPair(a.AcademicYear))
}

// shortToken reduces a name to its first three characters, upper-cased with
// whitespace stripped. Empty input yields the fallback.
func shortToken(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	runes := []rune(s)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	token := strings.ToUpper(string(runes))
	return strings.Join(strings.Fields(token), "")
}

func divisionToken(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "X"
	}
	return strings.ToUpper(s)
}

// yearFragment extracts a two-digit year from strings like "2025-26",
// "2025" or "25-26", defaulting to "00" when nothing parses.
func yearFragment(year string) string {
	tokens := yearTokenRe.FindAllString(strings.TrimSpace(year), -1)
	if len(tokens) == 0 {
		return "00"
	}
	return lastTwo(tokens[0])
}

// yearPair derives the four-digit year pair for class codes. Two year tokens
// ("2025-26", "2025-2026") concatenate the last two digits of each; a single
// four-digit year pairs with its successor ("2025" -> "2526"). Anything else
// falls back to "2526".
func yearPair(year string) string {
	tokens := yearTokenRe.FindAllString(strings.TrimSpace(year), -1)
	switch {
	case len(tokens) >= 2:
		return lastTwo(tokens[0]) + lastTwo(tokens[1])
	case len(tokens) == 1 && len(tokens[0]) == 4:
		start, err := strconv.Atoi(lastTwo(tokens[0]))
		if err != nil {
			return "2526"
		}
		return fmt.Sprintf("%02d%02d", start, (start+1)%100)
	default:
		return "2526"
	}
}

func lastTwo(s string) string {
	if len(s) <= 2 {
		return s
	}
	return s[len(s)-2:]
}

func leftPad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
