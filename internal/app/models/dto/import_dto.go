package dto

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawRow is one unvalidated record from an uploaded CSV batch. Values are
// normalized to strings on decode so numeric cells (roll numbers, semesters)
// survive whatever the uploading client produced.
type RawRow map[string]string

// UnmarshalJSON accepts arbitrary scalar values and stringifies them
func (r *RawRow) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(RawRow, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			// absent value, leave key unset
		case string:
			out[key] = v
		case float64:
			if v == math.Trunc(v) {
				out[key] = strconv.FormatInt(int64(v), 10)
			} else {
				out[key] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		case bool:
			out[key] = strconv.FormatBool(v)
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return err
			}
			out[key] = string(encoded)
		}
	}

	*r = out
	return nil
}

// Get returns the trimmed value for a key, empty string if absent
func (r RawRow) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// IsEmpty reports whether every value in the row is blank
func (r RawRow) IsEmpty() bool {
	for _, value := range r {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// ImportStats aggregates counters for one import batch
type ImportStats struct {
	TotalRows          int `json:"totalRows"`
	Inserted           int `json:"inserted"`
	Updated            int `json:"updated"`
	EmailsSent         int `json:"emailsSent"`
	ClassesCreated     int `json:"classesCreated"`
	ClassesUpdated     int `json:"classesUpdated"`
	EnrollmentsCreated int `json:"enrollmentsCreated"`
}

// BatchResult is the summary returned for one import batch. Success refers
// to the batch as a whole; per-row problems live in Errors.
type BatchResult struct {
	Success bool        `json:"success"`
	Stats   ImportStats `json:"stats"`
	Errors  []string    `json:"errors"`
}
