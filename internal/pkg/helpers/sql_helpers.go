package helpers

// NullableString converts a trimmed string to a *string, mapping empty to
// nil so that absent CSV fields become SQL NULLs rather than empty strings.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringOrEmpty dereferences a *string, mapping nil to "".
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
