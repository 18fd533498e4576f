package util

import (
	"encoding/json"
	"strings"
)

// ConvertStructToJson marshals v to a JSON string, returning "{}" on failure.
func ConvertStructToJson(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// SanitizePostgresText strips invalid UTF-8 and NUL bytes that Postgres
// text columns reject.
func SanitizePostgresText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
