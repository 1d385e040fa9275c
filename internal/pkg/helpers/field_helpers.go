package helpers

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Import rows arrive as flat field-maps decoded from JSON or a delimited
// file, so every value may be a string, a native JSON type, or absent. The
// coercion helpers below normalize them.

// FieldString returns the trimmed string form of a row field. Absent or nil
// fields come back empty.
func FieldString(row map[string]interface{}, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		// JSON numbers decode as float64; integral values keep their form.
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// FieldBool coerces a row field to bool. Accepts native booleans and the
// spellings "true"/"TRUE"/"1"/"yes". Absent fields return the default.
func FieldBool(row map[string]interface{}, key string, def bool) bool {
	v, ok := row[key]
	if !ok || v == nil {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
		return def
	case float64:
		return b != 0
	default:
		return def
	}
}

// FieldInt coerces a row field to int, falling back to the default when the
// field is absent or unparseable. Optional numeric source columns (e.g.
// semester) rely on this.
func FieldInt(row map[string]interface{}, key string, def int) int {
	v, ok := row[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
		return def
	default:
		return def
	}
}

// FieldDate parses a row field as a 2006-01-02 date.
func FieldDate(row map[string]interface{}, key string) (time.Time, error) {
	s := FieldString(row, key)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date field %q", key)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q for field %q", s, key)
	}
	return t, nil
}

// ParseDuration parses a duration string, returning the default on failure.
func ParseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}
