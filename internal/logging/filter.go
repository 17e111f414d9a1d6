// Package logging provides logging utilities including sensitive data
// filtering, so API keys for the discussion model and the reference
// service never reach the rotating log file.
package logging

import (
	"io"
	"regexp"
	"strings"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns matches credential formats atomic may encounter:
// Google API keys for the discussion model, bearer tokens sent to the
// reference service, and generic key/secret assignments that can appear
// when config values are logged.
var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// Google API keys (AIza...)
	regexp.MustCompile(`AIza[a-zA-Z0-9_-]{30,}`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9_.-]{20,}`),

	// Generic API key assignments
	regexp.MustCompile(`(?i)(api[_-]?key|apikey)\s*[:=]\s*["']?[a-zA-Z0-9_-]{16,}["']?`),

	// Generic secret assignments
	regexp.MustCompile(`(?i)(secret|password|credential|token)\s*[:=]\s*["']?[^\s"']{8,}["']?`),
}

// sensitiveFieldNames lists field names whose values are always redacted.
var sensitiveFieldNames = []string{ //nolint:gochecknoglobals // Package-level list for reuse
	"api_key",
	"apikey",
	"api-key",
	"authorization",
	"bearer",
	"credential",
	"gemini_api_key",
	"password",
	"secret",
	"token",
}

// ContainsSensitiveData reports whether s matches any sensitive pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces sensitive patterns in value with
// RedactedValue. Use it when logging values that might carry credentials.
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName reports whether a field name indicates sensitive
// data. Matching is case-insensitive and substring-based.
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFieldNames {
		if strings.Contains(lowerName, sensitive) {
			return true
		}
	}
	return false
}

// RedactIfSensitive returns RedactedValue for sensitive field names and
// the pattern-filtered value otherwise.
func RedactIfSensitive(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// FilteringWriter wraps an io.Writer and redacts sensitive data from
// everything written through it. It wraps the log file sink so
// credentials never land on disk even when a message slips one through.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter wraps w with sensitive data filtering.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer, filtering before the underlying write. The
// original length is returned so callers do not see a short write when
// redaction changes the byte count.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	if _, err = fw.w.Write([]byte(FilterSensitiveValue(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
