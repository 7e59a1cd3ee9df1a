package logging

import "strings"

// sensitiveKeyParts flags attribute keys whose values must never appear in
// log output. Provider payloads carry real API credentials.
var sensitiveKeyParts = []string{
	"token",
	"key",
	"secret",
	"password",
	"credential",
	"authorization",
}

// tokenPrefixes are well-known credential prefixes that identify a secret
// regardless of the attribute key it travels under.
var tokenPrefixes = []string{
	"sk-",
	"sk-ant-",
	"ghp_",
	"gho_",
	"xoxb-",
	"Bearer ",
}

// ShouldMask reports whether the attribute key names a sensitive value.
func ShouldMask(key string) bool {
	lower := strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether the value looks like a credential.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.Contains(value, prefix) {
			return true
		}
	}
	return false
}

// MaskValue replaces all but the first four characters of a secret with
// asterisks. Short values are masked entirely.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return value[:4] + strings.Repeat("*", len(value)-4)
}
