package config

import (
	"os"
	"strconv"
)

// GetEnvOrDefault returns the value of an environment variable, or the
// fallback when unset or empty.
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// GetEnvIntOrDefault parses an integer environment variable, falling back
// on missing or malformed values.
func GetEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// GetEnvBool reports whether an environment variable is set to "true"
// (case-insensitive per strconv rules).
func GetEnvBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}

// MaxQuestions returns the per-batch question limit, overridable via
// MAX_QUESTIONS.
func MaxQuestions() int {
	return GetEnvIntOrDefault("MAX_QUESTIONS", DefaultMaxQuestions)
}
