package utils

import (
	"os"
)

// GetEnv returns the value of the first non-empty environment variable in keys.
func GetEnv(keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return ""
}
