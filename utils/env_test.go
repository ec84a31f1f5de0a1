package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ADVISOR_TEST_PRIMARY", "")
	t.Setenv("ADVISOR_TEST_FALLBACK", "fallback")
	assert.Equal(t, "fallback", GetEnv("ADVISOR_TEST_PRIMARY", "ADVISOR_TEST_FALLBACK"))

	t.Setenv("ADVISOR_TEST_PRIMARY", "primary")
	assert.Equal(t, "primary", GetEnv("ADVISOR_TEST_PRIMARY", "ADVISOR_TEST_FALLBACK"))

	assert.Equal(t, "", GetEnv())
}
