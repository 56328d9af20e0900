package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("reader_42"))
	assert.NoError(t, ValidateUsername("abc"))

	assert.Error(t, ValidateUsername("ab"))                        // too short
	assert.Error(t, ValidateUsername(strings.Repeat("a", 31)))    // too long
	assert.Error(t, ValidateUsername("bad name"))                 // space
	assert.Error(t, ValidateUsername("bad-name"))                 // dash
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("reader@example.com"))
	assert.NoError(t, ValidateEmail("a.b+c@sub.example.org"))

	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret"))

	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}
