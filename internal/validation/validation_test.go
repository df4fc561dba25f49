package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingFields(t *testing.T) {
	payload := map[string]interface{}{
		"host":     "imap.example.com",
		"username": "user@example.com",
		"text":     "",
	}

	missing := MissingFields(payload, "host", "username", "password", "email_uid")
	assert.Equal(t, []string{"password", "email_uid"}, missing)
}

func TestMissingFieldsAllPresent(t *testing.T) {
	payload := map[string]interface{}{
		"host":     "imap.example.com",
		"username": "user@example.com",
	}

	assert.Empty(t, MissingFields(payload, "host", "username"))
}

func TestMissingFieldsEmptyValueCountsAsPresent(t *testing.T) {
	// Presence is a key check, not a truthiness check.
	payload := map[string]interface{}{"text": ""}

	assert.Empty(t, MissingFields(payload, "text"))
}
