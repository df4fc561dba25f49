package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexStringUnmarshal(t *testing.T) {
	var req MoveEmailRequest
	err := json.Unmarshal([]byte(`{"email_uid": "12345"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "12345", req.EmailUID.String())

	err = json.Unmarshal([]byte(`{"email_uid": 12345}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "12345", req.EmailUID.String())
}

func TestFlexStringRejectsObjects(t *testing.T) {
	var req MoveEmailRequest
	err := json.Unmarshal([]byte(`{"email_uid": {"a": 1}}`), &req)
	assert.Error(t, err)
}

func TestMoveEmailRequestDefaults(t *testing.T) {
	req := MoveEmailRequest{}
	req.ApplyDefaults()

	assert.Equal(t, 993, req.Port)
	assert.Equal(t, "INBOX", req.SourceFolder)
}

func TestMoveEmailRequestDefaultsKeepExplicitValues(t *testing.T) {
	req := MoveEmailRequest{
		MailboxAuth:  MailboxAuth{Port: 143},
		SourceFolder: "Archive",
	}
	req.ApplyDefaults()

	assert.Equal(t, 143, req.Port)
	assert.Equal(t, "Archive", req.SourceFolder)
}
