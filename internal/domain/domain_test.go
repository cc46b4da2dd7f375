package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageJSON(t *testing.T) {
	msg := Message{
		Role:      RoleUser,
		Content:   "who sponsors HR 1234?",
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded Message
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, msg.Role, decoded.Role)
	assert.Equal(t, msg.Content, decoded.Content)
	assert.True(t, msg.Timestamp.Equal(decoded.Timestamp))
}

func TestRoleValues(t *testing.T) {
	assert.Equal(t, Role("system"), RoleSystem)
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("assistant"), RoleAssistant)
}

func TestSessionJSONOmitsEmptyMessages(t *testing.T) {
	sess := Session{ID: "s1"}
	data, err := json.Marshal(sess)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "messages")
}
