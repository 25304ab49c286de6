package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{
			name:  "bare JSON",
			reply: `{"subject":"hi"}`,
			want:  `{"subject":"hi"}`,
		},
		{
			name:  "fenced JSON",
			reply: "```json\n{\"subject\":\"hi\"}\n```",
			want:  `{"subject":"hi"}`,
		},
		{
			name:  "fenced without language tag",
			reply: "```\n{\"subject\":\"hi\"}\n```",
			want:  `{"subject":"hi"}`,
		},
		{
			name:  "prose around the document",
			reply: "Sure! Here is the email:\n{\"subject\":\"hi\"}\nLet me know.",
			want:  `{"subject":"hi"}`,
		},
		{
			name:  "no JSON at all",
			reply: "I cannot help with that.",
			want:  "I cannot help with that.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.reply))
		})
	}
}

func TestDecodeReply(t *testing.T) {
	var out struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}

	err := DecodeReply("```json\n{\"subject\":\"Quick intro\",\"body\":\"Hello there\"}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, "Quick intro", out.Subject)
	assert.Equal(t, "Hello there", out.Body)

	err = DecodeReply("no structure here", &out)
	require.Error(t, err)
}
