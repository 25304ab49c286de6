package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharvayadav11/sales-tool-email-generator/internal/profile"
	"github.com/Atharvayadav11/sales-tool-email-generator/server/ai"
)

// stubProvider returns a canned reply or error.
type stubProvider struct {
	reply string
	err   error

	gotMessages []ai.Message
}

func (s *stubProvider) Chat(_ context.Context, messages []ai.Message) (string, error) {
	s.gotMessages = messages
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newEmailService(t *testing.T, provider ai.ChatProvider) *APIV1Service {
	t.Helper()
	p := &profile.Profile{Mode: "dev"}
	require.NoError(t, p.Validate())
	return NewAPIV1Service(p, provider, nil)
}

func TestGenerateColdEmailSuccess(t *testing.T) {
	stub := &stubProvider{reply: "```json\n{\"subject\":\"Quick intro\",\"body\":\"Hi Ada\"}\n```"}
	s := newEmailService(t, stub)

	rec := postJSON(t, s.GenerateColdEmail,
		`{"recipientName":"Ada","company":"Acme","product":"WidgetCloud"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Quick intro")

	// The prompt carries the request fields and the JSON-only system
	// instruction rides along.
	require.Len(t, stub.gotMessages, 2)
	assert.Equal(t, "system", stub.gotMessages[0].Role)
	assert.Contains(t, stub.gotMessages[1].Content, "Ada")
	assert.Contains(t, stub.gotMessages[1].Content, "Acme")
	assert.Contains(t, stub.gotMessages[1].Content, "WidgetCloud")
}

func TestGenerateEmailMissingFields(t *testing.T) {
	s := newEmailService(t, &stubProvider{reply: "{}"})

	rec := postJSON(t, s.GenerateColdEmail, `{"recipientName":"Ada"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "company is required")
}

func TestGenerateEmailWithoutProvider(t *testing.T) {
	s := newEmailService(t, nil)

	rec := postJSON(t, s.GenerateFollowupEmail,
		`{"recipientName":"Ada","company":"Acme","product":"WidgetCloud"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "LLM_UNAVAILABLE")
}

func TestGenerateEmailProviderFailure(t *testing.T) {
	s := newEmailService(t, &stubProvider{err: context.DeadlineExceeded})

	rec := postJSON(t, s.GenerateColdEmail,
		`{"recipientName":"Ada","company":"Acme","product":"WidgetCloud"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	// Internal error text never leaks to the caller.
	assert.NotContains(t, rec.Body.String(), "deadline")
}

func TestGenerateEmailMalformedReply(t *testing.T) {
	s := newEmailService(t, &stubProvider{reply: "sorry, I cannot produce that"})

	rec := postJSON(t, s.GenerateColdEmail,
		`{"recipientName":"Ada","company":"Acme","product":"WidgetCloud"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "LLM_MALFORMED_REPLY")
}

func TestGenerateFollowupUsesContext(t *testing.T) {
	stub := &stubProvider{reply: `{"subject":"Re: intro","body":"Following up"}`}
	s := newEmailService(t, stub)

	rec := postJSON(t, s.GenerateFollowupEmail,
		`{"recipientName":"Ada","company":"Acme","product":"WidgetCloud","context":"met at GopherCon"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, stub.gotMessages[1].Content, "met at GopherCon")
}
