package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Atharvayadav11/sales-tool-email-generator/server/ai"
	svcerrors "github.com/Atharvayadav11/sales-tool-email-generator/server/internal/errors"
	"github.com/Atharvayadav11/sales-tool-email-generator/server/internal/observability"
)

// GenerateEmailRequest is the body of the email generation endpoints.
type GenerateEmailRequest struct {
	RecipientName string `json:"recipientName"`
	Company       string `json:"company"`
	Product       string `json:"product"`
	Context       string `json:"context"`
}

// GenerateEmailResponse is the coerced shape of the LLM reply.
type GenerateEmailResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

const emailSystemPrompt = `You are a sales outreach assistant. Reply with a single JSON object ` +
	`containing exactly two string fields, "subject" and "body". Output JSON only.`

const coldEmailPrompt = `Write a concise cold outreach email to %s at %s introducing %s.%s`

const followupEmailPrompt = `Write a short, polite follow-up email to %s at %s about %s, ` +
	`referencing the earlier conversation.%s`

// GenerateColdEmail templates a cold-outreach prompt, relays it to the
// LLM provider, and coerces the JSON reply.
// POST /api/v1/emails/cold
func (s *APIV1Service) GenerateColdEmail(c echo.Context) error {
	return s.generateEmail(c, "email_cold", coldEmailPrompt)
}

// GenerateFollowupEmail templates a follow-up prompt, relays it to the
// LLM provider, and coerces the JSON reply.
// POST /api/v1/emails/followup
func (s *APIV1Service) GenerateFollowupEmail(c echo.Context) error {
	return s.generateEmail(c, "email_followup", followupEmailPrompt)
}

func (s *APIV1Service) generateEmail(c echo.Context, endpoint, promptTemplate string) error {
	reqCtx := observability.NewRequestContext(s.logger, endpoint)
	observability.GlobalMetrics().RecordRequest(endpoint)
	defer func() {
		observability.GlobalMetrics().RecordDuration(endpoint, reqCtx.Duration())
	}()

	var req GenerateEmailRequest
	if err := c.Bind(&req); err != nil {
		observability.GlobalMetrics().RecordFailure(endpoint)
		return c.JSON(http.StatusBadRequest, errorBody(svcerrors.InvalidArgument("request body must be valid JSON")))
	}

	required := []struct {
		field string
		value string
	}{
		{"recipientName", req.RecipientName},
		{"company", req.Company},
		{"product", req.Product},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			observability.GlobalMetrics().RecordFailure(endpoint)
			return c.JSON(http.StatusBadRequest, errorBody(svcerrors.InvalidArgument(r.field+" is required")))
		}
	}

	if s.Provider == nil {
		observability.GlobalMetrics().RecordFailure(endpoint)
		return c.JSON(http.StatusServiceUnavailable,
			errorBody(svcerrors.LLMUnavailable("email generation is not configured", nil)))
	}

	extra := ""
	if strings.TrimSpace(req.Context) != "" {
		extra = " Additional context: " + strings.TrimSpace(req.Context)
	}
	prompt := fmt.Sprintf(promptTemplate, req.RecipientName, req.Company, req.Product, extra)

	reply, err := s.Provider.Chat(c.Request().Context(), []ai.Message{
		ai.SystemPrompt(emailSystemPrompt),
		ai.UserMessage(prompt),
	})
	if err != nil {
		reqCtx.Error("LLM relay failed", err)
		observability.GlobalMetrics().RecordFailure(endpoint)
		return c.JSON(http.StatusServiceUnavailable,
			errorBody(svcerrors.LLMUnavailable("email generation is temporarily unavailable", nil)))
	}

	var out GenerateEmailResponse
	if err := ai.DecodeReply(reply, &out); err != nil {
		reqCtx.Error("LLM reply held no usable JSON", err)
		observability.GlobalMetrics().RecordFailure(endpoint)
		return c.JSON(http.StatusServiceUnavailable,
			errorBody(svcerrors.LLMMalformedReply("email generation returned an unusable reply", nil)))
	}

	reqCtx.Info("email generated",
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
	return c.JSON(http.StatusOK, out)
}
