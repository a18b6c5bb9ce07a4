package middleware

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProjectAdvisor/pkg/log"
)

func TestSanitizeRequestBody_RedactsSensitiveFields(t *testing.T) {
	body := `{"summary":"Buy 3 stocks","password":"hunter2","token":"abc"}`

	sanitized := sanitizeRequestBody("/api/v1/approvals", body)

	assert.Contains(t, sanitized, `"summary":"Buy 3 stocks"`)
	assert.Contains(t, sanitized, `"password":"[SECRET]"`)
	assert.Contains(t, sanitized, `"token":"[SECRET]"`)
	assert.NotContains(t, sanitized, "hunter2")
}

func TestSanitizeRequestBody_WebhookCredentials(t *testing.T) {
	body := `{"account_sid":"AC123","auth_token":"tok456","speech":"yes"}`

	sanitized := sanitizeRequestBody("/api/v1/webhooks/approval/gather", body)

	assert.Contains(t, sanitized, `"account_sid":"[SECRET]"`)
	assert.Contains(t, sanitized, `"auth_token":"[SECRET]"`)
	assert.NotContains(t, sanitized, "AC123")

	// outside webhook paths the provider field names are ordinary data
	plain := sanitizeRequestBody("/api/v1/recommendations", body)
	assert.Contains(t, plain, "AC123")
}

func TestSanitizeRequestBody_NonJSON(t *testing.T) {
	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("/api/v1/approvals", "CallSid=CA1&SpeechResult=yes"))
}

func TestLoggerConfig_PassesRequestsThrough(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	log.NewLogger()

	app := fiber.New()
	app.Use(NewRequestIDMiddleware())
	app.Use(LoggerConfig())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	req, err := http.NewRequest(http.MethodGet, "/ping", strings.NewReader(""))
	require.NoError(t, err)

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDKey))
}
