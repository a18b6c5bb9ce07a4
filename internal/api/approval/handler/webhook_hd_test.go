package approvalHandler_test

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProjectAdvisor/internal/api/approval"
	approvalHandler "ProjectAdvisor/internal/api/approval/handler"
	approvalService "ProjectAdvisor/internal/api/approval/service"
	approvalStore "ProjectAdvisor/internal/api/approval/store"
	"ProjectAdvisor/internal/config"
	"ProjectAdvisor/internal/middleware"
	"ProjectAdvisor/pkg/utils"
)

func newTestApp(t *testing.T) (*fiber.App, approvalStore.PendingStore) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := approvalStore.NewMemoryStore()
	svc := approvalService.New(
		logger,
		store,
		approval.NewKeywordClassifier(),
		nil,
		nil,
		nil,
		utils.New(),
		approvalService.Config{
			MockMode:     true,
			PollInterval: 10 * time.Millisecond,
			PollDeadline: 100 * time.Millisecond,
		},
	)

	mw := middleware.New(logger)
	handler := approvalHandler.New(logger, config.NewValidator(), mw, svc)

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	handler.Start(app.Group("/api/v1"))

	return app, store
}

func postGather(t *testing.T, app *fiber.App, form url.Values) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, "/api/v1/webhooks/approval/gather",
		strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	return resp
}

func TestGatherCallback_ReturnsVoiceMarkup(t *testing.T) {
	app, store := newTestApp(t)

	form := url.Values{}
	form.Set("CallSid", "CA123")
	form.Set("SpeechResult", "yes go ahead")
	form.Set("Confidence", "0.91")

	resp := postGather(t, app, form)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "xml")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<Response>")
	assert.Contains(t, string(body), "approved")

	outcome, found, err := store.Get(context.Background(), "CA123")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "yes go ahead", outcome.Transcript)
}

func TestGatherCallback_MissingCallSidStillSpeaks(t *testing.T) {
	app, _ := newTestApp(t)

	form := url.Values{}
	form.Set("SpeechResult", "yes")

	resp := postGather(t, app, form)
	defer resp.Body.Close()

	// the provider always gets markup to speak, never a bare error
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "rejected")
	assert.Contains(t, string(body), "<Hangup>")
}

func TestGatherCallback_DuplicateDelivery(t *testing.T) {
	app, store := newTestApp(t)

	first := url.Values{}
	first.Set("CallSid", "CA321")
	first.Set("SpeechResult", "no")
	resp := postGather(t, app, first)
	resp.Body.Close()

	second := url.Values{}
	second.Set("CallSid", "CA321")
	second.Set("SpeechResult", "yes")
	resp = postGather(t, app, second)
	resp.Body.Close()

	outcome, found, err := store.Get(context.Background(), "CA321")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "no", outcome.Transcript)
}

func TestGetCallResult_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req, err := http.NewRequest(http.MethodGet, "/api/v1/webhooks/approval/result/CA404", nil)
	require.NoError(t, err)

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetCallResult_Found(t *testing.T) {
	app, store := newTestApp(t)

	form := url.Values{}
	form.Set("CallSid", "CA42")
	form.Set("SpeechResult", "approve")
	resp := postGather(t, app, form)
	resp.Body.Close()

	_, found, err := store.Get(context.Background(), "CA42")
	require.NoError(t, err)
	require.True(t, found)

	req, err := http.NewRequest(http.MethodGet, "/api/v1/webhooks/approval/result/CA42", nil)
	require.NoError(t, err)

	result, err := app.Test(req, 2000)
	require.NoError(t, err)
	defer result.Body.Close()

	assert.Equal(t, http.StatusOK, result.StatusCode)

	body, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "CA42")
	assert.Contains(t, string(body), "approved")
}
