package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const callsAPIBase = "https://api.twilio.com/2010-04-01/Accounts"

// ICallAPI places outbound calls through the telephony provider's REST API.
type ICallAPI interface {
	CreateCall(ctx context.Context, to, from, markup string, ringTimeout int) (string, error)
}

type callAPI struct {
	accountSID string
	authToken  string
	httpClient *http.Client
}

func NewCallAPI(accountSID, authToken string) ICallAPI {
	return &callAPI{
		accountSID: accountSID,
		authToken:  authToken,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type createCallResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (c *callAPI) CreateCall(ctx context.Context, to, from, markup string, ringTimeout int) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/Calls.json", callsAPIBase, c.accountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Twiml", markup)
	if ringTimeout > 0 {
		form.Set("Timeout", fmt.Sprintf("%d", ringTimeout))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed createCallResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode call response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Message != "" {
			return "", fmt.Errorf("call placement failed: %s (code %d)", parsed.Message, parsed.Code)
		}
		return "", fmt.Errorf("call placement failed: %s", resp.Status)
	}

	if parsed.SID == "" {
		return "", fmt.Errorf("call placement returned no call SID")
	}

	return parsed.SID, nil
}
