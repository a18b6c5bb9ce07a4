package approvalStore

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/context"

	"ProjectAdvisor/internal/entity"
)

// httpStore reads outcomes from another instance's result endpoint. Useful
// when this process places calls but a separate deployment receives the
// provider webhooks. Writes are owned by the webhook side, so Put and
// Remove do nothing here.
type httpStore struct {
	baseURL string
	client  *http.Client
	json    jsoniter.API
}

func NewHTTPStore(baseURL string) PendingStore {
	return &httpStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
		json:    jsoniter.ConfigCompatibleWithStandardLibrary,
	}
}

func (s *httpStore) Put(_ context.Context, _ string, _ entity.SpeechOutcome) (bool, error) {
	return false, nil
}

func (s *httpStore) Get(ctx context.Context, callID string) (entity.SpeechOutcome, bool, error) {
	var outcome entity.SpeechOutcome

	url := fmt.Sprintf("%s/api/v1/webhooks/approval/result/%s", s.baseURL, callID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return outcome, false, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return outcome, false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return outcome, false, nil
	default:
		return outcome, false, fmt.Errorf("result endpoint returned status %d", resp.StatusCode)
	}

	if err := s.json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		return entity.SpeechOutcome{}, false, err
	}

	return outcome, true, nil
}

func (s *httpStore) Remove(_ context.Context, _ string) error {
	return nil
}
