package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalRecord_JSONFieldNames(t *testing.T) {
	record := ApprovalRecord{
		ID:        "01REC",
		RequestID: "01REQ",
		Decision:  string(DecisionRejected),
		Method:    string(MethodVoiceTimeout),
		CreatedAt: time.Unix(1700000000, 0).UTC(),
	}

	payload, err := json.Marshal(record)
	require.NoError(t, err)

	body := string(payload)
	assert.Contains(t, body, `"request_id":"01REQ"`)
	assert.Contains(t, body, `"created_at"`)
	assert.NotContains(t, body, `"RequestID"`)
	// empty optional columns stay out of API responses
	assert.NotContains(t, body, `"call_id"`)
}
