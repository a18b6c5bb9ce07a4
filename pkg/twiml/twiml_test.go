package twiml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_SayHangup(t *testing.T) {
	markup, err := New().
		Say("Goodbye.", "alice").
		Hangup().
		Render()
	require.NoError(t, err)

	assert.Equal(t, Header+`<Response><Say voice="alice">Goodbye.</Say><Hangup></Hangup></Response>`, markup)
}

func TestRender_GatherWithNestedSay(t *testing.T) {
	doc := New().Play("https://example.com/audio/prompt.mp3")
	doc.Gather(Gather{
		Input:         "speech",
		Timeout:       10,
		SpeechTimeout: "auto",
		Action:        "https://example.com/api/v1/webhooks/approval/gather",
		Method:        "POST",
		Verbs: []interface{}{
			Say{Text: "Say yes or no.", Voice: "alice"},
		},
	})
	doc.Hangup()

	markup, err := doc.Render()
	require.NoError(t, err)

	assert.Contains(t, markup, `<Play>https://example.com/audio/prompt.mp3</Play>`)
	assert.Contains(t, markup, `input="speech"`)
	assert.Contains(t, markup, `timeout="10"`)
	assert.Contains(t, markup, `speechTimeout="auto"`)
	assert.Contains(t, markup, `action="https://example.com/api/v1/webhooks/approval/gather"`)
	assert.Contains(t, markup, `<Say voice="alice">Say yes or no.</Say>`)
	assert.Contains(t, markup, "<Hangup>")
}

func TestRender_EscapesText(t *testing.T) {
	markup, err := New().Say("buy AT&T <now>", "").Render()
	require.NoError(t, err)

	assert.Contains(t, markup, "buy AT&amp;T &lt;now&gt;")
	assert.NotContains(t, markup, `voice=""`)
}
