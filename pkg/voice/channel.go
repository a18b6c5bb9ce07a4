// Package voice wraps outbound call placement and speech capture behind a
// narrow channel interface. The provider owns ringing, answer detection and
// speech recognition; callers only see a call identifier.
package voice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ProjectAdvisor/pkg/twiml"
)

const (
	// provider-side ceilings; calls that outlive them resolve on the
	// provider and surface here as a missing webhook callback
	ringTimeoutSeconds   = 10
	gatherTimeoutSeconds = 10

	gatherPath = "/api/v1/webhooks/approval/gather"
	audioPath  = "/api/v1/webhooks/approval/audio"
)

type Channel interface {
	// PlaceCall speaks message to recipient and registers the gather
	// webhook under callbackBase. Returns the provider call identifier.
	PlaceCall(ctx context.Context, message, recipient, callbackBase string) (string, error)
}

type providerChannel struct {
	log        *logrus.Logger
	tts        ITTS
	audioStore AudioStore
	callAPI    ICallAPI
	fromNumber string
}

func NewChannel(log *logrus.Logger, tts ITTS, audioStore AudioStore, callAPI ICallAPI, fromNumber string) Channel {
	return &providerChannel{
		log:        log,
		tts:        tts,
		audioStore: audioStore,
		callAPI:    callAPI,
		fromNumber: fromNumber,
	}
}

func (c *providerChannel) PlaceCall(ctx context.Context, message, recipient, callbackBase string) (string, error) {
	callbackBase = strings.TrimRight(callbackBase, "/")

	audioBytes, err := c.tts.GenerateAudio(message)
	if err != nil {
		return "", fmt.Errorf("speech generation failed: %w", err)
	}

	filename := fmt.Sprintf("approval_%s.mp3", uuid.NewString())
	if err := c.audioStore.Save(filename, audioBytes); err != nil {
		return "", fmt.Errorf("store call audio: %w", err)
	}

	audioURL := fmt.Sprintf("%s%s/%s", callbackBase, audioPath, filename)
	gatherURL := callbackBase + gatherPath

	markup, err := callMarkup(audioURL, gatherURL)
	if err != nil {
		return "", fmt.Errorf("build call markup: %w", err)
	}

	callSID, err := c.callAPI.CreateCall(ctx, recipient, c.fromNumber, markup, ringTimeoutSeconds)
	if err != nil {
		if delErr := c.audioStore.Delete(filename); delErr != nil {
			c.log.WithFields(logrus.Fields{
				"filename": filename,
				"error":    delErr.Error(),
			}).Warn("Failed to clean up call audio after placement failure")
		}
		return "", err
	}

	c.log.WithFields(logrus.Fields{
		"call_sid":  callSID,
		"recipient": recipient,
		"audio_url": audioURL,
	}).Info("Outbound approval call placed")

	return callSID, nil
}

func callMarkup(audioURL, gatherURL string) (string, error) {
	doc := twiml.New().Play(audioURL)
	doc.Gather(twiml.Gather{
		Input:         "speech",
		Timeout:       gatherTimeoutSeconds,
		SpeechTimeout: "auto",
		Action:        gatherURL,
		Method:        "POST",
		Verbs: []interface{}{
			twiml.Say{
				Text:  "Please say YES to approve or NO to reject these recommendations.",
				Voice: "alice",
			},
		},
	})
	doc.Say("No response received. Recommendations will be rejected.", "alice")
	doc.Hangup()

	return doc.Render()
}
