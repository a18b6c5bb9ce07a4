package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	approvalService "ProjectAdvisor/internal/api/approval/service"
	recommendationService "ProjectAdvisor/internal/api/recommendation/service"
)

// VoiceEnv is the telephony and speech configuration read from the
// environment. Presence of the provider credentials decides whether the
// voice path is available at all.
type VoiceEnv struct {
	AccountSID  string
	AuthToken   string
	FromNumber  string
	TTSAPIKey   string
	TTSVoiceID  string
	AudioDir    string
	AudioStore  string
	StoreKind   string
	RemoteStore string
}

func NewVoiceEnv() VoiceEnv {
	return VoiceEnv{
		AccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		AuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		FromNumber:  os.Getenv("TWILIO_FROM_NUMBER"),
		TTSAPIKey:   os.Getenv("ELEVENLABS_API_KEY"),
		TTSVoiceID:  os.Getenv("ELEVENLABS_VOICE_ID"),
		AudioDir:    os.Getenv("APPROVAL_AUDIO_DIR"),
		AudioStore:  strings.ToLower(os.Getenv("APPROVAL_AUDIO_STORE")),
		StoreKind:   strings.ToLower(os.Getenv("APPROVAL_PENDING_STORE")),
		RemoteStore: os.Getenv("APPROVAL_RESULT_BASE_URL"),
	}
}

func (v VoiceEnv) Configured() bool {
	return v.AccountSID != "" && v.AuthToken != "" && v.FromNumber != "" && v.TTSAPIKey != ""
}

func NewApprovalConfig(voice VoiceEnv) approvalService.Config {
	return approvalService.Config{
		MockMode:        envBool("APPROVAL_MOCK_MODE", false),
		MockDelay:       envDuration("APPROVAL_MOCK_DELAY", 500*time.Millisecond),
		MockApprove:     envBool("APPROVAL_MOCK_APPROVE", true),
		PollInterval:    envDuration("APPROVAL_POLL_INTERVAL", 2*time.Second),
		PollDeadline:    envDuration("APPROVAL_POLL_DEADLINE", 60*time.Second),
		Recipient:       os.Getenv("APPROVAL_RECIPIENT"),
		ManagerName:     os.Getenv("APPROVAL_MANAGER_NAME"),
		CallbackBaseURL: os.Getenv("APPROVAL_CALLBACK_BASE_URL"),
		VoiceConfigured: voice.Configured(),
	}
}

func NewRecommendationConfig() recommendationService.Config {
	var symbols []string
	if raw := os.Getenv("RECOMMENDATION_DEFAULT_SYMBOLS"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, strings.ToUpper(s))
			}
		}
	}

	return recommendationService.Config{
		DefaultSymbols: symbols,
		MaxArticles:    envInt("RECOMMENDATION_MAX_ARTICLES", 10),
		MaxPicks:       envInt("RECOMMENDATION_MAX_PICKS", 3),
		Disclaimer:     os.Getenv("RECOMMENDATION_DISCLAIMER"),
	}
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
