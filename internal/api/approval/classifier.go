package approval

import (
	"strings"

	"ProjectAdvisor/internal/entity"
)

// Classifier maps a speech transcript to a decision. Implementations must be
// deterministic; the reconciler calls this once per gathered outcome.
type Classifier interface {
	Classify(transcript string) entity.Decision
}

var rejectionKeywords = []string{
	"no",
	"reject",
	"rejected",
	"deny",
	"denied",
	"refuse",
	"negative",
}

var approvalKeywords = []string{
	"yes",
	"approve",
	"approved",
	"accept",
	"okay",
	"ok",
	"sure",
	"go ahead",
	"affirmative",
	"yeah",
}

type keywordClassifier struct{}

func NewKeywordClassifier() Classifier {
	return &keywordClassifier{}
}

// Classify lower-cases and trims the transcript, then scans for keyword
// substrings. Rejection keywords win over approval keywords so an ambiguous
// response like "no, yes" stays rejected.
func (k *keywordClassifier) Classify(transcript string) entity.Decision {
	text := strings.ToLower(strings.TrimSpace(transcript))
	if text == "" {
		return entity.DecisionUnclear
	}

	for _, keyword := range rejectionKeywords {
		if strings.Contains(text, keyword) {
			return entity.DecisionRejected
		}
	}

	for _, keyword := range approvalKeywords {
		if strings.Contains(text, keyword) {
			return entity.DecisionApproved
		}
	}

	return entity.DecisionUnclear
}
