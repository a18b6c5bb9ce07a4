// Package sentiment scores market-news text with a valence lexicon. It is a
// heuristic, not NLP: callers that need something smarter swap the scorer
// behind IScorer.
package sentiment

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalization constant for the compound score, keeps it in (-1, 1)
const alpha = 15.0

type Score struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

type IScorer interface {
	Score(text string) Score
}

type scorer struct {
	lexicon  map[string]float64
	boosters map[string]float64
	negators map[string]bool
}

func NewScorer() IScorer {
	return &scorer{
		lexicon:  defaultLexicon,
		boosters: boosters,
		negators: negators,
	}
}

func (s *scorer) Score(text string) Score {
	tokens := strings.Fields(s.cleanText(text))
	if len(tokens) == 0 {
		return Score{Neutral: 1.0}
	}

	var sum float64
	var posCount, negCount int

	for i, token := range tokens {
		valence, ok := s.lexicon[token]
		if !ok {
			continue
		}

		// scan up to three preceding tokens for boosters and negations
		for j := i - 1; j >= 0 && j >= i-3; j-- {
			if boost, ok := s.boosters[tokens[j]]; ok {
				if valence > 0 {
					valence += boost
				} else {
					valence -= boost
				}
			}
			if s.negators[tokens[j]] {
				valence = -valence * 0.74
			}
		}

		sum += valence
		if valence > 0 {
			posCount++
		} else if valence < 0 {
			negCount++
		}
	}

	compound := sum / math.Sqrt(sum*sum+alpha)

	total := float64(len(tokens))
	pos := float64(posCount) / total
	neg := float64(negCount) / total
	neu := math.Max(0, 1.0-pos-neg)

	return Score{
		Compound: round3(compound),
		Positive: round3(pos),
		Negative: round3(neg),
		Neutral:  round3(neu),
	}
}

func (s *scorer) cleanText(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, text)

	result = strings.Map(func(r rune) rune {
		switch {
		case r == '\'' || r == '’':
			return -1 // "can't" -> "cant"
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-':
			return r
		default:
			return ' '
		}
	}, result)

	return strings.Join(strings.Fields(result), " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// Interpretation converts a compound score to a human-readable label.
func Interpretation(compound float64) string {
	switch {
	case compound >= 0.5:
		return "Very Positive"
	case compound >= 0.1:
		return "Positive"
	case compound > -0.1:
		return "Neutral"
	case compound > -0.5:
		return "Negative"
	default:
		return "Very Negative"
	}
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
