package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_PositiveText(t *testing.T) {
	scorer := NewScorer()

	score := scorer.Score("Stocks rally as earnings beat expectations and profits surge")

	assert.Greater(t, score.Compound, 0.0)
	assert.Greater(t, score.Positive, 0.0)
	assert.Zero(t, score.Negative)
}

func TestScore_NegativeText(t *testing.T) {
	scorer := NewScorer()

	score := scorer.Score("Markets crash amid recession fears and mounting losses")

	assert.Less(t, score.Compound, 0.0)
	assert.Greater(t, score.Negative, 0.0)
}

func TestScore_NeutralText(t *testing.T) {
	scorer := NewScorer()

	score := scorer.Score("The company reported quarterly results on Tuesday")

	assert.InDelta(t, 0.0, score.Compound, 0.05)
	assert.Greater(t, score.Neutral, 0.5)
}

func TestScore_EmptyText(t *testing.T) {
	scorer := NewScorer()

	score := scorer.Score("   ")

	assert.Zero(t, score.Compound)
	assert.InDelta(t, 1.0, score.Neutral, 1e-9)
}

func TestScore_NegationFlipsValence(t *testing.T) {
	scorer := NewScorer()

	plain := scorer.Score("the outlook is strong")
	negated := scorer.Score("the outlook is not strong")

	assert.Greater(t, plain.Compound, 0.0)
	assert.Less(t, negated.Compound, 0.0)
}

func TestScore_ContractionNegation(t *testing.T) {
	scorer := NewScorer()

	score := scorer.Score("growth isn't strong this quarter")

	assert.Less(t, score.Compound, scorer.Score("growth is strong this quarter").Compound)
}

func TestScore_BoosterStrengthens(t *testing.T) {
	scorer := NewScorer()

	base := scorer.Score("profits improved")
	boosted := scorer.Score("profits significantly improved")

	assert.Greater(t, boosted.Compound, base.Compound)
}

func TestScore_BoundedCompound(t *testing.T) {
	scorer := NewScorer()

	score := scorer.Score("surge rally soar jump climb gain boom breakthrough outperform win")

	assert.LessOrEqual(t, score.Compound, 1.0)
	assert.GreaterOrEqual(t, score.Compound, -1.0)
}

func TestInterpretation(t *testing.T) {
	assert.Equal(t, "Very Positive", Interpretation(0.7))
	assert.Equal(t, "Positive", Interpretation(0.2))
	assert.Equal(t, "Neutral", Interpretation(0.0))
	assert.Equal(t, "Negative", Interpretation(-0.2))
	assert.Equal(t, "Very Negative", Interpretation(-0.8))
}
