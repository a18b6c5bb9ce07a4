package sentiment

// Valence lexicon for market-news text. Values follow the usual [-4, 4]
// convention and are normalized by the scorer.
var defaultLexicon = map[string]float64{
	// positive
	"gain": 1.8, "gains": 1.8, "surge": 2.4, "surges": 2.4, "surged": 2.4,
	"rally": 2.2, "rallies": 2.2, "rallied": 2.2, "soar": 2.6, "soars": 2.6,
	"soared": 2.6, "jump": 1.9, "jumps": 1.9, "jumped": 1.9, "climb": 1.6,
	"climbs": 1.6, "climbed": 1.6, "rise": 1.4, "rises": 1.4, "rose": 1.4,
	"strong": 1.9, "stronger": 2.0, "strongest": 2.2, "growth": 1.8,
	"profit": 1.9, "profits": 1.9, "profitable": 2.0, "record": 1.5,
	"beat": 1.7, "beats": 1.7, "exceed": 1.6, "exceeds": 1.6, "exceeded": 1.6,
	"upgrade": 1.8, "upgraded": 1.8, "bullish": 2.3, "boom": 2.2,
	"optimistic": 2.0, "optimism": 2.0, "positive": 1.8, "recovery": 1.6,
	"recover": 1.4, "recovers": 1.4, "rebound": 1.7, "rebounds": 1.7,
	"breakthrough": 2.1, "innovation": 1.4, "outperform": 1.9,
	"outperforms": 1.9, "momentum": 1.2, "opportunity": 1.3,
	"opportunities": 1.3, "success": 2.0, "successful": 2.0, "win": 1.8,
	"wins": 1.8, "approval": 1.2, "approvals": 1.2, "resilient": 1.6,
	"robust": 1.7, "confidence": 1.5, "confident": 1.5, "stabilizes": 1.0,
	"stabilized": 1.0, "good": 1.9, "great": 2.4, "best": 2.6, "top": 1.3,
	"high": 1.0, "higher": 1.2, "improve": 1.6, "improves": 1.6,
	"improved": 1.6, "boost": 1.7, "boosts": 1.7, "boosted": 1.7,

	// negative
	"loss": -1.9, "losses": -1.9, "lose": -1.7, "loses": -1.7, "lost": -1.7,
	"drop": -1.7, "drops": -1.7, "dropped": -1.7, "fall": -1.6, "falls": -1.6,
	"fell": -1.6, "plunge": -2.6, "plunges": -2.6, "plunged": -2.6,
	"crash": -3.0, "crashes": -3.0, "crashed": -3.0, "slump": -2.2,
	"slumps": -2.2, "slumped": -2.2, "tumble": -2.1, "tumbles": -2.1,
	"tumbled": -2.1, "weak": -1.8, "weaker": -1.9, "weakest": -2.1,
	"decline": -1.7, "declines": -1.7, "declined": -1.7, "bearish": -2.3,
	"recession": -2.5, "downturn": -2.1, "crisis": -2.6, "fear": -2.0,
	"fears": -2.0, "risk": -1.2, "risks": -1.2, "risky": -1.4,
	"uncertainty": -1.6, "uncertain": -1.5, "volatile": -1.3,
	"volatility": -1.3, "miss": -1.6, "misses": -1.6, "missed": -1.6,
	"downgrade": -1.9, "downgraded": -1.9, "warning": -1.7, "warns": -1.7,
	"warned": -1.7, "layoff": -2.0, "layoffs": -2.0, "cut": -1.2,
	"cuts": -1.2, "debt": -1.3, "default": -2.2, "bankruptcy": -3.0,
	"bankrupt": -3.0, "fraud": -2.9, "lawsuit": -1.8, "investigation": -1.4,
	"disruption": -1.5, "disruptions": -1.5, "shortage": -1.6,
	"shortages": -1.6, "inflation": -1.3, "tension": -1.4, "tensions": -1.4,
	"sell-off": -2.1, "selloff": -2.1, "bad": -1.9, "worse": -2.1,
	"worst": -2.5, "low": -1.0, "lower": -1.2, "concern": -1.4,
	"concerns": -1.4, "pessimistic": -2.0, "trouble": -1.8, "struggles": -1.7,
	"struggle": -1.7, "struggling": -1.8, "slowdown": -1.7, "stall": -1.4,
	"stalls": -1.4, "stalled": -1.4,
}

// Degree modifiers scale the valence of the following lexicon word.
var boosters = map[string]float64{
	"very": 0.293, "extremely": 0.4, "hugely": 0.4, "significantly": 0.3,
	"sharply": 0.35, "slightly": -0.3, "somewhat": -0.2, "marginally": -0.3,
	"barely": -0.4, "strongly": 0.3, "substantially": 0.3,
}

// Negators flip the valence of a nearby lexicon word.
var negators = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true, "nor": true,
	"without": true, "hardly": true, "isnt": true, "wasnt": true,
	"arent": true, "doesnt": true, "didnt": true, "wont": true,
	"cant": true, "couldnt": true, "shouldnt": true,
}
