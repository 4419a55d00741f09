package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// LexiconScorer scores text against weighted word lists tuned for
// financial headlines. Negators within a short window flip the sign
// and intensifiers scale it.
type LexiconScorer struct {
	weights      map[string]float64
	negators     map[string]struct{}
	intensifiers map[string]float64
}

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		weights:      defaultWeights(),
		negators:     defaultNegators(),
		intensifiers: defaultIntensifiers(),
	}
}

// Polarity returns a score in [-1, 1]. Blank text scores zero.
func (s *LexiconScorer) Polarity(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var total float64
	hits := 0
	for i, tok := range tokens {
		w, ok := s.weights[tok]
		if !ok {
			continue
		}
		hits++

		scale := 1.0
		// Look back up to two tokens for modifiers.
		for back := 1; back <= 2 && i-back >= 0; back++ {
			prev := tokens[i-back]
			if _, neg := s.negators[prev]; neg {
				scale *= -1
			} else if boost, ok := s.intensifiers[prev]; ok {
				scale *= boost
			}
		}
		total += w * scale
	}
	if hits == 0 {
		return 0
	}

	score := total / float64(hits)
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score
}

// Subjectivity estimates how opinionated the text is, in [0, 1].
// Stronger lexicon words read as more subjective; text with no lexicon
// hits scores zero.
func (s *LexiconScorer) Subjectivity(text string) float64 {
	var total float64
	hits := 0
	for _, tok := range tokenize(text) {
		w, ok := s.weights[tok]
		if !ok {
			continue
		}
		hits++
		total += math.Min(math.Abs(w)+0.2, 1)
	}
	if hits == 0 {
		return 0
	}
	return total / float64(hits)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}

func defaultWeights() map[string]float64 {
	w := map[string]float64{}
	add := func(weight float64, words ...string) {
		for _, word := range words {
			w[word] = weight
		}
	}

	add(0.8, "surge", "surges", "surged", "soar", "soars", "soared", "rally", "rallies",
		"rallied", "breakout", "record", "outperform", "outperforms", "outperformed", "upgrade",
		"upgraded", "beat", "beats", "blowout")
	add(0.5, "gain", "gains", "gained", "rise", "rises", "rose", "climb", "climbs", "climbed",
		"up", "higher", "strong", "strength", "bullish", "growth", "profit", "profits",
		"profitable", "positive", "optimistic", "buy", "momentum", "recovery", "rebound",
		"dividend", "expansion", "upbeat", "exceed", "exceeds", "exceeded")
	add(0.3, "good", "great", "solid", "healthy", "improve", "improves", "improved",
		"improving", "steady", "stable", "opportunity", "promising", "success", "successful",
		"win", "wins", "winner")

	add(-0.8, "crash", "crashes", "crashed", "plunge", "plunges", "plunged", "collapse",
		"collapsed", "bankrupt", "bankruptcy", "fraud", "scandal", "downgrade", "downgraded",
		"lawsuit", "default", "meltdown", "selloff")
	add(-0.5, "loss", "losses", "fall", "falls", "fell", "drop", "drops", "dropped", "decline",
		"declines", "declined", "down", "lower", "weak", "weakness", "bearish", "negative",
		"pessimistic", "sell", "miss", "misses", "missed", "cut", "cuts", "layoff", "layoffs",
		"recession", "slump", "warning", "tumble", "tumbles", "tumbled")
	add(-0.3, "bad", "poor", "concern", "concerns", "concerned", "worry", "worries", "worried",
		"risk", "risks", "risky", "uncertain", "uncertainty", "volatile", "volatility",
		"struggle", "struggles", "struggling", "disappointing", "disappoint", "disappoints")

	return w
}

func defaultNegators() map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range []string{"not", "no", "never", "without", "hardly", "barely",
		"isn't", "wasn't", "aren't", "don't", "doesn't", "didn't", "won't", "can't", "couldn't"} {
		out[w] = struct{}{}
	}
	return out
}

func defaultIntensifiers() map[string]float64 {
	return map[string]float64{
		"very":       1.3,
		"extremely":  1.5,
		"hugely":     1.5,
		"massively":  1.5,
		"sharply":    1.4,
		"slightly":   0.5,
		"somewhat":   0.6,
		"marginally": 0.5,
	}
}
