// Package tone scores how opinion-laden an article reads, using a
// lexicon-based analyzer. The pipeline uses the score to optionally
// exclude high-emotion articles from the feed.
package tone

import (
	"github.com/jonreiter/govader"
)

// Threshold above which an article counts as high-emotion.
const Threshold = 0.5

// Analyzer produces a subjectivity score in [0, 1]. Stateless per
// article.
type Analyzer interface {
	Subjectivity(text string) float64
}

// VaderAnalyzer scores text with the VADER lexicon. The subjectivity
// score is the non-neutral proportion of the text's sentiment mass.
type VaderAnalyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{sia: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderAnalyzer) Subjectivity(text string) float64 {
	if text == "" {
		return 0
	}
	scores := v.sia.PolarityScores(text)
	s := scores.Positive + scores.Negative
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// HighEmotion applies the fixed threshold to a score.
func HighEmotion(score float64) bool {
	return score > Threshold
}
