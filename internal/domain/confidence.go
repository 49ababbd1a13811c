package domain

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Band boundaries, inclusive at the lower bound.
const (
	HighConfidenceThreshold   = 0.8
	MediumConfidenceThreshold = 0.5
)

// ClassifyConfidence maps a numeric score to a discrete level. This is the
// single authoritative mapping; every component that displays or gates on
// confidence goes through it.
func ClassifyConfidence(score float64) ConfidenceLevel {
	switch {
	case score >= HighConfidenceThreshold:
		return ConfidenceHigh
	case score >= MediumConfidenceThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// RequiresReview reports whether an answer at this level must pass the human
// review gate before use.
func (l ConfidenceLevel) RequiresReview() bool {
	return l == ConfidenceLow
}

func ConfidenceReason(score float64) string {
	switch ClassifyConfidence(score) {
	case ConfidenceHigh:
		return "score >= 0.80"
	case ConfidenceMedium:
		return "0.50 <= score < 0.80"
	default:
		return "score < 0.50"
	}
}

func ValidConfidenceLevel(l string) bool {
	switch ConfidenceLevel(l) {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// ClampScore bounds a relevance or confidence score to [0, 1].
func ClampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
