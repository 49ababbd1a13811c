package domain

type EvidenceOrigin string

const (
	OriginProfile  EvidenceOrigin = "profile"
	OriginDocument EvidenceOrigin = "document"
	OriginHistory  EvidenceOrigin = "history"
)

func ValidEvidenceOrigin(o string) bool {
	switch EvidenceOrigin(o) {
	case OriginProfile, OriginDocument, OriginHistory:
		return true
	}
	return false
}

// Priority orders origins for tie-breaking when relevance is equal:
// structured profile data beats document passages beats prior answers.
func (o EvidenceOrigin) Priority() int {
	switch o {
	case OriginProfile:
		return 0
	case OriginDocument:
		return 1
	case OriginHistory:
		return 2
	default:
		return 3
	}
}

// EvidenceSource is one scored candidate piece of text that might answer a
// question. Sources are immutable once produced and live only for the duration
// of a single answer composition.
type EvidenceSource struct {
	Origin    EvidenceOrigin `json:"origin"`
	Content   string         `json:"content"`
	Relevance float64        `json:"relevance"`
}

// NewEvidenceSource builds a source with the relevance clamped to [0, 1].
func NewEvidenceSource(origin EvidenceOrigin, content string, relevance float64) EvidenceSource {
	return EvidenceSource{
		Origin:    origin,
		Content:   content,
		Relevance: ClampScore(relevance),
	}
}
