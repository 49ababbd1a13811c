package domain

import "testing"

func TestClassifyConfidence_Bands(t *testing.T) {
	tests := []struct {
		score float64
		want  ConfidenceLevel
	}{
		{1.0, ConfidenceHigh},
		{0.95, ConfidenceHigh},
		{0.8, ConfidenceHigh}, // inclusive lower bound
		{0.79, ConfidenceMedium},
		{0.6, ConfidenceMedium},
		{0.5, ConfidenceMedium}, // inclusive lower bound
		{0.49, ConfidenceLow},
		{0.3, ConfidenceLow},
		{0.0, ConfidenceLow},
	}

	for _, tt := range tests {
		if got := ClassifyConfidence(tt.score); got != tt.want {
			t.Errorf("ClassifyConfidence(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestClassifyConfidence_MonotonicAndTotal(t *testing.T) {
	rank := map[ConfidenceLevel]int{
		ConfidenceLow:    0,
		ConfidenceMedium: 1,
		ConfidenceHigh:   2,
	}

	prev := -1
	for i := 0; i <= 100; i++ {
		level := ClassifyConfidence(float64(i) / 100)
		r, ok := rank[level]
		if !ok {
			t.Fatalf("score %d/100 mapped to unknown level %q", i, level)
		}
		if r < prev {
			t.Fatalf("classification not monotonic at score %d/100", i)
		}
		prev = r
	}
}

func TestConfidenceLevel_RequiresReview(t *testing.T) {
	if !ConfidenceLow.RequiresReview() {
		t.Error("low confidence must require review")
	}
	if ConfidenceMedium.RequiresReview() {
		t.Error("medium confidence must not require review")
	}
	if ConfidenceHigh.RequiresReview() {
		t.Error("high confidence must not require review")
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
	}

	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEvidenceOrigin_Priority(t *testing.T) {
	if !(OriginProfile.Priority() < OriginDocument.Priority() &&
		OriginDocument.Priority() < OriginHistory.Priority()) {
		t.Error("origin priority must order profile > document > history")
	}
}

func TestValidConfidenceLevel(t *testing.T) {
	for _, v := range []string{"high", "medium", "low"} {
		if !ValidConfidenceLevel(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}
	for _, v := range []string{"", "HIGH", "certain"} {
		if ValidConfidenceLevel(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}
