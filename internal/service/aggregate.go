package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harshitk-cp/flash/internal/domain"
)

// maxSources bounds the evidence list handed to the composer.
const maxSources = 5

// EvidenceAggregator fans out to the three extractors, ranks what comes back,
// and truncates to a bounded set. An empty result is a valid state, not an
// error.
type EvidenceAggregator struct {
	profile  *ProfileExtractor
	document *DocumentExtractor
	history  *HistorySearch
	logger   *zap.Logger
}

func NewEvidenceAggregator(history *HistorySearch, logger *zap.Logger) *EvidenceAggregator {
	return &EvidenceAggregator{
		profile:  NewProfileExtractor(),
		document: NewDocumentExtractor(),
		history:  history,
		logger:   logger,
	}
}

// Gather runs the extractors concurrently, then sorts by descending relevance
// with ties broken by origin priority, and returns at most maxSources entries.
func (a *EvidenceAggregator) Gather(ctx context.Context, question string, profile *domain.Profile, documentText string) []domain.EvidenceSource {
	var (
		wg          sync.WaitGroup
		profileSrc  *domain.EvidenceSource
		documentSrc *domain.EvidenceSource
		historySrcs []domain.EvidenceSource
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		profileSrc = a.profile.Extract(question, profile)
	}()

	if documentText != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			documentSrc = a.document.Extract(question, documentText)
		}()
	}

	if a.history != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var profileID uuid.UUID
			if profile != nil {
				profileID = profile.ID
			}
			historySrcs = a.history.Search(ctx, profileID, question, defaultHistoryTopK)
		}()
	}

	wg.Wait()

	sources := make([]domain.EvidenceSource, 0, 2+len(historySrcs))
	if profileSrc != nil {
		sources = append(sources, *profileSrc)
	}
	if documentSrc != nil {
		sources = append(sources, *documentSrc)
	}
	sources = append(sources, historySrcs...)

	sortSources(sources)

	if len(sources) > maxSources {
		sources = sources[:maxSources]
	}

	a.logger.Debug("evidence gathered",
		zap.String("question", question),
		zap.Int("sources", len(sources)),
	)

	return sources
}

// sortSources orders by relevance descending, then by origin priority so equal
// scores resolve deterministically as profile > document > history.
func sortSources(sources []domain.EvidenceSource) {
	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].Relevance != sources[j].Relevance {
			return sources[i].Relevance > sources[j].Relevance
		}
		return sources[i].Origin.Priority() < sources[j].Origin.Priority()
	})
}
