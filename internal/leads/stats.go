package leads

import (
	"context"
	"fmt"
	"sync"

	"github.com/arjun/lead-intel/internal/models"
)

// Stats computes the combined dashboard aggregates for a region. Rollups
// cover the whole filtered population, independent of pagination. Only
// tenders carry a monetary field, so TotalValue is the tender-side sum.
func (s *Service) Stats(ctx context.Context, region string) (models.CombinedStats, error) {
	filter := CompileFilter(region)

	var (
		wg      sync.WaitGroup
		tenders models.SourceRollup
		sites   models.SourceRollup
		terr    error
		werr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		tenders, terr = s.store.TenderRollup(ctx, filter)
	}()
	go func() {
		defer wg.Done()
		sites, werr = s.store.WebsiteRollup(ctx, filter)
	}()
	wg.Wait()

	if terr != nil {
		return models.CombinedStats{}, fmt.Errorf("tender rollup: %w", terr)
	}
	if werr != nil {
		return models.CombinedStats{}, fmt.Errorf("website rollup: %w", werr)
	}

	return models.CombinedStats{
		TotalLeads:        tenders.TotalLeads + sites.TotalLeads,
		TenderCount:       tenders.TotalLeads,
		WebsiteCount:      sites.TotalLeads,
		HighPriorityLeads: tenders.HighPriorityLeads + sites.HighPriorityLeads,
		TotalValue:        tenders.TotalValue,
	}, nil
}

// TenderStats is the narrower single-source dashboard view.
func (s *Service) TenderStats(ctx context.Context, region string) (models.SourceRollup, error) {
	rollup, err := s.store.TenderRollup(ctx, CompileFilter(region))
	if err != nil {
		return models.SourceRollup{}, fmt.Errorf("tender rollup: %w", err)
	}
	return rollup, nil
}

// WebsiteStats is the website-source counterpart of TenderStats.
// Website records carry no monetary field, so TotalValue stays zero.
func (s *Service) WebsiteStats(ctx context.Context, region string) (models.SourceRollup, error) {
	rollup, err := s.store.WebsiteRollup(ctx, CompileFilter(region))
	if err != nil {
		return models.SourceRollup{}, fmt.Errorf("website rollup: %w", err)
	}
	return rollup, nil
}
