package leads

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/arjun/lead-intel/internal/models"
)

// ErrNotFound is returned when a lead id exists in neither source.
var ErrNotFound = errors.New("lead not found")

// Store is the read surface the pipeline needs from durable storage.
// The region pattern passed down is whatever RegionFilter compiled, so
// implementations only have to apply it, not interpret regions.
type Store interface {
	TendersByRegion(ctx context.Context, f RegionFilter) ([]models.Tender, error)
	WebsitesByRegion(ctx context.Context, f RegionFilter) ([]models.Website, error)
	TenderByLeadID(ctx context.Context, id string) (*models.Tender, error)
	WebsiteByCompanyID(ctx context.Context, id string) (*models.Website, error)
	TenderRollup(ctx context.Context, f RegionFilter) (models.SourceRollup, error)
	WebsiteRollup(ctx context.Context, f RegionFilter) (models.SourceRollup, error)
}

// Service runs the aggregation pipeline: filter, fetch both sources,
// normalize, merge. It holds no state beyond the store handle; every
// call is scoped entirely by its arguments.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Aggregate returns the merged, normalized lead set for a region. The
// two source fetches run concurrently and both must succeed; a partial
// result would silently under-report leads, so either failure fails the
// whole call. Output order is tenders then websites, each in store
// order, which keeps tie-breaking deterministic for the ranker.
func (s *Service) Aggregate(ctx context.Context, region string) ([]models.Lead, error) {
	filter := CompileFilter(region)

	var (
		wg       sync.WaitGroup
		tenders  []models.Tender
		websites []models.Website
		terr     error
		werr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		tenders, terr = s.store.TendersByRegion(ctx, filter)
	}()
	go func() {
		defer wg.Done()
		websites, werr = s.store.WebsitesByRegion(ctx, filter)
	}()
	wg.Wait()

	if terr != nil {
		return nil, fmt.Errorf("fetch tenders: %w", terr)
	}
	if werr != nil {
		return nil, fmt.Errorf("fetch websites: %w", werr)
	}

	merged := make([]models.Lead, 0, len(tenders)+len(websites))
	for _, t := range tenders {
		merged = append(merged, FromTender(t))
	}
	for _, w := range websites {
		merged = append(merged, FromWebsite(w))
	}
	return merged, nil
}

// Lookup resolves a single lead by id, trying the tender source first
// and falling back to websites, mirroring how ids were assigned at
// discovery time (the two id spaces do not collide in practice).
func (s *Service) Lookup(ctx context.Context, id string) (models.Lead, error) {
	tender, err := s.store.TenderByLeadID(ctx, id)
	if err == nil {
		return FromTender(*tender), nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Lead{}, fmt.Errorf("lookup tender %s: %w", id, err)
	}

	website, err := s.store.WebsiteByCompanyID(ctx, id)
	if err == nil {
		return FromWebsite(*website), nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Lead{}, fmt.Errorf("lookup website %s: %w", id, err)
	}
	return models.Lead{}, ErrNotFound
}
