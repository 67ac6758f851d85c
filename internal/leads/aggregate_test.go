package leads

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/arjun/lead-intel/internal/models"
)

// fakeStore filters in memory with the same compiled predicates the SQL
// layer translates to ILIKE, so pipeline tests exercise the real filter.
type fakeStore struct {
	tenders  []models.Tender
	websites []models.Website

	tenderErr  error
	websiteErr error
}

func (f *fakeStore) TendersByRegion(_ context.Context, filter RegionFilter) ([]models.Tender, error) {
	if f.tenderErr != nil {
		return nil, f.tenderErr
	}
	var out []models.Tender
	for _, t := range f.tenders {
		if filter.MatchTender(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) WebsitesByRegion(_ context.Context, filter RegionFilter) ([]models.Website, error) {
	if f.websiteErr != nil {
		return nil, f.websiteErr
	}
	var out []models.Website
	for _, w := range f.websites {
		if filter.MatchWebsite(w) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) TenderByLeadID(_ context.Context, id string) (*models.Tender, error) {
	for _, t := range f.tenders {
		if t.LeadID == id {
			tender := t
			return &tender, nil
		}
	}
	return nil, fmt.Errorf("tender %s: %w", id, ErrNotFound)
}

func (f *fakeStore) WebsiteByCompanyID(_ context.Context, id string) (*models.Website, error) {
	for _, w := range f.websites {
		if w.CompanyID == id {
			website := w
			return &website, nil
		}
	}
	return nil, fmt.Errorf("website %s: %w", id, ErrNotFound)
}

func (f *fakeStore) TenderRollup(_ context.Context, filter RegionFilter) (models.SourceRollup, error) {
	if f.tenderErr != nil {
		return models.SourceRollup{}, f.tenderErr
	}
	var r models.SourceRollup
	var scoreSum float64
	for _, t := range f.tenders {
		if !filter.MatchTender(t) {
			continue
		}
		r.TotalLeads++
		if t.SignalStrength == "high" {
			r.HighPriorityLeads++
		}
		if t.EstimatedValue != nil {
			r.TotalValue += *t.EstimatedValue
		}
		if t.OverallScore != nil {
			scoreSum += *t.OverallScore
		}
	}
	if r.TotalLeads > 0 {
		r.AverageScore = scoreSum / float64(r.TotalLeads)
	}
	return r, nil
}

func (f *fakeStore) WebsiteRollup(_ context.Context, filter RegionFilter) (models.SourceRollup, error) {
	if f.websiteErr != nil {
		return models.SourceRollup{}, f.websiteErr
	}
	var r models.SourceRollup
	var scoreSum float64
	for _, w := range f.websites {
		if !filter.MatchWebsite(w) {
			continue
		}
		r.TotalLeads++
		if w.SignalStrength == "high" {
			r.HighPriorityLeads++
		}
		if w.OverallScore != nil {
			scoreSum += *w.OverallScore
		}
	}
	if r.TotalLeads > 0 {
		r.AverageScore = scoreSum / float64(r.TotalLeads)
	}
	return r, nil
}

func delhiStore() *fakeStore {
	return &fakeStore{
		tenders: []models.Tender{
			{LeadID: "T1", CompanyName: "Acme", Location: "Delhi", OverallScore: floatPtr(0.9), EstimatedValue: floatPtr(1000000)},
		},
		websites: []models.Website{
			{CompanyID: "W1", CompanyName: "Bharat", State: "Delhi", OverallScore: floatPtr(0.5)},
		},
	}
}

func TestAggregate_MergesBothSources(t *testing.T) {
	service := NewService(delhiStore())

	merged, err := service.Aggregate(context.Background(), "Delhi")
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(merged))
	}

	page := RankAndPage(merged, 1, 10)
	if page.Items[0].ID != "T1" || page.Items[1].ID != "W1" {
		t.Fatalf("expected [T1 W1], got [%s %s]", page.Items[0].ID, page.Items[1].ID)
	}
}

func TestAggregate_UnknownRegionIsEmpty(t *testing.T) {
	service := NewService(delhiStore())

	merged, err := service.Aggregate(context.Background(), "Uttarakhand")
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if len(merged) != 0 {
		t.Fatalf("expected no leads, got %d", len(merged))
	}
}

func TestAggregate_FailsWhenEitherSourceFails(t *testing.T) {
	boom := errors.New("connection reset")

	for _, store := range []*fakeStore{
		{tenderErr: boom, websites: delhiStore().websites},
		{websiteErr: boom, tenders: delhiStore().tenders},
	} {
		if _, err := NewService(store).Aggregate(context.Background(), ""); !errors.Is(err, boom) {
			t.Fatalf("expected upstream failure to propagate, got %v", err)
		}
	}
}

func TestAggregate_CountMatchesPerSourceCounts(t *testing.T) {
	store := &fakeStore{
		tenders: []models.Tender{
			{LeadID: "T1", Location: "Delhi"},
			{LeadID: "T2", Location: "New Delhi, NCR"},
			{LeadID: "T3", Location: "Chennai"},
		},
		websites: []models.Website{
			{CompanyID: "W1", State: "Delhi"},
			{CompanyID: "W2", State: "Tamil Nadu"},
		},
	}
	service := NewService(store)

	for _, region := range []string{"", "Delhi", "Chennai", "Nowhere"} {
		merged, err := service.Aggregate(context.Background(), region)
		if err != nil {
			t.Fatalf("aggregate(%q): %v", region, err)
		}
		filter := CompileFilter(region)
		tenders, _ := store.TendersByRegion(context.Background(), filter)
		websites, _ := store.WebsitesByRegion(context.Background(), filter)
		if len(merged) != len(tenders)+len(websites) {
			t.Fatalf("aggregate(%q): got %d, want %d+%d", region, len(merged), len(tenders), len(websites))
		}
	}
}

func TestLookup_TriesTenderThenWebsite(t *testing.T) {
	service := NewService(delhiStore())

	lead, err := service.Lookup(context.Background(), "T1")
	if err != nil {
		t.Fatalf("lookup T1: %v", err)
	}
	if lead.Type != models.LeadTypeTender {
		t.Fatalf("expected tender, got %s", lead.Type)
	}

	lead, err = service.Lookup(context.Background(), "W1")
	if err != nil {
		t.Fatalf("lookup W1: %v", err)
	}
	if lead.Type != models.LeadTypeWebsite {
		t.Fatalf("expected website, got %s", lead.Type)
	}

	if _, err := service.Lookup(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStats_CombinedView(t *testing.T) {
	store := &fakeStore{
		tenders: []models.Tender{
			{LeadID: "T1", Location: "Delhi", SignalStrength: "high", OverallScore: floatPtr(0.9), EstimatedValue: floatPtr(1000000)},
			{LeadID: "T2", Location: "Delhi", SignalStrength: "low", EstimatedValue: floatPtr(250000)},
			{LeadID: "T3", Location: "Chennai", SignalStrength: "high", EstimatedValue: floatPtr(999)},
		},
		websites: []models.Website{
			{CompanyID: "W1", State: "Delhi", SignalStrength: "high", OverallScore: floatPtr(0.5)},
			{CompanyID: "W2", State: "Delhi", SignalStrength: "medium"},
		},
	}
	service := NewService(store)

	stats, err := service.Stats(context.Background(), "Delhi")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TenderCount != 2 || stats.WebsiteCount != 2 || stats.TotalLeads != 4 {
		t.Fatalf("counts: %+v", stats)
	}
	if stats.HighPriorityLeads != 2 {
		t.Fatalf("highPriorityLeads: got %d want 2", stats.HighPriorityLeads)
	}
	if stats.TotalValue != 1250000 {
		t.Fatalf("totalValue: got %f want 1250000", stats.TotalValue)
	}

	merged, _ := service.Aggregate(context.Background(), "Delhi")
	if stats.TotalLeads != len(merged) {
		t.Fatalf("stats totalLeads (%d) must equal aggregate length (%d)", stats.TotalLeads, len(merged))
	}
}

func TestStats_EmptyRegionIsAllZero(t *testing.T) {
	service := NewService(delhiStore())

	stats, err := service.Stats(context.Background(), "Uttarakhand")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalLeads != 0 || stats.HighPriorityLeads != 0 || stats.TotalValue != 0 {
		t.Fatalf("expected all-zero stats, got %+v", stats)
	}
}

func TestStats_AverageScoreAvoidsDivisionByZero(t *testing.T) {
	service := NewService(&fakeStore{})

	rollup, err := service.TenderStats(context.Background(), "")
	if err != nil {
		t.Fatalf("tender stats: %v", err)
	}
	if rollup.AverageScore != 0 {
		t.Fatalf("averageScore over empty set must be 0, got %f", rollup.AverageScore)
	}
}
