package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/arjun/lead-intel/internal/models"
)

const (
	KindTender  = "tender"
	KindWebsite = "website"
)

// Store is the write surface the loader needs. Replace semantics:
// truncate then insert, so a reload is always a full snapshot.
type Store interface {
	ReplaceTenders(ctx context.Context, tenders []models.Tender) error
	ReplaceWebsites(ctx context.Context, websites []models.Website) error
}

// LoadStats summarizes one dataset load.
type LoadStats struct {
	SourceID string
	Kind     string
	Loaded   int
	Skipped  int
}

// Loader reads scraper-exported JSON datasets into the store.
type Loader struct {
	store Store
}

func NewLoader(store Store) *Loader {
	return &Loader{store: store}
}

// LoadSource reads, cleans and stores one dataset.
func (l *Loader) LoadSource(ctx context.Context, src SourceConfig) (LoadStats, error) {
	raw, err := os.ReadFile(src.Path)
	if err != nil {
		return LoadStats{}, fmt.Errorf("read dataset %s: %w", src.Path, err)
	}

	stats := LoadStats{SourceID: src.ID, Kind: src.Kind}
	switch src.Kind {
	case KindTender:
		tenders, skipped, err := ParseTenders(raw)
		if err != nil {
			return stats, fmt.Errorf("parse %s: %w", src.ID, err)
		}
		if err := l.store.ReplaceTenders(ctx, tenders); err != nil {
			return stats, fmt.Errorf("store %s: %w", src.ID, err)
		}
		stats.Loaded, stats.Skipped = len(tenders), skipped
	case KindWebsite:
		websites, skipped, err := ParseWebsites(raw)
		if err != nil {
			return stats, fmt.Errorf("parse %s: %w", src.ID, err)
		}
		if err := l.store.ReplaceWebsites(ctx, websites); err != nil {
			return stats, fmt.Errorf("store %s: %w", src.ID, err)
		}
		stats.Loaded, stats.Skipped = len(websites), skipped
	default:
		return stats, fmt.Errorf("source %s: unknown kind %q", src.ID, src.Kind)
	}

	log.Printf("loaded %s: %d records (%d skipped)", src.ID, stats.Loaded, stats.Skipped)
	return stats, nil
}

// LoadAll loads every registered dataset. The first failure aborts the
// run; a half-loaded snapshot is fine since each table reload is atomic.
func (l *Loader) LoadAll(ctx context.Context, reg *Registry) ([]LoadStats, error) {
	var all []LoadStats
	for _, src := range reg.Sources {
		stats, err := l.LoadSource(ctx, src)
		if err != nil {
			return all, err
		}
		all = append(all, stats)
	}
	return all, nil
}

// ParseTenders decodes a tender dataset, cleans free-text fields and
// drops records with no usable identity. Duplicate ids keep the first
// occurrence, matching the last-export-wins contract of the scraper.
func ParseTenders(raw []byte) ([]models.Tender, int, error) {
	var records []models.Tender
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, 0, fmt.Errorf("decode tenders: %w", err)
	}

	seen := make(map[string]bool, len(records))
	out := make([]models.Tender, 0, len(records))
	skipped := 0
	for _, t := range records {
		if t.LeadID == "" || t.CompanyName == "" || seen[t.LeadID] {
			skipped++
			continue
		}
		seen[t.LeadID] = true

		t.Title = CleanText(t.Title)
		t.Description = CleanText(t.Description)
		t.NextAction = CleanText(t.NextAction)
		out = append(out, t)
	}
	return out, skipped, nil
}

// ParseWebsites is the website-source counterpart of ParseTenders.
func ParseWebsites(raw []byte) ([]models.Website, int, error) {
	var records []models.Website
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, 0, fmt.Errorf("decode websites: %w", err)
	}

	seen := make(map[string]bool, len(records))
	out := make([]models.Website, 0, len(records))
	skipped := 0
	for _, w := range records {
		if w.CompanyID == "" || w.CompanyName == "" || seen[w.CompanyID] {
			skipped++
			continue
		}
		seen[w.CompanyID] = true

		w.NextAction = CleanText(w.NextAction)
		if w.Partnership != nil {
			p := *w.Partnership
			p.Overview = CleanText(p.Overview)
			w.Partnership = &p
		}
		out = append(out, w)
	}
	return out, skipped, nil
}
