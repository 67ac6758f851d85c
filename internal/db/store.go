package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/lead-intel/internal/leads"
	"github.com/arjun/lead-intel/internal/models"
)

// Store wraps the Postgres pool with typed queries over the two raw lead
// tables. Region filters arrive pre-compiled; the store only applies the
// ILIKE pattern, it never interprets region semantics itself.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const tenderCols = `lead_id, company_name, source_url, products_recommended, product_confidence,
	industry_sector, location, facility_type, signals, signal_strength, keywords_matched,
	urgency_score, confidence_score, overall_score, title, description, deadline,
	estimated_value, tender_id, next_action, discovery_date, extraction_method, raw_context, created_at`

const websiteCols = `company_id, company_name, source_url, projects, industry_sector, location,
	facility_type, signals, signal_strength, keywords_matched, urgency_score, confidence_score,
	overall_score, next_action, discovery_date, extraction_method, partnership,
	city, state, country, location_source, location_confidence, created_at`

func scanTender(scan func(dest ...interface{}) error) (models.Tender, error) {
	var t models.Tender
	var confidenceRaw []byte

	err := scan(
		&t.LeadID, &t.CompanyName, &t.SourceURL, &t.ProductsRecommended, &confidenceRaw,
		&t.IndustrySector, &t.Location, &t.FacilityType, &t.Signals, &t.SignalStrength, &t.KeywordsMatched,
		&t.UrgencyScore, &t.ConfidenceScore, &t.OverallScore, &t.Title, &t.Description, &t.Deadline,
		&t.EstimatedValue, &t.TenderID, &t.NextAction, &t.DiscoveryDate, &t.ExtractionMethod, &t.RawContext, &t.CreatedAt,
	)
	if err != nil {
		return t, err
	}

	t.SourceType = string(models.LeadTypeTender)
	if len(confidenceRaw) > 0 {
		_ = json.Unmarshal(confidenceRaw, &t.ProductConfidence)
	}
	return t, nil
}

func scanWebsite(scan func(dest ...interface{}) error) (models.Website, error) {
	var w models.Website
	var projectsRaw, partnershipRaw []byte

	err := scan(
		&w.CompanyID, &w.CompanyName, &w.SourceURL, &projectsRaw, &w.IndustrySector, &w.Location,
		&w.FacilityType, &w.Signals, &w.SignalStrength, &w.KeywordsMatched, &w.UrgencyScore, &w.ConfidenceScore,
		&w.OverallScore, &w.NextAction, &w.DiscoveryDate, &w.ExtractionMethod, &partnershipRaw,
		&w.City, &w.State, &w.Country, &w.LocationSource, &w.LocationConfidence, &w.CreatedAt,
	)
	if err != nil {
		return w, err
	}

	w.SourceType = "company_website"
	if len(projectsRaw) > 0 {
		_ = json.Unmarshal(projectsRaw, &w.Projects)
	}
	if len(partnershipRaw) > 0 {
		var p models.Partnership
		if err := json.Unmarshal(partnershipRaw, &p); err == nil {
			w.Partnership = &p
		}
	}
	return w, nil
}

// regionClause appends the ILIKE filter for a compiled region pattern.
// Returns the clause (or "") and the next argument index.
func regionClause(f leads.RegionFilter, column string, argIdx int) (string, int) {
	if f.All() {
		return "", argIdx
	}
	return fmt.Sprintf(" AND %s ILIKE $%d", column, argIdx), argIdx + 1
}

func (s *Store) TendersByRegion(ctx context.Context, f leads.RegionFilter) ([]models.Tender, error) {
	where := "WHERE 1=1"
	var args []interface{}
	clause, _ := regionClause(f, "location", 1)
	if clause != "" {
		where += clause
		args = append(args, f.Pattern())
	}

	sql := fmt.Sprintf("SELECT %s FROM tenders %s ORDER BY created_at, lead_id", tenderCols, where)
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query tenders: %w", err)
	}
	defer rows.Close()

	var tenders []models.Tender
	for rows.Next() {
		t, err := scanTender(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan tender: %w", err)
		}
		tenders = append(tenders, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tenders iteration: %w", err)
	}
	return tenders, nil
}

func (s *Store) WebsitesByRegion(ctx context.Context, f leads.RegionFilter) ([]models.Website, error) {
	where := "WHERE 1=1"
	var args []interface{}
	clause, _ := regionClause(f, "state", 1)
	if clause != "" {
		where += clause
		args = append(args, f.Pattern())
	}

	sql := fmt.Sprintf("SELECT %s FROM websites %s ORDER BY created_at, company_id", websiteCols, where)
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query websites: %w", err)
	}
	defer rows.Close()

	var websites []models.Website
	for rows.Next() {
		w, err := scanWebsite(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}
		websites = append(websites, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("websites iteration: %w", err)
	}
	return websites, nil
}

// ListTenders is the DB-side sorted and paged view backing the
// per-source tender endpoint.
func (s *Store) ListTenders(ctx context.Context, f leads.RegionFilter, limit, offset int) ([]models.Tender, int, error) {
	where := "WHERE 1=1"
	var args []interface{}
	argIdx := 1
	clause, next := regionClause(f, "location", argIdx)
	if clause != "" {
		where += clause
		args = append(args, f.Pattern())
		argIdx = next
	}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM tenders "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tenders: %w", err)
	}

	sql := fmt.Sprintf(
		"SELECT %s FROM tenders %s ORDER BY overall_score DESC NULLS LAST, lead_id LIMIT $%d OFFSET $%d",
		tenderCols, where, argIdx, argIdx+1,
	)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenders: %w", err)
	}
	defer rows.Close()

	var tenders []models.Tender
	for rows.Next() {
		t, err := scanTender(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("scan tender: %w", err)
		}
		tenders = append(tenders, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("tenders iteration: %w", err)
	}
	if tenders == nil {
		tenders = []models.Tender{}
	}
	return tenders, total, nil
}

// ListWebsites is the DB-side sorted and paged view backing the
// per-source website endpoint.
func (s *Store) ListWebsites(ctx context.Context, f leads.RegionFilter, limit, offset int) ([]models.Website, int, error) {
	where := "WHERE 1=1"
	var args []interface{}
	argIdx := 1
	clause, next := regionClause(f, "state", argIdx)
	if clause != "" {
		where += clause
		args = append(args, f.Pattern())
		argIdx = next
	}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM websites "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count websites: %w", err)
	}

	sql := fmt.Sprintf(
		"SELECT %s FROM websites %s ORDER BY overall_score DESC NULLS LAST, company_id LIMIT $%d OFFSET $%d",
		websiteCols, where, argIdx, argIdx+1,
	)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list websites: %w", err)
	}
	defer rows.Close()

	var websites []models.Website
	for rows.Next() {
		w, err := scanWebsite(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("scan website: %w", err)
		}
		websites = append(websites, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("websites iteration: %w", err)
	}
	if websites == nil {
		websites = []models.Website{}
	}
	return websites, total, nil
}

func (s *Store) TenderByLeadID(ctx context.Context, id string) (*models.Tender, error) {
	sql := fmt.Sprintf("SELECT %s FROM tenders WHERE lead_id = $1", tenderCols)
	t, err := scanTender(s.pool.QueryRow(ctx, sql, id).Scan)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("tender %s: %w", id, leads.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tender %s: %w", id, err)
	}
	return &t, nil
}

func (s *Store) WebsiteByCompanyID(ctx context.Context, id string) (*models.Website, error) {
	sql := fmt.Sprintf("SELECT %s FROM websites WHERE company_id = $1", websiteCols)
	w, err := scanWebsite(s.pool.QueryRow(ctx, sql, id).Scan)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("website %s: %w", id, leads.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get website %s: %w", id, err)
	}
	return &w, nil
}

// TenderRollup aggregates the filtered tender population in one query.
// COALESCE keeps the averages at 0 for an empty match set.
func (s *Store) TenderRollup(ctx context.Context, f leads.RegionFilter) (models.SourceRollup, error) {
	where := "WHERE 1=1"
	var args []interface{}
	clause, _ := regionClause(f, "location", 1)
	if clause != "" {
		where += clause
		args = append(args, f.Pattern())
	}

	sql := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE signal_strength = 'high'),
		       COALESCE(AVG(overall_score), 0),
		       COALESCE(SUM(estimated_value), 0)
		FROM tenders ` + where

	var r models.SourceRollup
	if err := s.pool.QueryRow(ctx, sql, args...).Scan(&r.TotalLeads, &r.HighPriorityLeads, &r.AverageScore, &r.TotalValue); err != nil {
		return models.SourceRollup{}, fmt.Errorf("tender rollup: %w", err)
	}
	return r, nil
}

func (s *Store) WebsiteRollup(ctx context.Context, f leads.RegionFilter) (models.SourceRollup, error) {
	where := "WHERE 1=1"
	var args []interface{}
	clause, _ := regionClause(f, "state", 1)
	if clause != "" {
		where += clause
		args = append(args, f.Pattern())
	}

	sql := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE signal_strength = 'high'),
		       COALESCE(AVG(overall_score), 0)
		FROM websites ` + where

	var r models.SourceRollup
	if err := s.pool.QueryRow(ctx, sql, args...).Scan(&r.TotalLeads, &r.HighPriorityLeads, &r.AverageScore); err != nil {
		return models.SourceRollup{}, fmt.Errorf("website rollup: %w", err)
	}
	return r, nil
}

// ReplaceTenders reloads the tenders table from a fresh dataset.
// Truncate-then-insert, last write wins; the bulk ingest path is the
// only writer so the reload runs in a single transaction.
func (s *Store) ReplaceTenders(ctx context.Context, tenders []models.Tender) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE tenders"); err != nil {
		return fmt.Errorf("truncate tenders: %w", err)
	}

	sql := fmt.Sprintf(`INSERT INTO tenders (%s) VALUES
		($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,NOW())`, tenderCols)
	for _, t := range tenders {
		var confidence []byte
		if len(t.ProductConfidence) > 0 {
			confidence, _ = json.Marshal(t.ProductConfidence)
		}
		_, err := tx.Exec(ctx, sql,
			t.LeadID, t.CompanyName, t.SourceURL, t.ProductsRecommended, confidence,
			t.IndustrySector, t.Location, t.FacilityType, t.Signals, t.SignalStrength, t.KeywordsMatched,
			t.UrgencyScore, t.ConfidenceScore, t.OverallScore, t.Title, t.Description, t.Deadline,
			t.EstimatedValue, t.TenderID, t.NextAction, t.DiscoveryDate, t.ExtractionMethod, t.RawContext,
		)
		if err != nil {
			return fmt.Errorf("insert tender %s: %w", t.LeadID, err)
		}
	}

	return tx.Commit(ctx)
}

// ReplaceWebsites reloads the websites table from a fresh dataset.
func (s *Store) ReplaceWebsites(ctx context.Context, websites []models.Website) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE websites"); err != nil {
		return fmt.Errorf("truncate websites: %w", err)
	}

	sql := fmt.Sprintf(`INSERT INTO websites (%s) VALUES
		($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,NOW())`, websiteCols)
	for _, w := range websites {
		var projects, partnership []byte
		if len(w.Projects) > 0 {
			projects, _ = json.Marshal(w.Projects)
		}
		if w.Partnership != nil {
			partnership, _ = json.Marshal(w.Partnership)
		}
		_, err := tx.Exec(ctx, sql,
			w.CompanyID, w.CompanyName, w.SourceURL, projects, w.IndustrySector, w.Location,
			w.FacilityType, w.Signals, w.SignalStrength, w.KeywordsMatched, w.UrgencyScore, w.ConfidenceScore,
			w.OverallScore, w.NextAction, w.DiscoveryDate, w.ExtractionMethod, partnership,
			w.City, w.State, w.Country, w.LocationSource, w.LocationConfidence,
		)
		if err != nil {
			return fmt.Errorf("insert website %s: %w", w.CompanyID, err)
		}
	}

	return tx.Commit(ctx)
}
