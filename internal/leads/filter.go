package leads

import (
	"strings"

	"github.com/arjun/lead-intel/internal/models"
)

// RegionFilter is a compiled region scope. The two sources name their
// region field differently (tender "location" is free text, website
// "state" is a cleaner field); both get the same case-insensitive
// substring treatment, which is imprecise for multi-place-name locations
// but matches how the data was collected. A canonical region code would
// remove the ambiguity.
type RegionFilter struct {
	region string
}

// CompileFilter builds a RegionFilter. An empty or whitespace-only
// region matches every record of both sources.
func CompileFilter(region string) RegionFilter {
	return RegionFilter{region: strings.TrimSpace(region)}
}

// All reports whether the filter matches all records.
func (f RegionFilter) All() bool {
	return f.region == ""
}

// Region returns the raw region string the filter was compiled from.
func (f RegionFilter) Region() string {
	return f.region
}

// MatchTender tests a tender's free-text location field.
func (f RegionFilter) MatchTender(t models.Tender) bool {
	return f.matches(t.Location)
}

// MatchWebsite tests a website record's state field.
func (f RegionFilter) MatchWebsite(w models.Website) bool {
	return f.matches(w.State)
}

func (f RegionFilter) matches(field string) bool {
	if f.All() {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(f.region))
}

// Pattern returns the ILIKE pattern equivalent of the in-memory match,
// with LIKE metacharacters escaped, or "" when the filter matches all.
// Store queries use this so DB-side and in-memory filtering agree.
func (f RegionFilter) Pattern() string {
	if f.All() {
		return ""
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(f.region)
	return "%" + escaped + "%"
}
