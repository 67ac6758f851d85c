package leads

import (
	"sort"

	"github.com/arjun/lead-intel/internal/models"
)

// Page is one window of a ranked lead collection.
type Page struct {
	Items      []models.Lead `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"limit"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
}

// Rank returns a copy of leads sorted by overall score descending.
// Missing scores sort as 0; ties keep input order (stable), so callers
// that need reproducible output must hand in a deterministic order.
func Rank(leads []models.Lead) []models.Lead {
	ranked := make([]models.Lead, len(leads))
	copy(ranked, leads)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})
	return ranked
}

// RankAndPage ranks the collection and extracts one page window.
// page and pageSize must already be clamped to >= 1 by the caller.
// Out-of-range pages yield an empty Items slice, never an error.
func RankAndPage(leads []models.Lead, page, pageSize int) Page {
	ranked := Rank(leads)

	total := len(ranked)
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	items := []models.Lead{}
	start := (page - 1) * pageSize
	if start < total {
		end := start + pageSize
		if end > total {
			end = total
		}
		items = ranked[start:end]
	}

	return Page{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
