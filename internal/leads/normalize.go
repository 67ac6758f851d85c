package leads

import (
	"strings"

	"github.com/arjun/lead-intel/internal/models"
)

// DefaultWebsiteDescription is substituted when a website record carries
// no partnership overview text.
const DefaultWebsiteDescription = "Partnership opportunity"

// FromTender maps a raw tender record onto the canonical Lead shape.
// Pure and total: missing optional fields pass through as-is, nothing is
// validated or mutated here.
func FromTender(t models.Tender) models.Lead {
	return models.Lead{
		ID:                  t.LeadID,
		Type:                models.LeadTypeTender,
		CompanyName:         t.CompanyName,
		Title:               t.Title,
		Description:         t.Description,
		Location:            t.Location,
		OverallScore:        t.OverallScore,
		UrgencyScore:        t.UrgencyScore,
		ConfidenceScore:     t.ConfidenceScore,
		SignalStrength:      t.SignalStrength,
		IndustrySector:      t.IndustrySector,
		NextAction:          t.NextAction,
		SourceURL:           t.SourceURL,
		DiscoveryDate:       t.DiscoveryDate,
		Deadline:            t.Deadline,
		EstimatedValue:      t.EstimatedValue,
		ProductsRecommended: t.ProductsRecommended,
		Signals:             t.Signals,
	}
}

// FromWebsite maps a raw website record onto the canonical Lead shape.
// Websites carry no headline of their own, so the title is synthesized
// from the company name and the description falls back to a fixed
// placeholder when the partnership overview is absent.
func FromWebsite(w models.Website) models.Lead {
	description := DefaultWebsiteDescription
	if w.Partnership != nil && strings.TrimSpace(w.Partnership.Overview) != "" {
		description = w.Partnership.Overview
	}

	return models.Lead{
		ID:              w.CompanyID,
		Type:            models.LeadTypeWebsite,
		CompanyName:     w.CompanyName,
		Title:           w.CompanyName + " - Business Opportunity",
		Description:     description,
		Location:        w.State,
		State:           w.State,
		OverallScore:    w.OverallScore,
		UrgencyScore:    w.UrgencyScore,
		ConfidenceScore: w.ConfidenceScore,
		SignalStrength:  w.SignalStrength,
		IndustrySector:  w.IndustrySector,
		NextAction:      w.NextAction,
		SourceURL:       w.SourceURL,
		DiscoveryDate:   w.DiscoveryDate,
		Signals:         w.Signals,
		Projects:        w.Projects,
	}
}
