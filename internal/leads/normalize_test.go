package leads

import (
	"reflect"
	"testing"
	"time"

	"github.com/arjun/lead-intel/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestFromTender_MapsAllFields(t *testing.T) {
	deadline := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	tender := models.Tender{
		LeadID:              "T1",
		CompanyName:         "Acme Refineries",
		Title:               "Supply of industrial lubricants",
		Description:         "Annual rate contract for lubricants",
		Location:            "Mumbai, Maharashtra",
		OverallScore:        floatPtr(0.9),
		UrgencyScore:        floatPtr(0.7),
		SignalStrength:      "high",
		IndustrySector:      "Refining",
		EstimatedValue:      floatPtr(1000000),
		Deadline:            &deadline,
		ProductsRecommended: []string{"Grease X"},
		Signals:             []string{"tender_published"},
	}

	lead := FromTender(tender)

	if lead.ID != "T1" || lead.Type != models.LeadTypeTender {
		t.Fatalf("unexpected identity: %s/%s", lead.ID, lead.Type)
	}
	if lead.Title != tender.Title || lead.Description != tender.Description {
		t.Fatalf("title/description must pass through unchanged")
	}
	if lead.Location != "Mumbai, Maharashtra" {
		t.Fatalf("expected tender location, got %q", lead.Location)
	}
	if lead.EstimatedValue == nil || *lead.EstimatedValue != 1000000 {
		t.Fatal("estimated_value must pass through")
	}
	if lead.Deadline == nil || !lead.Deadline.Equal(deadline) {
		t.Fatal("deadline must pass through")
	}
	if len(lead.Projects) != 0 {
		t.Fatal("tender lead must not carry website passthrough fields")
	}
}

func TestFromWebsite_SynthesizesTitleAndDescription(t *testing.T) {
	website := models.Website{
		CompanyID:   "W1",
		CompanyName: "Bharat Chemicals",
		State:       "Gujarat",
		Partnership: &models.Partnership{Overview: "Expanding petrochemical capacity"},
	}

	lead := FromWebsite(website)

	if lead.Title != "Bharat Chemicals - Business Opportunity" {
		t.Fatalf("unexpected synthesized title: %q", lead.Title)
	}
	if lead.Description != "Expanding petrochemical capacity" {
		t.Fatalf("expected partnership overview, got %q", lead.Description)
	}
	if lead.Location != "Gujarat" || lead.State != "Gujarat" {
		t.Fatalf("website lead location must come from state, got %q/%q", lead.Location, lead.State)
	}
}

func TestFromWebsite_DescriptionFallback(t *testing.T) {
	cases := []struct {
		name    string
		website models.Website
	}{
		{"nil partnership", models.Website{CompanyID: "W1", CompanyName: "X"}},
		{"empty overview", models.Website{CompanyID: "W1", CompanyName: "X", Partnership: &models.Partnership{}}},
		{"whitespace overview", models.Website{CompanyID: "W1", CompanyName: "X", Partnership: &models.Partnership{Overview: "  "}}},
	}
	for _, tc := range cases {
		if got := FromWebsite(tc.website).Description; got != DefaultWebsiteDescription {
			t.Fatalf("%s: expected placeholder, got %q", tc.name, got)
		}
	}
}

func TestFromTender_MissingScoresPassThroughNil(t *testing.T) {
	lead := FromTender(models.Tender{LeadID: "T1", CompanyName: "X"})
	if lead.OverallScore != nil {
		t.Fatal("absent score must stay absent, not become 0")
	}
	if lead.Score() != 0 {
		t.Fatal("absent score must rank as 0")
	}
}

func TestNormalize_IsIdempotentAndPure(t *testing.T) {
	website := models.Website{
		CompanyID:    "W1",
		CompanyName:  "Bharat Chemicals",
		State:        "Gujarat",
		OverallScore: floatPtr(0.5),
		Partnership:  &models.Partnership{Overview: "Overview"},
	}
	before := website

	first := FromWebsite(website)
	second := FromWebsite(website)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("normalize must be deterministic")
	}
	if !reflect.DeepEqual(website, before) {
		t.Fatal("normalize must not mutate its input")
	}
}
