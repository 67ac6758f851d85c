package leads

import (
	"strings"
	"testing"

	"github.com/arjun/lead-intel/internal/models"
)

func digestLeads(n int) []models.Lead {
	var out []models.Lead
	for i := 0; i < n; i++ {
		score := float64(n-i) / float64(n)
		out = append(out, models.Lead{
			ID:           string(rune('a' + i)),
			CompanyName:  "Company " + string(rune('A'+i)),
			Title:        "Opportunity " + string(rune('A'+i)),
			OverallScore: &score,
		})
	}
	return out
}

func TestFormatDigest_HeaderAndCount(t *testing.T) {
	text := FormatDigest(digestLeads(7), "Delhi")

	if !strings.Contains(text, "New Leads Alert - Delhi") {
		t.Fatalf("missing region header:\n%s", text)
	}
	if !strings.Contains(text, "Found 7 leads") {
		t.Fatalf("header must carry the full count, not the top-N:\n%s", text)
	}
}

func TestFormatDigest_TopFiveOnly(t *testing.T) {
	text := FormatDigest(digestLeads(7), "Delhi")

	if !strings.Contains(text, "5. *Company E*") {
		t.Fatalf("fifth lead missing:\n%s", text)
	}
	if strings.Contains(text, "Company F") {
		t.Fatalf("sixth lead must not appear:\n%s", text)
	}
}

func TestFormatDigest_ScoreAsRoundedPercent(t *testing.T) {
	score := 0.876
	text := FormatDigest([]models.Lead{{CompanyName: "X", Title: "T", OverallScore: &score}}, "Delhi")
	if !strings.Contains(text, "Score: 88%") {
		t.Fatalf("expected rounded percentage:\n%s", text)
	}

	text = FormatDigest([]models.Lead{{CompanyName: "X", Title: "T"}}, "Delhi")
	if !strings.Contains(text, "Score: 0%") {
		t.Fatalf("missing score must render as 0%%:\n%s", text)
	}
}

func TestFormatDigest_SnippetTruncationAndFallback(t *testing.T) {
	long := strings.Repeat("x", 80)
	text := FormatDigest([]models.Lead{{CompanyName: "X", Description: long}}, "Delhi")
	if strings.Contains(text, long) {
		t.Fatal("description must be truncated to 50 characters")
	}
	if !strings.Contains(text, strings.Repeat("x", 50)+"...") {
		t.Fatalf("expected 50-char snippet:\n%s", text)
	}

	text = FormatDigest([]models.Lead{{CompanyName: "X"}}, "Delhi")
	if !strings.Contains(text, "Business Opportunity") {
		t.Fatalf("expected placeholder when title and description are absent:\n%s", text)
	}
}
