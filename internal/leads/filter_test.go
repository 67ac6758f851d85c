package leads

import (
	"testing"

	"github.com/arjun/lead-intel/internal/models"
)

func TestCompileFilter_EmptyMatchesAll(t *testing.T) {
	for _, region := range []string{"", "   "} {
		f := CompileFilter(region)
		if !f.All() {
			t.Fatalf("region %q should match all", region)
		}
		if !f.MatchTender(models.Tender{Location: "anywhere"}) {
			t.Fatal("empty filter must match every tender")
		}
		if !f.MatchWebsite(models.Website{}) {
			t.Fatal("empty filter must match every website")
		}
		if f.Pattern() != "" {
			t.Fatalf("empty filter pattern should be empty, got %q", f.Pattern())
		}
	}
}

func TestCompileFilter_CaseInsensitiveSubstring(t *testing.T) {
	f := CompileFilter("delhi")

	if !f.MatchTender(models.Tender{Location: "New Delhi, NCR"}) {
		t.Fatal("substring match against tender location failed")
	}
	if !f.MatchWebsite(models.Website{State: "DELHI"}) {
		t.Fatal("case-insensitive match against website state failed")
	}
	if f.MatchTender(models.Tender{Location: "Chennai"}) {
		t.Fatal("unrelated location must not match")
	}
	if f.MatchWebsite(models.Website{State: ""}) {
		t.Fatal("empty state must not match a concrete region")
	}
}

func TestRegionFilter_PatternEscapesLikeMetachars(t *testing.T) {
	cases := map[string]string{
		"Delhi":    "%Delhi%",
		"100%":     `%100\%%`,
		"a_b":      `%a\_b%`,
		`back\slA`: `%back\\slA%`,
	}
	for region, want := range cases {
		if got := CompileFilter(region).Pattern(); got != want {
			t.Fatalf("pattern for %q: got %q want %q", region, got, want)
		}
	}
}
