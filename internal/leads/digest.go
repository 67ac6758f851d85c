package leads

import (
	"fmt"
	"math"
	"strings"

	"github.com/arjun/lead-intel/internal/models"
)

const (
	digestTopN       = 5
	digestSnippetLen = 50
	digestFallback   = "Business Opportunity"
)

// FormatDigest renders a short text summary of an already-ranked lead
// collection for outbound delivery (WhatsApp-style markdown). It takes
// the top 5 entries and is pure formatting: no transport concerns here.
func FormatDigest(ranked []models.Lead, region string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 *New Leads Alert - %s*\n\n", region)
	fmt.Fprintf(&b, "Found %d leads in your state!\n\n", len(ranked))
	b.WriteString("*Top Opportunities:*\n\n")

	top := ranked
	if len(top) > digestTopN {
		top = top[:digestTopN]
	}
	for i, lead := range top {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, lead.CompanyName)
		fmt.Fprintf(&b, "   Score: %d%%\n", int(math.Round(lead.Score()*100)))
		fmt.Fprintf(&b, "   %s...\n\n", digestSnippet(lead))
	}

	b.WriteString("\nLog in to the dashboard to view all leads.")
	return b.String()
}

func digestSnippet(l models.Lead) string {
	if s := strings.TrimSpace(l.Title); s != "" {
		return truncate(s, digestSnippetLen)
	}
	if s := strings.TrimSpace(l.Description); s != "" {
		return truncate(s, digestSnippetLen)
	}
	return digestFallback
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
