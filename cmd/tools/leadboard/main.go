package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/arjun/lead-intel/internal/db"
	"github.com/arjun/lead-intel/internal/ingest"
	"github.com/arjun/lead-intel/internal/leads"
)

func main() {
	state := flag.String("state", "", "Region filter (substring match)")
	limit := flag.Int("limit", 20, "Number of leads to show")
	flag.Parse()

	ctx := context.Background()
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	service := leads.NewService(db.NewStore(pool))
	merged, err := service.Aggregate(ctx, *state)
	if err != nil {
		log.Fatalf("Aggregation failed: %v", err)
	}

	page := leads.RankAndPage(merged, 1, *limit)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Company", "Type", "Score", "Signal", "Location", "Title"})

	for i, lead := range page.Items {
		t.AppendRow(table.Row{
			i + 1,
			lead.CompanyName,
			lead.Type,
			fmt.Sprintf("%.2f", lead.Score()),
			lead.SignalStrength,
			ingest.TruncateText(lead.Location, 24),
			ingest.TruncateText(lead.Title, 48),
		})
	}
	t.Render()

	fmt.Printf("\n%d of %d leads\n", len(page.Items), page.Total)
}
