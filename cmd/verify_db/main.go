package main

import (
	"context"
	"fmt"
	"log"

	"github.com/arjun/lead-intel/internal/db"
)

func main() {
	ctx := context.Background()
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	var tenders, websites, scored, highSignal int
	err = pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM tenders),
			(SELECT count(*) FROM websites),
			(SELECT count(*) FROM tenders WHERE overall_score IS NOT NULL) +
			(SELECT count(*) FROM websites WHERE overall_score IS NOT NULL),
			(SELECT count(*) FROM tenders WHERE signal_strength = 'high') +
			(SELECT count(*) FROM websites WHERE signal_strength = 'high')
	`).Scan(&tenders, &websites, &scored, &highSignal)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	fmt.Printf("Tenders: %d\n", tenders)
	fmt.Printf("Websites: %d\n", websites)
	fmt.Printf("With score: %d\n", scored)
	fmt.Printf("High signal: %d\n", highSignal)
}
