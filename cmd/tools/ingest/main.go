package main

import (
	"context"
	"flag"
	"log"

	"github.com/arjun/lead-intel/internal/db"
	"github.com/arjun/lead-intel/internal/ingest"
)

func main() {
	sourceID := flag.String("source", "", "Source ID to load (default: all registered sources)")
	path := flag.String("file", "", "Override the dataset path for the selected source")
	flag.Parse()

	if *path != "" && *sourceID == "" {
		log.Fatal("-file requires -source")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	registry, err := ingest.LoadRegistry()
	if err != nil {
		log.Fatalf("Failed to load source registry: %v", err)
	}

	loader := ingest.NewLoader(db.NewStore(pool))

	if *sourceID == "" {
		results, err := loader.LoadAll(ctx, registry)
		if err != nil {
			log.Fatalf("Ingestion failed: %v", err)
		}
		for _, stats := range results {
			log.Printf("Finished %s: loaded %d, skipped %d", stats.SourceID, stats.Loaded, stats.Skipped)
		}
		return
	}

	src, ok := registry.Find(*sourceID)
	if !ok {
		log.Fatalf("Unknown source ID: %s", *sourceID)
	}
	if *path != "" {
		src.Path = *path
	}

	stats, err := loader.LoadSource(ctx, src)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}
	log.Printf("Finished %s: loaded %d, skipped %d", stats.SourceID, stats.Loaded, stats.Skipped)
}
