package ingest

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed config/sources.yaml
var sourcesYAML embed.FS

// Registry declares the dataset files the bulk loader knows about.
type Registry struct {
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig describes one dataset produced by the external scraper.
type SourceConfig struct {
	ID          string `yaml:"id"`
	Kind        string `yaml:"kind"` // "tender" or "website"
	Path        string `yaml:"path"`
	Description string `yaml:"description,omitempty"`
}

// LoadRegistry reads the embedded registry, or the file named by
// INGEST_SOURCES_PATH when operators maintain their own copy. Env vars
// in path values are expanded so datasets can live under a data root.
func LoadRegistry() (*Registry, error) {
	var raw []byte
	var err error

	if path := os.Getenv("INGEST_SOURCES_PATH"); path != "" {
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read registry %s: %w", path, err)
		}
	} else {
		raw, err = sourcesYAML.ReadFile("config/sources.yaml")
		if err != nil {
			return nil, fmt.Errorf("read embedded registry: %w", err)
		}
	}

	var reg Registry
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	for _, src := range reg.Sources {
		if src.Kind != KindTender && src.Kind != KindWebsite {
			return nil, fmt.Errorf("source %s: unknown kind %q", src.ID, src.Kind)
		}
	}
	return &reg, nil
}

// Find returns the source with the given id.
func (r *Registry) Find(id string) (SourceConfig, bool) {
	for _, src := range r.Sources {
		if src.ID == id {
			return src, true
		}
	}
	return SourceConfig{}, false
}
