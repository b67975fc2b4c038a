package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SearchesFile struct {
	Searches []SavedSearch `yaml:"searches"`
}

// OverlaySearches replaces the poller's saved searches with the contents
// of a standalone searches file, when one exists.
func OverlaySearches(cfg *Config, searchesPath string) error {
	b, err := os.ReadFile(searchesPath)
	if err != nil {
		// Missing searches file should not kill startup
		return nil
	}

	var sf SearchesFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return err
	}

	if len(sf.Searches) > 0 {
		cfg.Polling.Searches = sf.Searches
	}
	return nil
}
