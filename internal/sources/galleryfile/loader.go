package galleryfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the catalog YAML files.
type Loader struct {
	entriesPath string
	tagsPath    string
}

// NewLoader creates a loader for the given entries.yaml and tags.yaml.
func NewLoader(entriesPath, tagsPath string) *Loader {
	return &Loader{
		entriesPath: entriesPath,
		tagsPath:    tagsPath,
	}
}

// LoadEntries reads and parses entries.yaml.
func (l *Loader) LoadEntries() (*EntriesConfig, error) {
	data, err := os.ReadFile(l.entriesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries file: %w", err)
	}

	var config EntriesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse entries yaml: %w", err)
	}
	if len(config.Entries) == 0 {
		return nil, fmt.Errorf("no entries found in %s", l.entriesPath)
	}

	return &config, nil
}

// LoadTags reads and parses tags.yaml.
func (l *Loader) LoadTags() (*TagsConfig, error) {
	data, err := os.ReadFile(l.tagsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags file: %w", err)
	}

	var config TagsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tags yaml: %w", err)
	}
	if len(config.Tags) == 0 {
		return nil, fmt.Errorf("no tags found in %s", l.tagsPath)
	}

	return &config, nil
}
