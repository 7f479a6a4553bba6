// Package store provides loading and saving of matcher reference data.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"ptofunds/reconcile/internal/logging"
	"ptofunds/reconcile/internal/normalize"
	"ptofunds/reconcile/internal/strsim"
)

// AliasStore maps submitted vendor names to their canonical forms, backed by
// a YAML file maintained alongside the application configuration. Treasurers
// record aliases once ("WAL-MART #2038" -> "Walmart") and every later run
// benefits.
type AliasStore struct {
	file    string
	aliases map[string]string // normalized alias -> canonical name
	fuzzy   float64           // minimum similarity for fuzzy resolution
	log     logging.Logger
}

// aliasFile is the on-disk YAML shape.
type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// NewAliasStore creates a store reading from the given YAML file. A fuzzy
// threshold of 0 disables fuzzy resolution.
func NewAliasStore(file string, fuzzyThreshold float64, log logging.Logger) *AliasStore {
	return &AliasStore{
		file:    file,
		aliases: make(map[string]string),
		fuzzy:   fuzzyThreshold,
		log:     log,
	}
}

// FindConfigFile looks for a configuration file in standard locations.
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "reconcile", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load reads the alias file. A missing file is not an error: the store just
// resolves every vendor to itself.
func (s *AliasStore) Load() error {
	path, err := FindConfigFile(s.file)
	if err != nil {
		s.log.WithField(logging.FieldFile, s.file).Debug("No vendor alias file found")
		return nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return fmt.Errorf("error reading alias file: %w", err)
	}

	var parsed aliasFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("error parsing alias file: %w", err)
	}

	s.aliases = make(map[string]string, len(parsed.Aliases))
	for alias, canonical := range parsed.Aliases {
		s.aliases[normalize.Clean(alias)] = canonical
	}

	s.log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(s.aliases)},
	).Debug("Loaded vendor aliases")
	return nil
}

// Save writes the aliases back to the configured file.
func (s *AliasStore) Save() error {
	out := aliasFile{Aliases: make(map[string]string, len(s.aliases))}
	for alias, canonical := range s.aliases {
		out.Aliases[alias] = canonical
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("error marshalling aliases: %w", err)
	}

	dir := filepath.Dir(s.file)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating alias directory: %w", err)
		}
	}

	if err := os.WriteFile(s.file, data, 0600); err != nil {
		return fmt.Errorf("error writing alias file: %w", err)
	}

	s.log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: s.file},
		logging.Field{Key: logging.FieldCount, Value: len(s.aliases)},
	).Debug("Saved vendor aliases")
	return nil
}

// Add records an alias mapping.
func (s *AliasStore) Add(alias, canonical string) {
	s.aliases[normalize.Clean(alias)] = canonical
}

// Resolve maps a vendor name to its canonical form. Exact (normalized)
// lookups win; otherwise the closest alias at or above the fuzzy threshold is
// used. Unknown vendors resolve to themselves.
func (s *AliasStore) Resolve(vendor string) string {
	key := normalize.Clean(vendor)
	if key == "" {
		return vendor
	}

	if canonical, ok := s.aliases[key]; ok {
		return canonical
	}

	if s.fuzzy <= 0 || len(s.aliases) == 0 {
		return vendor
	}

	// Deterministic scan order so equal-similarity aliases resolve stably.
	keys := make([]string, 0, len(s.aliases))
	for alias := range s.aliases {
		keys = append(keys, alias)
	}
	sort.Strings(keys)

	bestScore := 0.0
	bestCanonical := vendor
	for _, alias := range keys {
		score := strsim.Similarity(key, alias)
		if score > bestScore {
			bestScore = score
			bestCanonical = s.aliases[alias]
		}
	}

	if bestScore >= s.fuzzy {
		return bestCanonical
	}
	return vendor
}
