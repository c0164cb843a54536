package store

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// SymbolCache is the reference-set file written by cmd/symbolsync and merged
// into the loaded config on startup.
type SymbolCache struct {
	Equities []string `yaml:"equities"`
	Indices  []string `yaml:"indices"`
	Updated  string   `yaml:"updated"`
}

func loadSymbolCache(path string) (*SymbolCache, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc SymbolCache
	if err := yaml.Unmarshal(b, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// SaveSymbolCache writes the reference set, sorted for stable diffs.
func SaveSymbolCache(path string, sc *SymbolCache) error {
	sort.Strings(sc.Equities)
	sort.Strings(sc.Indices)
	b, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func mergeSymbols(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	merged := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			merged = append(merged, s)
		}
	}
	return merged
}
