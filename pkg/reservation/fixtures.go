package reservation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.json
var defaultFixtures []byte

// DefaultFixtures returns the built-in record pool.
func DefaultFixtures() ([]PNR, error) {
	var pool []PNR
	if err := json.Unmarshal(defaultFixtures, &pool); err != nil {
		return nil, fmt.Errorf("parse built-in fixtures: %w", err)
	}
	return pool, nil
}

// LoadFixtures reads a record pool from path. Files ending in .yaml or .yml
// are parsed as YAML, anything else as JSON.
func LoadFixtures(path string) ([]PNR, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}

	var pool []PNR
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &pool)
	default:
		err = json.Unmarshal(data, &pool)
	}
	if err != nil {
		return nil, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("fixtures %s contain no records", path)
	}
	return pool, nil
}
