// Package seed provides the bundled default menu and loaders for menu documents
// written by hand in YAML or JSON.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cloud_kitchen/internal/domain/entities"

	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var defaultMenuYAML []byte

// DefaultMenu returns the normalized bundled menu.
func DefaultMenu() (entities.Menu, error) {
	return ParseMenuYAML(defaultMenuYAML)
}

// LoadMenuFile reads a menu document; .yaml/.yml files are parsed as YAML, anything
// else as JSON.
func LoadMenuFile(path string) (entities.Menu, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return entities.Menu{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseMenuYAML(raw)
	default:
		return ParseMenuJSON(raw)
	}
}

// ParseMenuYAML decodes YAML through the tolerant JSON menu decoder so both formats
// follow the same coercion rules.
func ParseMenuYAML(raw []byte) (entities.Menu, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return entities.Menu{}, fmt.Errorf("parse menu yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return entities.Menu{}, fmt.Errorf("convert menu yaml: %w", err)
	}
	return ParseMenuJSON(asJSON)
}

func ParseMenuJSON(raw []byte) (entities.Menu, error) {
	var menu entities.Menu
	if len(strings.TrimSpace(string(raw))) == 0 {
		return entities.NormalizeMenu(menu), nil
	}
	if err := json.Unmarshal(raw, &menu); err != nil {
		return entities.Menu{}, fmt.Errorf("parse menu json: %w", err)
	}
	return entities.NormalizeMenu(menu), nil
}
