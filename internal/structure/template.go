// Package structure builds the project folder tree from a master template
// and context-driven rules.
package structure

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/master.yaml
var masterYAML []byte

// Folder is one top-level folder and its entries. An entry may name a
// nested path such as "02_Bocetos/Sketchup".
type Folder struct {
	Name    string   `yaml:"name" json:"name"`
	Entries []string `yaml:"entries" json:"entries"`
}

// Rule adds folders when the project context mentions one of its keywords.
// Folders in Add that already exist are extended; new ones are appended.
type Rule struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Add      []Folder `yaml:"add" json:"add"`
}

// Template is the master tree plus its rules. It is read-only once loaded.
type Template struct {
	Folders []Folder `yaml:"folders"`
	Rules   []Rule   `yaml:"rules"`
}

// ParseTemplate decodes a YAML template.
func ParseTemplate(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing folder template: %w", err)
	}
	if len(t.Folders) == 0 {
		return nil, fmt.Errorf("parsing folder template: no folders defined")
	}
	seen := make(map[string]bool, len(t.Folders))
	for _, f := range t.Folders {
		if f.Name == "" {
			return nil, fmt.Errorf("parsing folder template: folder with empty name")
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("parsing folder template: duplicate folder %q", f.Name)
		}
		seen[f.Name] = true
	}
	return &t, nil
}

// LoadTemplate reads a YAML template from disk.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading folder template: %w", err)
	}
	return ParseTemplate(data)
}

// DefaultTemplate returns the bundled master tree. Each call decodes a
// fresh copy.
func DefaultTemplate() *Template {
	t, err := ParseTemplate(masterYAML)
	if err != nil {
		panic(err) // bundled asset
	}
	return t
}
