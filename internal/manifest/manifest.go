// Package manifest parses Deployment Manager manifests.
//
// gcloud returns a manifest as JSON, but the expanded layout inside it is an
// embedded YAML document. Reading the outputs of a deployment therefore takes
// two passes: one for the outer JSON and one for the layout block.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest represents a deployment manifest
type Manifest struct {
	Name     string `json:"name" yaml:"name"`
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	SelfLink string `json:"selfLink,omitempty" yaml:"selfLink,omitempty"`
	Config   *File  `json:"config,omitempty" yaml:"config,omitempty"`
	Layout   string `json:"layout" yaml:"layout"`
}

// File is a configuration or import file recorded in a manifest
type File struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Content string `json:"content" yaml:"content"`
}

// Layout is the expanded resource tree of a deployment
type Layout struct {
	Resources []LayoutResource `yaml:"resources"`
}

// LayoutResource is a top-level resource of the layout, typically the
// template the deployment was created from
type LayoutResource struct {
	Name      string           `yaml:"name"`
	Type      string           `yaml:"type"`
	Outputs   []Output         `yaml:"outputs"`
	Resources []LayoutResource `yaml:"resources,omitempty"`
}

// Output is a resolved template output
type Output struct {
	Name       string `yaml:"name"`
	FinalValue string `yaml:"finalValue"`
}

// Parse decodes a manifest printed with --format json
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
	}
	return &m, nil
}

// Load loads a manifest saved to disk (supports .json, .yaml and .yml)
func Load(file string) (*Manifest, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file))
	switch ext {
	case ".yaml", ".yml":
		var m Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
		}
		return &m, nil
	default:
		return Parse(data)
	}
}

// NameFromURL returns the manifest name from the manifest URL reported by
// a deployment description
func NameFromURL(url string) string {
	if url == "" {
		return ""
	}
	return path.Base(url)
}

// ParseLayout decodes the embedded layout block
func (m *Manifest) ParseLayout() (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal([]byte(m.Layout), &layout); err != nil {
		return nil, fmt.Errorf("failed to parse manifest layout: %w", err)
	}
	return &layout, nil
}

// Outputs returns the final values of the outputs of the first layout
// resource, keyed by output name
func (m *Manifest) Outputs() (map[string]string, error) {
	layout, err := m.ParseLayout()
	if err != nil {
		return nil, err
	}
	if len(layout.Resources) == 0 {
		return nil, fmt.Errorf("manifest %s layout has no resources", m.Name)
	}

	outputs := make(map[string]string, len(layout.Resources[0].Outputs))
	for _, o := range layout.Resources[0].Outputs {
		outputs[o.Name] = o.FinalValue
	}
	return outputs, nil
}
