package model

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Build validates a decoded document and constructs the model.
func (d *Document) Build() (*Model, error) {
	plat := d.Platform
	if err := plat.Validate(); err != nil {
		return nil, fmt.Errorf("platform: %w", err)
	}
	apps, err := NewApplications(d.Applications, d.Actors, d.Channels)
	if err != nil {
		return nil, fmt.Errorf("applications: %w", err)
	}

	return &Model{Platform: &plat, Apps: apps}, nil
}

// Decode reads a YAML problem description from r.
func Decode(r io.Reader) (*Model, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("model: decode: %w", err)
	}

	return doc.Build()
}

// Load reads a YAML problem description from path.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
