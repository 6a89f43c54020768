// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package model

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML document that declares application model types.
//
//	types:
//	  - name: ThingBlock
//	    content_type: true
//	    module: things
//	    connectable: true
//	    columns_for_index:
//	      - method: name
//	      - method: weight
type Manifest struct {
	Types []Descriptor `yaml:"types"`
}

// LoadManifest decodes a manifest. Unknown keys are rejected.
func LoadManifest(reader io.Reader) (*Manifest, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	manifest := &Manifest{}
	if err := decoder.Decode(manifest); err != nil {
		if err == io.EOF {
			return manifest, nil
		}
		return nil, fmt.Errorf("model: invalid manifest: %w", err)
	}

	return manifest, nil
}

// RegisterManifestFile loads the manifest at path and registers every type in r.
// It returns the number of types declared.
func RegisterManifestFile(r *Registry, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("model: open manifest: %w", err)
	}
	defer file.Close()

	manifest, err := LoadManifest(file)
	if err != nil {
		return 0, err
	}

	for _, descriptor := range manifest.Types {
		if err := r.Register(descriptor); err != nil {
			return 0, err
		}
	}

	return len(manifest.Types), nil
}
