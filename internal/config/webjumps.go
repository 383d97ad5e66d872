package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WebjumpSpec is a user-defined webjump as written in the webjumps file.
type WebjumpSpec struct {
	Name        string   `yaml:"name"`
	URL         string   `yaml:"url"`
	Alternative string   `yaml:"alternative,omitempty"`
	Argument    string   `yaml:"argument,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Completions []string `yaml:"completions,omitempty"`
}

type webjumpsFile struct {
	Webjumps []WebjumpSpec `yaml:"webjumps"`
}

// ParseWebjumps parses a webjumps file of the form
//
//	webjumps:
//	  - name: osm
//	    url: http://www.openstreetmap.org/search?query=%s
func ParseWebjumps(content []byte) ([]WebjumpSpec, error) {
	var file webjumpsFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, err
	}

	for i, spec := range file.Webjumps {
		if spec.Name == "" {
			return nil, fmt.Errorf("missing required 'name' field in webjump %d", i+1)
		}
		if spec.URL == "" {
			return nil, fmt.Errorf("missing required 'url' field for webjump '%s'", spec.Name)
		}
	}
	return file.Webjumps, nil
}

// LoadWebjumps reads and parses the webjumps file at path. A missing file
// yields no webjumps.
func LoadWebjumps(path string) ([]WebjumpSpec, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	specs, err := ParseWebjumps(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse webjumps in %s: %w", path, err)
	}
	return specs, nil
}
