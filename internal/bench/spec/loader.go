package spec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*EvalSpec, error) {
	var s EvalSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse spec YAML: %w", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

var validModelTypes = map[string]bool{
	"csv": true,
	"api": true,
}

func validate(s *EvalSpec) error {
	if len(s.Jobs) == 0 {
		return fmt.Errorf("spec has no jobs")
	}
	if len(s.Models) == 0 {
		return fmt.Errorf("spec has no models")
	}
	for i, j := range s.Jobs {
		if j.Name == "" {
			return fmt.Errorf("job at index %d has no name", i)
		}
		if j.Manifest.Validation == "" || j.Manifest.Test == "" {
			return fmt.Errorf("job %q needs validation and test manifests", j.Name)
		}
		if len(j.Models) == 0 {
			return fmt.Errorf("job %q has no models", j.Name)
		}
		for _, ref := range j.Models {
			if _, ok := s.Models[ref]; !ok {
				return fmt.Errorf("job %q references unknown model %q", j.Name, ref)
			}
		}
	}
	for name, m := range s.Models {
		if m.Type == "" {
			return fmt.Errorf("model %q has no type", name)
		}
		if !validModelTypes[m.Type] {
			return fmt.Errorf("model %q has invalid type %q", name, m.Type)
		}
		switch m.Type {
		case "csv":
			if m.Validation == "" || m.Test == "" {
				return fmt.Errorf("csv model %q needs validation and test prediction files", name)
			}
		case "api":
			if m.Connection == "" {
				return fmt.Errorf("api model %q has no connection", name)
			}
		}
	}
	if s.Thresholds.Default == 0 {
		s.Thresholds.Default = 0.5
	}
	if s.Thresholds.Default < 0 || s.Thresholds.Default > 1 {
		return fmt.Errorf("default threshold %v is outside [0,1]", s.Thresholds.Default)
	}
	if s.Runs.Iterations <= 0 {
		s.Runs.Iterations = 1
	}
	return nil
}
