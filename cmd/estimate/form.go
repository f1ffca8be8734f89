package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"injury-estimator/internal/model"
)

// loadForm reads answers from a YAML (or JSON) file, then applies key=value
// pairs from --set on top.
func loadForm(path string, sets []string) (model.RawFormState, error) {
	form := model.RawFormState{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read form: %w", err)
		}
		if err := yaml.Unmarshal(data, &form); err != nil {
			return nil, fmt.Errorf("parse form %s: %w", path, err)
		}
	}

	for _, kv := range sets {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", kv)
		}
		form[k] = strings.TrimSpace(v)
	}
	return form, nil
}
