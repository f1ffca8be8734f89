package factors

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var embedded embed.FS

// Registry holds every loaded factor table keyed by case type. It is built
// once at startup and never mutated afterwards.
type Registry struct {
	tables map[string]*Table
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the registry built from the embedded tables only.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Load("")
	})
	return defaultReg, defaultErr
}

// Load reads the embedded tables, then any *.yaml files in overrideDir. A
// table from overrideDir replaces the embedded table with the same case type.
func Load(overrideDir string) (*Registry, error) {
	r := &Registry{tables: make(map[string]*Table)}

	if err := r.loadFS(embedded, "tables"); err != nil {
		return nil, fmt.Errorf("load embedded factor tables: %w", err)
	}

	if overrideDir != "" {
		if _, err := os.Stat(overrideDir); err != nil {
			return nil, fmt.Errorf("factor table dir %s: %w", overrideDir, err)
		}
		if err := r.loadFS(os.DirFS(overrideDir), "."); err != nil {
			return nil, fmt.Errorf("load factor tables from %s: %w", overrideDir, err)
		}
	}

	return r, nil
}

func (r *Registry) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(dir, e.Name())))
		if err != nil {
			return err
		}
		t, err := Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		r.tables[Normalize(t.CaseType)] = t
	}
	return nil
}

// Parse decodes and validates one table document.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse factor table: %w", err)
	}
	t.applyDefaults()
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Get resolves a case type; "product-liability" and "Product_Liability" both
// find the product_liability table.
func (r *Registry) Get(caseType string) (*Table, bool) {
	t, ok := r.tables[Normalize(caseType)]
	return t, ok
}

// Tables returns every table ordered by case type.
func (r *Registry) Tables() []*Table {
	out := make([]*Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CaseType < out[j].CaseType })
	return out
}

func Normalize(caseType string) string {
	s := strings.ToLower(strings.TrimSpace(caseType))
	return strings.ReplaceAll(s, "-", "_")
}

func isYAML(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}
