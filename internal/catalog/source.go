// internal/catalog/source.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"consultation-workers/internal/models"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Source loads the full set of service packages for a reload.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.ServicePackage, error)
}

// DefaultSource serves the built-in seed catalog.
type DefaultSource struct{}

func (DefaultSource) Name() string { return "default" }

func (DefaultSource) Load(context.Context) ([]models.ServicePackage, error) {
	return DefaultPackages(), nil
}

// FileSource reads YAML or JSON catalog files matched by doublestar patterns.
// Each file holds a top-level "packages" list.
type FileSource struct {
	Patterns []string
}

type catalogFile struct {
	Packages []models.ServicePackage `json:"packages" yaml:"packages"`
}

func (f FileSource) Name() string { return "file" }

func (f FileSource) Load(ctx context.Context) ([]models.ServicePackage, error) {
	files, err := f.Files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalog files matched %v", f.Patterns)
	}

	var out []models.ServicePackage
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pkgs, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, pkgs...)
	}
	return out, nil
}

// Files expands the patterns into a sorted, de-duplicated file list.
func (f FileSource) Files() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range f.Patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad catalog pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// ReadFile decodes one catalog file; the format follows the extension.
func ReadFile(path string) ([]models.ServicePackage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var doc catalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog file %s", path)
	}
	return doc.Packages, nil
}

// WriteYAML encodes packages in the seed file format.
func WriteYAML(pkgs []models.ServicePackage) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{Packages: pkgs}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
