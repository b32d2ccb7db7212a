package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/obspy/obshub/internal/core/modules"
)

//go:embed modules.yaml
var defaultCatalog []byte

type catalogFile struct {
	Groups map[string][]string `yaml:"groups"`
}

// YAMLLoader loads module catalogs from YAML documents
type YAMLLoader struct{}

// NewYAMLLoader creates a new catalog loader
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// LoadCatalog reads the catalog at path, or the built-in ObsPy catalog when
// path is empty
func (l *YAMLLoader) LoadCatalog(path string) (*modules.Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module catalog: %w", err)
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes a catalog document
func Parse(data []byte) (*modules.Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse module catalog: %w", err)
	}
	return modules.NewCatalog(file.Groups)
}
