package ports

import (
	"github.com/obspy/obshub/internal/core/config"
	"github.com/obspy/obshub/internal/core/modules"
)

// ConfigStore defines the interface for configuration file persistence
type ConfigStore interface {
	// Load decodes the configuration stored at path. It does not validate.
	Load(path string) (*config.Configuration, error)

	// Save replaces the file at path with cfg
	Save(path string, cfg *config.Configuration) error
}

// CatalogLoader defines the interface for loading module groups
type CatalogLoader interface {
	// LoadCatalog reads groups from path, or the built-in catalog when path
	// is empty
	LoadCatalog(path string) (*modules.Catalog, error)
}
