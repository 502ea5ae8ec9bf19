package catalog

import (
	"context"
	"encoding/json"
	"os"

	"supermarket-comparator/internal/common/errors"
	"supermarket-comparator/internal/common/logger"
	"supermarket-comparator/internal/common/metrics"
)

// FileSource loads a catalog from a JSON document on disk.
type FileSource struct {
	path   string
	logger logger.Logger
}

func NewFileSource(path string, log logger.Logger) *FileSource {
	return &FileSource{
		path:   path,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-file"}),
	}
}

func (s *FileSource) Load(ctx context.Context) (*Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		metrics.CatalogLoads.WithLabelValues("file", "error").Inc()
		return nil, errors.NewCatalogLoadFailedError("file", err)
	}

	if err := ValidateDocument(data); err != nil {
		metrics.CatalogLoads.WithLabelValues("file", "invalid").Inc()
		return nil, err
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		metrics.CatalogLoads.WithLabelValues("file", "error").Inc()
		return nil, errors.NewCatalogLoadFailedError("file", err)
	}

	metrics.CatalogLoads.WithLabelValues("file", "success").Inc()
	s.logger.Info("catalog loaded", map[string]interface{}{
		"path":   s.path,
		"stores": len(cat.Stores),
	})

	return &cat, nil
}
