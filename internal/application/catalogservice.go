package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/maskpreview/internal/domain/model"
	"github.com/ericfisherdev/maskpreview/internal/domain/port/driven"
)

// ErrExampleNotFound is returned by CatalogService.Find when no example has
// the requested name.
var ErrExampleNotFound = errors.New("example not found")

// CatalogService gives the driving adapters access to the example catalog.
// Every call reloads; concurrent calls are independent.
type CatalogService struct {
	loader driven.ExampleLoader
	logger *slog.Logger
}

// NewCatalogService creates a CatalogService reading from loader.
func NewCatalogService(loader driven.ExampleLoader, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		loader: loader,
		logger: logger,
	}
}

// Examples loads the catalog. Load errors are returned unchanged so callers
// can tell FetchError from ParseError.
func (s *CatalogService) Examples(ctx context.Context) ([]model.MaskSettings, error) {
	examples, err := s.loader.LoadExamples(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("examples loaded", "count", len(examples))
	return examples, nil
}

// Find loads the catalog and returns the first example named name.
func (s *CatalogService) Find(ctx context.Context, name string) (model.MaskSettings, error) {
	examples, err := s.Examples(ctx)
	if err != nil {
		return model.MaskSettings{}, err
	}
	for _, ex := range examples {
		if ex.Name == name {
			return ex, nil
		}
	}
	return model.MaskSettings{}, fmt.Errorf("%w: %q", ErrExampleNotFound, name)
}

// Select loads the catalog, finds the example named name and makes it the
// store's current example.
func (s *CatalogService) Select(ctx context.Context, store *MaskStore, name string) (model.MaskSettings, error) {
	ex, err := s.Find(ctx, name)
	if err != nil {
		return model.MaskSettings{}, err
	}
	store.SetExample(ex)
	s.logger.Info("example selected", "name", name)
	return ex, nil
}
