package application_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/maskpreview/internal/application"
	"github.com/ericfisherdev/maskpreview/internal/domain/model"
	"github.com/ericfisherdev/maskpreview/internal/domain/port/driven"
)

// mockExampleLoader implements driven.ExampleLoader for service tests.
type mockExampleLoader struct {
	examples []model.MaskSettings
	err      error
	calls    int
}

func (m *mockExampleLoader) LoadExamples(_ context.Context) ([]model.MaskSettings, error) {
	m.calls++
	return m.examples, m.err
}

func TestCatalogService_Examples(t *testing.T) {
	loader := &mockExampleLoader{examples: []model.MaskSettings{stripesExample(), {Name: "Fade", MaskImage: "x"}}}
	svc := application.NewCatalogService(loader, slog.Default())

	got, err := svc.Examples(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Stripes", got[0].Name)
	assert.Equal(t, "Fade", got[1].Name)

	_, err = svc.Examples(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls, "each call reloads")
}

func TestCatalogService_ErrorsPropagateUnchanged(t *testing.T) {
	fetchErr := &driven.FetchError{URL: "http://x/examples.json", StatusCode: 404}
	svc := application.NewCatalogService(&mockExampleLoader{err: fetchErr}, slog.Default())

	_, err := svc.Examples(context.Background())
	assert.Same(t, fetchErr, err)

	_, err = svc.Find(context.Background(), "Fade")
	var got *driven.FetchError
	assert.True(t, errors.As(err, &got))
}

func TestCatalogService_Find(t *testing.T) {
	loader := &mockExampleLoader{examples: []model.MaskSettings{
		{Name: "Fade", MaskImage: "first"},
		{Name: "Fade", MaskImage: "second"},
	}}
	svc := application.NewCatalogService(loader, slog.Default())

	got, err := svc.Find(context.Background(), "Fade")
	require.NoError(t, err)
	assert.Equal(t, "first", got.MaskImage)

	_, err = svc.Find(context.Background(), "Missing")
	assert.ErrorIs(t, err, application.ErrExampleNotFound)
}

func TestCatalogService_Select(t *testing.T) {
	svc := application.NewCatalogService(&mockExampleLoader{examples: []model.MaskSettings{stripesExample()}}, slog.Default())
	store := application.NewMaskStore()

	got, err := svc.Select(context.Background(), store, "Stripes")
	require.NoError(t, err)
	assert.Equal(t, stripesExample(), got)
	assert.Equal(t, stripesExample(), store.CurrentExample())
	assert.Equal(t, stripesExample(), store.MaskSettings())

	_, err = svc.Select(context.Background(), store, "Missing")
	assert.ErrorIs(t, err, application.ErrExampleNotFound)
	assert.Equal(t, uint64(1), store.Version(), "failed select leaves store untouched")
}
