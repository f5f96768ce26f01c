package driven

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/maskpreview/internal/domain/model"
)

// ExampleLoader defines the driven port for reading the mask example catalog.
// Each call performs a fresh read; implementations do not retry or fall back.
type ExampleLoader interface {
	LoadExamples(ctx context.Context) ([]model.MaskSettings, error)
}

// FetchError reports that the catalog could not be read: a transport failure
// (StatusCode is 0) or a non-success HTTP status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports that the catalog body was not a valid JSON array of
// mask settings.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
