// Package catalog implements the ExampleLoader port by fetching a static JSON
// catalog over HTTP.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/maskpreview/internal/domain/model"
	"github.com/ericfisherdev/maskpreview/internal/domain/port/driven"
)

// FileName is the catalog resource name, resolved relative to the base path.
const FileName = "examples.json"

// Compile-time interface satisfaction check.
var _ driven.ExampleLoader = (*Loader)(nil)

// Loader fetches the example catalog from a fixed URL.
type Loader struct {
	client *http.Client
	url    string
}

// NewLoader creates a Loader for origin + basePath + examples.json. Requests
// go through an in-memory httpcache transport so unchanged catalogs are
// revalidated with ETag / Last-Modified instead of re-downloaded. The client
// has no timeout of its own; cancellation comes from the caller's context.
func NewLoader(origin, basePath string) *Loader {
	return &Loader{
		client: httpcache.NewMemoryCacheTransport().Client(),
		url:    ResolveURL(origin, basePath),
	}
}

// NewLoaderWithHTTPClient creates a Loader that uses httpClient and fetches the
// exact URL given. Intended for tests that point at an httptest server.
func NewLoaderWithHTTPClient(httpClient *http.Client, url string) *Loader {
	return &Loader{client: httpClient, url: url}
}

// URL returns the catalog URL this loader reads.
func (l *Loader) URL() string {
	return l.url
}

// LoadExamples performs one GET of the catalog and decodes it. Transport
// failures and non-2xx responses return *driven.FetchError; bodies that are
// not a JSON array of objects return *driven.ParseError.
func (l *Loader) LoadExamples(ctx context.Context) ([]model.MaskSettings, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, &driven.FetchError{URL: l.url, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &driven.FetchError{URL: l.url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &driven.FetchError{
			URL:        l.url,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &driven.FetchError{URL: l.url, Err: fmt.Errorf("reading body: %w", err)}
	}

	return decode(l.url, body)
}

// decode parses a catalog document. The root must be an array; a JSON null
// root is rejected along with any other non-array value.
func decode(url string, body []byte) ([]model.MaskSettings, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &driven.ParseError{URL: url, Err: err}
	}
	if raw == nil {
		return nil, &driven.ParseError{URL: url, Err: errors.New("catalog root is not an array")}
	}

	examples := make([]model.MaskSettings, 0, len(raw))
	for i, item := range raw {
		var ex model.MaskSettings
		if err := json.Unmarshal(item, &ex); err != nil {
			return nil, &driven.ParseError{URL: url, Err: fmt.Errorf("example %d: %w", i, err)}
		}
		examples = append(examples, ex.Clone())
	}

	return examples, nil
}

// ResolveURL joins origin, the deployment base path and the catalog file name
// with exactly one slash between each part.
func ResolveURL(origin, basePath string) string {
	origin = strings.TrimRight(origin, "/")
	basePath = strings.Trim(basePath, "/")
	if basePath == "" {
		return origin + "/" + FileName
	}
	return origin + "/" + basePath + "/" + FileName
}
