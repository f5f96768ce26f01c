package httphandler_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/ericfisherdev/maskpreview/internal/adapter/driving/http"
	"github.com/ericfisherdev/maskpreview/internal/application"
	"github.com/ericfisherdev/maskpreview/internal/domain/model"
	"github.com/ericfisherdev/maskpreview/internal/domain/port/driven"
)

// --- Mock implementations ---

type mockExampleLoader struct {
	examples []model.MaskSettings
	err      error
}

func (m *mockExampleLoader) LoadExamples(_ context.Context) ([]model.MaskSettings, error) {
	return m.examples, m.err
}

// --- Test helpers ---

const basePath = "/mask-image-tester/"

func catalogExamples() []model.MaskSettings {
	return []model.MaskSettings{
		{
			Name:      "Fade",
			MaskImage: "linear-gradient(to bottom, black, transparent)",
		},
		{
			Name:           "Spotlight",
			MaskImage:      "radial-gradient(circle, black 40%, transparent 70%)",
			MaskSize:       model.StringPtr("cover"),
			MaskRepeat:     model.StringPtr("no-repeat"),
			Variables:      []string{"--radius: 40%"},
			AnimationSteps: []model.AnimationStep{{Easing: "ease", Duration: 2, Variables: []string{"--radius"}}},
		},
	}
}

func setupMux(loader driven.ExampleLoader) (http.Handler, *application.MaskStore) {
	store := application.NewMaskStore()
	catalog := application.NewCatalogService(loader, slog.Default())
	h := httphandler.NewHandler(store, catalog, slog.Default())
	return httphandler.NewServeMux(h, basePath, slog.Default()), store
}

func do(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	err := json.NewDecoder(rec.Body).Decode(v)
	require.NoError(t, err)
}

// --- Tests ---

func TestHealth(t *testing.T) {
	mux, _ := setupMux(&mockExampleLoader{})

	rec := do(t, mux, http.MethodGet, basePath+"api/v1/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.HealthResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "ok", resp.Status)
	_, err := time.Parse(time.RFC3339, resp.Time)
	assert.NoError(t, err)
}

func TestRoutesRequireBasePath(t *testing.T) {
	mux, _ := setupMux(&mockExampleLoader{})

	rec := do(t, mux, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListExamples(t *testing.T) {
	tests := []struct {
		name       string
		loader     *mockExampleLoader
		wantStatus int
		wantLen    int
		wantError  string
	}{
		{
			name:       "empty catalog",
			loader:     &mockExampleLoader{examples: []model.MaskSettings{}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "two examples in order",
			loader:     &mockExampleLoader{examples: catalogExamples()},
			wantStatus: http.StatusOK,
			wantLen:    2,
		},
		{
			name:       "fetch error",
			loader:     &mockExampleLoader{err: &driven.FetchError{URL: "u", StatusCode: 404}},
			wantStatus: http.StatusBadGateway,
			wantError:  "example catalog unavailable",
		},
		{
			name:       "parse error",
			loader:     &mockExampleLoader{err: &driven.ParseError{URL: "u", Err: errors.New("bad")}},
			wantStatus: http.StatusBadGateway,
			wantError:  "example catalog is not valid JSON",
		},
		{
			name:       "other error",
			loader:     &mockExampleLoader{err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, _ := setupMux(tt.loader)

			rec := do(t, mux, http.MethodGet, basePath+"api/v1/examples", "")
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantError != "" {
				var resp map[string]string
				decodeJSON(t, rec, &resp)
				assert.Equal(t, tt.wantError, resp["error"])
				return
			}

			var resp []httphandler.MaskSettingsResponse
			decodeJSON(t, rec, &resp)
			require.Len(t, resp, tt.wantLen)
			if tt.wantLen == 2 {
				assert.Equal(t, "Fade", resp[0].Name)
				assert.Equal(t, "Spotlight", resp[1].Name)
				assert.Equal(t, "cover", *resp[1].MaskSize)
				assert.Contains(t, resp[1].CSS, "mask-size: cover;")
			}
		})
	}
}

func TestListExamples_EmptyListsAreArrays(t *testing.T) {
	mux, _ := setupMux(&mockExampleLoader{examples: catalogExamples()[:1]})

	rec := do(t, mux, http.MethodGet, basePath+"api/v1/examples", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"variables":[]`)
	assert.Contains(t, body, `"animationSteps":[]`)
	assert.NotContains(t, body, `"maskSize"`)
}

func TestGetState_Initial(t *testing.T) {
	mux, _ := setupMux(&mockExampleLoader{})

	rec := do(t, mux, http.MethodGet, basePath+"api/v1/state", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.StateResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "linear-gradient(to bottom, black, transparent)", resp.MaskSettings.MaskImage)
	assert.Equal(t, "", resp.MaskSettings.Name)
	assert.Equal(t, []string{}, resp.MaskSettings.Variables)
	assert.Equal(t, uint64(0), resp.Version)
	assert.False(t, resp.Modified)
}

func TestSetExample(t *testing.T) {
	mux, store := setupMux(&mockExampleLoader{})

	rec := do(t, mux, http.MethodPut, basePath+"api/v1/state/example",
		`{"name":"Fade","maskImage":"radial-gradient(circle, white, black)","variables":["--x"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.StateResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "Fade", resp.MaskSettings.Name)
	assert.Equal(t, "Fade", resp.CurrentExample.Name)
	assert.Equal(t, []string{"--x"}, resp.MaskSettings.Variables)
	assert.Equal(t, []httphandler.AnimationStepResponse{}, resp.MaskSettings.AnimationSteps)
	assert.Equal(t, uint64(1), resp.Version)

	assert.Equal(t, "radial-gradient(circle, white, black)", store.MaskSettings().MaskImage)
}

func TestSetExample_InvalidBody(t *testing.T) {
	mux, store := setupMux(&mockExampleLoader{})

	rec := do(t, mux, http.MethodPut, basePath+"api/v1/state/example", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, uint64(0), store.Version())
}

// slashedExamples puts a name containing a slash second, where the
// selection assertions look for it.
func slashedExamples() []model.MaskSettings {
	return []model.MaskSettings{
		{Name: "Soft", MaskImage: "linear-gradient(black, transparent)"},
		{
			Name:           "Soft/Edges",
			MaskImage:      "radial-gradient(black 60%, transparent)",
			Variables:      []string{},
			AnimationSteps: []model.AnimationStep{},
		},
	}
}

func TestSelectExample(t *testing.T) {
	tests := []struct {
		name       string
		loader     *mockExampleLoader
		example    string
		wantStatus int
	}{
		{name: "found", loader: &mockExampleLoader{examples: catalogExamples()}, example: "Spotlight", wantStatus: http.StatusOK},
		{name: "not found", loader: &mockExampleLoader{examples: catalogExamples()}, example: "Nope", wantStatus: http.StatusNotFound},
		{name: "name with slash", loader: &mockExampleLoader{examples: slashedExamples()}, example: "Soft/Edges", wantStatus: http.StatusOK},
		{name: "escaped slash", loader: &mockExampleLoader{examples: slashedExamples()}, example: "Soft%2FEdges", wantStatus: http.StatusOK},
		{name: "empty name", loader: &mockExampleLoader{examples: catalogExamples()}, example: "", wantStatus: http.StatusNotFound},
		{name: "catalog down", loader: &mockExampleLoader{err: &driven.FetchError{URL: "u", Err: errors.New("refused")}}, example: "Fade", wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, store := setupMux(tt.loader)

			rec := do(t, mux, http.MethodPost, basePath+"api/v1/state/example/"+tt.example, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				want := tt.loader.examples[1]
				assert.Equal(t, want, store.CurrentExample())
				assert.Equal(t, want, store.MaskSettings())
			} else {
				assert.Equal(t, uint64(0), store.Version())
			}
		})
	}
}

func TestSetMaskProperties_MergesOnlyGivenFields(t *testing.T) {
	mux, store := setupMux(&mockExampleLoader{})
	store.SetExample(catalogExamples()[1])

	rec := do(t, mux, http.MethodPatch, basePath+"api/v1/state/properties",
		`{"maskSize":"contain","maskMode":null,"maskPosition":""}`)

	require.Equal(t, http.StatusOK, rec.Code)
	got := store.MaskSettings()
	assert.Equal(t, "contain", *got.MaskSize)
	assert.Equal(t, "no-repeat", *got.MaskRepeat)
	assert.Nil(t, got.MaskMode, "null is treated as absent")
	require.NotNil(t, got.MaskPosition)
	assert.Equal(t, "", *got.MaskPosition)
	assert.Equal(t, []string{"--radius: 40%"}, got.Variables)
	assert.Len(t, got.AnimationSteps, 1)

	var resp httphandler.StateResponse
	decodeJSON(t, rec, &resp)
	assert.True(t, resp.Modified)
}

func TestSetVariables(t *testing.T) {
	mux, store := setupMux(&mockExampleLoader{})

	rec := do(t, mux, http.MethodPut, basePath+"api/v1/state/variables", `["--a","--b"]`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"--a", "--b"}, store.MaskSettings().Variables)

	rec = do(t, mux, http.MethodPut, basePath+"api/v1/state/variables", `[]`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{}, store.MaskSettings().Variables)

	rec = do(t, mux, http.MethodPut, basePath+"api/v1/state/variables", `{"a":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetAnimationSteps(t *testing.T) {
	mux, store := setupMux(&mockExampleLoader{})

	rec := do(t, mux, http.MethodPut, basePath+"api/v1/state/animation-steps",
		`[{"easing":"ease-in","duration":-1,"variables":["--x","--x"]}]`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		[]model.AnimationStep{{Easing: "ease-in", Duration: -1, Variables: []string{"--x", "--x"}}},
		store.MaskSettings().AnimationSteps)

	rec = do(t, mux, http.MethodPut, basePath+"api/v1/state/animation-steps", `[{"duration":"slow"}]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReset(t *testing.T) {
	mux, store := setupMux(&mockExampleLoader{})
	store.SetExample(catalogExamples()[1])
	store.SetVariables(nil)

	rec := do(t, mux, http.MethodPost, basePath+"api/v1/state/reset", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, catalogExamples()[1], store.MaskSettings())
	var resp httphandler.StateResponse
	decodeJSON(t, rec, &resp)
	assert.False(t, resp.Modified)
}

func TestStateEvents(t *testing.T) {
	mux, store := setupMux(&mockExampleLoader{})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+basePath+"api/v1/state/events", nil)
	require.NoError(t, err)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	nextState := func() httphandler.StateResponse {
		t.Helper()
		for scanner.Scan() {
			line := scanner.Text()
			if data, ok := strings.CutPrefix(line, "data: "); ok {
				var s httphandler.StateResponse
				require.NoError(t, json.Unmarshal([]byte(data), &s))
				return s
			}
		}
		t.Fatalf("stream ended: %v", scanner.Err())
		return httphandler.StateResponse{}
	}

	initial := nextState()
	assert.Equal(t, uint64(0), initial.Version)

	store.SetVariables([]string{"--live"})

	update := nextState()
	assert.Equal(t, uint64(1), update.Version)
	assert.Equal(t, []string{"--live"}, update.MaskSettings.Variables)
}

func TestRecoveryMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /panic", func(http.ResponseWriter, *http.Request) { panic("boom") })
	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}
