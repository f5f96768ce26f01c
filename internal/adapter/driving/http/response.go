package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/maskpreview/internal/application"
	"github.com/ericfisherdev/maskpreview/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// AnimationStepResponse is the JSON representation of one animation step.
type AnimationStepResponse struct {
	Easing    string   `json:"easing"`
	Duration  float64  `json:"duration"`
	Variables []string `json:"variables"`
}

// MaskSettingsResponse is the JSON representation of a mask configuration.
// Unset optional CSS fields are omitted; an explicitly empty value is "".
type MaskSettingsResponse struct {
	Name           string                  `json:"name"`
	MaskImage      string                  `json:"maskImage"`
	MaskSize       *string                 `json:"maskSize,omitempty"`
	MaskPosition   *string                 `json:"maskPosition,omitempty"`
	MaskRepeat     *string                 `json:"maskRepeat,omitempty"`
	MaskMode       *string                 `json:"maskMode,omitempty"`
	Variables      []string                `json:"variables"`
	AnimationSteps []AnimationStepResponse `json:"animationSteps"`
	Description    string                  `json:"description,omitempty"`
	CSS            string                  `json:"css"`
}

// StateResponse is the JSON representation of the store.
type StateResponse struct {
	CurrentExample MaskSettingsResponse `json:"currentExample"`
	MaskSettings   MaskSettingsResponse `json:"maskSettings"`
	Version        uint64               `json:"version"`
	Modified       bool                 `json:"modified"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toMaskSettingsResponse converts domain MaskSettings to the JSON response.
// Lists are always arrays, never null.
func toMaskSettingsResponse(m model.MaskSettings) MaskSettingsResponse {
	c := m.Clone()

	steps := make([]AnimationStepResponse, 0, len(c.AnimationSteps))
	for _, s := range c.AnimationSteps {
		steps = append(steps, AnimationStepResponse{
			Easing:    s.Easing,
			Duration:  s.Duration,
			Variables: s.Variables,
		})
	}

	return MaskSettingsResponse{
		Name:           c.Name,
		MaskImage:      c.MaskImage,
		MaskSize:       c.MaskSize,
		MaskPosition:   c.MaskPosition,
		MaskRepeat:     c.MaskRepeat,
		MaskMode:       c.MaskMode,
		Variables:      c.Variables,
		AnimationSteps: steps,
		Description:    c.Description,
		CSS:            c.CSSDeclarations(),
	}
}

// toStateResponse converts a store snapshot to its JSON response.
func toStateResponse(s application.Snapshot) StateResponse {
	return StateResponse{
		CurrentExample: toMaskSettingsResponse(s.CurrentExample),
		MaskSettings:   toMaskSettingsResponse(s.MaskSettings),
		Version:        s.Version,
		Modified:       s.Modified(),
	}
}
