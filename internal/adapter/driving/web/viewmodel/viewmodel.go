// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// PageViewModel holds everything the preview page renders.
type PageViewModel struct {
	Title     string
	BasePath  string
	CSRFToken string
	Examples  []ExampleCardViewModel
	LoadError string // Non-empty when the catalog could not be loaded.
	Current   SettingsViewModel
	Working   SettingsViewModel
	Modified  bool
	Version   uint64
}

// ExampleCardViewModel holds one selectable catalog entry.
type ExampleCardViewModel struct {
	Name            string
	DisplayName     string
	DescriptionHTML string // Sanitized HTML, safe to emit raw.
	CSS             string
	Selected        bool
}

// SettingsViewModel holds a mask configuration ready for form fields.
// Unset optional CSS fields are empty strings and flagged in the Set map.
type SettingsViewModel struct {
	Name          string
	MaskImage     string
	MaskSize      string
	MaskPosition  string
	MaskRepeat    string
	MaskMode      string
	Set           map[string]bool
	Variables     []string
	VariablesText string
	Steps         []AnimationStepViewModel
	StepsText     string
	CSS           string
}

// AnimationStepViewModel holds one animation step for display.
type AnimationStepViewModel struct {
	Index     int
	Easing    string
	Duration  string
	Variables []string
}
