package model

import (
	"slices"
	"strings"
)

// DefaultMaskImage is the mask-image value the store starts with before any
// example is selected.
const DefaultMaskImage = "linear-gradient(to bottom, black, transparent)"

// MaskSettings represents one CSS mask configuration, either a catalog example
// or the live working copy being edited.
//
// Optional CSS fields are pointers: nil means unset (the property is not
// emitted and the browser default applies), a pointer to "" means the value
// was explicitly set to empty.
type MaskSettings struct {
	Name           string          `json:"name"`
	MaskImage      string          `json:"maskImage"`
	MaskSize       *string         `json:"maskSize,omitempty"`
	MaskPosition   *string         `json:"maskPosition,omitempty"`
	MaskRepeat     *string         `json:"maskRepeat,omitempty"`
	MaskMode       *string         `json:"maskMode,omitempty"`
	Variables      []string        `json:"variables"`
	AnimationSteps []AnimationStep `json:"animationSteps"`
	Description    string          `json:"description,omitempty"` // Markdown, GUI only.
}

// DefaultMaskSettings returns the built-in record used at process start.
func DefaultMaskSettings() MaskSettings {
	return MaskSettings{
		MaskImage:      DefaultMaskImage,
		Variables:      []string{},
		AnimationSteps: []AnimationStep{},
	}
}

// Clone returns a deep copy sharing no memory with m. Nil slices come back as
// empty slices, so an omitted list and an empty list are indistinguishable in
// the copy.
func (m MaskSettings) Clone() MaskSettings {
	out := m
	out.MaskSize = cloneString(m.MaskSize)
	out.MaskPosition = cloneString(m.MaskPosition)
	out.MaskRepeat = cloneString(m.MaskRepeat)
	out.MaskMode = cloneString(m.MaskMode)
	out.Variables = CloneVariables(m.Variables)
	out.AnimationSteps = CloneAnimationSteps(m.AnimationSteps)
	return out
}

// Apply merges the non-nil fields of props into m and returns the result.
// Fields absent from props keep their current value; variables and animation
// steps are never touched.
func (m MaskSettings) Apply(props MaskProperties) MaskSettings {
	out := m.Clone()
	if props.MaskImage != nil {
		out.MaskImage = *props.MaskImage
	}
	if props.MaskSize != nil {
		out.MaskSize = cloneString(props.MaskSize)
	}
	if props.MaskPosition != nil {
		out.MaskPosition = cloneString(props.MaskPosition)
	}
	if props.MaskRepeat != nil {
		out.MaskRepeat = cloneString(props.MaskRepeat)
	}
	if props.MaskMode != nil {
		out.MaskMode = cloneString(props.MaskMode)
	}
	return out
}

// Equal reports whether m and other hold the same values. Nil and empty
// slices compare equal.
func (m MaskSettings) Equal(other MaskSettings) bool {
	if m.Name != other.Name || m.MaskImage != other.MaskImage || m.Description != other.Description {
		return false
	}
	if !equalString(m.MaskSize, other.MaskSize) ||
		!equalString(m.MaskPosition, other.MaskPosition) ||
		!equalString(m.MaskRepeat, other.MaskRepeat) ||
		!equalString(m.MaskMode, other.MaskMode) {
		return false
	}
	if !slices.Equal(m.Variables, other.Variables) {
		return false
	}
	return slices.EqualFunc(m.AnimationSteps, other.AnimationSteps, AnimationStep.Equal)
}

// CSSDeclarations renders the settings as an inline CSS declaration list.
// mask-image is emitted with its -webkit- prefix; unset optional properties
// are skipped. Variable strings are emitted verbatim as declarations.
func (m MaskSettings) CSSDeclarations() string {
	var b strings.Builder
	writeDecl := func(prop, value string) {
		b.WriteString(prop)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("; ")
	}

	for _, v := range m.Variables {
		v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), ";"))
		if v == "" {
			continue
		}
		b.WriteString(v)
		b.WriteString("; ")
	}

	writeDecl("-webkit-mask-image", m.MaskImage)
	writeDecl("mask-image", m.MaskImage)
	for _, p := range []struct {
		name  string
		value *string
	}{
		{"mask-size", m.MaskSize},
		{"mask-position", m.MaskPosition},
		{"mask-repeat", m.MaskRepeat},
		{"mask-mode", m.MaskMode},
	} {
		if p.value != nil {
			writeDecl("-webkit-"+p.name, *p.value)
			writeDecl(p.name, *p.value)
		}
	}

	return strings.TrimSpace(b.String())
}

// MaskProperties is a partial update of the CSS fields of MaskSettings.
// A nil field is absent and leaves the target untouched; a non-nil field,
// including a pointer to "", overwrites it. JSON null decodes to nil and is
// therefore treated as absent.
type MaskProperties struct {
	MaskImage    *string `json:"maskImage,omitempty"`
	MaskSize     *string `json:"maskSize,omitempty"`
	MaskPosition *string `json:"maskPosition,omitempty"`
	MaskRepeat   *string `json:"maskRepeat,omitempty"`
	MaskMode     *string `json:"maskMode,omitempty"`
}

// IsEmpty returns true when no field is present.
func (p MaskProperties) IsEmpty() bool {
	return p.MaskImage == nil && p.MaskSize == nil && p.MaskPosition == nil &&
		p.MaskRepeat == nil && p.MaskMode == nil
}

// CloneVariables returns an independent copy of vars, never nil.
func CloneVariables(vars []string) []string {
	out := make([]string, len(vars))
	copy(out, vars)
	return out
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
