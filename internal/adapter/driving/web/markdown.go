package web

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	mdRenderer   = goldmark.New(goldmark.WithExtensions(extension.GFM))
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// RenderDescription converts an example's markdown description to sanitized
// HTML. Returns empty string for empty input.
func RenderDescription(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return ugcPolicy.Sanitize(src)
	}

	return ugcPolicy.Sanitize(buf.String())
}

// DisplayName strips any markup from an example name and returns plain text
// for the templates to escape. Unnamed settings are shown as "Custom".
func DisplayName(name string) string {
	clean := html.UnescapeString(strictPolicy.Sanitize(name))
	if clean == "" {
		return "Custom"
	}
	return clean
}
