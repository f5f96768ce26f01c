package web

import "embed"

//go:generate go tool templ generate -path templates

// StaticFS holds the embedded static assets: the built-in example catalog
// and the page stylesheet.
//
//go:embed static/*
var StaticFS embed.FS
