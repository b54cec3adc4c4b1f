// Package static holds files embedded into the binary.
package static

import "embed"

// Templates holds the HTML page templates.
//
//go:embed templates/*.html
var Templates embed.FS

// APIDoc describes the JSON API for humans and tools.
//
//go:embed api.md
var APIDoc []byte
