// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP server.
//
// A run has two stages:
//
//  1. Parse: decode the vocabulary context and the instance document, then
//     flatten the document into triples
//  2. Render: produce every requested output format
//
// Text formats are cheap and computed on every run. Raster formats go through
// Graphviz and are cached by the hash of the DOT source, so an unchanged
// diagram is rendered once.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Context:  string(contextYAML),
//	    Document: string(documentYAML),
//	    Formats:  []string{"ttl", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ttl := result.Artifacts["ttl"]
package pipeline

import (
	"time"

	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/instance"
	"github.com/matzehuels/ontoview/pkg/triples"
	"github.com/matzehuels/ontoview/pkg/vocab"
)

// Format constants for output formats.
const (
	FormatTurtle   = "ttl"
	FormatDOT      = "dot"
	FormatNTriples = "nt"
	FormatDisplay  = "qmd"
	FormatTriples  = "triples"
	FormatSVG      = "svg"
	FormatPNG      = "png"
)

// Context encodings.
const (
	ContextYAML = "yaml"
	ContextTOML = "toml"
)

// SupportedFormats lists every output format in display order.
var SupportedFormats = []string{
	FormatTurtle,
	FormatDOT,
	FormatNTriples,
	FormatDisplay,
	FormatTriples,
	FormatSVG,
	FormatPNG,
}

// DefaultFormats are rendered when a request names none.
var DefaultFormats = []string{FormatTurtle, FormatDOT}

// Extensions maps formats to output file extensions.
var Extensions = map[string]string{
	FormatTurtle:   ".ttl",
	FormatDOT:      ".dot",
	FormatNTriples: ".nt",
	FormatDisplay:  ".qmd",
	FormatTriples:  ".tsv",
	FormatSVG:      ".svg",
	FormatPNG:      ".png",
}

// IsRaster reports whether format is rendered through Graphviz.
func IsRaster(format string) bool {
	return format == FormatSVG || format == FormatPNG
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Context is the vocabulary context source.
	Context string `json:"context"`

	// ContextFormat is "yaml" (default) or "toml".
	ContextFormat string `json:"context_format,omitempty"`

	// Document is the instance document source (YAML).
	Document string `json:"document"`

	// Formats lists the outputs to produce. Defaults to DefaultFormats.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Context == "" {
		return errors.New(errors.ErrCodeInvalidInput, "context is required")
	}
	if o.Document == "" {
		return errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	if o.ContextFormat == "" {
		o.ContextFormat = ContextYAML
	}
	if o.ContextFormat != ContextYAML && o.ContextFormat != ContextTOML {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid context_format %q (must be one of: yaml, toml)", o.ContextFormat)
	}
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	return errors.ValidateFormats(formats, SupportedFormats)
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Context is the decoded vocabulary context.
	Context *vocab.Context

	// Document is the decoded instance document.
	Document instance.Document

	// Triples is the flattened document, numbered from "_0".
	Triples []triples.Triple

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	TripleCount int
	ParseTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for raster formats.
type CacheInfo struct {
	Hits []string // formats served from cache
}

// RenderHit reports whether every raster artifact came from the cache.
func (r *Result) RenderHit() bool {
	raster := 0
	for f := range r.Artifacts {
		if IsRaster(f) {
			raster++
		}
	}
	return raster > 0 && len(r.CacheInfo.Hits) == raster
}
