// Package cli implements the ontoview command-line interface.
//
// Every command reads a vocabulary context (--context/-c, or "context" in
// the config file) and an instance document (a file argument, or stdin when
// the argument is missing or "-"). The CLI is built using cobra and logs
// with charmbracelet/log.
//
// # Commands
//
//   - turtle, dot, display: print one text view of a document
//   - triples: print the flattened triples as a table or TSV
//   - render: write one file per output format (ttl, dot, nt, qmd, triples, svg, png)
//   - check: validate a document without writing output
//   - browse: explore the triples interactively
//   - serve: run the HTTP render service
//   - cache: manage the rendered artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr so rendered output can be piped.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
