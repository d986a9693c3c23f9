// Package display composes the documentation block that shows one instance
// document three ways: as a diagram, as its YAML source and as Turtle.
//
// The output is Quarto markdown. A tabset holds one panel per view:
//
//	::: {.panel-tabset}
//	### Diagram
//	```{dot}
//	digraph G { ... }
//	```
//
//	### YAML
//	```yaml
//	subject: N1A1
//	```
//
//	### Turtle
//	```turtle
//	:N1A1 ...
//	```
//	:::
package display

import (
	"strings"

	"github.com/matzehuels/ontoview/pkg/dot"
	"github.com/matzehuels/ontoview/pkg/instance"
	"github.com/matzehuels/ontoview/pkg/turtle"
	"github.com/matzehuels/ontoview/pkg/vocab"
)

// Compose renders doc and returns the tabset lines. source is the YAML text
// doc was parsed from; it is shown trimmed. Both views are rendered before
// anything is returned, so an error yields no partial block.
func Compose(ctx *vocab.Context, doc instance.Document, source []byte) ([]string, error) {
	diagram, err := dot.Render(ctx, doc)
	if err != nil {
		return nil, err
	}
	ttl, err := turtle.Render(ctx, doc)
	if err != nil {
		return nil, err
	}

	lines := []string{
		"::: {.panel-tabset}",
		"### Diagram",
		"```{dot}",
	}
	lines = append(lines, diagram...)
	lines = append(lines,
		"```",
		"",
		"### YAML",
		"```yaml",
		strings.TrimSpace(string(source)),
		"```",
		"",
		"### Turtle",
		"```turtle",
	)
	lines = append(lines, ttl...)
	return append(lines, "```", ":::"), nil
}

// ComposeSource parses source and composes its block.
func ComposeSource(ctx *vocab.Context, source []byte) ([]string, error) {
	doc, err := instance.Parse(source)
	if err != nil {
		return nil, err
	}
	return Compose(ctx, doc, source)
}

// Join joins composed lines into markdown text.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}
