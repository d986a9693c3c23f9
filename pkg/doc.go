// Package pkg provides the core libraries for Ontoview ontology instance rendering.
//
// # Overview
//
// Ontoview turns compact YAML descriptions of ontology instances into RDF
// Turtle, Graphviz diagrams, N-Triples and documentation blocks. A vocabulary
// context maps readable names to ontology codes, so documents stay readable
// while the output uses CURIEs.
//
// # Architecture
//
// The typical data flow through Ontoview:
//
//	Context (YAML/TOML) + Document (YAML)
//	         ↓
//	    [vocab] + [instance] packages (decode)
//	         ↓
//	    [triples] package (flatten, number blank nodes)
//	         ↓
//	    [turtle] / [dot] / [ntriples] / [display] (serialize)
//	         ↓
//	    TTL/DOT/NT/QMD/TSV/SVG/PNG output
//
// # Quick Start
//
// Render a document with the pipeline runner:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), cache.NewDefaultKeyer(), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Context:  string(contextYAML),
//	    Document: string(documentYAML),
//	    Formats:  []string{pipeline.FormatTurtle, pipeline.FormatSVG},
//	})
//	os.Stdout.Write(result.Artifacts[pipeline.FormatTurtle])
//
// # Main Packages
//
// ## Domain
//
// [vocab] - Vocabulary contexts: classes, object and data properties, short
// labels, reverse and loose predicates.
//
// [instance] - Instance documents: a single node, a list of nodes or nested
// nodes with explicit subjects.
//
// [triples] - Flattening of documents into subject/predicate/object triples.
//
// ## Serialization
//
// [turtle] - Turtle statement blocks with label comments. Prefix
// declarations are left to the enclosing document.
//
// [dot] - Graphviz DOT with node classes, plus SVG and PNG rendering.
//
// [ntriples] - N-Triples with expanded IRIs and typed literals.
//
// [display] - Documentation blocks embedding the document, Turtle and DOT.
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline (decode → flatten → render) used by the CLI
// and the HTTP server.
//
// [cache] - Artifact caches: file (CLI), Redis (servers) and null (tests).
//
// [observability] - Hooks for parse, render and HTTP events.
//
// [errors] - Coded errors shared by every entry point.
//
// [buildinfo] - Version information set at link time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/turtle/...             # Specific package
//	go test -run Example                 # Examples only
//
// [vocab]: https://pkg.go.dev/github.com/matzehuels/ontoview/pkg/vocab
// [instance]: https://pkg.go.dev/github.com/matzehuels/ontoview/pkg/instance
// [triples]: https://pkg.go.dev/github.com/matzehuels/ontoview/pkg/triples
// [turtle]: https://pkg.go.dev/github.com/matzehuels/ontoview/pkg/turtle
// [dot]: https://pkg.go.dev/github.com/matzehuels/ontoview/pkg/dot
// [ntriples]: https://pkg.go.dev/github.com/matzehuels/ontoview/pkg/ntriples
// [display]: https://pkg.go.dev/github.com/matzehuels/ontoview/pkg/display
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ontoview/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/ontoview/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/ontoview/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/ontoview/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/ontoview/pkg/buildinfo
package pkg
