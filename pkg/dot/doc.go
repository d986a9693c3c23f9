// Package dot renders instance documents as Graphviz diagrams.
//
// # Architecture
//
// The diagram is built from the flattened triple list rather than from the
// document tree:
//
//	Document → triples.Flatten() → []Triple → FromTriples() → DOT → RenderSVG() → SVG
//
// Every identifier is placed in one of three same-rank subgraphs: classes
// (objects of "type"), instances (subjects and referenced entities) and
// literals (objects of data properties). The graph is laid out bottom to
// top, so classes sit above the instances that point at them.
//
// # Edge Styles
//
// Each triple becomes one edge, styled by its predicate in priority order:
//
//   - type: dashed, instance → class, no label
//   - data property: dotted, drawn from the literal with dir="back"
//   - reverse property: solid, drawn from the object with dir="back"
//   - loose property: solid, constraint="false" so it does not affect ranking
//   - anything else: solid, subject → object
//
// # Rasterization
//
// [RenderSVG] and [RenderPNG] run the DOT source through the Graphviz
// WebAssembly build bundled with github.com/goccy/go-graphviz, so no system
// Graphviz installation is needed.
package dot
