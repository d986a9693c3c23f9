// Package instance provides the data model for instance documents: trees of
// typed entities whose fields describe their relations and attributes.
//
// # Overview
//
// An instance document is written in YAML. Each mapping is a [Node]; the
// optional "subject" key names the entity, every other key is a predicate:
//
//	subject: N1A1
//	type: Adelie Penguin (Pygoscelis adeliae)
//	has characteristic:
//	  - type: mass
//	    has quantity: 3750
//	    has unit: g
//
// Field values form a closed set. A [Value] is one of [String], [Int],
// [Float] or [List], and each [Item] of a list is either a [String] or a
// nested *[Node]. Renderers switch on these types exhaustively:
//
//	switch v := f.Value.(type) {
//	case instance.String:
//	case instance.Int:
//	case instance.Float:
//	case instance.List:
//	}
//
// # Field Order
//
// Field order is significant: it drives triple order and the order of
// Turtle statements. [Parse] decodes at the yaml.Node level so the order of
// the source mapping is kept.
//
// # Documents
//
// A [Document] is either a single node or a batch of top-level nodes that
// share one render pass. [Parse] reports shape violations as StructuralError
// values from [github.com/matzehuels/ontoview/pkg/errors], located by a
// field path such as "has characteristic[0].has unit".
package instance
