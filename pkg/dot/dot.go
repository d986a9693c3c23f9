package dot

import (
	"strings"

	"github.com/matzehuels/ontoview/pkg/instance"
	"github.com/matzehuels/ontoview/pkg/triples"
	"github.com/matzehuels/ontoview/pkg/vocab"
)

// Groups partitions every identifier of a triple list into three disjoint,
// first-occurrence-ordered sets.
type Groups struct {
	Classes   []string
	Instances []string
	Literals  []string
}

// EdgeKind selects the drawing rule of a triple.
type EdgeKind int

const (
	EdgeDefault EdgeKind = iota // solid, subject → object
	EdgeType                    // dashed, instance → class
	EdgeData                    // dotted, literal → subject, arrow reversed
	EdgeReverse                 // solid, object → subject, arrow reversed
	EdgeLoose                   // solid, subject → object, constraint=false
)

// Render flattens doc with a fresh counter and renders the triples.
func Render(ctx *vocab.Context, doc instance.Document) ([]string, error) {
	ts, err := triples.Flatten(doc, triples.NewCounter(0))
	if err != nil {
		return nil, err
	}
	return FromTriples(ctx, ts), nil
}

// Classify groups identifiers. Subjects are instances. Objects of "type"
// that are not instances are classes. Objects of data properties that are
// neither are literals. Remaining objects are referenced entities and join
// the instances, so every edge endpoint falls in exactly one group.
func Classify(ctx *vocab.Context, ts []triples.Triple) Groups {
	var g Groups
	group := make(map[string]int)
	const (
		grpInstance = iota + 1
		grpClass
		grpLiteral
	)

	for _, t := range ts {
		if group[t.Subject] == 0 {
			group[t.Subject] = grpInstance
		}
	}
	for _, t := range ts {
		if group[t.Object] != 0 {
			continue
		}
		switch Kind(ctx, t.Predicate) {
		case EdgeType:
			group[t.Object] = grpClass
		case EdgeData:
			group[t.Object] = grpLiteral
		default:
			group[t.Object] = grpInstance
		}
	}

	seen := make(map[string]bool, len(group))
	add := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		switch group[id] {
		case grpInstance:
			g.Instances = append(g.Instances, id)
		case grpClass:
			g.Classes = append(g.Classes, id)
		case grpLiteral:
			g.Literals = append(g.Literals, id)
		}
	}
	for _, t := range ts {
		add(t.Subject)
	}
	for _, t := range ts {
		add(t.Object)
	}
	return g
}

// Kind classifies a predicate. The checks run in priority order: type, data
// property, reverse, loose, default.
func Kind(ctx *vocab.Context, predicate string) EdgeKind {
	switch {
	case predicate == vocab.TypePredicate:
		return EdgeType
	case ctx.IsDataProperty(predicate):
		return EdgeData
	case ctx.IsReverse(predicate):
		return EdgeReverse
	case ctx.IsLoose(predicate):
		return EdgeLoose
	default:
		return EdgeDefault
	}
}

// FromTriples renders a bottom-to-top digraph with one same-rank subgraph
// per group and one edge per triple.
func FromTriples(ctx *vocab.Context, ts []triples.Triple) []string {
	g := Classify(ctx, ts)

	lines := []string{
		`digraph G {`,
		`  graph [rankdir="BT"]`,
		`  node [shape="rect"]`,
		`  subgraph classes {`,
		`    rank="same" ;`,
	}
	for _, c := range g.Classes {
		if short, ok := ctx.ShortLabel(c); ok {
			lines = append(lines, `    "`+Escape(c)+`" [label="`+Escape(short)+`"] ;`)
		} else {
			lines = append(lines, `    "`+Escape(c)+`" ;`)
		}
	}

	lines = append(lines,
		`  }`,
		`  subgraph instances {`,
		`    rank="same" ;`,
		`    node [style="dashed"] ;`,
	)
	for _, i := range g.Instances {
		if triples.IsBlank(i) {
			lines = append(lines, `    "`+Escape(i)+`" [label=""] ;`)
		} else {
			lines = append(lines, `    "`+Escape(i)+`" ;`)
		}
	}

	lines = append(lines,
		`  }`,
		`  subgraph literals {`,
		`    rank="same" ;`,
		`    node [shape="plaintext"] ;`,
	)
	for _, l := range g.Literals {
		if code, ok := ctx.Lookup(l); ok {
			lines = append(lines, `    "`+Escape(l)+`" [label="`+Escape(code)+`"] ;`)
		} else {
			lines = append(lines, `    "`+Escape(l)+`" ;`)
		}
	}
	lines = append(lines, `  }`)

	for _, t := range ts {
		lines = append(lines, edge(ctx, t))
	}
	return append(lines, `}`)
}

func edge(ctx *vocab.Context, t triples.Triple) string {
	s, p, o := Escape(t.Subject), Escape(t.Predicate), Escape(t.Object)
	switch Kind(ctx, t.Predicate) {
	case EdgeType:
		return `  "` + s + `" -> "` + o + `" [style="dashed"];`
	case EdgeData:
		return `  "` + o + `" -> "` + s + `" [label="` + p + `", dir="back", style="dotted"];`
	case EdgeReverse:
		return `  "` + o + `" -> "` + s + `" [label="` + p + `", dir="back"] ;`
	case EdgeLoose:
		return `  "` + s + `" -> "` + o + `" [label="` + p + `", constraint="false"] ;`
	default:
		return `  "` + s + `" -> "` + o + `" [label="` + p + `"] ;`
	}
}

// Escape prepares an identifier for a double-quoted DOT string.
func Escape(id string) string {
	return strings.ReplaceAll(id, `"`, `\"`)
}

// Join joins rendered lines into DOT source.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}
