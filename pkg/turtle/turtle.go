// Package turtle pretty-prints instance documents as Turtle-style text.
//
// The renderer walks the document tree directly. Names are resolved through
// a [vocab.Context]; when a name maps to a vocabulary code, the original name
// is kept as a trailing comment:
//
//	:N1A1
//	  a NCBITaxon:9238 ; # 'Adelie Penguin (Pygoscelis adeliae)'
//	  RO:0000053 [ # 'has characteristic'
//	    a PATO:0000125 ; # 'mass'
//	    :hasQuantity "3750"^^xsd:integer ;
//	    :hasUnit unit:g
//	  ] .
//
// A list field is rendered by the type of its first item: strings as an
// inline comma list, nodes as bracketed nested blocks. Lists that mix the two
// are accepted by the triple flattener but rejected here with a
// StructuralError.
package turtle

import (
	"strings"

	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/instance"
	"github.com/matzehuels/ontoview/pkg/vocab"
)

// line is one output line. body carries the statement and its terminator,
// comment the text after "# ".
type line struct {
	indent  string
	body    string
	comment string
}

func (l line) String() string {
	if l.comment == "" {
		return l.indent + l.body
	}
	return l.indent + l.body + " # " + l.comment
}

// Render renders every top-level node of doc, separating blocks with one
// blank line. No lines are returned on error.
func Render(ctx *vocab.Context, doc instance.Document) ([]string, error) {
	var out []string
	for i, n := range doc.Nodes {
		path := ""
		if doc.Batch {
			path = instance.IndexPath("", i)
		}
		block, err := renderNode(ctx, n, 0, path)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, toStrings(block)...)
	}
	return out, nil
}

// RenderNode renders a single top-level node.
func RenderNode(ctx *vocab.Context, n *instance.Node) ([]string, error) {
	block, err := renderNode(ctx, n, 0, "")
	if err != nil {
		return nil, err
	}
	return toStrings(block), nil
}

// Join joins rendered lines into text.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

func renderNode(ctx *vocab.Context, n *instance.Node, depth int, path string) ([]line, error) {
	if n == nil {
		return nil, errors.Structural(path, "not a node: nil")
	}
	if depth > instance.MaxDepth {
		return nil, errors.Structural(path, "nesting exceeds maximum depth %d", instance.MaxDepth)
	}

	indent := strings.Repeat("  ", depth)
	var lines []line

	if n.HasSubject() {
		if code, ok := ctx.Lookup(n.Subject); ok {
			lines = append(lines, line{indent: indent, body: code, comment: quote(n.Subject)})
		} else {
			lines = append(lines, line{indent: indent, body: ":" + n.Subject})
		}
	}

	for _, f := range n.Fields {
		fieldPath := instance.FieldPath(path, f.Name)
		pred, predLabel := ctx.Resolve(f.Name)

		switch v := f.Value.(type) {
		case instance.List:
			rendered, err := renderList(ctx, v, pred, predLabel, indent, depth, fieldPath)
			if err != nil {
				return nil, err
			}
			lines = append(lines, rendered...)

		default:
			var labels []string
			if predLabel != "" {
				labels = append(labels, predLabel)
			}
			obj, objLabel, err := scalar(ctx, f.Value, fieldPath)
			if err != nil {
				return nil, err
			}
			if objLabel != "" {
				labels = append(labels, objLabel)
			}
			lines = append(lines, line{
				indent:  indent,
				body:    "  " + pred + " " + obj + " ;",
				comment: quote(labels...),
			})
		}
	}

	terminate(lines, depth)
	return lines, nil
}

func renderList(ctx *vocab.Context, v instance.List, pred, predLabel, indent string, depth int, path string) ([]line, error) {
	if len(v) == 0 {
		return nil, errors.Structural(path, "empty list")
	}

	if _, inline := v[0].(instance.String); inline {
		items := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(instance.String)
			if !ok {
				return nil, errors.Structural(instance.IndexPath(path, i), "cannot render a node inside an inline string list")
			}
			items[i] = string(s)
		}
		return []line{{
			indent:  indent,
			body:    "  " + pred + " " + strings.Join(items, " , ") + " ;",
			comment: quote(predLabel),
		}}, nil
	}

	lines := []line{{indent: indent, body: "  " + pred + " [", comment: quote(predLabel)}}
	for i, item := range v {
		itemPath := instance.IndexPath(path, i)
		child, ok := item.(*instance.Node)
		if !ok {
			return nil, errors.Structural(itemPath, "not a node: %v", item)
		}
		nested, err := renderNode(ctx, child, depth+1, itemPath)
		if err != nil {
			return nil, err
		}
		lines = append(lines, nested...)
		if i < len(v)-1 {
			lines = append(lines, line{indent: indent, body: "  ] , ["})
		}
	}
	lines = append(lines, line{indent: indent, body: "  ] ;"})
	return lines, nil
}

// scalar returns the object token of a non-list value and its label.
func scalar(ctx *vocab.Context, v instance.Value, path string) (token, label string, err error) {
	switch v := v.(type) {
	case instance.String:
		token, label = ctx.Resolve(string(v))
		return token, label, nil
	case instance.Int:
		return v.Literal(), "", nil
	case instance.Float:
		return v.Literal(), "", nil
	default:
		return "", "", errors.Structural(path, "unsupported value: %v", v)
	}
}

// terminate fixes the last statement of a block: top-level blocks end with
// ".", nested blocks drop their terminator because the enclosing "]" line
// supplies one.
func terminate(lines []line, depth int) {
	if len(lines) == 0 {
		return
	}
	last := &lines[len(lines)-1]
	if depth == 0 {
		if strings.HasSuffix(last.body, ";") {
			last.body = strings.TrimSuffix(last.body, ";") + "."
		}
		return
	}
	last.body = strings.TrimSuffix(last.body, " ;")
}

// quote formats labels as a comment: 'a', 'b'.
func quote(labels ...string) string {
	var parts []string
	for _, l := range labels {
		if l != "" {
			parts = append(parts, "'"+l+"'")
		}
	}
	return strings.Join(parts, ", ")
}

func toStrings(lines []line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}
