// Package triples flattens instance documents into subject–predicate–object
// relations.
//
// Nodes without an explicit subject receive blank-node ids "_0", "_1", ...
// from a [Counter]. A Counter belongs to one render invocation: create a new
// one per call so repeated or concurrent renders stay independent and
// reproducible.
//
//	ts, err := triples.Flatten(doc, triples.NewCounter(0))
//	for _, t := range ts {
//	    fmt.Println(t.Subject, t.Predicate, t.Object)
//	}
package triples

import (
	"strconv"

	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/instance"
)

// Triple is a single relation. Object is a bare name (resolved at render
// time), a blank-node id, or a typed literal such as "3750"^^xsd:integer.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// Counter mints blank-node ids. The zero value starts at "_0".
type Counter struct {
	next int
}

// NewCounter creates a counter whose first id is "_<start>".
func NewCounter(start int) *Counter {
	return &Counter{next: start}
}

// Next returns a fresh blank-node id. Ids strictly increase.
func (c *Counter) Next() string {
	id := "_" + strconv.Itoa(c.next)
	c.next++
	return id
}

// Peek returns the numeric value of the next id without consuming it.
func (c *Counter) Peek() int {
	return c.next
}

// Flatten flattens every node of doc in order, sharing c across the batch.
// On error no triples are returned.
func Flatten(doc instance.Document, c *Counter) ([]Triple, error) {
	var out []Triple
	for i, n := range doc.Nodes {
		path := ""
		if doc.Batch {
			path = instance.IndexPath("", i)
		}
		ts, err := flattenNode(n, "", c, path, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, ts...)
	}
	return out, nil
}

// FlattenNode flattens a single top-level node.
func FlattenNode(n *instance.Node, c *Counter) ([]Triple, error) {
	return flattenNode(n, "", c, "", 0)
}

// flattenNode walks n depth first. A non-empty id overrides minting: it is
// the link id already emitted by the parent.
func flattenNode(n *instance.Node, id string, c *Counter, path string, depth int) ([]Triple, error) {
	if n == nil {
		return nil, errors.Structural(path, "not a node: nil")
	}
	if depth > instance.MaxDepth {
		return nil, errors.Structural(path, "nesting exceeds maximum depth %d", instance.MaxDepth)
	}

	subject := id
	if subject == "" {
		subject = SubjectOf(n, c)
	}

	var out []Triple
	for _, f := range n.Fields {
		fieldPath := instance.FieldPath(path, f.Name)
		switch v := f.Value.(type) {
		case instance.String:
			out = append(out, Triple{subject, f.Name, string(v)})
		case instance.Int:
			out = append(out, Triple{subject, f.Name, v.Literal()})
		case instance.Float:
			out = append(out, Triple{subject, f.Name, v.Literal()})
		case instance.List:
			for i, item := range v {
				switch it := item.(type) {
				case instance.String:
					out = append(out, Triple{subject, f.Name, string(it)})
				case *instance.Node:
					itemPath := instance.IndexPath(fieldPath, i)
					if it == nil {
						return nil, errors.Structural(itemPath, "not a string or node: nil")
					}
					link := SubjectOf(it, c)
					out = append(out, Triple{subject, f.Name, link})
					nested, err := flattenNode(it, link, c, itemPath, depth+1)
					if err != nil {
						return nil, err
					}
					out = append(out, nested...)
				default:
					return nil, errors.Structural(instance.IndexPath(fieldPath, i), "not a string or node: %v", item)
				}
			}
		default:
			return nil, errors.Structural(fieldPath, "unsupported value: %v", f.Value)
		}
	}
	return out, nil
}

// SubjectOf returns the explicit subject of n, or mints a blank id from c.
func SubjectOf(n *instance.Node, c *Counter) string {
	if n.HasSubject() {
		return n.Subject
	}
	return c.Next()
}

// IsBlank reports whether id is a blank-node id, minted ("_3") or explicit ("_:x").
func IsBlank(id string) bool {
	return len(id) > 0 && id[0] == '_'
}
