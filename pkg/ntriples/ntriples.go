// Package ntriples exports flattened triples as W3C N-Triples.
//
// Names are resolved through the same [vocab.Context] as the Turtle view and
// then expanded to absolute IRIs with the context's prefix table:
//
//	prefixes:
//	  "": http://example.org/penguins#
//	  RO: http://purl.obolibrary.org/obo/RO_
//
// Locally scoped codes (":hasQuantity") use the "" prefix, which defaults to
// [DefaultBase]. The rdf, rdfs, xsd and owl prefixes are always known. A code
// with any other undeclared prefix fails with a ContextError.
package ntriples

import (
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/knakk/rdf"

	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/triples"
	"github.com/matzehuels/ontoview/pkg/vocab"
)

// DefaultBase is the namespace of ":name" codes when the context declares no
// "" prefix.
const DefaultBase = "http://example.org/"

const (
	rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xsdNS = "http://www.w3.org/2001/XMLSchema#"
)

var builtinPrefixes = map[string]string{
	"rdf":  rdfNS,
	"rdfs": "http://www.w3.org/2000/01/rdf-schema#",
	"xsd":  xsdNS,
	"owl":  "http://www.w3.org/2002/07/owl#",
}

// Encode writes ts to w, one N-Triples statement per line.
func Encode(w io.Writer, ctx *vocab.Context, ts []triples.Triple) error {
	out, err := Convert(ctx, ts)
	if err != nil {
		return err
	}
	enc := rdf.NewTripleEncoder(w, rdf.NTriples)
	if err := enc.EncodeAll(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode n-triples")
	}
	return enc.Close()
}

// Convert maps triples to RDF terms without writing them.
func Convert(ctx *vocab.Context, ts []triples.Triple) ([]rdf.Triple, error) {
	x := &expander{ctx: ctx, blanks: make(map[string]rdf.Blank), used: make(map[string]bool)}
	out := make([]rdf.Triple, 0, len(ts))
	for _, t := range ts {
		subj, err := x.subject(t.Subject)
		if err != nil {
			return nil, err
		}
		pred, err := x.name(t.Predicate)
		if err != nil {
			return nil, err
		}
		obj, err := x.object(t.Predicate, t.Object)
		if err != nil {
			return nil, err
		}
		out = append(out, rdf.Triple{Subj: subj, Pred: pred, Obj: obj})
	}
	return out, nil
}

type expander struct {
	ctx *vocab.Context

	// blanks maps each blank id to its node label. used holds every label
	// handed out, so minted ids and explicit references never share one.
	blanks map[string]rdf.Blank
	used   map[string]bool
}

func (x *expander) subject(id string) (rdf.Subject, error) {
	if triples.IsBlank(id) {
		return x.blank(id)
	}
	return x.name(id)
}

func (x *expander) object(pred, obj string) (rdf.Object, error) {
	if value, dt, ok := splitTyped(obj); ok {
		iri, err := x.curie(dt)
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(value, iri), nil
	}
	if triples.IsBlank(obj) {
		return x.blank(obj)
	}
	if x.ctx.IsDataProperty(pred) {
		if _, known := x.ctx.Lookup(obj); !known {
			lit, err := rdf.NewLiteral(obj)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "literal %q", obj)
			}
			return lit, nil
		}
	}
	return x.name(obj)
}

// name resolves a vocabulary name and expands the resulting code.
func (x *expander) name(name string) (rdf.IRI, error) {
	token, _ := x.ctx.Resolve(name)
	if token == "a" {
		return newIRI(rdfNS + "type")
	}
	return x.curie(token)
}

// curie expands a prefixed code. Absolute IRIs pass through unchanged.
func (x *expander) curie(code string) (rdf.IRI, error) {
	if strings.Contains(code, "://") {
		return newIRI(code)
	}
	prefix, local, ok := strings.Cut(code, ":")
	if !ok {
		return rdf.IRI{}, errors.Context("code %q has no prefix", code)
	}
	ns, ok := x.ctx.Prefixes[prefix]
	if !ok {
		ns, ok = builtinPrefixes[prefix]
	}
	if !ok && prefix == "" {
		ns, ok = DefaultBase, true
	}
	if !ok {
		return rdf.IRI{}, errors.Context("unknown prefix %q in %q", prefix, code)
	}
	return newIRI(ns + url.PathEscape(local))
}

func newIRI(s string) (rdf.IRI, error) {
	iri, err := rdf.NewIRI(s)
	if err != nil {
		return rdf.IRI{}, errors.Wrap(errors.ErrCodeInvalidContext, err, "invalid IRI %q", s)
	}
	return iri, nil
}

// blank maps minted ids ("_3") and explicit references ("_:x") to blank
// nodes. Minted ids keep their own text as label and explicit references
// drop the "_:" marker. A label already taken by another id gets a numeric
// suffix.
func (x *expander) blank(id string) (rdf.Blank, error) {
	if b, ok := x.blanks[id]; ok {
		return b, nil
	}

	base := strings.TrimPrefix(id, vocab.BlankPrefix)
	label := base
	for n := 1; x.used[label]; n++ {
		label = base + "_" + strconv.Itoa(n)
	}

	b, err := rdf.NewBlank(label)
	if err != nil {
		return rdf.Blank{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "blank node %q", id)
	}
	x.used[label] = true
	x.blanks[id] = b
	return b, nil
}

// splitTyped splits a typed literal such as "3750"^^xsd:integer.
func splitTyped(obj string) (value, datatype string, ok bool) {
	if !strings.HasPrefix(obj, `"`) {
		return "", "", false
	}
	i := strings.LastIndex(obj, `"^^`)
	if i <= 0 {
		return "", "", false
	}
	return obj[1:i], obj[i+3:], true
}
