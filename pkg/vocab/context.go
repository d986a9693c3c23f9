// Package vocab resolves human-readable names to compact vocabulary codes.
//
// A [Context] is loaded from a YAML (or TOML) document with three
// vocabulary tables and a few display/classification tables:
//
//	classes:
//	  Adelie Penguin (Pygoscelis adeliae): NCBITaxon:9238
//	  g: unit:g
//	object properties:
//	  has characteristic: RO:0000053
//	data properties:
//	  has quantity: :hasQuantity
//	short:
//	  Adelie Penguin (Pygoscelis adeliae): Adelie Penguin
//	reverse:
//	  - has specified output
//	loose:
//	  - is about
//
// The three vocabulary tables are merged into [Context.IDs] in the order
// classes, object properties, data properties; a name defined in more than
// one table takes the code of the later table.
package vocab

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ontoview/pkg/errors"
)

// TypePredicate is the field name rendered with the "a" shorthand.
const TypePredicate = "type"

// Context holds the vocabulary mapping used by every renderer.
type Context struct {
	Classes          map[string]string
	ObjectProperties map[string]string
	DataProperties   map[string]string

	// Short maps a name to a shortened display label for diagrams.
	Short map[string]string

	// Reverse lists properties whose diagram edges point from object to subject.
	Reverse map[string]bool

	// Loose lists properties whose diagram edges do not constrain ranking.
	Loose map[string]bool

	// Prefixes maps CURIE prefixes to namespace IRIs. Only N-Triples export
	// reads it; the "" prefix covers locally-scoped ":name" codes.
	Prefixes map[string]string

	// IDs is the merged name → code table.
	IDs map[string]string
}

// source mirrors the on-disk layout. Pointers distinguish an absent table
// from an empty one.
type source struct {
	Classes          *map[string]string `yaml:"classes" toml:"classes"`
	ObjectProperties *map[string]string `yaml:"object properties" toml:"object properties"`
	DataProperties   *map[string]string `yaml:"data properties" toml:"data properties"`
	Short            map[string]string  `yaml:"short" toml:"short"`
	Reverse          []string           `yaml:"reverse" toml:"reverse"`
	Loose            []string           `yaml:"loose" toml:"loose"`
	Prefixes         map[string]string  `yaml:"prefixes" toml:"prefixes"`
}

// Load parses a YAML context. It fails with a ContextError if the source is
// not a mapping or a vocabulary table is missing; short, reverse, loose and
// prefixes default to empty.
func Load(data []byte) (*Context, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidContext, err, "parse context")
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, errors.Context("context must be a mapping")
	}

	var src source
	if err := root.Content[0].Decode(&src); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidContext, err, "decode context")
	}
	return src.build()
}

// LoadTOML parses a TOML context with the same tables as [Load]. Table names
// containing spaces are quoted: ["object properties"].
func LoadTOML(data []byte) (*Context, error) {
	var src source
	if _, err := toml.Decode(string(data), &src); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidContext, err, "parse context")
	}
	return src.build()
}

// LoadFile reads a context file, choosing TOML for a .toml extension and
// YAML otherwise.
func LoadFile(path string) (*Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "context file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read context %s", path)
	}
	if IsTOML(path) {
		return LoadTOML(data)
	}
	return Load(data)
}

// IsTOML reports whether path names a TOML context.
func IsTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func (s source) build() (*Context, error) {
	switch {
	case s.Classes == nil || *s.Classes == nil:
		return nil, errors.Context("missing required table %q", "classes")
	case s.ObjectProperties == nil || *s.ObjectProperties == nil:
		return nil, errors.Context("missing required table %q", "object properties")
	case s.DataProperties == nil || *s.DataProperties == nil:
		return nil, errors.Context("missing required table %q", "data properties")
	}

	c := &Context{
		Classes:          *s.Classes,
		ObjectProperties: *s.ObjectProperties,
		DataProperties:   *s.DataProperties,
		Short:            s.Short,
		Reverse:          toSet(s.Reverse),
		Loose:            toSet(s.Loose),
		Prefixes:         s.Prefixes,
	}
	if c.Short == nil {
		c.Short = map[string]string{}
	}
	if c.Prefixes == nil {
		c.Prefixes = map[string]string{}
	}
	c.Rebuild()
	return c, nil
}

// Rebuild recomputes IDs from the three vocabulary tables. Call it after
// editing a table of a loaded Context.
func (c *Context) Rebuild() {
	ids := make(map[string]string, len(c.Classes)+len(c.ObjectProperties)+len(c.DataProperties))
	for _, table := range []map[string]string{c.Classes, c.ObjectProperties, c.DataProperties} {
		for name, code := range table {
			ids[name] = code
		}
	}
	c.IDs = ids
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
