package instance

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ontoview/pkg/errors"
)

// Parse decodes a YAML instance document: a mapping (one node) or a
// sequence of mappings (a batch).
//
// Malformed YAML is reported with code INVALID_INPUT. Shape violations are
// StructuralErrors: a top-level value or list item that is not a node, a
// list item that is neither a string nor a node, an empty list, a null,
// boolean or nested-mapping field value, an empty subject, a duplicate
// field, or nesting beyond MaxDepth.
func Parse(data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse document")
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return Document{}, errors.Structural("", "empty document")
	}

	n := deref(&root)
	if n.Kind == yaml.DocumentNode {
		n = deref(n.Content[0])
	}

	switch n.Kind {
	case yaml.MappingNode:
		node, err := decodeNode(n, "", 0)
		if err != nil {
			return Document{}, err
		}
		return Single(node), nil

	case yaml.SequenceNode:
		doc := Document{Batch: true}
		for i, item := range n.Content {
			item = deref(item)
			path := IndexPath("", i)
			if item.Kind != yaml.MappingNode {
				return Document{}, errors.Structural(path, "not a node: %s", describe(item))
			}
			node, err := decodeNode(item, path, 0)
			if err != nil {
				return Document{}, err
			}
			doc.Nodes = append(doc.Nodes, node)
		}
		return doc, nil

	default:
		return Document{}, errors.Structural("", "not a node: %s", describe(n))
	}
}

func decodeNode(n *yaml.Node, path string, depth int) (*Node, error) {
	if depth > MaxDepth {
		return nil, errors.Structural(path, "nesting exceeds maximum depth %d", MaxDepth)
	}

	out := &Node{}
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], deref(n.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return nil, errors.Structural(path, "field name must be a scalar (line %d)", key.Line)
		}

		name := key.Value
		fieldPath := FieldPath(path, name)
		if seen[name] {
			return nil, errors.Structural(fieldPath, "duplicate field (line %d)", key.Line)
		}
		seen[name] = true

		if name == SubjectKey {
			if val.Kind != yaml.ScalarNode || val.ShortTag() == "!!null" {
				return nil, errors.Structural(fieldPath, "subject must be a scalar (line %d)", val.Line)
			}
			if strings.TrimSpace(val.Value) == "" {
				return nil, errors.Structural(fieldPath, "subject must not be empty (line %d)", val.Line)
			}
			out.Subject = val.Value
			continue
		}

		v, err := decodeValue(val, fieldPath, depth)
		if err != nil {
			return nil, err
		}
		out.Fields = append(out.Fields, Field{Name: name, Value: v})
	}
	return out, nil
}

func decodeValue(n *yaml.Node, path string, depth int) (Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return decodeScalar(n, path)

	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return nil, errors.Structural(path, "empty list (line %d)", n.Line)
		}
		list := make(List, 0, len(n.Content))
		for i, item := range n.Content {
			item = deref(item)
			itemPath := IndexPath(path, i)
			switch {
			case item.Kind == yaml.ScalarNode && item.ShortTag() == "!!str":
				list = append(list, String(item.Value))
			case item.Kind == yaml.MappingNode:
				child, err := decodeNode(item, itemPath, depth+1)
				if err != nil {
					return nil, err
				}
				list = append(list, child)
			default:
				return nil, errors.Structural(itemPath, "not a string or node: %s", describe(item))
			}
		}
		return list, nil

	case yaml.MappingNode:
		return nil, errors.Structural(path, "nested node must be written as a list item (line %d)", n.Line)

	default:
		return nil, errors.Structural(path, "unsupported value: %s", describe(n))
	}
}

func decodeScalar(n *yaml.Node, path string) (Value, error) {
	switch n.ShortTag() {
	case "!!str", "!!timestamp":
		return String(n.Value), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, errors.Structural(path, "integer out of range: %s (line %d)", n.Value, n.Line)
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, errors.Structural(path, "invalid float: %s (line %d)", n.Value, n.Line)
		}
		return Float(f), nil
	case "!!null":
		return nil, errors.Structural(path, "missing value (line %d)", n.Line)
	default:
		return nil, errors.Structural(path, "unsupported value: %s", describe(n))
	}
}

// deref follows aliases to the anchored node.
func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return fmt.Sprintf("%s %q (line %d)", n.ShortTag(), n.Value, n.Line)
	case yaml.SequenceNode:
		return fmt.Sprintf("list (line %d)", n.Line)
	case yaml.MappingNode:
		return fmt.Sprintf("mapping (line %d)", n.Line)
	default:
		return "unsupported YAML node"
	}
}
