package instance

import "strconv"

// SubjectKey is the reserved field name carrying a node's explicit identifier.
const SubjectKey = "subject"

// MaxDepth bounds node nesting. Decoding and every renderer walk fail with a
// StructuralError past this depth, which also stops cycles in nodes built
// in code.
const MaxDepth = 64

// Value is the value of a node field: a String, Int, Float or List.
type Value interface {
	isValue()
}

// Item is an element of a List: a String or a *Node.
type Item interface {
	isItem()
}

// String is a reference to another entity or a plain literal.
type String string

// Int is an integer literal, typed xsd:integer when rendered.
type Int int64

// Float is a floating-point literal, typed xsd:float when rendered.
type Float float64

// List is a multi-valued field. Items may mix strings and nodes.
type List []Item

func (String) isValue() {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (List) isValue()   {}

func (String) isItem() {}
func (*Node) isItem()  {}

// Field is a single predicate of a node.
type Field struct {
	Name  string
	Value Value
}

// Node is one entity of an instance document.
type Node struct {
	// Subject is the explicit identifier. Empty means the node is anonymous
	// and receives a blank-node id when flattened.
	Subject string

	// Fields holds the predicates in source order. SubjectKey never appears here.
	Fields []Field
}

// New creates a node with the given explicit subject ("" for anonymous).
func New(subject string) *Node {
	return &Node{Subject: subject}
}

// HasSubject reports whether the node carries an explicit identifier.
func (n *Node) HasSubject() bool {
	return n.Subject != ""
}

// Set appends a field, or replaces the value of an existing field with the
// same name in place. It returns n for chaining.
func (n *Node) Set(name string, v Value) *Node {
	for i := range n.Fields {
		if n.Fields[i].Name == name {
			n.Fields[i].Value = v
			return n
		}
	}
	n.Fields = append(n.Fields, Field{Name: name, Value: v})
	return n
}

// Get returns the value of the named field.
func (n *Node) Get(name string) (Value, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Strings builds a List of string items.
func Strings(items ...string) List {
	l := make(List, len(items))
	for i, s := range items {
		l[i] = String(s)
	}
	return l
}

// Nodes builds a List of node items.
func Nodes(items ...*Node) List {
	l := make(List, len(items))
	for i, n := range items {
		l[i] = n
	}
	return l
}

// Document is a single node or an ordered batch of top-level nodes.
type Document struct {
	Nodes []*Node

	// Batch records that the source was a sequence of nodes.
	Batch bool
}

// Single wraps one node as a document.
func Single(n *Node) Document {
	return Document{Nodes: []*Node{n}}
}

// Batch wraps several top-level nodes as one document.
func Batch(nodes ...*Node) Document {
	return Document{Nodes: nodes, Batch: true}
}

// FieldPath appends a field name to a dotted path.
func FieldPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// IndexPath appends a list index to a path.
func IndexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
