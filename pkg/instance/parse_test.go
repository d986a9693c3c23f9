package instance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontoview/pkg/errors"
)

const penguinYAML = `
subject: N1A1
type: Penguin
has characteristic:
  - type: mass
    has quantity: 3750
    has unit: g
`

func TestParse_SingleNode(t *testing.T) {
	doc, err := Parse([]byte(penguinYAML))
	require.NoError(t, err)

	assert.False(t, doc.Batch)
	require.Len(t, doc.Nodes, 1)

	n := doc.Nodes[0]
	assert.Equal(t, "N1A1", n.Subject)
	require.Len(t, n.Fields, 2)
	assert.Equal(t, Field{Name: "type", Value: String("Penguin")}, n.Fields[0])
	assert.Equal(t, "has characteristic", n.Fields[1].Name)

	list, ok := n.Fields[1].Value.(List)
	require.True(t, ok, "has characteristic should decode as a list")
	require.Len(t, list, 1)

	child, ok := list[0].(*Node)
	require.True(t, ok)
	assert.False(t, child.HasSubject())
	assert.Equal(t, []Field{
		{Name: "type", Value: String("mass")},
		{Name: "has quantity", Value: Int(3750)},
		{Name: "has unit", Value: String("g")},
	}, child.Fields)
}

func TestParse_PreservesFieldOrder(t *testing.T) {
	doc, err := Parse([]byte("zeta: 1\nalpha: 2\nmid: 3\n"))
	require.NoError(t, err)

	var names []string
	for _, f := range doc.Nodes[0].Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestParse_Batch(t *testing.T) {
	src := `
- subject: N1A1
  has attribute: _:N1A1_mass
- subject: _:N1A1_mass
  type: mass
  has value:
    - _:N1A1_mass_value_g
    - _:N1A1_mass_value_kg
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)

	assert.True(t, doc.Batch)
	require.Len(t, doc.Nodes, 2)
	v, ok := doc.Nodes[1].Get("has value")
	require.True(t, ok)
	assert.Equal(t, Strings("_:N1A1_mass_value_g", "_:N1A1_mass_value_kg"), v)
}

func TestParse_Scalars(t *testing.T) {
	doc, err := Parse([]byte(`
int: 42
hex: 0x10
float: 3.5
whole: 2.0
quoted: "3750"
inf: .inf
`))
	require.NoError(t, err)

	want := map[string]Value{
		"int":    Int(42),
		"hex":    Int(16),
		"float":  Float(3.5),
		"whole":  Float(2.0),
		"quoted": String("3750"),
	}
	for name, v := range want {
		got, ok := doc.Nodes[0].Get(name)
		require.True(t, ok, name)
		assert.Equal(t, v, got, name)
	}
	inf, _ := doc.Nodes[0].Get("inf")
	assert.Equal(t, "inf", FormatFloat(float64(inf.(Float))))
}

func TestParse_MixedList(t *testing.T) {
	doc, err := Parse([]byte(`
has part:
  - _:wheel
  - type: frame
`))
	require.NoError(t, err)

	v, _ := doc.Nodes[0].Get("has part")
	list := v.(List)
	require.Len(t, list, 2)
	assert.Equal(t, String("_:wheel"), list[0])
	assert.IsType(t, &Node{}, list[1])
}

func TestParse_StructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
	}{
		{"scalar document", "just text", ""},
		{"empty document", "", ""},
		{"number list item", "has value:\n  - 3\n", "has value[0]"},
		{"nested list item", "has value:\n  - [a, b]\n", "has value[0]"},
		{"batch of scalars", "- a\n- b\n", "[0]"},
		{"empty list", "has value: []\n", "has value"},
		{"null value", "has value:\n", "has value"},
		{"boolean value", "flag: true\n", "flag"},
		{"nested mapping value", "has value:\n  type: mass\n", "has value"},
		{"duplicate field", "type: a\ntype: b\n", "type"},
		{"list subject", "subject: [a]\n", "subject"},
		{"empty subject", "subject: \"\"\ntype: Penguin\n", "subject"},
		{"blank nested subject", "has part:\n  - subject: \"  \"\n    type: b\n", "has part[0].subject"},
		{"deep item error", "a:\n  - b:\n      - 1\n", "a[0].b[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.IsStructuralError(err), "want StructuralError, got %v", err)

			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.path, e.Path)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("a: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestParse_MaxDepth(t *testing.T) {
	var b strings.Builder
	for i := 0; i <= MaxDepth+1; i++ {
		indent := strings.Repeat("  ", 2*i)
		b.WriteString(indent + "has part:\n")
		b.WriteString(indent + "  - type: part\n")
	}

	_, err := Parse([]byte(b.String()))
	require.Error(t, err)
	assert.True(t, errors.IsStructuralError(err))
	assert.Contains(t, err.Error(), "maximum depth")
}

func TestNodeSet(t *testing.T) {
	n := New("x").
		Set("type", String("a")).
		Set("count", Int(1)).
		Set("type", String("b"))

	assert.Equal(t, []Field{
		{Name: "type", Value: String("b")},
		{Name: "count", Value: Int(1)},
	}, n.Fields)
}
