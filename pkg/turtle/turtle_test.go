package turtle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/instance"
	"github.com/matzehuels/ontoview/pkg/vocab"
)

const penguinContext = `
classes:
  Penguin: NCBITaxon:9238
  g: unit:g
object properties:
  has characteristic: RO:0000053
  has value: :hasValue
data properties:
  has quantity: :hasQuantity
  has unit: :hasUnit
`

func loadContext(t *testing.T) *vocab.Context {
	t.Helper()
	ctx, err := vocab.Load([]byte(penguinContext))
	require.NoError(t, err)
	return ctx
}

func penguin() *instance.Node {
	return instance.New("N1A1").
		Set("type", instance.String("Penguin")).
		Set("has characteristic", instance.Nodes(
			instance.New("").
				Set("type", instance.String("mass")).
				Set("has quantity", instance.Int(3750)).
				Set("has unit", instance.String("g")),
		))
}

func TestRender_Penguin(t *testing.T) {
	lines, err := Render(loadContext(t), instance.Single(penguin()))
	require.NoError(t, err)

	want := []string{
		":N1A1",
		"  a NCBITaxon:9238 ; # 'Penguin'",
		"  RO:0000053 [ # 'has characteristic'",
		"    a :mass ;",
		`    :hasQuantity "3750"^^xsd:integer ;`,
		"    :hasUnit unit:g",
		"  ] .",
	}
	assert.Equal(t, want, lines)
}

func TestRender_Batch(t *testing.T) {
	doc := instance.Batch(
		instance.New("N1A1").Set("has characteristic", instance.Strings("_:N1A1_mass")),
		instance.New("_:N1A1_mass").
			Set("type", instance.String("mass")).
			Set("has value", instance.Strings("_:v1", "_:v2")),
	)

	lines, err := Render(loadContext(t), doc)
	require.NoError(t, err)

	want := []string{
		":N1A1",
		"  RO:0000053 _:N1A1_mass . # 'has characteristic'",
		"",
		":_:N1A1_mass",
		"  a :mass ;",
		"  :hasValue _:v1 , _:v2 .",
	}
	assert.Equal(t, want, lines)
}

func TestRender_AnonymousRoot(t *testing.T) {
	n := instance.New("").
		Set("has quantity", instance.Float(2.5)).
		Set("has unit", instance.String("g"))

	lines, err := RenderNode(loadContext(t), n)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`  :hasQuantity "2.5"^^xsd:float ;`,
		"  :hasUnit unit:g .",
	}, lines)
}

func TestRender_LabelledObjectAndPredicate(t *testing.T) {
	ctx, err := vocab.Load([]byte(`
classes:
  mass: PATO:0000125
object properties:
  is about: IAO:0000136
data properties: {}
`))
	require.NoError(t, err)

	lines, err := RenderNode(ctx, instance.New("x").Set("is about", instance.String("mass")))
	require.NoError(t, err)
	assert.Equal(t, []string{
		":x",
		"  IAO:0000136 PATO:0000125 . # 'is about', 'mass'",
	}, lines)
}

func TestRender_IdentifiedSubject(t *testing.T) {
	ctx, err := vocab.Load([]byte(`
classes:
  Adelie: NCBITaxon:9238
object properties: {}
data properties: {}
`))
	require.NoError(t, err)

	lines, err := RenderNode(ctx, instance.New("Adelie").Set("type", instance.String("species")))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"NCBITaxon:9238 # 'Adelie'",
		"  a :species .",
	}, lines)
}

func TestRender_MultipleNestedNodes(t *testing.T) {
	n := instance.New("car").Set("has value", instance.Nodes(
		instance.New("").Set("type", instance.String("wheel")),
		instance.New("").Set("type", instance.String("frame")),
	))

	lines, err := RenderNode(loadContext(t), n)
	require.NoError(t, err)
	assert.Equal(t, []string{
		":car",
		"  :hasValue [",
		"    a :wheel",
		"  ] , [",
		"    a :frame",
		"  ] .",
	}, lines)
}

func TestRender_DeeplyNested(t *testing.T) {
	n := instance.New("a").Set("has value", instance.Nodes(
		instance.New("").Set("has value", instance.Nodes(
			instance.New("").Set("type", instance.String("leaf")),
		)),
	))

	lines, err := RenderNode(loadContext(t), n)
	require.NoError(t, err)
	assert.Equal(t, []string{
		":a",
		"  :hasValue [",
		"    :hasValue [",
		"      a :leaf",
		"    ]",
		"  ] .",
	}, lines)
}

func TestRender_MixedListErrors(t *testing.T) {
	tests := []struct {
		name string
		list instance.List
		path string
	}{
		{"node after string", instance.List{instance.String("a"), instance.New("")}, "has value[1]"},
		{"string after node", instance.List{instance.New("").Set("type", instance.String("t")), instance.String("a")}, "has value[1]"},
		{"empty list", instance.List{}, "has value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := RenderNode(loadContext(t), instance.New("x").Set("has value", tt.list))
			require.Error(t, err)
			assert.Nil(t, lines)
			assert.True(t, errors.IsStructuralError(err))

			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.path, e.Path)
		})
	}
}

func TestRender_BatchErrorPath(t *testing.T) {
	doc := instance.Batch(
		instance.New("ok").Set("type", instance.String("t")),
		instance.New("bad").Set("has value", instance.List{instance.String("a"), instance.New("")}),
	)

	lines, err := Render(loadContext(t), doc)
	require.Error(t, err)
	assert.Nil(t, lines)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "[1].has value[1]", e.Path)
}

func TestRender_NilNode(t *testing.T) {
	_, err := RenderNode(loadContext(t), nil)
	assert.True(t, errors.IsStructuralError(err))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a\n  b .", Join([]string{"a", "  b ."}))
	assert.Equal(t, "", Join(nil))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "", quote())
	assert.Equal(t, "'a'", quote("a", ""))
	assert.Equal(t, "'a', 'b'", quote("a", "b"))
}
