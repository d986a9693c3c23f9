package dot

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

const smallGraph = `digraph G { "a" -> "b" [label="x"] ; }`

func TestValidate(t *testing.T) {
	if err := Validate(smallGraph); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), smallGraph)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("RenderSVG() output is not SVG: %.80s", svg)
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Error("RenderSVG() viewBox not normalized")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116">`
	if !strings.HasPrefix(out, want) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	noBox := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(noBox); !bytes.Equal(got, noBox) {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %s", got)
	}
}
