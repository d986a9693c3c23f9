package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"

	"github.com/matzehuels/ontoview/pkg/display"
	"github.com/matzehuels/ontoview/pkg/dot"
	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/instance"
	"github.com/matzehuels/ontoview/pkg/ntriples"
	"github.com/matzehuels/ontoview/pkg/triples"
	"github.com/matzehuels/ontoview/pkg/turtle"
	"github.com/matzehuels/ontoview/pkg/vocab"
)

// RenderText produces a text format. ts must be the flattening of doc with a
// fresh counter; source is the document text shown by the display format.
// Text outputs end with a newline.
func RenderText(vctx *vocab.Context, doc instance.Document, ts []triples.Triple, source []byte, format string) ([]byte, error) {
	var lines []string
	var err error

	switch format {
	case FormatTurtle:
		lines, err = turtle.Render(vctx, doc)
	case FormatDOT:
		lines = dot.FromTriples(vctx, ts)
	case FormatDisplay:
		lines, err = display.Compose(vctx, doc, source)
	case FormatNTriples:
		var buf bytes.Buffer
		if err := ntriples.Encode(&buf, vctx, ts); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTriples:
		return encodeTSV(ts)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "%q is not a text format", format)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// RenderRaster runs DOT source through Graphviz.
func RenderRaster(ctx context.Context, src, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data, err = dot.RenderSVG(ctx, src)
	case FormatPNG:
		data, err = dot.RenderPNG(ctx, src)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "%q is not a raster format", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return data, nil
}

// encodeTSV writes one subject/predicate/object row per triple.
func encodeTSV(ts []triples.Triple) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '\t'
	for _, t := range ts {
		if err := w.Write([]string{t.Subject, t.Predicate, t.Object}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write triples")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write triples")
	}
	return buf.Bytes(), nil
}
