package pipeline

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontoview/pkg/cache"
	"github.com/matzehuels/ontoview/pkg/dot"
	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/observability"
)

const testContext = `
classes:
  Penguin: NCBITaxon:9238
object properties:
  has characteristic: RO:0000053
data properties:
  has quantity: :hasQuantity
  has unit: :hasUnit
prefixes:
  NCBITaxon: http://purl.obolibrary.org/obo/NCBITaxon_
  RO: http://purl.obolibrary.org/obo/RO_
`

const testDocument = `
subject: N1A1
type: Penguin
has characteristic:
  - type: mass
    has quantity: 3750
    has unit: g
`

// memCache is an in-memory cache.Cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func newTestRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestExecuteTextFormats(t *testing.T) {
	r := newTestRunner(nil)
	res, err := r.Execute(context.Background(), Options{
		Context:  testContext,
		Document: testDocument,
		Formats:  []string{FormatTurtle, FormatDOT, FormatTriples, FormatNTriples, FormatDisplay},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.Stats.NodeCount != 2 || res.Stats.TripleCount != 5 {
		t.Errorf("stats = %+v", res.Stats)
	}

	ttl := string(res.Artifacts[FormatTurtle])
	if !strings.HasSuffix(ttl, "  ] .\n") {
		t.Errorf("turtle should end with the terminated bracket:\n%s", ttl)
	}

	d := string(res.Artifacts[FormatDOT])
	if !strings.HasPrefix(d, "digraph G {\n") || !strings.Contains(d, `"_0" [label=""] ;`) {
		t.Errorf("unexpected DOT:\n%s", d)
	}

	tsv := strings.Split(strings.TrimSpace(string(res.Artifacts[FormatTriples])), "\n")
	if len(tsv) != 5 || tsv[0] != "N1A1\ttype\tPenguin" {
		t.Errorf("unexpected TSV: %q", tsv)
	}

	nt := strings.Split(strings.TrimSpace(string(res.Artifacts[FormatNTriples])), "\n")
	if len(nt) != 5 {
		t.Errorf("want 5 N-Triples lines, got %d", len(nt))
	}

	if !strings.HasPrefix(string(res.Artifacts[FormatDisplay]), "::: {.panel-tabset}\n") {
		t.Error("display output should open a tabset")
	}
}

func TestExecuteTOMLContext(t *testing.T) {
	r := newTestRunner(nil)
	res, err := r.Execute(context.Background(), Options{
		Context: `
[classes]
Penguin = "NCBITaxon:9238"
["object properties"]
["data properties"]
`,
		ContextFormat: ContextTOML,
		Document:      "type: Penguin\n",
		Formats:       []string{FormatTurtle},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got := string(res.Artifacts[FormatTurtle]); got != "  a NCBITaxon:9238 . # 'Penguin'\n" {
		t.Errorf("turtle = %q", got)
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		document string
		formats  []string
		check    func(error) bool
	}{
		{"bad context", "- a\n", testDocument, nil, errors.IsContextError},
		{"bad document", testContext, "- 1\n", nil, errors.IsStructuralError},
		{"mixed list in turtle", testContext, "has value:\n  - a\n  - type: b\n", []string{FormatTurtle}, errors.IsStructuralError},
		{"local names need no prefix", testContext, "has unit: g\ntype: x\nhas characteristic:\n  - is about: y\n", []string{FormatNTriples}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestRunner(nil).Execute(context.Background(), Options{
				Context:  tt.context,
				Document: tt.document,
				Formats:  tt.formats,
			})
			if tt.check == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || res != nil {
				t.Fatalf("want error and no result, got %v", err)
			}
			if !tt.check(err) {
				t.Errorf("wrong error kind: %v", err)
			}
		})
	}
}

func TestExecuteMixedListDOTOnly(t *testing.T) {
	res, err := newTestRunner(nil).Execute(context.Background(), Options{
		Context:  testContext,
		Document: "has characteristic:\n  - _:x\n  - type: mass\n",
		Formats:  []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("mixed lists are fine for DOT: %v", err)
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), `"_0" -> "_:x"`) {
		t.Errorf("unexpected DOT:\n%s", res.Artifacts[FormatDOT])
	}
}

func TestExecuteRasterCacheHit(t *testing.T) {
	c := newMemCache()
	r := newTestRunner(c)
	opts := Options{Context: testContext, Document: testDocument, Formats: []string{FormatSVG}}

	parsed, err := r.Parse(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	src := dot.Join(dot.FromTriples(parsed.Context, parsed.Triples))
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(src)), cache.ArtifactKeyOpts{Format: FormatSVG})
	c.data[key] = []byte("<svg>cached</svg>")

	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if string(res.Artifacts[FormatSVG]) != "<svg>cached</svg>" {
		t.Errorf("svg should come from cache, got %q", res.Artifacts[FormatSVG])
	}
	if !res.RenderHit() {
		t.Error("RenderHit() should be true")
	}
	if hooks.hits != 1 || hooks.misses != 0 {
		t.Errorf("hooks: hits %d, misses %d", hooks.hits, hooks.misses)
	}
	if c.sets != 0 {
		t.Error("a cache hit must not write")
	}
}

func TestExecuteRasterRendersAndCaches(t *testing.T) {
	c := newMemCache()
	r := newTestRunner(c)
	opts := Options{Context: testContext, Document: testDocument, Formats: []string{FormatSVG}}

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "<svg") {
		t.Error("expected SVG output")
	}
	if res.RenderHit() || c.sets != 1 {
		t.Errorf("first render should miss and store once: hit %v, sets %d", res.RenderHit(), c.sets)
	}

	res, err = r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.RenderHit() {
		t.Error("second render should hit the cache")
	}

	opts.Refresh = true
	res, err = r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.RenderHit() || c.sets != 2 {
		t.Errorf("refresh should bypass the cache: hit %v, sets %d", res.RenderHit(), c.sets)
	}
}

func TestExecuteRenderHooks(t *testing.T) {
	hooks := &recordingPipelineHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	_, err := newTestRunner(nil).Execute(context.Background(), Options{
		Context:  testContext,
		Document: testDocument,
		Formats:  []string{FormatTurtle, FormatDOT, FormatTurtle},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(hooks.parsed, ","); got != "context,document" {
		t.Errorf("parse events = %s", got)
	}
	if got := strings.Join(hooks.rendered, ","); got != "ttl,dot" {
		t.Errorf("render events = %s (duplicates must render once)", got)
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

type recordingPipelineHooks struct {
	observability.NoopPipelineHooks
	parsed, rendered []string
}

func (h *recordingPipelineHooks) OnParseComplete(_ context.Context, kind string, _ int, _ time.Duration, _ error) {
	h.parsed = append(h.parsed, kind)
}

func (h *recordingPipelineHooks) OnRenderComplete(_ context.Context, format string, _ int, _ time.Duration, _ error) {
	h.rendered = append(h.rendered, format)
}
