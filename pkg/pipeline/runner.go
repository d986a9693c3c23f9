package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontoview/pkg/cache"
	"github.com/matzehuels/ontoview/pkg/dot"
	"github.com/matzehuels/ontoview/pkg/observability"
	"github.com/matzehuels/ontoview/pkg/triples"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL bounds how long raster artifacts stay cached.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Execute runs parse → render and returns every requested artifact. On error
// no partial result is returned.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	hooks := observability.Pipeline()
	var dotSrc string

	for _, format := range opts.Formats {
		if _, done := result.Artifacts[format]; done {
			continue
		}

		hooks.OnRenderStart(ctx, format)
		start := time.Now()

		var data []byte
		var hit bool
		if IsRaster(format) {
			if dotSrc == "" {
				dotSrc = dot.Join(dot.FromTriples(result.Context, result.Triples))
			}
			data, hit, err = r.raster(ctx, dotSrc, format, opts.Refresh)
		} else {
			data, err = RenderText(result.Context, result.Document, result.Triples, []byte(opts.Document), format)
		}

		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, err
		}

		result.Artifacts[format] = data
		if hit {
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(result.CacheInfo.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse runs the parse stage only: it decodes both inputs and flattens the
// document. The returned result has no artifacts.
func (r *Runner) Parse(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	vctx, err := LoadContext(ctx, []byte(opts.Context), opts.ContextFormat)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(ctx, []byte(opts.Document))
	if err != nil {
		return nil, err
	}
	ts, err := triples.Flatten(doc, triples.NewCounter(0))
	if err != nil {
		return nil, err
	}

	result := &Result{
		Context:   vctx,
		Document:  doc,
		Triples:   ts,
		Artifacts: make(map[string][]byte),
		Stats: Stats{
			NodeCount:   CountNodes(doc),
			TripleCount: len(ts),
			ParseTime:   time.Since(start),
		},
	}

	r.Logger.Debug("parsed document",
		"nodes", result.Stats.NodeCount,
		"triples", result.Stats.TripleCount,
		"vocabulary", len(vctx.IDs),
		"duration", result.Stats.ParseTime)

	return result, nil
}

// raster renders one Graphviz format, consulting the cache first unless
// refresh is set. The bool reports a cache hit.
func (r *Runner) raster(ctx context.Context, src, format string, refresh bool) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(src)), cache.ArtifactKeyOpts{Format: format})
	hooks := observability.Cache()

	if !refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err == nil && hit {
			hooks.OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, "artifact")
	}

	data, err := RenderRaster(ctx, src, format)
	if err != nil {
		return nil, false, err
	}

	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.TTLArtifact
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
	} else {
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
