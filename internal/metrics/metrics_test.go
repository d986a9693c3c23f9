package metrics

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontoview/pkg/observability"
)

func TestHooksRecord(t *testing.T) {
	m := New()
	m.Register()
	defer observability.Reset()

	ctx := context.Background()
	observability.Pipeline().OnParseComplete(ctx, "document", 3, time.Millisecond, nil)
	observability.Pipeline().OnRenderComplete(ctx, "ttl", 120, time.Millisecond, nil)
	observability.Pipeline().OnRenderComplete(ctx, "svg", 0, time.Millisecond, errors.New("boom"))
	observability.Cache().OnCacheHit(ctx, "artifact")
	observability.Cache().OnCacheMiss(ctx, "artifact")
	observability.Cache().OnCacheMiss(ctx, "artifact")
	observability.HTTP().OnRequest(ctx, "POST", "/v1/render")
	observability.HTTP().OnResponse(ctx, "POST", "/v1/render", 200, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.parseTotal.WithLabelValues("document", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.renderTotal.WithLabelValues("ttl", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.renderTotal.WithLabelValues("svg", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits.WithLabelValues("artifact")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheMisses.WithLabelValues("artifact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/v1/render", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInflight))
}

func TestHandler(t *testing.T) {
	m := New()
	m.cacheHits.WithLabelValues("artifact").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `ontoview_cache_hits_total{key_type="artifact"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
