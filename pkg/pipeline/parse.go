package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/ontoview/pkg/instance"
	"github.com/matzehuels/ontoview/pkg/observability"
	"github.com/matzehuels/ontoview/pkg/vocab"
)

// LoadContext decodes a vocabulary context in the given encoding.
func LoadContext(ctx context.Context, src []byte, format string) (*vocab.Context, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, "context")
	start := time.Now()

	var (
		vctx *vocab.Context
		err  error
	)
	if format == ContextTOML {
		vctx, err = vocab.LoadTOML(src)
	} else {
		vctx, err = vocab.Load(src)
	}

	n := 0
	if vctx != nil {
		n = len(vctx.IDs)
	}
	hooks.OnParseComplete(ctx, "context", n, time.Since(start), err)
	return vctx, err
}

// ParseDocument decodes an instance document.
func ParseDocument(ctx context.Context, src []byte) (instance.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, "document")
	start := time.Now()

	doc, err := instance.Parse(src)
	hooks.OnParseComplete(ctx, "document", CountNodes(doc), time.Since(start), err)
	return doc, err
}

// CountNodes counts top-level and nested nodes.
func CountNodes(doc instance.Document) int {
	n := 0
	for _, node := range doc.Nodes {
		n += countNode(node, 0)
	}
	return n
}

func countNode(n *instance.Node, depth int) int {
	if n == nil || depth > instance.MaxDepth {
		return 0
	}
	count := 1
	for _, f := range n.Fields {
		list, ok := f.Value.(instance.List)
		if !ok {
			continue
		}
		for _, item := range list {
			if child, ok := item.(*instance.Node); ok {
				count += countNode(child, depth+1)
			}
		}
	}
	return count
}
