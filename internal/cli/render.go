package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	formats string // comma-separated output formats
	output  string // output base path
	noCache bool   // disable the artifact cache
	refresh bool   // re-render cached artifacts
}

// renderCommand creates the render command that writes every format to a file.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [document.yaml]",
		Short: "Render a document to files",
		Long: `Render a document to one file per format.

Formats: ttl, dot, nt, qmd, triples, svg, png. Without --format the
formats from the config file are used (default: ttl,dot).

Files are named after the document (penguin.yaml -> penguin.ttl) or after
--output. SVG and PNG are rendered by Graphviz and cached; use --refresh to
render them again.`,
		Example: `  ontoview render -c context.yaml penguin.yaml
  ontoview render -c context.yaml -f svg,png -o out/penguin penguin.yaml
  cat penguin.yaml | ontoview render -c context.yaml -f nt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s), comma-separated")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: document path without extension)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render cached artifacts")

	return cmd
}

// runRender renders the document and writes one file per format.
func (c *CLI) runRender(ctx context.Context, args []string, ro renderOpts) error {
	opts, input, err := c.loadOptions(args)
	if err != nil {
		return err
	}
	opts.Formats = c.parseFormats(ro.formats)
	opts.Refresh = ro.refresh
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if ro.output != "" {
		if err := errors.ValidatePath(ro.output); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result, opts.Formats, basePath(ro.output, input))
	if err != nil {
		return err
	}

	printSuccess("Rendered %d file(s)", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.TripleCount, result.RenderHit())
	return nil
}

// writeArtifacts writes each format once to base plus its extension and
// returns the written paths in request order.
func writeArtifacts(result *pipeline.Result, formats []string, base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}

	var paths []string
	for _, f := range formats {
		path := base + pipeline.Extensions[f]
		if slices.Contains(paths, path) {
			continue
		}
		if err := os.WriteFile(path, result.Artifacts[f], 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
