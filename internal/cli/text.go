package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontoview/pkg/dot"
	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/ntriples"
	"github.com/matzehuels/ontoview/pkg/pipeline"
)

// turtleCommand prints a document as Turtle.
func (c *CLI) turtleCommand() *cobra.Command {
	return c.textCommand(
		"turtle [document.yaml]",
		"Print a document as RDF Turtle",
		`Print a document as RDF Turtle.

Names are resolved through the vocabulary context. Every resolved term
carries a trailing comment with its readable label.`,
		pipeline.FormatTurtle,
	)
}

// dotCommand prints a document as a Graphviz digraph.
func (c *CLI) dotCommand() *cobra.Command {
	return c.textCommand(
		"dot [document.yaml]",
		"Print a document as a Graphviz digraph",
		`Print a document as a Graphviz digraph.

Classes, instances and literals are ranked in separate subgraphs. Use
'render -f svg' to lay the graph out with Graphviz.`,
		pipeline.FormatDOT,
	)
}

// displayCommand prints the Quarto tabset for a document.
func (c *CLI) displayCommand() *cobra.Command {
	return c.textCommand(
		"display [document.yaml]",
		"Print a Quarto tabset with diagram, YAML and Turtle views",
		`Print a Quarto panel-tabset showing the document three ways: as a
{dot} diagram, as its YAML source and as Turtle.`,
		pipeline.FormatDisplay,
	)
}

// textCommand builds a command that renders one text format to stdout.
func (c *CLI) textCommand(use, short, long, format string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.execute(cmd.Context(), args, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(result.Artifacts[format])
			return err
		},
	}
}

// execute renders text formats without touching the artifact cache.
func (c *CLI) execute(ctx context.Context, args []string, formats ...string) (*pipeline.Result, error) {
	opts, _, err := c.loadOptions(args)
	if err != nil {
		return nil, err
	}
	opts.Formats = formats
	return pipeline.NewRunner(nil, nil, c.Logger).Execute(ctx, opts)
}

// parse decodes and flattens the document without rendering.
func (c *CLI) parse(ctx context.Context, args []string) (*pipeline.Result, error) {
	opts, _, err := c.loadOptions(args)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(nil, nil, c.Logger).Parse(ctx, opts)
}

// =============================================================================
// triples
// =============================================================================

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBlankStyle  = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	tableCodeStyle   = lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
)

// triplesCommand prints the flattened triples.
func (c *CLI) triplesCommand() *cobra.Command {
	var tsv bool

	cmd := &cobra.Command{
		Use:   "triples [document.yaml]",
		Short: "Print the flattened subject/predicate/object triples",
		Long: `Print the flattened subject/predicate/object triples of a document.

Nested nodes without a subject get blank ids (_0, _1, ...) in the order
they are met. The Code column shows what the predicate resolves to.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tsv {
				result, err := c.execute(cmd.Context(), args, pipeline.FormatTriples)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(result.Artifacts[pipeline.FormatTriples])
				return err
			}

			result, err := c.parse(cmd.Context(), args)
			if err != nil {
				return err
			}
			return writeTriplesTable(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&tsv, "tsv", false, "print tab-separated values instead of a table")
	return cmd
}

// writeTriplesTable renders the triples of result as a bordered table.
func writeTriplesTable(w io.Writer, result *pipeline.Result) error {
	rows := make([][]string, len(result.Triples))
	for i, t := range result.Triples {
		code, _ := result.Context.Resolve(t.Predicate)
		rows[i] = []string{t.Subject, t.Predicate, code, t.Object}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Subject", "Predicate", "Code", "Object").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			switch {
			case col == 2:
				return tableCodeStyle
			case row >= 0 && row < len(rows) && isBlankCell(rows[row][col]):
				return tableBlankStyle
			}
			return tableCellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func isBlankCell(s string) bool {
	return len(s) > 1 && s[0] == '_'
}

// =============================================================================
// check
// =============================================================================

// checkCommand validates a document without writing output.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [document.yaml]",
		Short: "Validate a document against its context",
		Long: `Validate a document against its context.

The document is decoded, flattened and rendered as Turtle and DOT. The DOT
output is parsed by Graphviz. Nothing is written.

N-Triples export is tried as well. It needs a prefixes table in the
context, so a missing prefix is reported as a warning only.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.execute(cmd.Context(), args, pipeline.FormatTurtle, pipeline.FormatDOT)
			if err != nil {
				return err
			}
			if err := dot.Validate(string(result.Artifacts[pipeline.FormatDOT])); err != nil {
				return err
			}

			printSuccess("Document is valid")
			if err := ntriples.Encode(io.Discard, result.Context, result.Triples); err != nil {
				if !errors.IsContextError(err) {
					return err
				}
				printWarning("N-Triples export unavailable: %s", errors.UserMessage(err))
			}
			printStats(result.Stats.NodeCount, result.Stats.TripleCount, false)
			if len(args) > 0 && args[0] != stdinArg {
				printNewline()
				printNextStep("Render", appName+" render "+args[0])
			}
			return nil
		},
	}
}
