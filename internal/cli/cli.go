package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontoview/internal/config"
	"github.com/matzehuels/ontoview/pkg/buildinfo"
	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/pipeline"
	"github.com/matzehuels/ontoview/pkg/vocab"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "ontoview"

// stdinArg names standard input as the document source.
const stdinArg = "-"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config config.Config

	configPath  string
	contextPath string
	stdin       io.Reader
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		stdin:  os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Ontoview renders YAML instance documents as Turtle and Graphviz",
		Long: `Ontoview turns compact YAML descriptions of ontology instances into
RDF Turtle, Graphviz diagrams, N-Triples and documentation blocks.

A vocabulary context maps readable names ("has characteristic") to
ontology codes ("RO:0000053"). Pass it with --context or set it once in
the config file.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/ontoview/config.toml)")
	root.PersistentFlags().StringVarP(&c.contextPath, "context", "c", "", "vocabulary context file (.yaml or .toml)")

	root.AddCommand(c.turtleCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.triplesCommand())
	root.AddCommand(c.displayCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg := c.Config
	if noCache {
		cfg.Cache.Backend = config.BackendNone
	}
	backend, keyer, err := cfg.OpenCache(ctx)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(backend, keyer, c.Logger)
	runner.TTL = cfg.Cache.TTL.Duration
	return runner, nil
}

// =============================================================================
// Inputs
// =============================================================================

// contextFile returns the context path from --context or the config file.
func (c *CLI) contextFile() (string, error) {
	path := c.contextPath
	if path == "" {
		path = c.Config.Context
	}
	if path == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "no vocabulary context: pass --context or set context in the config file")
	}
	if err := errors.ValidatePath(path); err != nil {
		return "", err
	}
	return path, nil
}

// loadOptions reads the context and the document named by args into
// pipeline options. No argument or "-" reads the document from stdin.
func (c *CLI) loadOptions(args []string) (pipeline.Options, string, error) {
	ctxPath, err := c.contextFile()
	if err != nil {
		return pipeline.Options{}, "", err
	}
	ctxSrc, err := readFile(ctxPath)
	if err != nil {
		return pipeline.Options{}, "", err
	}

	input := stdinArg
	if len(args) > 0 {
		input = args[0]
	}
	var doc []byte
	if input == stdinArg {
		doc, err = io.ReadAll(c.stdin)
		if err != nil {
			return pipeline.Options{}, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
	} else {
		if err := errors.ValidatePath(input); err != nil {
			return pipeline.Options{}, "", err
		}
		if doc, err = readFile(input); err != nil {
			return pipeline.Options{}, "", err
		}
	}

	opts := pipeline.Options{
		Context:       string(ctxSrc),
		ContextFormat: pipeline.ContextYAML,
		Document:      string(doc),
	}
	if vocab.IsTOML(ctxPath) {
		opts.ContextFormat = pipeline.ContextTOML
	}
	return opts, input, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string selects the configured default formats.
func (c *CLI) parseFormats(s string) []string {
	if s == "" {
		if len(c.Config.Formats) > 0 {
			return append([]string(nil), c.Config.Formats...)
		}
		return append([]string(nil), pipeline.DefaultFormats...)
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// basePath derives the output base path. Without --output the document's
// path minus its extension is used; stdin documents are written as
// "ontoview.<ext>" in the working directory.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinArg {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	for _, known := range pipeline.Extensions {
		if ext == known {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}
