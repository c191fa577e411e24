package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/keystorm-inflection/internal/app"
	"github.com/dshills/keystorm-inflection/internal/config"
	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
	"github.com/dshills/keystorm-inflection/internal/inflect"
	"github.com/dshills/keystorm-inflection/internal/logging"
	"github.com/dshills/keystorm-inflection/internal/replace"
)

// options holds the flags shared by every editing command.
type options struct {
	configPath      string
	logLevel        string
	file            string
	spans           []string
	inPlace         bool
	printSelections bool
	dryRun          bool
	noColor         bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "keystorm-inflect",
		Short: "Inflect selected words in a text",
		Long: `keystorm-inflect rewrites every selected span of a text in one step.

Spans are byte ranges given as start:end (half-open). Without --select the
whole text is one span. Overlapping spans leave the text unchanged.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (.toml, .yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVarP(&opts.file, "file", "f", "", "Input file (default stdin)")
	flags.StringArrayVarP(&opts.spans, "select", "s", nil, "Span to edit as start:end (repeatable)")
	flags.BoolVar(&opts.inPlace, "in-place", false, "Write the result back to --file")
	flags.BoolVar(&opts.printSelections, "print-selections", false, "Print the resulting selections to stderr")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print planned replacements without editing")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	for _, k := range inflect.Kinds() {
		rootCmd.AddCommand(newInflectCmd(k, opts))
	}
	rootCmd.AddCommand(newScriptCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// session is an application plus the spans requested on the command line.
type session struct {
	*app.App

	// spans are the --select ranges as given, before the selection merges
	// them.
	spans []buffer.Range
}

// overlap reports whether the requested spans intersect.
func (s *session) overlap() error {
	return replace.CheckOverlap(replace.OrderRanges(s.spans))
}

// openApp loads configuration, reads the input document, applies the
// requested selection and builds the application.
func openApp(cmd *cobra.Command, opts *options) (*session, error) {
	if opts.inPlace && opts.file == "" {
		return nil, fmt.Errorf("--in-place requires --file")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		if _, err := logging.ParseLevel(opts.logLevel); err != nil {
			return nil, err
		}
		cfg.Logging.Level = opts.logLevel
	}

	doc, err := readDocument(cmd.InOrStdin(), opts.file)
	if err != nil {
		return nil, err
	}

	var spans []buffer.Range
	if len(opts.spans) > 0 {
		if spans, err = parseSpans(opts.spans, doc.Len()); err != nil {
			return nil, err
		}
		doc.SetRanges(spans)
	}

	a, err := app.New(app.Options{
		Config:    cfg,
		LogOutput: cmd.ErrOrStderr(),
		Document:  doc,
		LuaOutput: cmd.ErrOrStderr(),
		ReadOnly:  opts.dryRun,
	})
	if err != nil {
		return nil, err
	}
	return &session{App: a, spans: spans}, nil
}

func readDocument(stdin io.Reader, path string) (*app.Document, error) {
	if path == "" || path == "-" {
		return app.ReadDocument("<stdin>", stdin)
	}
	return app.OpenDocument(path)
}

// finish writes the document to its file or stdout and reports selections.
func finish(cmd *cobra.Command, opts *options, a *session) error {
	doc := a.Document()
	if opts.printSelections {
		printSelections(cmd.ErrOrStderr(), doc.Ranges())
	}
	if opts.inPlace {
		if !doc.IsModified() {
			return nil
		}
		return doc.Save()
	}
	_, err := doc.WriteTo(cmd.OutOrStdout())
	return err
}

func printSelections(w io.Writer, ranges []buffer.Range) {
	label := color.New(color.FgCyan)
	for _, r := range ranges {
		label.Fprint(w, "selection ")
		fmt.Fprintf(w, "%d:%d\n", r.Start, r.End)
	}
}

func notice(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(w, "notice: "+format+"\n", args...)
}
