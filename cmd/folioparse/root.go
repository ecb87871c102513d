package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dgallion1/folioparse/internal/parser"
)

// cliOptions holds flags shared by every subcommand.
type cliOptions struct {
	output    string
	debug     bool
	pdftotext bool
	maxPages  int

	log *slog.Logger
}

func (o *cliOptions) parserOptions() parser.Options {
	return parser.Options{FallbackPdftotext: o.pdftotext, MaxPages: o.maxPages}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "folioparse",
		Short: "Parse LinkedIn profile exports into structured records",
		Long: `folioparse turns a LinkedIn "Save to PDF" export into a structured
profile record: name, headline, location, email, summary, skills,
positions and education.

Inputs may be PDF exports, JSON fragment dumps ({"pages":[{"fragments":[...]}]})
or plain text with one line per row.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := formatFor(opts.output); err != nil {
				return err
			}
			level := slog.LevelWarn
			if opts.debug {
				level = slog.LevelDebug
			}
			opts.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(
		&opts.output, "output", "o", "json", "output format: json or yaml",
	)
	root.PersistentFlags().BoolVar(
		&opts.debug, "debug", false, "log extracted lines and parsed records to stderr",
	)
	root.PersistentFlags().BoolVar(
		&opts.pdftotext, "fallback-pdftotext", true, "retry unreadable PDFs with poppler's pdftotext",
	)
	root.PersistentFlags().IntVar(
		&opts.maxPages, "max-pages", 50, "reject PDFs with more pages (0 disables)",
	)

	root.AddCommand(newParseCmd(opts))
	root.AddCommand(newLinesCmd(opts))
	return root
}
