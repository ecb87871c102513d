package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/folioparse/internal/parser"
	"github.com/dgallion1/folioparse/internal/portfolio"
	"github.com/dgallion1/folioparse/internal/profile"
)

// fileResult is the outcome for one input file.
type fileResult struct {
	File      string               `json:"file" yaml:"file"`
	Record    *profile.Record      `json:"record,omitempty" yaml:"record,omitempty"`
	Portfolio *portfolio.Portfolio `json:"portfolio,omitempty" yaml:"portfolio,omitempty"`
	Error     string               `json:"error,omitempty" yaml:"error,omitempty"`
}

func newParseCmd(opts *cliOptions) *cobra.Command {
	var (
		withPortfolio bool
		concurrency   int
	)

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse exports into profile records",
		Long: `Parse one or more exports and print a record per file, in argument order.

A file that cannot be read or extracted is reported with an error entry;
the command exits non-zero if any file failed.

Examples:
  folioparse parse Profile.pdf
  folioparse parse -o yaml --portfolio a.pdf b.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatFor(opts.output)
			if err != nil {
				return err
			}

			profiles := profile.New(opts.log)
			results := make([]fileResult, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			if concurrency > 0 {
				g.SetLimit(concurrency)
			}
			for i, path := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					results[i] = parseFile(path, opts.parserOptions(), profiles, withPortfolio)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					opts.log.Error("parse failed", "file", r.File, "error", r.Error)
					failed++
				}
			}

			var out any = results
			if len(results) == 1 && failed == 0 {
				out = results[0]
			}
			if err := writeOutput(cmd.OutOrStdout(), format, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withPortfolio, "portfolio", false, "include the portfolio mapping")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 4, "files parsed in parallel")
	return cmd
}

func parseFile(path string, popts parser.Options, profiles *profile.Parser, withPortfolio bool) fileResult {
	res := fileResult{File: path}

	doc, err := extractFile(path, popts)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	rec := profiles.Parse(doc.Lines)
	res.Record = &rec
	if withPortfolio {
		p := portfolio.FromRecord(rec)
		res.Portfolio = &p
	}
	return res
}

// extractFile opens path and extracts its lines with the parser matching
// its extension.
func extractFile(path string, popts parser.Options) (*parser.Document, error) {
	p, err := parser.ForFile(path, popts)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := p.Parse(f, path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	return doc, nil
}
