package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/folioparse/internal/layout"
)

func newLinesCmd(opts *cliOptions) *cobra.Command {
	var structured bool

	cmd := &cobra.Command{
		Use:   "lines <file>",
		Short: "Print the reconstructed lines of an export",
		Long: `Print the lines the section parser would see, one per row, including
the "--- Page n End ---" markers. Use --structured to print them with
page numbers in the selected output format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := extractFile(args[0], opts.parserOptions())
			if err != nil {
				return err
			}
			opts.log.Debug("extracted lines", "file", args[0], "pages", doc.Pages, "lines", len(doc.Lines))

			if structured {
				format, err := formatFor(opts.output)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), format, doc.Lines)
			}
			for _, text := range layout.Texts(doc.Lines) {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&structured, "structured", false, "print lines with page numbers")
	return cmd
}
