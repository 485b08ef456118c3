package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/blockpad/internal/app"
	"github.com/dshills/blockpad/internal/export"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored document as Markdown or HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cleanup, err := opts.openApp(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := application.Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			exp := export.New(export.WithInlineCSS(application.Config().Styles.CSS()))
			switch strings.ToLower(format) {
			case "md", "markdown":
				_, err = io.WriteString(out, exp.Markdown(doc))
			case "html":
				err = exp.WriteHTML(out, doc)
			default:
				return fmt.Errorf("%q: %w", format, app.ErrUnknownFormat)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "md", "output format: md or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
