package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/blockpad/internal/serialize"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored document",
		Long:  "Print the stored document as indented JSON, or as plain text with --plain.",
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

			if plain {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.PlainText())
				return err
			}
			data, err := serialize.MarshalIndent(doc)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print plain text without styles")
	return cmd
}
