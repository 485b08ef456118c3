package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/blockpad/internal/host"
)

func newEditCmd(opts *rootOptions) *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the stored document in the terminal",
		Long: `Open the stored document in a full-screen terminal editor.

Ctrl+S saves, Ctrl+Q quits. The document is saved on exit unless
--no-save is given. Changes to the configuration file are picked up
while editing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal is owned by the editor; logs only go to --log-file.
			application, cleanup, err := opts.openApp(cmd, io.Discard)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if _, err := application.Load(ctx); err != nil {
				return err
			}

			h, err := host.NewTerminal(application.Session(), application.Config().Styles, application.Logger())
			if err != nil {
				return err
			}
			if err := application.WatchConfig(h.SetStyles); err != nil {
				application.Logger().Warn("config watch disabled", "error", err)
			}

			runErr := h.Run(ctx)
			if !noSave {
				if err := application.Save(context.WithoutCancel(ctx)); err != nil {
					return err
				}
			}
			if ctx.Err() != nil {
				return nil
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not save when the editor exits")
	return cmd
}
