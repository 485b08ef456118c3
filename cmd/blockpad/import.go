package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/blockpad/internal/serialize"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the stored document with a JSON payload",
		Long: `Replace the stored document with the JSON payload in FILE ("-" reads
stdin). Payloads from older versions, including raw editor state with
block keys and an entity map, are migrated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			// Reject malformed input here; the session would silently fall back
			// to an empty document.
			migrated, err := serialize.Migrate(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if _, err := serialize.Deserialize(migrated); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			application, cleanup, err := opts.openApp(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			st := application.Session().LoadBytes(data)
			if err := application.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d blocks into %q\n", st.Document().Len(), application.Session().Key())
			return nil
		},
	}
}
