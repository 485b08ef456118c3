package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/blockpad/internal/app"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	backend    string
	storePath  string
	key        string
	logLevel   string
	logFormat  string
	logFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "blockpad",
		Short: "A rich-text block editor for the terminal",
		Long: `blockpad edits a document made of styled text blocks.

Markdown-like prefixes format as you type: "# " starts a header,
"* " turns on bold, "``` " starts a code block. The document is saved
to the configured store as JSON.

Examples:
  blockpad edit                         # open the saved document
  blockpad export --format html > doc.html
  blockpad show                         # print the stored JSON
  blockpad import draft.json            # replace the stored document
  blockpad clear                        # delete the stored document`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to configuration file (.toml or .yaml)")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: memory, file or sqlite")
	flags.StringVar(&opts.storePath, "store", "", "storage directory (file) or database path (sqlite)")
	flags.StringVarP(&opts.key, "key", "k", "", "document key in the store")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	cmd.AddCommand(
		newEditCmd(opts),
		newExportCmd(opts),
		newShowCmd(opts),
		newImportCmd(opts),
		newClearCmd(opts),
	)
	return cmd
}

// openApp creates the application for a subcommand. Logs go to the log file
// if one is set and to defaultLog otherwise. The returned cleanup closes the
// application and the log file.
func (o *rootOptions) openApp(cmd *cobra.Command, defaultLog io.Writer) (*app.Application, func(), error) {
	logOut := defaultLog
	var logFile *os.File
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logFile, logOut = f, f
	}

	application, err := app.New(cmd.Context(), app.Options{
		ConfigPath: o.configPath,
		Backend:    o.backend,
		StorePath:  o.storePath,
		Key:        o.key,
		LogLevel:   o.logLevel,
		LogFormat:  o.logFormat,
		LogOutput:  logOut,
	})
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		if err := application.Close(); err != nil {
			application.Logger().Warn("close failed", "error", err)
		}
		if logFile != nil {
			logFile.Close()
		}
	}
	return application, cleanup, nil
}
