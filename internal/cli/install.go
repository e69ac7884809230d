package cli

import (
	"github.com/spf13/cobra"
)

// NewInstallCommand creates the `install` command.
func NewInstallCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath, schemaDir string

	cmd := &cobra.Command{
		Use:           "install",
		Short:         "install a schema into a (possibly new) store",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(rootOpts, dbPath, schemaDir, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the SQLite store")
	cmd.Flags().StringVar(&schemaDir, "schema", "", "directory of .cue schema source files")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("schema")

	return cmd
}

func runInstall(opts *RootOptions, dbPath, schemaDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	id := correlationID()
	formatter.VerboseLog("[%s] install: db=%s schema=%s", id, dbPath, schemaDir)

	m, err := openMirror(cmd.Context(), dbPath, schemaDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "install failed", err)
	}
	defer m.Close()

	return formatter.Success(map[string]any{"db": dbPath, "schema": schemaDir})
}
