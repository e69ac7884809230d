package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/graphmirror/internal/mirrorerr"
)

// NewRegisterCommand creates the `register` command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath, schemaDir, typename, id string

	cmd := &cobra.Command{
		Use:           "register",
		Short:         "register an object with the Object Registry",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(rootOpts, dbPath, schemaDir, typename, id, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the SQLite store")
	cmd.Flags().StringVar(&schemaDir, "schema", "", "directory of .cue schema source files")
	cmd.Flags().StringVar(&typename, "type", "", "object typename")
	cmd.Flags().StringVar(&id, "id", "", "object id")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("schema")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("id")

	return cmd
}

func runRegister(opts *RootOptions, dbPath, schemaDir, typename, id string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	cid := correlationID()
	formatter.VerboseLog("[%s] register: type=%s id=%s", cid, typename, id)

	m, err := openMirror(cmd.Context(), dbPath, schemaDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "register failed", err)
	}
	defer m.Close()

	if err := m.RegisterObject(cmd.Context(), typename, id); err != nil {
		return classifyRegisterError(err)
	}

	return formatter.Success(map[string]any{"typename": typename, "id": id})
}

func classifyRegisterError(err error) error {
	switch err.(type) {
	case *mirrorerr.UnknownType, *mirrorerr.NonObjectType:
		return WrapExitError(ExitCommandError, "invalid object", err)
	case *mirrorerr.TypeConflict:
		return WrapExitError(ExitFailure, "type conflict", err)
	default:
		return WrapExitError(ExitFailure, "register failed", err)
	}
}
