package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/graphmirror/internal/gqlbuilder"
)

// NewQueryCommand creates the `query` command group (`shallow` and
// `connection` synthesize the two Query Synthesizer operations, §4.G).
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "synthesize a GraphQL selection set",
	}
	cmd.AddCommand(newQueryShallowCommand(rootOpts))
	cmd.AddCommand(newQueryConnectionCommand(rootOpts))
	return cmd
}

func newQueryShallowCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath, schemaDir, typename string

	cmd := &cobra.Command{
		Use:           "shallow",
		Short:         "print the shallow selection set for a type",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: rootOpts.Verbose}

			m, err := openMirror(cmd.Context(), dbPath, schemaDir)
			if err != nil {
				return WrapExitError(ExitCommandError, "query shallow failed", err)
			}
			defer m.Close()

			sel, err := m.QueryShallow(typename)
			if err != nil {
				return WrapExitError(ExitCommandError, "query shallow failed", err)
			}
			return formatter.Success(gqlbuilder.Render(sel...))
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the SQLite store")
	cmd.Flags().StringVar(&schemaDir, "schema", "", "directory of .cue schema source files")
	cmd.Flags().StringVar(&typename, "type", "", "typename to synthesize a shallow selection for")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("schema")
	cmd.MarkFlagRequired("type")

	return cmd
}

func newQueryConnectionCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath, schemaDir, parentType, object, field string
	var pageSize int

	cmd := &cobra.Command{
		Use:           "connection",
		Short:         "print the connection selection set using the connection's current end-cursor state",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: rootOpts.Verbose}
			ctx := cmd.Context()

			m, err := openMirror(ctx, dbPath, schemaDir)
			if err != nil {
				return WrapExitError(ExitCommandError, "query connection failed", err)
			}
			defer m.Close()

			state, err := m.ConnectionCursor(ctx, object, field)
			if err != nil {
				return WrapExitError(ExitCommandError, "query connection failed", err)
			}

			sel, err := m.QueryConnection(parentType, field, state, pageSize)
			if err != nil {
				return WrapExitError(ExitCommandError, "query connection failed", err)
			}
			return formatter.Success(gqlbuilder.Render(sel))
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the SQLite store")
	cmd.Flags().StringVar(&schemaDir, "schema", "", "directory of .cue schema source files")
	cmd.Flags().StringVar(&parentType, "parent-type", "", "typename owning the connection field")
	cmd.Flags().StringVar(&object, "object", "", "parent object id")
	cmd.Flags().StringVar(&field, "field", "", "connection field name")
	cmd.Flags().IntVar(&pageSize, "page-size", 50, "requested page size")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("schema")
	cmd.MarkFlagRequired("parent-type")
	cmd.MarkFlagRequired("object")
	cmd.MarkFlagRequired("field")

	return cmd
}
