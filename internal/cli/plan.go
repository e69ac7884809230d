package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// NewPlanCommand creates the `plan` command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath, schemaDir string
	var since time.Duration

	cmd := &cobra.Command{
		Use:           "plan",
		Short:         "run the Staleness Planner and print the resulting QueryPlan",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(rootOpts, dbPath, schemaDir, since, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the SQLite store")
	cmd.Flags().StringVar(&schemaDir, "schema", "", "directory of .cue schema source files")
	cmd.Flags().DurationVar(&since, "since", time.Hour, "staleness threshold, as an age relative to now")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("schema")

	return cmd
}

type planObjectView struct {
	Typename string `json:"typename"`
	ID       string `json:"id"`
}

type planConnectionView struct {
	ObjectID  string  `json:"objectId"`
	Fieldname string  `json:"fieldname"`
	Fetched   bool    `json:"fetched"`
	EndCursor *string `json:"endCursor,omitempty"`
}

func runPlan(opts *RootOptions, dbPath, schemaDir string, since time.Duration, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	cid := correlationID()

	m, err := openMirror(cmd.Context(), dbPath, schemaDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "plan failed", err)
	}
	defer m.Close()

	sinceMillis := time.Now().Add(-since).UnixMilli()
	formatter.VerboseLog("[%s] plan: since=%s (sinceMillis=%d)", cid, since, sinceMillis)

	plan, err := m.FindOutdated(cmd.Context(), sinceMillis)
	if err != nil {
		return WrapExitError(ExitFailure, "plan failed", err)
	}

	objects := make([]planObjectView, 0, len(plan.Objects))
	for _, o := range plan.Objects {
		objects = append(objects, planObjectView{Typename: o.Typename, ID: o.ID})
	}

	connections := make([]planConnectionView, 0, len(plan.Connections))
	for _, c := range plan.Connections {
		view := planConnectionView{ObjectID: c.ObjectID, Fieldname: c.Fieldname, Fetched: c.EndCursor.IsFetched()}
		if v, ok := c.EndCursor.Value(); ok {
			view.EndCursor = &v
		}
		connections = append(connections, view)
	}

	return formatter.Success(map[string]any{"objects": objects, "connections": connections})
}
