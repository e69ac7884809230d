package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/graphmirror/internal/ingest"
)

// ingestResultFile is the on-disk JSON shape for `mirror ingest
// --result <file>`, standing in for a real GraphQL connection response
// until a fetch loop is wired in.
type ingestResultFile struct {
	TotalCount int64   `json:"totalCount"`
	PageInfo   pageDoc `json:"pageInfo"`
	Nodes      []*node `json:"nodes"`
}

type pageDoc struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type node struct {
	Typename string `json:"__typename"`
	ID       string `json:"id"`
}

// NewIngestCommand creates the `ingest` command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath, schemaDir, object, field, resultPath string
	var updateID int64

	cmd := &cobra.Command{
		Use:           "ingest",
		Short:         "feed a JSON-encoded connection result through the Connection Ingestor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(rootOpts, dbPath, schemaDir, object, field, resultPath, updateID, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the SQLite store")
	cmd.Flags().StringVar(&schemaDir, "schema", "", "directory of .cue schema source files")
	cmd.Flags().StringVar(&object, "object", "", "parent object id")
	cmd.Flags().StringVar(&field, "field", "", "connection field name")
	cmd.Flags().StringVar(&resultPath, "result", "", "path to a JSON-encoded connection result")
	cmd.Flags().Int64Var(&updateID, "update", 0, "update id to stamp this ingest with (must name an existing row of the updates table)")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("schema")
	cmd.MarkFlagRequired("object")
	cmd.MarkFlagRequired("field")
	cmd.MarkFlagRequired("result")
	cmd.MarkFlagRequired("update")

	return cmd
}

func runIngest(opts *RootOptions, dbPath, schemaDir, object, field, resultPath string, updateID int64, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	ctx := cmd.Context()
	cid := correlationID()

	data, err := os.ReadFile(resultPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading result file", err)
	}
	var doc ingestResultFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return WrapExitError(ExitCommandError, "parsing result file", err)
	}

	nodes := make([]*ingest.ShallowNode, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if n == nil {
			continue
		}
		nodes[i] = &ingest.ShallowNode{Typename: n.Typename, ID: n.ID}
	}
	result := ingest.Result{
		TotalCount: doc.TotalCount,
		PageInfo:   ingest.PageInfo{HasNextPage: doc.PageInfo.HasNextPage, EndCursor: doc.PageInfo.EndCursor},
		Nodes:      nodes,
	}

	m, err := openMirror(ctx, dbPath, schemaDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "ingest failed", err)
	}
	defer m.Close()

	formatter.VerboseLog("[%s] ingest: object=%s field=%s nodes=%d", cid, object, field, len(nodes))

	if err := m.UpdateConnection(ctx, updateID, object, field, result); err != nil {
		return WrapExitError(ExitFailure, "ingest failed", err)
	}

	return formatter.Success(fmt.Sprintf("ingested %d nodes into %s.%s", len(nodes), object, field))
}
