// Command mirror is a reference driver for the library in
// internal/mirror: it is not the "higher-level fetch loop" that talks
// to a real GraphQL endpoint, but a smoke-test and inspection tool
// for installing schemas, registering roots, planning refreshes,
// synthesizing queries, and ingesting fetched pages by hand.
package main

import (
	"os"

	"github.com/roach88/graphmirror/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
