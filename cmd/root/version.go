package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forge-dev/forge/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print the version information",
		Long:    `Display the version and commit hash`,
		GroupID: "advanced",
		Args:    cobra.NoArgs,
		Run:     runVersionCommand,
	}
}

func runVersionCommand(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "forge version %s\n", version.Version)
	fmt.Fprintf(out, "Commit: %s\n", version.Commit)
}
