package root

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/forge-dev/forge/pkg/cli"
	"github.com/forge-dev/forge/pkg/project"
	"github.com/forge-dev/forge/pkg/telemetry"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Validate the project definition",
		Long: `Load forge.yaml from the project directory, report any problems
and summarize its lists.`,
		Example: `  forge check
  forge check ./blog`,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCheckCommand,
	}
}

func runCheckCommand(cmd *cobra.Command, args []string) error {
	out := cli.NewPrinter(cmd.OutOrStdout())

	dir, err := projectDirectory(args)
	if err != nil {
		return err
	}

	def, err := project.Load(dir)
	if err != nil {
		out.PrintError(err)
		return RuntimeError{Err: err}
	}
	if err := def.Validate(); err != nil {
		out.PrintError(err)
		return RuntimeError{Err: err}
	}

	out.Println(out.Green("✔ ") + out.Bold(project.FileName) + " is valid")
	rows := [][2]string{{"database", def.DB.Provider}}
	for _, name := range def.ListNames() {
		rows = append(rows, [2]string{name, fmt.Sprintf("%d fields", len(def.Lists[name].Fields))})
	}
	out.PrintTable(rows)

	reportUsage(cmd.Context(), cmd.ErrOrStderr(), dir, def)
	return nil
}

// reportUsage runs the usage telemetry for a checked project. It never fails
// the command.
func reportUsage(ctx context.Context, stderr io.Writer, dir string, def *project.Definition) {
	settings := telemetry.LoadSettings(ctx)
	if !settings.Enabled() {
		slog.Debug("Telemetry is off in this environment")
		return
	}

	store, err := openConfigStore()
	if err != nil {
		slog.Debug("Skipping telemetry", "error", err)
		return
	}

	telemetry.Run(ctx, store, settings, telemetry.Invocation{
		Cwd:              dir,
		Lists:            def.Lists,
		DatabaseProvider: def.DB.Provider,
	}, telemetry.WithOutput(stderr))
}
