package root

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/forge-dev/forge/pkg/cli"
	"github.com/forge-dev/forge/pkg/confstore"
	"github.com/forge-dev/forge/pkg/telemetry"
)

func newTelemetryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telemetry",
		Short: "Manage anonymous usage telemetry",
		Long: `Show or change whether forge reports anonymous usage data.

Learn more at ` + telemetry.DocsURL,
		GroupID: "advanced",
		Args:    cobra.NoArgs,
		RunE:    runTelemetryStatusCommand,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the telemetry state",
		Args:  cobra.NoArgs,
		RunE:  runTelemetryStatusCommand,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Opt back in to telemetry",
		Args:  cobra.NoArgs,
		RunE:  runTelemetryEnableCommand,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Opt out of telemetry",
		Args:  cobra.NoArgs,
		RunE:  runTelemetryDisableCommand,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget all telemetry state",
		Args:  cobra.NoArgs,
		RunE:  runTelemetryResetCommand,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "inform",
		Short: "Show what is collected",
		Args:  cobra.NoArgs,
		RunE:  runTelemetryInformCommand,
	})

	return cmd
}

// withConfigStore opens the config store and runs fn, printing any error.
func withConfigStore(cmd *cobra.Command, fn func(*confstore.Store, *cli.Printer) error) error {
	out := cli.NewPrinter(cmd.OutOrStdout())

	store, err := openConfigStore()
	if err == nil {
		err = fn(store, out)
	}
	if err != nil {
		out.PrintError(err)
		return RuntimeError{Err: err}
	}
	return nil
}

func runTelemetryStatusCommand(cmd *cobra.Command, _ []string) error {
	return withConfigStore(cmd, func(store *confstore.Store, out *cli.Printer) error {
		report := telemetry.GetStatus(store)
		out.PrintTable(statusRows(report, out))
		return nil
	})
}

func statusRows(report telemetry.StatusReport, out *cli.Printer) [][2]string {
	var status string
	switch report.Status {
	case telemetry.StatusEnabled:
		status = out.Green(string(report.Status))
	case telemetry.StatusDisabled:
		status = out.Red(string(report.Status))
	default:
		status = out.Yellow(string(report.Status))
	}

	rows := [][2]string{{"status", status}}
	if report.Status != telemetry.StatusEnabled {
		return rows
	}

	informed := "never"
	if report.InformedAt != nil {
		informed = report.InformedAt.UTC().Format(time.RFC3339)
	}
	device := "never"
	if report.Device != nil {
		device = *report.Device
	}
	rows = append(rows, [2]string{"informed", informed}, [2]string{"device", device})

	for _, path := range sortedKeys(report.Projects) {
		rows = append(rows, [2]string{path, report.Projects[path]})
	}
	return rows
}

func runTelemetryEnableCommand(cmd *cobra.Command, _ []string) error {
	return withConfigStore(cmd, func(store *confstore.Store, out *cli.Printer) error {
		if err := telemetry.Enable(store); err != nil {
			return err
		}
		out.Println("Telemetry is enabled. You will be shown what is collected before anything is sent.")
		return nil
	})
}

func runTelemetryDisableCommand(cmd *cobra.Command, _ []string) error {
	return withConfigStore(cmd, func(store *confstore.Store, out *cli.Printer) error {
		if err := telemetry.Disable(store); err != nil {
			return err
		}
		out.Println("Telemetry is disabled. Nothing will be sent.")
		return nil
	})
}

func runTelemetryResetCommand(cmd *cobra.Command, _ []string) error {
	return withConfigStore(cmd, func(store *confstore.Store, out *cli.Printer) error {
		if err := telemetry.Reset(store); err != nil {
			return err
		}
		out.Println("Telemetry state has been reset.")
		return nil
	})
}

func runTelemetryInformCommand(cmd *cobra.Command, _ []string) error {
	return withConfigStore(cmd, func(store *confstore.Store, _ *cli.Printer) error {
		return telemetry.Inform(store, cmd.OutOrStdout(), time.Now())
	})
}
