package telemetry

import (
	"io"

	"github.com/forge-dev/forge/pkg/cli"
)

// DocsURL explains what is collected and how to opt out.
const DocsURL = "https://forge.dev/docs/telemetry"

// PrintDisclosure prints the notice shown once before any report is sent.
func PrintDisclosure(w io.Writer) {
	out := cli.NewPrinter(w)

	out.Println()
	out.Println(out.Yellow("forge collects anonymous usage data when you run ") + out.Green(`"forge check"`) + out.Yellow("."))
	out.Println("It tells us which field types, databases and forge versions are used, so we can")
	out.Println("focus our work where it matters.")
	out.Println()
	out.Println("  Once a day per project we send: field type counts, the number of lists,")
	out.Println("  the database provider and the versions of the forge modules you use.")
	out.Println("  Once a day per device we send: your operating system and Go release.")
	out.Println()
	out.Println("No names, paths, content or identifiers are ever sent. Nothing has been sent yet.")
	out.Println()
	out.Printf("To opt out, run: %s\n", out.Bold("forge telemetry disable"))
	out.Printf("Learn more at %s\n", out.Faint(DocsURL))
	out.Println()
}
