package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

// Printer writes user-facing output, colored when out is a terminal.
type Printer struct {
	out   io.Writer
	color bool
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:   out,
		color: supportsColor(out),
	}
}

func supportsColor(out io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

func (p *Printer) paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if p.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

func (p *Printer) Bold(s string) string {
	return p.paint(s, color.Bold)
}

func (p *Printer) Yellow(s string) string {
	return p.paint(s, color.FgYellow)
}

func (p *Printer) Green(s string) string {
	return p.paint(s, color.FgGreen)
}

func (p *Printer) Red(s string) string {
	return p.paint(s, color.FgRed)
}

func (p *Printer) Faint(s string) string {
	return p.paint(s, color.Faint)
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) {
	p.Println(p.Red("❌ " + err.Error()))
}

// PrintTable prints two aligned columns, measuring display width so wide
// characters in paths line up.
func (p *Printer) PrintTable(rows [][2]string) {
	width := 0
	for _, row := range rows {
		width = max(width, runewidth.StringWidth(row[0]))
	}
	for _, row := range rows {
		padding := strings.Repeat(" ", width-runewidth.StringWidth(row[0]))
		p.Printf("  %s%s  %s\n", row[0], padding, row[1])
	}
}
