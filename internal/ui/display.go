package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Display renders task headers and the summary preview to stdout. The
// summary is shown twice: a glamour-styled preview for reading, then the raw
// Markdown for copying.
type Display struct {
	renderer *glamour.TermRenderer
}

// NewDisplay builds a terminal-width-aware markdown renderer. When the
// renderer cannot be constructed the display falls back to raw output.
func NewDisplay() *Display {
	termWidth := 80
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		termWidth = width - 4
		if termWidth > 120 {
			termWidth = 120
		}
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(termWidth),
	)
	if err != nil {
		return &Display{}
	}
	return &Display{renderer: renderer}
}

// ShowTask prints the per-task header shown before the review prompts.
func (d *Display) ShowTask(position, total int, name, project, section string) {
	fmt.Printf("\n%s %s\n", gray(fmt.Sprintf("[%d/%d]", position, total)), bold(name))
	fmt.Printf("      %s %s\n", cyan(project), gray("/ "+section))
}

// ShowSummary previews the table and then prints the raw Markdown.
func (d *Display) ShowSummary(markdown string) error {
	fmt.Printf("\n%s\n", bold("Today's update"))
	if d.renderer != nil {
		rendered, err := d.renderer.Render(markdown)
		if err == nil {
			fmt.Print(rendered)
		}
	}
	fmt.Printf("\n%s\n%s\n", gray("Raw markdown:"), markdown)
	return nil
}

// Infof prints a status line.
func (d *Display) Infof(format string, args ...any) {
	fmt.Printf("%s\n", cyan(fmt.Sprintf(format, args...)))
}

// Warnf prints a non-fatal warning.
func (d *Display) Warnf(format string, args ...any) {
	fmt.Printf("%s\n", yellow(fmt.Sprintf(format, args...)))
}
