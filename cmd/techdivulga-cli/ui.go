// Package main provides UI utilities for the TechDivulga CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// UI provides user-friendly output utilities. Nothing is printed in JSON
// mode; commands write their JSON document instead.
type UI struct {
	out      io.Writer
	errOut   io.Writer
	progress *mpb.Progress
	markdown *glamour.TermRenderer
	noColor  bool
	jsonMode bool
}

// NewUI creates a new UI instance writing to stdout and stderr.
func NewUI(jsonMode, noColor bool) *UI {
	return newUI(os.Stdout, os.Stderr, jsonMode, noColor || !IsTerminal())
}

func newUI(out, errOut io.Writer, jsonMode, noColor bool) *UI {
	ui := &UI{out: out, errOut: errOut, noColor: noColor, jsonMode: jsonMode}
	if !jsonMode && !noColor {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			ui.markdown = r
		}
	}
	return ui
}

// Close waits for running progress bars.
func (ui *UI) Close() {
	if ui.progress == nil {
		return
	}
	// piped output never renders the bars and Wait may hang
	if IsTerminal() {
		ui.progress.Wait()
	} else {
		ui.progress.Shutdown()
	}
}

func (ui *UI) line(w io.Writer, attr color.Attribute, symbol, format string, args ...any) {
	if ui.jsonMode {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if ui.noColor {
		fmt.Fprintf(w, "%s %s\n", symbol, msg)
		return
	}
	color.New(attr).Fprintf(w, "%s %s\n", symbol, msg)
}

// Success prints a success message.
func (ui *UI) Success(format string, args ...any) {
	ui.line(ui.out, color.FgGreen, "✓", format, args...)
}

// Error prints an error message.
func (ui *UI) Error(format string, args ...any) {
	ui.line(ui.errOut, color.FgRed, "✗", format, args...)
}

// Warning prints a warning message.
func (ui *UI) Warning(format string, args ...any) {
	ui.line(ui.out, color.FgYellow, "⚠", format, args...)
}

// Info prints an info message.
func (ui *UI) Info(format string, args ...any) {
	ui.line(ui.out, color.FgCyan, "ℹ", format, args...)
}

// Step prints a step message.
func (ui *UI) Step(format string, args ...any) {
	ui.line(ui.out, color.FgBlue, "→", format, args...)
}

// Markdown prints an assistant answer, styled when the terminal allows.
func (ui *UI) Markdown(md string) {
	if ui.jsonMode {
		return
	}
	if ui.markdown != nil {
		if rendered, err := ui.markdown.Render(md); err == nil {
			fmt.Fprintln(ui.out, strings.TrimRight(rendered, "\n "))
			return
		}
	}
	fmt.Fprintln(ui.out, md)
}

// ProgressBar creates a multi-bar entry for a known amount of work.
func (ui *UI) ProgressBar(name string, total int64) *mpb.Bar {
	if ui.jsonMode || ui.noColor {
		return nil
	}
	if ui.progress == nil {
		ui.progress = mpb.New(mpb.WithWidth(64), mpb.WithOutput(ui.errOut))
	}

	return ui.progress.AddBar(total,
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DSyncSpaceR}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
			decor.OnComplete(
				decor.Elapsed(decor.ET_STYLE_GO, decor.WC{W: 12}),
				" done",
			),
		),
	)
}

// Counter creates a single-line progress bar for sequential work.
func (ui *UI) Counter(total int, description string) *progressbar.ProgressBar {
	w := ui.errOut
	if ui.jsonMode || ui.noColor {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Spinner starts a spinner for indeterminate work. The returned func stops
// it.
func (ui *UI) Spinner(message string) func() {
	if ui.jsonMode || ui.noColor {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(ui.errOut))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}

// Table prints a formatted table.
func (ui *UI) Table(headers []string, rows [][]string) {
	if ui.jsonMode || len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	border := func(left, mid, right string) {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat(ui.glyph("─", "-"), w+2)
		}
		ui.frame(left + strings.Join(parts, mid) + right + "\n")
	}
	row := func(cells []string) {
		bar := ui.glyph("│", "|")
		ui.frame(bar)
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			fmt.Fprintf(ui.out, " %s%s ", cell, strings.Repeat(" ", w-utf8.RuneCountInString(cell)))
			ui.frame(bar)
		}
		fmt.Fprintln(ui.out)
	}

	if ui.noColor {
		border("+", "+", "+")
		row(headers)
		border("+", "+", "+")
		for _, r := range rows {
			row(r)
		}
		border("+", "+", "+")
		return
	}
	border("┌", "┬", "┐")
	row(headers)
	border("├", "┼", "┤")
	for _, r := range rows {
		row(r)
	}
	border("└", "┴", "┘")
}

func (ui *UI) glyph(fancy, plain string) string {
	if ui.noColor {
		return plain
	}
	return fancy
}

func (ui *UI) frame(s string) {
	if ui.noColor {
		fmt.Fprint(ui.out, s)
		return
	}
	color.New(color.FgCyan, color.Bold).Fprint(ui.out, s)
}

// Section prints a section header.
func (ui *UI) Section(title string) {
	if ui.jsonMode {
		return
	}
	header := fmt.Sprintf("━━━ %s ━━━", strings.ToUpper(title))
	fmt.Fprintln(ui.out)
	if ui.noColor {
		fmt.Fprintln(ui.out, header)
	} else {
		color.New(color.FgMagenta, color.Bold).Fprintln(ui.out, header)
	}
	fmt.Fprintln(ui.out)
}

// KeyValue prints a key-value pair.
func (ui *UI) KeyValue(key string, value any) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Fprintf(ui.out, "  %s: %v\n", key, value)
		return
	}
	color.New(color.FgYellow).Fprintf(ui.out, "  %s: ", key)
	fmt.Fprintf(ui.out, "%v\n", value)
}

// FormatBytes formats bytes in a human-readable way.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// IsTerminal checks if stdout is a terminal.
func IsTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Newline prints a newline.
func (ui *UI) Newline() {
	if !ui.jsonMode {
		fmt.Fprintln(ui.out)
	}
}
