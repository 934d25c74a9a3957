// ABOUTME: Console output for a precache run: per-file messages, fatal errors and the summary
// ABOUTME: Styles come from a lipgloss renderer bound to the output, so pipes get plain text

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"precache-movie-night/cache"
)

// console prints user-facing messages and implements cache.Reporter
type console struct {
	out        io.Writer
	errorStyle lipgloss.Style
	okStyle    lipgloss.Style
	warnStyle  lipgloss.Style
	nameStyle  lipgloss.Style
}

func newConsole(out io.Writer) *console {
	r := lipgloss.NewRenderer(out)

	return &console{
		out:        out,
		errorStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		okStyle:    r.NewStyle().Foreground(lipgloss.Color("10")),
		warnStyle:  r.NewStyle().Foreground(lipgloss.Color("11")),
		nameStyle:  r.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

func (c *console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// Starting implements cache.Reporter
func (c *console) Starting(res cache.Result) {
	c.printf("Downloading %s\n", c.nameStyle.Render(fmt.Sprintf("%q", res.FileName)))
}

// Failed implements cache.Reporter
func (c *console) Failed(res cache.Result) {
	name := res.FileName
	if name == "" {
		name = res.Entry
	}

	c.printf("%s Failed to download file %q: %v\n", c.errorStyle.Render("Error:"), name, res.Err)
}

// RemovingStale implements cache.Reporter
func (c *console) RemovingStale(res cache.Result) {
	c.printf("%s\n", c.warnStyle.Render(fmt.Sprintf("Deleting previous pre-cached file %q", res.FileName)))
}

// Completed implements cache.Reporter
func (c *console) Completed(res cache.Result) {
	c.printf("%s %s\n", c.okStyle.Render("Complete."), describeResult(res))
}

// GeneratedLocalConfig tells the operator a default local settings file was written
func (c *console) GeneratedLocalConfig(path, dir string) {
	c.printf("%s\n", c.warnStyle.Render(
		fmt.Sprintf("Cannot find %s, generating file. Using default path %q", path, dir)))
}

// Summary prints the final count line
func (c *console) Summary(downloaded, total int) {
	c.printf("%s\n", c.okStyle.Render(FormatSummary(downloaded, total)))
}

// Warning prints a non-fatal problem, the run carries on
func (c *console) Warning(err error) {
	c.printf("%s %v\n", c.warnStyle.Render("Warning:"), err)
}

// Fatal prints the two-line error shown before a run aborts
func (c *console) Fatal(err error) {
	label := c.errorStyle.Render("Error:")
	c.printf("%s Failed to precache items\n", label)
	c.printf("%s %v\n", label, err)
}

// WaitForEnter blocks until a line (or EOF) is read from in
func (c *console) WaitForEnter(in io.Reader) {
	c.printf("Press enter to exit.\n")

	_, _ = bufio.NewReader(in).ReadString('\n')
}

// FormatSummary returns the summary line for a run
func FormatSummary(downloaded, total int) string {
	return fmt.Sprintf("Successfully downloaded %d of %d into cache.", downloaded, total)
}

// describeResult formats size and media title of a downloaded file
func describeResult(res cache.Result) string {
	parts := []string{humanize.Bytes(uint64(res.Bytes))}

	if res.Media.Title != "" {
		title := res.Media.Title
		if res.Media.Artist != "" {
			title = res.Media.Artist + " - " + title
		}

		parts = append([]string{truncate(title, 60)}, parts...)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
