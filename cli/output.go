// ABOUTME: Shared CLI output helpers
// ABOUTME: Tab-aligned tables, status lines and date formatting
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/models"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headingStyle = lipgloss.NewStyle().Bold(true)
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printSuccess(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

func printWarning(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, warningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

func printHeading(w io.Writer, text string) {
	_, _ = fmt.Fprintln(w, headingStyle.Render(text))
	_, _ = fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

func formatDay(t time.Time) string {
	return t.Format(actions.DateLayout)
}

func formatDayPtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDay(*t)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// printActions renders a ranked action list as a table.
func printActions(w io.Writer, list []models.RecommendedAction) {
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, "Nothing to do. 🎉")
		return
	}

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "  \tLEAD\tACTION\tDUE\tID")
	_, _ = fmt.Fprintln(tw, "  \t----\t------\t---\t--")
	for _, a := range list {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			models.UrgencyIndicator(a.Urgency), a.LeadName, a.Label, formatDay(a.DueDate), a.ID)
	}
	_ = tw.Flush()
}

// confirm asks a yes/no question when in is a terminal. Piped input
// always proceeds.
func confirm(in *os.File, out io.Writer, prompt string) bool {
	if !term.IsTerminal(int(in.Fd())) {
		return true
	}
	_, _ = fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
