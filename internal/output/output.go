// Package output formats command-line results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/teamdeck/internal/models"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	nameStyle    = lipgloss.NewStyle().Bold(true)
	roleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Writers are variables so tests can capture output
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Success prints a success message
func Success(format string, args ...any) {
	fmt.Fprintln(Stdout, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Error prints an error message to stderr
func Error(format string, args ...any) {
	fmt.Fprintln(Stderr, errorStyle.Render("ERROR: "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message to stderr
func Warning(format string, args ...any) {
	fmt.Fprintln(Stderr, warningStyle.Render("WARNING: "+fmt.Sprintf(format, args...)))
}

// JSON writes v as indented JSON
func JSON(v any) error {
	enc := json.NewEncoder(Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// JSONError writes a machine-readable error
func JSONError(code, message string) {
	JSON(map[string]any{"error": map[string]string{"code": code, "message": message}})
}

// FormatMemberShort renders "tm-abc123  Name  Role"
func FormatMemberShort(m *models.Member) string {
	return fmt.Sprintf("%s  %s  %s", mutedStyle.Render(m.ID), nameStyle.Render(m.Name), roleStyle.Render(m.Role))
}

// FormatMemberPlain renders a member as tab-separated fields for pipes
func FormatMemberPlain(m *models.Member) string {
	return strings.Join([]string{m.ID, m.Name, m.Role, m.Team, m.Email}, "\t")
}

// FormatMemberLong renders every field of a member
func FormatMemberLong(m *models.Member) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", nameStyle.Render(m.Name), mutedStyle.Render(m.ID))
	fmt.Fprintf(&sb, "%s\n", roleStyle.Render(m.Role))
	if m.Team != "" {
		fmt.Fprintf(&sb, "Team:  %s\n", m.Team)
	}
	if m.Email != "" {
		fmt.Fprintf(&sb, "Email: %s\n", m.Email)
	}
	for _, l := range m.Links {
		fmt.Fprintf(&sb, "Link:  %s <%s>\n", l.Label, l.URL)
	}
	if !m.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "Added: %s\n", FormatTimeAgo(m.CreatedAt))
	}
	if m.Bio != "" {
		fmt.Fprintf(&sb, "\n%s\n", m.Bio)
	}
	return sb.String()
}

// FormatTimeAgo returns a human-readable relative time
func FormatTimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
