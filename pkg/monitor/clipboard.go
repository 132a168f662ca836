package monitor

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/teamdeck/internal/models"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// copyCmd copies text and reports the outcome as a StatusMsg.
func copyCmd(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return StatusMsg{Text: fmt.Sprintf("copy failed: %v", err), IsError: true}
		}
		return StatusMsg{Text: "copied " + what}
	}
}

// formatMemberAsMarkdown formats a member card for pasting.
func formatMemberAsMarkdown(m *models.Member) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n", m.Name))
	sb.WriteString(fmt.Sprintf("**Role:** %s", m.Role))
	if m.Team != "" {
		sb.WriteString(fmt.Sprintf(" | **Team:** %s", m.Team))
	}
	sb.WriteString("\n")
	if m.Email != "" {
		sb.WriteString(fmt.Sprintf("**Email:** <%s>\n", m.Email))
	}

	if m.Bio != "" {
		sb.WriteString("\n")
		sb.WriteString(strings.TrimSpace(m.Bio))
		sb.WriteString("\n")
	}

	if len(m.Links) > 0 {
		sb.WriteString("\n## Links\n\n")
		for _, l := range m.Links {
			sb.WriteString(fmt.Sprintf("- [%s](%s)\n", l.Label, l.URL))
		}
	}

	return sb.String()
}
