package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"
)

// Link is a labelled URL shown in a member's dialog
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Member is one person on the roster
type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Team      string    `json:"team,omitempty"`
	Email     string    `json:"email,omitempty"`
	Bio       string    `json:"bio,omitempty"` // markdown
	Links     []Link    `json:"links,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the fields a member must have
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(m.Role) == "" {
		return fmt.Errorf("role is required for %s", m.Name)
	}
	if m.Email != "" {
		if _, err := mail.ParseAddress(m.Email); err != nil {
			return fmt.Errorf("invalid email %q for %s", m.Email, m.Name)
		}
	}
	for _, l := range m.Links {
		if strings.TrimSpace(l.URL) == "" {
			return fmt.Errorf("link %q for %s has no url", l.Label, m.Name)
		}
	}
	return nil
}

// Initials returns up to two upper-case initials from the name
func (m *Member) Initials() string {
	var out []rune
	for _, word := range strings.Fields(m.Name) {
		r := []rune(word)[0]
		if unicode.IsLetter(r) {
			out = append(out, unicode.ToUpper(r))
		}
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

// TeamOrDefault returns the member's team, or "Unassigned"
func (m *Member) TeamOrDefault() string {
	if strings.TrimSpace(m.Team) == "" {
		return "Unassigned"
	}
	return m.Team
}

// DefaultHoverDelayMS is the hover close delay used when none is configured
const DefaultHoverDelayMS = 300

// Config is the per-directory teamdeck configuration
type Config struct {
	HoverMode    bool   `json:"hover_mode"`
	HoverDelayMS int    `json:"hover_delay_ms,omitempty"`
	Mouse        *bool  `json:"mouse,omitempty"` // nil means enabled
	GlamourStyle string `json:"glamour_style,omitempty"`
	ActiveTab    string `json:"active_tab,omitempty"`
}

// HoverDelay returns the configured hover close delay
func (c *Config) HoverDelay() time.Duration {
	if c.HoverDelayMS <= 0 {
		return DefaultHoverDelayMS * time.Millisecond
	}
	return time.Duration(c.HoverDelayMS) * time.Millisecond
}

// MouseEnabled reports whether mouse input should be captured
func (c *Config) MouseEnabled() bool {
	return c.Mouse == nil || *c.Mouse
}

// Style returns the glamour style name, defaulting to "dark"
func (c *Config) Style() string {
	if c.GlamourStyle == "" {
		return "dark"
	}
	return c.GlamourStyle
}
