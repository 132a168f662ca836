package monitor

import (
	"context"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/marcus/teamdeck/internal/db"
	"github.com/marcus/teamdeck/internal/models"
	"golang.org/x/sync/errgroup"
)

// RosterDataMsg carries the roster loaded from the database.
type RosterDataMsg struct {
	Members   []models.Member
	Timestamp time.Time
	Error     error
}

// BiosRenderedMsg carries pre-rendered member bios keyed by member ID.
type BiosRenderedMsg struct {
	Width int
	Bios  map[string]string
	About string
}

// StatusMsg shows a transient line in the footer.
type StatusMsg struct {
	Text    string
	IsError bool
}

// clearStatusMsg clears the footer status once its generation is current.
type clearStatusMsg struct {
	gen int
}

// FetchData reads the roster in display order.
func FetchData(database *db.DB) RosterDataMsg {
	members, err := database.ListMembers(db.ListMembersOptions{})
	return RosterDataMsg{Members: members, Timestamp: time.Now(), Error: err}
}

// fetchData wraps FetchData as a command.
func fetchData(database *db.DB) tea.Cmd {
	return func() tea.Msg {
		return FetchData(database)
	}
}

// maxRenderWorkers bounds concurrent glamour renderers.
const maxRenderWorkers = 4

// RenderBios renders every bio in parallel. Rendering falls back to the raw
// text on failure, so the only error is context cancellation.
func RenderBios(ctx context.Context, members []models.Member, width int, style string) (map[string]string, error) {
	out := make(map[string]string, len(members))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxRenderWorkers)
	for i := range members {
		m := members[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rendered := preRenderMarkdown(m.Bio, width, style)
			mu.Lock()
			out[m.ID] = rendered
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// renderBiosAsync returns a command that renders bios and the about panel in
// the background.
func renderBiosAsync(members []models.Member, width int, style string) tea.Cmd {
	return func() tea.Msg {
		bios, err := RenderBios(context.Background(), members, width, style)
		if err != nil {
			bios = map[string]string{}
		}
		return BiosRenderedMsg{Width: width, Bios: bios, About: preRenderMarkdown(aboutMarkdown, width, style)}
	}
}

// preRenderMarkdown renders markdown once.
func preRenderMarkdown(text string, width int, style string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	if style == "" {
		style = "dark"
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}

	// Glamour pads with blank lines on both ends
	return strings.Trim(rendered, "\n\r")
}
