package monitor

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/teamdeck/internal/config"
	"github.com/marcus/teamdeck/internal/db"
	"github.com/marcus/teamdeck/internal/models"
	"github.com/marcus/teamdeck/pkg/monitor/modal"
	"github.com/marcus/teamdeck/pkg/monitor/mouse"
)

// statusTimeout is how long a footer status stays visible.
const statusTimeout = 3 * time.Second

// Model is the Bubble Tea model for the team directory.
type Model struct {
	// Database and configuration
	DB      *db.DB
	BaseDir string
	Config  *models.Config
	Logger  *slog.Logger

	// Window dimensions
	Width  int
	Height int

	// Roster data
	Members     []models.Member
	Bios        map[string]string
	BiosWidth   int
	About       string
	LastRefresh time.Time
	Err         error

	// Live element tree and bindings
	page *page

	// Grid and about panel scroll, in card rows and lines
	GridScroll  int
	AboutScroll int

	// Footer
	Keys       KeyMap
	Help       help.Model
	ShowHelp   bool
	StatusText string
	StatusErr  bool
	statusGen  int

	mouse *mouse.Handler
}

// NewModel creates a model over database. cfg may be nil for defaults.
func NewModel(database *db.DB, baseDir string, cfg *models.Config, logger *slog.Logger) Model {
	if cfg == nil {
		cfg = &models.Config{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Model{
		DB:      database,
		BaseDir: baseDir,
		Config:  cfg,
		Logger:  logger,
		Bios:    map[string]string{},
		Keys:    DefaultKeyMap(),
		Help:    help.New(),
		mouse:   mouse.NewHandler(),
	}
}

// Init loads the roster.
func (m Model) Init() tea.Cmd {
	if m.DB == nil {
		return nil
	}
	return fetchData(m.DB)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		m.clampScroll()
		if len(m.Members) > 0 && m.BiosWidth != bioWidth(m.Width) {
			return m, renderBiosAsync(m.Members, bioWidth(m.Width), m.Config.Style())
		}
		return m, nil

	case RosterDataMsg:
		if msg.Error != nil {
			m.Err = msg.Error
			m.Logger.Error("monitor: load roster", "err", msg.Error)
			return m, nil
		}
		m.Err = nil
		m.Members = msg.Members
		m.LastRefresh = msg.Timestamp
		m.rebuild()
		var cmd tea.Cmd
		if m.Width > 0 {
			cmd = renderBiosAsync(m.Members, bioWidth(m.Width), m.Config.Style())
		}
		return m, tea.Batch(m.drainPage(), cmd)

	case BiosRenderedMsg:
		// Stale results from before a resize are dropped.
		if m.Width > 0 && msg.Width != bioWidth(m.Width) {
			return m, nil
		}
		m.Bios = msg.Bios
		m.BiosWidth = msg.Width
		m.About = msg.About
		m.rebuild()
		return m, m.drainPage()

	case modal.HoverCloseMsg:
		if m.page == nil {
			return m, nil
		}
		m.page.binder.HandleHoverClose(msg)
		return m, m.page.drain()

	case StatusMsg:
		m.StatusText = msg.Text
		m.StatusErr = msg.IsError
		m.statusGen++
		gen := m.statusGen
		return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{gen: gen} })

	case clearStatusMsg:
		if msg.gen == m.statusGen {
			m.StatusText = ""
			m.StatusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.Keys.Quit) {
		return m, tea.Quit
	}
	if m.page == nil {
		if key.Matches(msg, m.Keys.Refresh) && m.DB != nil {
			return m, fetchData(m.DB)
		}
		return m, nil
	}

	if m.page.doc.DispatchKey(msg) {
		m.clampScroll()
		return m, m.page.drain()
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.Keys.Help):
		m.ShowHelp = !m.ShowHelp
		m.Help.ShowAll = m.ShowHelp
	case key.Matches(msg, m.Keys.NextTab):
		if m.page.registry.Current() == nil {
			m.page.tabs.Cycle(1)
		}
	case key.Matches(msg, m.Keys.PrevTab):
		if m.page.registry.Current() == nil {
			m.page.tabs.Cycle(-1)
		}
	case key.Matches(msg, m.Keys.Copy):
		if mem := m.page.selectedMember(); mem != nil && mem.Email != "" {
			cmd = copyCmd(mem.Email, "email")
		}
	case key.Matches(msg, m.Keys.Refresh):
		if m.DB != nil {
			cmd = fetchData(m.DB)
		}
	case key.Matches(msg, m.Keys.Triggers.Next):
		m.page.focusTrigger(1)
	case key.Matches(msg, m.Keys.Triggers.Prev):
		m.page.focusTrigger(-1)
	}
	m.clampScroll()
	return m, tea.Batch(cmd, m.page.drain())
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.page == nil || !m.Config.MouseEnabled() {
		return m, nil
	}

	action := m.mouse.HandleMouse(msg)
	switch action.Type {
	case mouse.ActionClick, mouse.ActionDoubleClick:
		if action.Region != nil {
			m.page.doc.Click(action.Region.ID)
		}
	case mouse.ActionHover:
		id := ""
		if action.Region != nil {
			id = action.Region.ID
		}
		m.page.doc.Hover(id)
	case mouse.ActionScrollUp:
		m.scroll(-1)
	case mouse.ActionScrollDown:
		m.scroll(1)
	}
	return m, m.page.drain()
}

// rebuild replaces the page for the current roster and bios, carrying over
// the tab, open dialog and focus.
func (m *Model) rebuild() {
	keys := m.Keys.Triggers
	p, err := newPage(m.Members, m.Bios, m.About, pageOptions{
		Hover:      m.Config.HoverMode,
		HoverDelay: m.Config.HoverDelay(),
		Logger:     m.Logger,
		Keys:       &keys,
		ActiveTab:  m.Config.ActiveTab,
		OnTab:      m.saveActiveTab,
	})
	if err != nil {
		m.Err = fmt.Errorf("build page: %w", err)
		m.Logger.Error("monitor: build page", "err", err)
		return
	}
	p.restore(m.page)
	m.page = p
	m.clampScroll()
}

// drainPage returns the commands queued by the current page, if any.
func (m Model) drainPage() tea.Cmd {
	if m.page == nil {
		return nil
	}
	return m.page.drain()
}

// saveActiveTab persists the selected tab so the next session starts on it.
func (m Model) saveActiveTab(tabID string) tea.Cmd {
	m.Config.ActiveTab = tabID
	if m.BaseDir == "" {
		return nil
	}
	baseDir := m.BaseDir
	return func() tea.Msg {
		if err := config.SetActiveTab(baseDir, tabID); err != nil {
			return StatusMsg{Text: fmt.Sprintf("save tab: %v", err), IsError: true}
		}
		return nil
	}
}

// panelHeight is the number of lines available to the tab panel.
func (m Model) panelHeight() int {
	return max(m.Height-headerHeight-m.footerHeight(), 1)
}

// clampScroll keeps the focused card on screen.
func (m *Model) clampScroll() {
	if m.page == nil || m.Width == 0 {
		return
	}
	triggers := m.visibleTriggers()
	cols := gridColumns(m.Width)
	row := -1
	if a := m.page.doc.Active(); a != nil {
		for i, t := range triggers {
			if t == a {
				row = i / cols
				break
			}
		}
	}
	m.GridScroll = clampGridScroll(m.GridScroll, row, visibleGridRows(m.panelHeight()), gridRows(len(triggers), cols))
}

// scroll moves the visible panel by delta rows (grid) or lines (about).
func (m *Model) scroll(delta int) {
	if m.page.activeTab() == tabAboutID {
		m.AboutScroll = max(m.AboutScroll+delta, 0)
		return
	}
	triggers := m.visibleTriggers()
	total := gridRows(len(triggers), gridColumns(m.Width))
	m.GridScroll = clampGridScroll(m.GridScroll+delta, -1, visibleGridRows(m.panelHeight()), total)
}
