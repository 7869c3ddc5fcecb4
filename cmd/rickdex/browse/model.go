// Package browse implements the interactive character browser.
package browse

import (
	"context"

	"rickdex/cmd/rickdex/ui"
	"rickdex/internal/api"
	"rickdex/internal/catalog"
	"rickdex/internal/config"
	"rickdex/internal/logging"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// CharacterGetter fetches a single character for the detail overlay.
type CharacterGetter interface {
	GetCharacter(ctx context.Context, id int) (*api.Character, error)
}

// StateMsg carries a Browser snapshot into the program.
type StateMsg catalog.State

// ConfigMsg carries a configuration reloaded from disk.
type ConfigMsg struct {
	Config *config.Config
}

type detailMsg struct {
	seq  uint64
	id   int
	char *api.Character
	err  error
}

type focus int

const (
	focusName focus = iota
	focusSpecies
	focusGender
	focusStatus
	focusGrid
	focusLoadMore
)

// selectors lists the cycling controls in focus order. The first option of
// each is the empty "any" value.
var selectors = []struct {
	field   api.Field
	label   string
	focus   focus
	options []string
}{
	{api.FieldSpecies, "Species", focusSpecies, []string{"", "human", "alien", "robot"}},
	{api.FieldGender, "Gender", focusGender, []string{"", "male", "female", "unknown"}},
	{api.FieldStatus, "Status", focusStatus, []string{"", "alive", "dead", "unknown"}},
}

type detailView struct {
	seq     uint64
	id      int
	loading bool
	char    *api.Character
	err     error
}

// Model is the Bubble Tea model of the browser view.
type Model struct {
	ctx     context.Context
	browser *catalog.Browser
	getter  CharacterGetter
	log     *zap.Logger

	styles   ui.Styles
	theme    string
	layout   ui.LayoutConfig
	renderer *glamour.TermRenderer
	keys     keyMap

	state    catalog.State
	name     textinput.Model
	spinner  spinner.Model
	grid     viewport.Model
	choice   map[api.Field]int
	selected int
	focus    focus

	detail    *detailView
	detailSeq uint64
}

// New creates the browser view model. The Browser is started by Init.
func New(ctx context.Context, b *catalog.Browser, g CharacterGetter, theme string) Model {
	styles := ui.NewStyles(ui.ThemeByName(theme))
	layout := ui.NewLayoutConfig(ui.DefaultTerminalWidth, ui.DefaultTerminalHeight)

	ti := textinput.New()
	ti.Placeholder = "Search by name"
	ti.Prompt = "⌕ "
	ti.CharLimit = 64
	ti.Width = 24
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(layout.ContentWidth(), layout.GridHeight())

	renderer, _ := ui.NewRenderer(theme, layout.OverlayWidth()-6, true)

	return Model{
		ctx:      ctx,
		browser:  b,
		getter:   g,
		log:      logging.Get(logging.CategoryUI),
		styles:   styles,
		theme:    theme,
		layout:   layout,
		renderer: renderer,
		keys:     defaultKeyMap(),
		state:    b.State(),
		name:     ti,
		spinner:  sp,
		grid:     vp,
		choice:   make(map[api.Field]int),
		focus:    focusName,
	}
}

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	b := m.browser
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		func() tea.Msg {
			b.Start()
			return StateMsg(b.State())
		},
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayoutConfig(msg.Width, msg.Height)
		m.grid.Width = m.layout.ContentWidth()
		m.grid.Height = m.layout.GridHeight()
		if r, err := ui.NewRenderer(m.theme, m.layout.OverlayWidth()-6, true); err == nil {
			m.renderer = r
		}
		m.syncGrid()
		return m, nil

	case StateMsg:
		m.applyState(catalog.State(msg))
		return m, nil

	case ConfigMsg:
		if msg.Config != nil && msg.Config.Browse.Theme != m.theme {
			m.setTheme(msg.Config.Browse.Theme)
		}
		return m, nil

	case detailMsg:
		if m.detail == nil || m.detail.seq != msg.seq {
			m.log.Debug("dropping late detail response", zap.Int("id", msg.id))
			return m, nil
		}
		m.detail.loading = false
		m.detail.char = msg.char
		m.detail.err = msg.err
		if msg.err != nil {
			m.log.Warn("failed to load character details", zap.Int("id", msg.id), zap.Error(msg.err))
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusName {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.detail != nil {
		if key.Matches(msg, m.keys.Back) {
			m.detail = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.cycleFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.LoadMore):
		m.loadMore()
		return m, nil
	}

	switch m.focus {
	case focusName:
		before := m.name.Value()
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		if v := m.name.Value(); v != before {
			m.browser.SetFilter(api.FieldName, v)
			m.applyState(m.browser.State())
		}
		return m, cmd

	case focusSpecies, focusGender, focusStatus:
		switch {
		case key.Matches(msg, m.keys.Right):
			m.cycleSelector(1)
		case key.Matches(msg, m.keys.Left):
			m.cycleSelector(-1)
		}

	case focusGrid:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.moveSelection(-1)
		case key.Matches(msg, m.keys.Right):
			m.moveSelection(1)
		case key.Matches(msg, m.keys.Up):
			m.moveSelection(-m.layout.GridColumns())
		case key.Matches(msg, m.keys.Down):
			m.moveSelection(m.layout.GridColumns())
		case key.Matches(msg, m.keys.Enter):
			return m, m.openDetail()
		}

	case focusLoadMore:
		if key.Matches(msg, m.keys.Enter) {
			m.loadMore()
		}
	}
	return m, nil
}

// applyState installs s unless an equal or newer snapshot is already held.
func (m *Model) applyState(s catalog.State) {
	if s.Version < m.state.Version {
		return
	}
	m.state = s
	if m.selected >= len(s.Characters) {
		m.selected = max(len(s.Characters)-1, 0)
	}
	if m.focus == focusLoadMore && !s.HasMore {
		m.setFocus(focusGrid)
	}
	m.syncGrid()
}

func (m *Model) setTheme(theme string) {
	m.theme = theme
	m.styles = ui.NewStyles(ui.ThemeByName(theme))
	m.spinner.Style = m.styles.Spinner
	if r, err := ui.NewRenderer(theme, m.layout.OverlayWidth()-6, true); err == nil {
		m.renderer = r
	}
	m.syncGrid()
	m.log.Debug("theme changed", zap.String("theme", theme))
}

func (m *Model) focusOrder() []focus {
	order := []focus{focusName, focusSpecies, focusGender, focusStatus, focusGrid}
	if m.state.HasMore {
		order = append(order, focusLoadMore)
	}
	return order
}

func (m *Model) cycleFocus(delta int) {
	order := m.focusOrder()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	m.setFocus(order[idx])
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusName {
		m.name.Focus()
	} else {
		m.name.Blur()
	}
	m.syncGrid()
}

func (m *Model) cycleSelector(delta int) {
	for _, s := range selectors {
		if s.focus != m.focus {
			continue
		}
		idx := (m.choice[s.field] + delta + len(s.options)) % len(s.options)
		m.choice[s.field] = idx
		m.browser.SetFilter(s.field, s.options[idx])
		m.selected = 0
		m.grid.GotoTop()
		m.applyState(m.browser.State())
		return
	}
}

func (m *Model) moveSelection(delta int) {
	n := len(m.state.Characters)
	if n == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), n-1)
	m.syncGrid()
}

func (m *Model) loadMore() {
	if m.browser.LoadMore() {
		m.applyState(m.browser.State())
	}
}

func (m *Model) openDetail() tea.Cmd {
	if m.selected >= len(m.state.Characters) {
		return nil
	}
	m.detailSeq++
	id := m.state.Characters[m.selected].ID
	m.detail = &detailView{seq: m.detailSeq, id: id, loading: true}

	ctx, getter, seq := m.ctx, m.getter, m.detailSeq
	return func() tea.Msg {
		c, err := getter.GetCharacter(ctx, id)
		return detailMsg{seq: seq, id: id, char: c, err: err}
	}
}

// syncGrid re-renders the cards and keeps the selected row in view.
func (m *Model) syncGrid() {
	m.grid.SetContent(m.renderGrid())

	if len(m.state.Characters) == 0 {
		m.grid.GotoTop()
		return
	}
	top := (m.selected / m.layout.GridColumns()) * ui.CardHeight
	switch {
	case top < m.grid.YOffset:
		m.grid.SetYOffset(top)
	case top+ui.CardHeight > m.grid.YOffset+m.grid.Height:
		m.grid.SetYOffset(top + ui.CardHeight - m.grid.Height)
	}
}
