package browse

import (
	"fmt"
	"strings"

	"rickdex/cmd/rickdex/ui"
	"rickdex/internal/api"

	"github.com/charmbracelet/lipgloss"
)

const (
	loadMoreLabel = "Load More"
	loadingLabel  = "Loading..."

	detailLoadingText = "Loading character details..."
	detailErrorText   = "Failed to load character details"
)

var navSections = []string{"Characters", "Locations", "Episodes"}

// View renders the model.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.renderNavbar())
	sb.WriteString("\n")
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")

	if m.detail != nil {
		sb.WriteString(m.renderDetail())
		return sb.String()
	}

	switch {
	case m.state.Err != nil:
		sb.WriteString(m.styles.Error.Render("Could not load characters."))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render("Change a filter to try again."))
		sb.WriteString("\n")
	case len(m.state.Characters) == 0 && !m.state.Loading:
		sb.WriteString(m.styles.Muted.Render("No characters found."))
		sb.WriteString("\n")
	default:
		sb.WriteString(m.grid.View())
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m Model) renderNavbar() string {
	items := make([]string, len(navSections))
	for i, s := range navSections {
		if i == 0 {
			items[i] = m.styles.NavActive.Render(s)
		} else {
			items[i] = m.styles.NavItem.Render(s)
		}
	}
	sep := m.styles.Muted.Render(" · ")
	return m.styles.Navbar.Width(m.layout.ContentWidth()).Render(strings.Join(items, sep))
}

func (m Model) renderHeader() string {
	controls := []string{m.control(m.focus == focusName, m.name.View())}
	for _, s := range selectors {
		value := s.options[m.choice[s.field]]
		if value == "" {
			value = "any"
		}
		text := m.styles.Label.Render(s.label+":") + " ‹ " + value + " ›"
		controls = append(controls, m.control(m.focus == s.focus, text))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, controls...)

	summary := fmt.Sprintf("%d shown · page %d", len(m.state.Characters), m.state.Page)
	return m.styles.Header.Render(row + "\n" + m.styles.Subtitle.Render(summary))
}

func (m Model) control(focused bool, content string) string {
	if focused {
		return m.styles.ControlFocused.Render(content)
	}
	return m.styles.Control.Render(content)
}

func (m Model) renderGrid() string {
	if len(m.state.Characters) == 0 {
		return ""
	}
	cols := m.layout.GridColumns()
	gap := strings.Repeat(" ", ui.CardGap)

	var rows []string
	for start := 0; start < len(m.state.Characters); start += cols {
		end := min(start+cols, len(m.state.Characters))
		cards := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cards = append(cards, gap)
			}
			cards = append(cards, m.renderCard(m.state.Characters[i], i == m.selected && m.focus == focusGrid))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCard(c api.Character, selected bool) string {
	style := m.styles.Card
	if selected {
		style = m.styles.CardSelected
	}
	body := m.styles.CardTitle.Render(truncate(c.Name, ui.CardTextMax)) + "\n" +
		m.styles.Muted.Render(truncate(c.Species, ui.CardTextMax))
	return style.Width(ui.CardWidth - 2).Render(body)
}

func (m Model) renderFooter() string {
	var parts []string
	if m.state.Loading {
		parts = append(parts, m.spinner.View()+" "+m.styles.Muted.Render("Loading characters"))
	}

	if m.state.HasMore {
		var button string
		switch {
		case m.state.Loading:
			button = m.styles.ButtonDisabled.Render(loadingLabel)
		case m.focus == focusLoadMore:
			button = m.styles.ButtonFocused.Render(loadMoreLabel)
		default:
			button = m.styles.Button.Render(loadMoreLabel)
		}
		parts = append(parts, button)
	}

	help := make([]string, 0, len(m.keys.help()))
	for _, k := range m.keys.help() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	parts = append(parts, strings.Join(help, " • "))

	return m.styles.Footer.Render(strings.Join(parts, "\n"))
}

func (m Model) renderDetail() string {
	var content string
	switch {
	case m.detail.loading:
		content = m.spinner.View() + " " + m.styles.Muted.Render(detailLoadingText)
	case m.detail.err != nil || m.detail.char == nil:
		content = m.styles.Error.Render(detailErrorText)
	default:
		c := *m.detail.char
		content = m.styles.StatusBadge(c.Status) + "\n" +
			ui.RenderMarkdown(m.renderer, ui.CharacterMarkdown(c))
	}
	content += "\n" + m.styles.Muted.Render("esc close")
	return m.styles.Overlay.Width(m.layout.OverlayWidth()).Render(content)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
