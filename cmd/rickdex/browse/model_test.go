package browse

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rickdex/internal/api"
	"rickdex/internal/catalog"
	"rickdex/internal/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	mu      sync.Mutex
	filters []api.Filters
	getErr  error
}

func (s *stubAPI) ListCharacters(_ context.Context, page int, f api.Filters) (*api.CharacterPage, error) {
	s.mu.Lock()
	s.filters = append(s.filters, f)
	s.mu.Unlock()
	return &api.CharacterPage{
		Info:    api.PageInfo{Count: 1, Pages: 1},
		Results: []api.Character{{ID: page, Name: "Rick Sanchez", Species: "Human"}},
	}, nil
}

func (s *stubAPI) GetCharacter(_ context.Context, id int) (*api.Character, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &api.Character{ID: id, Name: "Rick Sanchez", Status: "Alive", Species: "Human"}, nil
}

func (s *stubAPI) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filters)
}

func (s *stubAPI) lastFilters() api.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.filters) == 0 {
		return api.Filters{}
	}
	return s.filters[len(s.filters)-1]
}

func newTestModel(t *testing.T, stub *stubAPI) Model {
	t.Helper()
	b := catalog.NewBrowser(stub, catalog.WithSearchDelay(20*time.Millisecond))
	t.Cleanup(b.Close)
	return New(context.Background(), b, stub, "light")
}

func withState(m Model, s catalog.State) Model {
	s.Version = m.state.Version + 1
	next, _ := m.Update(StateMsg(s))
	return next.(Model)
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func rick() []api.Character {
	return []api.Character{{ID: 1, Name: "Rick Sanchez", Species: "Human"}, {ID: 2, Name: "Morty Smith", Species: "Human"}}
}

func TestView_LoadMoreVisibility(t *testing.T) {
	m := newTestModel(t, &stubAPI{})

	m = withState(m, catalog.State{Characters: rick(), Page: 1, HasMore: true})
	view := m.View()
	assert.Contains(t, view, loadMoreLabel)
	assert.Contains(t, view, "Morty Smith")

	m = withState(m, catalog.State{Characters: rick(), Page: 1, HasMore: true, Loading: true})
	view = m.View()
	assert.Contains(t, view, loadingLabel)
	assert.NotContains(t, view, loadMoreLabel)

	m = withState(m, catalog.State{Characters: rick(), Page: 1, HasMore: false})
	view = m.View()
	assert.NotContains(t, view, loadMoreLabel)
	assert.NotContains(t, view, loadingLabel)
}

func TestView_EmptyAndError(t *testing.T) {
	m := newTestModel(t, &stubAPI{})

	m = withState(m, catalog.State{Page: 1})
	assert.Contains(t, m.View(), "No characters found.")

	m = withState(m, catalog.State{Page: 1, Err: errors.New("boom")})
	assert.Contains(t, m.View(), "Could not load characters.")
}

func TestView_Navbar(t *testing.T) {
	view := newTestModel(t, &stubAPI{}).View()
	for _, s := range navSections {
		assert.Contains(t, view, s)
	}
}

func TestUpdate_StaleStateDropped(t *testing.T) {
	m := newTestModel(t, &stubAPI{})
	m = withState(m, catalog.State{Characters: rick(), Page: 2, HasMore: true})
	held := m.state.Version

	next, _ := m.Update(StateMsg(catalog.State{Page: 1, Version: held - 1}))
	m = next.(Model)
	assert.Equal(t, 2, m.state.Page)
	assert.Len(t, m.state.Characters, 2)
}

func TestFocusCycle(t *testing.T) {
	m := newTestModel(t, &stubAPI{})
	m = withState(m, catalog.State{Characters: rick(), Page: 1, HasMore: false})

	want := []focus{focusSpecies, focusGender, focusStatus, focusGrid, focusName}
	for _, f := range want {
		m, _ = press(m, tea.KeyTab)
		assert.Equal(t, f, m.focus)
	}

	m = withState(m, catalog.State{Characters: rick(), Page: 1, HasMore: true})
	m, _ = press(m, tea.KeyShiftTab)
	assert.Equal(t, focusLoadMore, m.focus)

	// Load More disappears while focused.
	m = withState(m, catalog.State{Characters: rick(), Page: 1, HasMore: false})
	assert.Equal(t, focusGrid, m.focus)
}

func TestSelectorSetsFilter(t *testing.T) {
	stub := &stubAPI{}
	m := newTestModel(t, stub)

	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyRight)
	assert.Equal(t, "human", m.browser.State().Filters.Species)
	assert.Contains(t, m.View(), "‹ human ›")

	m, _ = press(m, tea.KeyLeft)
	assert.Equal(t, "", m.browser.State().Filters.Species)
	assert.Contains(t, m.View(), "‹ any ›")

	require.Eventually(t, func() bool { return !m.browser.State().Loading }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, stub.calls())
}

func TestNameInputDebounced(t *testing.T) {
	stub := &stubAPI{}
	m := newTestModel(t, stub)

	for _, r := range "rick" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	assert.Equal(t, "rick", m.browser.State().Filters.Name)
	assert.True(t, m.browser.SearchPending())

	require.Eventually(t, func() bool { return stub.lastFilters().Name == "rick" }, time.Second, 5*time.Millisecond)
}

func TestDetailOverlay(t *testing.T) {
	m := newTestModel(t, &stubAPI{})
	m = withState(m, catalog.State{Characters: rick(), Page: 1})
	m.setFocus(focusGrid)

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), detailLoadingText)

	next, _ := m.Update(cmd())
	m = next.(Model)
	require.NotNil(t, m.detail.char)
	assert.Equal(t, "Rick Sanchez", m.detail.char.Name)
	view := m.View()
	assert.Contains(t, view, "Alive")
	assert.NotContains(t, view, detailLoadingText)

	m, _ = press(m, tea.KeyEsc)
	assert.Nil(t, m.detail)
	assert.Len(t, m.state.Characters, 2)
}

func TestDetailOverlay_Error(t *testing.T) {
	m := newTestModel(t, &stubAPI{getErr: &api.NetworkError{Op: "get character", StatusCode: 404}})
	m = withState(m, catalog.State{Characters: rick(), Page: 1})
	m.setFocus(focusGrid)
	m, _ = press(m, tea.KeyRight)

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	msg := cmd().(detailMsg)
	assert.Equal(t, 2, msg.id)

	next, _ := m.Update(msg)
	m = next.(Model)
	assert.Contains(t, m.View(), detailErrorText)
	assert.Len(t, m.state.Characters, 2)
}

func TestDetailOverlay_LateResponseDropped(t *testing.T) {
	m := newTestModel(t, &stubAPI{})
	m = withState(m, catalog.State{Characters: rick(), Page: 1})
	m.setFocus(focusGrid)

	m, cmd := press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyEsc)

	next, _ := m.Update(cmd())
	m = next.(Model)
	assert.Nil(t, m.detail)
	assert.NotContains(t, m.View(), "esc close")
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, &stubAPI{})

	_, cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Rick", truncate("Rick", 10))
	assert.Equal(t, "Abradolf…", truncate("Abradolf Lincler", 9))
}

func TestConfigMsgChangesTheme(t *testing.T) {
	m := newTestModel(t, &stubAPI{})
	require.False(t, m.styles.Theme.IsDark)

	cfg := config.DefaultConfig()
	cfg.Browse.Theme = "dark"
	next, _ := m.Update(ConfigMsg{Config: cfg})
	m = next.(Model)
	assert.Equal(t, "dark", m.theme)
	assert.True(t, m.styles.Theme.IsDark)
}
