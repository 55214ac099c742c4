package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// BrowserAction is how the user left the suggestions browser.
type BrowserAction int

const (
	// BrowserContinue: done reviewing, continue with the flow.
	BrowserContinue BrowserAction = iota
	// BrowserSolved: a suggestion solved the problem, end the flow.
	BrowserSolved
	// BrowserQuit: abandon the whole flow.
	BrowserQuit
)

// SuggestionItem is one browsable document suggestion.
type SuggestionItem struct {
	Title   string
	URI     string
	Excerpt string

	// Score is the document's helpfulness score.
	Score int

	// Vote is the user's recorded vote: "", "positive", or "negative".
	Vote string
}

// BrowserCallbacks report user interactions as they happen so the caller can
// drive analytics and vote recording without the model knowing about either.
// Either callback may be nil.
type BrowserCallbacks struct {
	// Opened fires when the user opens the document at index.
	Opened func(index int)

	// Voted fires when the user votes on the document at index. The return
	// value replaces the item's displayed vote; return "" to leave it.
	Voted func(index int, positive bool) string
}

// browserKeyMap defines the key bindings of the suggestions browser.
type browserKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	Helpful    key.Binding
	NotHelpful key.Binding
	Solved     key.Binding
	Continue   key.Binding
	Quit       key.Binding
}

func defaultBrowserKeys() browserKeyMap {
	return browserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter", "open"),
		),
		Helpful: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "helpful"),
		),
		NotHelpful: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "not helpful"),
		),
		Solved: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "solved my problem"),
		),
		Continue: key.NewBinding(
			key.WithKeys("c", "esc"),
			key.WithHelp("c", "continue"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel is the Bubble Tea model for the suggestions browser: a
// selectable list of suggested documents with a scrollable excerpt preview.
//
// BrowserModel follows the Elm architecture: Update returns a new value, and
// View is a pure function of the model state.
type BrowserModel struct {
	theme     Theme
	keys      browserKeyMap
	items     []SuggestionItem
	callbacks BrowserCallbacks

	selected int
	viewport viewport.Model
	width    int
	action   BrowserAction
	done     bool
}

// NewBrowserModel creates a browser over the given suggestions with the
// first item selected.
func NewBrowserModel(theme Theme, items []SuggestionItem, callbacks BrowserCallbacks) BrowserModel {
	m := BrowserModel{
		theme:     theme,
		keys:      defaultBrowserKeys(),
		items:     items,
		callbacks: callbacks,
		viewport:  viewport.New(0, 6),
	}
	m.refreshPreview()
	return m
}

// Selected returns the index of the highlighted suggestion.
func (m BrowserModel) Selected() int { return m.selected }

// Action returns how the user left the browser. Meaningful once done.
func (m BrowserModel) Action() BrowserAction { return m.action }

// Done reports whether the user has left the browser.
func (m BrowserModel) Done() bool { return m.done }

// Init implements tea.Model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width - 4
		m.refreshPreview()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.refreshPreview()
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.items)-1 {
			m.selected++
			m.refreshPreview()
		}

	case key.Matches(msg, m.keys.Open):
		if m.callbacks.Opened != nil && len(m.items) > 0 {
			m.callbacks.Opened(m.selected)
		}

	case key.Matches(msg, m.keys.Helpful):
		m.vote(true)

	case key.Matches(msg, m.keys.NotHelpful):
		m.vote(false)

	case key.Matches(msg, m.keys.Solved):
		m.action = BrowserSolved
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Continue):
		m.action = BrowserContinue
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Quit):
		m.action = BrowserQuit
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *BrowserModel) vote(positive bool) {
	if m.callbacks.Voted == nil || len(m.items) == 0 {
		return
	}
	if v := m.callbacks.Voted(m.selected, positive); v != "" {
		m.items[m.selected].Vote = v
	}
}

// refreshPreview loads the selected item's excerpt into the viewport.
func (m *BrowserModel) refreshPreview() {
	if len(m.items) == 0 {
		m.viewport.SetContent("")
		return
	}
	item := m.items[m.selected]
	m.viewport.SetContent(item.Excerpt + "\n\n" + item.URI)
	m.viewport.GotoTop()
}

// View implements tea.Model.
func (m BrowserModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.theme.BrowserTitle.Render("Suggested help resources"))
	sb.WriteString("\n")

	if len(m.items) == 0 {
		sb.WriteString(m.theme.ItemNormal.Render("No suggestions for this problem yet."))
		sb.WriteString("\n")
	}

	for i, item := range m.items {
		line := fmt.Sprintf("%d. %s", i+1, item.Title)
		style := m.theme.ItemNormal
		if i == m.selected {
			style = m.theme.ItemSelected
			line = "> " + line
		} else {
			line = "  " + line
		}
		sb.WriteString(style.Render(line))
		sb.WriteString(" ")
		sb.WriteString(m.theme.ItemScore.Render(fmt.Sprintf("[%d]", item.Score)))
		switch item.Vote {
		case "positive":
			sb.WriteString(" " + m.theme.VotePositive.Render("▲"))
		case "negative":
			sb.WriteString(" " + m.theme.VoteNegative.Render("▼"))
		}
		sb.WriteString("\n")
	}

	if len(m.items) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.viewport.View())
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.helpLine())

	return m.theme.BrowserContainer.Render(sb.String())
}

// helpLine renders the key hints shown under the browser.
func (m BrowserModel) helpLine() string {
	bindings := []key.Binding{
		m.keys.Up, m.keys.Down, m.keys.Open,
		m.keys.Helpful, m.keys.NotHelpful,
		m.keys.Solved, m.keys.Continue, m.keys.Quit,
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts,
			m.theme.HelpKey.Render(h.Key)+" "+m.theme.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, m.theme.HelpDesc.Render(" · "))
}

// RunBrowser runs the suggestions browser as a standalone Bubble Tea program
// and returns how the user left it.
func RunBrowser(theme Theme, items []SuggestionItem, callbacks BrowserCallbacks) (BrowserAction, error) {
	final, err := tea.NewProgram(NewBrowserModel(theme, items, callbacks)).Run()
	if err != nil {
		return BrowserQuit, fmt.Errorf("tui: running suggestions browser: %w", err)
	}
	return final.(BrowserModel).Action(), nil
}
