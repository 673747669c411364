// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/styles"
)

// Entry is a menu option.
type Entry struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

var entries = []Entry{
	{Label: "Ask a question", Hint: "answers quoted from your documents", View: messages.ViewAsk},
	{Label: "Documents", Hint: "browse, add web pages, remove", View: messages.ViewDocuments},
	{Label: "History", Hint: "previous answers and their sources", View: messages.ViewHistory},
	{Label: "Help", Hint: "key bindings", View: messages.ViewHelp},
	{Label: "Quit", Quit: true},
}

// View is the main menu.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	entries   []Entry
	cursor    int
	documents int
	width     int
	height    int
	ready     bool
}

// NewView creates the menu view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:  s,
		keymap:  km,
		entries: entries,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles navigation and selection.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.DocumentsLoaded:
		if msg.Err == nil {
			v.documents = len(msg.Documents)
		}

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keymap.Up):
		v.cursor = max(v.cursor-1, 0)
	case key.Matches(msg, v.keymap.Down):
		v.cursor = min(v.cursor+1, len(v.entries)-1)
	case key.Matches(msg, v.keymap.Select):
		return v.choose(v.cursor)
	case key.Matches(msg, v.keymap.Quit):
		return tea.Quit
	default:
		// Digits jump straight to an entry.
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(v.entries) {
			v.cursor = n - 1
			return v.choose(v.cursor)
		}
	}
	return nil
}

func (v *View) choose(i int) tea.Cmd {
	e := v.entries[i]
	if e.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: e.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("askdocs"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Answers from your documents  (%d loaded)", v.documents)))
	b.WriteString("\n\n")

	for i, e := range v.entries {
		line := fmt.Sprintf("%d. %s", i+1, e.Label)
		if i == v.cursor {
			b.WriteString(v.styles.Subtitle.Render("> " + line))
			if e.Hint != "" {
				b.WriteString(v.styles.Muted.Render("  " + e.Hint))
			}
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter/1-5] select  [?] help  [q] quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the index under the cursor.
func (v *View) Selected() int {
	return v.cursor
}

// DocumentCount returns the document count shown under the title.
func (v *View) DocumentCount() int {
	return v.documents
}
