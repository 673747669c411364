// Package history provides the answered questions view for the TUI.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/core/services"
)

// ErrNoHistoryService indicates that no history service was provided.
var ErrNoHistoryService = errors.New("history service not available")

// linesPerEntry is the rendered height of one entry.
const linesPerEntry = 4

// View lists answered questions, newest first.
type View struct {
	styles         *styles.Styles
	historyService driving.HistoryService
	ctx            context.Context

	entries      []domain.HistoryEntry
	stats        domain.HistoryStats
	selected     int
	scrollOffset int
	expanded     bool
	confirmClear bool
	width        int
	height       int
	ready        bool
	loading      bool
	err          error
}

// NewView creates a new history view.
func NewView(s *styles.Styles, historyService driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:         s,
		historyService: historyService,
		ctx:            context.Background(),
		width:          80,
		height:         24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load reloads the history.
func (v *View) Load() tea.Cmd {
	v.loading = true
	v.expanded = false
	v.confirmClear = false
	v.err = nil
	return v.loadHistory()
}

func (v *View) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if v.historyService == nil {
			return messages.HistoryLoaded{Err: ErrNoHistoryService}
		}
		entries, err := v.historyService.List(v.ctx)
		if err != nil {
			return messages.HistoryLoaded{Err: err}
		}
		stats, err := v.historyService.Stats(v.ctx)
		return messages.HistoryLoaded{Entries: entries, Stats: stats, Err: err}
	}
}

func (v *View) clearHistory() tea.Cmd {
	return func() tea.Msg {
		if v.historyService == nil {
			return messages.HistoryCleared{Err: ErrNoHistoryService}
		}
		return messages.HistoryCleared{Err: v.historyService.Clear(v.ctx)}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.confirmClear {
			v.confirmClear = false
			if msg.String() == "y" {
				return v, v.clearHistory()
			}
			return v, nil
		}
		return v.handleKeyMsg(msg)

	case messages.HistoryLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.entries = msg.Entries
		v.stats = msg.Stats
		v.selected = 0
		v.scrollOffset = 0
		return v, nil

	case messages.HistoryCleared:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.entries = nil
		v.stats = domain.HistoryStats{}
		v.selected = 0
		v.scrollOffset = 0
		v.expanded = false
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.entries)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if len(v.entries) > 0 {
			v.expanded = !v.expanded
		}
	case "c":
		if len(v.entries) > 0 {
			v.confirmClear = true
		}
	case "r":
		return v, v.Load()
	case "esc":
		if v.expanded {
			v.expanded = false
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

func (v *View) adjustScroll() {
	visible := v.visibleEntries()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

func (v *View) visibleEntries() int {
	// title, stats, footer and padding
	reserved := 7
	return max((v.height-reserved)/linesPerEntry, 1)
}

// View renders the history view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("History"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Total answers: %d  Average confidence: %d%%",
		v.stats.Total, v.stats.AverageConfidence)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading history..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.entries) == 0:
		b.WriteString(v.styles.Muted.Render("No questions answered yet."))
	case v.expanded:
		b.WriteString(v.renderExpanded(v.entries[v.selected]))
	default:
		b.WriteString(v.renderList())
	}

	b.WriteString("\n\n")
	if v.confirmClear {
		b.WriteString(v.styles.Warning.Render("Clear all history? [y] yes  [any key] no"))
	} else {
		b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] expand  [c] clear  [r] reload  [esc] back"))
	}
	return b.String()
}

func (v *View) renderList() string {
	var b strings.Builder
	visible := v.visibleEntries()
	for i := v.scrollOffset; i < len(v.entries) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderEntry(i, v.entries[i]))
	}
	if len(v.entries) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.entries)),
			len(v.entries))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *View) renderEntry(index int, e domain.HistoryEntry) string {
	question := e.Timestamp.Format("2006-01-02 15:04") + "  " + e.Question
	if index == v.selected {
		question = v.styles.Selected.Render("> " + question)
	} else {
		question = v.styles.Normal.Render("  " + question)
	}

	preview := strings.ReplaceAll(services.Preview(e), "\n", " ")
	confidence := v.styles.Confidence(e.Answer.Confidence).Render(
		fmt.Sprintf("Confidence: %d%%  Sources: %d", e.Answer.Confidence, len(e.Answer.Sources)))

	return question + "\n" +
		"    " + v.styles.Muted.Render(preview) + "\n" +
		"    " + confidence + "\n\n"
}

func (v *View) renderExpanded(e domain.HistoryEntry) string {
	wrap := lipgloss.NewStyle().Width(max(v.width-4, 20))

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Q: " + e.Question))
	b.WriteString("\n\n")
	b.WriteString(wrap.Render(v.styles.Answer.Render(e.Answer.Text)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Confidence(e.Answer.Confidence).Render(
		fmt.Sprintf("Confidence: %d%%", e.Answer.Confidence)))
	for i, src := range e.Answer.Sources {
		b.WriteString(fmt.Sprintf("\n%d. %s (%s, relevance %d)", i+1, src.Title, src.FileType, src.Relevance))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.adjustScroll()
}

// Entries returns the loaded entries.
func (v *View) Entries() []domain.HistoryEntry {
	return v.entries
}

// Stats returns the loaded statistics.
func (v *View) Stats() domain.HistoryStats {
	return v.stats
}

// SelectedIndex returns the selected entry index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// IsExpanded returns whether the selected entry is shown in full.
func (v *View) IsExpanded() bool {
	return v.expanded
}

// IsConfirmingClear returns whether a clear is awaiting confirmation.
func (v *View) IsConfirmingClear() bool {
	return v.confirmClear
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
