// Package doccontent shows the extracted text of one document.
package doccontent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
)

// ErrNoDocumentService indicates that no document service was provided.
var ErrNoDocumentService = errors.New("document service not available")

const (
	// Title, metadata, rule, indicator, help and spacing.
	chromeLines = 7
	minWrap     = 20
)

// View renders a document's text in a scrollable body.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	documents driving.DocumentService
	ctx       context.Context

	summary *domain.DocumentSummary
	content string
	lines   []string
	body    viewport.Model

	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates the document content view.
func NewView(s *styles.Styles, km *keymap.KeyMap, documents driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:    s,
		keymap:    km,
		documents: documents,
		ctx:       context.Background(),
		body:      viewport.New(minWrap, 1),
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDocument shows doc and starts loading its content.
func (v *View) SetDocument(doc domain.DocumentSummary) tea.Cmd {
	v.summary = &doc
	v.content = ""
	v.err = nil
	v.loading = true
	v.layout()
	v.body.GotoTop()

	id := doc.ID
	return func() tea.Msg {
		if v.documents == nil {
			return messages.DocumentContentLoaded{DocumentID: id, Err: ErrNoDocumentService}
		}
		loaded, err := v.documents.Get(v.ctx, id)
		return messages.DocumentContentLoaded{DocumentID: id, Document: loaded, Err: err}
	}
}

// Update handles messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		return v, v.handleKey(msg)

	case messages.DocumentContentLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil && msg.Document != nil {
			v.content = msg.Document.Content
			summary := msg.Document.Summary()
			v.summary = &summary
		}
		v.layout()

	case messages.ErrorOccurred:
		v.err = msg.Err
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	offset := v.body.YOffset
	switch {
	case key.Matches(msg, v.keymap.Back):
		return func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	case key.Matches(msg, v.keymap.Up):
		offset--
	case key.Matches(msg, v.keymap.Down):
		offset++
	case key.Matches(msg, v.keymap.PageUp):
		offset -= v.visibleLines()
	case key.Matches(msg, v.keymap.PageDown):
		offset += v.visibleLines()
	case key.Matches(msg, v.keymap.Top):
		offset = 0
	case key.Matches(msg, v.keymap.Bottom):
		offset = len(v.lines)
	}
	// SetYOffset clamps to the scrollable range.
	v.body.SetYOffset(offset)
	return nil
}

// layout sizes the body and re-wraps the content for the current width.
func (v *View) layout() {
	width := max(v.width-4, minWrap)
	v.body.Width = width
	v.body.Height = v.visibleLines()
	v.lines = wrap(v.content, width)
	v.body.SetContent(strings.Join(v.lines, "\n"))
}

// wrap hard-wraps each line of content at width runes.
func wrap(content string, width int) []string {
	if content == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		runes := []rune(line)
		for len(runes) > width {
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		if len(runes) > 0 || len([]rune(line)) == 0 {
			lines = append(lines, string(runes))
		}
	}
	return lines
}

func (v *View) visibleLines() int {
	return max(v.height-chromeLines, 1)
}

func (v *View) maxOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the document.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.title()))
	b.WriteString("\n")
	if v.summary != nil {
		b.WriteString(v.styles.Muted.Render(v.metadata()))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 0)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading content..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n")
	default:
		b.WriteString(v.body.View())
		b.WriteString("\n")
		if len(v.lines) > v.visibleLines() {
			b.WriteString(v.styles.Muted.Render(v.position()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back"))
	return b.String()
}

func (v *View) title() string {
	switch {
	case v.summary == nil:
		return "Document Content"
	case v.summary.Title == "":
		return v.summary.ID
	}
	return v.summary.Title
}

// position reports how far through the document the body is scrolled.
func (v *View) position() string {
	offset := v.body.YOffset
	percent := 100
	if m := v.maxOffset(); m > 0 {
		percent = offset * 100 / m
	}
	last := min(offset+v.visibleLines(), len(v.lines))
	return fmt.Sprintf("  [%d%%] Line %d-%d of %d", percent, offset+1, last, len(v.lines))
}

// metadata describes the document's type, origin and age.
func (v *View) metadata() string {
	parts := []string{v.summary.FileType.String()}
	if v.summary.URL != nil {
		parts = append(parts, *v.summary.URL)
	}
	if v.summary.Size != nil {
		parts = append(parts, fmt.Sprintf("%d bytes", *v.summary.Size))
	}
	if !v.summary.Timestamp.IsZero() {
		parts = append(parts, "added "+v.summary.Timestamp.Format("2006-01-02 15:04"))
	}
	return strings.Join(parts, "  ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.layout()
}

// Offset returns the index of the first visible line.
func (v *View) Offset() int {
	return v.body.YOffset
}

// Document returns the current document summary.
func (v *View) Document() *domain.DocumentSummary {
	return v.summary
}

// Content returns the document content.
func (v *View) Content() string {
	return v.content
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
