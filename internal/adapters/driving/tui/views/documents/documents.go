// Package documents is the TUI screen listing loaded documents, with
// actions to open, delete and add them.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
)

var (
	ErrNoDocumentService = errors.New("document service not available")
	ErrNoIngestService   = errors.New("adding pages is not available")
)

// ActionOption is an entry in the per-document action menu.
type ActionOption int

const (
	ActionShowContent ActionOption = iota
	ActionDelete
	ActionCancel
)

var actionLabels = [...]string{
	ActionShowContent: "Show Content",
	ActionDelete:      "Delete",
	ActionCancel:      "Cancel",
}

type mode int

const (
	modeList mode = iota
	modeMenu
	modeConfirmDelete
	modeAddURL
)

// chromeLines is the height taken by the title, footer and padding.
const chromeLines = 8

// View is the documents screen.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	docs   driving.DocumentService
	ingest driving.IngestService
	ctx    context.Context

	documents    []domain.DocumentSummary
	urlInput     *input.Field
	mode         mode
	action       ActionOption
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	loading      bool
	notice       string
	err          error
}

// NewView creates the documents screen. A nil ingest service disables
// adding pages.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	docs driving.DocumentService,
	ingest driving.IngestService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keymap:   km,
		docs:     docs,
		ingest:   ingest,
		ctx:      context.Background(),
		urlInput: input.NewURLInput(s),
		width:    80,
		height:   24,
	}
}

// WithContext sets the context passed to service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns to the list and fetches it again.
func (v *View) Load() tea.Cmd {
	v.mode = modeList
	v.err = nil
	v.notice = ""
	v.loading = true
	return v.list()
}

func (v *View) list() tea.Cmd {
	docs, ctx := v.docs, v.ctx
	return func() tea.Msg {
		if docs == nil {
			return messages.DocumentsLoaded{Err: ErrNoDocumentService}
		}
		list, err := docs.List(ctx)
		return messages.DocumentsLoaded{Documents: list, Err: err}
	}
}

func (v *View) remove(id string) tea.Cmd {
	docs, ctx := v.docs, v.ctx
	return func() tea.Msg {
		if docs == nil {
			return messages.DocumentDeleted{DocumentID: id, Err: ErrNoDocumentService}
		}
		_, err := docs.Delete(ctx, id)
		return messages.DocumentDeleted{DocumentID: id, Err: err}
	}
}

func (v *View) fetch(url string) tea.Cmd {
	ingest, ctx := v.ingest, v.ctx
	return func() tea.Msg {
		if ingest == nil {
			return messages.DocumentAdded{Err: ErrNoIngestService}
		}
		doc, err := ingest.IngestURL(ctx, url)
		return messages.DocumentAdded{Document: doc, Err: err}
	}
}

// Update handles key presses and service results.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case modeMenu:
			return v.menuKey(msg)
		case modeConfirmDelete:
			return v.confirmKey(msg)
		case modeAddURL:
			return v.urlKey(msg)
		}
		return v.listKey(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.documents = msg.Documents
			v.moveTo(v.selected)
		}
		return v, nil

	case messages.DocumentDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.notice = "Deleted " + msg.DocumentID
		return v, v.list()

	case messages.DocumentAdded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.notice = "Added " + msg.Document.Title
		return v, v.list()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	if v.mode == modeAddURL {
		var cmd tea.Cmd
		v.urlInput, cmd = v.urlInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) listKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	km := v.keymap
	page := v.visibleItemCount()

	switch {
	case key.Matches(msg, km.Up):
		v.moveTo(v.selected - 1)
	case key.Matches(msg, km.Down):
		v.moveTo(v.selected + 1)
	case key.Matches(msg, km.PageUp):
		v.moveTo(v.selected - page)
	case key.Matches(msg, km.PageDown):
		v.moveTo(v.selected + page)
	case key.Matches(msg, km.Top):
		v.moveTo(0)
	case key.Matches(msg, km.Bottom):
		v.moveTo(len(v.documents) - 1)
	case key.Matches(msg, km.Select):
		if len(v.documents) > 0 {
			v.mode = modeMenu
			v.action = ActionShowContent
		}
	case key.Matches(msg, km.Delete):
		if len(v.documents) > 0 {
			v.mode = modeConfirmDelete
		}
	case key.Matches(msg, km.AddURL):
		v.mode = modeAddURL
		v.err = nil
		v.urlInput.Reset()
		return v, v.urlInput.Focus()
	case key.Matches(msg, km.Reload):
		v.loading = true
		v.notice = ""
		return v, v.list()
	case key.Matches(msg, km.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

func (v *View) menuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Up):
		v.action = max(v.action-1, ActionShowContent)
	case key.Matches(msg, v.keymap.Down):
		v.action = min(v.action+1, ActionCancel)
	case key.Matches(msg, v.keymap.Select):
		return v.runAction()
	case key.Matches(msg, v.keymap.Back):
		v.mode = modeList
	}
	return v, nil
}

func (v *View) runAction() (*View, tea.Cmd) {
	v.mode = modeList
	doc := v.SelectedDocument()
	if doc == nil {
		return v, nil
	}

	switch v.action {
	case ActionShowContent:
		selected := *doc
		return v, func() tea.Msg {
			return messages.DocumentSelected{Document: selected}
		}
	case ActionDelete:
		v.mode = modeConfirmDelete
	}
	return v, nil
}

// confirmKey deletes on the confirm key; any other key cancels.
func (v *View) confirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.mode = modeList
	doc := v.SelectedDocument()
	if doc == nil || !key.Matches(msg, v.keymap.Confirm) {
		return v, nil
	}
	return v, v.remove(doc.ID)
}

func (v *View) urlKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = modeList
		v.urlInput.Blur()
		return v, nil
	case tea.KeyEnter:
		url := strings.TrimSpace(v.urlInput.Value())
		if url == "" {
			return v, nil
		}
		v.mode = modeList
		v.urlInput.Blur()
		v.loading = true
		return v, v.fetch(url)
	}

	var cmd tea.Cmd
	v.urlInput, cmd = v.urlInput.Update(msg)
	return v, cmd
}

// moveTo selects index i, clamped to the list, and scrolls it into view.
func (v *View) moveTo(i int) {
	v.selected = max(min(i, len(v.documents)-1), 0)

	visible := v.visibleItemCount()
	switch {
	case v.selected < v.scrollOffset:
		v.scrollOffset = v.selected
	case v.selected >= v.scrollOffset+visible:
		v.scrollOffset = v.selected - visible + 1
	}
}

func (v *View) visibleItemCount() int {
	return max(v.height-chromeLines, 1)
}

// View renders the screen.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Documents (%d)", len(v.documents))))
	b.WriteString("\n\n")

	switch {
	case v.mode == modeAddURL:
		b.WriteString(v.urlInput.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] fetch  [esc] cancel"))
		return b.String()
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render("No documents loaded. Press [a] to add a web page."))
	case v.mode == modeMenu:
		b.WriteString(v.renderActions())
		return b.String()
	default:
		b.WriteString(v.renderRows())
		b.WriteString("\n")
		if v.mode == modeConfirmDelete {
			if doc := v.SelectedDocument(); doc != nil {
				b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete %s? [y] yes  [any key] no", doc.Title)))
			}
			return b.String()
		}
		if v.notice != "" {
			b.WriteString(v.styles.Success.Render(v.notice))
			b.WriteString("\n")
		}
		b.WriteString(v.help())
		return b.String()
	}

	b.WriteString("\n\n")
	b.WriteString(v.help())
	return b.String()
}

func (v *View) renderRows() string {
	var b strings.Builder
	visible := v.visibleItemCount()
	end := min(v.scrollOffset+visible, len(v.documents))

	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderRow(i == v.selected, v.documents[i]))
		b.WriteString("\n")
	}
	if len(v.documents) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", v.scrollOffset+1, end, len(v.documents))))
	}
	b.WriteString("\n")
	return b.String()
}

func (v *View) renderRow(selected bool, doc domain.DocumentSummary) string {
	column := max(v.width/2-4, 10)

	title := doc.Title
	if title == "" {
		title = doc.ID
	}
	title = truncate(title, column)

	detail := doc.FileType.String()
	switch {
	case doc.URL != nil:
		detail += "  " + *doc.URL
	case doc.Size != nil:
		detail += fmt.Sprintf("  %d bytes", *doc.Size)
	}
	detail = truncate(detail, column)

	if selected {
		return v.styles.Selected.Render(fmt.Sprintf("> %-*s  %s", column, title, detail))
	}
	return v.styles.Normal.Render(fmt.Sprintf("  %-*s  ", column, title)) + v.styles.Muted.Render(detail)
}

func (v *View) renderActions() string {
	var b strings.Builder
	if doc := v.SelectedDocument(); doc != nil {
		b.WriteString(v.styles.Subtitle.Render("Actions for: " + doc.Title))
		b.WriteString("\n\n")
	}
	for i, label := range actionLabels {
		if ActionOption(i) == v.action {
			b.WriteString(v.styles.Selected.Render("> " + label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] cancel"))
	return b.String()
}

func (v *View) help() string {
	return v.styles.Help.Render("[j/k] navigate  [enter] actions  [a] add url  [d] delete  [r] reload  [esc] back")
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

// SetDimensions resizes the view.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.urlInput.SetWidth(width)
	v.moveTo(v.selected)
}

func (v *View) Documents() []domain.DocumentSummary { return v.documents }

func (v *View) SelectedIndex() int { return v.selected }

// SelectedDocument returns the highlighted document, or nil for an empty list.
func (v *View) SelectedDocument() *domain.DocumentSummary {
	if v.selected < len(v.documents) {
		return &v.documents[v.selected]
	}
	return nil
}

func (v *View) IsShowingMenu() bool { return v.mode == modeMenu }

func (v *View) IsConfirmingDelete() bool { return v.mode == modeConfirmDelete }

func (v *View) IsAddingURL() bool { return v.mode == modeAddURL }

func (v *View) Err() error { return v.err }
