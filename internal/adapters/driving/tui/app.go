package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/views/ask"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/views/doccontent"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/views/menu"
)

// App is the root tea.Model. It owns one instance of every screen and
// routes messages to the active one.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	menuView       *menu.View
	askView        *ask.View
	documentsView  *documents.View
	docContentView *doccontent.View
	historyView    *history.View

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

var _ tea.Model = (*App)(nil)

// NewApp builds the screens over ports. Query is required.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	h := help.New()
	h.Styles.FullKey = s.Subtitle
	h.Styles.FullDesc = s.Normal
	h.Styles.FullSeparator = s.Muted

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		help:           h,
		menuView:       menu.NewView(s, km),
		askView:        ask.NewView(s, km, ports.Query),
		documentsView:  documents.NewView(s, km, ports.Documents, ports.Ingest),
		docContentView: doccontent.NewView(s, km, ports.Documents),
		historyView:    history.NewView(s, ports.History),
	}, nil
}

// WithContext sets the context the screens pass to service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.askView.WithContext(ctx)
	a.documentsView.WithContext(ctx)
	a.docContentView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// Init loads the document list so the menu can show the count.
func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("askdocs"), a.documentsView.Load())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.Quit:
		return a, tea.Quit

	case messages.AnswerCompleted:
		a.askView, cmd = a.askView.Update(msg)
		a.err = a.askView.Err()
		return a, cmd

	case messages.DocumentsLoaded:
		a.menuView, _ = a.menuView.Update(msg)
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentSelected:
		a.currentView = messages.ViewDocContent
		return a, a.docContentView.SetDocument(msg.Document)

	case messages.DocumentContentLoaded:
		return a, a.route(messages.ViewDocContent, msg)

	case messages.DocumentAdded, messages.DocumentDeleted:
		return a, a.route(messages.ViewDocuments, msg)

	case messages.HistoryLoaded, messages.HistoryCleared:
		return a, a.route(messages.ViewHistory, msg)

	case messages.ErrorOccurred:
		a.err = msg.Err
	}

	// Errors, cursor blinks and other component messages go to the
	// active screen.
	return a, a.route(a.currentView, msg)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		if key.Matches(msg, a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return nil
		}
	case messages.ViewHelp:
		if key.Matches(msg, a.keymap.Back, a.keymap.Quit) {
			a.currentView = messages.ViewMenu
		}
		return nil
	}
	return a.route(a.currentView, msg)
}

// route delivers msg to the screen identified by view.
func (a *App) route(view messages.ViewType, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch view {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewAsk:
		a.askView, cmd = a.askView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocContent:
		a.docContentView, cmd = a.docContentView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// switchView activates view and starts whatever it needs to load.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.currentView = view

	switch view {
	case messages.ViewAsk:
		a.askView.Reset()
		return a.askView.Init()
	case messages.ViewDocuments, messages.ViewMenu:
		return a.documentsView.Load()
	case messages.ViewHistory:
		return a.historyView.Load()
	case messages.ViewDocContent, messages.ViewHelp:
	}
	return nil
}

func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewAsk:
		return a.askView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewDocContent:
		return a.docContentView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	}
	return a.menuView.View()
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Keys") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Help.Render("[esc] back to menu")
}

// Run starts the program on the alternate screen and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

func (a *App) CurrentView() messages.ViewType { return a.currentView }

// Err returns the last error reported by any screen.
func (a *App) Err() error { return a.err }

func (a *App) Ready() bool { return a.ready }

// SetDimensions resizes the app and every screen.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.menuView.SetDimensions(width, height)
	a.askView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.docContentView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
}
