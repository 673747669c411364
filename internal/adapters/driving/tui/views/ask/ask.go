// Package ask provides the question and answer view for the TUI.
package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
)

// ErrNoQueryService indicates that no query service was provided.
var ErrNoQueryService = errors.New("query service is required")

// reservedLines is the height taken by the header, input and status bar.
const reservedLines = 9

// View is the ask view: a question input above a scrollable answer.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	answer    viewport.Model
	statusbar *status.Bar

	queryService driving.QueryService
	ctx          context.Context

	question   string
	result     *domain.AnswerResult
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a question, false = reading the answer
}

// NewView creates a new ask view.
func NewView(s *styles.Styles, km *keymap.KeyMap, queryService driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		input:        input.NewQuestionInput(s),
		answer:       viewport.New(80, 24-reservedLines),
		statusbar:    status.NewBar(s, km),
		queryService: queryService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
		focusInput:   true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnswerCompleted:
		v.handleAnswer(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			question := strings.TrimSpace(v.input.Value())
			if question == "" {
				return v, nil
			}
			v.question = question
			v.statusbar.SetState(status.StateThinking)
			v.focusInput = false
			v.input.Blur()
			return v, v.ask(question)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	if keymap.Matches(msg.String(), v.keymap.NewQuestion) {
		v.Reset()
		return v, v.input.Focus()
	}

	var cmd tea.Cmd
	v.answer, cmd = v.answer.Update(msg)
	return v, cmd
}

// ask returns a command that answers the question.
func (v *View) ask(question string) tea.Cmd {
	return func() tea.Msg {
		if v.queryService == nil {
			return messages.ErrorOccurred{Err: ErrNoQueryService}
		}
		answer, err := v.queryService.Ask(v.ctx, question)
		return messages.AnswerCompleted{Question: question, Answer: answer, Err: err}
	}
}

// handleAnswer displays an answer or its error.
func (v *View) handleAnswer(msg messages.AnswerCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.result = msg.Answer
	v.answer.SetContent(v.renderAnswer())
	v.answer.GotoTop()
	v.statusbar.SetAnswer(msg.Answer.Confidence, len(msg.Answer.Sources))
}

func (v *View) setError(err error) {
	switch {
	case errors.Is(err, domain.ErrNoDocuments):
		err = errors.New("no documents loaded: add some from the Documents view")
	case errors.Is(err, domain.ErrEmptyQuestion):
		err = errors.New("question is required")
	}
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
	v.focusInput = true
	v.input.Focus()
}

// renderAnswer lays out the answer text and its sources.
func (v *View) renderAnswer() string {
	if v.result == nil {
		return ""
	}
	wrap := lipgloss.NewStyle().Width(v.answer.Width)

	var b strings.Builder
	b.WriteString(wrap.Render(v.styles.Answer.Render(v.result.Text)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Confidence(v.result.Confidence).Render(
		fmt.Sprintf("Confidence: %d%%", v.result.Confidence)))
	b.WriteString("\n")

	if len(v.result.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Sources"))
		b.WriteString("\n")
		for i, src := range v.result.Sources {
			b.WriteString(fmt.Sprintf("%d. %s (%s, relevance %d)\n", i+1, src.Title, src.FileType, src.Relevance))
			b.WriteString(wrap.Render(v.styles.Passage.Render(src.Passage)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("askdocs"), "", v.input.View(), "")

	if v.question != "" && v.result != nil && !v.focusInput {
		sections = append(sections, v.styles.Muted.Render("Q: "+v.question), "", v.answer.View())
	} else if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.answer.Width = width
	v.answer.Height = max(height-reservedLines, 1)
	if v.result != nil {
		v.answer.SetContent(v.renderAnswer())
	}
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Question returns the last submitted question.
func (v *View) Question() string {
	return v.question
}

// Result returns the displayed answer.
func (v *View) Result() *domain.AnswerResult {
	return v.result
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to an empty question.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.question = ""
	v.result = nil
	v.err = nil
	v.answer.SetContent("")
	v.statusbar.Clear()
}
