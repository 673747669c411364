package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs/internal/adapters/driving/tui/styles"
)

func TestNewQuestionInput(t *testing.T) {
	field := NewQuestionInput(styles.DefaultStyles())

	require.NotNil(t, field)
	assert.Equal(t, "", field.Value())
	assert.Equal(t, "Ask: ", field.Label())
	assert.True(t, field.Focused())
}

func TestNewURLInput(t *testing.T) {
	field := NewURLInput(nil)

	require.NotNil(t, field)
	assert.Equal(t, "URL: ", field.Label())
	assert.NotNil(t, field.styles)
}

func TestField_Init(t *testing.T) {
	field := NewQuestionInput(nil)

	assert.NotNil(t, field.Init())
}

func TestField_Update(t *testing.T) {
	field := NewQuestionInput(nil)

	updated, _ := field.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.Equal(t, field, updated)
	assert.Equal(t, "a", field.Value())
}

func TestField_View(t *testing.T) {
	field := NewQuestionInput(nil)

	assert.Contains(t, field.View(), "Ask")
}

func TestField_SetValueAndReset(t *testing.T) {
	field := NewQuestionInput(nil)

	field.SetValue("what is askdocs?")
	assert.Equal(t, "what is askdocs?", field.Value())

	field.Reset()
	assert.Equal(t, "", field.Value())
}

func TestField_FocusAndBlur(t *testing.T) {
	field := NewQuestionInput(nil)

	field.Blur()
	assert.False(t, field.Focused())

	field.Focus()
	assert.True(t, field.Focused())
}

func TestField_SetWidth(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		inputWidth int
	}{
		{"wide", 100, 89},
		{"narrow clamps", 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := NewQuestionInput(nil)

			field.SetWidth(tt.width)

			assert.Equal(t, tt.width, field.Width())
			assert.Equal(t, tt.inputWidth, field.textinput.Width)
		})
	}
}

func TestField_CharLimit(t *testing.T) {
	field := NewQuestionInput(nil)

	assert.Equal(t, CharLimit, field.textinput.CharLimit)
}
