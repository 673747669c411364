package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, 80, bar.Width())
	assert.Empty(t, bar.Message())
}

func TestBar_ViewStates(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Bar)
		contains string
	}{
		{"ready", func(*Bar) {}, "Ready"},
		{"thinking", func(b *Bar) { b.SetState(StateThinking) }, "Thinking"},
		{"error with message", func(b *Bar) {
			b.SetState(StateError)
			b.SetMessage("no documents")
		}, "Error: no documents"},
		{"error without message", func(b *Bar) { b.SetState(StateError) }, "Error"},
		{"answered", func(b *Bar) { b.SetAnswer(65, 2) }, "Confidence 65% from 2 sources"},
		{"ready with message", func(b *Bar) { b.SetMessage("Deleted guide.md") }, "Deleted guide.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			tt.setup(bar)

			assert.Contains(t, bar.View(), tt.contains)
		})
	}
}

func TestBar_Bindings(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Equal(t, "ask", bar.Bindings()[0].Help().Desc)

	bar.SetAnswer(40, 1)
	assert.Equal(t, "new question", bar.Bindings()[0].Help().Desc)
	assert.Contains(t, bar.View(), "new question")
}

func TestBar_SetAnswer(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetAnswer(95, 3)

	assert.Equal(t, StateAnswered, bar.State())
	assert.Equal(t, 95, bar.Confidence())
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetAnswer(50, 2)
	bar.SetMessage("hello")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 0, bar.Confidence())
}
