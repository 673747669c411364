// Package messages holds the tea.Msg types exchanged between the TUI
// root model and its views.
package messages

import (
	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// ViewType identifies a screen. The zero value is the menu.
type ViewType int

const (
	ViewMenu ViewType = iota
	ViewAsk
	ViewDocuments
	ViewDocContent
	ViewHistory
	ViewHelp
)

var viewNames = [...]string{
	ViewMenu:       "menu",
	ViewAsk:        "ask",
	ViewDocuments:  "documents",
	ViewDocContent: "doc_content",
	ViewHistory:    "history",
	ViewHelp:       "help",
}

func (v ViewType) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "unknown"
	}
	return viewNames[v]
}

// Navigation.
type (
	// ViewChanged asks the root model to switch screens.
	ViewChanged struct{ View ViewType }

	// ErrorOccurred is shown in the status bar.
	ErrorOccurred struct{ Err error }

	Quit struct{}
)

// Results of asynchronous service calls. Err is set when the call failed.
type (
	AnswerCompleted struct {
		Question string
		Answer   *domain.AnswerResult
		Err      error
	}

	DocumentsLoaded struct {
		Documents []domain.DocumentSummary
		Err       error
	}

	// DocumentSelected opens a document in the content view.
	DocumentSelected struct{ Document domain.DocumentSummary }

	DocumentContentLoaded struct {
		DocumentID string
		Document   *domain.Document
		Err        error
	}

	// DocumentAdded follows fetching a web page.
	DocumentAdded struct {
		Document *domain.Document
		Err      error
	}

	DocumentDeleted struct {
		DocumentID string
		Err        error
	}

	// HistoryLoaded carries entries newest first.
	HistoryLoaded struct {
		Entries []domain.HistoryEntry
		Stats   domain.HistoryStats
		Err     error
	}

	HistoryCleared struct{ Err error }
)
