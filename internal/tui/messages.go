package tui

import "github.com/mmcdole/holonet/internal/domain"

// Message types for the TUI

// ErrMsg represents an error outside the stores (session writes)
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StoreChangedMsg signals that a store published a new state
type StoreChangedMsg struct {
	Kind domain.Kind
}

// FetchDoneMsg signals that a list or item fetch returned
type FetchDoneMsg struct {
	Kind domain.Kind
}

// PreloadedMsg signals that a sibling catalog finished loading
type PreloadedMsg struct {
	Kind  domain.Kind
	Count int
}

// VisitRecordedMsg signals that a detail page was added to history
type VisitRecordedMsg struct {
	Ref domain.Ref
}

// LocaleSavedMsg signals that the locale choice was persisted
type LocaleSavedMsg struct {
	Tag string
}
