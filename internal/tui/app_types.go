package tui

import (
	"bookdeck/internal/model"
	"bookdeck/internal/state"
)

type view int

const (
	viewList view = iota
	viewForm
	viewStats
)

func viewToString(v view) string {
	switch v {
	case viewList:
		return "list"
	case viewForm:
		return "form"
	case viewStats:
		return "stats"
	default:
		return "?"
	}
}

// Async chain completions carry the seq they were dispatched under; anything
// stamped with a superseded seq is dropped on arrival.

type startupDoneMsg struct {
	seq   int
	page  model.Page
	stats model.Stats
	err   error
}

type pageLoadedMsg struct {
	seq  int
	page model.Page
	err  error
}

type statsLoadedMsg struct {
	seq   int
	stats model.Stats
	err   error
}

type mutationKind int

const (
	mutationCreate mutationKind = iota
	mutationUpdate
	mutationDelete
)

type mutationDoneMsg struct {
	seq     int
	kind    mutationKind
	outcome state.Outcome
	err     error
}

type confirmFocus int

const (
	confirmFocusConfirm confirmFocus = iota
	confirmFocusCancel
)

// confirmState is the irreversible-action gate in front of delete. While it
// is non-nil all keys route to the modal.
type confirmState struct {
	bookID string
	title  string
	focus  confirmFocus
}
