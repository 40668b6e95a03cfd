package views

import tea "github.com/charmbracelet/bubbletea"

// SelectedBoard asks the app to make a top-level board current and show it
type SelectedBoard struct {
	ID string
}

// BackToBoards asks the app to show the top-level board picker
type BackToBoards struct{}

// SaveRequested asks the app to persist the nest
type SaveRequested struct{}

// Saved reports the outcome of a save back to the active view
type Saved struct {
	Err error
}

// QuitRequested asks the app to save and exit
type QuitRequested struct{}

func requestSave() tea.Msg { return SaveRequested{} }

func requestQuit() tea.Msg { return QuitRequested{} }
