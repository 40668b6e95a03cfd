package ui

import (
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/tgienger/kanbatryoshka/internal/nest"
	"github.com/tgienger/kanbatryoshka/internal/store"
	"github.com/tgienger/kanbatryoshka/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewBoards View = iota
	ViewBoard
)

type App struct {
	nest        *nest.Nest
	store       store.Store
	currentView View
	boards      *views.BoardsView
	board       *views.BoardView
	width       int
	height      int
}

func NewApp(n *nest.Nest, s store.Store) *App {
	return &App{
		nest:        n,
		store:       s,
		currentView: ViewBoards,
		boards:      views.NewBoardsView(n),
	}
}

// Run starts the full-screen browser and blocks until the user quits
func Run(n *nest.Nest, s store.Store, debug bool) error {
	// The terminal belongs to bubbletea while it runs
	if debug {
		f, err := tea.LogToFile(filepath.Join(os.TempDir(), "kanbatryoshka-debug.log"), "kanbatryoshka")
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(NewApp(n, s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	// Resume where the last session left off
	if a.nest.CurrentBoard() != nil {
		return a.openBoard()
	}
	return a.boards.Init()
}

func (a *App) openBoard() tea.Cmd {
	a.currentView = ViewBoard
	a.board = views.NewBoardView(a.nest)
	return tea.Batch(
		a.board.Init(),
		a.resize,
	)
}

func (a *App) resize() tea.Msg {
	return tea.WindowSizeMsg{Width: a.width, Height: a.height}
}

// save persists the nest. It runs inside Update so no command goroutine touches the nest concurrently.
func (a *App) save() tea.Cmd {
	err := a.store.Save(a.nest)
	if err != nil {
		log.WithError(err).Error("save nest")
	} else {
		log.Debug("nest saved")
	}
	return func() tea.Msg { return views.Saved{Err: err} }
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.boards.Update(msg)
		if a.board != nil {
			a.board.Update(msg)
		}
		return a, nil

	case views.SelectedBoard:
		if !a.nest.JumpToBoard(msg.ID) {
			return a, nil
		}
		return a, tea.Batch(a.openBoard(), a.save())

	case views.BackToBoards:
		a.currentView = ViewBoards
		a.boards.Reload()
		return a, a.resize

	case views.SaveRequested:
		return a, a.save()

	case views.QuitRequested:
		a.save()
		return a, tea.Quit
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewBoards:
		_, cmd = a.boards.Update(msg)
	case ViewBoard:
		_, cmd = a.board.Update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	if a.currentView == ViewBoard && a.board != nil {
		return a.board.View()
	}
	return a.boards.View()
}
