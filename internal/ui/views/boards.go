package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/kanbatryoshka/internal/models"
	"github.com/tgienger/kanbatryoshka/internal/nest"
	"github.com/tgienger/kanbatryoshka/internal/ui/keys"
	"github.com/tgienger/kanbatryoshka/internal/ui/styles"
)

type boardItem struct {
	board *models.Board
}

func (i boardItem) Title() string { return i.board.Title }
func (i boardItem) Description() string {
	c := i.board.TaskCount()
	if i.board.Description == "" {
		return fmt.Sprintf("%d tasks", c)
	}
	return fmt.Sprintf("%s · %d tasks", i.board.Description, c)
}
func (i boardItem) FilterValue() string { return i.board.Title }

type boardDelegate struct {
	styles *styles.Styles
	width  int
}

func (d boardDelegate) Height() int                               { return 2 }
func (d boardDelegate) Spacing() int                              { return 1 }
func (d boardDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d boardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	b, ok := item.(boardItem)
	if !ok {
		return
	}

	width := max(d.width-4, 20)
	titleStyle := d.styles.ListItem.Width(width)
	descStyle := d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	if index == m.Index() {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(b.Title()), descStyle.Render(b.Description()))
}

// BoardsView lists the top-level boards
type BoardsView struct {
	nest     *nest.Nest
	list     list.Model
	delegate *boardDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int

	creating bool
	form     form

	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	showHelpPopup bool
	status        string
}

func NewBoardsView(n *nest.Nest) *BoardsView {
	s := styles.NewStyles()
	delegate := &boardDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Boards"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	v := &BoardsView{
		nest:     n,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		form:     newForm("New Board", "Create", "Title", "Description"),
	}
	v.Reload()
	return v
}

func (v *BoardsView) Init() tea.Cmd {
	v.Reload()
	return nil
}

// Reload rebuilds the items from the nest
func (v *BoardsView) Reload() {
	boards := v.nest.TopLevelBoards()
	items := make([]list.Item, len(boards))
	for i, b := range boards {
		items[i] = boardItem{board: b}
	}
	v.list.SetItems(items)
}

func (v *BoardsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case Saved:
		if msg.Err != nil {
			v.status = "save failed: " + msg.Err.Error()
		}
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.creating {
			return v.updateCreating(msg)
		}
		if v.list.FilterState() == list.Filtering {
			break
		}

		v.status = ""
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, requestQuit
		case key.Matches(msg, v.keys.New):
			v.creating = true
			return v, v.form.open()
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(boardItem); ok {
				id := item.board.ID
				return v, func() tea.Msg { return SelectedBoard{ID: id} }
			}
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(boardItem); ok {
				if item.board.HasTasks() {
					v.status = "Board still holds tasks; remove them first"
					return v, nil
				}
				v.confirmingDelete = true
				v.deleteTargetID = item.board.ID
				v.deleteTargetName = item.board.Title
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *BoardsView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		if v.nest.DeleteBoard(v.deleteTargetID) {
			v.Reload()
			return v, requestSave
		}
		v.status = "Board could not be deleted"
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *BoardsView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res, cmd := v.form.update(msg)
	switch res {
	case formCancelled:
		v.creating = false
		return v, nil
	case formSubmitted:
		vals := v.form.values()
		b := v.nest.CreateBoard(vals[0], vals[1])
		v.creating = false
		v.Reload()
		return v, func() tea.Msg { return SelectedBoard{ID: b.ID} }
	}
	return v, cmd
}

func (v *BoardsView) View() string {
	if v.showHelpPopup {
		return helpView(v.styles, [][2]string{
			{"↵", "open board"},
			{"n", "new board"},
			{"d", "delete empty board"},
			{"/", "filter"},
			{"q", "quit"},
		}, v.width, v.height)
	}
	if v.confirmingDelete {
		return confirmView(v.styles, "Delete Board?", fmt.Sprintf("%q has no tasks and will be removed.", v.deleteTargetName), v.width, v.height)
	}
	if v.creating {
		return v.form.view(v.styles, v.width, v.height)
	}
	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderStatus() + v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *BoardsView) renderStatus() string {
	if v.status == "" {
		return ""
	}
	return v.styles.StatusError.Render(v.status) + "\n"
}

func (v *BoardsView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Boards"),
		"",
		s.TitleMuted.Render("Press 'n' to create your first board"),
		"",
		s.ButtonPrimary.Render(" New Board "),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardsView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s open • %s new • %s del • %s help • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("?"),
			v.styles.HelpKey.Render("q"),
		),
	)
}
