package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/kanbatryoshka/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// truncate shortens s to at most w runes, marking the cut with an ellipsis
func truncate(s string, w int) string {
	r := []rune(s)
	if w <= 0 {
		return ""
	}
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}

type formResult int

const (
	formPending formResult = iota
	formSubmitted
	formCancelled
)

// form is a small stack of text inputs followed by a submit button.
// The first field is required.
type form struct {
	heading string
	submit  string
	labels  []string
	fields  []textinput.Model
	focus   int // len(fields) is the submit button
}

func newForm(heading, submit string, labels ...string) form {
	f := form{heading: heading, submit: submit, labels: labels}
	for _, l := range labels {
		in := textinput.New()
		in.Placeholder = l
		in.CharLimit = 200
		f.fields = append(f.fields, in)
	}
	return f
}

// open resets the form to the given values and focuses the first field
func (f *form) open(values ...string) tea.Cmd {
	for i := range f.fields {
		f.fields[i].Reset()
		if i < len(values) {
			f.fields[i].SetValue(values[i])
		}
	}
	f.focus = 0
	f.updateFocus()
	return textinput.Blink
}

func (f *form) values() []string {
	out := make([]string, len(f.fields))
	for i, in := range f.fields {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (f *form) valid() bool {
	return f.values()[0] != ""
}

func (f *form) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return formCancelled, nil
	case "ctrl+s":
		if f.valid() {
			return formSubmitted, nil
		}
		return formPending, nil
	case "tab", "down":
		f.focus = (f.focus + 1) % (len(f.fields) + 1)
		f.updateFocus()
		return formPending, nil
	case "shift+tab", "up":
		f.focus = (f.focus + len(f.fields)) % (len(f.fields) + 1)
		f.updateFocus()
		return formPending, nil
	case "enter":
		if f.focus < len(f.fields) {
			f.focus++
			f.updateFocus()
			return formPending, nil
		}
		if f.valid() {
			return formSubmitted, nil
		}
		return formPending, nil
	}

	if f.focus >= len(f.fields) {
		return formPending, nil
	}
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return formPending, cmd
}

func (f *form) updateFocus() {
	for i := range f.fields {
		if i == f.focus {
			f.fields[i].Focus()
		} else {
			f.fields[i].Blur()
		}
	}
}

func (f *form) view(s *styles.Styles, width, height int) string {
	contentWidth := styles.ContentWidth(width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	rows := []string{s.Title.Render(f.heading), ""}
	for i, in := range f.fields {
		st := s.Input
		if i == f.focus {
			st = s.InputFocused
		}
		rows = append(rows, f.labels[i]+":", st.Width(inputWidth).Render(in.View()), "")
	}
	btn := s.Button
	if f.focus == len(f.fields) {
		btn = s.ButtonFocused
	}
	rows = append(rows,
		btn.Render(" "+f.submit+" "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return styles.CenterView(centered, width, height)
}

// confirmView renders a yes/no prompt
func confirmView(s *styles.Styles, heading, detail string, width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render(heading),
		"",
		s.TitleMuted.Render(detail),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)
	centered := lipgloss.Place(styles.ContentWidth(width), height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}

// helpView renders a popup of bindings
func helpView(s *styles.Styles, rows [][2]string, width, height int) string {
	items := []string{s.Title.Render("Keyboard Shortcuts"), ""}
	for _, r := range rows {
		items = append(items, s.HelpKey.Render(r[0])+strings.Repeat(" ", max(8-len([]rune(r[0])), 1))+s.HelpDesc.Render(r[1]))
	}
	items = append(items, "", s.TitleMuted.Render("Press any key to close"))

	centered := lipgloss.Place(styles.ContentWidth(width), height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(lipgloss.JoinVertical(lipgloss.Left, items...)),
	)
	return styles.CenterView(centered, width, height)
}
