package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bookdeck/internal/model"
	"bookdeck/internal/state"
)

// statusFieldIdx is the position of the status selector in state.Fields;
// every other field is a free-text input.
const statusFieldIdx = 4

var fieldLabels = map[string]string{
	state.FieldTitle:  "Title",
	state.FieldAuthor: "Author",
	state.FieldYear:   "Year",
	state.FieldGenre:  "Genre",
	state.FieldStatus: "Status",
	state.FieldRating: "Rating",
}

var fieldPlaceholders = map[string]string{
	state.FieldTitle:  "The Left Hand of Darkness",
	state.FieldAuthor: "Ursula K. Le Guin",
	state.FieldYear:   "1969",
	state.FieldGenre:  "Science fiction",
	state.FieldRating: "1-5, optional",
}

// formState wraps a state.FormSession with the text inputs that edit it.
// Draft values live in the inputs while the form is open and are copied back
// into the session on submit.
type formState struct {
	session *state.FormSession
	inputs  []textinput.Model // parallel to state.Fields; status slot unused

	// statusIdx indexes model.Statuses; -1 is the unset "(choose)" state the
	// create form starts in.
	statusIdx int

	focus int
}

func newFormState(session *state.FormSession) *formState {
	f := &formState{session: session, statusIdx: -1}

	f.inputs = make([]textinput.Model, len(state.Fields))
	for i, field := range state.Fields {
		if i == statusFieldIdx {
			continue
		}
		in := textinput.New()
		in.Placeholder = fieldPlaceholders[field]
		in.CharLimit = 200
		in.Width = 40
		in.SetValue(session.Values[field])
		f.inputs[i] = in
	}
	for i, st := range model.Statuses {
		if session.Values[state.FieldStatus] == st {
			f.statusIdx = i
		}
	}

	f.setFocus(0)
	return f
}

func (f *formState) setFocus(i int) {
	n := len(state.Fields)
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	if f.focus != statusFieldIdx {
		f.inputs[f.focus].Focus()
	}
}

func (f *formState) nextField() { f.setFocus(f.focus + 1) }
func (f *formState) prevField() { f.setFocus(f.focus - 1) }

func (f *formState) cycleStatus(dir int) {
	// Cycle through unset + the known statuses; the server rejects unset.
	n := len(model.Statuses) + 1
	cur := f.statusIdx + 1
	cur = ((cur+dir)%n + n) % n
	f.statusIdx = cur - 1
}

func (f *formState) statusValue() string {
	if f.statusIdx < 0 {
		return ""
	}
	return model.Statuses[f.statusIdx]
}

// syncSession copies the draft inputs back into the session.
func (f *formState) syncSession() {
	for i, field := range state.Fields {
		if i == statusFieldIdx {
			f.session.Values[field] = f.statusValue()
			continue
		}
		f.session.Values[field] = f.inputs[i].Value()
	}
}

// updateFocusedInput forwards a message to the focused text input, if any.
func (f *formState) updateFocusedInput(msg tea.Msg) tea.Cmd {
	if f.focus == statusFieldIdx {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *formState) view(width int) string {
	var b strings.Builder

	if f.session.Mode == state.ModeEdit {
		b.WriteString(styleHeader().Render("Edit Book"))
		b.WriteString("\n")
		b.WriteString(styleMuted().Render("Update fields and save."))
	} else {
		b.WriteString(styleHeader().Render("Add Book"))
		b.WriteString("\n")
		b.WriteString(styleMuted().Render("Fill out all required fields."))
	}
	b.WriteString("\n\n")

	for i, field := range state.Fields {
		label := fieldLabels[field]
		if i == f.focus {
			b.WriteString(styleAccent().Render(label))
		} else {
			b.WriteString(styleMuted().Render(label))
		}
		b.WriteString("\n")

		if i == statusFieldIdx {
			b.WriteString(f.statusSelectorView())
		} else {
			b.WriteString(f.inputs[i].View())
		}
		b.WriteString("\n")

		if msg := f.session.ErrorFor(field); msg != "" {
			b.WriteString(styleError().Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	help := "tab: next field   enter: save   esc: cancel"
	if f.session.Mode == state.ModeEdit {
		help += "   ctrl+d: delete"
	}
	b.WriteString(styleMuted().Render(help))

	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}

func (f *formState) statusSelectorView() string {
	label := f.statusValue()
	if label == "" {
		label = "(choose)"
	}
	s := "◂ " + label + " ▸"
	if f.focus == statusFieldIdx {
		return styleAccent().Render(s)
	}
	return s
}
