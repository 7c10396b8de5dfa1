package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bookdeck/internal/api"
	"bookdeck/internal/state"
)

const (
	saveFailedNotice   = "Save failed. Check your connection and try again."
	deleteFailedNotice = "Delete failed. Please try again."
	loadFailedNotice   = "Could not load that page. Please try again."
	statsFailedNotice  = "Could not load stats. Please try again."
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case startupDoneMsg:
		if msg.seq != m.reqSeq {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.startupErr = msg.err.Error()
			return m, nil
		}
		m.startupErr = ""
		m.page = msg.page
		m.stats = msg.stats
		m.refreshBooksList()
		return m, nil

	case pageLoadedMsg:
		if msg.seq != m.reqSeq {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.notice = loadFailedNotice
			return m, nil
		}
		// Replace all pagination state atomically and recompute the overlay.
		m.page = msg.page
		m.view = viewList
		m.refreshBooksList()
		return m, nil

	case statsLoadedMsg:
		if msg.seq != m.reqSeq {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.notice = statsFailedNotice
			return m, nil
		}
		m.stats = msg.stats
		m.view = viewStats
		return m, nil

	case mutationDoneMsg:
		return m.applyMutationDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m appModel) applyMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.reqSeq {
		return m, nil
	}
	m.busy = false

	if msg.err != nil {
		// A validation failure lands per-field on the open form, which keeps
		// all prior input. Anything else is a generic signal; the current
		// view is left exactly as it was.
		if fields, ok := api.ValidationFields(msg.err); ok && m.form != nil && msg.kind != mutationDelete {
			m.form.session.SetServerErrors(fields)
			return m, nil
		}
		if msg.kind == mutationDelete {
			m.notice = deleteFailedNotice
		} else {
			m.notice = saveFailedNotice
		}
		return m, nil
	}

	// Install the coherent snapshot, destroy the session, return to the list.
	m.page = msg.outcome.Page
	m.stats = msg.outcome.Stats
	if msg.outcome.ClearSearch {
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.searchFocused = false
	}
	m.form = nil
	m.view = viewList
	m.refreshBooksList()
	return m, nil
}

// begin marks the start of one request chain. Completions stamped with an
// older seq are ignored, so at most one chain's result is ever applied.
func (m *appModel) begin() {
	m.reqSeq++
	m.busy = true
	m.notice = ""
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}
	switch m.view {
	case viewForm:
		return m.handleFormKey(msg)
	case viewStats:
		return m.handleStatsKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right":
		if m.confirm.focus == confirmFocusConfirm {
			m.confirm.focus = confirmFocusCancel
		} else {
			m.confirm.focus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.acceptConfirm()
	case "n", "esc", "ctrl+g":
		// Declined: silently abort, no request is sent.
		m.confirm = nil
		return m, nil
	case "enter":
		if m.confirm.focus == confirmFocusConfirm {
			return m.acceptConfirm()
		}
		m.confirm = nil
		return m, nil
	}
	return m, nil
}

func (m appModel) acceptConfirm() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	c := *m.confirm
	m.confirm = nil
	(&m).begin()
	return m, tea.Batch(m.deleteCmd(c.bookID, m.currentPageOr1()), m.spin.Tick)
}

func (m appModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.String() {
		case "enter", "esc":
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			// The overlay is recomputed on every keystroke.
			m.refreshBooksList()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.searchFocused = true
		return m, m.searchInput.Focus()

	case "a":
		// Opening a form while a load chain is in flight would let the
		// completion steal the view back, so it is a no-op like the
		// chain-starting keys.
		if m.busy {
			return m, nil
		}
		m.form = newFormState(state.NewCreateSession())
		m.view = viewForm
		return m, textinput.Blink

	case "enter", "e":
		if m.busy {
			return m, nil
		}
		if it, ok := m.booksList.SelectedItem().(bookItem); ok {
			return m.openEdit(it.book.ID)
		}
		return m, nil

	case "d", "x":
		if m.busy {
			return m, nil
		}
		if it, ok := m.booksList.SelectedItem().(bookItem); ok {
			m.confirm = &confirmState{bookID: it.book.ID, title: it.book.Title}
		}
		return m, nil

	case "left", "h":
		if m.busy || m.page.Page <= 1 {
			return m, nil
		}
		(&m).begin()
		return m, tea.Batch(m.loadPageCmd(m.page.Page-1), m.spin.Tick)

	case "right", "l":
		if m.busy || m.page.Page >= m.page.TotalPages {
			return m, nil
		}
		(&m).begin()
		return m, tea.Batch(m.loadPageCmd(m.page.Page+1), m.spin.Tick)

	case "r":
		if m.busy {
			return m, nil
		}
		if m.startupErr != "" {
			(&m).begin()
			return m, tea.Batch(m.startupCmd(), m.spin.Tick)
		}
		(&m).begin()
		return m, tea.Batch(m.loadPageCmd(m.currentPageOr1()), m.spin.Tick)

	case "s":
		if m.busy {
			return m, nil
		}
		(&m).begin()
		return m, tea.Batch(m.loadStatsCmd(), m.spin.Tick)
	}

	var cmd tea.Cmd
	m.booksList, cmd = m.booksList.Update(msg)
	return m, cmd
}

// openEdit seeds the form from the in-memory page. Editing an id that is not
// on the loaded page degrades to the list view without issuing any request;
// stale references are unreachable via normal navigation.
func (m appModel) openEdit(id string) (tea.Model, tea.Cmd) {
	b, ok := m.page.Find(id)
	if !ok {
		m.view = viewList
		return m, nil
	}
	m.form = newFormState(state.NewEditSession(b))
	m.view = viewForm
	return m, textinput.Blink
}

func (m appModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel: the session is discarded, no reload.
		m.form = nil
		m.view = viewList
		return m, nil

	case "tab", "down":
		m.form.nextField()
		return m, textinput.Blink

	case "shift+tab", "up":
		m.form.prevField()
		return m, textinput.Blink

	case "enter":
		return m.submitForm()

	case "ctrl+d":
		if m.busy || m.form.session.Mode != state.ModeEdit {
			return m, nil
		}
		m.confirm = &confirmState{
			bookID: m.form.session.BookID,
			title:  m.form.inputs[0].Value(),
		}
		return m, nil
	}

	if m.form.focus == statusFieldIdx {
		switch msg.String() {
		case "left", "h":
			m.form.cycleStatus(-1)
		case "right", "l", " ":
			m.form.cycleStatus(1)
		}
		return m, nil
	}

	return m, m.form.updateFocusedInput(msg)
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.form.syncSession()
	m.form.session.ClearErrors()
	payload := m.form.session.Payload()

	(&m).begin()
	if m.form.session.Mode == state.ModeEdit {
		return m, tea.Batch(m.updateCmd(m.form.session.BookID, payload, m.currentPageOr1()), m.spin.Tick)
	}
	return m, tea.Batch(m.createCmd(payload), m.spin.Tick)
}

func (m appModel) handleStatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "r":
		if m.busy {
			return m, nil
		}
		(&m).begin()
		return m, tea.Batch(m.loadStatsCmd(), m.spin.Tick)

	case "esc", "backspace":
		// Nav-List: reload the current page, then show the list.
		if m.busy {
			return m, nil
		}
		(&m).begin()
		return m, tea.Batch(m.loadPageCmd(m.currentPageOr1()), m.spin.Tick)
	}
	return m, nil
}

func (m appModel) currentPageOr1() int {
	if m.page.Page < 1 {
		return 1
	}
	return m.page.Page
}
