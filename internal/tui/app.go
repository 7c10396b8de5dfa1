// Package tui is the interactive client: three views (list, add/edit form,
// stats) kept consistent with the remote service, which stays the sole source
// of truth. All shared state lives on appModel and is only touched from the
// Bubble Tea event loop; request chains run as commands and hand their result
// back as a message.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"bookdeck/internal/api"
	"bookdeck/internal/config"
	"bookdeck/internal/model"
	"bookdeck/internal/state"
)

type appModel struct {
	orch state.Orchestrator
	log  *zap.Logger

	width  int
	height int

	view view

	// Page cache: replaced wholesale from a successful load, never patched.
	page  model.Page
	stats model.Stats

	searchInput   textinput.Model
	searchFocused bool

	booksList list.Model

	form    *formState
	confirm *confirmState

	// busy implements ignore-while-busy: while a request chain is in flight,
	// keys that would start another one are no-ops. reqSeq stamps each chain
	// so a completion from a superseded chain is dropped.
	busy   bool
	reqSeq int
	spin   spinner.Model

	// notice is the transient failure line under the current view.
	notice string

	// startupErr is set when the very first load fails; the list view then
	// shows a connection hint instead of an empty collection.
	startupErr string
}

func newAppModel(orch state.Orchestrator, log *zap.Logger) appModel {
	applyColorProfilePreference()

	m := appModel{
		orch: orch,
		log:  log,
		view: viewList,
	}

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "title or author"
	m.searchInput.CharLimit = 100
	m.searchInput.Width = 30

	m.booksList = newBooksList()

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = styleAccent()

	return m
}

// Run starts the interactive client against the configured service.
func Run(cfg config.Config, log *zap.Logger) error {
	orch := state.Orchestrator{API: api.New(cfg.APIBase)}
	m := newAppModel(orch, log)
	m.busy = true
	m.reqSeq = 1

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.startupCmd(), m.spin.Tick)
}

func (m appModel) View() string {
	header := styleHeader().Render("Bookdeck")
	if m.busy {
		header += "  " + m.spin.View()
	}

	var body string
	switch {
	case m.confirm != nil:
		body = renderConfirmModal(m.contentWidth(), "Delete book",
			fmt.Sprintf("Delete %q? This cannot be undone.", m.confirm.title), m.confirm.focus)
	case m.view == viewForm && m.form != nil:
		body = m.form.view(m.contentWidth())
	case m.view == viewStats:
		body = m.viewStats()
	default:
		body = m.viewList()
	}

	var notice string
	if m.notice != "" {
		notice = styleError().Render(m.notice)
	}

	footer := styleMuted().Render(m.footerHelp())

	parts := []string{header, body}
	if notice != "" {
		parts = append(parts, notice)
	}
	parts = append(parts, footer)
	return strings.Join(parts, "\n\n")
}

func (m appModel) contentWidth() int {
	if m.width < 40 {
		return 80
	}
	return m.width
}

func (m appModel) footerHelp() string {
	switch {
	case m.confirm != nil:
		return "y: delete   n/esc: cancel"
	case m.view == viewForm:
		return "" // the form renders its own field help
	case m.view == viewStats:
		return "r: refresh   esc: back to list   q: quit"
	case m.searchFocused:
		return "enter/esc: done searching"
	default:
		return "↑/↓: select   ←/→: page   /: search   a: add   enter: edit   d: delete   s: stats   r: reload   q: quit"
	}
}

func (m appModel) viewList() string {
	if m.startupErr != "" {
		return strings.Join([]string{
			styleError().Render("Could not load data from the backend."),
			styleMuted().Render("Make sure the API is running and BOOKDECK_API_BASE points at it."),
			styleMuted().Render("r: retry   q: quit"),
		}, "\n")
	}

	var b strings.Builder

	search := "/ "
	if m.searchFocused || strings.TrimSpace(m.searchInput.Value()) != "" {
		search += m.searchInput.View()
	} else {
		search += styleMuted().Render("search this page")
	}
	b.WriteString(search)
	b.WriteString("\n\n")

	if len(m.booksList.Items()) == 0 {
		if strings.TrimSpace(m.searchInput.Value()) != "" {
			b.WriteString(styleMuted().Render("No books match your search on this page."))
		} else {
			b.WriteString(styleMuted().Render("No books yet. Press a to add one."))
		}
	} else {
		b.WriteString(m.booksList.View())
	}
	b.WriteString("\n\n")
	b.WriteString(m.pagerLine())

	return b.String()
}

// pagerLine renders "Page N of M" with the prev/next affordances dimmed at
// the boundaries. This is UI affordance only; the server is the final arbiter
// of valid page numbers.
func (m appModel) pagerLine() string {
	prev := "◂ prev"
	next := "next ▸"
	if m.page.Page <= 1 {
		prev = styleMuted().Render(prev)
	}
	if m.page.Page >= m.page.TotalPages {
		next = styleMuted().Render(next)
	}
	indicator := fmt.Sprintf("Page %d of %d (%d books)", m.page.Page, m.page.TotalPages, m.page.Total)
	return prev + "   " + indicator + "   " + next
}

func (m appModel) viewStats() string {
	avg := "—"
	if m.stats.AvgRating != nil {
		avg = fmt.Sprintf("%.2f", *m.stats.AvgRating)
	}

	rows := []string{
		styleHeader().Render("Stats"),
		"",
		fmt.Sprintf("%s %d", styleMuted().Render("Total books:"), m.stats.Total),
		fmt.Sprintf("%s %d", styleMuted().Render("Finished:"), m.stats.Finished),
		fmt.Sprintf("%s %s", styleMuted().Render("Average rating:"), avg),
	}
	return lipgloss.NewStyle().MaxWidth(m.contentWidth()).Render(strings.Join(rows, "\n"))
}

func (m *appModel) resize() {
	h := m.height - 10
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.booksList.SetSize(w, h)
}
