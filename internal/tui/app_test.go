package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"bookdeck/internal/api"
	"bookdeck/internal/model"
	"bookdeck/internal/state"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func threeBookPage() model.Page {
	return model.Page{
		Items: []model.Book{
			{ID: "b-1", Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "SF", Status: model.StatusFinished},
			{ID: "b-2", Title: "Neuromancer", Author: "William Gibson", Year: 1984, Genre: "SF", Status: model.StatusReading},
			{ID: "b-3", Title: "Dune Messiah", Author: "Frank Herbert", Year: 1969, Genre: "SF", Status: model.StatusToRead},
		},
		Page:       1,
		TotalPages: 1,
		Total:      3,
	}
}

func newTestModel(page model.Page) appModel {
	m := newAppModel(state.Orchestrator{}, zap.NewNop())
	m.page = page
	m.width, m.height = 100, 40
	m.resize()
	m.refreshBooksList()
	return m
}

func TestOpenEdit_MissingBookFallsBackToListWithoutRequest(t *testing.T) {
	m := newTestModel(threeBookPage())
	seqBefore := m.reqSeq

	res, cmd := m.openEdit("not-on-this-page")
	mm := res.(appModel)

	if mm.view != viewList {
		t.Fatalf("expected viewList, got %s", viewToString(mm.view))
	}
	if mm.form != nil {
		t.Fatalf("no form session should exist")
	}
	if cmd != nil {
		t.Fatalf("no command should be dispatched")
	}
	if mm.reqSeq != seqBefore || mm.busy {
		t.Fatalf("no request chain should start")
	}
}

func TestOpenEdit_SeedsFormFromLoadedBook(t *testing.T) {
	m := newTestModel(threeBookPage())

	res, _ := m.openEdit("b-2")
	mm := res.(appModel)

	if mm.view != viewForm || mm.form == nil {
		t.Fatalf("expected form view with session")
	}
	if mm.form.session.Mode != state.ModeEdit || mm.form.session.BookID != "b-2" {
		t.Fatalf("bad session: %+v", mm.form.session)
	}
	if got := mm.form.inputs[0].Value(); got != "Neuromancer" {
		t.Fatalf("title input not seeded: %q", got)
	}
	if got := mm.form.statusValue(); got != model.StatusReading {
		t.Fatalf("status not seeded: %q", got)
	}
}

func TestSearchOverlay_FiltersLoadedPageOnly(t *testing.T) {
	m := newTestModel(threeBookPage())

	m.searchInput.SetValue("dune")
	m.refreshBooksList()

	if got := len(m.booksList.Items()); got != 2 {
		t.Fatalf("expected 2 visible rows, got %d", got)
	}
	// Pagination state is untouched by the overlay.
	if m.page.Page != 1 || m.page.Total != 3 || len(m.page.Items) != 3 {
		t.Fatalf("page cache modified by search: %+v", m.page)
	}

	m.searchInput.SetValue("")
	m.refreshBooksList()
	if got := len(m.booksList.Items()); got != 3 {
		t.Fatalf("expected all rows back, got %d", got)
	}
}

func TestConfirmDeclined_SendsNothing(t *testing.T) {
	m := newTestModel(threeBookPage())
	m.confirm = &confirmState{bookID: "b-1", title: "Dune"}
	seqBefore := m.reqSeq

	res, cmd := m.handleConfirmKey(key("n"))
	mm := res.(appModel)

	if mm.confirm != nil {
		t.Fatalf("confirm modal should close")
	}
	if cmd != nil || mm.busy || mm.reqSeq != seqBefore {
		t.Fatalf("declining must not dispatch a request")
	}
}

func TestConfirmAccepted_DispatchesDeleteChain(t *testing.T) {
	m := newTestModel(threeBookPage())
	m.confirm = &confirmState{bookID: "b-1", title: "Dune"}
	seqBefore := m.reqSeq

	res, cmd := m.handleConfirmKey(key("y"))
	mm := res.(appModel)

	if mm.confirm != nil {
		t.Fatalf("confirm modal should close")
	}
	if cmd == nil || !mm.busy || mm.reqSeq != seqBefore+1 {
		t.Fatalf("accepting must dispatch exactly one chain")
	}
}

func TestBusy_IgnoresChainStartingKeys(t *testing.T) {
	page := threeBookPage()
	page.TotalPages = 3
	m := newTestModel(page)
	m.busy = true
	seqBefore := m.reqSeq

	for _, k := range []string{"r", "s", "l", "d"} {
		res, _ := m.handleListKey(key(k))
		mm := res.(appModel)
		if mm.reqSeq != seqBefore {
			t.Fatalf("key %q started a chain while busy", k)
		}
		if mm.confirm != nil {
			t.Fatalf("key %q opened the delete gate while busy", k)
		}
	}
}

func TestBusy_IgnoresFormOpeningKeys(t *testing.T) {
	page := threeBookPage()
	page.TotalPages = 3
	m := newTestModel(page)

	res, _ := m.handleListKey(key("l"))
	mm := res.(appModel)
	if !mm.busy {
		t.Fatalf("page navigation should start a chain")
	}

	// Opening a form mid-chain would let the completion below force the
	// view back to the list over a live session.
	for _, k := range []tea.KeyMsg{key("a"), key("e"), {Type: tea.KeyEnter}} {
		res, _ = mm.Update(k)
		mm = res.(appModel)
		if mm.form != nil || mm.view != viewList {
			t.Fatalf("key %q opened a form while a load was in flight", k.String())
		}
	}

	next := model.Page{Items: page.Items, Page: 2, TotalPages: 3, Total: 30}
	res, _ = mm.Update(pageLoadedMsg{seq: mm.reqSeq, page: next})
	mm = res.(appModel)
	if mm.view != viewList || mm.form != nil {
		t.Fatalf("completion left view=%s with form=%v", viewToString(mm.view), mm.form != nil)
	}
	if mm.page.Page != 2 {
		t.Fatalf("completion should install the loaded page: %+v", mm.page)
	}
}

func TestStaleCompletion_IsDropped(t *testing.T) {
	m := newTestModel(threeBookPage())
	m.reqSeq = 5

	res, _ := m.Update(pageLoadedMsg{seq: 3, page: model.Page{Page: 9, TotalPages: 9, Total: 90}})
	mm := res.(appModel)

	if mm.page.Page != 1 {
		t.Fatalf("stale page load applied: %+v", mm.page)
	}
}

func TestMutationSuccess_InstallsOutcomeAndClearsSearch(t *testing.T) {
	m := newTestModel(threeBookPage())
	m.view = viewForm
	m.form = newFormState(state.NewCreateSession())
	m.searchInput.SetValue("dune")

	newPage := model.Page{
		Items:      []model.Book{{ID: "b-9", Title: "New Arrival", Author: "A"}},
		Page:       1,
		TotalPages: 1,
		Total:      4,
	}
	res, _ := m.Update(mutationDoneMsg{
		seq:     m.reqSeq,
		kind:    mutationCreate,
		outcome: state.Outcome{Page: newPage, Stats: model.Stats{Total: 4}, ClearSearch: true},
	})
	mm := res.(appModel)

	if mm.view != viewList || mm.form != nil {
		t.Fatalf("expected list view with destroyed session")
	}
	if mm.searchInput.Value() != "" {
		t.Fatalf("create must reset the search term")
	}
	if mm.page.Total != 4 || mm.stats.Total != 4 {
		t.Fatalf("outcome not installed: page=%+v stats=%+v", mm.page, mm.stats)
	}
	// The created book must be visible now that the overlay is reset.
	if got := len(mm.booksList.Items()); got != 1 {
		t.Fatalf("expected 1 visible row, got %d", got)
	}
}

func TestValidationFailure_KeepsFormOpenWithPriorInput(t *testing.T) {
	m := newTestModel(threeBookPage())
	m.view = viewForm
	m.form = newFormState(state.NewCreateSession())
	m.form.inputs[0].SetValue("Dune")
	m.form.inputs[2].SetValue("later")

	res, _ := m.Update(mutationDoneMsg{
		seq:  m.reqSeq,
		kind: mutationCreate,
		err:  &api.Error{Status: 400, Fields: map[string]string{"year": "must be a number"}},
	})
	mm := res.(appModel)

	if mm.view != viewForm || mm.form == nil {
		t.Fatalf("form must stay open on validation failure")
	}
	if got := mm.form.session.ErrorFor(state.FieldYear); got != "must be a number" {
		t.Fatalf("year error not populated: %q", got)
	}
	if mm.form.session.ErrorFor(state.FieldTitle) != "" {
		t.Fatalf("only the year error should be populated")
	}
	if mm.form.inputs[0].Value() != "Dune" || mm.form.inputs[2].Value() != "later" {
		t.Fatalf("typed input must be preserved")
	}
}

func TestDeleteFailure_PreservesFormSession(t *testing.T) {
	m := newTestModel(threeBookPage())
	res, _ := m.openEdit("b-1")
	m = res.(appModel)

	res, _ = m.Update(mutationDoneMsg{
		seq:  m.reqSeq,
		kind: mutationDelete,
		err:  &api.Error{Status: 500},
	})
	mm := res.(appModel)

	if mm.view != viewForm || mm.form == nil {
		t.Fatalf("failed delete must preserve the session")
	}
	if mm.notice != deleteFailedNotice {
		t.Fatalf("expected delete-failed notice, got %q", mm.notice)
	}
}

func TestStatsView_NilAverageRendersNoData(t *testing.T) {
	m := newTestModel(threeBookPage())
	m.stats = model.Stats{Total: 5, Finished: 2}
	m.view = viewStats

	out := m.viewStats()
	if !strings.Contains(out, "—") {
		t.Fatalf("nil average must render the no-data marker:\n%s", out)
	}
	if strings.Contains(out, "0.00") {
		t.Fatalf("nil average must not be coerced to zero:\n%s", out)
	}
}

func TestCancelForm_DiscardsSessionWithoutReload(t *testing.T) {
	m := newTestModel(threeBookPage())
	res, _ := m.openEdit("b-1")
	m = res.(appModel)
	seqBefore := m.reqSeq

	res, cmd := m.handleFormKey(tea.KeyMsg{Type: tea.KeyEsc})
	mm := res.(appModel)

	if mm.view != viewList || mm.form != nil {
		t.Fatalf("cancel must discard the session and return to the list")
	}
	if cmd != nil || mm.reqSeq != seqBefore {
		t.Fatalf("cancel must not reload")
	}
}

func TestStatusField_CyclesThroughKnownValues(t *testing.T) {
	f := newFormState(state.NewCreateSession())
	if f.statusValue() != "" {
		t.Fatalf("create form starts with status unset")
	}

	f.cycleStatus(1)
	if f.statusValue() != model.StatusToRead {
		t.Fatalf("got %q", f.statusValue())
	}
	f.cycleStatus(-1)
	f.cycleStatus(-1)
	if f.statusValue() != model.StatusFinished {
		t.Fatalf("cycle should wrap, got %q", f.statusValue())
	}
}
