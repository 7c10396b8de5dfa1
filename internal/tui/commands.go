package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"bookdeck/internal/model"
)

// Each command runs one strictly-sequenced request chain in its own
// goroutine and delivers a single typed completion message. The chain itself
// never touches model state; Update installs the result, so all mutation
// stays on the event loop.

func (m appModel) startupCmd() tea.Cmd {
	seq, orch, log := m.reqSeq, m.orch, m.log
	return func() tea.Msg {
		ctx := context.Background()
		page, err := orch.LoadPage(ctx, 1)
		if err != nil {
			log.Warn("initial page load failed", zap.Error(err))
			return startupDoneMsg{seq: seq, err: err}
		}
		stats, err := orch.RefreshStats(ctx)
		if err != nil {
			log.Warn("initial stats load failed", zap.Error(err))
			return startupDoneMsg{seq: seq, err: err}
		}
		return startupDoneMsg{seq: seq, page: page, stats: stats}
	}
}

func (m appModel) loadPageCmd(page int) tea.Cmd {
	seq, orch, log := m.reqSeq, m.orch, m.log
	return func() tea.Msg {
		p, err := orch.LoadPage(context.Background(), page)
		if err != nil {
			log.Warn("page load failed", zap.Int("page", page), zap.Error(err))
		}
		return pageLoadedMsg{seq: seq, page: p, err: err}
	}
}

func (m appModel) loadStatsCmd() tea.Cmd {
	seq, orch, log := m.reqSeq, m.orch, m.log
	return func() tea.Msg {
		stats, err := orch.RefreshStats(context.Background())
		if err != nil {
			log.Warn("stats load failed", zap.Error(err))
		}
		return statsLoadedMsg{seq: seq, stats: stats, err: err}
	}
}

func (m appModel) createCmd(payload model.BookPayload) tea.Cmd {
	seq, orch, log := m.reqSeq, m.orch, m.log
	return func() tea.Msg {
		outcome, err := orch.Create(context.Background(), payload)
		if err != nil {
			log.Warn("create failed", zap.Error(err))
		} else {
			log.Info("book created", zap.String("title", payload.Title))
		}
		return mutationDoneMsg{seq: seq, kind: mutationCreate, outcome: outcome, err: err}
	}
}

func (m appModel) updateCmd(id string, payload model.BookPayload, currentPage int) tea.Cmd {
	seq, orch, log := m.reqSeq, m.orch, m.log
	return func() tea.Msg {
		outcome, err := orch.Update(context.Background(), id, payload, currentPage)
		if err != nil {
			log.Warn("update failed", zap.String("id", id), zap.Error(err))
		}
		return mutationDoneMsg{seq: seq, kind: mutationUpdate, outcome: outcome, err: err}
	}
}

func (m appModel) deleteCmd(id string, currentPage int) tea.Cmd {
	seq, orch, log := m.reqSeq, m.orch, m.log
	return func() tea.Msg {
		outcome, err := orch.Delete(context.Background(), id, currentPage)
		if err != nil {
			log.Warn("delete failed", zap.String("id", id), zap.Error(err))
		} else {
			log.Info("book deleted", zap.String("id", id))
		}
		return mutationDoneMsg{seq: seq, kind: mutationDelete, outcome: outcome, err: err}
	}
}
