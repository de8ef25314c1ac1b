package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shelfscan/shelfscan/internal/refresh"
)

// startRefresh launches the refresh workflow in a command. While a run is in
// flight the key is ignored with a notice.
func (m *Model) startRefresh() tea.Cmd {
	if m.refresher == nil {
		m.notify(toastInfo, "Refresh is not available")
		return nil
	}
	if m.refreshing || m.refresher.Busy() {
		m.notify(toastInfo, "Refresh already in progress")
		return nil
	}
	m.refreshing = true
	m.notify(toastInfo, "Refreshing catalog...")
	return tea.Batch(m.spinner.Tick, refreshCmd(m.ctx, m.refresher))
}

func refreshCmd(ctx context.Context, r Refresher) tea.Cmd {
	return func() tea.Msg {
		res, err := r.Run(ctx)
		return refreshDoneMsg{result: res, err: err}
	}
}

// handleRefreshDone reports the outcome. The new catalog itself arrives with
// the next snapshot.
func (m *Model) handleRefreshDone(msg refreshDoneMsg) {
	m.refreshing = false
	switch {
	case errors.Is(msg.err, refresh.ErrBusy):
		m.notify(toastInfo, "Refresh already in progress")
		return
	case msg.err != nil:
		m.notify(toastError, "Refresh failed: "+msg.err.Error())
		return
	}

	text := fmt.Sprintf("Catalog refreshed: %d products", msg.result.Count)
	if msg.result.Dropped > 0 {
		text += fmt.Sprintf(" (%d duplicates dropped)", msg.result.Dropped)
	}
	m.notify(toastSuccess, text)
}
