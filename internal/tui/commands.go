package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledmatrix/onboard/internal/onboarding"
)

// debounceSearch returns a tea.Cmd that reports the ticket after its delay.
func debounceSearch(ticket onboarding.DebounceTicket) tea.Cmd {
	return tea.Tick(ticket.Delay, func(time.Time) tea.Msg {
		return debounceMsg{version: ticket.Version}
	})
}

// searchStopAreas returns a tea.Cmd that searches for stop areas.
func searchStopAreas(client onboarding.Client, timeout time.Duration, req onboarding.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		stops, err := client.SearchStopAreas(ctx, req.Query)
		return searchResultMsg{
			seq:   req.Seq,
			stops: stops,
			err:   err,
		}
	}
}

// fetchDirections returns a tea.Cmd that loads the directions of a stop area.
func fetchDirections(client onboarding.Client, timeout time.Duration, req onboarding.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		directions, err := client.GetDirections(ctx, req.StopAreaID)
		return directionsResultMsg{
			seq:        req.Seq,
			stopAreaID: req.StopAreaID,
			directions: directions,
			err:        err,
		}
	}
}

// saveConfiguration returns a tea.Cmd that pushes the selection to the display.
func saveConfiguration(client onboarding.Client, timeout time.Duration, req onboarding.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := client.SetConfiguration(ctx, req.StopAreaID, req.RouteID)
		return saveResultMsg{
			seq: req.Seq,
			err: err,
		}
	}
}

// runRequest maps a state machine request to its command.
func (m Model) runRequest(req *onboarding.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	switch req.Kind {
	case onboarding.RequestSearch:
		return searchStopAreas(m.client, m.timeout, *req)
	case onboarding.RequestDirections:
		return fetchDirections(m.client, m.timeout, *req)
	case onboarding.RequestSave:
		return saveConfiguration(m.client, m.timeout, *req)
	}
	return nil
}
