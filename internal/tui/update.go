package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/ledmatrix/onboard/internal/models"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputWidth := m.boxWidth() - 8
		if inputWidth < 10 {
			inputWidth = 10
		}
		m.searchInput.Width = inputWidth
		m.filterInput.Width = inputWidth
		return m, nil

	case debounceMsg:
		return m, m.runRequest(m.state.Settle(msg.version))

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case directionsResultMsg:
		return m.handleDirectionsResult(msg)

	case saveResultMsg:
		m.state.ApplySave(msg.seq, msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Pass remaining messages (cursor blink) to the active input
	return m.updateActiveInput(msg)
}

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if m.state.ApplySearch(msg.seq, msg.stops, msg.err) {
		m.stopBox.clamp(len(m.state.StopAreas))
	}
	return m, nil
}

func (m Model) handleDirectionsResult(msg directionsResultMsg) (tea.Model, tea.Cmd) {
	if m.state.ApplyDirections(msg.seq, msg.stopAreaID, msg.directions, msg.err) {
		m.refilterDirections()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	}

	switch m.focus {
	case focusStops:
		if m.stopBox.open {
			return m.handleStopSearchKeys(msg)
		}
		return m.handleStopKeys(msg)
	case focusDirections:
		if m.directionBox.open {
			return m.handleDirectionFilterKeys(msg)
		}
		return m.handleDirectionKeys(msg)
	case focusSave:
		return m.handleSaveKeys(msg)
	}

	return m, nil
}

// quit tears the form down so no pending search fires, then exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.state.Teardown()
	m.quitting = true
	return m, tea.Quit
}

// handleStopKeys handles keys on the closed stop area select.
func (m Model) handleStopKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ", "down":
		return m.openStops()

	case "tab":
		return m.cycleFocus(1)

	case "shift+tab":
		return m.cycleFocus(-1)

	case "ctrl+r", "delete", "backspace":
		return m.resetStop()
	}

	// Letters always start a search here, so no single-letter shortcuts
	if msg.Type == tea.KeyRunes {
		next, _ := m.openStops()
		return next.(Model).handleStopSearchKeys(msg)
	}

	return m, nil
}

// handleStopSearchKeys handles keys while the stop area list is open.
func (m Model) handleStopSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeStops()
		return m, nil

	case "up", "ctrl+p":
		m.stopBox.move(-1, len(m.state.StopAreas))
		return m, nil

	case "down", "ctrl+n":
		m.stopBox.move(1, len(m.state.StopAreas))
		return m, nil

	case "pgup":
		m.stopBox.move(-5, len(m.state.StopAreas))
		return m, nil

	case "pgdown":
		m.stopBox.move(5, len(m.state.StopAreas))
		return m, nil

	case "enter":
		if len(m.state.StopAreas) == 0 {
			return m, nil
		}
		stop := m.state.StopAreas[m.stopBox.cursor]
		return m.pickStop(&stop)

	case "ctrl+r":
		return m.resetStop()

	case "tab":
		return m.cycleFocus(1)

	case "shift+tab":
		return m.cycleFocus(-1)
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if value := m.searchInput.Value(); value != before {
		ticket := m.state.Type(value)
		m.stopBox.cursor = 0
		if value == "" {
			m.refilterDirections()
		}
		return m, tea.Batch(cmd, debounceSearch(ticket))
	}
	return m, cmd
}

// pickStop selects a stop area and loads its directions.
func (m Model) pickStop(stop *models.StopArea) (tea.Model, tea.Cmd) {
	req, err := m.state.SelectStopArea(stop)
	if err != nil {
		return m, nil
	}

	m.searchInput.SetValue(m.state.SearchText)
	m.searchInput.CursorEnd()
	m.closeStops()
	m.resetDirectionFilter()

	next, cmd := m.setFocus(focusDirections)
	return next, tea.Batch(cmd, m.runRequest(req))
}

// resetStop clears the stop area, and with it the direction.
func (m Model) resetStop() (tea.Model, tea.Cmd) {
	if m.state.SelectedStopArea == nil {
		return m, nil
	}
	req, err := m.state.SelectStopArea(nil)
	if err != nil {
		return m, nil
	}
	m.resetDirectionFilter()
	return m, m.runRequest(req)
}

func (m Model) openStops() (tea.Model, tea.Cmd) {
	m.stopBox.show()
	m.stopBox.clamp(len(m.state.StopAreas))
	return m, m.searchInput.Focus()
}

func (m *Model) closeStops() {
	m.stopBox.hide()
	m.searchInput.Blur()
}

// handleDirectionKeys handles keys on the closed direction select.
func (m Model) handleDirectionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ", "down", "j":
		if !m.state.DirectionsEnabled() {
			return m, nil
		}
		m.directionBox.show()
		m.resetDirectionFilter()
		return m, m.filterInput.Focus()

	case "tab":
		return m.cycleFocus(1)

	case "shift+tab":
		return m.cycleFocus(-1)

	case "r", "ctrl+r", "delete", "backspace":
		return m.resetDirection()

	case "q":
		return m.quit()
	}

	return m, nil
}

// handleDirectionFilterKeys handles keys while the direction list is open.
func (m Model) handleDirectionFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeDirections()
		return m, nil

	case "up", "ctrl+p":
		m.directionBox.move(-1, len(m.filtered))
		return m, nil

	case "down", "ctrl+n":
		m.directionBox.move(1, len(m.filtered))
		return m, nil

	case "enter":
		if len(m.filtered) == 0 {
			return m, nil
		}
		dir := m.state.Directions[m.filtered[m.directionBox.cursor]]
		if err := m.state.SelectDirection(&dir); err != nil {
			return m, nil
		}
		m.closeDirections()
		return m.setFocus(focusSave)

	case "ctrl+r":
		return m.resetDirection()

	case "tab":
		return m.cycleFocus(1)

	case "shift+tab":
		return m.cycleFocus(-1)
	}

	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != before {
		m.refilterDirections()
		m.directionBox.cursor = 0
	}
	return m, cmd
}

func (m Model) resetDirection() (tea.Model, tea.Cmd) {
	if m.state.SelectedDirection == nil {
		return m, nil
	}
	_ = m.state.SelectDirection(nil)
	return m, nil
}

func (m *Model) closeDirections() {
	m.directionBox.hide()
	m.filterInput.Blur()
}

// resetDirectionFilter empties the filter so every direction is listed.
func (m *Model) resetDirectionFilter() {
	m.filterInput.SetValue("")
	m.refilterDirections()
}

// directionSource adapts directions to fuzzy matching on code and name.
type directionSource []models.Direction

func (d directionSource) String(i int) string {
	return d[i].Line.Code + " " + d[i].Name
}

func (d directionSource) Len() int {
	return len(d)
}

// refilterDirections recomputes the visible directions for the filter text.
func (m *Model) refilterDirections() {
	dirs := m.state.Directions
	pattern := m.filterInput.Value()

	if pattern == "" {
		m.filtered = make([]int, len(dirs))
		for i := range dirs {
			m.filtered[i] = i
		}
	} else {
		matches := fuzzy.FindFrom(pattern, directionSource(dirs))
		m.filtered = make([]int, len(matches))
		for i, match := range matches {
			m.filtered[i] = match.Index
		}
	}

	m.directionBox.clamp(len(m.filtered))
	if !m.state.DirectionsEnabled() {
		m.closeDirections()
	}
}

// handleSaveKeys handles keys when the save button is focused.
func (m Model) handleSaveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		req, err := m.state.BeginSave()
		if err != nil {
			return m, nil
		}
		return m, m.runRequest(req)

	case "tab":
		return m.cycleFocus(1)

	case "shift+tab":
		return m.cycleFocus(-1)

	case "q":
		return m.quit()
	}

	return m, nil
}

// setFocus moves focus to panel, closing any open list.
func (m Model) setFocus(panel focusPanel) (tea.Model, tea.Cmd) {
	if panel != focusStops {
		m.closeStops()
	}
	if panel != focusDirections {
		m.closeDirections()
	}
	m.focus = panel
	return m, nil
}

// cycleFocus moves focus delta panels forward, wrapping around.
func (m Model) cycleFocus(delta int) (tea.Model, tea.Cmd) {
	next := (int(m.focus) + delta + focusCount) % focusCount
	return m.setFocus(focusPanel(next))
}

// updateActiveInput forwards non-key messages to the focused text input.
func (m Model) updateActiveInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focus == focusStops && m.stopBox.open:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case m.focus == focusDirections && m.directionBox.open:
		m.filterInput, cmd = m.filterInput.Update(msg)
	}
	return m, cmd
}
