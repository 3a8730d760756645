package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ledmatrix/onboard/internal/onboarding"
)

const (
	maxBoxWidth   = 72
	maxStopRows   = 8
	maxDirectRows = 6
)

// View renders the entire TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	width := m.boxWidth()

	sections := []string{
		m.renderHeader(),
	}
	if status := m.renderStatus(width); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections,
		m.renderStopSelect(width),
		m.renderDirectionSelect(width),
		m.renderFooter(width),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	bodyHeight := lipgloss.Height(body)
	statusBar := m.renderStatusBar()
	if gap := m.height - bodyHeight - lipgloss.Height(statusBar); gap > 0 {
		body += strings.Repeat("\n", gap)
	}

	return body + "\n" + statusBar
}

// boxWidth is the outer width of the form column.
func (m Model) boxWidth() int {
	w := m.width - 2
	if w > maxBoxWidth {
		w = maxBoxWidth
	}
	if w < 30 {
		w = 30
	}
	return w
}

// renderHeader renders the title, subtitle and target controller.
func (m Model) renderHeader() string {
	title := styleLogo.Render("▦ LED matrix") + "  " + styleHeader.Render("Configure your real-time display")
	subtitle := styleMuted.Render("Search for a stop, then pick a direction. The display will show its next departures.")

	lines := []string{title, subtitle}
	if m.target != "" {
		lines = append(lines, styleMuted.Render("Controller: "+truncate(m.target, m.boxWidth()-12)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// renderStatus renders the single status message, if any.
func (m Model) renderStatus(width int) string {
	status := m.state.Status
	switch status.Kind {
	case onboarding.StatusError:
		return styleError.Width(width).Render("✗ " + status.Message)
	case onboarding.StatusSuccess:
		return styleSuccess.Width(width).Render("✓ " + status.Message)
	}
	return ""
}

// renderStopSelect renders the searchable stop area select.
func (m Model) renderStopSelect(width int) string {
	s := m.state

	v := selectView{
		title:       "Stop",
		placeholder: s.StopPlaceholderLabel(),
		loading:     s.LoadingStops,
		focused:     m.focus == focusStops,
		open:        m.stopBox.open,
		input:       m.searchInput.View(),
		cursor:      m.stopBox.cursor,
		noOptions:   s.NoStopsLabel(),
	}
	if s.SelectedStopArea != nil {
		v.value = stopLabel(*s.SelectedStopArea)
	}

	if m.stopBox.open {
		v.options = make([]string, len(s.StopAreas))
		for i, stop := range s.StopAreas {
			v.options[i] = truncateLabel(stopLabel(stop), width-8)
		}
	}

	return renderSelect(v, m.spinner.View(), width, maxStopRows)
}

// renderDirectionSelect renders the direction select with its local filter.
func (m Model) renderDirectionSelect(width int) string {
	s := m.state

	v := selectView{
		title:       "Direction",
		placeholder: s.DirectionPlaceholderLabel(),
		loading:     s.LoadingDirections,
		disabled:    !s.DirectionsEnabled(),
		focused:     m.focus == focusDirections,
		open:        m.directionBox.open,
		input:       m.filterInput.View(),
		cursor:      m.directionBox.cursor,
		noOptions:   "No direction matches this filter",
	}
	if s.SelectedDirection != nil {
		v.value = directionLabel(*s.SelectedDirection)
	}

	if m.directionBox.open {
		v.options = make([]string, len(m.filtered))
		for i, idx := range m.filtered {
			v.options[i] = truncateLabel(directionLabel(s.Directions[idx]), width-8)
		}
	}

	return renderSelect(v, m.spinner.View(), width, maxDirectRows)
}

// renderFooter renders the current selection summary and the save button.
func (m Model) renderFooter(width int) string {
	s := m.state

	stop := "-"
	if s.SelectedStopArea != nil {
		stop = s.SelectedStopArea.Name
	}
	direction := "-"
	if s.SelectedDirection != nil {
		direction = s.SelectedDirection.Name
	}

	summary := lipgloss.JoinVertical(lipgloss.Left,
		styleMuted.Render("CURRENT SELECTION"),
		styleMuted.Render("Stop: ")+stop,
		styleMuted.Render("Direction: ")+direction,
	)

	label := s.SaveButtonLabel()
	if s.Saving {
		label = m.spinner.View() + label
	}

	var button string
	switch {
	case !s.CanSave():
		button = styleButtonDisabled.Render(label)
	case m.focus == focusSave:
		button = styleButtonFocused.Render(label)
	default:
		button = styleButton.Render(label)
	}
	if m.focus == focusSave {
		button = styleSelected.Render("> ") + button
	}

	gap := width - lipgloss.Width(summary) - lipgloss.Width(button)
	if gap < 2 {
		return lipgloss.JoinVertical(lipgloss.Left, "", summary, button)
	}
	return "\n" + lipgloss.JoinHorizontal(lipgloss.Bottom, summary, strings.Repeat(" ", gap), button)
}

// renderStatusBar renders context-aware keyboard hints at the bottom.
func (m Model) renderStatusBar() string {
	var hints string
	switch m.focus {
	case focusStops:
		if m.stopBox.open {
			hints = "Type:search  ↑/↓:navigate  Enter:select  Ctrl+R:reset  Esc:close  Ctrl+C:quit"
		} else {
			hints = "Type:search  Enter:open  Ctrl+R:reset  Tab:direction  Ctrl+C:quit"
		}
	case focusDirections:
		if m.directionBox.open {
			hints = "Type:filter  ↑/↓:navigate  Enter:select  Esc:close  Ctrl+C:quit"
		} else {
			hints = "Enter:open  r:reset  Tab:save  Shift+Tab:stop  q:quit"
		}
	case focusSave:
		hints = "Enter:start display  Tab:stop  Shift+Tab:direction  q:quit"
	}

	if m.busy() {
		hints = m.spinner.View() + hints
	}

	return styleStatusBar.Width(m.width).Render(" " + hints)
}

// visibleRange calculates the start and end indices for a scrollable list.
func visibleRange(cursor, total, maxVisible int) (int, int) {
	if total <= maxVisible {
		return 0, total
	}

	start := cursor - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > total {
		end = total
		start = end - maxVisible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// truncate fits s into width terminal cells, marking the cut with "~"
// when there is room for it.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "~")
}

// truncateLabel shortens a styled label to width cells.
func truncateLabel(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
