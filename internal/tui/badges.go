package tui

import (
	"fmt"
	"strings"

	"github.com/ledmatrix/onboard/internal/models"
)

// maxBadges is how many line badges a stop area shows before "+N"
const maxBadges = 4

// renderBadge renders one line badge
func renderBadge(line models.LineRef) string {
	return styleBadge(line.Color).Render(line.Code)
}

// renderLineBadges renders a stop area's lines, capped at maxBadges
func renderLineBadges(stop models.StopArea) string {
	visible, hidden := stop.VisibleLines(maxBadges)
	if len(visible) == 0 {
		return ""
	}

	parts := make([]string, 0, len(visible)+1)
	for _, line := range visible {
		parts = append(parts, renderBadge(line))
	}
	if hidden > 0 {
		parts = append(parts, styleMuted.Render(fmt.Sprintf("+%d", hidden)))
	}
	return strings.Join(parts, " ")
}

// stopLabel is a stop area as shown in lists and as the selected value
func stopLabel(stop models.StopArea) string {
	badges := renderLineBadges(stop)
	if badges == "" {
		return stop.Name
	}
	return badges + " " + stop.Name
}

// directionLabel is a direction as shown in lists and as the selected value
func directionLabel(dir models.Direction) string {
	return renderBadge(dir.Line) + " " + dir.Name
}
