package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledmatrix/onboard/internal/discovery"
	"github.com/ledmatrix/onboard/internal/models"
	"github.com/ledmatrix/onboard/internal/onboarding"
)

// MaxLineBadges is how many line codes are listed before "+N"
const MaxLineBadges = 4

// TableOptions configures the table output
type TableOptions struct {
	Colors *Colors
	// ShowIDs prints the identifiers accepted by the other commands
	ShowIDs bool
}

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// FormatLines renders a stop area's line codes, capped at MaxLineBadges
func FormatLines(stop models.StopArea, c *Colors) string {
	visible, hidden := stop.VisibleLines(MaxLineBadges)

	parts := make([]string, 0, len(visible)+1)
	for _, line := range visible {
		parts = append(parts, c.Line("[%s]", line.Code))
	}
	if hidden > 0 {
		parts = append(parts, c.Muted("+%d", hidden))
	}
	return strings.Join(parts, " ")
}

// RenderStopAreas renders stop search results
func RenderStopAreas(w io.Writer, stops []models.StopArea, opts TableOptions) {
	if len(stops) == 0 {
		_, _ = fmt.Fprintln(w, onboarding.NoStopFound)
		return
	}

	c := opts.colors()

	_, _ = fmt.Fprintln(w, c.Header("Stops:"))
	_, _ = fmt.Fprintln(w)

	for _, stop := range stops {
		lines := FormatLines(stop, c)
		if lines != "" {
			_, _ = fmt.Fprintf(w, "  %s  %s\n", lines, c.Name(stop.Name))
		} else {
			_, _ = fmt.Fprintf(w, "  %s\n", c.Name(stop.Name))
		}
		if opts.ShowIDs {
			_, _ = fmt.Fprintf(w, "    %s %s\n", c.Muted("ID:"), c.ID(stop.ID))
			_, _ = fmt.Fprintf(w, "    %s onboard directions %s\n", c.Muted("Use:"), stop.ID)
		}
	}
}

// RenderDirections renders the directions served from a stop area
func RenderDirections(w io.Writer, dirs []models.Direction, opts TableOptions) {
	if len(dirs) == 0 {
		_, _ = fmt.Fprintln(w, onboarding.DirectionNoneFound)
		return
	}

	c := opts.colors()

	_, _ = fmt.Fprintln(w, c.Header("Directions:"))
	_, _ = fmt.Fprintln(w)

	for _, dir := range dirs {
		_, _ = fmt.Fprintf(w, "  %s  %s\n", c.Line("[%s]", dir.Line.Code), c.Name(dir.Name))
		if opts.ShowIDs {
			_, _ = fmt.Fprintf(w, "    %s %s\n", c.Muted("Route:"), c.ID(dir.ID))
		}
	}
}

// RenderSelection renders the footer summary of a stop area and direction
func RenderSelection(w io.Writer, stop *models.StopArea, dir *models.Direction, opts TableOptions) {
	c := opts.colors()

	_, _ = fmt.Fprintln(w, c.Header("Current selection"))
	_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("Stop:"), selectionName(stopName(stop)))
	_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("Direction:"), selectionName(directionName(dir)))
}

// RenderStatus renders a status message, or nothing when it is empty
func RenderStatus(w io.Writer, status onboarding.Status, opts TableOptions) {
	c := opts.colors()

	switch status.Kind {
	case onboarding.StatusSuccess:
		_, _ = fmt.Fprintln(w, c.Success("%s", status.Message))
	case onboarding.StatusError:
		_, _ = fmt.Fprintln(w, c.Error("%s", status.Message))
	}
}

// RenderControllers renders the display controllers found by discovery
func RenderControllers(w io.Writer, controllers []*discovery.Controller, opts TableOptions) {
	if len(controllers) == 0 {
		_, _ = fmt.Fprintln(w, "No display controller found.")
		return
	}

	c := opts.colors()

	_, _ = fmt.Fprintln(w, c.Header("Display controllers:"))
	_, _ = fmt.Fprintln(w)

	for _, ctrl := range controllers {
		_, _ = fmt.Fprintf(w, "  %s\n", c.Name(ctrl.Name))
		_, _ = fmt.Fprintf(w, "    %s %s\n", c.Muted("URL:"), c.ID(ctrl.BaseURL()))
		if opts.ShowIDs && ctrl.Host != "" {
			_, _ = fmt.Fprintf(w, "    %s %s\n", c.Muted("Host:"), ctrl.Host)
		}
	}
}

func stopName(s *models.StopArea) string {
	if s == nil {
		return ""
	}
	return s.Name
}

func directionName(d *models.Direction) string {
	if d == nil {
		return ""
	}
	return d.Name
}

func selectionName(name string) string {
	if name == "" {
		return "-"
	}
	return name
}
