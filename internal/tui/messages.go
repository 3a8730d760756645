package tui

import (
	"github.com/ledmatrix/onboard/internal/models"
)

// debounceMsg fires once the search text has been still for the debounce
// delay. Only the latest version settles.
type debounceMsg struct {
	version int
}

// searchResultMsg carries stop area search results back to the model.
// seq is used for stale-result detection.
type searchResultMsg struct {
	seq   int
	stops []models.StopArea
	err   error
}

// directionsResultMsg carries the directions of one stop area.
type directionsResultMsg struct {
	seq        int
	stopAreaID string
	directions []models.Direction
	err        error
}

// saveResultMsg reports whether the display accepted the configuration.
type saveResultMsg struct {
	seq int
	err error
}
