package onboarding

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ledmatrix/onboard/internal/api"
	"github.com/ledmatrix/onboard/internal/logging"
	"github.com/ledmatrix/onboard/internal/models"
)

const (
	DefaultDebounce       = 300 * time.Millisecond
	DefaultMinSearchChars = 2
)

// Placeholder and empty-list labels
const (
	StopPlaceholder        = "Press Enter and type to search for a stop"
	StopLoadingPlaceholder = "Loading..."
	NoStopFound            = "No stop found for this search"

	DirectionNeedsStop    = "Choose a stop first"
	DirectionLoading      = "Loading directions..."
	DirectionNoneFound    = "No directions available"
	DirectionPlaceholder  = "Select a direction"
	SaveLabel             = "Start display"
	SaveInProgressLabel   = "Sending..."
	minSearchCharsMessage = "Type at least %d characters to search for a stop"
)

var (
	ErrUnknownStopArea  = errors.New("stop area is not among the search results")
	ErrUnknownDirection = errors.New("direction is not among the loaded directions")
	ErrNoStopArea       = errors.New("no stop area selected")
	ErrCannotSave       = errors.New("a stop area and a direction are required and no save may be in flight")
)

// RequestKind names the remote operation a Request stands for
type RequestKind int

const (
	RequestSearch RequestKind = iota + 1
	RequestDirections
	RequestSave
)

func (k RequestKind) String() string {
	switch k {
	case RequestSearch:
		return "search"
	case RequestDirections:
		return "directions"
	case RequestSave:
		return "save"
	}
	return fmt.Sprintf("request(%d)", int(k))
}

// Request is an operation a transition asks the caller to perform. Seq must
// be handed back with the result.
type Request struct {
	Kind       RequestKind
	Seq        int
	Query      string
	StopAreaID string
	RouteID    string
}

// DebounceTicket is returned for every keystroke. The caller waits Delay and
// then calls Settle with Version.
type DebounceTicket struct {
	Version int
	Text    string
	Delay   time.Duration
}

// Options tunes a State. Zero fields take the defaults.
type Options struct {
	Debounce       time.Duration
	MinSearchChars int
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.MinSearchChars <= 0 {
		o.MinSearchChars = DefaultMinSearchChars
	}
	return o
}

// State is the onboarding form's single source of truth.
// Slices and pointers held here are replaced, never modified in place, so a
// copied State is a consistent snapshot.
type State struct {
	SearchText  string
	SettledText string

	StopAreas        []models.StopArea
	SelectedStopArea *models.StopArea

	Directions        []models.Direction
	SelectedDirection *models.Direction

	Status Status

	LoadingStops      bool
	LoadingDirections bool
	Saving            bool

	opts            Options
	debounceVersion int
	searchSeq       int
	directionsSeq   int
	saveSeq         int
	closed          bool
}

// NewState returns an empty form
func NewState(opts Options) State {
	return State{opts: opts.withDefaults()}
}

// Options returns the effective options
func (s State) Options() Options {
	return s.opts.withDefaults()
}

// Type records raw search text and returns the ticket to settle it with.
// Clearing the text drops the candidates and the whole selection at once.
func (s *State) Type(text string) DebounceTicket {
	s.opts = s.opts.withDefaults()
	s.SearchText = text
	s.debounceVersion++

	if text == "" {
		s.SettledText = ""
		s.StopAreas = nil
		s.searchSeq++
		s.LoadingStops = false
		s.SelectedStopArea = nil
		s.SelectedDirection = nil
		s.resetDirections()
	}

	return DebounceTicket{
		Version: s.debounceVersion,
		Text:    text,
		Delay:   s.opts.Debounce,
	}
}

// Settle applies the ticket with the given version if no newer keystroke
// arrived and the form is still open. It returns the search to run, if any.
func (s *State) Settle(version int) *Request {
	if s.closed || version != s.debounceVersion {
		return nil
	}

	settled := strings.TrimSpace(s.SearchText)
	if settled == s.SettledText {
		return nil
	}
	s.SettledText = settled

	if !s.searchable(settled) {
		s.StopAreas = nil
		s.searchSeq++
		s.LoadingStops = false
		return nil
	}

	s.searchSeq++
	s.LoadingStops = true
	s.Status = Status{}

	return &Request{Kind: RequestSearch, Seq: s.searchSeq, Query: settled}
}

// Teardown stops the form; pending tickets never settle afterwards
func (s *State) Teardown() {
	s.closed = true
	s.debounceVersion++
}

// Closed reports whether Teardown was called
func (s State) Closed() bool { return s.closed }

// ApplySearch records the outcome of a search. It reports false when seq
// belongs to a superseded search, in which case nothing changes.
func (s *State) ApplySearch(seq int, stops []models.StopArea, err error) bool {
	if seq != s.searchSeq {
		logging.Debug("discarding stale search result", zap.Int("seq", seq), zap.Int("current", s.searchSeq))
		return false
	}

	s.LoadingStops = false
	if err != nil {
		s.Status = errorStatus(api.Describe(api.OpSearchStopAreas, err))
		return true
	}

	if stops == nil {
		stops = []models.StopArea{}
	}
	s.StopAreas = stops
	return true
}

// SelectStopArea picks stop (nil to clear). The direction is always cleared.
// A different stop area returns the direction lookup to run.
func (s *State) SelectStopArea(stop *models.StopArea) (*Request, error) {
	if stop != nil {
		stop = models.FindStopArea(s.StopAreas, stop.ID)
		if stop == nil {
			return nil, ErrUnknownStopArea
		}
	}

	previous := stopAreaID(s.SelectedStopArea)
	s.SelectedStopArea = stop
	s.SelectedDirection = nil
	s.Status = Status{}

	if stop != nil {
		// The picked name becomes the search text without triggering a search
		s.SearchText = stop.Name
		s.SettledText = strings.TrimSpace(stop.Name)
		s.debounceVersion++
	}

	if stopAreaID(stop) == previous {
		return nil, nil
	}
	return s.lookupDirections(), nil
}

func (s *State) lookupDirections() *Request {
	s.resetDirections()
	if s.SelectedStopArea == nil {
		return nil
	}

	s.LoadingDirections = true
	return &Request{
		Kind:       RequestDirections,
		Seq:        s.directionsSeq,
		StopAreaID: s.SelectedStopArea.ID,
	}
}

func (s *State) resetDirections() {
	s.directionsSeq++
	s.Directions = nil
	s.LoadingDirections = false
}

// ApplyDirections records the outcome of a direction lookup. Results for a
// superseded lookup or another stop area are discarded.
func (s *State) ApplyDirections(seq int, stopAreaID string, dirs []models.Direction, err error) bool {
	if seq != s.directionsSeq || s.SelectedStopArea == nil || s.SelectedStopArea.ID != stopAreaID {
		logging.Debug("discarding stale directions result", zap.Int("seq", seq), zap.String("stop_area", stopAreaID))
		return false
	}

	s.LoadingDirections = false
	if err != nil {
		s.Status = errorStatus(api.Describe(api.OpListDirections, err))
		s.Directions = []models.Direction{}
		return true
	}

	if dirs == nil {
		dirs = []models.Direction{}
	}
	s.Directions = dirs
	return true
}

// SelectDirection picks dir (nil to clear)
func (s *State) SelectDirection(dir *models.Direction) error {
	if dir == nil {
		s.SelectedDirection = nil
		s.Status = Status{}
		return nil
	}
	if s.SelectedStopArea == nil {
		return ErrNoStopArea
	}

	found := models.FindDirection(s.Directions, dir.ID)
	if found == nil {
		return ErrUnknownDirection
	}

	s.SelectedDirection = found
	s.Status = Status{}
	return nil
}

// CanSave reports whether both selections are present and no save is running
func (s State) CanSave() bool {
	return s.SelectedStopArea != nil && s.SelectedDirection != nil && !s.Saving
}

// BeginSave starts pushing the selection to the display
func (s *State) BeginSave() (*Request, error) {
	if !s.CanSave() {
		return nil, ErrCannotSave
	}

	s.saveSeq++
	s.Saving = true
	s.Status = Status{}

	return &Request{
		Kind:       RequestSave,
		Seq:        s.saveSeq,
		StopAreaID: s.SelectedStopArea.ID,
		RouteID:    s.SelectedDirection.ID,
	}, nil
}

// ApplySave records the outcome of a save. Selections are kept either way.
func (s *State) ApplySave(seq int, err error) bool {
	if seq != s.saveSeq {
		return false
	}

	s.Saving = false
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if s.SelectedStopArea != nil && s.SelectedDirection != nil {
			fields = append(fields,
				zap.String("stop_area", s.SelectedStopArea.ID),
				zap.String("route", s.SelectedDirection.ID))
		}
		logging.Error("configuration not saved", fields...)
		s.Status = errorStatus(api.Describe(api.OpSetConfiguration, err))
		return true
	}

	s.Status = successStatus(SuccessMessage)
	return true
}

// Result is the outcome of running a Request
type Result struct {
	Request    Request
	StopAreas  []models.StopArea
	Directions []models.Direction
	Err        error
}

// Apply dispatches r to the matching Apply method
func (s *State) Apply(r Result) bool {
	switch r.Request.Kind {
	case RequestSearch:
		return s.ApplySearch(r.Request.Seq, r.StopAreas, r.Err)
	case RequestDirections:
		return s.ApplyDirections(r.Request.Seq, r.Request.StopAreaID, r.Directions, r.Err)
	case RequestSave:
		return s.ApplySave(r.Request.Seq, r.Err)
	}
	return false
}

// NeedsMoreChars reports whether the settled text is too short to search
func (s State) NeedsMoreChars() bool {
	return !s.searchable(s.SettledText)
}

// NoStopsLabel is shown when the stop list is empty
func (s State) NoStopsLabel() string {
	if s.NeedsMoreChars() {
		return fmt.Sprintf(minSearchCharsMessage, s.Options().MinSearchChars)
	}
	return NoStopFound
}

// StopPlaceholderLabel is shown in the stop box when nothing is selected
func (s State) StopPlaceholderLabel() string {
	if s.LoadingStops {
		return StopLoadingPlaceholder
	}
	return StopPlaceholder
}

// DirectionsEnabled reports whether the direction control accepts input
func (s State) DirectionsEnabled() bool {
	return s.SelectedStopArea != nil && !s.LoadingDirections && len(s.Directions) > 0
}

// DirectionPlaceholderLabel is shown in the direction box when nothing is
// selected
func (s State) DirectionPlaceholderLabel() string {
	switch {
	case s.SelectedStopArea == nil:
		return DirectionNeedsStop
	case s.LoadingDirections:
		return DirectionLoading
	case len(s.Directions) == 0:
		return DirectionNoneFound
	}
	return DirectionPlaceholder
}

// SaveButtonLabel is the save action's caption
func (s State) SaveButtonLabel() string {
	if s.Saving {
		return SaveInProgressLabel
	}
	return SaveLabel
}

func (s State) searchable(text string) bool {
	return utf8.RuneCountInString(text) >= s.Options().MinSearchChars
}

func stopAreaID(s *models.StopArea) string {
	if s == nil {
		return ""
	}
	return s.ID
}
