package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledmatrix/onboard/internal/onboarding"
)

type focusPanel int

const (
	focusStops focusPanel = iota
	focusDirections
	focusSave
)

const focusCount = 3

const defaultTimeout = 10 * time.Second

// Options configures the TUI
type Options struct {
	// Timeout bounds each API call
	Timeout time.Duration
	State   onboarding.Options
	// Target is the controller address shown in the header
	Target string
}

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	client  onboarding.Client
	timeout time.Duration
	target  string
	width   int
	height  int

	state onboarding.State
	focus focusPanel

	// Stop area select: the input holds the search text
	searchInput textinput.Model
	stopBox     selectBox

	// Direction select: the input filters loaded directions locally
	filterInput  textinput.Model
	directionBox selectBox
	filtered     []int

	spinner  spinner.Model
	quitting bool
}

// New creates a new TUI model.
func New(client onboarding.Client, opts Options) Model {
	search := textinput.New()
	search.Placeholder = "Type a stop name..."
	search.CharLimit = 100
	search.Width = 40

	filter := textinput.New()
	filter.Placeholder = "Filter directions..."
	filter.CharLimit = 60
	filter.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleLoading

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return Model{
		client:      client,
		timeout:     timeout,
		target:      opts.Target,
		state:       onboarding.NewState(opts.State),
		focus:       focusStops,
		searchInput: search,
		filterInput: filter,
		spinner:     sp,
	}
}

// State returns a snapshot of the form state
func (m Model) State() onboarding.State {
	return m.state
}

// Init returns the initial command (textinput blink and spinner).
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// busy reports whether any remote operation is in flight
func (m Model) busy() bool {
	return m.state.LoadingStops || m.state.LoadingDirections || m.state.Saving
}
