package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ledmatrix/onboard/internal/models"
)

// Client is the subset of the controller API the form needs
type Client interface {
	SearchStopAreas(ctx context.Context, query string) ([]models.StopArea, error)
	GetDirections(ctx context.Context, stopAreaID string) ([]models.Direction, error)
	SetConfiguration(ctx context.Context, stopAreaID, routeID string) error
}

// Execute performs req against client
func Execute(ctx context.Context, client Client, req Request) Result {
	res := Result{Request: req}
	switch req.Kind {
	case RequestSearch:
		res.StopAreas, res.Err = client.SearchStopAreas(ctx, req.Query)
	case RequestDirections:
		res.Directions, res.Err = client.GetDirections(ctx, req.StopAreaID)
	case RequestSave:
		res.Err = client.SetConfiguration(ctx, req.StopAreaID, req.RouteID)
	default:
		res.Err = fmt.Errorf("unknown request kind %v", req.Kind)
	}
	return res
}

// Runner drives a State without a UI. Text passed to Search is treated as
// already settled. Calls are serialised; network I/O happens outside the
// lock and results go through the same sequence checks as in the TUI.
type Runner struct {
	mu     sync.Mutex
	state  State
	client Client
}

// NewRunner creates a Runner over client
func NewRunner(client Client, opts Options) *Runner {
	return &Runner{
		state:  NewState(opts),
		client: client,
	}
}

// Snapshot returns a copy of the current state
func (r *Runner) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Search types text and searches for it right away
func (r *Runner) Search(ctx context.Context, text string) ([]models.StopArea, error) {
	r.mu.Lock()
	ticket := r.state.Type(text)
	req := r.state.Settle(ticket.Version)
	r.mu.Unlock()

	if req != nil {
		if err := r.run(ctx, *req); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.StopAreas, nil
}

// SelectStopArea picks the stop area with the given ID, or the single
// candidate whose name matches ref case-insensitively, and loads its
// directions.
func (r *Runner) SelectStopArea(ctx context.Context, ref string) (*models.StopArea, error) {
	r.mu.Lock()
	stop, err := matchStopArea(r.state.StopAreas, ref)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	req, err := r.state.SelectStopArea(stop)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if req != nil {
		if err := r.run(ctx, *req); err != nil {
			return nil, err
		}
	}

	return stop, nil
}

// SelectDirection picks the direction with the given route ID, or the single
// loaded direction whose name matches ref case-insensitively.
func (r *Runner) SelectDirection(ref string) (*models.Direction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir, err := matchDirection(r.state.Directions, ref)
	if err != nil {
		return nil, err
	}
	if err := r.state.SelectDirection(dir); err != nil {
		return nil, err
	}
	return dir, nil
}

// Save pushes the current selection to the display
func (r *Runner) Save(ctx context.Context) error {
	r.mu.Lock()
	req, err := r.state.BeginSave()
	r.mu.Unlock()
	if err != nil {
		return err
	}

	return r.run(ctx, *req)
}

// Teardown stops the underlying state
func (r *Runner) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Teardown()
}

// run executes req and applies its result. The returned error carries the
// user-facing status message and wraps the client error.
func (r *Runner) run(ctx context.Context, req Request) error {
	res := Execute(ctx, r.client, req)

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.state.Apply(res) {
		return fmt.Errorf("%s result superseded", req.Kind)
	}
	if res.Err != nil {
		return &OperationError{Message: r.state.Status.Message, Err: res.Err}
	}
	return nil
}

// OperationError is returned by Runner when an operation failed
type OperationError struct {
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// ErrAmbiguous is returned when a name matches more than one candidate
var ErrAmbiguous = errors.New("more than one candidate matches")

func matchStopArea(stops []models.StopArea, ref string) (*models.StopArea, error) {
	if s := models.FindStopArea(stops, ref); s != nil {
		return s, nil
	}

	var found *models.StopArea
	for i := range stops {
		if strings.EqualFold(strings.TrimSpace(stops[i].Name), strings.TrimSpace(ref)) {
			if found != nil {
				return nil, fmt.Errorf("%w: stop %q", ErrAmbiguous, ref)
			}
			s := stops[i]
			found = &s
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStopArea, ref)
	}
	return found, nil
}

func matchDirection(dirs []models.Direction, ref string) (*models.Direction, error) {
	if d := models.FindDirection(dirs, ref); d != nil {
		return d, nil
	}

	var found *models.Direction
	for i := range dirs {
		if strings.EqualFold(strings.TrimSpace(dirs[i].Name), strings.TrimSpace(ref)) {
			if found != nil {
				return nil, fmt.Errorf("%w: direction %q", ErrAmbiguous, ref)
			}
			d := dirs[i]
			found = &d
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirection, ref)
	}
	return found, nil
}
