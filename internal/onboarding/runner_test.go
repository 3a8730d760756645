package onboarding

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/ledmatrix/onboard/internal/api"
	"github.com/ledmatrix/onboard/internal/models"
	"github.com/ledmatrix/onboard/internal/testutil"
)

// controllerHandler serves a small controller API with configurable set status
func controllerHandler(setStatus int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/stop_areas"):
			if r.URL.Query().Get("filter") == "Mussonville" {
				_, _ = w.Write([]byte(testutil.SampleStopAreasResponse))
				return
			}
			_, _ = w.Write([]byte(testutil.SampleMultipleStopAreasResponse))
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/stop_area/SA1/directions"):
			_, _ = w.Write([]byte(testutil.SampleEmptyListResponse))
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/directions"):
			_, _ = w.Write([]byte(testutil.SampleDirectionsResponse))
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/set"):
			w.WriteHeader(setStatus)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestRunner(t *testing.T, handler http.HandlerFunc) (*Runner, *testutil.MockServer) {
	t.Helper()
	server := testutil.NewMockServer(handler)
	t.Cleanup(server.Close)

	client, err := api.NewClient(api.WithBaseURL(server.URL))
	testutil.AssertNil(t, err)

	return NewRunner(client, Options{}), server
}

func TestRunner_MussonvilleFlow(t *testing.T) {
	runner, server := newTestRunner(t, controllerHandler(http.StatusOK))
	ctx := context.Background()

	stops, err := runner.Search(ctx, "Mussonville")
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, stops, 1)
	testutil.AssertEqual(t, stops[0].Name, "Parc de Mussonville")

	stop, err := runner.SelectStopArea(ctx, "parc de mussonville")
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, stop.ID, "stop_area:TBM:SA:MUSSO")

	snap := runner.Snapshot()
	testutil.AssertLen(t, snap.Directions, 2)
	testutil.AssertTrue(t, snap.DirectionsEnabled())

	dir, err := runner.SelectDirection("R7")
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, dir.Name, "Pessac Centre")

	testutil.AssertNil(t, runner.Save(ctx))

	snap = runner.Snapshot()
	testutil.AssertTrue(t, snap.Status.IsSuccess())
	testutil.AssertEqual(t, snap.Status.Message, SuccessMessage)
	testutil.AssertEqual(t, server.LastRequest().Method, http.MethodPost)
	testutil.AssertEqual(t, server.LastRequest().URL.Path, "/stop_area/stop_area:TBM:SA:MUSSO/route/R7/set")
}

func TestRunner_EmptyDirections(t *testing.T) {
	runner, _ := newTestRunner(t, controllerHandler(http.StatusOK))
	ctx := context.Background()

	_, err := runner.Search(ctx, "Quinconces")
	testutil.AssertNil(t, err)

	_, err = runner.SelectStopArea(ctx, "SA1")
	testutil.AssertNil(t, err)

	snap := runner.Snapshot()
	testutil.AssertLen(t, snap.Directions, 0)
	testutil.AssertFalse(t, snap.DirectionsEnabled())
	testutil.AssertEqual(t, snap.DirectionPlaceholderLabel(), "No directions available")

	_, err = runner.SelectDirection("R7")
	testutil.AssertErrorIs(t, err, ErrUnknownDirection)

	testutil.AssertErrorIs(t, runner.Save(ctx), ErrCannotSave)
}

func TestRunner_SaveFailure(t *testing.T) {
	runner, _ := newTestRunner(t, controllerHandler(http.StatusInternalServerError))
	ctx := context.Background()

	_, err := runner.Search(ctx, "Quinconces")
	testutil.AssertNil(t, err)
	_, err = runner.SelectStopArea(ctx, "SA2")
	testutil.AssertNil(t, err)
	_, err = runner.SelectDirection("Pessac Centre")
	testutil.AssertNil(t, err)

	err = runner.Save(ctx)

	testutil.AssertErrorIs(t, err, api.ErrServerError)
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected *OperationError, got %T", err)
	}
	testutil.AssertEqual(t, opErr.Message, "Error sending configuration (500)")

	snap := runner.Snapshot()
	testutil.AssertFalse(t, snap.Saving)
	testutil.AssertEqual(t, snap.SelectedDirection.ID, "R7")
	testutil.AssertEqual(t, snap.Status.Message, "Error sending configuration (500)")
}

func TestRunner_SearchFailure(t *testing.T) {
	runner, _ := newTestRunner(t, testutil.JSONHandler(http.StatusNotFound, testutil.SampleErrorResponse))

	_, err := runner.Search(context.Background(), "Mussonville")

	testutil.AssertErrorIs(t, err, api.ErrNotFound)
	testutil.AssertContains(t, err.Error(), "Error loading stops (404)")
}

func TestRunner_ShortQuery(t *testing.T) {
	runner, server := newTestRunner(t, controllerHandler(http.StatusOK))

	stops, err := runner.Search(context.Background(), "M")

	testutil.AssertNil(t, err)
	testutil.AssertLen(t, stops, 0)
	testutil.AssertEqual(t, server.RequestCount(), 0)
}

func TestRunner_AmbiguousName(t *testing.T) {
	runner := NewRunner(&fakeClient{
		stops: []models.StopArea{
			{ID: "X1", Name: "Gare"},
			{ID: "X2", Name: "gare"},
		},
	}, Options{})
	ctx := context.Background()

	_, err := runner.Search(ctx, "Gare")
	testutil.AssertNil(t, err)

	_, err = runner.SelectStopArea(ctx, "Gare")
	testutil.AssertErrorIs(t, err, ErrAmbiguous)

	_, err = runner.SelectStopArea(ctx, "X2")
	testutil.AssertNil(t, err)

	_, err = runner.SelectStopArea(ctx, "Nowhere")
	testutil.AssertErrorIs(t, err, ErrUnknownStopArea)
}

func TestRunner_Teardown(t *testing.T) {
	client := &fakeClient{stops: []models.StopArea{sa1}}
	runner := NewRunner(client, Options{})

	runner.Teardown()
	stops, err := runner.Search(context.Background(), "Quinconces")

	testutil.AssertNil(t, err)
	testutil.AssertLen(t, stops, 0)
	testutil.AssertEqual(t, client.calls(), 0)
}

func TestExecute_UnknownKind(t *testing.T) {
	res := Execute(context.Background(), &fakeClient{}, Request{Kind: RequestKind(7)})
	testutil.AssertError(t, res.Err)
}

type fakeClient struct {
	mu    sync.Mutex
	n     int
	stops []models.StopArea
	dirs  []models.Direction
	err   error
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

func (f *fakeClient) SearchStopAreas(_ context.Context, _ string) ([]models.StopArea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return f.stops, f.err
}

func (f *fakeClient) GetDirections(_ context.Context, _ string) ([]models.Direction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return f.dirs, f.err
}

func (f *fakeClient) SetConfiguration(_ context.Context, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return f.err
}
