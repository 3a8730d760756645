package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledmatrix/onboard/internal/api"
	"github.com/ledmatrix/onboard/internal/models"
	"github.com/ledmatrix/onboard/internal/onboarding"
	"github.com/ledmatrix/onboard/internal/testutil"
)

// fakeClient answers every call immediately with canned data
type fakeClient struct {
	mu         sync.Mutex
	stops      []models.StopArea
	directions map[string][]models.Direction
	searchErr  error
	dirErr     error
	saveErr    error
	queries    []string
	saved      [][2]string
}

func (f *fakeClient) SearchStopAreas(_ context.Context, query string) ([]models.StopArea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.stops, f.searchErr
}

func (f *fakeClient) GetDirections(_ context.Context, stopAreaID string) ([]models.Direction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.directions[stopAreaID], f.dirErr
}

func (f *fakeClient) SetConfiguration(_ context.Context, stopAreaID, routeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, [2]string{stopAreaID, routeID})
	return f.saveErr
}

var (
	musso = models.StopArea{
		ID:   "stop_area:TBM:SA:MUSSO",
		Name: "Parc de Mussonville",
		Lines: []models.LineRef{
			{ID: "line:TBM:B", Code: "B", Color: "#d6006e"},
			{ID: "line:TBM:35", Code: "35", Color: models.DefaultLineColor},
		},
	}
	sa1 = models.StopArea{ID: "SA1", Name: "Quinconces", Lines: []models.LineRef{}}

	r7 = models.Direction{ID: "R7", Name: "Pessac Centre", Line: models.LineRef{ID: "line:B", Code: "B", Color: "#d6006e"}}
	r8 = models.Direction{ID: "R8", Name: "Berges de la Garonne", Line: models.LineRef{ID: "line:B", Code: "B", Color: "#d6006e"}}
)

func newFakeClient() *fakeClient {
	return &fakeClient{
		stops: []models.StopArea{musso, sa1},
		directions: map[string][]models.Direction{
			musso.ID: {r7, r8},
			sa1.ID:   {},
		},
	}
}

func newTestModel(client onboarding.Client) Model {
	m := New(client, Options{
		Timeout: time.Second,
		State:   onboarding.Options{Debounce: 5 * time.Millisecond},
		Target:  "http://192.168.1.44:8080/api/v1",
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func TestNew(t *testing.T) {
	m := New(newFakeClient(), Options{})

	testutil.AssertTrue(t, m.client != nil)
	testutil.AssertEqual(t, m.focus, focusStops)
	testutil.AssertEqual(t, m.timeout, defaultTimeout)
	testutil.AssertFalse(t, m.stopBox.open)
	testutil.AssertFalse(t, m.directionBox.open)
	testutil.AssertEqual(t, m.state.Options().Debounce, onboarding.DefaultDebounce)
}

func TestNew_Options(t *testing.T) {
	m := New(newFakeClient(), Options{
		Timeout: 3 * time.Second,
		State:   onboarding.Options{Debounce: 50 * time.Millisecond, MinSearchChars: 3},
	})

	testutil.AssertEqual(t, m.timeout, 3*time.Second)
	testutil.AssertEqual(t, m.state.Options().Debounce, 50*time.Millisecond)
	testutil.AssertEqual(t, m.state.Options().MinSearchChars, 3)
}

func TestModel_Init(t *testing.T) {
	m := New(newFakeClient(), Options{})

	cmd := m.Init()
	testutil.AssertTrue(t, cmd != nil)
}

func TestFocusPanel_Constants(t *testing.T) {
	panels := []focusPanel{focusStops, focusDirections, focusSave}

	seen := make(map[focusPanel]bool)
	for _, panel := range panels {
		if seen[panel] {
			t.Errorf("duplicate focus panel value: %d", panel)
		}
		seen[panel] = true
	}
	testutil.AssertEqual(t, len(panels), focusCount)
}

func TestModel_WindowSize(t *testing.T) {
	m := New(newFakeClient(), Options{})

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	testutil.AssertTrue(t, cmd == nil)
	testutil.AssertEqual(t, m.width, 120)
	testutil.AssertEqual(t, m.height, 40)
	testutil.AssertEqual(t, m.searchInput.Width, maxBoxWidth-8)
}

func TestModel_QuitTearsDown(t *testing.T) {
	m := newTestModel(newFakeClient())
	m, tick := typeSearch(t, m, "Mussonville")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)

	testutil.AssertTrue(t, cmd != nil)
	testutil.AssertTrue(t, m.quitting)
	testutil.AssertTrue(t, m.state.Closed())
	testutil.AssertEqual(t, m.View(), "")

	// The debounce tick still arrives after quitting but must not search
	next, cmd = m.Update(tick)
	testutil.AssertTrue(t, cmd == nil)
	testutil.AssertFalse(t, next.(Model).state.LoadingStops)
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel(newFakeClient())
	m, _ = press(m, "tab", "tab")
	testutil.AssertEqual(t, m.focus, focusSave)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_StateSnapshot(t *testing.T) {
	m := newTestModel(newFakeClient())

	s := m.State()

	testutil.AssertFalse(t, s.CanSave())
	testutil.AssertEqual(t, s.SearchText, "")
}

func TestModel_APIErrorsFromRealClient(t *testing.T) {
	server := testutil.NewMockServer(testutil.JSONHandler(404, testutil.SampleErrorResponse))
	defer server.Close()

	client, err := api.NewClient(api.WithBaseURL(server.URL))
	testutil.AssertNil(t, err)

	m := newTestModel(client)
	m = searchFor(t, m, "Mussonville")

	testutil.AssertEqual(t, m.state.Status.Message, "Error loading stops (404)")
	testutil.AssertContains(t, m.View(), "Error loading stops (404)")
}
