package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"cinema-booking-cli/model"
	"cinema-booking-cli/service"
)

type testItem struct {
	value string
}

func (t testItem) Title() string       { return t.value }
func (t testItem) Description() string { return "" }
func (t testItem) FilterValue() string { return strings.ToLower(t.value) }

func newTestModel(t *testing.T) appModel {
	t.Helper()
	booker := service.NewBooker(model.DefaultCatalog(model.DefaultRows, model.DefaultCols))
	next, _ := New(booker).Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(appModel)
}

func newFilterModel(items []list.Item) *appModel {
	m := New(service.NewBooker(nil)).(appModel)
	m.state = stateSelectMovie
	m.movieList = newList("Select Movie")
	m.movieList.SetItems(items)
	return &m
}

func press(t *testing.T, m appModel, keys ...tea.KeyMsg) appModel {
	t.Helper()
	for _, key := range keys {
		next, cmd := m.Update(key)
		m = next.(appModel)
		if cmd != nil {
			if msg, ok := cmd().(errMsg); ok {
				next, _ = m.Update(msg)
				m = next.(appModel)
			}
		}
	}
	return m
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
)

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

// openSeats walks from the movie list to the seat grid of the given entries.
func openSeats(t *testing.T, movie int, show int) appModel {
	t.Helper()
	m := newTestModel(t)
	m.movieList.Select(movie)
	m = press(t, m, keyEnter)
	if m.state != stateSelectShow {
		t.Fatalf("expected show selection, got state %d", m.state)
	}
	m.showList.Select(show)
	m = press(t, m, keyEnter)
	if m.state != stateSelectSeats {
		t.Fatalf("expected seat selection, got state %d", m.state)
	}
	return m
}

func TestNew_ListsMovies(t *testing.T) {
	m := newTestModel(t)
	if m.state != stateSelectMovie {
		t.Fatalf("expected movie selection, got state %d", m.state)
	}
	if got := len(m.movieList.Items()); got != 3 {
		t.Fatalf("expected 3 movies, got %d", got)
	}
	if !strings.Contains(m.View(), "Inception") {
		t.Fatalf("expected movie list in view, got %q", m.View())
	}
}

func TestSelectMovie_OpensShows(t *testing.T) {
	m := newTestModel(t)
	m.movieList.Select(1)
	m = press(t, m, keyEnter)

	if m.movie == nil || m.movie.Title != "Inception" {
		t.Fatalf("expected Inception, got %+v", m.movie)
	}
	if got := len(m.showList.Items()); got != 3 {
		t.Fatalf("expected 3 shows, got %d", got)
	}
	item, ok := m.showList.Items()[2].(showItem)
	if !ok || item.Title() != "9:00 PM" {
		t.Fatalf("unexpected show item: %+v", m.showList.Items()[2])
	}
	if item.Description() != "Available Seats: 50 of 50" {
		t.Fatalf("unexpected description: %s", item.Description())
	}

	m = press(t, m, keyEsc)
	if m.state != stateSelectMovie {
		t.Fatalf("expected movie selection after esc, got state %d", m.state)
	}
}

func TestSeatCursor_Clamps(t *testing.T) {
	m := openSeats(t, 0, 0)

	m = press(t, m, keyUp, keyLeft)
	if m.cursor != (model.Seat{Row: 1, Column: 1}) {
		t.Fatalf("expected cursor to stay at R1-S1, got %s", m.cursor)
	}

	for i := 0; i < 20; i++ {
		m = press(t, m, keyDown, keyRight)
	}
	if m.cursor != (model.Seat{Row: 5, Column: 10}) {
		t.Fatalf("expected cursor at R5-S10, got %s", m.cursor)
	}

	m = press(t, m, runeKey("k"), runeKey("h"))
	if m.cursor != (model.Seat{Row: 4, Column: 9}) {
		t.Fatalf("expected cursor at R4-S9, got %s", m.cursor)
	}
}

func TestBookPending_ReservesSelectedSeats(t *testing.T) {
	m := openSeats(t, 1, 0)

	m = press(t, m, keyRight, keySpace, keyDown, keySpace, keyRight, keySpace, keySpace)
	if got := len(m.pending); got != 2 {
		t.Fatalf("expected 2 pending seats, got %d", got)
	}

	m = press(t, m, keyEnter)
	if m.state != stateSummary {
		t.Fatalf("expected summary, got state %d", m.state)
	}
	if got := m.show.Seats.AvailableSeats(); got != 48 {
		t.Fatalf("expected 48 available seats, got %d", got)
	}
	if m.lastBooking == nil {
		t.Fatal("expected a booking")
	}
	want := []model.Seat{{Row: 1, Column: 2}, {Row: 2, Column: 2}}
	if len(m.lastBooking.Seats) != 2 || m.lastBooking.Seats[0] != want[0] || m.lastBooking.Seats[1] != want[1] {
		t.Fatalf("unexpected booked seats: %+v", m.lastBooking.Seats)
	}
	if !strings.Contains(m.View(), "Booking Confirmed") {
		t.Fatalf("expected summary view, got %q", m.View())
	}

	m = press(t, m, keyEnter)
	if m.state != stateSelectMovie {
		t.Fatalf("expected movie selection, got state %d", m.state)
	}
}

func TestBookPending_BookedSeatShowsError(t *testing.T) {
	m := openSeats(t, 0, 0)

	m = press(t, m, keyEnter)
	if m.state != stateSummary {
		t.Fatalf("expected summary, got state %d", m.state)
	}
	m = press(t, m, keyEsc)
	m.movieList.Select(0)
	m = press(t, m, keyEnter, keyEnter)

	m = press(t, m, keySpace)
	if len(m.pending) != 0 {
		t.Fatalf("expected booked seat not selectable, got %+v", m.pending)
	}

	m = press(t, m, keyEnter)
	if m.state != stateError {
		t.Fatalf("expected error state, got %d", m.state)
	}
	if !model.IsAlreadyBooked(m.err) {
		t.Fatalf("expected already booked error, got %v", m.err)
	}

	m = press(t, m, keyEsc)
	if m.state != stateSelectSeats {
		t.Fatalf("expected seat selection after esc, got %d", m.state)
	}
}

func TestSeatMapView(t *testing.T) {
	m := openSeats(t, 2, 1)
	view := m.View()
	for _, want := range []string{"SCREEN", "R1", "R5", "Show: 4:00 PM", "Available: 50"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got %q", want, view)
		}
	}

	m = press(t, m, runeKey("n"))
	if m.showSeatNumbers {
		t.Fatal("expected seat numbers hidden")
	}
}

func TestEscFromSeats_ClearsPending(t *testing.T) {
	m := openSeats(t, 0, 2)
	m = press(t, m, keySpace)
	m = press(t, m, keyEsc)

	if m.state != stateSelectShow {
		t.Fatalf("expected show selection, got state %d", m.state)
	}
	if len(m.pending) != 0 {
		t.Fatalf("expected pending seats cleared, got %+v", m.pending)
	}
}

func TestHandleFilterInput_AppendsRunes(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "Inception"},
		testItem{value: "Interstellar"},
	})

	if !m.handleFilterInput(runeKey("i")) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.movieList.FilterValue(); got != "i" {
		t.Fatalf("expected filter value to be %q, got %q", "i", got)
	}

	if !m.handleFilterInput(runeKey("n")) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.movieList.FilterValue(); got != "in" {
		t.Fatalf("expected filter value to be %q, got %q", "in", got)
	}
}

func TestHandleFilterInput_Backspace(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "Inception"},
		testItem{value: "Interstellar"},
	})

	_ = m.handleFilterInput(runeKey("i"))
	_ = m.handleFilterInput(runeKey("n"))

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("expected backspace to be handled")
	}
	if got := m.movieList.FilterValue(); got != "i" {
		t.Fatalf("expected filter value to be %q, got %q", "i", got)
	}
}

func TestHandleFilterInput_Space(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "The Dark Knight"},
	})

	_ = m.handleFilterInput(runeKey("t"))
	_ = m.handleFilterInput(runeKey("h"))
	_ = m.handleFilterInput(runeKey("e"))

	if !m.handleFilterInput(keySpace) {
		t.Fatal("expected space to be handled")
	}
	if got := m.movieList.FilterValue(); got != "the " {
		t.Fatalf("expected filter value to be %q, got %q", "the ", got)
	}
}

func TestHandleFilterInput_IgnoredOnSeatGrid(t *testing.T) {
	m := openSeats(t, 0, 0)
	if m.handleFilterInput(runeKey("j")) {
		t.Fatal("expected seat grid keys to bypass filtering")
	}
}
