package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/maps"

	"cinema-booking-cli/model"
	"cinema-booking-cli/service"
)

type appState int

const (
	stateSelectMovie appState = iota
	stateSelectShow
	stateSelectSeats
	stateSummary
	stateError
)

type appModel struct {
	booker *service.Booker

	state     appState
	lastState appState
	err       error

	width  int
	height int

	movieList list.Model
	showList  list.Model

	movie *model.Movie
	show  *model.Show

	cursor          model.Seat
	pending         map[model.Seat]bool
	showSeatNumbers bool

	lastBooking *model.Booking
}

type errMsg struct {
	err error
}

func New(booker *service.Booker) tea.Model {
	m := appModel{
		booker:  booker,
		state:   stateSelectMovie,
		pending: make(map[model.Seat]bool),
	}

	m.movieList = newList("Select Movie")
	m.showList = newList("Select Show")
	m.movieList.SetItems(buildMovieItems(booker.Movies()))
	m.showSeatNumbers = true

	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}

	case errMsg:
		m.err = msg.err
		m.lastState = m.state
		m.state = stateError
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectMovie:
		m.movieList, cmd = m.movieList.Update(msg)
	case stateSelectShow:
		m.showList, cmd = m.showList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateSelectMovie:
		return header + "\n\n" + m.movieList.View()
	case stateSelectShow:
		return header + "\n\n" + m.showList.View()
	case stateSelectSeats:
		return header + "\n\n" + m.renderSeatMap()
	case stateSummary:
		return header + "\n\n" + m.summaryView()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Movie Ticket Booking")
	sub := []string{}
	if m.movie != nil && m.state != stateSelectMovie {
		sub = append(sub, fmt.Sprintf("Movie: %s", m.movie.Title))
	}
	if m.show != nil && (m.state == stateSelectSeats || m.state == stateSummary) {
		sub = append(sub, fmt.Sprintf("Show: %s", m.show.Time))
	}
	if n := len(m.booker.Bookings()); n > 0 {
		sub = append(sub, fmt.Sprintf("Bookings: %d", n))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • esc back • type to filter • enter select"
	switch m.state {
	case stateSelectSeats:
		hints = "ctrl+c quit • esc back • arrows/hjkl move • space select seat • enter book • n toggle numbers"
	case stateSummary:
		hints = "ctrl+c quit • enter/esc back to movies"
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		return m.goBack(), nil, true
	}

	if m.state == stateSelectSeats {
		return m.handleSeatKey(msg)
	}

	if msg.Type == tea.KeyEnter {
		switch m.state {
		case stateSelectMovie:
			item, ok := m.movieList.SelectedItem().(movieItem)
			if !ok {
				return m, nil, true
			}
			m.movie = item.movie
			m.showList.Title = fmt.Sprintf("Shows • %s", item.movie.Title)
			m.showList.ResetFilter()
			m.showList.SetItems(buildShowItems(item.movie))
			m.showList.Select(0)
			m.state = stateSelectShow
			return m, nil, true
		case stateSelectShow:
			item, ok := m.showList.SelectedItem().(showItem)
			if !ok {
				return m, nil, true
			}
			m.show = item.show
			m.cursor = model.Seat{Row: 1, Column: 1}
			m.pending = make(map[model.Seat]bool)
			m.state = stateSelectSeats
			return m, nil, true
		case stateSummary:
			return m.goBack(), nil, true
		}
	}
	return m, nil, false
}

func (m appModel) handleSeatKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	seats := m.show.Seats
	switch msg.String() {
	case "up", "k":
		m.cursor.Row = max(1, m.cursor.Row-1)
	case "down", "j":
		m.cursor.Row = min(seats.Rows(), m.cursor.Row+1)
	case "left", "h":
		m.cursor.Column = max(1, m.cursor.Column-1)
	case "right", "l":
		m.cursor.Column = min(seats.Cols(), m.cursor.Column+1)
	case " ", "space", "x":
		m.togglePending(m.cursor)
	case "n":
		m.showSeatNumbers = !m.showSeatNumbers
	case "enter":
		return m.bookPending()
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m *appModel) togglePending(seat model.Seat) {
	if m.pending[seat] {
		delete(m.pending, seat)
		return
	}
	booked, err := m.show.Seats.IsBooked(seat.Row, seat.Column)
	if err != nil || booked {
		return
	}
	m.pending[seat] = true
}

// bookPending reserves the selected seats in row-major order, or the seat
// under the cursor when nothing is selected.
func (m appModel) bookPending() (appModel, tea.Cmd, bool) {
	seats := maps.Keys(m.pending)
	if len(seats) == 0 {
		seats = []model.Seat{m.cursor}
	}
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Column < seats[j].Column
	})

	var booked []model.Seat
	var failure error
	for _, seat := range seats {
		if err := m.booker.Reserve(m.movie, m.show, seat); err != nil {
			failure = err
			break
		}
		booked = append(booked, seat)
	}
	m.pending = make(map[model.Seat]bool)

	if len(booked) > 0 {
		booking := m.booker.Confirm(m.movie, m.show, booked)
		m.lastBooking = &booking
	}
	if failure != nil {
		return m, errCmd(fmt.Errorf("could not book %s: %w", seatFailureLabel(failure), failure)), true
	}
	m.state = stateSummary
	return m, nil, true
}

func (m appModel) goBack() appModel {
	switch m.state {
	case stateSelectShow:
		m.state = stateSelectMovie
	case stateSelectSeats:
		m.pending = make(map[model.Seat]bool)
		m.state = stateSelectShow
	case stateSummary:
		m.show = nil
		m.state = stateSelectMovie
	case stateError:
		m.state = m.lastState
	}
	return m
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	listPtr.SetFilterText(listPtr.FilterValue() + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := trimLastRune(listPtr.FilterValue())
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectMovie:
		return &m.movieList
	case stateSelectShow:
		return &m.showList
	default:
		return nil
	}
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := max(6, m.height-6)
	m.movieList.SetSize(m.width, h)
	m.showList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func seatFailureLabel(err error) string {
	var seatErr *model.SeatError
	if errors.As(err, &seatErr) {
		return seatErr.Seat.String()
	}
	return "seat"
}

type movieItem struct {
	movie *model.Movie
}

func (m movieItem) Title() string {
	return m.movie.Title
}

func (m movieItem) Description() string {
	available := 0
	for _, show := range m.movie.Shows {
		available += show.Seats.AvailableSeats()
	}
	return fmt.Sprintf("%d shows • %d seats available", len(m.movie.Shows), available)
}

func (m movieItem) FilterValue() string {
	return strings.ToLower(m.movie.Title)
}

type showItem struct {
	show *model.Show
}

func (s showItem) Title() string {
	return s.show.Time
}

func (s showItem) Description() string {
	seats := s.show.Seats
	if seats.AvailableSeats() == 0 {
		return "Sold out"
	}
	return fmt.Sprintf("Available Seats: %d of %d", seats.AvailableSeats(), seats.Capacity())
}

func (s showItem) FilterValue() string {
	return strings.ToLower(s.show.Time)
}

func buildMovieItems(movies []*model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, movie := range movies {
		items = append(items, movieItem{movie: movie})
	}
	return items
}

func buildShowItems(movie *model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movie.Shows))
	for _, show := range movie.Shows {
		items = append(items, showItem{show: show})
	}
	return items
}
