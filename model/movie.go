package model

import (
	"fmt"
	"io"
	"strings"
)

// Movie is a title and its shows in display order.
type Movie struct {
	Title string  `json:"title"`
	Shows []*Show `json:"shows"`
}

// NewMovie creates one show per time label, each with a fresh rows x cols grid.
func NewMovie(title string, times []string, rows int, cols int) *Movie {
	movie := &Movie{Title: title}
	for _, t := range times {
		movie.Shows = append(movie.Shows, NewShow(t, rows, cols))
	}
	return movie
}

// Show returns the show at a 1-based menu choice.
func (m *Movie) Show(choice int) (*Show, bool) {
	if choice < 1 || choice > len(m.Shows) {
		return nil, false
	}
	return m.Shows[choice-1], true
}

// DisplayShows writes every show with its 1-based index and open seat count.
func (m *Movie) DisplayShows(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nAvailable Shows for \"%s\":\n", m.Title)
	for i, show := range m.Shows {
		fmt.Fprintf(&b, "%d. %s | Available Seats: %d\n", i+1, show.Time, show.Seats.AvailableSeats())
	}
	_, err := io.WriteString(w, b.String())
	return err
}
