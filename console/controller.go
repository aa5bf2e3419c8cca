// Package console runs the line-oriented booking loop: pick a movie, pick a
// show, say how many seats, then enter each seat by row and number.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cinema-booking-cli/model"
	"cinema-booking-cli/service"
)

type loopState int

const (
	stateSelectMovie loopState = iota
	stateSelectShow
	stateSelectSeatCount
	stateBookSeats
	stateSummary
	stateExit
)

// Styles colours the status lines of the loop.
type Styles struct {
	Title   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// PlainStyles leaves every line untouched.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Title: plain, Error: plain, Success: plain}
}

type Option func(*Controller)

func WithStyles(styles Styles) Option {
	return func(c *Controller) { c.styles = styles }
}

// Controller drives one interactive session over a Booker.
type Controller struct {
	booker *service.Booker
	in     Input
	out    io.Writer
	styles Styles

	state  loopState
	movie  *model.Movie
	show   *model.Show
	count  int
	booked []model.Seat

	writeErr error
}

func NewController(booker *service.Booker, in Input, out io.Writer, opts ...Option) *Controller {
	c := &Controller{
		booker: booker,
		in:     in,
		out:    out,
		styles: DefaultStyles(),
		state:  stateSelectMovie,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run loops until the exit entry is chosen or input ends. Bad choices and
// bad seats are reported and asked again; only I/O failures and context
// cancellation are returned.
func (c *Controller) Run(ctx context.Context) error {
	for c.state != stateExit {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch c.state {
		case stateSelectMovie:
			c.state, err = c.selectMovie()
		case stateSelectShow:
			c.state, err = c.selectShow()
		case stateSelectSeatCount:
			c.state, err = c.selectSeatCount()
		case stateBookSeats:
			c.state, err = c.bookSeats(ctx)
		case stateSummary:
			c.state, err = c.summary()
		}

		if err == nil {
			err = c.writeErr
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (c *Controller) selectMovie() (loopState, error) {
	c.println("")
	c.println(c.styles.Title.Render("Welcome to the Movie Ticket Booking System"))
	c.println(strings.Repeat("-", 45))
	for i, movie := range c.booker.Movies() {
		c.printf("%d. %s\n", i+1, movie.Title)
	}
	c.printf("%d. Exit\n", c.booker.ExitChoice())

	choice, err := c.readInt("Select a movie (number): ")
	if err != nil {
		return stateSelectMovie, err
	}

	movie, err := c.booker.SelectMovie(choice)
	switch {
	case errors.Is(err, service.ErrExit):
		c.println("")
		c.println("Thank you for visiting! Have a great day!")
		c.println("")
		return stateExit, nil
	case err != nil:
		c.println(c.styles.Error.Render("Invalid movie selection! Try again."))
		c.println("")
		return stateSelectMovie, nil
	}
	c.movie = movie
	return stateSelectShow, nil
}

func (c *Controller) selectShow() (loopState, error) {
	if err := c.movie.DisplayShows(c.out); err != nil {
		return stateSelectShow, err
	}

	choice, err := c.readInt("Select a showtime (number): ")
	if err != nil {
		return stateSelectShow, err
	}

	show, err := c.booker.SelectShow(c.movie, choice)
	if err != nil {
		c.println(c.styles.Error.Render("Invalid showtime selection! Try again."))
		c.println("")
		return stateSelectMovie, nil
	}
	c.show = show
	if err := show.Seats.Display(c.out); err != nil {
		return stateSelectShow, err
	}
	return stateSelectSeatCount, nil
}

func (c *Controller) selectSeatCount() (loopState, error) {
	count, err := c.readInt("\nHow many seats would you like to book? ")
	if err != nil {
		return stateSelectSeatCount, err
	}
	c.count = count
	c.booked = nil
	if count <= 0 {
		return stateSummary, nil
	}
	return stateBookSeats, nil
}

func (c *Controller) bookSeats(ctx context.Context) (loopState, error) {
	seats := c.show.Seats
	for slot := len(c.booked) + 1; slot <= c.count; slot++ {
		next := func(int) (model.Seat, error) {
			c.printf("\nBooking Seat %d of %d:\n", slot, c.count)
			row, err := c.readInt(fmt.Sprintf("Enter Row (1-%d): ", seats.Rows()))
			if err != nil {
				return model.Seat{}, err
			}
			col, err := c.readInt(fmt.Sprintf("Enter Seat Number (1-%d): ", seats.Cols()))
			if err != nil {
				return model.Seat{}, err
			}
			return model.Seat{Row: row, Column: col}, nil
		}
		onFailure := func(_ model.Seat, err error) {
			c.println(c.styles.Error.Render(seatFailureMessage(err)))
			c.println("Failed to book this seat. Try another one.")
		}

		seat, err := c.booker.ReserveWithRetry(ctx, c.movie, c.show, next, onFailure)
		if errors.Is(err, service.ErrMaxAttemptsExceeded) {
			c.println(c.styles.Error.Render(fmt.Sprintf(
				"No attempts left for seat %d; finishing with %d of %d seats booked.",
				slot, len(c.booked), c.count,
			)))
			break
		}
		if err != nil {
			return stateBookSeats, err
		}
		c.booked = append(c.booked, seat)
		c.println(c.styles.Success.Render(fmt.Sprintf(
			"Seat booked successfully at Row %d, Seat %d!", seat.Row, seat.Column,
		)))
	}
	return stateSummary, nil
}

func (c *Controller) summary() (loopState, error) {
	c.println("")
	c.println("Updated Seat Map:")
	if err := c.show.Seats.Display(c.out); err != nil {
		return stateSummary, err
	}

	c.println("")
	c.println(c.styles.Success.Render(fmt.Sprintf("Booking Confirmed for: \"%s\" at %s", c.movie.Title, c.show.Time)))
	c.println("Enjoy your movie!")

	if len(c.booked) > 0 {
		booking := c.booker.Confirm(c.movie, c.show, c.booked)
		c.println(bookingTable(booking))
	}

	c.movie, c.show, c.count, c.booked = nil, nil, 0, nil
	return stateSelectMovie, nil
}

// readInt asks again on tokens that are not numbers.
func (c *Controller) readInt(label string) (int, error) {
	for {
		n, err := c.in.ReadInt(label)
		if errors.Is(err, ErrNotANumber) {
			c.println(c.styles.Error.Render("Please enter a number."))
			continue
		}
		return n, err
	}
}

func (c *Controller) printf(format string, args ...any) {
	if c.writeErr != nil {
		return
	}
	_, c.writeErr = fmt.Fprintf(c.out, format, args...)
}

func (c *Controller) println(line string) {
	c.printf("%s\n", line)
}

func seatFailureMessage(err error) string {
	switch {
	case model.IsOutOfRange(err):
		return "Invalid seat selection!"
	case model.IsAlreadyBooked(err):
		return "Seat already booked!"
	default:
		return err.Error()
	}
}

func bookingTable(booking model.Booking) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Row", "Seat"})
	for i, seat := range booking.Seats {
		t.AppendRow(table.Row{i + 1, seat.Row, seat.Column})
	}
	t.AppendFooter(table.Row{"Ref", booking.ID, ""})
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	return t.Render()
}
