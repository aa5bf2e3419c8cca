package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cinema-booking-cli/model"
)

var (
	// ErrExit is returned by SelectMovie when the exit entry is chosen.
	ErrExit = errors.New("exit requested")
	// ErrMaxAttemptsExceeded is returned when a seat slot ran out of attempts.
	ErrMaxAttemptsExceeded = errors.New("max attempts exceeded")
)

// SelectionError is returned for a menu choice outside the listed entries.
type SelectionError struct {
	Menu   string
	Choice int
	Max    int
}

func (e *SelectionError) Error() string {
	if e == nil {
		return "invalid selection"
	}
	return fmt.Sprintf("invalid %s selection %d: want 1-%d", e.Menu, e.Choice, e.Max)
}

// IsInvalidSelection reports whether err is a SelectionError.
func IsInvalidSelection(err error) bool {
	var selErr *SelectionError
	return errors.As(err, &selErr)
}

// Booker applies the booking rules to a catalog and keeps the confirmations
// of the current session in memory.
type Booker struct {
	catalog     *model.Catalog
	maxAttempts int
	logger      logrus.FieldLogger
	now         func() time.Time
	newID       func() string
	bookings    []model.Booking
}

type Option func(*Booker)

// WithMaxAttempts bounds the reserve attempts per seat slot. Zero or less
// leaves it unbounded.
func WithMaxAttempts(n int) Option {
	return func(b *Booker) { b.maxAttempts = n }
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(b *Booker) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *Booker) {
		if now != nil {
			b.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(b *Booker) {
		if newID != nil {
			b.newID = newID
		}
	}
}

// NewBooker wraps catalog. A nil catalog gets the default 5x10 line-up.
func NewBooker(catalog *model.Catalog, opts ...Option) *Booker {
	if catalog == nil {
		catalog = model.DefaultCatalog(model.DefaultRows, model.DefaultCols)
	}
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	b := &Booker{
		catalog: catalog,
		logger:  silent,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Booker) Catalog() *model.Catalog { return b.catalog }

func (b *Booker) Movies() []*model.Movie { return b.catalog.Movies }

// ExitChoice is the menu number one past the last movie.
func (b *Booker) ExitChoice() int { return b.catalog.Len() + 1 }

func (b *Booker) MaxAttempts() int { return b.maxAttempts }

// SelectMovie resolves a 1-based movie menu choice.
func (b *Booker) SelectMovie(choice int) (*model.Movie, error) {
	if choice == b.ExitChoice() {
		return nil, ErrExit
	}
	movie, ok := b.catalog.Movie(choice)
	if !ok {
		return nil, &SelectionError{Menu: "movie", Choice: choice, Max: b.catalog.Len()}
	}
	return movie, nil
}

// SelectShow resolves a 1-based show menu choice for movie.
func (b *Booker) SelectShow(movie *model.Movie, choice int) (*model.Show, error) {
	show, ok := movie.Show(choice)
	if !ok {
		return nil, &SelectionError{Menu: "showtime", Choice: choice, Max: len(movie.Shows)}
	}
	return show, nil
}

// Reserve books one seat of show.
func (b *Booker) Reserve(movie *model.Movie, show *model.Show, seat model.Seat) error {
	entry := b.logger.WithFields(logrus.Fields{
		"movie": movie.Title,
		"show":  show.Time,
		"row":   seat.Row,
		"col":   seat.Column,
	})
	if err := show.Seats.Reserve(seat.Row, seat.Column); err != nil {
		entry.WithError(err).Info("seat reservation rejected")
		return err
	}
	entry.WithField("available", show.Seats.AvailableSeats()).Debug("seat reserved")
	return nil
}

// ReserveWithRetry asks next for seats until one can be reserved. Every
// rejected seat is reported to onFailure. An error from next ends the loop
// and is returned as is. With an attempt bound, running out returns
// ErrMaxAttemptsExceeded.
func (b *Booker) ReserveWithRetry(
	ctx context.Context,
	movie *model.Movie,
	show *model.Show,
	next func(attempt int) (model.Seat, error),
	onFailure func(seat model.Seat, err error),
) (model.Seat, error) {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return model.Seat{}, err
		}
		seat, err := next(attempt)
		if err != nil {
			return model.Seat{}, err
		}
		err = b.Reserve(movie, show, seat)
		if err == nil {
			return seat, nil
		}
		if onFailure != nil {
			onFailure(seat, err)
		}
		if b.maxAttempts > 0 && attempt >= b.maxAttempts {
			b.logger.WithFields(logrus.Fields{
				"movie":    movie.Title,
				"show":     show.Time,
				"attempts": attempt,
			}).Warn("seat slot abandoned")
			return model.Seat{}, fmt.Errorf("%w: gave up after %d attempts", ErrMaxAttemptsExceeded, attempt)
		}
	}
}

// Confirm records a completed booking round.
func (b *Booker) Confirm(movie *model.Movie, show *model.Show, seats []model.Seat) model.Booking {
	booking := model.Booking{
		ID:        b.newID(),
		Movie:     movie.Title,
		Show:      show.Time,
		Seats:     append([]model.Seat(nil), seats...),
		CreatedAt: b.now(),
	}
	b.bookings = append(b.bookings, booking)
	b.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"movie":      booking.Movie,
		"show":       booking.Show,
		"seats":      len(booking.Seats),
	}).Info("booking confirmed")
	return booking
}

// Bookings returns the confirmations made so far, oldest first.
func (b *Booker) Bookings() []model.Booking {
	return append([]model.Booking(nil), b.bookings...)
}
