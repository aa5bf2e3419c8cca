package model

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	DefaultRows = 5
	DefaultCols = 10
)

// Seat identifies one bookable seat. Row and Column are 1-indexed.
type Seat struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (s Seat) String() string {
	return fmt.Sprintf("R%d-S%d", s.Row, s.Column)
}

// SeatErrorKind classifies a failed reservation.
type SeatErrorKind int

const (
	SeatOutOfRange SeatErrorKind = iota + 1
	SeatAlreadyBooked
)

// SeatError is returned when a seat cannot be read or reserved.
type SeatError struct {
	Kind SeatErrorKind
	Seat Seat
}

func (e *SeatError) Error() string {
	if e == nil {
		return "seat error"
	}
	switch e.Kind {
	case SeatOutOfRange:
		return fmt.Sprintf("seat %s out of range", e.Seat)
	case SeatAlreadyBooked:
		return fmt.Sprintf("seat %s already booked", e.Seat)
	default:
		return fmt.Sprintf("seat %s unavailable", e.Seat)
	}
}

// IsOutOfRange reports whether err is a SeatError for coordinates outside the grid.
func IsOutOfRange(err error) bool {
	var seatErr *SeatError
	if errors.As(err, &seatErr) {
		return seatErr.Kind == SeatOutOfRange
	}
	return false
}

// IsAlreadyBooked reports whether err is a SeatError for a seat that was taken.
func IsAlreadyBooked(err error) bool {
	var seatErr *SeatError
	if errors.As(err, &seatErr) {
		return seatErr.Kind == SeatAlreadyBooked
	}
	return false
}

// SeatMap is a fixed rows x cols grid of seat flags stored row-major.
// A seat only ever moves from available to booked.
type SeatMap struct {
	rows   int
	cols   int
	booked []bool
}

// NewSeatMap builds an all-available grid. Non-positive dimensions fall back
// to DefaultRows and DefaultCols.
func NewSeatMap(rows int, cols int) *SeatMap {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	return &SeatMap{
		rows:   rows,
		cols:   cols,
		booked: make([]bool, rows*cols),
	}
}

func (s *SeatMap) Rows() int     { return s.rows }
func (s *SeatMap) Cols() int     { return s.cols }
func (s *SeatMap) Capacity() int { return s.rows * s.cols }

func (s *SeatMap) index(row int, col int) (int, error) {
	if row < 1 || row > s.rows || col < 1 || col > s.cols {
		return 0, &SeatError{Kind: SeatOutOfRange, Seat: Seat{Row: row, Column: col}}
	}
	return (row-1)*s.cols + (col - 1), nil
}

// IsBooked reports the state of a 1-indexed seat.
func (s *SeatMap) IsBooked(row int, col int) (bool, error) {
	i, err := s.index(row, col)
	if err != nil {
		return false, err
	}
	return s.booked[i], nil
}

// Reserve books a 1-indexed seat. On error the grid is left untouched.
func (s *SeatMap) Reserve(row int, col int) error {
	i, err := s.index(row, col)
	if err != nil {
		return err
	}
	if s.booked[i] {
		return &SeatError{Kind: SeatAlreadyBooked, Seat: Seat{Row: row, Column: col}}
	}
	s.booked[i] = true
	return nil
}

// AvailableSeats counts the seats still open. It is recomputed on every call.
func (s *SeatMap) AvailableSeats() int {
	count := 0
	for _, booked := range s.booked {
		if !booked {
			count++
		}
	}
	return count
}

// BookedSeats lists booked seats in row-major order.
func (s *SeatMap) BookedSeats() []Seat {
	var seats []Seat
	for i, booked := range s.booked {
		if booked {
			seats = append(seats, Seat{Row: i/s.cols + 1, Column: i%s.cols + 1})
		}
	}
	return seats
}

// Display writes the plain text grid: a header of column numbers, then one
// line per row with "-" for open seats and "X" for booked ones.
func (s *SeatMap) Display(w io.Writer) error {
	var b strings.Builder
	b.WriteString("\n    ")
	for c := 1; c <= s.cols; c++ {
		fmt.Fprintf(&b, "%2d", c)
	}
	b.WriteString("\n")
	for r := 0; r < s.rows; r++ {
		fmt.Fprintf(&b, "R%d ", r+1)
		for c := 0; c < s.cols; c++ {
			if s.booked[r*s.cols+c] {
				b.WriteString("X ")
			} else {
				b.WriteString("- ")
			}
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
