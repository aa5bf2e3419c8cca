package model

// Show is one screening time of a movie with its own seat grid.
type Show struct {
	Time  string   `json:"time"`
	Seats *SeatMap `json:"-"`
}

func NewShow(time string, rows int, cols int) *Show {
	return &Show{
		Time:  time,
		Seats: NewSeatMap(rows, cols),
	}
}
