package model

import "time"

// Booking confirms one completed booking round. It lives only in memory.
type Booking struct {
	ID        string    `json:"id"`
	Movie     string    `json:"movie"`
	Show      string    `json:"show"`
	Seats     []Seat    `json:"seats"`
	CreatedAt time.Time `json:"createdAt"`
}
