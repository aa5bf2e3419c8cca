package model

import (
	"strings"
	"testing"
)

func TestNewMovie_ShowsInOrder(t *testing.T) {
	movie := NewMovie("Inception", []string{"11:00 AM", "3:00 PM", "9:00 PM"}, DefaultRows, DefaultCols)

	if len(movie.Shows) != 3 {
		t.Fatalf("expected 3 shows, got %d", len(movie.Shows))
	}
	for _, show := range movie.Shows {
		if got := show.Seats.AvailableSeats(); got != 50 {
			t.Fatalf("expected 50 available seats for %s, got %d", show.Time, got)
		}
	}

	var b strings.Builder
	if err := movie.DisplayShows(&b); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	want := "\nAvailable Shows for \"Inception\":\n" +
		"1. 11:00 AM | Available Seats: 50\n" +
		"2. 3:00 PM | Available Seats: 50\n" +
		"3. 9:00 PM | Available Seats: 50\n"
	if b.String() != want {
		t.Fatalf("expected %q, got %q", want, b.String())
	}
}

func TestMovie_ShowsHaveIndependentSeats(t *testing.T) {
	movie := NewMovie("Inception", []string{"11:00 AM", "3:00 PM"}, 2, 2)
	if err := movie.Shows[0].Seats.Reserve(1, 1); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := movie.Shows[1].Seats.AvailableSeats(); got != 4 {
		t.Fatalf("expected second show untouched, got %d available", got)
	}
}

func TestMovie_ShowChoice(t *testing.T) {
	movie := NewMovie("Inception", []string{"11:00 AM", "3:00 PM"}, 1, 1)

	if _, ok := movie.Show(0); ok {
		t.Fatal("expected choice 0 to be rejected")
	}
	if _, ok := movie.Show(3); ok {
		t.Fatal("expected choice 3 to be rejected")
	}
	show, ok := movie.Show(2)
	if !ok || show.Time != "3:00 PM" {
		t.Fatalf("expected 3:00 PM, got %+v", show)
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog(DefaultRows, DefaultCols)
	if catalog.Len() != 3 {
		t.Fatalf("expected 3 movies, got %d", catalog.Len())
	}
	movie, ok := catalog.Movie(2)
	if !ok || movie.Title != "Inception" {
		t.Fatalf("expected Inception, got %+v", movie)
	}
	if _, ok := catalog.Movie(4); ok {
		t.Fatal("expected choice 4 to be rejected")
	}
}
