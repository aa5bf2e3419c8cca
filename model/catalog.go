package model

// Catalog holds every movie on offer. Its structure is fixed once built;
// only seat state inside the shows changes.
type Catalog struct {
	Movies []*Movie `json:"movies"`
}

// Movie returns the movie at a 1-based menu choice.
func (c *Catalog) Movie(choice int) (*Movie, bool) {
	if choice < 1 || choice > len(c.Movies) {
		return nil, false
	}
	return c.Movies[choice-1], true
}

func (c *Catalog) Len() int { return len(c.Movies) }

// DefaultCatalog builds the stock line-up with rows x cols seat grids.
func DefaultCatalog(rows int, cols int) *Catalog {
	return &Catalog{
		Movies: []*Movie{
			NewMovie("Avengers: Endgame", []string{"10:00 AM", "1:00 PM", "6:00 PM"}, rows, cols),
			NewMovie("Inception", []string{"11:00 AM", "3:00 PM", "9:00 PM"}, rows, cols),
			NewMovie("The Dark Knight", []string{"12:00 PM", "4:00 PM", "8:00 PM"}, rows, cols),
		},
	}
}
