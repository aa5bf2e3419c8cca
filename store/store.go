package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cinema-booking-cli/model"
)

const (
	appDir          = "cinema-booking-cli"
	catalogFileName = "catalog.json"
)

// ErrEmptyCatalog is returned when a catalog file lists no movies.
var ErrEmptyCatalog = errors.New("catalog has no movies")

type catalogFile struct {
	Movies []catalogMovie `json:"movies"`
}

type catalogMovie struct {
	Title string   `json:"title"`
	Shows []string `json:"shows"`
}

// DefaultCatalogPath is where `catalog init` writes and where the booking
// loop looks when no path is given.
func DefaultCatalogPath() (string, error) {
	return configPath(catalogFileName)
}

// LoadCatalog reads a catalog file and builds fresh rows x cols seat grids
// for every show.
func LoadCatalog(path string, rows int, cols int) (*model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid catalog format in %s: %w", path, err)
	}
	if len(file.Movies) == 0 {
		return nil, ErrEmptyCatalog
	}

	catalog := &model.Catalog{}
	for i, movie := range file.Movies {
		title := strings.TrimSpace(movie.Title)
		if title == "" {
			return nil, fmt.Errorf("movie %d: title is required", i+1)
		}
		var times []string
		for _, show := range movie.Shows {
			if t := strings.TrimSpace(show); t != "" {
				times = append(times, t)
			}
		}
		if len(times) == 0 {
			return nil, fmt.Errorf("movie %q: at least one show is required", title)
		}
		catalog.Movies = append(catalog.Movies, model.NewMovie(title, times, rows, cols))
	}
	return catalog, nil
}

// SaveCatalog writes the titles and show times of catalog. Seat state is
// not part of the file.
func SaveCatalog(path string, catalog *model.Catalog) error {
	if catalog == nil || catalog.Len() == 0 {
		return ErrEmptyCatalog
	}
	file := catalogFile{}
	for _, movie := range catalog.Movies {
		entry := catalogMovie{Title: movie.Title}
		for _, show := range movie.Shows {
			entry.Shows = append(entry.Shows, show.Time)
		}
		file.Movies = append(file.Movies, entry)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// ResolveCatalog picks the catalog for a session: an explicit path must
// load, otherwise the default path is used when present, otherwise the
// built-in line-up.
func ResolveCatalog(path string, rows int, cols int) (*model.Catalog, string, error) {
	if strings.TrimSpace(path) != "" {
		catalog, err := LoadCatalog(path, rows, cols)
		if err != nil {
			return nil, "", err
		}
		return catalog, path, nil
	}

	defaultPath, err := DefaultCatalogPath()
	if err == nil {
		catalog, loadErr := LoadCatalog(defaultPath, rows, cols)
		if loadErr == nil {
			return catalog, defaultPath, nil
		}
		if !os.IsNotExist(loadErr) {
			return nil, "", loadErr
		}
	}
	return model.DefaultCatalog(rows, cols), "", nil
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}
