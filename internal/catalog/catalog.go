package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"movie-lookup-service/internal/models"
)

// Catalog holds the movie records and answers title substring queries.
// Load replaces the whole record set; searches afterwards are read-only
// and safe for concurrent callers.
type Catalog struct {
	mu      sync.RWMutex
	records []models.MovieRecord
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// Load replaces the catalog contents with the given records. Duplicate
// titles are allowed and stored as-is.
func (c *Catalog) Load(records []models.MovieRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = make([]models.MovieRecord, len(records))
	copy(c.records, records)
}

// LoadFromFile reads a JSON array of movie records and loads it.
func (c *Catalog) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}
	var records []models.MovieRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}
	c.Load(records)
	return nil
}

// Search returns every record whose title contains query as a
// case-insensitive substring, in catalog order. No trimming or
// normalization is applied to the query; an empty result is a nil-safe
// empty slice, never an error.
func (c *Catalog) Search(query string) []models.MovieRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q := strings.ToLower(query)
	results := make([]models.MovieRecord, 0)
	for _, rec := range c.records {
		if strings.Contains(strings.ToLower(rec.Title), q) {
			results = append(results, rec)
		}
	}
	return results
}

// Len returns the number of loaded records.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// DefaultRecords is the built-in seed used when no catalog file is
// configured.
func DefaultRecords() []models.MovieRecord {
	return []models.MovieRecord{
		{Title: "Inception", Genre: "Sci-Fi", Rating: "8.8", DownloadLink: "http://example.com/inception"},
		{Title: "The Matrix", Genre: "Action", Rating: "8.7", DownloadLink: "http://example.com/matrix"},
		{Title: "Interstellar", Genre: "Sci-Fi", Rating: "8.6", DownloadLink: "http://example.com/interstellar"},
	}
}
