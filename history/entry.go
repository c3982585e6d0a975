package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/cinedex/cinedex/omdb"
)

// Entry is a single viewed title.
type Entry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Year     string    `json:"year"`
	Type     omdb.Type `json:"type"`
	Views    int       `json:"views"`
	ViewedAt time.Time `json:"viewed_at"`
}

func (e *Entry) key() string {
	return strings.ToLower(e.ID)
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s (%s)", e.Title, e.Year)
}

func newEntry(details *omdb.Details) *Entry {
	return &Entry{
		ID:       strings.TrimSpace(details.ID),
		Title:    details.Title,
		Year:     details.Year,
		Type:     details.Type,
		Views:    1,
		ViewedAt: time.Now(),
	}
}
