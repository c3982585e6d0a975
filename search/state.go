package search

import (
	"slices"

	"github.com/cinedex/cinedex/omdb"
)

// State is the controller's position in its lifecycle.
type State int

const (
	// Idle means no query has been issued yet, or the last one was withdrawn.
	Idle State = iota
	// Loading means a request is in flight.
	Loading
	// Loaded means the latest request succeeded. The list may be empty.
	Loaded
	// Error means the latest request failed. Previously loaded items are kept.
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// Snapshot is a read-only copy of the controller's state.
type Snapshot struct {
	// Revision increases with every change. Observers never see a revision
	// lower than one they already received.
	Revision uint64

	State State
	// Text is the latest recorded input, possibly blank.
	Text string
	// Query is the text the current results belong to.
	Query      string
	Filters    omdb.Filters
	Page       int
	TotalPages int
	Items      []omdb.Item
	Err        error
}

// HasMore reports whether another page can be requested.
func (s Snapshot) HasMore() bool {
	return s.Page < s.TotalPages
}

func (s Snapshot) clone() Snapshot {
	s.Items = slices.Clone(s.Items)
	return s
}
