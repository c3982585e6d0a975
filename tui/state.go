package tui

type state int

const (
	searchState state = iota
	filterState
	detailsState
	favoritesState
)
