// Package omdb is a client for OMDb-compatible movie metadata APIs.
package omdb

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// Type is the kind of title a result describes.
type Type string

const (
	Movie   Type = "movie"
	Series  Type = "series"
	Episode Type = "episode"
)

// Types lists every valid Type in display order.
var Types = []Type{Movie, Series, Episode}

// ParseType converts user input into a Type. An empty string is the absent type.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}

	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}

	return "", fmt.Errorf("unknown type %q, expected one of movie, series, episode", s)
}

// Item is a single search hit.
type Item struct {
	ID     string `json:"imdbID" jsonschema:"description=IMDb identifier of the title."`
	Title  string `json:"Title" jsonschema:"description=Display title."`
	Poster string `json:"Poster,omitempty" jsonschema:"description=Poster image URL. N/A when the API has none."`
	Type   Type   `json:"Type" jsonschema:"enum=movie,enum=series,enum=episode"`
	Year   string `json:"Year" jsonschema:"description=Release year or year range (e.g. 2008-2013)."`
}

// PosterURL returns the poster URL when the API provided a usable one.
func (i Item) PosterURL() mo.Option[string] {
	if i.Poster == "" || i.Poster == "N/A" {
		return mo.None[string]()
	}
	return mo.Some(i.Poster)
}

// Page is one page of search results.
type Page struct {
	Items      []Item `json:"items"`
	TotalCount int    `json:"totalCount"`
}

// TotalPages is the number of pages needed to hold every result.
func (p *Page) TotalPages() int {
	return TotalPages(p.TotalCount)
}

// Rating is a score from one rating source.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// Details is the full record of a title.
type Details struct {
	ID         string   `json:"imdbID"`
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Rated      string   `json:"Rated"`
	Released   string   `json:"Released"`
	Runtime    string   `json:"Runtime"`
	Genre      string   `json:"Genre"`
	Director   string   `json:"Director"`
	Writer     string   `json:"Writer"`
	Actors     string   `json:"Actors"`
	Plot       string   `json:"Plot"`
	Language   string   `json:"Language"`
	Country    string   `json:"Country"`
	Awards     string   `json:"Awards"`
	Poster     string   `json:"Poster"`
	Ratings    []Rating `json:"Ratings"`
	Metascore  string   `json:"Metascore"`
	IMDbRating string   `json:"imdbRating"`
	IMDbVotes  string   `json:"imdbVotes"`
	Type       Type     `json:"Type"`
	DVD        string   `json:"DVD,omitempty"`
	BoxOffice  string   `json:"BoxOffice,omitempty"`
	Production string   `json:"Production,omitempty"`
	Website    string   `json:"Website,omitempty"`
}

// URL is the IMDb page of the title.
func (d *Details) URL() string {
	return IMDbURL(d.ID)
}

// IMDbURL is the IMDb page of the title with the given identifier.
func IMDbURL(id string) string {
	return "https://www.imdb.com/title/" + normalizedID(id) + "/"
}

// Item reduces the record to its search-hit form.
func (d *Details) Item() Item {
	return Item{
		ID:     d.ID,
		Title:  d.Title,
		Poster: d.Poster,
		Type:   d.Type,
		Year:   d.Year,
	}
}

type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func (e envelope) ok() bool {
	return strings.EqualFold(e.Response, "True")
}

type searchResponse struct {
	envelope
	TotalResults string `json:"totalResults"`
	Search       []Item `json:"Search"`
}

type detailsResponse struct {
	envelope
	Details
}
