package tmdb

import (
	"slices"
	"strconv"
)

// MediaType distinguishes movies from TV shows
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Media is the behaviour shared by *Movie and *TVShow
type Media interface {
	MediaID() int
	MediaTitle() string
	MediaType() MediaType
	MediaOverview() string
	ReleaseYear() int
	GenreNames() []string
	AllGenreIDs() []int
	Rating() float64
	Images() ImagePaths
	PosterURL(size PosterSize) (string, error)
	BackdropURL(size BackdropSize) (string, error)
}

var (
	_ Media = (*Movie)(nil)
	_ Media = (*TVShow)(nil)
)

// ImagePaths holds the CDN-relative image paths of a media record
type ImagePaths struct {
	Poster   string
	Backdrop string
}

// Movies returns the movies of a listing as Media
func Movies(movies []Movie) []Media {
	out := make([]Media, len(movies))
	for i := range movies {
		out[i] = &movies[i]
	}
	return out
}

// TVShows returns the shows of a listing as Media
func TVShows(shows []TVShow) []Media {
	out := make([]Media, len(shows))
	for i := range shows {
		out[i] = &shows[i]
	}
	return out
}

// yearOf parses the year of a YYYY-MM-DD date
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func genreNames(genres []Genre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

func genreIDs(genres []Genre, ids []int) []int {
	out := slices.Clone(ids)
	if out == nil {
		out = make([]int, 0, len(genres))
	}
	for _, g := range genres {
		if !slices.Contains(out, g.ID) {
			out = append(out, g.ID)
		}
	}
	return out
}
