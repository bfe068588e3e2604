package tmdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleFormatter_FormatMediaList(t *testing.T) {
	f := NewConsoleFormatter(DefaultImageConfig())

	assert.Equal(t, "No media found", f.FormatMediaList("Popular", nil, FormatOptions{}))

	media := []Media{
		&Movie{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", VoteAverage: 8.4, PosterPath: "/p.jpg",
			Genres: []Genre{{ID: 18, Name: "Drama"}}},
		&TVShow{ID: 1396, Title: "Breaking Bad", FirstAirDate: "2008-01-20"},
	}

	out := f.FormatMediaList("Popular", media, FormatOptions{ShowDetails: true, ShowImages: true})

	assert.Contains(t, out, "Popular (2):")
	assert.Contains(t, out, "├── Fight Club (1999) [Movie]")
	assert.Contains(t, out, "╰── Breaking Bad (2008) [TV]")
	assert.Contains(t, out, "ID: 550 | Rating: 8.4 | Genres: Drama")
	assert.Contains(t, out, "Poster: https://image.tmdb.org/t/p/w500/p.jpg")
	assert.Equal(t, 1, strings.Count(out, "Poster:"))
}

func TestConsoleFormatter_FormatMovie(t *testing.T) {
	f := NewConsoleFormatter(DefaultImageConfig())

	out := f.FormatMovie(&Movie{
		ID:            550,
		Title:         "Fight Club",
		OriginalTitle: "Fight Club",
		ReleaseDate:   "1999-10-15",
		Runtime:       139,
		Budget:        63000000,
		VoteAverage:   8.433,
		VoteCount:     30000,
		Tagline:       "Mischief. Mayhem. Soap.",
		Overview:      "A ticking-time-bomb insomniac...",
	})

	assert.Contains(t, out, "Fight Club (1999) [Movie]")
	assert.Contains(t, out, "│ Mischief. Mayhem. Soap.")
	assert.Contains(t, out, "2h 19m")
	assert.Contains(t, out, "$63,000,000")
	assert.Contains(t, out, "8.4/10 (30000 votes)")
	assert.Contains(t, out, "A ticking-time-bomb insomniac...")
	assert.NotContains(t, out, "Original title")
	assert.NotContains(t, out, "Revenue")
	assert.NotContains(t, out, "Poster")
}

func TestConsoleFormatter_FormatTVShow(t *testing.T) {
	f := NewConsoleFormatter(DefaultImageConfig())

	out := f.FormatTVShow(&TVShow{
		ID:               1396,
		Title:            "Breaking Bad",
		FirstAirDate:     "2008-01-20",
		NumberOfSeasons:  5,
		NumberOfEpisodes: 62,
		Networks:         []Network{{Name: "AMC"}},
		NextEpisodeToAir: &Episode{Name: "Pilot", SeasonNumber: 6, EpisodeNumber: 1, AirDate: "2030-01-01"},
	})

	assert.Contains(t, out, "Breaking Bad (2008) [TV]")
	assert.Contains(t, out, "AMC")
	assert.Contains(t, out, "S06E01 Pilot (2030-01-01)")
	assert.Contains(t, out, "62")
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "", money(0))
	assert.Equal(t, "$999", money(999))
	assert.Equal(t, "$1,000", money(1000))
	assert.Equal(t, "$2,923,706,026", money(2923706026))
}

func TestConsoleFormatter_FormatMediaListCustomCDN(t *testing.T) {
	f := NewConsoleFormatter(ImageConfig{BaseURL: "https://cdn.example.com/img/"})

	out := f.FormatMediaList("Popular", []Media{&Movie{ID: 550, Title: "Fight Club", PosterPath: "/p.jpg"}},
		FormatOptions{ShowImages: true, ImageSize: PosterW185})

	assert.Contains(t, out, "Poster: https://cdn.example.com/img/w185/p.jpg")
	assert.NotContains(t, out, "image.tmdb.org")
}
