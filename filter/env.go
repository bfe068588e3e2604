package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/s0up4200/eiga/tmdb"
)

const dateLayout = "2006-01-02"

// addHelperFunctions adds the media independent helper functions
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse(dateLayout, dateStr)
		return t
	}
	// String helpers, case-insensitive. contains, startsWith and endsWith
	// are expr operators and stay case-sensitive.
	env["includes"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Current time
	env["now"] = time.Now
}

// mediaFields holds the values exposed to expressions for one record
type mediaFields struct {
	originalTitle string
	language      string
	popularity    float64
	voteCount     int
	adult         bool
	date          string
}

func fieldsOf(m tmdb.Media) mediaFields {
	switch v := m.(type) {
	case *tmdb.Movie:
		return mediaFields{
			originalTitle: v.OriginalTitle,
			language:      v.OriginalLanguage,
			popularity:    v.Popularity,
			voteCount:     v.VoteCount,
			adult:         v.Adult,
			date:          v.ReleaseDate,
		}
	case *tmdb.TVShow:
		return mediaFields{
			originalTitle: v.OriginalName,
			language:      v.OriginalLanguage,
			popularity:    v.Popularity,
			voteCount:     v.VoteCount,
			adult:         v.Adult,
			date:          v.FirstAirDate,
		}
	default:
		return mediaFields{}
	}
}

// createRuntimeEnvironment creates the environment an expression is run against
func createRuntimeEnvironment(m tmdb.Media) map[string]any {
	env := make(map[string]any, 40)
	addHelperFunctions(env)

	f := fieldsOf(m)
	released, _ := time.Parse(dateLayout, f.date)
	genres := m.GenreNames()
	mediaType := m.MediaType()

	env["ID"] = m.MediaID()
	env["Title"] = m.MediaTitle()
	env["OriginalTitle"] = f.originalTitle
	env["Overview"] = m.MediaOverview()
	env["Type"] = string(mediaType)
	env["Year"] = m.ReleaseYear()
	env["ReleaseDate"] = released
	env["Released"] = !released.IsZero() && released.Before(time.Now())
	env["Genres"] = genres
	env["GenreIDs"] = m.AllGenreIDs()
	env["VoteAverage"] = m.Rating()
	env["VoteCount"] = f.voteCount
	env["Popularity"] = f.popularity
	env["Language"] = f.language
	env["Adult"] = f.adult

	env["hasGenre"] = createHasGenreFunc(genres)
	env["hasGenreID"] = createHasGenreIDFunc(m.AllGenreIDs())
	env["isMovie"] = func() bool { return mediaType == tmdb.MediaTypeMovie }
	env["isTV"] = func() bool { return mediaType == tmdb.MediaTypeTV }

	return env
}

func createHasGenreFunc(genres []string) func(string) bool {
	lower := make([]string, len(genres))
	for i, g := range genres {
		lower[i] = strings.ToLower(g)
	}
	return func(genre string) bool {
		return slices.Contains(lower, strings.ToLower(genre))
	}
}

func createHasGenreIDFunc(ids []int) func(int) bool {
	return func(id int) bool {
		return slices.Contains(ids, id)
	}
}
