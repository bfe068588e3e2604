package tmdb

import (
	"fmt"
	"strings"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
	ShowImages  bool
	ImageSize   PosterSize
}

// ConsoleFormatter provides console output formatting for media
type ConsoleFormatter struct {
	images ImageConfig
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(images ImageConfig) *ConsoleFormatter {
	return &ConsoleFormatter{images: images}
}

// FormatMediaList formats a list of media for console display
func (f *ConsoleFormatter) FormatMediaList(title string, media []Media, options FormatOptions) string {
	if len(media) == 0 {
		return "No media found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", title, len(media))

	for i, m := range media {
		isLast := i == len(media)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── %s\n", prefix, headline(m))

		if options.ShowDetails {
			var parts []string
			parts = append(parts, fmt.Sprintf("ID: %d", m.MediaID()))
			if r := m.Rating(); r > 0 {
				parts = append(parts, fmt.Sprintf("Rating: %.1f", r))
			}
			if genres := m.GenreNames(); len(genres) > 0 {
				parts = append(parts, "Genres: "+strings.Join(genres, ", "))
			}
			fmt.Fprintf(&sb, "%s%s\n", indent, strings.Join(parts, " | "))
		}

		if options.ShowImages {
			size := options.ImageSize
			if size == "" {
				size = PosterW500
			}
			if u, err := f.images.PosterURL(m, size); err == nil {
				fmt.Fprintf(&sb, "%sPoster: %s\n", indent, u)
			}
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatMovie formats the details of a movie
func (f *ConsoleFormatter) FormatMovie(m *Movie) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s\n", headline(m))
	if m.Tagline != "" {
		fmt.Fprintf(&sb, "│ %s\n", m.Tagline)
	}
	sb.WriteString("│\n")

	rows := []detailRow{
		{"ID", fmt.Sprint(m.ID)},
		{"Original title", differs(m.OriginalTitle, m.Title)},
		{"Status", m.Status},
		{"Released", m.ReleaseDate},
		{"Runtime", minutes(m.Runtime)},
		{"Genres", strings.Join(m.GenreNames(), ", ")},
		{"Rating", rating(m.VoteAverage, m.VoteCount)},
		{"Budget", money(m.Budget)},
		{"Revenue", money(m.Revenue)},
		{"IMDb", m.IMDbID},
		{"Homepage", m.Homepage},
		{"Studios", strings.Join(companyNames(m.ProductionCompanies), ", ")},
		{"Poster", f.imageURL(m.PosterPath, PosterW500)},
		{"Backdrop", f.imageURL(m.BackdropPath, BackdropW1280)},
	}
	writeRows(&sb, rows)

	if m.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", m.Overview)
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatTVShow formats the details of a TV show
func (f *ConsoleFormatter) FormatTVShow(t *TVShow) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s\n", headline(t))
	if t.Tagline != "" {
		fmt.Fprintf(&sb, "│ %s\n", t.Tagline)
	}
	sb.WriteString("│\n")

	networks := make([]string, 0, len(t.Networks))
	for _, n := range t.Networks {
		networks = append(networks, n.Name)
	}

	rows := []detailRow{
		{"ID", fmt.Sprint(t.ID)},
		{"Original name", differs(t.OriginalName, t.Title)},
		{"Status", t.Status},
		{"Type", t.Type},
		{"First aired", t.FirstAirDate},
		{"Last aired", t.LastAirDate},
		{"Seasons", count(t.NumberOfSeasons)},
		{"Episodes", count(t.NumberOfEpisodes)},
		{"Genres", strings.Join(t.GenreNames(), ", ")},
		{"Networks", strings.Join(networks, ", ")},
		{"Rating", rating(t.VoteAverage, t.VoteCount)},
		{"Homepage", t.Homepage},
		{"Next episode", episode(t.NextEpisodeToAir)},
		{"Poster", f.imageURL(t.PosterPath, PosterW500)},
		{"Backdrop", f.imageURL(t.BackdropPath, BackdropW1280)},
	}
	writeRows(&sb, rows)

	if t.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", t.Overview)
	}
	sb.WriteString("\n")
	return sb.String()
}

type detailRow struct {
	label string
	value string
}

func writeRows(sb *strings.Builder, rows []detailRow) {
	var visible []detailRow
	for _, r := range rows {
		if r.value != "" {
			visible = append(visible, r)
		}
	}
	for i, r := range visible {
		prefix := "├"
		if i == len(visible)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(sb, "%s── %-15s %s\n", prefix, r.label+":", r.value)
	}
}

func headline(m Media) string {
	title := m.MediaTitle()
	if title == "" {
		title = "Untitled"
	}
	kind := "Movie"
	if m.MediaType() == MediaTypeTV {
		kind = "TV"
	}
	if year := m.ReleaseYear(); year > 0 {
		return fmt.Sprintf("%s (%d) [%s]", title, year, kind)
	}
	return fmt.Sprintf("%s [%s]", title, kind)
}

func (f *ConsoleFormatter) imageURL(path string, size ImageSize) string {
	u, err := f.images.BuildURL(path, size)
	if err != nil {
		return ""
	}
	return u
}

func differs(value, than string) string {
	if value == than {
		return ""
	}
	return value
}

func minutes(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%dh %02dm", n/60, n%60)
}

func count(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprint(n)
}

func rating(avg float64, votes int) string {
	if votes == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f/10 (%d votes)", avg, votes)
}

func money(n int64) string {
	if n <= 0 {
		return ""
	}
	s := fmt.Sprint(n)
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return "$" + string(out)
}

func companyNames(companies []ProductionCompany) []string {
	names := make([]string, 0, len(companies))
	for _, c := range companies {
		names = append(names, c.Name)
	}
	return names
}

func episode(e *Episode) string {
	if e == nil {
		return ""
	}
	s := fmt.Sprintf("S%02dE%02d %s", e.SeasonNumber, e.EpisodeNumber, e.Name)
	if e.AirDate != "" {
		s += " (" + e.AirDate + ")"
	}
	return s
}
