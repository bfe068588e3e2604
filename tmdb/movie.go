package tmdb

// Movie is a movie as returned by the details, listing and search endpoints.
// Listings omit most detail fields, which then hold their defaults.
type Movie struct {
	Adult               bool                `json:"adult"`
	BackdropPath        string              `json:"backdrop_path"`
	Budget              int64               `json:"budget"`
	Genres              []Genre             `json:"genres"`
	GenreIDs            []int               `json:"genre_ids"`
	Homepage            string              `json:"homepage"`
	ID                  int                 `json:"id"`
	IMDbID              string              `json:"imdb_id"`
	OriginCountry       []string            `json:"origin_country"`
	OriginalLanguage    string              `json:"original_language"`
	OriginalTitle       string              `json:"original_title"`
	Overview            string              `json:"overview"`
	Popularity          float64             `json:"popularity"`
	PosterPath          string              `json:"poster_path"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	ReleaseDate         string              `json:"release_date"`
	Revenue             int64               `json:"revenue"`
	Runtime             int                 `json:"runtime"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
	Title               string              `json:"title"`
	Video               bool                `json:"video"`
	VoteAverage         float64             `json:"vote_average"`
	VoteCount           int                 `json:"vote_count"`
}

// UnmarshalJSON decodes leniently: missing or malformed fields fall back to
// their defaults rather than failing the decode.
func (m *Movie) UnmarshalJSON(data []byte) error {
	*m = Movie{}
	return safeDecode(data, m)
}

func (m *Movie) MediaID() int         { return m.ID }
func (m *Movie) MediaTitle() string   { return m.Title }
func (m *Movie) MediaType() MediaType { return MediaTypeMovie }
func (m *Movie) MediaOverview() string {
	return m.Overview
}

// ReleaseYear returns the year of the release date, or 0 when unknown
func (m *Movie) ReleaseYear() int {
	return yearOf(m.ReleaseDate)
}

// GenreNames returns the names of the movie's genres
func (m *Movie) GenreNames() []string {
	return genreNames(m.Genres)
}

// AllGenreIDs returns the genre IDs of detail and listing payloads alike
func (m *Movie) AllGenreIDs() []int {
	return genreIDs(m.Genres, m.GenreIDs)
}

// Rating returns the average vote
func (m *Movie) Rating() float64 {
	return m.VoteAverage
}

// PosterURL returns the poster URL at the given size on the default CDN.
// Use ImageConfig.PosterURL, e.g. with Client.Images(), for a configured CDN.
func (m *Movie) PosterURL(size PosterSize) (string, error) {
	return DefaultImageConfig().PosterURL(m, size)
}

// BackdropURL returns the backdrop URL at the given size on the default CDN
func (m *Movie) BackdropURL(size BackdropSize) (string, error) {
	return DefaultImageConfig().BackdropURL(m, size)
}

// Images returns the image paths of the movie
func (m *Movie) Images() ImagePaths {
	return ImagePaths{Poster: m.PosterPath, Backdrop: m.BackdropPath}
}
