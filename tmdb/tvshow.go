package tmdb

// TVShow is a TV show as returned by the details, listing and search
// endpoints. The API's "name" member is decoded into Title.
type TVShow struct {
	Adult               bool                `json:"adult"`
	BackdropPath        string              `json:"backdrop_path"`
	CreatedBy           []Creator           `json:"created_by"`
	EpisodeRunTime      []int               `json:"episode_run_time"`
	FirstAirDate        string              `json:"first_air_date"`
	Genres              []Genre             `json:"genres"`
	GenreIDs            []int               `json:"genre_ids"`
	Homepage            string              `json:"homepage"`
	ID                  int                 `json:"id"`
	InProduction        bool                `json:"in_production"`
	Languages           []string            `json:"languages"`
	LastAirDate         string              `json:"last_air_date"`
	LastEpisodeToAir    *Episode            `json:"last_episode_to_air"`
	NextEpisodeToAir    *Episode            `json:"next_episode_to_air"`
	Networks            []Network           `json:"networks"`
	NumberOfEpisodes    int                 `json:"number_of_episodes"`
	NumberOfSeasons     int                 `json:"number_of_seasons"`
	OriginCountry       []string            `json:"origin_country"`
	OriginalLanguage    string              `json:"original_language"`
	OriginalName        string              `json:"original_name"`
	Overview            string              `json:"overview"`
	Popularity          float64             `json:"popularity"`
	PosterPath          string              `json:"poster_path"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	Seasons             []Season            `json:"seasons"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
	Title               string              `json:"name"`
	Type                string              `json:"type"`
	VoteAverage         float64             `json:"vote_average"`
	VoteCount           int                 `json:"vote_count"`
}

// UnmarshalJSON decodes leniently: missing or malformed fields fall back to
// their defaults rather than failing the decode.
func (t *TVShow) UnmarshalJSON(data []byte) error {
	*t = TVShow{}
	return safeDecode(data, t)
}

func (t *TVShow) MediaID() int         { return t.ID }
func (t *TVShow) MediaTitle() string   { return t.Title }
func (t *TVShow) MediaType() MediaType { return MediaTypeTV }
func (t *TVShow) MediaOverview() string {
	return t.Overview
}

// ReleaseYear returns the year of the first air date, or 0 when unknown
func (t *TVShow) ReleaseYear() int {
	return yearOf(t.FirstAirDate)
}

// GenreNames returns the names of the show's genres
func (t *TVShow) GenreNames() []string {
	return genreNames(t.Genres)
}

// AllGenreIDs returns the genre IDs of detail and listing payloads alike
func (t *TVShow) AllGenreIDs() []int {
	return genreIDs(t.Genres, t.GenreIDs)
}

// Rating returns the average vote
func (t *TVShow) Rating() float64 {
	return t.VoteAverage
}

// PosterURL returns the poster URL at the given size on the default CDN.
// Use ImageConfig.PosterURL, e.g. with Client.Images(), for a configured CDN.
func (t *TVShow) PosterURL(size PosterSize) (string, error) {
	return DefaultImageConfig().PosterURL(t, size)
}

// BackdropURL returns the backdrop URL at the given size on the default CDN
func (t *TVShow) BackdropURL(size BackdropSize) (string, error) {
	return DefaultImageConfig().BackdropURL(t, size)
}

// Images returns the image paths of the show
func (t *TVShow) Images() ImagePaths {
	return ImagePaths{Poster: t.PosterPath, Backdrop: t.BackdropPath}
}
