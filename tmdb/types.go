package tmdb

// Genre is a media genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON decodes leniently, see safeDecode
func (g *Genre) UnmarshalJSON(data []byte) error {
	*g = Genre{}
	return safeDecode(data, g)
}

// ProductionCompany is a studio credited on a movie or show
type ProductionCompany struct {
	ID            int    `json:"id"`
	LogoPath      string `json:"logo_path"`
	Name          string `json:"name"`
	OriginCountry string `json:"origin_country"`
}

// UnmarshalJSON decodes leniently, see safeDecode
func (p *ProductionCompany) UnmarshalJSON(data []byte) error {
	*p = ProductionCompany{}
	return safeDecode(data, p)
}

// ProductionCountry is a country of production
type ProductionCountry struct {
	ISO3166_1 string `json:"iso_3166_1"`
	Name      string `json:"name"`
}

// UnmarshalJSON decodes leniently, see safeDecode
func (p *ProductionCountry) UnmarshalJSON(data []byte) error {
	*p = ProductionCountry{}
	return safeDecode(data, p)
}

// SpokenLanguage is a language spoken in a movie or show
type SpokenLanguage struct {
	EnglishName string `json:"english_name"`
	ISO639_1    string `json:"iso_639_1"`
	Name        string `json:"name"`
}

// UnmarshalJSON decodes leniently, see safeDecode
func (s *SpokenLanguage) UnmarshalJSON(data []byte) error {
	*s = SpokenLanguage{}
	return safeDecode(data, s)
}

// Creator is a person credited with creating a TV show
type Creator struct {
	ID          int    `json:"id"`
	CreditID    string `json:"credit_id"`
	Name        string `json:"name"`
	Gender      int    `json:"gender"`
	ProfilePath string `json:"profile_path"`
}

// UnmarshalJSON decodes leniently, see safeDecode
func (c *Creator) UnmarshalJSON(data []byte) error {
	*c = Creator{}
	return safeDecode(data, c)
}

// Episode is a single TV episode
type Episode struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Overview       string  `json:"overview"`
	VoteAverage    float64 `json:"vote_average"`
	VoteCount      int     `json:"vote_count"`
	AirDate        string  `json:"air_date"`
	EpisodeNumber  int     `json:"episode_number"`
	EpisodeType    string  `json:"episode_type"`
	ProductionCode string  `json:"production_code"`
	Runtime        int     `json:"runtime"`
	SeasonNumber   int     `json:"season_number"`
	ShowID         int     `json:"show_id"`
	StillPath      string  `json:"still_path"`
}

// UnmarshalJSON decodes leniently, see safeDecode
func (e *Episode) UnmarshalJSON(data []byte) error {
	*e = Episode{}
	return safeDecode(data, e)
}

// Network is a broadcaster or streaming service airing a show
type Network struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

// UnmarshalJSON decodes leniently, see safeDecode
func (n *Network) UnmarshalJSON(data []byte) error {
	*n = Network{}
	return safeDecode(data, n)
}

// Season is one season of a TV show
type Season struct {
	AirDate      string  `json:"air_date"`
	EpisodeCount int     `json:"episode_count"`
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	SeasonNumber int     `json:"season_number"`
	VoteAverage  float64 `json:"vote_average"`
}

// UnmarshalJSON decodes leniently, see safeDecode
func (s *Season) UnmarshalJSON(data []byte) error {
	*s = Season{}
	return safeDecode(data, s)
}
