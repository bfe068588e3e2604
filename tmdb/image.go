package tmdb

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultImageBaseURL is the secure root of the TMDB image CDN
const DefaultImageBaseURL = "https://image.tmdb.org/t/p/"

// ImageKind identifies a family of images sharing a set of sizes
type ImageKind string

const (
	ImageKindBackdrop ImageKind = "backdrop"
	ImageKindLogo     ImageKind = "logo"
	ImageKindPoster   ImageKind = "poster"
	ImageKindProfile  ImageKind = "profile"
	ImageKindStill    ImageKind = "still"
)

// ImageSize is a size token valid for one image kind
type ImageSize interface {
	Kind() ImageKind
	String() string
}

type (
	BackdropSize string
	LogoSize     string
	PosterSize   string
	ProfileSize  string
	StillSize    string
)

const (
	BackdropW300     BackdropSize = "w300"
	BackdropW780     BackdropSize = "w780"
	BackdropW1280    BackdropSize = "w1280"
	BackdropOriginal BackdropSize = "original"

	LogoW45      LogoSize = "w45"
	LogoW92      LogoSize = "w92"
	LogoW154     LogoSize = "w154"
	LogoW185     LogoSize = "w185"
	LogoW300     LogoSize = "w300"
	LogoW500     LogoSize = "w500"
	LogoOriginal LogoSize = "original"

	PosterW92      PosterSize = "w92"
	PosterW154     PosterSize = "w154"
	PosterW185     PosterSize = "w185"
	PosterW342     PosterSize = "w342"
	PosterW500     PosterSize = "w500"
	PosterW780     PosterSize = "w780"
	PosterOriginal PosterSize = "original"

	ProfileW45      ProfileSize = "w45"
	ProfileW185     ProfileSize = "w185"
	ProfileH632     ProfileSize = "h632"
	ProfileOriginal ProfileSize = "original"

	StillW92      StillSize = "w92"
	StillW185     StillSize = "w185"
	StillW300     StillSize = "w300"
	StillOriginal StillSize = "original"
)

func (s BackdropSize) Kind() ImageKind { return ImageKindBackdrop }
func (s BackdropSize) String() string  { return string(s) }
func (s LogoSize) Kind() ImageKind     { return ImageKindLogo }
func (s LogoSize) String() string      { return string(s) }
func (s PosterSize) Kind() ImageKind   { return ImageKindPoster }
func (s PosterSize) String() string    { return string(s) }
func (s ProfileSize) Kind() ImageKind  { return ImageKindProfile }
func (s ProfileSize) String() string   { return string(s) }
func (s StillSize) Kind() ImageKind    { return ImageKindStill }
func (s StillSize) String() string     { return string(s) }

var imageSizes = map[ImageKind][]ImageSize{
	ImageKindBackdrop: {BackdropW300, BackdropW780, BackdropW1280, BackdropOriginal},
	ImageKindLogo:     {LogoW45, LogoW92, LogoW154, LogoW185, LogoW300, LogoW500, LogoOriginal},
	ImageKindPoster:   {PosterW92, PosterW154, PosterW185, PosterW342, PosterW500, PosterW780, PosterOriginal},
	ImageKindProfile:  {ProfileW45, ProfileW185, ProfileH632, ProfileOriginal},
	ImageKindStill:    {StillW92, StillW185, StillW300, StillOriginal},
}

// Sizes returns the sizes available for the kind, smallest first
func (k ImageKind) Sizes() []ImageSize {
	return imageSizes[k]
}

// ParseImageSize resolves a size token for an image kind
func ParseImageSize(kind ImageKind, size string) (ImageSize, error) {
	sizes, ok := imageSizes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown image kind %q", ErrInvalidImageSize, kind)
	}
	for _, s := range sizes {
		if s.String() == size {
			return s, nil
		}
	}
	names := make([]string, len(sizes))
	for i, s := range sizes {
		names[i] = s.String()
	}
	return nil, fmt.Errorf("%w: %q is not a %s size (valid: %s)", ErrInvalidImageSize, size, kind, strings.Join(names, ", "))
}

// ImageConfig builds image CDN URLs
type ImageConfig struct {
	BaseURL string
}

// DefaultImageConfig returns the configuration for the secure TMDB CDN
func DefaultImageConfig() ImageConfig {
	return ImageConfig{BaseURL: DefaultImageBaseURL}
}

// BuildURL joins the CDN base, the size token and the image path
func (c ImageConfig) BuildURL(path string, size ImageSize) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrMissingImagePath
	}
	if size == nil {
		return "", fmt.Errorf("%w: no size given", ErrInvalidImageSize)
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultImageBaseURL
	}

	u, err := url.JoinPath(base, size.String(), path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	return u, nil
}

// PosterURL returns the poster URL of m at the given size on this CDN
func (c ImageConfig) PosterURL(m Media, size PosterSize) (string, error) {
	return c.BuildURL(m.Images().Poster, size)
}

// BackdropURL returns the backdrop URL of m at the given size on this CDN
func (c ImageConfig) BackdropURL(m Media, size BackdropSize) (string, error) {
	return c.BuildURL(m.Images().Backdrop, size)
}
