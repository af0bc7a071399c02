// Package portfolio holds the portfolio state aggregate and the pure
// operations over it. It knows nothing about storage.
package portfolio

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type BackgroundType string

const (
	BackgroundColor BackgroundType = "color"
	BackgroundImage BackgroundType = "image"
	BackgroundVideo BackgroundType = "video"
)

// HoldsMedia reports whether the variant carries a file reference rather than
// a color.
func (b BackgroundType) HoldsMedia() bool {
	return b == BackgroundImage || b == BackgroundVideo
}

type AspectRatio string

const (
	Ratio16x9 AspectRatio = "16:9"
	Ratio9x16 AspectRatio = "9:16"
	Ratio1x1  AspectRatio = "1:1"
	Ratio4x3  AspectRatio = "4:3"
	Ratio21x9 AspectRatio = "21:9"
)

var AspectRatios = []AspectRatio{Ratio16x9, Ratio9x16, Ratio1x1, Ratio4x3, Ratio21x9}

func (a AspectRatio) Valid() bool {
	for _, r := range AspectRatios {
		if r == a {
			return true
		}
	}
	return false
}

// FileRef is a user supplied asset. URL is either a live "blob:" reference
// or an external link.
type FileRef struct {
	Name string
	URL  string
}

type Skill struct {
	Name        string `json:"name"`
	Proficiency int    `json:"proficiency"` // 0..100
}

type SocialLink struct {
	Icon  string `json:"icon"` // X, LinkedIn, Gmail, Phone, Location
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Banner struct {
	Title             string
	Content           string
	ButtonText        string
	ButtonLink        string
	BackgroundType    BackgroundType
	BackgroundURL     string
	BackgroundMaxSize int // MB
}

type PageBackground struct {
	Type  BackgroundType
	Value string // hex color or reference
}

type Profile struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Work struct {
	ID          int64
	Title       string
	Description string
	Date        string // YYYY-MM-DD, optional
	Images      []string
	Videos      []string
	Tags        []Tag
	ProjectURL  string
	ProfileID   *int64
	AspectRatio AspectRatio
}

type SectionTitles struct {
	CompanyProfiles string
	RecentWorks     string
	Services        string
	Tools           string
}

// State is the whole content of the site.
type State struct {
	Theme          Theme
	AccentColor    string
	Resume         *FileRef
	Name           string
	Title          string
	AboutTitle     string
	AboutContent   string
	AboutImage     *FileRef
	Skills         []Skill
	Titles         SectionTitles
	Services       []string
	Tools          []string
	SocialLinks    []SocialLink
	Banner         Banner
	PageBackground PageBackground
	Profiles       []Profile
	Works          []Work
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.Resume = cloneFile(s.Resume)
	c.AboutImage = cloneFile(s.AboutImage)
	c.Skills = cloneSlice(s.Skills)
	c.Services = cloneSlice(s.Services)
	c.Tools = cloneSlice(s.Tools)
	c.SocialLinks = cloneSlice(s.SocialLinks)
	c.Profiles = cloneSlice(s.Profiles)
	c.Works = cloneWorks(s.Works)
	return c
}

func (w Work) Clone() Work {
	c := w
	c.Images = cloneSlice(w.Images)
	c.Videos = cloneSlice(w.Videos)
	c.Tags = cloneSlice(w.Tags)
	if w.ProfileID != nil {
		id := *w.ProfileID
		c.ProfileID = &id
	}
	return c
}

func cloneWorks(works []Work) []Work {
	if works == nil {
		return nil
	}
	out := make([]Work, len(works))
	for i, w := range works {
		out[i] = w.Clone()
	}
	return out
}

func cloneFile(f *FileRef) *FileRef {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
