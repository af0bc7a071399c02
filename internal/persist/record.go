// Package persist converts the live portfolio state to and from its stored
// forms: the durable record with binary payloads, and the text-only draft.
package persist

import "github.com/sadopc/folio/internal/portfolio"

// Payload is binary content kept next to the record body. Only the id and
// size are part of the JSON body.
type Payload struct {
	ID   string `json:"id"`
	Size int    `json:"size"`
	Data []byte `json:"-"`
}

// File is a stored asset: either a linked URL or a payload.
type File struct {
	Name string   `json:"name,omitempty"`
	URL  string   `json:"url,omitempty"`
	Blob *Payload `json:"blob,omitempty"`

	ref string // live reference the payload is read from
}

type BannerRecord struct {
	Title             string `json:"title"`
	Content           string `json:"content"`
	ButtonText        string `json:"buttonText"`
	ButtonLink        string `json:"buttonLink"`
	BackgroundType    string `json:"backgroundType"`
	Background        *File  `json:"background"`
	BackgroundMaxSize int    `json:"backgroundMaxSize"`
}

type PageBackgroundRecord struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"` // color
	Media *File  `json:"media,omitempty"`
}

type WorkRecord struct {
	ID               int64           `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Date             string          `json:"date,omitempty"`
	Images           []File          `json:"images"`
	Videos           []File          `json:"videoUrls,omitempty"`
	Tags             []portfolio.Tag `json:"tags"`
	ProjectURL       string          `json:"projectUrl,omitempty"`
	CompanyProfileID *int64          `json:"companyProfileId,omitempty"`
	AspectRatio      string          `json:"aspectRatio,omitempty"`
}

// Record is the serialization-safe projection of portfolio.State.
type Record struct {
	Theme                string                 `json:"theme"`
	AccentColor          string                 `json:"accentColor"`
	Resume               *File                  `json:"resume"`
	Name                 string                 `json:"name"`
	Title                string                 `json:"title"`
	AboutTitle           string                 `json:"aboutTitle"`
	AboutContent         string                 `json:"aboutContent"`
	AboutImage           *File                  `json:"aboutImage"`
	Skills               []portfolio.Skill      `json:"skills"`
	CompanyProfilesTitle string                 `json:"companyProfilesTitle"`
	RecentWorksTitle     string                 `json:"recentWorksTitle"`
	ServicesTitle        string                 `json:"servicesTitle"`
	ToolsTitle           string                 `json:"toolsTitle"`
	Services             []string               `json:"services"`
	Tools                []string               `json:"tools"`
	SocialLinks          []portfolio.SocialLink `json:"socialLinks"`
	BannerData           BannerRecord           `json:"bannerData"`
	PageBackground       PageBackgroundRecord   `json:"pageBackground"`
	Profiles             []portfolio.Profile    `json:"profiles"`
	Works                []WorkRecord           `json:"works"`
}

// files returns every asset in the record, list entries included. The
// pointers stay valid as long as the record's slices are not appended to.
func (r *Record) files() []*File {
	var out []*File
	add := func(f *File) {
		if f != nil {
			out = append(out, f)
		}
	}
	add(r.Resume)
	add(r.AboutImage)
	add(r.BannerData.Background)
	add(r.PageBackground.Media)
	for i := range r.Works {
		for j := range r.Works[i].Images {
			add(&r.Works[i].Images[j])
		}
		for j := range r.Works[i].Videos {
			add(&r.Works[i].Videos[j])
		}
	}
	return out
}
