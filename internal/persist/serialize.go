package persist

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sadopc/folio/internal/objref"
	"github.com/sadopc/folio/internal/portfolio"
)

// Target selects the stored form Serialize produces.
type Target int

const (
	// Durable resolves every live reference to a payload.
	Durable Target = iota
	// Draft drops every live reference; the result holds no binary data.
	Draft
)

func (t Target) String() string {
	if t == Draft {
		return "draft"
	}
	return "durable"
}

type Serializer struct {
	refs *objref.Tracker
}

func NewSerializer(refs *objref.Tracker) *Serializer {
	return &Serializer{refs: refs}
}

// Serialize projects st into a record for target. For Durable all payloads
// are fetched concurrently; if any fetch fails no record is returned.
func (s *Serializer) Serialize(ctx context.Context, st portfolio.State, target Target) (*Record, error) {
	p := projector{refs: s.refs, target: target}
	rec := p.record(st)
	if target == Draft {
		return rec, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range rec.files() {
		if f.ref == "" {
			continue
		}
		g.Go(func() error {
			data, err := s.refs.Fetch(gctx, f.ref)
			if err != nil {
				return fmt.Errorf("resolve %q: %w", f.Name, err)
			}
			f.Blob.Data = data
			f.Blob.Size = len(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rec, nil
}

type projector struct {
	refs   *objref.Tracker
	target Target
}

// file maps one reference to its stored form, or nil when it has none.
func (p projector) file(name, url string) *File {
	if url == "" {
		return nil
	}
	if !objref.IsEphemeral(url) {
		return &File{Name: name, URL: url}
	}
	if p.target == Draft {
		return nil
	}
	if name == "" {
		name = p.refs.Name(url)
	}
	return &File{Name: name, Blob: &Payload{ID: uuid.NewString()}, ref: url}
}

func (p projector) fileRef(f *portfolio.FileRef) *File {
	if f == nil {
		return nil
	}
	return p.file(f.Name, f.URL)
}

func (p projector) list(urls []string) []File {
	out := make([]File, 0, len(urls))
	for _, u := range urls {
		if f := p.file("", u); f != nil {
			out = append(out, *f)
		}
	}
	return out
}

func (p projector) record(st portfolio.State) *Record {
	rec := &Record{
		Theme:                string(st.Theme),
		AccentColor:          st.AccentColor,
		Resume:               p.fileRef(st.Resume),
		Name:                 st.Name,
		Title:                st.Title,
		AboutTitle:           st.AboutTitle,
		AboutContent:         st.AboutContent,
		AboutImage:           p.fileRef(st.AboutImage),
		Skills:               st.Skills,
		CompanyProfilesTitle: st.Titles.CompanyProfiles,
		RecentWorksTitle:     st.Titles.RecentWorks,
		ServicesTitle:        st.Titles.Services,
		ToolsTitle:           st.Titles.Tools,
		Services:             st.Services,
		Tools:                st.Tools,
		SocialLinks:          st.SocialLinks,
		Profiles:             st.Profiles,
		BannerData: BannerRecord{
			Title:             st.Banner.Title,
			Content:           st.Banner.Content,
			ButtonText:        st.Banner.ButtonText,
			ButtonLink:        st.Banner.ButtonLink,
			BackgroundType:    string(st.Banner.BackgroundType),
			BackgroundMaxSize: st.Banner.BackgroundMaxSize,
		},
		PageBackground: PageBackgroundRecord{Type: string(st.PageBackground.Type)},
	}

	if st.Banner.BackgroundType.HoldsMedia() {
		rec.BannerData.Background = p.file("", st.Banner.BackgroundURL)
	}
	if st.PageBackground.Type.HoldsMedia() {
		rec.PageBackground.Media = p.file("", st.PageBackground.Value)
	} else {
		rec.PageBackground.Value = st.PageBackground.Value
	}

	rec.Works = make([]WorkRecord, 0, len(st.Works))
	for _, w := range st.Works {
		wr := WorkRecord{
			ID:               w.ID,
			Title:            w.Title,
			Description:      w.Description,
			Date:             w.Date,
			Images:           p.list(w.Images),
			Tags:             w.Tags,
			ProjectURL:       w.ProjectURL,
			CompanyProfileID: w.ProfileID,
			AspectRatio:      string(w.AspectRatio),
		}
		if len(w.Videos) > 0 {
			wr.Videos = p.list(w.Videos)
		}
		rec.Works = append(rec.Works, wr)
	}
	return rec
}
