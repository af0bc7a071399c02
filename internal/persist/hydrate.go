package persist

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/sadopc/folio/internal/objref"
	"github.com/sadopc/folio/internal/portfolio"
	"github.com/sadopc/folio/internal/store"
)

// Hydrator rebuilds portfolio state from stored records. It never fails:
// anything it cannot read falls back to the default content.
type Hydrator struct {
	refs *objref.Tracker
	log  zerolog.Logger
}

func NewHydrator(refs *objref.Tracker, log zerolog.Logger) *Hydrator {
	return &Hydrator{refs: refs, log: log}
}

// Hydrate decodes a durable document. A nil document yields the defaults.
func (h *Hydrator) Hydrate(doc *store.Document) portfolio.State {
	if doc == nil {
		return portfolio.Defaults()
	}
	return h.decode(doc.Body, doc.Blobs)
}

// HydrateDraft decodes a draft body. Drafts carry no payloads.
func (h *Hydrator) HydrateDraft(body string) portfolio.State {
	return h.decode([]byte(body), nil)
}

type fields map[string]json.RawMessage

// field decodes one entry of m, keeping def when the entry is absent or has
// the wrong type.
func field[T any](log zerolog.Logger, m fields, key string, def T) T {
	raw, ok := m[key]
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Debug().Err(err).Str("field", key).Msg("field ignored")
		return def
	}
	return v
}

func (h *Hydrator) decode(body []byte, blobs map[string][]byte) portfolio.State {
	st := portfolio.Defaults()
	var m fields
	if err := json.Unmarshal(body, &m); err != nil || m == nil {
		h.log.Warn().Err(err).Msg("unreadable record, using defaults")
		return st
	}
	r := resolver{refs: h.refs, blobs: blobs}
	log := h.log

	if t := portfolio.Theme(field(log, m, "theme", string(st.Theme))); t == portfolio.ThemeLight || t == portfolio.ThemeDark {
		st.Theme = t
	}
	st.AccentColor = field(log, m, "accentColor", st.AccentColor)
	if _, ok := m["resume"]; ok {
		st.Resume = r.file(field[*File](log, m, "resume", nil))
	}
	st.Name = field(log, m, "name", st.Name)
	st.Title = field(log, m, "title", st.Title)
	st.AboutTitle = field(log, m, "aboutTitle", st.AboutTitle)
	st.AboutContent = field(log, m, "aboutContent", st.AboutContent)
	if _, ok := m["aboutImage"]; ok {
		st.AboutImage = r.file(field[*File](log, m, "aboutImage", nil))
	}
	st.Skills = field(log, m, "skills", st.Skills)
	st.Titles.CompanyProfiles = field(log, m, "companyProfilesTitle", st.Titles.CompanyProfiles)
	st.Titles.RecentWorks = field(log, m, "recentWorksTitle", st.Titles.RecentWorks)
	st.Titles.Services = field(log, m, "servicesTitle", st.Titles.Services)
	st.Titles.Tools = field(log, m, "toolsTitle", st.Titles.Tools)
	st.Services = field(log, m, "services", st.Services)
	st.Tools = field(log, m, "tools", st.Tools)
	st.SocialLinks = field(log, m, "socialLinks", st.SocialLinks)
	st.Profiles = field(log, m, "profiles", st.Profiles)

	if sub := field[fields](log, m, "bannerData", nil); sub != nil {
		st.Banner = h.banner(r, sub, st.Banner)
	}
	if sub := field[fields](log, m, "pageBackground", nil); sub != nil {
		st.PageBackground = h.pageBackground(r, sub, st.PageBackground)
	}
	if raw := field[[]json.RawMessage](log, m, "works", nil); raw != nil {
		st.Works = h.works(r, raw)
	}
	return st
}

func backgroundType(s string, def portfolio.BackgroundType) portfolio.BackgroundType {
	switch t := portfolio.BackgroundType(s); t {
	case portfolio.BackgroundColor, portfolio.BackgroundImage, portfolio.BackgroundVideo:
		return t
	}
	return def
}

func (h *Hydrator) banner(r resolver, m fields, def portfolio.Banner) portfolio.Banner {
	b := def
	b.Title = field(h.log, m, "title", def.Title)
	b.Content = field(h.log, m, "content", def.Content)
	b.ButtonText = field(h.log, m, "buttonText", def.ButtonText)
	b.ButtonLink = field(h.log, m, "buttonLink", def.ButtonLink)
	b.BackgroundType = backgroundType(field(h.log, m, "backgroundType", ""), def.BackgroundType)
	b.BackgroundMaxSize = field(h.log, m, "backgroundMaxSize", def.BackgroundMaxSize)
	b.BackgroundURL = ""
	if b.BackgroundType.HoldsMedia() {
		if f := r.file(field[*File](h.log, m, "background", nil)); f != nil {
			b.BackgroundURL = f.URL
		}
	}
	return b
}

func (h *Hydrator) pageBackground(r resolver, m fields, def portfolio.PageBackground) portfolio.PageBackground {
	bg := portfolio.PageBackground{
		Type: backgroundType(field(h.log, m, "type", ""), def.Type),
	}
	if !bg.Type.HoldsMedia() {
		bg.Value = field(h.log, m, "value", "")
		return bg
	}
	if f := r.file(field[*File](h.log, m, "media", nil)); f != nil {
		bg.Value = f.URL
	}
	return bg
}

func (h *Hydrator) works(r resolver, raw []json.RawMessage) []portfolio.Work {
	works := make([]portfolio.Work, 0, len(raw))
	for _, item := range raw {
		var m fields
		if err := json.Unmarshal(item, &m); err != nil || m == nil {
			h.log.Debug().Err(err).Msg("work entry ignored")
			continue
		}
		w := portfolio.Work{
			ID:          field(h.log, m, "id", int64(0)),
			Title:       field(h.log, m, "title", ""),
			Description: field(h.log, m, "description", ""),
			Date:        field(h.log, m, "date", ""),
			Images:      r.list(field[[]*File](h.log, m, "images", nil)),
			Videos:      r.list(field[[]*File](h.log, m, "videoUrls", nil)),
			Tags:        field(h.log, m, "tags", []portfolio.Tag{}),
			ProjectURL:  field(h.log, m, "projectUrl", ""),
			ProfileID:   field[*int64](h.log, m, "companyProfileId", nil),
		}
		if a := portfolio.AspectRatio(field(h.log, m, "aspectRatio", "")); a.Valid() {
			w.AspectRatio = a
		}
		if len(w.Videos) == 0 {
			w.Videos = nil
		}
		works = append(works, w)
	}
	return works
}

// resolver turns stored files back into live or external references.
type resolver struct {
	refs  *objref.Tracker
	blobs map[string][]byte
}

// file returns nil for entries that cannot be brought back: stale live
// references and payloads missing from the blob map.
func (r resolver) file(f *File) *portfolio.FileRef {
	if f == nil {
		return nil
	}
	if f.Blob != nil {
		data, ok := r.blobs[f.Blob.ID]
		if !ok {
			return nil
		}
		return &portfolio.FileRef{
			Name: f.Name,
			URL:  r.refs.Create(objref.BytesSource(f.Name, data)),
		}
	}
	if f.URL == "" || objref.IsEphemeral(f.URL) {
		return nil
	}
	return &portfolio.FileRef{Name: f.Name, URL: f.URL}
}

func (r resolver) list(files []*File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		if ref := r.file(f); ref != nil {
			out = append(out, ref.URL)
		}
	}
	return out
}
