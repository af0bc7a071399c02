package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/folio/internal/portfolio"
)

type jsonExport struct {
	ExportedAt  string                 `json:"exported_at"`
	Name        string                 `json:"name"`
	Title       string                 `json:"title"`
	Theme       string                 `json:"theme"`
	AccentColor string                 `json:"accent_color"`
	Resume      string                 `json:"resume,omitempty"`
	About       jsonAbout              `json:"about"`
	Services    []string               `json:"services"`
	Tools       []string               `json:"tools"`
	SocialLinks []portfolio.SocialLink `json:"social_links"`
	Profiles    []portfolio.Profile    `json:"profiles"`
	Count       int                    `json:"work_count"`
	Works       []jsonWork             `json:"works"`
}

type jsonAbout struct {
	Title   string            `json:"title"`
	Content string            `json:"content"`
	Image   string            `json:"image,omitempty"`
	Skills  []portfolio.Skill `json:"skills"`
}

type jsonWork struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date,omitempty"`
	Company     string   `json:"company"`
	CompanyID   *int64   `json:"company_id,omitempty"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	Videos      []string `json:"videos,omitempty"`
	ProjectURL  string   `json:"project_url,omitempty"`
	AspectRatio string   `json:"aspect_ratio,omitempty"`
}

// ToJSON writes a readable summary of the whole site.
func ToJSON(st portfolio.State, names Namer, path string) error {
	export := jsonExport{
		ExportedAt:  time.Now().UTC().Format(time.RFC3339),
		Name:        st.Name,
		Title:       st.Title,
		Theme:       string(st.Theme),
		AccentColor: st.AccentColor,
		About: jsonAbout{
			Title:   st.AboutTitle,
			Content: st.AboutContent,
			Skills:  st.Skills,
		},
		Services:    st.Services,
		Tools:       st.Tools,
		SocialLinks: st.SocialLinks,
		Profiles:    st.Profiles,
		Count:       len(st.Works),
		Works:       []jsonWork{},
	}
	if st.Resume != nil {
		export.Resume = media(names, st.Resume.URL)
	}
	if st.AboutImage != nil {
		export.About.Image = media(names, st.AboutImage.URL)
	}

	for _, w := range st.Works {
		tags := make([]string, len(w.Tags))
		for i, t := range w.Tags {
			tags[i] = t.Name
		}
		export.Works = append(export.Works, jsonWork{
			ID:          w.ID,
			Title:       w.Title,
			Description: w.Description,
			Date:        w.Date,
			Company:     portfolio.AffiliationName(st.Profiles, w),
			CompanyID:   w.ProfileID,
			Tags:        tags,
			Images:      mediaList(names, w.Images),
			Videos:      mediaList(names, w.Videos),
			ProjectURL:  w.ProjectURL,
			AspectRatio: string(w.AspectRatio),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
