package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/folio/internal/editor"
	"github.com/sadopc/folio/internal/portfolio"
	"github.com/sadopc/folio/internal/upload"
)

type aboutForm int

const (
	aboutFormIntro aboutForm = iota
	aboutFormSkills
	aboutFormLists
	aboutFormFiles
)

type aboutModel struct {
	sess   *editor.Session
	width  int
	height int

	formActive bool
	form       *huh.Form
	formType   aboutForm

	// Form field pointers (survive value copies)
	name, title, aboutTitle, aboutContent *string
	skills, services, tools, links        *string
	resume, image                         *string
}

func newAboutModel(s *editor.Session) aboutModel {
	return aboutModel{
		sess:         s,
		name:         new(string),
		title:        new(string),
		aboutTitle:   new(string),
		aboutContent: new(string),
		skills:       new(string),
		services:     new(string),
		tools:        new(string),
		links:        new(string),
		resume:       new(string),
		image:        new(string),
	}
}

func (m *aboutModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m aboutModel) update(msg tea.Msg) (aboutModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Edit):
			return m.showForm(aboutFormIntro)
		case key.Matches(msg, keys.New):
			return m.showForm(aboutFormSkills)
		case key.Matches(msg, keys.Tags):
			return m.showForm(aboutFormLists)
		case key.Matches(msg, keys.Attach):
			return m.showForm(aboutFormFiles)
		}
	}
	return m, nil
}

func (m aboutModel) showForm(kind aboutForm) (aboutModel, tea.Cmd) {
	if !m.sess.EditMode() {
		return m, errStatus(errNeedEditMode)
	}
	st := m.sess.CurrentState()
	m.formType = kind

	switch kind {
	case aboutFormIntro:
		*m.name, *m.title = st.Name, st.Title
		*m.aboutTitle, *m.aboutContent = st.AboutTitle, st.AboutContent
		m.form = newForm(huh.NewGroup(
			huh.NewInput().Title("Name").Value(m.name).Validate(required("name")),
			huh.NewInput().Title("Title").Value(m.title),
			huh.NewInput().Title("About title").Value(m.aboutTitle),
			huh.NewText().Title("About content").Lines(6).Value(m.aboutContent),
		))
	case aboutFormSkills:
		*m.skills = formatSkills(st.Skills)
		m.form = newForm(huh.NewGroup(
			huh.NewText().Title("Skills").
				Description("One per line as name: proficiency (0-100)").
				Lines(8).Value(m.skills).
				Validate(func(s string) error { _, err := parseSkills(s); return err }),
		))
	case aboutFormLists:
		*m.services = strings.Join(st.Services, ", ")
		*m.tools = strings.Join(st.Tools, ", ")
		*m.links = formatLinks(st.SocialLinks)
		m.form = newForm(huh.NewGroup(
			huh.NewText().Title(st.Titles.Services).Description("Comma separated").Lines(3).Value(m.services),
			huh.NewText().Title(st.Titles.Tools).Description("Comma separated").Lines(3).Value(m.tools),
			huh.NewText().Title("Social links").Description("One per line as icon | label | href").
				Lines(6).Value(m.links).
				Validate(func(s string) error { _, err := parseLinks(s); return err }),
		))
	case aboutFormFiles:
		*m.resume, *m.image = "", ""
		resume, image := "none", "none"
		if st.Resume != nil {
			resume = describeMedia(m.sess, st.Resume.URL)
		}
		if st.AboutImage != nil {
			image = describeMedia(m.sess, st.AboutImage.URL)
		}
		m.form = newForm(huh.NewGroup(
			huh.NewInput().Title("Resume").
				Description(fmt.Sprintf("Now: %s. File path or link, blank keeps, %q removes", resume, removeMarker)).
				Value(m.resume),
			huh.NewInput().Title("Profile picture").
				Description(fmt.Sprintf("Now: %s. File path or link, blank keeps, %q removes", image, removeMarker)).
				Value(m.image),
		))
	}

	m.formActive = true
	return m, m.form.Init()
}

func (m aboutModel) updateForm(msg tea.Msg) (aboutModel, tea.Cmd) {
	form, cmd, done, cancelled := formStep(m.form, msg)
	if cancelled {
		m.formActive = false
		m.form = nil
		return m, nil
	}
	m.form = form
	if !done {
		return m, cmd
	}
	m.formActive = false
	m.form = nil
	return m, m.apply()
}

func (m aboutModel) apply() tea.Cmd {
	switch m.formType {
	case aboutFormIntro:
		m.sess.SetIdentity(strings.TrimSpace(*m.name), strings.TrimSpace(*m.title))
		m.sess.SetAbout(*m.aboutTitle, *m.aboutContent)
	case aboutFormSkills:
		skills, err := parseSkills(*m.skills)
		if err != nil {
			return errStatus(err)
		}
		m.sess.SetSkills(skills)
	case aboutFormLists:
		links, err := parseLinks(*m.links)
		if err != nil {
			return errStatus(err)
		}
		m.sess.SetServices(splitList(*m.services))
		m.sess.SetTools(splitList(*m.tools))
		m.sess.SetSocialLinks(links)
	case aboutFormFiles:
		resume, err := m.fileField(*m.resume, upload.Document)
		if err != nil {
			return errStatus(err)
		}
		image, err := m.fileField(*m.image, upload.Picture)
		if err != nil {
			if resume != nil {
				m.sess.DiscardUpload(resume.URL)
			}
			return errStatus(err)
		}
		st := m.sess.CurrentState()
		if *m.resume == removeMarker {
			st.Resume = nil
		} else if resume != nil {
			st.Resume = resume
		}
		if *m.image == removeMarker {
			st.AboutImage = nil
		} else if image != nil {
			st.AboutImage = image
		}
		m.sess.ApplyState(portfolio.SetResume(st.Resume), portfolio.SetAboutImage(st.AboutImage))
	}
	return nil
}

// fileField resolves a file form entry. It returns nil when the entry keeps
// or removes the current file.
func (m aboutModel) fileField(input string, kind upload.Kind) (*portfolio.FileRef, error) {
	input = strings.TrimSpace(input)
	if input == "" || input == removeMarker {
		return nil, nil
	}
	ref, err := resolveMedia(m.sess, input, kind)
	if err != nil {
		return nil, err
	}
	name := input
	if i := strings.LastIndexAny(input, `/\`); i >= 0 && !isLink(input) {
		name = input[i+1:]
	}
	return &portfolio.FileRef{Name: name, URL: ref}, nil
}

func (m aboutModel) view() string {
	w := m.width - 4
	st := m.sess.CurrentState()

	if m.formActive && m.form != nil {
		titles := map[aboutForm]string{
			aboutFormIntro:  "Edit Intro",
			aboutFormSkills: "Edit Skills",
			aboutFormLists:  "Edit Services, Tools and Links",
			aboutFormFiles:  "Resume and Picture",
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(titles[m.formType]), "", m.form.View())
		return activePanelStyle(st.AccentColor).Width(w).Render(content)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		lipgloss.NewStyle().Bold(true).Foreground(accent(st.AccentColor)).Render(st.Name),
		"  ", subtitleStyle.Render(st.Title),
	)

	var rows []string
	rows = append(rows, header, "")
	rows = append(rows, titleStyle.Render(st.AboutTitle))
	rows = append(rows, lipgloss.NewStyle().Width(max(20, w-6)).Render(st.AboutContent), "")

	resume, image := "none", "none"
	if st.Resume != nil {
		resume = st.Resume.Name + mutedStyle.Render(" ("+describeMedia(m.sess, st.Resume.URL)+")")
	}
	if st.AboutImage != nil {
		image = describeMedia(m.sess, st.AboutImage.URL)
	}
	rows = append(rows, mutedStyle.Render("Resume:  ")+resume)
	rows = append(rows, mutedStyle.Render("Picture: ")+image, "")

	rows = append(rows, titleStyle.Render("Skills"))
	rows = append(rows, m.renderSkills(st, w), "")

	rows = append(rows, titleStyle.Render(st.Titles.Services)+"  "+strings.Join(st.Services, " · "))
	rows = append(rows, titleStyle.Render(st.Titles.Tools)+"  "+strings.Join(st.Tools, " · "), "")

	var links []string
	for _, l := range st.SocialLinks {
		links = append(links, highlightStyle.Render(l.Label)+mutedStyle.Render(" "+l.Href))
	}
	rows = append(rows, strings.Join(links, "  "))

	if m.sess.EditMode() {
		rows = append(rows, "", mutedStyle.Render("  e: intro  n: skills  t: services/tools/links  a: resume/picture"))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m aboutModel) renderSkills(st portfolio.State, w int) string {
	if len(st.Skills) == 0 {
		return mutedStyle.Render("  No skills listed")
	}
	chartWidth := w - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8
	if m.height > 40 {
		chartHeight = 12
	}

	chart := barchart.New(chartWidth, chartHeight)
	style := lipgloss.NewStyle().Foreground(accent(st.AccentColor))
	bars := make([]barchart.BarData, 0, len(st.Skills))
	for _, s := range st.Skills {
		bars = append(bars, barchart.BarData{
			Label:  truncate(s.Name, 10),
			Values: []barchart.BarValue{{Name: s.Name, Value: float64(s.Proficiency), Style: style}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	var legend []string
	for _, s := range st.Skills {
		legend = append(legend, fmt.Sprintf("%s %d%%", s.Name, s.Proficiency))
	}
	return lipgloss.JoinVertical(lipgloss.Left, chart.View(), mutedStyle.Render("  "+strings.Join(legend, "  ")))
}
