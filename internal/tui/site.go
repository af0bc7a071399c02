package tui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/folio/internal/editor"
	"github.com/sadopc/folio/internal/portfolio"
	"github.com/sadopc/folio/internal/upload"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func validColor(s string) error {
	if !hexColor.MatchString(strings.TrimSpace(s)) {
		return fmt.Errorf("color must look like #6C63FF")
	}
	return nil
}

type siteModel struct {
	sess   *editor.Session
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	theme, accentColor                              *string
	worksTitle, profilesTitle, servicesT, toolsT    *string
	bannerTitle, bannerContent, buttonText, btnLink *string
	bannerType, bannerMedia, bannerMax              *string
	pageType, pageValue                             *string
}

func newSiteModel(s *editor.Session) siteModel {
	return siteModel{
		sess:          s,
		theme:         new(string),
		accentColor:   new(string),
		worksTitle:    new(string),
		profilesTitle: new(string),
		servicesT:     new(string),
		toolsT:        new(string),
		bannerTitle:   new(string),
		bannerContent: new(string),
		buttonText:    new(string),
		btnLink:       new(string),
		bannerType:    new(string),
		bannerMedia:   new(string),
		bannerMax:     new(string),
		pageType:      new(string),
		pageValue:     new(string),
	}
}

func (m *siteModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m siteModel) update(msg tea.Msg) (siteModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return m.showForm()
		}
	}
	return m, nil
}

func backgroundOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Color", string(portfolio.BackgroundColor)),
		huh.NewOption("Image", string(portfolio.BackgroundImage)),
		huh.NewOption("Video", string(portfolio.BackgroundVideo)),
	}
}

func (m siteModel) showForm() (siteModel, tea.Cmd) {
	if !m.sess.EditMode() {
		return m, errStatus(errNeedEditMode)
	}
	st := m.sess.CurrentState()

	*m.theme = string(st.Theme)
	*m.accentColor = st.AccentColor
	*m.worksTitle = st.Titles.RecentWorks
	*m.profilesTitle = st.Titles.CompanyProfiles
	*m.servicesT = st.Titles.Services
	*m.toolsT = st.Titles.Tools
	*m.bannerTitle = st.Banner.Title
	*m.bannerContent = st.Banner.Content
	*m.buttonText = st.Banner.ButtonText
	*m.btnLink = st.Banner.ButtonLink
	*m.bannerType = string(st.Banner.BackgroundType)
	*m.bannerMedia = ""
	*m.bannerMax = strconv.Itoa(st.Banner.BackgroundMaxSize)
	*m.pageType = string(st.PageBackground.Type)
	*m.pageValue = ""
	if st.PageBackground.Type == portfolio.BackgroundColor {
		*m.pageValue = st.PageBackground.Value
	}

	accentOptions := make([]huh.Option[string], 0, len(accentColors)+1)
	for _, c := range accentColors {
		accentOptions = append(accentOptions, huh.NewOption(fmt.Sprintf("%s %s", dot(c), c), c))
	}
	if !contains(accentColors, st.AccentColor) {
		accentOptions = append(accentOptions, huh.NewOption(fmt.Sprintf("%s %s", dot(st.AccentColor), st.AccentColor), st.AccentColor))
	}

	m.form = newForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Dark", string(portfolio.ThemeDark)),
					huh.NewOption("Light", string(portfolio.ThemeLight)),
				).Value(m.theme),
			huh.NewSelect[string]().Title("Accent color").Options(accentOptions...).Value(m.accentColor),
		).Title("Appearance"),
		huh.NewGroup(
			huh.NewInput().Title("Company profiles").Value(m.profilesTitle),
			huh.NewInput().Title("Recent works").Value(m.worksTitle),
			huh.NewInput().Title("Services").Value(m.servicesT),
			huh.NewInput().Title("Tools").Value(m.toolsT),
		).Title("Section titles"),
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.bannerTitle),
			huh.NewText().Title("Content").Lines(3).Value(m.bannerContent),
			huh.NewInput().Title("Button text").Value(m.buttonText),
			huh.NewInput().Title("Button link").Value(m.btnLink),
			huh.NewSelect[string]().Title("Background").Options(backgroundOptions()...).Value(m.bannerType),
			huh.NewInput().Title("Background file").
				Description(fmt.Sprintf("Now: %s. File path or link, blank keeps", describeMedia(m.sess, st.Banner.BackgroundURL))).
				Value(m.bannerMedia),
			huh.NewInput().Title("Max background size (MB)").Value(m.bannerMax).Validate(func(s string) error {
				if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n <= 0 {
					return fmt.Errorf("size must be a positive number")
				}
				return nil
			}),
		).Title("Banner"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Type").Options(backgroundOptions()...).Value(m.pageType),
			huh.NewInput().Title("Color, file path or link").
				Description(fmt.Sprintf("Now: %s. Blank keeps the current media", m.describePage(st.PageBackground))).
				Value(m.pageValue),
		).Title("Page background"),
	)
	m.formActive = true
	return m, m.form.Init()
}

func (m siteModel) describePage(bg portfolio.PageBackground) string {
	if bg.Type == portfolio.BackgroundColor {
		return bg.Value
	}
	return describeMedia(m.sess, bg.Value)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (m siteModel) updateForm(msg tea.Msg) (siteModel, tea.Cmd) {
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

func mediaKind(t portfolio.BackgroundType) upload.Kind {
	if t == portfolio.BackgroundVideo {
		return upload.Video
	}
	return upload.Image
}

func (m siteModel) apply() tea.Cmd {
	st := m.sess.CurrentState()

	banner := portfolio.Banner{
		Title:             *m.bannerTitle,
		Content:           *m.bannerContent,
		ButtonText:        *m.buttonText,
		ButtonLink:        strings.TrimSpace(*m.btnLink),
		BackgroundType:    portfolio.BackgroundType(*m.bannerType),
		BackgroundMaxSize: st.Banner.BackgroundMaxSize,
	}
	if n, err := strconv.Atoi(strings.TrimSpace(*m.bannerMax)); err == nil && n > 0 {
		banner.BackgroundMaxSize = n
	}
	if banner.BackgroundType.HoldsMedia() {
		in := strings.TrimSpace(*m.bannerMedia)
		switch {
		case in != "":
			ref, err := resolveMediaMax(m.sess, in, mediaKind(banner.BackgroundType), upload.MB(banner.BackgroundMaxSize))
			if err != nil {
				return errStatus(err)
			}
			banner.BackgroundURL = ref
		case st.Banner.BackgroundType == banner.BackgroundType:
			banner.BackgroundURL = st.Banner.BackgroundURL
		}
	}

	page := portfolio.PageBackground{Type: portfolio.BackgroundType(*m.pageType)}
	in := strings.TrimSpace(*m.pageValue)
	switch {
	case page.Type == portfolio.BackgroundColor:
		if err := validColor(in); err != nil {
			m.sess.DiscardUpload(banner.BackgroundURL)
			return errStatus(err)
		}
		page.Value = in
	case in == "":
		// Blank keeps the media only while the kind stays the same.
		if st.PageBackground.Type == page.Type {
			page.Value = st.PageBackground.Value
		}
	default:
		ref, err := resolveMedia(m.sess, in, mediaKind(page.Type))
		if err != nil {
			m.sess.DiscardUpload(banner.BackgroundURL)
			return errStatus(err)
		}
		page.Value = ref
	}

	m.sess.ApplyState(
		portfolio.SetTheme(portfolio.Theme(*m.theme)),
		portfolio.SetAccentColor(*m.accentColor),
		portfolio.SetSectionTitles(portfolio.SectionTitles{
			CompanyProfiles: *m.profilesTitle,
			RecentWorks:     *m.worksTitle,
			Services:        *m.servicesT,
			Tools:           *m.toolsT,
		}),
		portfolio.SetBanner(banner),
		portfolio.SetPageBackground(page),
	)
	return nil
}

func (m siteModel) view() string {
	w := m.width - 4
	st := m.sess.CurrentState()

	if m.formActive && m.form != nil {
		return activePanelStyle(st.AccentColor).Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Site Settings"), "", m.form.View()),
		)
	}

	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render(label), highlightStyle.Render(value))
	}

	rows := []string{
		titleStyle.Render("Site"), "",
		row("Theme", string(st.Theme)),
		row("Accent color", st.AccentColor) + " " + dot(string(accent(st.AccentColor))),
		"",
		titleStyle.Render("Section titles"),
		row("Company profiles", st.Titles.CompanyProfiles),
		row("Recent works", st.Titles.RecentWorks),
		row("Services", st.Titles.Services),
		row("Tools", st.Titles.Tools),
		"",
		titleStyle.Render("Banner"),
		row("Title", st.Banner.Title),
		row("Content", truncate(st.Banner.Content, max(20, w-34))),
		row("Button", st.Banner.ButtonText+" -> "+st.Banner.ButtonLink),
		row("Background", string(st.Banner.BackgroundType)),
	}
	if st.Banner.BackgroundType.HoldsMedia() {
		rows = append(rows, row("Background file", describeMedia(m.sess, st.Banner.BackgroundURL)))
	}
	rows = append(rows,
		row("Max background size", fmt.Sprintf("%d MB", st.Banner.BackgroundMaxSize)),
		"",
		titleStyle.Render("Page background"),
		row("Type", string(st.PageBackground.Type)),
		row("Value", truncate(m.describePage(st.PageBackground), max(20, w-34))),
		"",
		mutedStyle.Render("Press enter to edit site settings"),
	)
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
