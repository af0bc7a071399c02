package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/folio/internal/editor"
	"github.com/sadopc/folio/internal/portfolio"
	"github.com/sadopc/folio/internal/upload"
)

var sortOrders = []portfolio.SortOrder{portfolio.SortDateDesc, portfolio.SortDateAsc, portfolio.SortTitleAsc, portfolio.SortTitleDesc}

var sortNames = map[portfolio.SortOrder]string{
	portfolio.SortDateDesc:  "newest",
	portfolio.SortDateAsc:   "oldest",
	portfolio.SortTitleAsc:  "title A-Z",
	portfolio.SortTitleDesc: "title Z-A",
}

type worksModel struct {
	sess   *editor.Session
	width  int
	height int

	cursor      int
	viewing     bool // showing the selected work
	tagFilter   string
	profileID   *int64
	sortIndex   int
	formActive  bool
	form        *huh.Form
	formType    string // "new", "edit", "tags", "delete"
	editingID   int64
	confirmed   *bool
	title       *string
	description *string
	date        *string
	projectURL  *string
	aspect      *string
	profile     *string
	tags        *string
	images      *string
	videos      *string

	// tag editor rows, in the order of portfolio.Tags
	tagOriginal []portfolio.Tag
	tagInputs   []*string
}

func newWorksModel(s *editor.Session) worksModel {
	return worksModel{
		sess:        s,
		confirmed:   new(bool),
		title:       new(string),
		description: new(string),
		date:        new(string),
		projectURL:  new(string),
		aspect:      new(string),
		profile:     new(string),
		tags:        new(string),
		images:      new(string),
		videos:      new(string),
	}
}

func (m *worksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m worksModel) filter() portfolio.WorkFilter {
	f := portfolio.WorkFilter{ProfileID: m.profileID, Sort: sortOrders[m.sortIndex]}
	if m.tagFilter != "" {
		f.Tags = []string{m.tagFilter}
	}
	return f
}

// visible returns the works shown in the list, filtered and sorted.
func (m worksModel) visible(st portfolio.State) []portfolio.Work {
	return portfolio.FilterWorks(st.Works, m.filter())
}

func (m worksModel) selected(st portfolio.State) (portfolio.Work, bool) {
	works := m.visible(st)
	if m.cursor < 0 || m.cursor >= len(works) {
		return portfolio.Work{}, false
	}
	return works[m.cursor], true
}

func (m worksModel) update(msg tea.Msg) (worksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	msg2, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	st := m.sess.CurrentState()

	if m.viewing {
		switch {
		case key.Matches(msg2, keys.Back), key.Matches(msg2, keys.Enter):
			m.viewing = false
		case key.Matches(msg2, keys.Edit):
			return m.showWorkForm(st, true)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg2, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg2, keys.Down):
		if m.cursor < len(m.visible(st))-1 {
			m.cursor++
		}
	case key.Matches(msg2, keys.Enter):
		if _, ok := m.selected(st); ok {
			m.viewing = true
		}
	case key.Matches(msg2, keys.Filter):
		m.tagFilter = nextTag(portfolio.Tags(st.Works), m.tagFilter)
		m.cursor = 0
	case key.Matches(msg2, keys.Company):
		m.profileID = nextProfile(st.Profiles, m.profileID)
		m.cursor = 0
	case key.Matches(msg2, keys.Sort):
		m.sortIndex = (m.sortIndex + 1) % len(sortOrders)
	case key.Matches(msg2, keys.New):
		return m.showWorkForm(st, false)
	case key.Matches(msg2, keys.Edit):
		if _, ok := m.selected(st); ok {
			return m.showWorkForm(st, true)
		}
	case key.Matches(msg2, keys.Delete):
		if _, ok := m.selected(st); ok {
			return m.showDeleteForm(st)
		}
	case key.Matches(msg2, keys.Tags):
		return m.showTagForm(st)
	}
	return m, nil
}

// nextTag cycles the tag filter: none, then each tag in turn.
func nextTag(tags []portfolio.Tag, current string) string {
	if current == "" {
		if len(tags) == 0 {
			return ""
		}
		return tags[0].Name
	}
	for i, t := range tags {
		if t.Name == current && i+1 < len(tags) {
			return tags[i+1].Name
		}
	}
	return ""
}

func nextProfile(profiles []portfolio.Profile, current *int64) *int64 {
	if len(profiles) == 0 {
		return nil
	}
	if current == nil {
		id := profiles[0].ID
		return &id
	}
	for i, p := range profiles {
		if p.ID == *current && i+1 < len(profiles) {
			id := profiles[i+1].ID
			return &id
		}
	}
	return nil
}

func (m worksModel) showWorkForm(st portfolio.State, edit bool) (worksModel, tea.Cmd) {
	if !m.sess.EditMode() {
		return m, errStatus(errNeedEditMode)
	}
	w := portfolio.Work{AspectRatio: portfolio.Ratio16x9}
	m.formType = "new"
	if edit {
		w, _ = m.selected(st)
		m.formType = "edit"
		m.editingID = w.ID
	}
	*m.title = w.Title
	*m.description = w.Description
	*m.date = w.Date
	*m.projectURL = w.ProjectURL
	*m.aspect = string(w.AspectRatio)
	*m.profile = ""
	if w.ProfileID != nil {
		*m.profile = strconv.FormatInt(*w.ProfileID, 10)
	}
	*m.tags = formatTags(w.Tags)
	*m.images = strings.Join(w.Images, "\n")
	*m.videos = strings.Join(w.Videos, "\n")

	aspectOptions := []huh.Option[string]{huh.NewOption("Not set", "")}
	for _, a := range portfolio.AspectRatios {
		aspectOptions = append(aspectOptions, huh.NewOption(string(a), string(a)))
	}
	profileOptions := []huh.Option[string]{huh.NewOption(portfolio.NoAffiliation, "")}
	for _, p := range st.Profiles {
		profileOptions = append(profileOptions, huh.NewOption(p.Name, strconv.FormatInt(p.ID, 10)))
	}

	m.form = newForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.title).Validate(required("title")),
			huh.NewText().Title("Description").Lines(4).Value(m.description),
			huh.NewInput().Title("Date").Description("YYYY-MM-DD, optional").Value(m.date).Validate(validDate),
			huh.NewInput().Title("Project URL").Value(m.projectURL),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Aspect ratio").Options(aspectOptions...).Value(m.aspect),
			huh.NewSelect[string]().Title("Company").Options(profileOptions...).Value(m.profile),
			huh.NewInput().Title("Tags").Description("Comma separated, optional #color after each name").Value(m.tags),
		),
		huh.NewGroup(
			huh.NewText().Title("Images").Description("One file path or link per line, up to 10 MB each").Lines(4).Value(m.images),
			huh.NewText().Title("Videos").Description("One file path or link per line, up to 50 MB each").Lines(3).Value(m.videos),
		),
	)
	m.formActive = true
	return m, m.form.Init()
}

func validDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	return nil
}

func (m worksModel) showDeleteForm(st portfolio.State) (worksModel, tea.Cmd) {
	if !m.sess.EditMode() {
		return m, errStatus(errNeedEditMode)
	}
	w, _ := m.selected(st)
	m.formType = "delete"
	m.editingID = w.ID
	*m.confirmed = false
	m.form = newForm(huh.NewGroup(
		huh.NewConfirm().Title(fmt.Sprintf("Delete %q?", w.Title)).
			Affirmative("Delete").Negative("Cancel").Value(m.confirmed),
	))
	m.formActive = true
	return m, m.form.Init()
}

// showTagForm lists every distinct tag; clearing a row deletes the tag.
func (m worksModel) showTagForm(st portfolio.State) (worksModel, tea.Cmd) {
	if !m.sess.EditMode() {
		return m, errStatus(errNeedEditMode)
	}
	m.tagOriginal = portfolio.Tags(st.Works)
	if len(m.tagOriginal) == 0 {
		return m, errStatus(fmt.Errorf("no tags to edit"))
	}
	m.tagInputs = make([]*string, len(m.tagOriginal))
	fields := make([]huh.Field, len(m.tagOriginal))
	for i, t := range m.tagOriginal {
		v := t.Name + " " + t.Color
		m.tagInputs[i] = &v
		fields[i] = huh.NewInput().Title(t.Name).Value(m.tagInputs[i])
	}
	m.formType = "tags"
	m.form = newForm(huh.NewGroup(fields...).Title("Edit Tags").
		Description("name #color; clear a row to remove the tag from every work"))
	m.formActive = true
	return m, m.form.Init()
}

func (m worksModel) updateForm(msg tea.Msg) (worksModel, tea.Cmd) {
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

	switch m.formType {
	case "new", "edit":
		return m, m.applyWork()
	case "delete":
		if *m.confirmed {
			m.sess.DeleteWork(m.editingID)
			m.viewing = false
			if m.cursor > 0 {
				m.cursor--
			}
		}
	case "tags":
		m.sess.ApplyTagChanges(m.tagChanges())
	}
	return m, nil
}

func (m worksModel) tagChanges() map[string]*portfolio.Tag {
	edited := make(map[string]*portfolio.Tag, len(m.tagOriginal))
	for i, orig := range m.tagOriginal {
		parsed := parseTags(*m.tagInputs[i])
		if len(parsed) == 0 {
			edited[orig.Name] = nil
			continue
		}
		t := parsed[0]
		if !strings.Contains(*m.tagInputs[i], "#") {
			t.Color = orig.Color
		}
		edited[orig.Name] = &t
	}
	return portfolio.TagChanges(m.tagOriginal, edited)
}

func (m worksModel) applyWork() tea.Cmd {
	images, err := resolveMediaList(m.sess, splitList(*m.images), upload.Image)
	if err != nil {
		return errStatus(err)
	}
	videos, err := resolveMediaList(m.sess, splitList(*m.videos), upload.Video)
	if err != nil {
		for _, r := range images {
			m.sess.DiscardUpload(r)
		}
		return errStatus(err)
	}

	w := portfolio.Work{
		ID:          m.editingID,
		Title:       strings.TrimSpace(*m.title),
		Description: *m.description,
		Date:        strings.TrimSpace(*m.date),
		Images:      images,
		Videos:      videos,
		Tags:        parseTags(*m.tags),
		ProjectURL:  strings.TrimSpace(*m.projectURL),
		AspectRatio: portfolio.AspectRatio(*m.aspect),
	}
	if id, err := strconv.ParseInt(*m.profile, 10, 64); err == nil {
		w.ProfileID = &id
	}
	if len(w.Videos) == 0 {
		w.Videos = nil
	}

	if m.formType == "new" {
		m.sess.AddWork(w)
	} else {
		m.sess.UpdateWork(w)
	}
	return nil
}

func (m worksModel) view() string {
	w := m.width - 4
	st := m.sess.CurrentState()

	if m.formActive && m.form != nil {
		title := map[string]string{"new": "New Work", "edit": "Edit Work", "tags": "Tags", "delete": "Delete Work"}[m.formType]
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", m.form.View())
		return activePanelStyle(st.AccentColor).Width(w).Render(content)
	}
	if m.viewing {
		if work, ok := m.selected(st); ok {
			return m.renderDetail(st, work, w)
		}
	}
	return m.renderList(st, w)
}

func (m worksModel) renderList(st portfolio.State, w int) string {
	title := titleStyle.Render(st.Titles.RecentWorks)

	filters := []string{"sort: " + sortNames[sortOrders[m.sortIndex]]}
	if m.tagFilter != "" {
		filters = append(filters, "tag: "+m.tagFilter)
	}
	if m.profileID != nil {
		filters = append(filters, "company: "+portfolio.AffiliationName(st.Profiles, portfolio.Work{ProfileID: m.profileID}))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", mutedStyle.Render(strings.Join(filters, "  ")))

	works := m.visible(st)
	if len(works) == 0 {
		hint := "No works match. Press f or c to change the filter."
		if len(st.Works) == 0 {
			hint = "No works yet. Enter edit mode and press n to add one."
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", mutedStyle.Render(hint)))
	}

	var rows []string
	rows = append(rows, header, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-32s %-11s %-20s %s", "Title", "Date", "Company", "Tags")))

	for i, work := range works {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle(st.AccentColor)
		}
		var tags []string
		for _, t := range work.Tags {
			tags = append(tags, dot(t.Color)+" "+t.Name)
		}
		row := style.Render(fmt.Sprintf("%s%-32s %-11s %-20s ", cursor,
			truncate(work.Title, 32), work.Date, truncate(portfolio.AffiliationName(st.Profiles, work), 20)))
		rows = append(rows, row+strings.Join(tags, " "))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: view  f: tag  c: company  o: sort  n: new  e: edit  d: delete  t: tags"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m worksModel) renderDetail(st portfolio.State, work portfolio.Work, w int) string {
	var rows []string
	rows = append(rows, lipgloss.NewStyle().Bold(true).Foreground(accent(st.AccentColor)).Render(work.Title))
	meta := []string{work.Date, portfolio.AffiliationName(st.Profiles, work)}
	if work.AspectRatio != "" {
		meta = append(meta, string(work.AspectRatio))
	}
	rows = append(rows, subtitleStyle.Render(strings.Join(meta, " · ")), "")
	rows = append(rows, lipgloss.NewStyle().Width(max(20, w-6)).Render(work.Description), "")

	var tags []string
	for _, t := range work.Tags {
		tags = append(tags, dot(t.Color)+" "+t.Name)
	}
	if len(tags) > 0 {
		rows = append(rows, strings.Join(tags, "  "), "")
	}

	rows = append(rows, titleStyle.Render(fmt.Sprintf("Images (%d)", len(work.Images))))
	for _, ref := range work.Images {
		rows = append(rows, "  "+describeMedia(m.sess, ref))
	}
	if len(work.Videos) > 0 {
		rows = append(rows, titleStyle.Render(fmt.Sprintf("Videos (%d)", len(work.Videos))))
		for _, ref := range work.Videos {
			rows = append(rows, "  "+describeMedia(m.sess, ref))
		}
	}
	if work.ProjectURL != "" {
		rows = append(rows, "", mutedStyle.Render("Project: ")+highlightStyle.Render(work.ProjectURL))
	}
	rows = append(rows, "", mutedStyle.Render("  esc: back  e: edit"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
