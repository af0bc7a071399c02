package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/folio/internal/editor"
	"github.com/sadopc/folio/internal/portfolio"
)

type profilesModel struct {
	sess   *editor.Session
	width  int
	height int

	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit", "delete"
	editingID  int64

	// Form field pointers (survive value copies)
	name, role, duration, description *string
	confirmed                         *bool
}

func newProfilesModel(s *editor.Session) profilesModel {
	return profilesModel{
		sess:        s,
		name:        new(string),
		role:        new(string),
		duration:    new(string),
		description: new(string),
		confirmed:   new(bool),
	}
}

func (m *profilesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m profilesModel) update(msg tea.Msg) (profilesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	profiles := m.sess.CurrentState().Profiles

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(profiles)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		return m.showForm(portfolio.Profile{}, "new")
	case key.Matches(keyMsg, keys.Edit), key.Matches(keyMsg, keys.Enter):
		if m.cursor < len(profiles) {
			return m.showForm(profiles[m.cursor], "edit")
		}
	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(profiles) {
			return m.showDeleteForm(profiles[m.cursor])
		}
	}
	return m, nil
}

func (m profilesModel) showForm(p portfolio.Profile, kind string) (profilesModel, tea.Cmd) {
	if !m.sess.EditMode() {
		return m, errStatus(errNeedEditMode)
	}
	*m.name, *m.role, *m.duration, *m.description = p.Name, p.Role, p.Duration, p.Description
	m.formType = kind
	m.editingID = p.ID

	m.form = newForm(huh.NewGroup(
		huh.NewInput().Title("Company").Value(m.name).Validate(required("company name")),
		huh.NewInput().Title("Role").Value(m.role),
		huh.NewInput().Title("Duration").Placeholder("2021 - Present").Value(m.duration),
		huh.NewText().Title("Description").Lines(4).Value(m.description),
	))
	m.formActive = true
	return m, m.form.Init()
}

func (m profilesModel) showDeleteForm(p portfolio.Profile) (profilesModel, tea.Cmd) {
	if !m.sess.EditMode() {
		return m, errStatus(errNeedEditMode)
	}
	*m.confirmed = false
	m.formType = "delete"
	m.editingID = p.ID
	m.form = newForm(huh.NewGroup(
		huh.NewConfirm().Title(fmt.Sprintf("Delete %q?", p.Name)).
			Description("Works linked to it are kept and show no affiliation.").
			Affirmative("Delete").Negative("Cancel").Value(m.confirmed),
	))
	m.formActive = true
	return m, m.form.Init()
}

func (m profilesModel) updateForm(msg tea.Msg) (profilesModel, tea.Cmd) {
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

	p := portfolio.Profile{
		ID:          m.editingID,
		Name:        strings.TrimSpace(*m.name),
		Role:        strings.TrimSpace(*m.role),
		Duration:    strings.TrimSpace(*m.duration),
		Description: *m.description,
	}
	switch m.formType {
	case "new":
		m.sess.AddProfile(p)
	case "edit":
		m.sess.UpdateProfile(p)
	case "delete":
		if *m.confirmed {
			m.sess.DeleteProfile(m.editingID)
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

func (m profilesModel) view() string {
	w := m.width - 4
	st := m.sess.CurrentState()

	if m.formActive && m.form != nil {
		title := map[string]string{"new": "New Company Profile", "edit": "Edit Company Profile", "delete": "Delete Company Profile"}[m.formType]
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", m.form.View())
		return activePanelStyle(st.AccentColor).Width(w).Render(content)
	}

	title := titleStyle.Render(st.Titles.CompanyProfiles)
	if len(st.Profiles) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No company profiles. Enter edit mode and press n to add one.")))
	}

	counts := make(map[int64]int)
	for _, work := range st.Works {
		if p, ok := portfolio.Affiliation(st.Profiles, work); ok {
			counts[p.ID]++
		}
	}

	var rows []string
	rows = append(rows, title, "")
	for i, p := range st.Profiles {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle(st.AccentColor)
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s %-26s %s", cursor, truncate(p.Name, 24), truncate(p.Role, 26), p.Duration))+
			mutedStyle.Render(fmt.Sprintf("  %d works", counts[p.ID])))
		if i == m.cursor && p.Description != "" {
			rows = append(rows, mutedStyle.Width(max(20, w-10)).Render("    "+p.Description))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
