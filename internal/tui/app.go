package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/folio/internal/editor"
	"github.com/sadopc/folio/internal/export"
)

// noticeTTL is how long a status line stays in the footer.
const noticeTTL = 4 * time.Second

// App is the root Bubble Tea model.
type App struct {
	sess   *editor.Session
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	confirmReset *bool
	resetForm    *huh.Form

	about    aboutModel
	works    worksModel
	profiles profilesModel
	site     siteModel

	autosave autosaveTimer
	now      func() time.Time

	help      help.Model
	status    string
	statusErr bool
	statusAt  time.Time
}

func NewApp(s *editor.Session, autosave time.Duration) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		sess:         s,
		activeView:   viewAbout,
		confirmReset: new(bool),
		about:        newAboutModel(s),
		works:        newWorksModel(s),
		profiles:     newProfilesModel(s),
		site:         newSiteModel(s),
		autosave:     newAutosaveTimer(autosave),
		now:          time.Now,
		help:         h,
	}
	if s.EditMode() {
		a.autosave.start(a.now())
	}
	return a
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 5 // header + banner + footer
		a.about.setSize(a.width, contentHeight)
		a.works.setSize(a.width, contentHeight)
		a.profiles.setSize(a.width, contentHeight)
		a.site.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.resetForm != nil {
			return a.updateResetForm(msg)
		}
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Save):
			return a, a.persist(a.sess.SaveNow)
		case key.Matches(msg, keys.EditMode):
			on := !a.sess.EditMode()
			a.sess.SetEditMode(on)
			if on {
				a.autosave.start(a.now())
				a.setStatus("Edit mode on", false)
			} else {
				a.autosave.stop()
				a.setStatus("Edit mode off", false)
			}
			return a, nil
		case key.Matches(msg, keys.Restore):
			if a.sess.DraftAvailable() {
				return a, a.persist(a.sess.RequestDraftRestore)
			}
			return a, nil
		case key.Matches(msg, keys.Dismiss):
			if a.sess.DraftAvailable() {
				return a, a.persist(a.sess.DismissDraft)
			}
			return a, nil
		case key.Matches(msg, keys.Reset):
			return a.showResetForm()
		case key.Matches(msg, keys.Theme):
			a.sess.ToggleTheme()
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewAbout
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewWorks
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewProfiles
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSite
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, nil
		}

	case tickMsg:
		now := time.Time(msg)
		cmds := []tea.Cmd{tickCmd()}
		if a.autosave.tick(now) {
			cmds = append(cmds, a.snapshot())
		}
		if n := a.sess.Notice(); n.Text != "" && now.Sub(n.At) >= noticeTTL {
			a.sess.ClearNotice(n.At)
		}
		if a.status != "" && now.Sub(a.statusAt) >= noticeTTL {
			a.status = ""
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case persistedMsg, snapshotMsg:
		// The session already carries the notice for these.
		a.status = ""
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	if a.resetForm != nil {
		return a.updateResetForm(msg)
	}
	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
	a.statusAt = a.now()
}

// persist runs a store operation off the UI goroutine.
func (a App) persist(op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return persistedMsg{err: op(context.Background())}
	}
}

func (a App) snapshot() tea.Cmd {
	sess := a.sess
	return func() tea.Msg {
		wrote, err := sess.Snapshot(context.Background())
		return snapshotMsg{wrote: wrote, err: err}
	}
}

func (a App) showResetForm() (tea.Model, tea.Cmd) {
	*a.confirmReset = false
	a.resetForm = newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset everything?").
				Description("The saved portfolio and any draft are removed and the defaults come back.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(a.confirmReset),
		),
	)
	return a, a.resetForm.Init()
}

func (a App) updateResetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd, done, cancelled := formStep(a.resetForm, msg)
	if cancelled {
		a.resetForm = nil
		return a, nil
	}
	a.resetForm = form
	if !done {
		return a, cmd
	}
	a.resetForm = nil
	if !*a.confirmReset {
		return a, nil
	}
	return a, a.persist(a.sess.ResetAll)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewAbout:
		a.about, cmd = a.about.update(msg)
	case viewWorks:
		a.works, cmd = a.works.update(msg)
	case viewProfiles:
		a.profiles, cmd = a.profiles.update(msg)
	case viewSite:
		a.site, cmd = a.site.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewAbout:
		return a.about.formActive
	case viewWorks:
		return a.works.formActive
	case viewProfiles:
		return a.profiles.formActive
	case viewSite:
		return a.site.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewAbout:
		content = a.about.view()
	case viewWorks:
		content = a.works.view()
	case viewProfiles:
		content = a.profiles.view()
	case viewSite:
		content = a.site.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)

	switch {
	case a.resetForm != nil:
		content = activePanelStyle(a.sess.CurrentState().AccentColor).
			Width(a.width - 4).
			Render(a.resetForm.View())
	case a.exportPicking:
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	st := a.sess.CurrentState()
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle(st.AccentColor).Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	label := "folio"
	if st.Name != "" {
		label = "folio · " + st.Name
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(accent(st.AccentColor)).Render(label)
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	header := headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
	if a.sess.DraftAvailable() {
		header = lipgloss.JoinVertical(lipgloss.Left, header,
			bannerStyle.Width(a.width).Render("Unsaved draft from a previous session: R restore  X dismiss"))
	}
	return header
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	var right string
	if !a.sess.Ready() {
		right += warningStyle.Render(" storage unavailable")
	}
	if at := a.sess.SavedAt(); !at.IsZero() {
		right += mutedStyle.Render(" saved " + at.Local().Format("Jan 2 15:04"))
	}
	if a.sess.EditMode() {
		right += successStyle.Render(" ● editing")
		if a.autosave.running {
			right += mutedStyle.Render(" draft in " + formatCountdown(a.autosave.remaining(a.now())))
		}
	}

	text, isErr := a.status, a.statusErr
	if text == "" {
		n := a.sess.Notice()
		text, isErr = n.Text, n.IsError
	}
	if text != "" {
		if isErr {
			right += errorStyle.Render(" " + text)
		} else {
			right += mutedStyle.Render(" " + text)
		}
	}

	left := footerStyle.Render(helpView)
	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"Works (CSV)", "Portfolio (JSON)"}

func (a App) renderExportPicker() string {
	color := a.sess.CurrentState().AccentColor
	rows := []string{titleStyle.Render("Export Format"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle(color)
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle(color).Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	sess := a.sess
	return func() tea.Msg {
		st := sess.CurrentState()
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("folio-works-%s.csv", dateStr))
			if err := export.WorksToCSV(st.Works, st.Profiles, sess, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("folio-export-%s.json", dateStr))
			if err := export.ToJSON(st, sess, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}
		return exportDoneMsg{path: path}
	}
}
