package editor

import "github.com/sadopc/folio/internal/portfolio"

// Named updates, one per section of the site.

func (s *Session) SetIdentity(name, title string) {
	s.ApplyState(portfolio.SetIdentity(name, title))
}

func (s *Session) SetResume(f *portfolio.FileRef) { s.ApplyState(portfolio.SetResume(f)) }

func (s *Session) SetAbout(title, content string) {
	s.ApplyState(portfolio.SetAbout(title, content))
}

func (s *Session) SetAboutImage(f *portfolio.FileRef) { s.ApplyState(portfolio.SetAboutImage(f)) }
func (s *Session) SetSkills(skills []portfolio.Skill) { s.ApplyState(portfolio.SetSkills(skills)) }
func (s *Session) SetProfiles(p []portfolio.Profile)  { s.ApplyState(portfolio.SetProfiles(p)) }
func (s *Session) SetWorks(works []portfolio.Work)    { s.ApplyState(portfolio.SetWorks(works)) }
func (s *Session) SetTools(tools []string)            { s.ApplyState(portfolio.SetTools(tools)) }
func (s *Session) SetServices(services []string)      { s.ApplyState(portfolio.SetServices(services)) }

func (s *Session) SetSocialLinks(links []portfolio.SocialLink) {
	s.ApplyState(portfolio.SetSocialLinks(links))
}

func (s *Session) SetBanner(b portfolio.Banner) { s.ApplyState(portfolio.SetBanner(b)) }

func (s *Session) SetPageBackground(bg portfolio.PageBackground) {
	s.ApplyState(portfolio.SetPageBackground(bg))
}

func (s *Session) SetAccentColor(color string) { s.ApplyState(portfolio.SetAccentColor(color)) }
func (s *Session) SetTheme(t portfolio.Theme)  { s.ApplyState(portfolio.SetTheme(t)) }
func (s *Session) ToggleTheme()                { s.ApplyState(portfolio.ToggleTheme()) }

func (s *Session) SetSectionTitles(t portfolio.SectionTitles) {
	s.ApplyState(portfolio.SetSectionTitles(t))
}

// ApplyTagChanges propagates the tag editor's result to every work. An empty
// change set leaves the state alone.
func (s *Session) ApplyTagChanges(changes map[string]*portfolio.Tag) {
	if len(changes) == 0 {
		return
	}
	s.ApplyState(portfolio.ChangeTags(changes))
}

func (s *Session) AddWork(w portfolio.Work)       { s.ApplyState(portfolio.AddWork(w)) }
func (s *Session) UpdateWork(w portfolio.Work)    { s.ApplyState(portfolio.UpdateWork(w)) }
func (s *Session) DeleteWork(id int64)            { s.ApplyState(portfolio.DeleteWork(id)) }
func (s *Session) AddProfile(p portfolio.Profile) { s.ApplyState(portfolio.AddProfile(p)) }

func (s *Session) UpdateProfile(p portfolio.Profile) { s.ApplyState(portfolio.UpdateProfile(p)) }
func (s *Session) DeleteProfile(id int64)            { s.ApplyState(portfolio.DeleteProfile(id)) }
