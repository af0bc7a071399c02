package portfolio

// Patch is one named update to the state. Patches are applied to a clone, so
// a caller always sees either the old or the new state.
type Patch func(*State)

// Apply returns a copy of s with every patch applied in order.
func (s State) Apply(patches ...Patch) State {
	next := s.Clone()
	for _, p := range patches {
		if p != nil {
			p(&next)
		}
	}
	return next
}

func SetTheme(t Theme) Patch {
	return func(s *State) { s.Theme = t }
}

func ToggleTheme() Patch {
	return func(s *State) {
		if s.Theme == ThemeLight {
			s.Theme = ThemeDark
		} else {
			s.Theme = ThemeLight
		}
	}
}

func SetAccentColor(color string) Patch {
	return func(s *State) { s.AccentColor = color }
}

func SetIdentity(name, title string) Patch {
	return func(s *State) {
		s.Name = name
		s.Title = title
	}
}

// SetResume replaces the resume; nil removes it.
func SetResume(f *FileRef) Patch {
	return func(s *State) { s.Resume = cloneFile(f) }
}

func SetAbout(title, content string) Patch {
	return func(s *State) {
		s.AboutTitle = title
		s.AboutContent = content
	}
}

// SetAboutImage replaces the about image; nil removes it.
func SetAboutImage(f *FileRef) Patch {
	return func(s *State) { s.AboutImage = cloneFile(f) }
}

func SetSkills(skills []Skill) Patch {
	return func(s *State) {
		out := make([]Skill, len(skills))
		for i, sk := range skills {
			out[i] = Skill{Name: sk.Name, Proficiency: clampProficiency(sk.Proficiency)}
		}
		s.Skills = out
	}
}

func clampProficiency(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func SetSectionTitles(t SectionTitles) Patch {
	return func(s *State) { s.Titles = t }
}

func SetServices(services []string) Patch {
	return func(s *State) { s.Services = cloneSlice(services) }
}

func SetTools(tools []string) Patch {
	return func(s *State) { s.Tools = cloneSlice(tools) }
}

func SetSocialLinks(links []SocialLink) Patch {
	return func(s *State) { s.SocialLinks = cloneSlice(links) }
}

// SetBanner replaces the banner. A color background never keeps a media URL.
func SetBanner(b Banner) Patch {
	return func(s *State) {
		if !b.BackgroundType.HoldsMedia() {
			b.BackgroundURL = ""
		}
		s.Banner = b
	}
}

func SetPageBackground(bg PageBackground) Patch {
	return func(s *State) { s.PageBackground = bg }
}

func SetProfiles(profiles []Profile) Patch {
	return func(s *State) { s.Profiles = cloneSlice(profiles) }
}

func SetWorks(works []Work) Patch {
	return func(s *State) { s.Works = cloneWorks(works) }
}

// AddWork appends w with the next free id.
func AddWork(w Work) Patch {
	return func(s *State) {
		w = w.Clone()
		w.ID = NextWorkID(s.Works)
		s.Works = append(s.Works, w)
	}
}

// UpdateWork replaces the work with the same id.
func UpdateWork(w Work) Patch {
	return func(s *State) {
		for i := range s.Works {
			if s.Works[i].ID == w.ID {
				s.Works[i] = w.Clone()
				return
			}
		}
	}
}

func DeleteWork(id int64) Patch {
	return func(s *State) {
		out := s.Works[:0:0]
		for _, w := range s.Works {
			if w.ID != id {
				out = append(out, w)
			}
		}
		s.Works = out
	}
}

// AddProfile appends p with the next free id.
func AddProfile(p Profile) Patch {
	return func(s *State) {
		p.ID = NextProfileID(s.Profiles)
		s.Profiles = append(s.Profiles, p)
	}
}

func UpdateProfile(p Profile) Patch {
	return func(s *State) {
		for i := range s.Profiles {
			if s.Profiles[i].ID == p.ID {
				s.Profiles[i] = p
				return
			}
		}
	}
}

// DeleteProfile removes a company profile. Works that point at it are kept;
// their affiliation simply stops resolving.
func DeleteProfile(id int64) Patch {
	return func(s *State) {
		out := s.Profiles[:0:0]
		for _, p := range s.Profiles {
			if p.ID != id {
				out = append(out, p)
			}
		}
		s.Profiles = out
	}
}

// ChangeTags propagates tag renames, recolors and deletions to every work.
func ChangeTags(changes map[string]*Tag) Patch {
	return func(s *State) { s.Works = ApplyTagChanges(s.Works, changes) }
}
