package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/folio/internal/portfolio"
)

// viewState represents the currently active view.
type viewState int

const (
	viewAbout viewState = iota
	viewWorks
	viewProfiles
	viewSite
)

var viewNames = []string{"About", "Works", "Profiles", "Site"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// persistedMsg reports the end of a save, reset, restore or dismiss.
type persistedMsg struct {
	err error
}

type snapshotMsg struct {
	wrote bool
	err   error
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

// splitList splits comma or newline separated text, dropping blanks.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// formatSkills renders skills one per line as "name: proficiency".
func formatSkills(skills []portfolio.Skill) string {
	lines := make([]string, len(skills))
	for i, s := range skills {
		lines[i] = fmt.Sprintf("%s: %d", s.Name, s.Proficiency)
	}
	return strings.Join(lines, "\n")
}

func parseSkills(s string) ([]portfolio.Skill, error) {
	var skills []portfolio.Skill
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		i := strings.LastIndex(line, ":")
		if i < 0 {
			return nil, fmt.Errorf("%q: want \"name: proficiency\"", line)
		}
		p, err := strconv.Atoi(strings.TrimSpace(line[i+1:]))
		if err != nil {
			return nil, fmt.Errorf("%q: proficiency must be a number", line)
		}
		skills = append(skills, portfolio.Skill{Name: strings.TrimSpace(line[:i]), Proficiency: p})
	}
	return skills, nil
}

// formatTags renders tags as "name #color, ...".
func formatTags(tags []portfolio.Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = strings.TrimSpace(t.Name + " " + t.Color)
	}
	return strings.Join(parts, ", ")
}

func parseTags(s string) []portfolio.Tag {
	var tags []portfolio.Tag
	seen := make(map[string]bool)
	for _, part := range splitList(s) {
		name, color := part, tagColors[len(tags)%len(tagColors)]
		if i := strings.LastIndex(part, "#"); i > 0 {
			name, color = strings.TrimSpace(part[:i]), part[i:]
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, portfolio.Tag{Name: name, Color: color})
	}
	return tags
}

// formatLinks renders social links one per line as "icon | label | href".
func formatLinks(links []portfolio.SocialLink) string {
	lines := make([]string, len(links))
	for i, l := range links {
		lines[i] = l.Icon + " | " + l.Label + " | " + l.Href
	}
	return strings.Join(lines, "\n")
}

func parseLinks(s string) ([]portfolio.SocialLink, error) {
	var links []portfolio.SocialLink
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%q: want \"icon | label | href\"", line)
		}
		links = append(links, portfolio.SocialLink{
			Icon:  strings.TrimSpace(parts[0]),
			Label: strings.TrimSpace(parts[1]),
			Href:  strings.TrimSpace(parts[2]),
		})
	}
	return links, nil
}

// isLink reports whether s names an external resource rather than a local
// file path.
func isLink(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || s == "#"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
