package portfolio

import (
	"sort"
	"strings"
)

const NoAffiliation = "No affiliation"

func NextWorkID(works []Work) int64 {
	var max int64
	for _, w := range works {
		if w.ID > max {
			max = w.ID
		}
	}
	return max + 1
}

func NextProfileID(profiles []Profile) int64 {
	var max int64
	for _, p := range profiles {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// Affiliation resolves the company profile of w. The second result is false
// when w has none or points at a deleted profile.
func Affiliation(profiles []Profile, w Work) (Profile, bool) {
	if w.ProfileID == nil {
		return Profile{}, false
	}
	for _, p := range profiles {
		if p.ID == *w.ProfileID {
			return p, true
		}
	}
	return Profile{}, false
}

// AffiliationName is Affiliation for display.
func AffiliationName(profiles []Profile, w Work) string {
	if p, ok := Affiliation(profiles, w); ok {
		return p.Name
	}
	return NoAffiliation
}

type SortOrder string

const (
	SortDateDesc  SortOrder = "date-desc"
	SortDateAsc   SortOrder = "date-asc"
	SortTitleAsc  SortOrder = "title-asc"
	SortTitleDesc SortOrder = "title-desc"
)

// WorkFilter narrows the works view. A work matches when it carries every
// tag in Tags and, if ProfileID is set, belongs to that profile.
type WorkFilter struct {
	Tags      []string
	ProfileID *int64
	Sort      SortOrder
}

func FilterWorks(works []Work, f WorkFilter) []Work {
	var out []Work
	for _, w := range works {
		if f.ProfileID != nil && (w.ProfileID == nil || *w.ProfileID != *f.ProfileID) {
			continue
		}
		if !hasAllTags(w, f.Tags) {
			continue
		}
		out = append(out, w)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch f.Sort {
		case SortDateAsc:
			return a.Date < b.Date
		case SortTitleAsc:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortTitleDesc:
			return strings.ToLower(a.Title) > strings.ToLower(b.Title)
		default:
			return a.Date > b.Date
		}
	})
	return out
}

func hasAllTags(w Work, names []string) bool {
	for _, n := range names {
		found := false
		for _, t := range w.Tags {
			if t.Name == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
