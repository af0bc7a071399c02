package portfolio

// Tags returns the distinct tags across works, in first-seen order. The
// first color seen for a name wins.
func Tags(works []Work) []Tag {
	seen := make(map[string]bool)
	var tags []Tag
	for _, w := range works {
		for _, t := range w.Tags {
			if seen[t.Name] {
				continue
			}
			seen[t.Name] = true
			tags = append(tags, t)
		}
	}
	return tags
}

// ApplyTagChanges rewrites the tags of every work. changes maps an original
// tag name to its replacement, or to nil to delete it. Names not in changes
// are left alone. The input slice is not modified.
func ApplyTagChanges(works []Work, changes map[string]*Tag) []Work {
	out := cloneWorks(works)
	if len(changes) == 0 {
		return out
	}

	for i := range out {
		var tags []Tag
		seen := make(map[string]bool)
		for _, t := range out[i].Tags {
			next := t
			if repl, ok := changes[t.Name]; ok {
				if repl == nil {
					continue
				}
				next = *repl
			}
			// A rename onto a name the work already carries collapses into one tag.
			if seen[next.Name] {
				continue
			}
			seen[next.Name] = true
			tags = append(tags, next)
		}
		out[i].Tags = tags
	}
	return out
}

// TagChanges diffs an edited tag list against the original one, keyed by
// original name. Only renamed, recolored or deleted tags are returned.
func TagChanges(original []Tag, edited map[string]*Tag) map[string]*Tag {
	changes := make(map[string]*Tag)
	for _, orig := range original {
		ed, ok := edited[orig.Name]
		if !ok {
			continue
		}
		if ed == nil {
			changes[orig.Name] = nil
			continue
		}
		if ed.Name != orig.Name || ed.Color != orig.Color {
			t := *ed
			changes[orig.Name] = &t
		}
	}
	return changes
}
