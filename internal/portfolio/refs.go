package portfolio

// References returns every media reference held anywhere in s. Background
// values only count while their variant holds media.
func References(s State) map[string]struct{} {
	refs := make(map[string]struct{})
	add := func(v string) {
		if v != "" {
			refs[v] = struct{}{}
		}
	}

	if s.Resume != nil {
		add(s.Resume.URL)
	}
	if s.AboutImage != nil {
		add(s.AboutImage.URL)
	}
	if s.Banner.BackgroundType.HoldsMedia() {
		add(s.Banner.BackgroundURL)
	}
	if s.PageBackground.Type.HoldsMedia() {
		add(s.PageBackground.Value)
	}
	for _, w := range s.Works {
		for _, img := range w.Images {
			add(img)
		}
		for _, v := range w.Videos {
			add(v)
		}
	}
	return refs
}
