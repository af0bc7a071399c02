package portfolio

func int64Ptr(v int64) *int64 { return &v }

// Defaults returns the first-run content.
func Defaults() State {
	return State{
		Theme:        ThemeDark,
		AccentColor:  "#6C63FF",
		Resume:       &FileRef{Name: "SanthoshGoka_Resume.pdf", URL: "#"},
		Name:         "Santhosh Goka",
		Title:        "Motion Graphics Artist",
		AboutTitle:   "About Me",
		AboutContent: "I'm a passionate Motion Graphics Artist with a knack for creating visually stunning and compelling animations. With a strong foundation in design principles and years of experience with industry-standard software, I specialize in bringing ideas to life through movement, whether it's for brand identities, explainer videos, or social media campaigns. My goal is to tell stories that captivate and engage audiences.",
		Skills: []Skill{
			{Name: "After Effects", Proficiency: 95},
			{Name: "Cinema 4D", Proficiency: 90},
			{Name: "Blender", Proficiency: 85},
			{Name: "Photoshop", Proficiency: 80},
			{Name: "Premiere Pro", Proficiency: 88},
			{Name: "Illustrator", Proficiency: 75},
		},
		Titles: SectionTitles{
			CompanyProfiles: "Company Profiles",
			RecentWorks:     "Recent Works",
			Services:        "Services",
			Tools:           "Tools I Use",
		},
		Services: []string{"SEO", "Framer", "UX/UI Design", "Webflow", "Social Media", "Branding", "3D Design"},
		Tools:    []string{"Photoshop", "After Effects", "Premiere Pro", "Illustrator", "Blender", "Cinema 4D"},
		SocialLinks: []SocialLink{
			{Icon: "X", Label: "X", Href: "#"},
			{Icon: "LinkedIn", Label: "LinkedIn", Href: "#"},
			{Icon: "Gmail", Label: "Gmail", Href: "mailto:example@gmail.com"},
			{Icon: "Phone", Label: "Contact", Href: "tel:+"},
			{Icon: "Location", Label: "Location", Href: "#"},
		},
		Banner: Banner{
			Title:             "Let's collab!",
			Content:           "Let's turn your idea into reality with my design experience!",
			ButtonText:        "Send a message now!",
			ButtonLink:        "#",
			BackgroundType:    BackgroundColor,
			BackgroundMaxSize: 10,
		},
		PageBackground: PageBackground{
			Type:  BackgroundImage,
			Value: "https://images.unsplash.com/photo-1542029027-563d3fb7d855?q=80&w=2071&auto=format&fit=crop",
		},
		Profiles: []Profile{
			{ID: 1, Name: "Alpha Studios", Role: "Lead Motion Designer", Duration: "2021 - Present",
				Description: "Led a team of designers in creating compelling motion graphics for major brand campaigns and product launches."},
			{ID: 2, Name: "Beta Creative", Role: "Motion Graphics Artist", Duration: "2019 - 2021",
				Description: "Developed animations, visual effects, and video assets for a variety of clients in the tech and entertainment sectors."},
			{ID: 3, Name: "Charlie Animations", Role: "Junior Animator", Duration: "2017 - 2019",
				Description: "Assisted senior artists with 2D animation, storyboarding, and asset creation for animated series and commercials."},
		},
		Works: []Work{
			{
				ID:          1,
				Title:       "Project Alpha Showcase",
				Date:        "2023-11-15",
				Description: "A dynamic showcase of motion graphics for the Project Alpha campaign, featuring 3D animations and visual effects.",
				Images: []string{
					"https://images.unsplash.com/photo-1558655146-d09347e92766?q=80&w=1200&h=675&auto=format&fit=crop",
					"https://images.unsplash.com/photo-1526498460520-4c246339dccb?q=80&w=1200&h=675&auto=format&fit=crop",
				},
				Videos:      []string{"https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"},
				Tags:        []Tag{{Name: "Animation", Color: "#FF6F61"}, {Name: "3D", Color: "#6B5B95"}},
				ProjectURL:  "#",
				ProfileID:   int64Ptr(1),
				AspectRatio: Ratio16x9,
			},
			{
				ID:          2,
				Title:       "Creative Beta Reel",
				Date:        "2023-08-20",
				Description: "A compilation of our best work for Beta Creative, highlighting branding animations and social media content.",
				Images:      []string{"https://images.unsplash.com/photo-1522124012248-3c3b0f5b6f3b?q=80&w=800&h=800&auto=format&fit=crop"},
				Tags:        []Tag{{Name: "Branding", Color: "#88B04B"}, {Name: "Social Media", Color: "#F7CAC9"}},
				ProjectURL:  "#",
				ProfileID:   int64Ptr(2),
				AspectRatio: Ratio1x1,
			},
			{
				ID:          3,
				Title:       "Charlie's Animated Shorts",
				Date:        "2022-05-10",
				Description: "A series of charming animated shorts created for Charlie Animations, focusing on storytelling and character design.",
				Images:      []string{"https://images.unsplash.com/photo-1611162617213-7d724e87c5d3?q=80&w=1200&h=900&auto=format&fit=crop"},
				Tags:        []Tag{{Name: "Animation", Color: "#FF6F61"}, {Name: "Storytelling", Color: "#92A8D1"}},
				ProfileID:   int64Ptr(3),
				AspectRatio: Ratio4x3,
			},
			{
				ID:          4,
				Title:       "Standalone VFX Work",
				Date:        "2024-01-05",
				Description: "Exploring advanced visual effects techniques for a personal project.",
				Images:      []string{"https://images.unsplash.com/photo-1581291518857-4e27b48ff24e?q=80&w=1200&h=675&auto=format&fit=crop"},
				Tags:        []Tag{{Name: "VFX", Color: "#955251"}, {Name: "3D", Color: "#6B5B95"}},
				AspectRatio: Ratio16x9,
			},
		},
	}
}
