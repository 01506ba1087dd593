package works

// Seed returns a fresh copy of the built-in works list. Ids are not
// contiguous; new ids continue from the highest one.
func Seed() []Work {
	return []Work{
		{
			ID:          "1",
			Title:       "Linksdao.io",
			Category:    CategoryWebDevelopment,
			Year:        2022,
			Client:      "LinksDAO",
			Duration:    "Website",
			Thumbnail:   "https://www.linksdao.io/opengraph-image.png?141bc99611faeb22",
			ProjectURL:  "https://linksdao.io",
			Description: "A Web3 platform for golf enthusiasts and NFT collectors. Blockchain integration, community-driven governance and a tokenizing platform running on Solana.",
			Credits: Credits{
				Developer: "Kraig Hamrick",
				Designer:  "Web3 Design Studio",
				Agency:    "LinksDAO Development Team",
			},
		},
		{
			ID:          "6",
			Title:       "Fairway Atlas",
			Category:    CategoryWebDevelopment,
			Year:        2024,
			Client:      "Golf Community",
			Duration:    "Platform",
			Thumbnail:   "https://i.imgur.com/LFhGteA.png",
			ProjectURL:  "https://preview-real-estate-home-page-kzmjztzq5q0bqbi1ieem.vusercontent.net/",
			Description: "A golf course discovery and mapping platform with interactive course directories, user reviews and advanced search.",
			Credits: Credits{
				Developer: "Kraig Hamrick",
				Designer:  "Kraig Hamrick",
			},
		},
		{
			ID:          "3",
			Title:       "Augusta National Experience",
			Category:    CategoryWebDevelopment,
			Year:        2024,
			Client:      "Augusta National Golf Club",
			Duration:    "Website",
			Thumbnail:   "https://media3.giphy.com/media/3rMFbbrDNXztHKbGPR/giphy.gif",
			ProjectURL:  "https://example.com/augusta",
			Description: "An immersive digital experience of the Masters Tournament grounds with course photography, historical content and virtual tours.",
			Credits: Credits{
				Developer: "Kraig Hamrick",
				Agency:    "Golf Digital Media",
			},
		},
		{
			ID:          "4",
			Title:       "St. Andrews Links",
			Category:    CategoryWebDevelopment,
			Year:        2023,
			Client:      "St. Andrews Links Trust",
			Duration:    "Website",
			Thumbnail:   "https://images.unsplash.com/photo-1687291133565-767706032bed?q=80&w=800&h=600&fit=crop",
			ProjectURL:  "https://example.com/st-andrews",
			Description: "A heritage-focused website for the Home of Golf, pairing traditional Scottish aesthetics with course information and booking.",
			Credits: Credits{
				Developer:    "Kraig Hamrick",
				Photographer: "Scottish Heritage Media",
			},
		},
	}
}
