package domain

// PuzzleImage is one catalog entry. The catalog is a fixed ordered list
// defined at load time; entries are never mutated.
type PuzzleImage struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	URL     string `yaml:"url" json:"url"`
	Color   string `yaml:"color" json:"color"`
	BGColor string `yaml:"bg_color" json:"bg_color"`
	Demo    bool   `yaml:"demo" json:"demo"`
}

// DefaultCatalog is the compiled-in catalog used when no catalog file is
// configured. The first entry is playable without activation.
func DefaultCatalog() []PuzzleImage {
	return []PuzzleImage{
		{ID: "lpbb1", Name: "Limited Edition 1", URL: "/images/lpbb1.png", Color: "purple", BGColor: "#f5f0ff", Demo: true},
		{ID: "lpbb2", Name: "Puzzle Stock 2", URL: "/images/lpbb2.png", Color: "red", BGColor: "#fff5f5"},
		{ID: "lpbb3", Name: "Puzzle Stock 3", URL: "/images/lpbb3.png", Color: "amber", BGColor: "#fffbeb"},
		{ID: "lpbb8", Name: "Puzzle Stock 8", URL: "/images/lpbb8.png", Color: "yellow", BGColor: "#fffde7"},
		{ID: "lpbb12", Name: "Limited Edition 12", URL: "/images/lpbb12.png", Color: "amber", BGColor: "#efebe9"},
	}
}
