package works

import "kh-portfolio/internal/utils"

const (
	CategoryWebDevelopment = "Web Development"
	CategoryEcommerce      = "E-commerce"
	CategoryCorporate      = "Corporate"
	CategoryPortfolio      = "Portfolio"
)

// Categories lists the allowed categories in dashboard order.
var Categories = []string{
	CategoryWebDevelopment,
	CategoryEcommerce,
	CategoryCorporate,
	CategoryPortfolio,
}

// PlaceholderURL marks a work without a live site.
const PlaceholderURL = "#"

type Credits struct {
	Developer    string `json:"developer" yaml:"developer"`
	Designer     string `json:"designer,omitempty" yaml:"designer,omitempty"`
	Photographer string `json:"photographer,omitempty" yaml:"photographer,omitempty"`
	Agency       string `json:"agency,omitempty" yaml:"agency,omitempty"`
}

type Work struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Category    string  `json:"category" yaml:"category"`
	Year        int     `json:"year" yaml:"year"`
	Client      string  `json:"client,omitempty" yaml:"client,omitempty"`
	Duration    string  `json:"duration" yaml:"duration"`
	Thumbnail   string  `json:"thumbnail" yaml:"thumbnail"`
	ProjectURL  string  `json:"projectUrl" yaml:"projectUrl"`
	Description string  `json:"description" yaml:"description"`
	Credits     Credits `json:"credits" yaml:"credits"`
}

// HasProjectURL reports whether the work links somewhere a visitor can go.
func (w Work) HasProjectURL() bool {
	return w.ProjectURL != "" && w.ProjectURL != PlaceholderURL
}

// Slug is the title in url form, usable in place of the id on public reads.
func (w Work) Slug() string {
	return utils.Slugify(w.Title)
}

// Draft is a work that has not been assigned an id yet.
type Draft struct {
	Title       string
	Category    string
	Year        int
	Client      string
	Duration    string
	Thumbnail   string
	ProjectURL  string
	Description string
	Credits     Credits
}

func (d Draft) withID(id string) Work {
	return Work{
		ID:          id,
		Title:       d.Title,
		Category:    d.Category,
		Year:        d.Year,
		Client:      d.Client,
		Duration:    d.Duration,
		Thumbnail:   d.Thumbnail,
		ProjectURL:  d.ProjectURL,
		Description: d.Description,
		Credits:     d.Credits,
	}
}

type CreditsRequest struct {
	Developer    string `json:"developer" validate:"required"`
	Designer     string `json:"designer"`
	Photographer string `json:"photographer"`
	Agency       string `json:"agency"`
}

// UpsertRequest is the admin work form. Thumbnail is checked by the form
// itself before validation so the missing image gets its own message.
type UpsertRequest struct {
	Title       string         `json:"title" validate:"required,max=200"`
	Category    string         `json:"category" validate:"required,category"`
	Year        int            `json:"year" validate:"required,gte=2000,lte=2100"`
	Client      string         `json:"client"`
	Duration    string         `json:"duration" validate:"required,max=80"`
	Thumbnail   string         `json:"thumbnail"`
	ProjectURL  string         `json:"projectUrl" validate:"required,project_url"`
	Description string         `json:"description" validate:"required"`
	Credits     CreditsRequest `json:"credits"`
}

type Stats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
}

type ListFilter struct {
	Category string
	Sort     string
}

const (
	SortInsertion = ""
	SortYearAsc   = "year_asc"
	SortYearDesc  = "year_desc"
)
