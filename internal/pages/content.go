// Package pages serves the fixed site copy: hero, about, contact, footer, the
// works placeholder and the 404 page.
package pages

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

type Hero struct {
	Name     string `yaml:"name" json:"name"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	Title    string `yaml:"title" json:"title"`
	Location string `yaml:"location" json:"location"`
	VideoURL string `yaml:"video_url" json:"video_url,omitempty"`
}

type Experience struct {
	Role         string `yaml:"role" json:"role"`
	Period       string `yaml:"period" json:"period"`
	Organization string `yaml:"organization" json:"organization"`
}

type SkillGroup struct {
	Title string   `yaml:"title" json:"title"`
	Items []string `yaml:"items" json:"items"`
}

type About struct {
	Name           string       `yaml:"name" json:"name"`
	Title          string       `yaml:"title" json:"title"`
	Portrait       string       `yaml:"portrait" json:"portrait"`
	Bio            []string     `yaml:"bio" json:"bio"`
	Experience     []Experience `yaml:"experience" json:"experience"`
	Skills         []string     `yaml:"skills" json:"skills"`
	Infrastructure []SkillGroup `yaml:"infrastructure" json:"infrastructure"`
}

type Contact struct {
	Email    string `yaml:"email" json:"email"`
	Phone    string `yaml:"phone" json:"phone"`
	Location string `yaml:"location" json:"location"`
}

// Link is a social link. "#" is a placeholder and goes nowhere.
type Link struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

type Footer struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Copyright   string `yaml:"copyright" json:"copyright"`
	Tagline     string `yaml:"tagline" json:"tagline"`
}

type NotFoundCopy struct {
	Code     string   `yaml:"code" json:"code"`
	Hint     string   `yaml:"hint" json:"hint"`
	Messages []string `yaml:"messages" json:"messages"`
}

type WorksPage struct {
	Title              string   `yaml:"title" json:"title"`
	Subtitle           string   `yaml:"subtitle" json:"subtitle"`
	PlaceholderHeading string   `yaml:"placeholder_heading" json:"placeholder_heading"`
	PlaceholderBody    string   `yaml:"placeholder_body" json:"placeholder_body"`
	Sections           []string `yaml:"sections" json:"sections"`
	CallToAction       string   `yaml:"call_to_action" json:"call_to_action"`
}

type Content struct {
	Hero      Hero         `yaml:"hero" json:"hero"`
	About     About        `yaml:"about" json:"about"`
	Contact   Contact      `yaml:"contact" json:"contact"`
	Social    []Link       `yaml:"social" json:"social"`
	Footer    Footer       `yaml:"footer" json:"footer"`
	NotFound  NotFoundCopy `yaml:"not_found" json:"not_found"`
	WorksPage WorksPage    `yaml:"works_page" json:"works_page"`

	// BioHTML is About.Bio rendered and sanitized, one entry per paragraph.
	BioHTML []string `yaml:"-" json:"bio_html"`
}

var errNoMessages = errors.New("not_found.messages is empty")

// Parse decodes a site document and renders the bio. Unknown keys are
// rejected so a typo in an override file is caught on load.
func Parse(data []byte) (*Content, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode site content: %w", err)
	}
	if strings.TrimSpace(c.Hero.Name) == "" {
		return nil, errors.New("hero.name is required")
	}
	if len(c.NotFound.Messages) == 0 {
		return nil, errNoMessages
	}

	html, err := renderBio(c.About.Bio)
	if err != nil {
		return nil, err
	}
	c.BioHTML = html
	return &c, nil
}

// Default returns the content compiled into the binary.
func Default() *Content {
	c, err := Parse(defaultSite)
	if err != nil {
		panic(fmt.Sprintf("embedded site content: %v", err))
	}
	return c
}

var (
	markdown  = goldmark.New()
	bioPolicy = bluemonday.UGCPolicy()
)

func renderBio(paragraphs []string) ([]string, error) {
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(p), &buf); err != nil {
			return nil, fmt.Errorf("render bio: %w", err)
		}
		out = append(out, strings.TrimSpace(bioPolicy.Sanitize(buf.String())))
	}
	return out, nil
}
