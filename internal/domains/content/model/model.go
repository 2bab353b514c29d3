package model

import (
	"wedding-site/internal/domains/slider"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Document is the root of the site's content JSON.
type Document struct {
	Content *Content                 `json:"content"`
	Sliders map[string]slider.Config `json:"sliders,omitempty"`
}

type Content struct {
	Hero      *Hero                 `json:"hero"`
	Greeting  *Greeting             `json:"greeting"`
	Profiles  []Profile             `json:"profiles"`
	Biography map[string][]BioEntry `json:"biography"`
	Story     []StoryEntry          `json:"story"`
}

type Hero struct {
	Names string `json:"names"`
	Date  string `json:"date"`
	Venue string `json:"venue"`
}

// Greeting.Text is author-provided markup.
type Greeting struct {
	Text string `json:"text"`
}

type Profile struct {
	Image string `json:"image"`
	Name  string `json:"name"`
	Desc  string `json:"desc"`
}

type BioEntry struct {
	Year  string `json:"year"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type StoryEntry struct {
	Image string `json:"image"`
	Date  string `json:"date"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ========================================
// VALIDATION
// ========================================
// Chỉ kiểm tra sự tồn tại của các section; nội dung text không validate.

func (d Document) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Content, validation.Required),
	)
}

func (c Content) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Hero, validation.Required),
		validation.Field(&c.Greeting, validation.Required),
		validation.Field(&c.Profiles, validation.NotNil),
		validation.Field(&c.Biography, validation.NotNil),
		validation.Field(&c.Story, validation.NotNil),
	)
}
