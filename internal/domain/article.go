package domain

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const DefaultAuthor = "Admin"

// Article is a published knowledge-base entry. Tags live as a native slice
// here; the persistence layer stores them as encoded text (see EncodeTags).
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
	Views       int       `json:"views"`
	Tags        []string  `json:"tags"`
	Published   bool      `json:"published"`
}

// Draft carries the fields a caller may supply when creating or updating an
// article. Nil pointers mean "not supplied", so updates only touch the fields
// that are present.
type Draft struct {
	ID       string    `json:"id,omitempty"`
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Excerpt  *string   `json:"excerpt,omitempty"`
	Category *string   `json:"category,omitempty"`
	Author   *string   `json:"author,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

// Empty reports whether the draft supplies no fields at all.
func (d Draft) Empty() bool {
	return d.Title == nil && d.Content == nil && d.Excerpt == nil &&
		d.Category == nil && d.Author == nil && d.Tags == nil
}

// ValidateForCreate enforces the required fields of a new article.
func (d Draft) ValidateForCreate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Required.Error("title is required")),
		validation.Field(&d.Content, validation.Required.Error("content is required")),
		validation.Field(&d.Category, validation.Required.Error("category is required")),
	)
}

// EncodeTags serializes tags for the persistence boundary.
func EncodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

// DecodeTags parses the stored representation. Absent or malformed values
// decode to an empty slice, never an error.
func DecodeTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}
