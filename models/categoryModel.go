package models

import (
	"regexp"
	"strings"
)

type Category struct {
	Model       `bson:",inline"`
	Name        string  `json:"name" bson:"name" gorm:"size:255;not null" validate:"required"`
	Slug        string  `json:"slug" bson:"slug" gorm:"size:255;uniqueIndex"`
	Description string  `json:"description" bson:"description" gorm:"type:text"`
	ParentID    *string `json:"parentId" bson:"parentId" gorm:"size:64;index"`
	Order       int     `json:"order" bson:"order"`
	IsActive    bool    `json:"isActive" bson:"isActive"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
	IconID      string  `json:"iconId,omitempty" bson:"iconId,omitempty"`
	IconURL     string  `json:"iconUrl,omitempty" bson:"iconUrl,omitempty"`
}

// CategoryWithChildren is the two-level menu shape.
type CategoryWithChildren struct {
	Category
	Subcategories []Category `json:"subcategories"`
}

func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil || *c.ParentID == ""
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and collapses every run of characters outside
// [a-z0-9] into a single dash, trimming dashes at both ends.
func Slugify(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(slug, "-")
}
