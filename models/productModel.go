package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Review struct {
	UserID    string    `json:"user" bson:"user"`
	Rating    float64   `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Specification struct {
	Name  string `json:"name" bson:"name"`
	Value string `json:"value" bson:"value"`
}

type Product struct {
	Model          `bson:",inline"`
	Name           string                             `json:"name" bson:"name" gorm:"size:255;not null" validate:"required"`
	Description    string                             `json:"description,omitempty" bson:"description" gorm:"type:text"`
	Price          float64                            `json:"price" bson:"price" validate:"gt=0"`
	Category       string                             `json:"category,omitempty" bson:"category,omitempty" gorm:"size:255"`
	CategoryParent string                             `json:"categoryParent,omitempty" bson:"categoryParent" gorm:"size:255;index:idx_products_category"`
	CategoryChild  string                             `json:"categoryChild,omitempty" bson:"categoryChild" gorm:"size:255;index:idx_products_category"`
	Brand          string                             `json:"brand,omitempty" bson:"brand" gorm:"size:255;index"`
	SKU            string                             `json:"sku,omitempty" bson:"sku,omitempty" gorm:"size:100"`
	Stock          int                                `json:"stock" bson:"stock" validate:"gte=0"`
	ImageURL       string                             `json:"imageUrl,omitempty" bson:"imageUrl"`
	Images         datatypes.JSONSlice[string]        `json:"images,omitempty" bson:"images"`
	Featured       bool                               `json:"featured" bson:"featured" gorm:"index"`
	Discount       float64                            `json:"discount" bson:"discount" validate:"gte=0,lte=100"`
	DealPrice      *float64                           `json:"dealPrice,omitempty" bson:"dealPrice,omitempty"`
	DealStarts     *time.Time                         `json:"dealStarts,omitempty" bson:"dealStarts,omitempty"`
	DealEnds       *time.Time                         `json:"dealEnds,omitempty" bson:"dealEnds,omitempty"`
	Rating         float64                            `json:"rating" bson:"rating" validate:"gte=0,lte=5"`
	Reviews        datatypes.JSONSlice[Review]        `json:"reviews,omitempty" bson:"reviews"`
	Specifications datatypes.JSONSlice[Specification] `json:"specifications,omitempty" bson:"specifications"`
}

// DeriveCategoryFields fills CategoryParent/CategoryChild from the legacy
// "Parent > Child" category string. It only runs when neither structured
// field is set.
func (p *Product) DeriveCategoryFields() {
	if p.Category == "" || p.CategoryParent != "" || p.CategoryChild != "" {
		return
	}

	var parts []string
	for _, part := range strings.Split(p.Category, ">") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}

	switch {
	case len(parts) == 1:
		p.CategoryParent = parts[0]
		p.CategoryChild = ""
	case len(parts) >= 2:
		p.CategoryParent = parts[0]
		p.CategoryChild = strings.Join(parts[1:], " > ")
	}
}
