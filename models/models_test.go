package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Laptops":            "laptops",
		"Home & Garden":      "home-garden",
		"  Gaming  Laptops ": "gaming-laptops",
		"TV's / Audio":       "tv-s-audio",
		"---":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestDeriveCategoryFields(t *testing.T) {
	tests := []struct {
		name       string
		product    Product
		wantParent string
		wantChild  string
	}{
		{"parent only", Product{Category: "Electronics"}, "Electronics", ""},
		{"parent and child", Product{Category: "Electronics > Laptops"}, "Electronics", "Laptops"},
		{"deep path", Product{Category: "A > B > C"}, "A", "B > C"},
		{"blank segments", Product{Category: " > Phones > "}, "Phones", ""},
		{"structured fields win", Product{Category: "X > Y", CategoryParent: "Electronics"}, "Electronics", ""},
		{"no category", Product{}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.product
			p.DeriveCategoryFields()
			assert.Equal(t, tt.wantParent, p.CategoryParent)
			assert.Equal(t, tt.wantChild, p.CategoryChild)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(&Product{Name: "Laptop", Price: 10}))
	assert.EqualError(t, Validate(&Product{Price: 10}), "name is required")
	assert.EqualError(t, Validate(&Product{Name: "Laptop"}), "price must be greater than 0")
	assert.EqualError(t, Validate(&Product{Name: "Laptop", Price: 1, Discount: 120}), "discount must be at most 100")
	assert.EqualError(t, Validate(&Banner{Title: "Sale", ImageURL: "/a.png", Location: "sidebar"}),
		"location must be one of: hero featured promo1 promo2 bottom")
}

func TestModelTouch(t *testing.T) {
	var m Model
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.Touch(first)
	assert.Equal(t, first, m.CreatedAt)
	assert.Equal(t, first, m.UpdatedAt)

	later := first.Add(time.Hour)
	m.Touch(later)
	assert.Equal(t, first, m.CreatedAt)
	assert.Equal(t, later, m.UpdatedAt)
}

func TestOrderIsGuest(t *testing.T) {
	empty := ""
	user := "u1"
	assert.True(t, (&Order{}).IsGuest())
	assert.True(t, (&Order{UserID: &empty}).IsGuest())
	assert.False(t, (&Order{UserID: &user}).IsGuest())
}
