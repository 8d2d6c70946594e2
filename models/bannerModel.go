package models

type Banner struct {
	Model       `bson:",inline"`
	Title       string `json:"title" bson:"title" gorm:"size:255" validate:"required"`
	Description string `json:"description,omitempty" bson:"description"`
	ImageURL    string `json:"imageUrl" bson:"imageUrl" validate:"required"`
	Location    string `json:"location" bson:"location" gorm:"size:32" validate:"oneof=hero featured promo1 promo2 bottom"`
	CTAText     string `json:"ctaText,omitempty" bson:"ctaText"`
	CTALink     string `json:"ctaLink,omitempty" bson:"ctaLink"`
	IsActive    bool   `json:"isActive" bson:"isActive" gorm:"index"`
	Order       int    `json:"order" bson:"order"`
}
