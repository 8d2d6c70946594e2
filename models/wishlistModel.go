package models

import (
	"time"

	"gorm.io/datatypes"
)

type WishlistItem struct {
	ProductID string    `json:"productId" bson:"productId" binding:"required"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"`
	ImageURL  string    `json:"imageUrl" bson:"imageUrl"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
}

type Wishlist struct {
	Model  `bson:",inline"`
	UserID string                            `json:"userId" bson:"userId" gorm:"size:64;uniqueIndex"`
	Items  datatypes.JSONSlice[WishlistItem] `json:"items" bson:"items"`
}
