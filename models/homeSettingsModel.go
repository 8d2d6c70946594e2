package models

import "time"

const HomeSettingsID = "home"

type HomeSettings struct {
	Model                 `bson:",inline"`
	HeroTitle             string    `json:"heroTitle" bson:"heroTitle"`
	HeroSubtitle          string    `json:"heroSubtitle" bson:"heroSubtitle"`
	ShowTrendingProducts  bool      `json:"showTrendingProducts" bson:"showTrendingProducts"`
	ShowNewArrivals       bool      `json:"showNewArrivals" bson:"showNewArrivals"`
	ShowTopRatedProducts  bool      `json:"showTopRatedProducts" bson:"showTopRatedProducts"`
	TrendingProductsLimit int       `json:"trendingProductsLimit" bson:"trendingProductsLimit" validate:"gte=1,lte=30"`
	NewArrivalsLimit      int       `json:"newArrivalsLimit" bson:"newArrivalsLimit" validate:"gte=1,lte=30"`
	TopRatedProductsLimit int       `json:"topRatedProductsLimit" bson:"topRatedProductsLimit" validate:"gte=1,lte=30"`
	CTATitle              string    `json:"ctaTitle" bson:"ctaTitle"`
	CTASubtitle           string    `json:"ctaSubtitle" bson:"ctaSubtitle"`
	CTAButtonText         string    `json:"ctaButtonText" bson:"ctaButtonText"`
	LastUpdatedBy         string    `json:"lastUpdatedBy" bson:"lastUpdatedBy"`
	LastUpdatedAt         time.Time `json:"lastUpdatedAt" bson:"lastUpdatedAt"`
}

func DefaultHomeSettings() HomeSettings {
	return HomeSettings{
		Model:                 Model{ID: HomeSettingsID},
		HeroTitle:             "Welcome to Nova",
		HeroSubtitle:          "Discover amazing products at unbeatable prices",
		ShowTrendingProducts:  true,
		ShowNewArrivals:       true,
		ShowTopRatedProducts:  true,
		TrendingProductsLimit: 8,
		NewArrivalsLimit:      6,
		TopRatedProductsLimit: 6,
		CTATitle:              "Stay Updated",
		CTASubtitle:           "Subscribe to our newsletter for exclusive offers and updates",
		CTAButtonText:         "Subscribe",
		LastUpdatedBy:         "system",
	}
}
