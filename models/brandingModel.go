package models

// BrandingID is the id of the single branding document.
const BrandingID = "1"

type SocialLinks struct {
	Facebook  string `json:"facebook" bson:"facebook"`
	Instagram string `json:"instagram" bson:"instagram"`
	Twitter   string `json:"twitter" bson:"twitter"`
}

type Branding struct {
	Model           `bson:",inline"`
	SiteName        string      `json:"siteName" bson:"siteName"`
	StoreName       string      `json:"storeName" bson:"storeName"`
	PageTitle       string      `json:"pageTitle" bson:"pageTitle"`
	PageDescription string      `json:"pageDescription" bson:"pageDescription"`
	LogoURL         string      `json:"logoUrl" bson:"logoUrl"`
	FaviconURL      string      `json:"faviconUrl" bson:"faviconUrl"`
	PrimaryColor    string      `json:"primaryColor" bson:"primaryColor" gorm:"size:16"`
	AccentColor     string      `json:"accentColor" bson:"accentColor" gorm:"size:16"`
	Description     string      `json:"description" bson:"description"`
	ContactEmail    string      `json:"contactEmail" bson:"contactEmail"`
	ContactPhone    string      `json:"contactPhone" bson:"contactPhone"`
	Address         string      `json:"address" bson:"address"`
	SocialLinks     SocialLinks `json:"socialLinks" bson:"socialLinks" gorm:"embedded;embeddedPrefix:social_"`
}

func DefaultBranding() Branding {
	return Branding{
		Model:           Model{ID: BrandingID},
		SiteName:        "Nova",
		StoreName:       "Nova Store",
		PageTitle:       "Nova - E-commerce Platform",
		PageDescription: "Premium e-commerce platform for shopping",
		FaviconURL:      "/favicon.ico",
		PrimaryColor:    "#2a317f",
		AccentColor:     "#df172e",
		Description:     "Premium E-commerce Store",
		ContactEmail:    "info@nova.com",
		ContactPhone:    "+216 56 664 442",
		Address:         "Tunisia",
		SocialLinks: SocialLinks{
			Facebook:  "https://facebook.com",
			Instagram: "https://instagram.com",
			Twitter:   "https://twitter.com",
		},
	}
}
