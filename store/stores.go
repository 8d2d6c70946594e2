package store

import (
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/Kariqs/novastore-api/models"
)

// Stores bundles one collection per model.
type Stores struct {
	Categories   Collection[models.Category]
	Products     Collection[models.Product]
	Orders       Collection[models.Order]
	Users        Collection[models.User]
	Banners      Collection[models.Banner]
	Branding     Collection[models.Branding]
	HomeSettings Collection[models.HomeSettings]
	Wishlists    Collection[models.Wishlist]
}

// Collection names used by the MongoDB backend.
const (
	CategoriesCollection   = "categories"
	ProductsCollection     = "products"
	OrdersCollection       = "orders"
	UsersCollection        = "users"
	BannersCollection      = "banners"
	BrandingCollection     = "branding"
	HomeSettingsCollection = "homesettings"
	WishlistsCollection    = "wishlists"
)

func NewMemoryStores() *Stores {
	return &Stores{
		Categories:   NewMemoryCollection[models.Category](),
		Products:     NewMemoryCollection[models.Product](),
		Orders:       NewMemoryCollection[models.Order](),
		Users:        NewMemoryCollection[models.User](),
		Banners:      NewMemoryCollection[models.Banner](),
		Branding:     NewMemoryCollection[models.Branding](),
		HomeSettings: NewMemoryCollection[models.HomeSettings](),
		Wishlists:    NewMemoryCollection[models.Wishlist](),
	}
}

func NewMongoStores(db *mongo.Database) *Stores {
	return &Stores{
		Categories:   NewMongoCollection[models.Category](db, CategoriesCollection),
		Products:     NewMongoCollection[models.Product](db, ProductsCollection),
		Orders:       NewMongoCollection[models.Order](db, OrdersCollection),
		Users:        NewMongoCollection[models.User](db, UsersCollection),
		Banners:      NewMongoCollection[models.Banner](db, BannersCollection),
		Branding:     NewMongoCollection[models.Branding](db, BrandingCollection),
		HomeSettings: NewMongoCollection[models.HomeSettings](db, HomeSettingsCollection),
		Wishlists:    NewMongoCollection[models.Wishlist](db, WishlistsCollection),
	}
}

func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Categories:   NewGormCollection[models.Category](db),
		Products:     NewGormCollection[models.Product](db),
		Orders:       NewGormCollection[models.Order](db),
		Users:        NewGormCollection[models.User](db),
		Banners:      NewGormCollection[models.Banner](db),
		Branding:     NewGormCollection[models.Branding](db),
		HomeSettings: NewGormCollection[models.HomeSettings](db),
		Wishlists:    NewGormCollection[models.Wishlist](db),
	}
}

// Models lists every persisted model, in migration order.
func Models() []any {
	return []any{
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.Banner{},
		&models.Branding{},
		&models.HomeSettings{},
		&models.Wishlist{},
	}
}
