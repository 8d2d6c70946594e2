package initializers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Kariqs/novastore-api/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoIndexes = map[string][]mongo.IndexModel{
	store.CategoriesCollection: {
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "parentId", Value: 1}, {Key: "order", Value: 1}}},
	},
	store.ProductsCollection: {
		{Keys: bson.D{{Key: "categoryParent", Value: 1}, {Key: "categoryChild", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	},
	store.OrdersCollection: {
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "paymentTrackingId", Value: 1}}},
	},
	store.UsersCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	store.WishlistsCollection: {
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
}

// SyncDatabase migrates SQL tables or creates the MongoDB indexes.
func SyncDatabase(ctx context.Context, db *Database) error {
	switch {
	case db.SQL != nil:
		if err := db.SQL.WithContext(ctx).AutoMigrate(store.Models()...); err != nil {
			return fmt.Errorf("database: automigrate: %w", err)
		}
	case db.Mongo != nil:
		for collection, indexes := range mongoIndexes {
			if _, err := db.Mongo.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
				return fmt.Errorf("database: indexes on %s: %w", collection, err)
			}
		}
	default:
		return nil
	}

	slog.Info("database synced successfully", "driver", db.Driver)
	return nil
}
