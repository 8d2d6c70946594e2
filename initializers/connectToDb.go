package initializers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kariqs/novastore-api/store"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is the open backend behind the stores. Exactly one of Mongo and
// SQL is set, or neither for the in-memory driver.
type Database struct {
	Driver string
	Stores *store.Stores
	Mongo  *mongo.Database
	SQL    *gorm.DB
}

func (d *Database) Close(ctx context.Context) error {
	switch {
	case d.Mongo != nil:
		return d.Mongo.Client().Disconnect(ctx)
	case d.SQL != nil:
		sqlDB, err := d.SQL.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func ConnectToDB(ctx context.Context, cfg *Config) (*Database, error) {
	switch cfg.DBDriver {
	case "mongo", "mongodb":
		return connectMongo(ctx, cfg)
	case "mysql", "postgres":
		return connectSQL(cfg)
	case "memory":
		slog.Warn("using the in-memory store, data is lost on restart")
		return &Database{Driver: "memory", Stores: store.NewMemoryStores()}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: mongo, mysql, postgres, memory)", cfg.DBDriver)
	}
}

func connectMongo(ctx context.Context, cfg *Config) (*Database, error) {
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(10).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("database: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: mongo ping: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	slog.Info("connected to mongodb", "database", cfg.MongoDatabase)
	return &Database{Driver: "mongo", Stores: store.NewMongoStores(db), Mongo: db}, nil
}

func connectSQL(cfg *Config) (*Database, error) {
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("DATABASE_DSN is not set")
	}

	var dialector gorm.Dialector
	if cfg.DBDriver == "mysql" {
		dialector = mysql.Open(cfg.DatabaseDSN)
	} else {
		dialector = postgres.Open(cfg.DatabaseDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	slog.Info("connected to sql database", "driver", cfg.DBDriver)
	return &Database{Driver: cfg.DBDriver, Stores: store.NewGormStores(db), SQL: db}, nil
}
