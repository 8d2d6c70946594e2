package initializers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kariqs/novastore-api/cache"
	"github.com/Kariqs/novastore-api/catalog"
	"github.com/Kariqs/novastore-api/controllers"
	"github.com/Kariqs/novastore-api/orders"
	"github.com/Kariqs/novastore-api/payments"
	"github.com/Kariqs/novastore-api/storage"
	"github.com/Kariqs/novastore-api/utils"
)

// ConnectToCache returns nil when REDIS_ADDR is unset or unreachable; the
// services run uncached in that case.
func ConnectToCache(ctx context.Context, cfg *Config) *cache.Cache {
	if cfg.RedisAddr == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	c, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.CachePrefix)
	if err != nil {
		slog.Warn("redis unavailable, running without cache", "addr", cfg.RedisAddr, "error", err)
		return nil
	}
	slog.Info("connected to redis", "addr", cfg.RedisAddr)
	return c
}

// OpenDisk returns the disk that receives /api/upload files.
func OpenDisk(ctx context.Context, cfg *Config) (storage.Disk, error) {
	switch cfg.StorageDisk {
	case "s3":
		return storage.NewS3Disk(ctx, storage.S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Key:      cfg.S3Key,
			Secret:   cfg.S3Secret,
			Endpoint: cfg.S3Endpoint,
			BaseURL:  cfg.S3URL,
		})
	case "local", "":
		return storage.NewLocalDisk(cfg.StorageLocalRoot, cfg.StorageURL)
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DISK %q (supported: local, s3)", cfg.StorageDisk)
	}
}

func ftpDisk(cfg *Config) storage.FTPServer {
	ftpCfg := storage.FTPConfig{
		Host:     cfg.FTPHost,
		Port:     cfg.FTPPort,
		Username: cfg.FTPUsername,
		Password: cfg.FTPPassword,
		BasePath: cfg.FTPBasePath,
		BaseURL:  cfg.FTPBaseURL,
	}
	if !ftpCfg.Enabled() {
		return nil
	}
	return storage.NewFTPDisk(ftpCfg)
}

// NewController wires every service the HTTP handlers use.
func NewController(ctx context.Context, cfg *Config, db *Database) (*controllers.Controller, error) {
	c := ConnectToCache(ctx, cfg)

	disk, err := OpenDisk(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gateway := payments.NewPesapal(payments.Config{
		BaseURL:        cfg.PesapalBaseURL,
		ConsumerKey:    cfg.PesapalConsumerKey,
		ConsumerSecret: cfg.PesapalConsumerSecret,
		NotificationID: cfg.PesapalIPNID,
		CallbackURL:    cfg.PesapalCallbackURL,
		Currency:       cfg.PesapalCurrency,
	})
	if !gateway.Enabled() {
		slog.Info("pesapal not configured, only cash on delivery is available")
	}

	return &controllers.Controller{
		Stores:  db.Stores,
		Catalog: catalog.NewService(db.Stores, c, cfg.CacheTTL),
		Orders:  orders.NewManager(db.Stores.Orders, gateway),
		Tokens:  utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Mailer: utils.NewMailer(utils.MailConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Secure:    cfg.SMTPSecure,
			Username:  cfg.SMTPUser,
			Password:  cfg.SMTPPassword,
			From:      cfg.SMTPFrom,
			ContactTo: cfg.ContactTo,
			StoreName: cfg.StoreName,
		}),
		Cache:          c,
		Disk:           disk,
		FTP:            ftpDisk(cfg),
		UploadMaxBytes: cfg.UploadMaxBytes,
	}, nil
}
