package initializers

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port   string
	AppEnv string

	DBDriver      string
	MongoURI      string
	MongoDatabase string
	DatabaseDSN   string

	RedisAddr     string
	RedisPassword string
	CachePrefix   string
	CacheTTL      time.Duration

	JWTSecret   string
	JWTTTL      time.Duration
	CORSOrigins []string

	StorageDisk      string
	StorageLocalRoot string
	StorageURL       string
	S3Bucket         string
	S3Region         string
	S3Key            string
	S3Secret         string
	S3Endpoint       string
	S3URL            string
	UploadMaxBytes   int64

	FTPHost     string
	FTPPort     int
	FTPUsername string
	FTPPassword string
	FTPBasePath string
	FTPBaseURL  string

	SMTPHost     string
	SMTPPort     int
	SMTPSecure   bool
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	ContactTo    string
	StoreName    string

	PesapalBaseURL        string
	PesapalConsumerKey    string
	PesapalConsumerSecret string
	PesapalIPNID          string
	PesapalCallbackURL    string
	PesapalCurrency       string

	AdminEmail    string
	AdminPassword string
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("DB_DRIVER", "mongo")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "novastore")
	v.SetDefault("CACHE_PREFIX", "novastore:")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("JWT_TTL", "720h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("STORAGE_DISK", "local")
	v.SetDefault("STORAGE_LOCAL_ROOT", "public/uploads")
	v.SetDefault("STORAGE_URL", "/uploads")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	v.SetDefault("FTP_PORT", 21)
	v.SetDefault("FTP_BASE_PATH", "/images")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("STORE_NAME", "Store")
	v.SetDefault("PESAPAL_BASE_URL", "https://pay.pesapal.com/v3")
	v.SetDefault("PESAPAL_CURRENCY", "KES")
}

// LoadEnv reads .env when present and builds the typed configuration from
// the environment.
func LoadEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:   v.GetString("PORT"),
		AppEnv: v.GetString("APP_ENV"),

		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		MongoURI:      v.GetString("MONGO_URI"),
		MongoDatabase: v.GetString("MONGO_DATABASE"),
		DatabaseDSN:   v.GetString("DATABASE_DSN"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		CachePrefix:   v.GetString("CACHE_PREFIX"),
		CacheTTL:      v.GetDuration("CACHE_TTL"),

		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTTTL:      v.GetDuration("JWT_TTL"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),

		StorageDisk:      strings.ToLower(v.GetString("STORAGE_DISK")),
		StorageLocalRoot: v.GetString("STORAGE_LOCAL_ROOT"),
		StorageURL:       v.GetString("STORAGE_URL"),
		S3Bucket:         v.GetString("S3_BUCKET"),
		S3Region:         v.GetString("S3_REGION"),
		S3Key:            v.GetString("S3_KEY"),
		S3Secret:         v.GetString("S3_SECRET"),
		S3Endpoint:       v.GetString("S3_ENDPOINT"),
		S3URL:            v.GetString("S3_URL"),
		UploadMaxBytes:   v.GetInt64("UPLOAD_MAX_BYTES"),

		FTPHost:     v.GetString("FTP_HOST"),
		FTPPort:     v.GetInt("FTP_PORT"),
		FTPUsername: v.GetString("FTP_USERNAME"),
		FTPPassword: v.GetString("FTP_PASSWORD"),
		FTPBasePath: v.GetString("FTP_BASE_PATH"),
		FTPBaseURL:  v.GetString("FTP_BASE_URL"),

		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetInt("SMTP_PORT"),
		SMTPSecure:   v.GetBool("SMTP_SECURE"),
		SMTPUser:     v.GetString("SMTP_USER"),
		SMTPPassword: v.GetString("SMTP_PASSWORD"),
		SMTPFrom:     v.GetString("SMTP_FROM"),
		ContactTo:    v.GetString("CONTACT_EMAIL_TO"),
		StoreName:    v.GetString("STORE_NAME"),

		PesapalBaseURL:        v.GetString("PESAPAL_BASE_URL"),
		PesapalConsumerKey:    v.GetString("PESAPAL_CONSUMER_KEY"),
		PesapalConsumerSecret: v.GetString("PESAPAL_CONSUMER_SECRET"),
		PesapalIPNID:          v.GetString("PESAPAL_IPN_ID"),
		PesapalCallbackURL:    v.GetString("PESAPAL_CALLBACK_URL"),
		PesapalCurrency:       v.GetString("PESAPAL_CURRENCY"),

		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}

	if cfg.IsProduction() && cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set in production")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
