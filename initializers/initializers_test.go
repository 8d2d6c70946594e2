package initializers

import (
	"context"
	"testing"
	"time"

	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/store"
	"github.com/Kariqs/novastore-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 720*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "local", cfg.StorageDisk)
	assert.EqualValues(t, 10<<20, cfg.UploadMaxBytes)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadEnvRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestConnectToDBMemory(t *testing.T) {
	db, err := ConnectToDB(context.Background(), &Config{DBDriver: "memory"})
	require.NoError(t, err)
	assert.NotNil(t, db.Stores)
	assert.NoError(t, SyncDatabase(context.Background(), db))
	assert.NoError(t, db.Close(context.Background()))

	_, err = ConnectToDB(context.Background(), &Config{DBDriver: "sqlite"})
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	cfg := &Config{AdminEmail: "Admin@Example.com", AdminPassword: "s3cret"}

	require.NoError(t, Seed(ctx, cfg, stores))
	require.NoError(t, Seed(ctx, cfg, stores))

	branding, err := stores.Branding.FindByID(ctx, models.BrandingID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBranding().StoreName, branding.StoreName)

	_, err = stores.HomeSettings.FindByID(ctx, models.HomeSettingsID)
	require.NoError(t, err)

	n, err := stores.Users.Count(ctx, store.All())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	admin, err := stores.Users.FindOne(ctx, store.Eq{Field: "email", Value: "admin@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, utils.ComparePasswords(admin.Password, "s3cret"))
}

func TestOpenDisk(t *testing.T) {
	disk, err := OpenDisk(context.Background(), &Config{StorageDisk: "local", StorageLocalRoot: t.TempDir(), StorageURL: "/uploads"})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.png", disk.URL("a.png"))

	_, err = OpenDisk(context.Background(), &Config{StorageDisk: "gcs"})
	assert.Error(t, err)
}
