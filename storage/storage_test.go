package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskPutListDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d, err := NewLocalDisk(root, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	url, err := d.Put(ctx, "banners/hero.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/banners/hero.png", url)

	data, err := os.ReadFile(filepath.Join(root, "banners", "hero.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, err = d.Put(ctx, "banners/notes.txt", strings.NewReader("x"), "text/plain")
	require.NoError(t, err)

	top, err := d.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.True(t, top[0].IsDir)
	assert.Equal(t, "directory", top[0].Type)

	entries, err := d.List(ctx, "banners")
	require.NoError(t, err)
	images := OnlyImages(entries)
	require.Len(t, images, 1)
	assert.Equal(t, "hero.png", images[0].Name)
	assert.Equal(t, "banners/hero.png", images[0].Path)
	assert.EqualValues(t, 9, images[0].Size)

	require.NoError(t, d.Delete(ctx, "banners/hero.png"))
	require.NoError(t, d.Delete(ctx, "banners/hero.png"), "deleting a missing file is not an error")
}

func TestFileName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "1700000000123_my_photo__1_.jpg", FileName("my photo (1).jpg", now))
	assert.Equal(t, "1700000000123_passwd", FileName("../../etc/passwd", now))
	assert.Equal(t, "1700000000123_shot.png", FileName(`C:\Users\me\shot.png`, now))
}

func TestCleanFolder(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"", "", true},
		{"/products/", "products", true},
		{"products/laptops", "products/laptops", true},
		{"../secrets", "", false},
		{"a/../../b", "", false},
	}
	for _, tt := range tests {
		got, ok := CleanFolder(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("a.JPG"))
	assert.True(t, IsImageFile("icon.svg"))
	assert.False(t, IsImageFile("notes.txt"))
	assert.False(t, IsImageFile("noext"))
}

func TestFTPDiskURL(t *testing.T) {
	d := NewFTPDisk(FTPConfig{Host: "ftp.example.com", Username: "u"})
	assert.Equal(t, "ftp://ftp.example.com/images/a/b.png", d.URL("a/b.png"))

	withBase := NewFTPDisk(FTPConfig{Host: "ftp.example.com", BaseURL: "https://cdn.example.com/", BasePath: "/media"})
	assert.Equal(t, "https://cdn.example.com/media/b.png", withBase.URL("b.png"))

	assert.True(t, FTPConfig{Host: "h", Username: "u"}.Enabled())
	assert.False(t, FTPConfig{Host: "h"}.Enabled())
}

func TestFTPDiskSettingsMaskPassword(t *testing.T) {
	d := NewFTPDisk(FTPConfig{Host: "ftp.example.com", Username: "u", Password: "secret"})
	settings := d.Settings()
	assert.True(t, settings.Enabled)
	assert.Equal(t, 21, settings.Port)
	assert.Equal(t, "/images", settings.BasePath)
	assert.Equal(t, "********", settings.Password)

	assert.Empty(t, NewFTPDisk(FTPConfig{Host: "h", Username: "u"}).Settings().Password)
}

func TestFTPDiskPingUnreachable(t *testing.T) {
	d := NewFTPDisk(FTPConfig{Host: "127.0.0.1", Port: 1, Username: "u", Timeout: time.Second})
	assert.Error(t, d.Ping(context.Background()))
}
