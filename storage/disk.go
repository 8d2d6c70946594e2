// Package storage puts uploaded images on a disk: the local filesystem, an
// S3-compatible bucket or an FTP server.
package storage

import (
	"context"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Disk interface {
	// Put writes r to path and returns the public URL of the stored file.
	Put(ctx context.Context, path string, r io.Reader, contentType string) (string, error)
	// List returns the direct entries of dir.
	List(ctx context.Context, dir string) ([]Entry, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

type Entry struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Type       string    `json:"type"`
	IsDir      bool      `json:"isDirectory"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modifiedAt"`
	URL        string    `json:"url,omitempty"`
}

func newEntry(name, p string, isDir bool, size int64, modified time.Time) Entry {
	kind := "file"
	if isDir {
		kind = "directory"
	}
	return Entry{Name: name, Path: p, Type: kind, IsDir: isDir, Size: size, ModifiedAt: modified}
}

var AllowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true, "svg": true, "ico": true,
}

// IsImageFile reports whether name has an image extension.
func IsImageFile(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	return imageExtensions[ext]
}

// OnlyImages keeps directories and image files.
func OnlyImages(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir || IsImageFile(e.Name) {
			out = append(out, e)
		}
	}
	return out
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// FileName builds a collision-resistant object name from the client's file
// name: "<unix millis>_<sanitized name>".
func FileName(original string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "_" + unsafeNameChars.ReplaceAllString(base, "_")
}

// CleanFolder normalizes a client-supplied folder and rejects traversal.
func CleanFolder(folder string) (string, bool) {
	folder = strings.Trim(strings.ReplaceAll(folder, "\\", "/"), "/ ")
	if folder == "" {
		return "", true
	}
	for _, part := range strings.Split(folder, "/") {
		if part == ".." {
			return "", false
		}
	}
	return path.Clean(folder), true
}

// Join joins path segments with forward slashes, skipping empty ones.
func Join(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}
