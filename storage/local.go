package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LocalDisk struct {
	root    string
	baseURL string
}

func NewLocalDisk(root, baseURL string) (*LocalDisk, error) {
	if !filepath.IsAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("storage/local: %w", err)
		}
		root = filepath.Join(cwd, root)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage/local: mkdir %s: %w", root, err)
	}
	return &LocalDisk{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (d *LocalDisk) Root() string {
	return d.root
}

func (d *LocalDisk) abs(p string) string {
	return filepath.Join(d.root, filepath.FromSlash(p))
}

func (d *LocalDisk) Put(ctx context.Context, p string, r io.Reader, contentType string) (string, error) {
	full := d.abs(p)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage/local: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage/local: create %s: %w", p, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("storage/local: write %s: %w", p, err)
	}
	return d.URL(p), nil
}

func (d *LocalDisk) List(ctx context.Context, dir string) ([]Entry, error) {
	entries, err := os.ReadDir(d.abs(dir))
	if err != nil {
		return nil, fmt.Errorf("storage/local: list %s: %w", dir, err)
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		p := Join(dir, e.Name())
		entry := newEntry(e.Name(), p, e.IsDir(), info.Size(), info.ModTime())
		if !e.IsDir() {
			entry.URL = d.URL(p)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (d *LocalDisk) Delete(ctx context.Context, p string) error {
	err := os.Remove(d.abs(p))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", p, err)
	}
	return nil
}

func (d *LocalDisk) URL(p string) string {
	return d.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(p), "/")
}
