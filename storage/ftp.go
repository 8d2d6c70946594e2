package storage

import (
	"context"
	"fmt"
	"io"
	"net"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
)

type FTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	BasePath string
	BaseURL  string
	Timeout  time.Duration
}

// Enabled reports whether enough settings are present to connect.
func (c FTPConfig) Enabled() bool {
	return c.Host != "" && c.Username != ""
}

// FTPServer is a Disk on a configured FTP account that can report its
// settings and test the connection.
type FTPServer interface {
	Disk
	Settings() FTPSettings
	Ping(ctx context.Context) error
}

// FTPSettings is the admin view of the FTP configuration. The password is
// masked.
type FTPSettings struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	BasePath string `json:"basePath"`
	BaseURL  string `json:"baseUrl"`
}

const maskedPassword = "********"

// FTPDisk opens one connection per call; uploads are rare admin actions.
type FTPDisk struct {
	cfg FTPConfig
}

func NewFTPDisk(cfg FTPConfig) *FTPDisk {
	if cfg.Port == 0 {
		cfg.Port = 21
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/images"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &FTPDisk{cfg: cfg}
}

func (d *FTPDisk) connect(ctx context.Context) (*ftp.ServerConn, error) {
	addr := net.JoinHostPort(d.cfg.Host, strconv.Itoa(d.cfg.Port))
	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(d.cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("storage/ftp: dial %s: %w", addr, err)
	}
	if err := conn.Login(d.cfg.Username, d.cfg.Password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("storage/ftp: login: %w", err)
	}
	return conn, nil
}

func (d *FTPDisk) remote(p string) string {
	return path.Join("/", d.cfg.BasePath, p)
}

// ensureDir creates every missing directory along dir.
func ensureDir(conn *ftp.ServerConn, dir string) {
	current := ""
	for _, part := range strings.Split(strings.Trim(dir, "/"), "/") {
		if part == "" {
			continue
		}
		current += "/" + part
		// MakeDir fails when the directory already exists
		_ = conn.MakeDir(current)
	}
}

func (d *FTPDisk) Put(ctx context.Context, p string, r io.Reader, contentType string) (string, error) {
	conn, err := d.connect(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Quit()

	full := d.remote(p)
	ensureDir(conn, path.Dir(full))
	if err := conn.Stor(full, r); err != nil {
		return "", fmt.Errorf("storage/ftp: store %s: %w", full, err)
	}
	return d.URL(p), nil
}

func (d *FTPDisk) List(ctx context.Context, dir string) ([]Entry, error) {
	conn, err := d.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Quit()

	entries, err := conn.List(d.remote(dir))
	if err != nil {
		return nil, fmt.Errorf("storage/ftp: list %s: %w", dir, err)
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		isDir := e.Type == ftp.EntryTypeFolder
		p := Join(dir, e.Name)
		entry := newEntry(e.Name, p, isDir, int64(e.Size), e.Time)
		if !isDir {
			entry.URL = d.URL(p)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (d *FTPDisk) Delete(ctx context.Context, p string) error {
	conn, err := d.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Quit()

	if err := conn.Delete(d.remote(p)); err != nil {
		return fmt.Errorf("storage/ftp: delete %s: %w", p, err)
	}
	return nil
}

// URL uses FTP_BASE_URL when set, else an ftp:// URL to the host.
func (d *FTPDisk) URL(p string) string {
	base := strings.TrimRight(d.cfg.BaseURL, "/")
	if base == "" {
		base = "ftp://" + d.cfg.Host
	}
	return base + d.remote(p)
}

func (d *FTPDisk) Settings() FTPSettings {
	settings := FTPSettings{
		Enabled:  d.cfg.Enabled(),
		Host:     d.cfg.Host,
		Port:     d.cfg.Port,
		Username: d.cfg.Username,
		BasePath: d.cfg.BasePath,
		BaseURL:  d.cfg.BaseURL,
	}
	if d.cfg.Password != "" {
		settings.Password = maskedPassword
	}
	return settings
}

// Ping logs in and changes into the base path, creating it when missing.
func (d *FTPDisk) Ping(ctx context.Context) error {
	conn, err := d.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Quit()

	base := d.remote("")
	if err := conn.ChangeDir(base); err == nil {
		return nil
	}
	ensureDir(conn, base)
	if err := conn.ChangeDir(base); err != nil {
		return fmt.Errorf("storage/ftp: base path %s: %w", base, err)
	}
	return nil
}
