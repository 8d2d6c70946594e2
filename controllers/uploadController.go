package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Kariqs/novastore-api/middlewares"
	"github.com/Kariqs/novastore-api/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

const defaultUploadMaxBytes = 10 << 20

func (c *Controller) uploadLimit() int64 {
	if c.UploadMaxBytes > 0 {
		return c.UploadMaxBytes
	}
	return defaultUploadMaxBytes
}

// multipartOverhead is allowed on top of the file limit for the form
// boundaries and the other fields.
const multipartOverhead = 1 << 20

// imageFromForm reads the "file" field and checks its size and its sniffed
// type. On failure the response has already been written.
func (c *Controller) imageFromForm(ctx *gin.Context, tooLarge int) (*multipart.FileHeader, string, bool) {
	limitMessage := fmt.Sprintf("File size exceeds %dMB limit", c.uploadLimit()>>20)
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.uploadLimit()+multipartOverhead)

	file, err := ctx.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			sendErrorResponse(ctx, tooLarge, limitMessage)
			return nil, "", false
		}
		sendErrorResponse(ctx, http.StatusBadRequest, "No file provided")
		return nil, "", false
	}
	if file.Size > c.uploadLimit() {
		sendErrorResponse(ctx, tooLarge, limitMessage)
		return nil, "", false
	}

	contentType, ok := sniffImageType(file)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Only image files are allowed")
		return nil, "", false
	}
	return file, contentType, true
}

// sniffImageType detects the type from the file content; the part's
// Content-Type header is ignored.
func sniffImageType(file *multipart.FileHeader) (string, bool) {
	src, err := file.Open()
	if err != nil {
		return "", false
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return "", false
	}
	for allowed := range storage.AllowedImageTypes {
		if detected.Is(allowed) {
			return allowed, true
		}
	}
	return "", false
}

func uploadKind(kind string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, kind)
}

func putFile(ctx *gin.Context, disk storage.Disk, p string, file *multipart.FileHeader, contentType string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return disk.Put(ctx, p, src, contentType)
}

// UploadImage stores an image on the configured disk. The optional "type"
// field (logo, banner, product...) becomes the file name prefix.
func (c *Controller) UploadImage(ctx *gin.Context) {
	file, contentType, ok := c.imageFromForm(ctx, http.StatusBadRequest)
	if !ok {
		return
	}

	filename := storage.FileName(file.Filename, time.Now())
	if kind := uploadKind(ctx.PostForm("type")); kind != "" {
		filename = kind + "-" + filename
	}

	url, err := putFile(ctx, c.Disk, path.Join("uploads", filename), file, contentType)
	if err != nil {
		middlewares.Logger(ctx).Error("upload failed", "filename", filename, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Upload failed")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"url": url, "filename": filename})
}

func (c *Controller) UploadToFTP(ctx *gin.Context) {
	if c.FTP == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "FTP not configured")
		return
	}
	file, contentType, ok := c.imageFromForm(ctx, http.StatusRequestEntityTooLarge)
	if !ok {
		return
	}
	folder, ok := storage.CleanFolder(ctx.PostForm("folder"))
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid folder")
		return
	}

	filename := storage.FileName(file.Filename, time.Now())
	remotePath := storage.Join(folder, filename)
	url, err := putFile(ctx, c.FTP, remotePath, file, contentType)
	if err != nil {
		middlewares.Logger(ctx).Error("ftp upload failed", "path", remotePath, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Upload failed")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":  true,
		"filename": filename,
		"url":      url,
		"path":     remotePath,
	})
}

// GetFTPImages lists the image files and folders under ?folder=.
func (c *Controller) GetFTPImages(ctx *gin.Context) {
	if c.FTP == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "FTP not configured")
		return
	}
	folder, ok := storage.CleanFolder(ctx.Query("folder"))
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid folder")
		return
	}

	entries, err := c.FTP.List(ctx, folder)
	if err != nil {
		middlewares.Logger(ctx).Error("ftp listing failed", "folder", folder, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch FTP images")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"images":        storage.OnlyImages(entries),
		"currentFolder": folder,
	})
}

// storedImagePath validates ?path= for a delete: a relative image file path
// without traversal.
func storedImagePath(ctx *gin.Context) (string, bool) {
	p, ok := storage.CleanFolder(ctx.Query("path"))
	if !ok || p == "" || !storage.IsImageFile(p) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid path")
		return "", false
	}
	return p, true
}

func deleteStored(ctx *gin.Context, disk storage.Disk, p string) {
	if err := disk.Delete(ctx, p); err != nil {
		middlewares.Logger(ctx).Error("delete failed", "path", p, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete file")
		return
	}
	middlewares.Logger(ctx).Info("file deleted", "path", p)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "File deleted"})
}

// DeleteUpload removes a file stored by UploadImage. ?path= is the path
// relative to the disk root, e.g. uploads/logo-1700000000000_a.png.
func (c *Controller) DeleteUpload(ctx *gin.Context) {
	p, ok := storedImagePath(ctx)
	if !ok {
		return
	}
	deleteStored(ctx, c.Disk, p)
}

func (c *Controller) DeleteFTPImage(ctx *gin.Context) {
	if c.FTP == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "FTP not configured")
		return
	}
	p, ok := storedImagePath(ctx)
	if !ok {
		return
	}
	deleteStored(ctx, c.FTP, p)
}

// GetFTPConfig reports the FTP settings read from the environment.
func (c *Controller) GetFTPConfig(ctx *gin.Context) {
	if c.FTP == nil {
		sendJSONResponse(ctx, http.StatusOK, storage.FTPSettings{})
		return
	}
	sendJSONResponse(ctx, http.StatusOK, c.FTP.Settings())
}

// TestFTPConnection logs in to the FTP server and enters the base path.
func (c *Controller) TestFTPConnection(ctx *gin.Context) {
	if c.FTP == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "FTP not configured")
		return
	}
	if err := c.FTP.Ping(ctx); err != nil {
		middlewares.Logger(ctx).Warn("ftp connection test failed", "error", err)
		sendJSONResponse(ctx, http.StatusBadGateway, gin.H{"success": false, "message": "FTP connection failed"})
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "FTP connection successful"})
}
