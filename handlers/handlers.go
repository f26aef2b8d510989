package handlers

import (
	"path/filepath"
	"strings"
	"time"
	"uploader/config"
	"uploader/models"
	"uploader/storage"

	"github.com/gin-gonic/gin"
)

// Variant describes one flavour of the application: the image gallery or the file manager
type Variant struct {
	Name       string
	Title      string
	FieldName  string // multipart form field
	MessageKey string // JSON key of human readable messages
	ListKey    string // empty means the listing is a bare array
	ListPaths  []string
	UploadPath string
	DeletePath string
	// AllowedExts are lower-case extensions without the dot. Empty allows everything.
	AllowedExts     []string
	MaxUploadSize   int64
	UploadedMessage string
	// PrefixFromName uses the original file name as stored name prefix instead of FieldName
	PrefixFromName bool
}

func GalleryVariant(maxUploadSize int64) Variant {
	return Variant{
		Name:            config.VariantGallery,
		Title:           "Image Gallery",
		FieldName:       "image",
		MessageKey:      "msg",
		ListKey:         "image",
		ListPaths:       []string{"/images"},
		UploadPath:      "/upload",
		DeletePath:      "/file/:id",
		AllowedExts:     []string{"jpg", "jpeg", "png", "gif"},
		MaxUploadSize:   maxUploadSize,
		UploadedMessage: "Image uploaded successfully",
		PrefixFromName:  true,
	}
}

func FilesVariant(maxUploadSize int64) Variant {
	return Variant{
		Name:            config.VariantFiles,
		Title:           "File Manager",
		FieldName:       "file",
		MessageKey:      "message",
		ListPaths:       []string{"/api/files", "/files"},
		UploadPath:      "/api/upload",
		DeletePath:      "/api/file/:id",
		MaxUploadSize:   maxUploadSize,
		UploadedMessage: "File Uploaded Successfully",
	}
}

func VariantFor(name string, maxUploadSize int64) Variant {
	if name == config.VariantGallery {
		return GalleryVariant(maxUploadSize)
	}
	return FilesVariant(maxUploadSize)
}

// Allows checks the extension of the original file name against AllowedExts
func (v *Variant) Allows(originalName string) bool {
	if len(v.AllowedExts) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalName)), ".")
	for _, allowed := range v.AllowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// DeletePrefix is DeletePath without the :id parameter
func (v *Variant) DeletePrefix() string {
	return strings.TrimSuffix(v.DeletePath, ":id")
}

type Handlers struct {
	Variant Variant
	Records models.RecordStore
	Blobs   storage.StorageAPI
	now     func() time.Time
}

func New(variant Variant, records models.RecordStore, blobs storage.StorageAPI) *Handlers {
	return &Handlers{
		Variant: variant,
		Records: records,
		Blobs:   blobs,
		now:     time.Now,
	}
}

// Register adds all API routes of the variant
func (h *Handlers) Register(router gin.IRouter) {
	for _, path := range h.Variant.ListPaths {
		router.GET(path, h.List)
	}
	router.POST(h.Variant.UploadPath, h.Upload)
	router.DELETE(h.Variant.DeletePath, h.Delete)
	router.GET("/uploads/:filename", h.View)
	router.GET("/download/:filename", h.Download)
	router.GET("/thumb/:filename", h.Thumb)
	router.GET("/api/health", h.Health)
}
