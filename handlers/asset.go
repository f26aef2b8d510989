package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"
	"uploader/models"
	"uploader/storage"
	"uploader/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultThumbSize = 320
	minThumbSize     = 16
	maxThumbSize     = 2048
)

type ThumbRequest struct {
	Size uint `form:"size"`
}

// List returns every record. An empty table is an empty list, not an error.
func (h *Handlers) List(c *gin.Context) {
	assets, err := h.Records.ListAll()
	if err != nil {
		log.Printf("List error: %v", err)
		c.JSON(http.StatusInternalServerError, h.errorMessage(msgDBError1))
		return
	}
	result := make([]any, 0, len(assets))
	for _, asset := range assets {
		result = append(result, h.Records.JSON(asset))
	}
	if h.Variant.ListKey != "" {
		c.JSON(http.StatusOK, gin.H{h.Variant.ListKey: result})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete removes the blob (best effort) and then the record
func (h *Handlers) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, h.errorMessage(msgInvalidID))
		return
	}
	asset, err := h.Records.GetByID(id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, h.errorMessage(msgNotFound))
		return
	}
	if err != nil {
		log.Printf("Delete %d: lookup error: %v", id, err)
		c.JSON(http.StatusInternalServerError, h.errorMessage(msgDBError2))
		return
	}
	// The blob may already be gone, that must not block removing the record
	if err = h.Blobs.Delete(asset.Filename); err != nil {
		log.Printf("Delete %d: blob %q error: %v", id, asset.Filename, err)
	}
	err = h.Records.DeleteByID(id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, h.errorMessage(msgNotFound))
		return
	}
	if err != nil {
		log.Printf("Delete %d: delete error: %v", id, err)
		c.JSON(http.StatusInternalServerError, h.errorMessage(msgDBError3))
		return
	}
	c.JSON(http.StatusOK, h.message(asset.Filename+" Deleted Successfully"))
}

// blobName validates the :filename parameter and checks the blob exists
func (h *Handlers) blobName(c *gin.Context) (string, bool) {
	name := c.Param("filename")
	if !storage.ValidName(name) {
		c.JSON(http.StatusBadRequest, h.errorMessage(msgInvalidName))
		return "", false
	}
	if !h.Blobs.Exists(name) {
		c.JSON(http.StatusNotFound, h.errorMessage(msgNotFound))
		return "", false
	}
	return name, true
}

// View serves the blob inline. No record lookup is done.
func (h *Handlers) View(c *gin.Context) {
	name, ok := h.blobName(c)
	if !ok {
		return
	}
	utils.SetCacheControl(c, utils.CacheOneWeek)
	h.Blobs.Serve(name, false, c.Request, c.Writer)
}

// Download serves the blob as an attachment
func (h *Handlers) Download(c *gin.Context) {
	name, ok := h.blobName(c)
	if !ok {
		return
	}
	h.Blobs.Serve(name, true, c.Request, c.Writer)
}

// Thumb renders a JPEG thumbnail of an image blob
func (h *Handlers) Thumb(c *gin.Context) {
	r := ThumbRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, h.errorMessage(err.Error()))
		return
	}
	name, ok := h.blobName(c)
	if !ok {
		return
	}
	size := r.Size
	if size == 0 {
		size = defaultThumbSize
	} else if size < minThumbSize {
		size = minThumbSize
	} else if size > maxThumbSize {
		size = maxThumbSize
	}
	var buf, thumb bytes.Buffer
	if _, err := h.Blobs.Load(name, &buf); err != nil {
		log.Printf("Thumb %q: load error: %v", name, err)
		c.JSON(http.StatusInternalServerError, h.errorMessage(msgStorageError))
		return
	}
	info, err := utils.CreateThumb(size, &buf, &thumb)
	if err != nil {
		c.JSON(http.StatusUnsupportedMediaType, h.errorMessage(msgNotAnImage))
		return
	}
	utils.SetCacheControl(c, utils.CacheOneWeek)
	c.Header("content-length", strconv.FormatInt(info.ThumbSize, 10))
	c.Data(http.StatusOK, "image/jpeg", thumb.Bytes())
}

func (h *Handlers) Health(c *gin.Context) {
	count, err := h.Records.Count()
	if err != nil {
		log.Printf("Health: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": msgDBError1})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"variant":     h.Variant.Name,
		"records":     count,
		"storage":     h.Blobs.GetBucket().StorageType,
		"free_space":  h.Blobs.GetFreeSpace(),
		"total_space": h.Blobs.GetTotalSpace(),
	})
}
