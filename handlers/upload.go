package handlers

import (
	"errors"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"uploader/models"
	"uploader/utils"

	"github.com/gin-gonic/gin"
)

// Room for the multipart envelope around the file itself
const multipartOverhead = 1 << 20

var (
	ErrNoFile       = errors.New("No file uploaded")
	ErrTooManyFiles = errors.New("Only one file per request is allowed")
	ErrTooLarge     = errors.New("File too large")
	ErrFileType     = errors.New("Only image files (jpg, jpeg, png, gif) are allowed!")
)

func statusFor(err error) int {
	if errors.Is(err, ErrTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// singleFile returns the one file of the request, validating count and size
func (h *Handlers) singleFile(c *gin.Context) (*multipart.FileHeader, error) {
	if h.Variant.MaxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Variant.MaxUploadSize+multipartOverhead)
	}
	form, err := c.MultipartForm()
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, ErrTooLarge
		}
		return nil, ErrNoFile
	}
	files := form.File[h.Variant.FieldName]
	if len(files) == 0 {
		return nil, ErrNoFile
	}
	if len(files) > 1 {
		return nil, ErrTooManyFiles
	}
	if h.Variant.MaxUploadSize > 0 && files[0].Size > h.Variant.MaxUploadSize {
		return nil, ErrTooLarge
	}
	return files[0], nil
}

func mimeTypeOf(file *multipart.FileHeader) string {
	mimeType := strings.TrimSpace(file.Header.Get("Content-Type"))
	if mimeType != "" {
		return mimeType
	}
	// Guess the mime type from the extension
	if mimeType = mime.TypeByExtension(filepath.Ext(file.Filename)); mimeType != "" {
		return mimeType
	}
	return "application/octet-stream"
}

// Upload stores the blob first and only then inserts the record,
// so a record never points to a missing blob
func (h *Handlers) Upload(c *gin.Context) {
	file, err := h.singleFile(c)
	if err != nil {
		c.JSON(statusFor(err), h.errorMessage(err.Error()))
		return
	}
	if !h.Variant.Allows(file.Filename) {
		c.JSON(http.StatusBadRequest, h.errorMessage(ErrFileType.Error()))
		return
	}
	mimeType := mimeTypeOf(file)
	prefix := h.Variant.FieldName
	if h.Variant.PrefixFromName {
		prefix = utils.BaseName(file.Filename)
	}
	name := utils.StoredName(prefix, file.Filename, mimeType, h.now())

	reader, err := file.Open()
	if err != nil {
		log.Printf("Upload %q: open error: %v", file.Filename, err)
		c.JSON(http.StatusBadRequest, h.errorMessage(ErrNoFile.Error()))
		return
	}
	defer reader.Close()
	size, err := h.Blobs.Save(name, reader)
	if err != nil {
		log.Printf("Upload %q: save error: %v", name, err)
		c.JSON(http.StatusInternalServerError, h.errorMessage(msgStorageError))
		return
	}
	asset := models.Asset{
		Filename: name,
		Filepath: h.Blobs.Location(name),
		Filetype: mimeType,
	}
	if err = h.Records.Create(&asset); err != nil {
		log.Printf("Upload %q: insert error: %v", name, err)
		if err = h.Blobs.Delete(name); err != nil {
			log.Printf("Upload %q: cleanup error: %v", name, err)
		}
		c.JSON(http.StatusInternalServerError, h.errorMessage(msgDBError1))
		return
	}
	log.Printf("Uploaded %q as %q (id %d, %d bytes)", file.Filename, name, asset.ID, size)
	c.JSON(http.StatusOK, gin.H{
		h.Variant.MessageKey: h.Variant.UploadedMessage,
		"result":             h.Records.JSON(asset),
	})
}
