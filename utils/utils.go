package utils

import (
	"bytes"
	"crypto/rand"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math/big"
	"mime"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nfnt/resize"
)

const maxPrefixLength = 100

func RandBytesToBase62(size int) string {
	buf := make([]byte, size)
	_, err := rand.Read(buf)
	if err != nil {
		panic(err)
	}
	var i big.Int
	return i.SetBytes(buf).Text(62)
}

// RandBase62 returns exactly n random base62 characters
func RandBase62(n int) string {
	s := RandBytesToBase62(n)
	for len(s) < n {
		s = "0" + s
	}
	return s[:n]
}

// SanitizeName keeps letters, digits, '-', '_' and non-leading dots. Everything else becomes '_'
func SanitizeName(in string) string {
	var name strings.Builder
	for i, c := range in {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			(c == '.' && i > 0) || (c == '-') || (c == '_') {

			name.WriteRune(c)
		} else {
			name.WriteString("_")
		}
	}
	return strings.ReplaceAll(name.String(), "..", "_")
}

// Extension returns the lower-cased extension of the original name (with the dot).
// If there is none, one is derived from the MIME type.
func Extension(originalName, mimeType string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext != "" && ext != "." {
		return "." + SanitizeName(ext[1:])
	}
	if mimeType == "" {
		return ""
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// StoredName builds a collision resistant file name for an upload:
//
//	<prefix>-<unix millis>-<8 random base62 chars><ext>
func StoredName(prefix, originalName, mimeType string, now time.Time) string {
	prefix = SanitizeName(prefix)
	if len(prefix) > maxPrefixLength {
		prefix = prefix[:maxPrefixLength]
	}
	if prefix == "" {
		prefix = "file"
	}
	return prefix + "-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + RandBase62(8) + Extension(originalName, mimeType)
}

// BaseName returns the original name without directories and extension
func BaseName(originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "." || base == "/" {
		return ""
	}
	return base
}

type ImageThumbConverted struct {
	ThumbSize int64
	NewX      uint16
	NewY      uint16
	OldX      uint16
	OldY      uint16
}

func CreateThumb(size uint, reader io.Reader, writer io.Writer) (result ImageThumbConverted, err error) {
	image, _, err := image.Decode(reader)
	if err != nil {
		return result, err
	}
	var newBuf bytes.Buffer
	newImage := resize.Thumbnail(size, size, image, resize.Lanczos3)
	if err = jpeg.Encode(&newBuf, newImage, &jpeg.Options{Quality: 90}); err != nil {
		return
	}
	imageRect := newImage.Bounds().Size()
	result.NewX = uint16(imageRect.X)
	result.NewY = uint16(imageRect.Y)

	imageRect = image.Bounds().Size()
	result.OldX = uint16(imageRect.X)
	result.OldY = uint16(imageRect.Y)

	result.ThumbSize, err = io.Copy(writer, &newBuf)
	return
}
