package storage

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"uploader/config"
)

var ErrBadName = errors.New("invalid file name")

// StorageAPI holds uploaded blobs addressed by their stored filename
type StorageAPI interface {
	Save(name string, reader io.Reader) (int64, error)
	Load(name string, writer io.Writer) (int64, error)
	// Serve writes the blob to the response, inline or as an attachment
	Serve(name string, attachment bool, request *http.Request, writer http.ResponseWriter)
	Delete(name string) error
	Exists(name string) bool
	// Location returns the relative path (or object key) the blob is stored under
	Location(name string) string
	GetTotalSpace() uint64
	GetFreeSpace() uint64
	GetBucket() *Bucket
}

type Storage struct {
	Bucket Bucket
}

func (s *Storage) GetBucket() *Bucket {
	return &s.Bucket
}

// ValidName rejects anything that could escape the storage root
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00") && !strings.Contains(name, "..")
}

// Init creates the storage for the configured bucket
func Init() (StorageAPI, error) {
	bucket := BucketFromConfig()
	log.Printf("Storage: %s (%s)", bucket.Name, bucket.StorageType)
	if err := bucket.TryInit(); err != nil {
		return nil, err
	}
	return NewStorage(&bucket), nil
}

func NewStorage(bucket *Bucket) StorageAPI {
	if bucket.IsS3() {
		return NewS3Storage(bucket)
	}
	return NewDiskStorage(bucket)
}

func BucketFromConfig() Bucket {
	if config.STORAGE_TYPE == config.StorageTypeS3 {
		return Bucket{
			Name:          config.S3_BUCKET,
			StorageType:   StorageTypeS3,
			Path:          config.S3_PREFIX,
			Endpoint:      config.S3_ENDPOINT,
			Region:        config.S3_REGION,
			S3Key:         config.S3_KEY,
			S3Secret:      config.S3_SECRET,
			SSEEncryption: config.S3_SSE,
		}
	}
	return Bucket{
		Name:        "local",
		StorageType: StorageTypeFile,
		Path:        config.UPLOAD_DIR,
	}
}
