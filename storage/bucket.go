package storage

import (
	"errors"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType string

const (
	StorageTypeFile StorageType = "file"
	StorageTypeS3   StorageType = "s3"
)

// Bucket describes where blobs live: a directory on disk or a prefix in a S3 bucket
type Bucket struct {
	Name          string
	StorageType   StorageType
	Path          string // Path on a drive or a prefix in a S3 bucket
	Endpoint      string
	Region        string
	S3Key         string
	S3Secret      string
	SSEEncryption string
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

// TryInit makes sure the bucket is usable
func (b *Bucket) TryInit() error {
	if b.IsS3() {
		if b.Name == "" {
			return errors.New("S3 bucket name is empty")
		}
		if b.S3Key == "" || b.S3Secret == "" {
			return errors.New("'S3 Key' and 'S3 Secret' must be provided")
		}
		if b.Region == "" {
			b.Region = "us-east-1"
		}
		return nil
	}
	if b.Path == "" {
		return errors.New("empty upload directory")
	}
	// Pre-create location on disk
	return os.MkdirAll(b.Path, 0777)
}

// GetRemotePath returns the object key for a blob
func (b *Bucket) GetRemotePath(name string) string {
	if b.Path == "" {
		return name
	}
	return b.Path + "/" + name
}

func (b *Bucket) CreateSVC() *s3.S3 {
	cfg := aws.NewConfig().
		WithRegion(b.Region).
		WithCredentials(credentials.NewStaticCredentials(b.S3Key, b.S3Secret, ""))
	if b.Endpoint != "" {
		cfg = cfg.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	sess := session.Must(session.NewSession(cfg))
	return s3.New(sess)
}
