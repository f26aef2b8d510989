package storage

import (
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const presignViewURLFor = time.Hour

type S3Storage struct {
	Storage
	s3Client *s3.S3
}

func NewS3Storage(bucket *Bucket) *S3Storage {
	return &S3Storage{
		Storage: Storage{
			Bucket: *bucket,
		},
		s3Client: bucket.CreateSVC(),
	}
}

func (s *S3Storage) Save(name string, reader io.Reader) (int64, error) {
	if !ValidName(name) {
		return 0, ErrBadName
	}
	counter := &countingReader{reader: reader}
	input := s3manager.UploadInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(name)),
		Body:   counter,
	}
	if mimeType := mime.TypeByExtension(filepath.Ext(name)); mimeType != "" {
		input.ContentType = aws.String(mimeType)
	}
	if s.Bucket.SSEEncryption != "" {
		input.ServerSideEncryption = &s.Bucket.SSEEncryption
	}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	if _, err := uploader.Upload(&input); err != nil {
		return 0, err
	}
	return counter.n, nil
}

func (s *S3Storage) Load(name string, writer io.Writer) (int64, error) {
	if !ValidName(name) {
		return 0, ErrBadName
	}
	resp, err := s.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(name)),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(writer, resp.Body)
}

// Serve redirects to a pre-signed download URL
func (s *S3Storage) Serve(name string, attachment bool, request *http.Request, writer http.ResponseWriter) {
	input := &s3.GetObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(name)),
	}
	if attachment {
		input.ResponseContentDisposition = aws.String("attachment; filename=\"" + name + "\"")
	}
	req, _ := s.s3Client.GetObjectRequest(input)
	url, err := req.Presign(presignViewURLFor)
	if err != nil {
		log.Printf("S3 presign error for %s: %v", name, err)
		http.Error(writer, "Storage Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(writer, request, url, http.StatusFound)
}

func (s *S3Storage) Delete(name string) error {
	if !ValidName(name) {
		return ErrBadName
	}
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(name)),
	})
	return err
}

func (s *S3Storage) Exists(name string) bool {
	if !ValidName(name) {
		return false
	}
	_, err := s.s3Client.HeadObject(&s3.HeadObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(name)),
	})
	return err == nil
}

func (s *S3Storage) Location(name string) string {
	return s.Bucket.GetRemotePath(name)
}

// Space is not known for S3 buckets
func (s *S3Storage) GetTotalSpace() uint64 { return 0 }
func (s *S3Storage) GetFreeSpace() uint64  { return 0 }

type countingReader struct {
	reader io.Reader
	n      int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.n += int64(n)
	return n, err
}
