package storage

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
)

type DiskStorage struct {
	Storage
	// BasePath is a directory that is writable by the current process
	BasePath string
}

func (s *DiskStorage) getFullPath(name string) string {
	return filepath.Join(s.BasePath, name)
}

// Save writes to a temp file first so a failed copy never leaves a partial blob behind
func (s *DiskStorage) Save(name string, reader io.Reader) (int64, error) {
	if !ValidName(name) {
		return 0, ErrBadName
	}
	file, err := os.CreateTemp(s.BasePath, ".upload-*")
	if err != nil {
		return 0, err
	}
	tmpName := file.Name()
	result, err := io.Copy(file, reader)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, s.getFullPath(name))
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return 0, err
	}
	return result, nil
}

func (s *DiskStorage) Load(name string, writer io.Writer) (int64, error) {
	if !ValidName(name) {
		return 0, ErrBadName
	}
	file, err := os.Open(s.getFullPath(name))
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(writer, file)
	file.Close()
	return result, err
}

// Serve handles byte-ranges and sets the content type from the extension
func (s *DiskStorage) Serve(name string, attachment bool, request *http.Request, writer http.ResponseWriter) {
	if attachment {
		writer.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	}
	http.ServeFile(writer, request, s.getFullPath(name))
}

func (s *DiskStorage) Delete(name string) error {
	if !ValidName(name) {
		return ErrBadName
	}
	return os.Remove(s.getFullPath(name))
}

func (s *DiskStorage) Exists(name string) bool {
	if !ValidName(name) {
		return false
	}
	fi, err := os.Stat(s.getFullPath(name))
	return err == nil && fi.Mode().IsRegular()
}

func (s *DiskStorage) Location(name string) string {
	return filepath.ToSlash(filepath.Join(s.Bucket.Path, name))
}

func (s *DiskStorage) GetTotalSpace() uint64 {
	_, total := diskStats(s.BasePath)
	return total
}

func (s *DiskStorage) GetFreeSpace() uint64 {
	free, _ := diskStats(s.BasePath)
	return free
}

func NewDiskStorage(bucket *Bucket) *DiskStorage {
	return &DiskStorage{
		BasePath: bucket.Path,
		Storage: Storage{
			Bucket: *bucket,
		},
	}
}
