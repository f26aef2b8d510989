package models

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("record not found")

// Asset is the variant-neutral view of one stored upload.
// Filepath, Filetype and UploadedAt are only persisted by the file manager.
type Asset struct {
	ID         uint64
	Filename   string
	Filepath   string
	Filetype   string
	UploadedAt time.Time
}

// RecordStore keeps one metadata row per uploaded asset
type RecordStore interface {
	// Migrate creates the table if missing. Safe to call on every start.
	Migrate() error
	Create(asset *Asset) error
	ListAll() ([]Asset, error)
	GetByID(id uint64) (Asset, error)
	DeleteByID(id uint64) error
	Count() (int64, error)
	// JSON returns the wire representation of a record
	JSON(asset Asset) any
}
