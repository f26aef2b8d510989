package models

import (
	"uploader/config"

	"gorm.io/gorm"
)

// NewRecordStore returns the store for the given variant, see config.VARIANT
func NewRecordStore(db *gorm.DB, variant string) RecordStore {
	if variant == config.VariantGallery {
		return NewGalleryStore(db)
	}
	return NewFileStore(db)
}

// Init creates the store for the configured variant and migrates its table
func Init(db *gorm.DB) (RecordStore, error) {
	store := NewRecordStore(db, config.VARIANT)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}
