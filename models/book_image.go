package models

import (
	"errors"

	"gorm.io/gorm"
)

// BookImage is a row of the gallery's "bookimages" table. Cover holds the stored filename.
type BookImage struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Cover string `gorm:"type:varchar(255);not null" json:"cover"`
}

func (BookImage) TableName() string {
	return "bookimages"
}

func (b *BookImage) BeforeCreate(tx *gorm.DB) (err error) {
	if b.Cover == "" {
		return errors.New("cover is required")
	}
	return
}

type GalleryStore struct {
	db *gorm.DB
}

func NewGalleryStore(db *gorm.DB) *GalleryStore {
	return &GalleryStore{db: db}
}

func (s *GalleryStore) Migrate() error {
	return s.db.AutoMigrate(&BookImage{})
}

func (s *GalleryStore) Create(asset *Asset) error {
	image := BookImage{Cover: asset.Filename}
	if err := s.db.Create(&image).Error; err != nil {
		return err
	}
	asset.ID = image.ID
	return nil
}

// ListAll returns the images in insertion order
func (s *GalleryStore) ListAll() ([]Asset, error) {
	images := []BookImage{}
	if err := s.db.Order("id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	result := make([]Asset, 0, len(images))
	for _, image := range images {
		result = append(result, Asset{ID: image.ID, Filename: image.Cover})
	}
	return result, nil
}

func (s *GalleryStore) GetByID(id uint64) (Asset, error) {
	image := BookImage{}
	err := s.db.First(&image, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Asset{}, ErrNotFound
	}
	if err != nil {
		return Asset{}, err
	}
	return Asset{ID: image.ID, Filename: image.Cover}, nil
}

func (s *GalleryStore) DeleteByID(id uint64) error {
	result := s.db.Delete(&BookImage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GalleryStore) Count() (count int64, err error) {
	err = s.db.Model(&BookImage{}).Count(&count).Error
	return
}

func (s *GalleryStore) JSON(asset Asset) any {
	return BookImage{ID: asset.ID, Cover: asset.Filename}
}
