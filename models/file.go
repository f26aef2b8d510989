package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// File is a row of the file manager's "files" table
type File struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Filename   string    `gorm:"type:varchar(255);not null" json:"filename"`
	Filetype   string    `gorm:"type:varchar(50);not null" json:"filetype"`
	Filepath   string    `gorm:"type:varchar(255);not null" json:"filepath"`
	UploadedAt time.Time `gorm:"autoCreateTime;index" json:"uploaded_at"`
}

func (File) TableName() string {
	return "files"
}

func (f *File) BeforeCreate(tx *gorm.DB) (err error) {
	if f.Filename == "" || f.Filepath == "" || f.Filetype == "" {
		return errors.New("filename, filepath and filetype are required")
	}
	// varchar(50)
	if len(f.Filetype) > 50 {
		f.Filetype = f.Filetype[:50]
	}
	return
}

func (f *File) asset() Asset {
	return Asset{
		ID:         f.ID,
		Filename:   f.Filename,
		Filepath:   f.Filepath,
		Filetype:   f.Filetype,
		UploadedAt: f.UploadedAt,
	}
}

type FileStore struct {
	db *gorm.DB
}

func NewFileStore(db *gorm.DB) *FileStore {
	return &FileStore{db: db}
}

func (s *FileStore) Migrate() error {
	return s.db.AutoMigrate(&File{})
}

func (s *FileStore) Create(asset *Asset) error {
	file := File{
		Filename: asset.Filename,
		Filepath: asset.Filepath,
		Filetype: asset.Filetype,
	}
	if err := s.db.Create(&file).Error; err != nil {
		return err
	}
	*asset = file.asset()
	return nil
}

// ListAll returns the newest uploads first
func (s *FileStore) ListAll() ([]Asset, error) {
	files := []File{}
	if err := s.db.Order("uploaded_at DESC").Order("id DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	result := make([]Asset, 0, len(files))
	for i := range files {
		result = append(result, files[i].asset())
	}
	return result, nil
}

func (s *FileStore) GetByID(id uint64) (Asset, error) {
	file := File{}
	err := s.db.First(&file, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Asset{}, ErrNotFound
	}
	if err != nil {
		return Asset{}, err
	}
	return file.asset(), nil
}

func (s *FileStore) DeleteByID(id uint64) error {
	result := s.db.Delete(&File{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FileStore) Count() (count int64, err error) {
	err = s.db.Model(&File{}).Count(&count).Error
	return
}

func (s *FileStore) JSON(asset Asset) any {
	return File{
		ID:         asset.ID,
		Filename:   asset.Filename,
		Filetype:   asset.Filetype,
		Filepath:   asset.Filepath,
		UploadedAt: asset.UploadedAt,
	}
}
