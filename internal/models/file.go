package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileEntry is the metadata and retrieval locator of one uploaded file. It
// belongs to exactly one ShareRecord or one Container.
type FileEntry struct {
	ID          uuid.UUID  `json:"-" gorm:"type:uuid;primaryKey"`
	ShareID     *uuid.UUID `json:"-" gorm:"type:uuid;index"`
	ContainerID *uuid.UUID `json:"-" gorm:"type:uuid;index"`
	// Code is the owning share's code, or the file's own code inside a container.
	Code       string    `json:"code" gorm:"type:varchar(16);index;not null"`
	Name       string    `json:"name" gorm:"not null"`
	Locator    string    `json:"locator" gorm:"not null"` // URL or object key
	Size       int64     `json:"size" gorm:"not null"`    // bytes
	MediaType  string    `json:"mediaType,omitempty"`
	Position   int       `json:"-" gorm:"not null"` // order within the owner (0,1,2…)
	UploadedAt time.Time `json:"uploadedAt" gorm:"not null"`
}

func (f *FileEntry) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
