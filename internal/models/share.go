package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShareRecord is an ungrouped, code-addressed bundle of files with no secret.
type ShareRecord struct {
	ID           uuid.UUID   `json:"-" gorm:"type:uuid;primaryKey"`
	Code         string      `json:"code" gorm:"type:varchar(16);uniqueIndex;not null"`
	UploaderName string      `json:"uploaderName" gorm:"not null"`
	TotalSize    int64       `json:"totalSize" gorm:"not null"` // sum of all file sizes
	CreatedAt    time.Time   `json:"createdAt" gorm:"not null;index"`
	Files        []FileEntry `json:"files" gorm:"foreignKey:ShareID;constraint:OnDelete:CASCADE"`
}

func (s *ShareRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
