package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Container is a named, secret-protected bundle of files. Each file carries
// its own code, distinct from the container name.
type Container struct {
	ID         uuid.UUID   `json:"-" gorm:"type:uuid;primaryKey"`
	Name       string      `json:"name" gorm:"uniqueIndex;not null"`
	SecretHash string      `json:"-" gorm:"not null"` // bcrypt
	CreatedAt  time.Time   `json:"createdAt" gorm:"not null;index"`
	Files      []FileEntry `json:"files" gorm:"foreignKey:ContainerID;constraint:OnDelete:CASCADE"`
}

func (c *Container) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// FileCodes lists the per-file codes currently held by the container.
func (c *Container) FileCodes() []string {
	codes := make([]string, 0, len(c.Files))
	for _, f := range c.Files {
		codes = append(codes, f.Code)
	}
	return codes
}
