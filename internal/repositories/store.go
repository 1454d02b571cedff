package repositories

import (
	"context"
	"errors"

	"github.com/rohits-web03/codebox/internal/models"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("container name already taken")
	ErrDuplicate  = errors.New("share code already exists")
	ErrValidation = errors.New("invalid record")
)

// Store holds the two record families: ungrouped share records keyed by code
// and containers keyed by name. Every operation is atomic for its own target
// record; nothing spans both collections.
//
// Lookups return ErrNotFound on a miss. Deletes report a miss as false.
type Store interface {
	PutShareRecord(ctx context.Context, rec *models.ShareRecord) error
	GetShareRecordByCode(ctx context.Context, code string) (*models.ShareRecord, error)
	// ListShareRecords returns records newest first.
	ListShareRecords(ctx context.Context) ([]models.ShareRecord, error)
	DeleteShareRecordByCode(ctx context.Context, code string) (bool, error)

	PutContainer(ctx context.Context, c *models.Container) error
	GetContainerByName(ctx context.Context, name string) (*models.Container, error)
	GetContainerContainingFileCode(ctx context.Context, code string) (*models.Container, error)
	// AppendFilesToContainer appends all entries or none and returns the
	// container as it is after the append.
	AppendFilesToContainer(ctx context.Context, name string, entries []models.FileEntry) (*models.Container, error)
	// RemoveFileFromContainer returns ErrNotFound when the container is
	// missing and false when the container has no file with that code.
	RemoveFileFromContainer(ctx context.Context, name, fileCode string) (bool, error)
	DeleteContainer(ctx context.Context, name string) (bool, error)
	// ListContainers returns containers newest first.
	ListContainers(ctx context.Context) ([]models.Container, error)

	// CodeInUse reports whether code addresses a share record or any file
	// inside a container.
	CodeInUse(ctx context.Context, code string) (bool, error)
}
