package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/rohits-web03/codebox/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the postgres-backed Store. Container file lists are mutated
// under a row lock on the container, so appends to one container serialize.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func orderedFiles(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (s *GormStore) PutShareRecord(ctx context.Context, rec *models.ShareRecord) error {
	if len(rec.Files) == 0 {
		return fmt.Errorf("%w: share record has no files", ErrValidation)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert share record: %w", err)
	}
	return nil
}

func (s *GormStore) GetShareRecordByCode(ctx context.Context, code string) (*models.ShareRecord, error) {
	var rec models.ShareRecord
	err := s.db.WithContext(ctx).
		Preload("Files", orderedFiles).
		Where("code = ?", code).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get share record: %w", err)
	}
	return &rec, nil
}

func (s *GormStore) ListShareRecords(ctx context.Context) ([]models.ShareRecord, error) {
	var recs []models.ShareRecord
	err := s.db.WithContext(ctx).
		Preload("Files", orderedFiles).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list share records: %w", err)
	}
	return recs, nil
}

func (s *GormStore) DeleteShareRecordByCode(ctx context.Context, code string) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.ShareRecord
		if err := tx.Where("code = ?", code).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("share_id = ?", rec.ID).Delete(&models.FileEntry{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&rec)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete share record: %w", err)
	}
	return deleted, nil
}

func (s *GormStore) PutContainer(ctx context.Context, c *models.Container) error {
	if err := s.db.WithContext(ctx).Omit("Files").Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return fmt.Errorf("insert container: %w", err)
	}
	return nil
}

func (s *GormStore) GetContainerByName(ctx context.Context, name string) (*models.Container, error) {
	return s.findContainer(s.db.WithContext(ctx), "name = ?", name)
}

func (s *GormStore) GetContainerContainingFileCode(ctx context.Context, code string) (*models.Container, error) {
	db := s.db.WithContext(ctx)
	owner := db.Model(&models.FileEntry{}).
		Select("container_id").
		Where("code = ? AND container_id IS NOT NULL", code).
		Limit(1)
	return s.findContainer(db, "id = (?)", owner)
}

func (s *GormStore) findContainer(db *gorm.DB, query string, args ...any) (*models.Container, error) {
	var c models.Container
	err := db.Preload("Files", orderedFiles).Where(query, args...).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get container: %w", err)
	}
	return &c, nil
}

// lockContainer loads the container row FOR UPDATE inside tx.
func lockContainer(tx *gorm.DB, name string) (*models.Container, error) {
	var c models.Container
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *GormStore) AppendFilesToContainer(ctx context.Context, name string, entries []models.FileEntry) (*models.Container, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: nothing to append", ErrValidation)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockContainer(tx, name)
		if err != nil {
			return err
		}

		var last int
		if err := tx.Model(&models.FileEntry{}).
			Where("container_id = ?", c.ID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&last).Error; err != nil {
			return err
		}

		for i := range entries {
			entries[i].ShareID = nil
			entries[i].ContainerID = &c.ID
			entries[i].Position = last + 1 + i
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("append container files: %w", err)
	}
	return s.GetContainerByName(ctx, name)
}

func (s *GormStore) RemoveFileFromContainer(ctx context.Context, name, fileCode string) (bool, error) {
	removed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockContainer(tx, name)
		if err != nil {
			return err
		}
		res := tx.Where("container_id = ? AND code = ?", c.ID, fileCode).Delete(&models.FileEntry{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("remove container file: %w", err)
	}
	return removed, nil
}

func (s *GormStore) DeleteContainer(ctx context.Context, name string) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockContainer(tx, name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("container_id = ?", c.ID).Delete(&models.FileEntry{}).Error; err != nil {
			return err
		}
		res := tx.Delete(c)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete container: %w", err)
	}
	return deleted, nil
}

func (s *GormStore) ListContainers(ctx context.Context) ([]models.Container, error) {
	var cs []models.Container
	err := s.db.WithContext(ctx).
		Preload("Files", orderedFiles).
		Order("created_at DESC").
		Find(&cs).Error
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	return cs, nil
}

func (s *GormStore) CodeInUse(ctx context.Context, code string) (bool, error) {
	db := s.db.WithContext(ctx)

	var shares int64
	if err := db.Model(&models.ShareRecord{}).Where("code = ?", code).Count(&shares).Error; err != nil {
		return false, fmt.Errorf("check share code: %w", err)
	}
	if shares > 0 {
		return true, nil
	}

	var files int64
	if err := db.Model(&models.FileEntry{}).
		Where("code = ? AND container_id IS NOT NULL", code).
		Count(&files).Error; err != nil {
		return false, fmt.Errorf("check file code: %w", err)
	}
	return files > 0, nil
}
