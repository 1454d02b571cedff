package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/codebox/internal/models"
)

// MemoryStore is a process-local Store used by STORE_DRIVER=memory and tests.
// A single mutex serializes writers, which also gives per-container
// single-writer semantics. Returned values are copies.
type MemoryStore struct {
	mu         sync.RWMutex
	shares     map[string]*models.ShareRecord // by code
	containers map[string]*models.Container   // by name
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		shares:     make(map[string]*models.ShareRecord),
		containers: make(map[string]*models.Container),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func copyFiles(files []models.FileEntry) []models.FileEntry {
	if files == nil {
		return []models.FileEntry{}
	}
	out := make([]models.FileEntry, len(files))
	copy(out, files)
	return out
}

func copyShare(rec *models.ShareRecord) *models.ShareRecord {
	c := *rec
	c.Files = copyFiles(rec.Files)
	return &c
}

func copyContainer(ct *models.Container) *models.Container {
	c := *ct
	c.Files = copyFiles(ct.Files)
	return &c
}

func (s *MemoryStore) PutShareRecord(_ context.Context, rec *models.ShareRecord) error {
	if len(rec.Files) == 0 {
		return fmt.Errorf("%w: share record has no files", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shares[rec.Code]; ok {
		return ErrDuplicate
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	for i := range rec.Files {
		f := &rec.Files[i]
		if f.ID == uuid.Nil {
			f.ID = uuid.New()
		}
		id := rec.ID
		f.ShareID = &id
		f.ContainerID = nil
		f.Position = i
	}
	s.shares[rec.Code] = copyShare(rec)
	return nil
}

func (s *MemoryStore) GetShareRecordByCode(_ context.Context, code string) (*models.ShareRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.shares[code]
	if !ok {
		return nil, ErrNotFound
	}
	return copyShare(rec), nil
}

func (s *MemoryStore) ListShareRecords(_ context.Context) ([]models.ShareRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ShareRecord, 0, len(s.shares))
	for _, rec := range s.shares {
		out = append(out, *copyShare(rec))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) DeleteShareRecordByCode(_ context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shares[code]; !ok {
		return false, nil
	}
	delete(s.shares, code)
	return true, nil
}

func (s *MemoryStore) PutContainer(_ context.Context, c *models.Container) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.containers[c.Name]; ok {
		return ErrConflict
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	c.Files = []models.FileEntry{}
	s.containers[c.Name] = copyContainer(c)
	return nil
}

func (s *MemoryStore) GetContainerByName(_ context.Context, name string) (*models.Container, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.containers[name]
	if !ok {
		return nil, ErrNotFound
	}
	return copyContainer(c), nil
}

func (s *MemoryStore) GetContainerContainingFileCode(_ context.Context, code string) (*models.Container, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.containers {
		for _, f := range c.Files {
			if f.Code == code {
				return copyContainer(c), nil
			}
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) AppendFilesToContainer(_ context.Context, name string, entries []models.FileEntry) (*models.Container, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: nothing to append", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.containers[name]
	if !ok {
		return nil, ErrNotFound
	}
	next := 0
	if n := len(c.Files); n > 0 {
		next = c.Files[n-1].Position + 1
	}
	for i := range entries {
		e := entries[i]
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		id := c.ID
		e.ContainerID = &id
		e.ShareID = nil
		e.Position = next + i
		c.Files = append(c.Files, e)
	}
	return copyContainer(c), nil
}

func (s *MemoryStore) RemoveFileFromContainer(_ context.Context, name, fileCode string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.containers[name]
	if !ok {
		return false, ErrNotFound
	}
	for i, f := range c.Files {
		if f.Code == fileCode {
			c.Files = append(c.Files[:i:i], c.Files[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) DeleteContainer(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.containers[name]; !ok {
		return false, nil
	}
	delete(s.containers, name)
	return true, nil
}

func (s *MemoryStore) ListContainers(_ context.Context) ([]models.Container, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Container, 0, len(s.containers))
	for _, c := range s.containers {
		out = append(out, *copyContainer(c))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) CodeInUse(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.shares[code]; ok {
		return true, nil
	}
	for _, c := range s.containers {
		for _, f := range c.Files {
			if f.Code == code {
				return true, nil
			}
		}
	}
	return false, nil
}
