package services

import (
	"context"
	"errors"
	"time"

	"github.com/rohits-web03/codebox/internal/models"
	"github.com/rohits-web03/codebox/internal/repositories"
	"go.uber.org/zap"
)

// ContainerManager owns the container lifecycle:
// NonExistent -> Created -> (files added/removed)* -> Deleted.
// A deleted container's name can be reused right away.
type ContainerManager struct {
	store    repositories.Store
	guard    *AccessGuard
	minter   *CodeMinter
	resolver *Resolver
	storage  repositories.ObjectStorage
	maxFiles int
	logger   *zap.Logger
	now      func() time.Time
}

func NewContainerManager(
	store repositories.Store,
	guard *AccessGuard,
	minter *CodeMinter,
	resolver *Resolver,
	storage repositories.ObjectStorage,
	maxFiles int,
	logger *zap.Logger,
) *ContainerManager {
	return &ContainerManager{
		store:    store,
		guard:    guard,
		minter:   minter,
		resolver: resolver,
		storage:  storage,
		maxFiles: maxFiles,
		logger:   logger.With(zap.String("component", "containers")),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (m *ContainerManager) Create(ctx context.Context, name, secret string) (*models.Container, error) {
	name, err := normalizeContainerName(name)
	if err != nil {
		return nil, err
	}
	if err := validateSecret(secret); err != nil {
		return nil, err
	}
	hash, err := m.guard.HashSecret(secret)
	if err != nil {
		return nil, storeErr("hash secret", err)
	}

	c := &models.Container{
		Name:       name,
		SecretHash: hash,
		CreatedAt:  m.now(),
		Files:      []models.FileEntry{},
	}
	if err := m.store.PutContainer(ctx, c); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrConflict
		}
		m.logger.Error("create container", zap.String("container", name), zap.Error(err))
		return nil, storeErr("create container", err)
	}
	m.logger.Info("container created", zap.String("container", name))
	return c, nil
}

// Open returns the container and its files once the secret checks out.
func (m *ContainerManager) Open(ctx context.Context, name, secret string) (*models.Container, error) {
	name, err := normalizeContainerName(name)
	if err != nil {
		return nil, err
	}
	return m.guard.Authorize(ctx, name, secret)
}

// Upload appends every file with a freshly minted code, all or nothing, and
// returns the updated container.
func (m *ContainerManager) Upload(ctx context.Context, name, secret string, files []FileInput) (*models.Container, error) {
	name, err := normalizeContainerName(name)
	if err != nil {
		return nil, err
	}
	if _, err := m.guard.Authorize(ctx, name, secret); err != nil {
		return nil, err
	}
	if _, err := validateFiles(files, m.maxFiles); err != nil {
		return nil, err
	}
	if err := checkLocators(ctx, m.storage, files); err != nil {
		return nil, err
	}

	now := m.now()
	reserved := make(map[string]struct{}, len(files))
	entries := make([]models.FileEntry, 0, len(files))
	for _, f := range files {
		code, err := m.minter.Mint(ctx, reserved)
		if err != nil {
			m.logger.Error("mint file code", zap.String("container", name), zap.Error(err))
			return nil, err
		}
		entries = append(entries, toEntry(f, code, now))
	}

	c, err := m.store.AppendFilesToContainer(ctx, name, entries)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		m.logger.Error("append container files", zap.String("container", name), zap.Error(err))
		return nil, storeErr("append container files", err)
	}
	m.logger.Info("files added to container",
		zap.String("container", name),
		zap.Int("added", len(entries)),
		zap.Int("total", len(c.Files)),
	)
	return c, nil
}

// RemoveFile deletes one file by its code and returns the updated container.
func (m *ContainerManager) RemoveFile(ctx context.Context, name, secret, fileCode string) (*models.Container, error) {
	name, err := normalizeContainerName(name)
	if err != nil {
		return nil, err
	}
	if _, err := m.guard.Authorize(ctx, name, secret); err != nil {
		return nil, err
	}

	removed, err := m.store.RemoveFileFromContainer(ctx, name, fileCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		m.logger.Error("remove container file", zap.String("container", name), zap.Error(err))
		return nil, storeErr("remove container file", err)
	}
	if !removed {
		return nil, ErrNotFound
	}
	m.resolver.Forget(fileCode)

	c, err := m.store.GetContainerByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get container", err)
	}
	return c, nil
}

// Delete removes the container and every file in it.
func (m *ContainerManager) Delete(ctx context.Context, name, secret string) error {
	name, err := normalizeContainerName(name)
	if err != nil {
		return err
	}
	snapshot, err := m.guard.Authorize(ctx, name, secret)
	if err != nil {
		return err
	}

	deleted, err := m.store.DeleteContainer(ctx, name)
	if err != nil {
		m.logger.Error("delete container", zap.String("container", name), zap.Error(err))
		return storeErr("delete container", err)
	}
	m.resolver.Forget(snapshot.FileCodes()...)
	m.resolver.ForgetContainer(name)
	if !deleted {
		return ErrNotFound
	}
	m.logger.Info("container deleted", zap.String("container", name))
	return nil
}

func (m *ContainerManager) List(ctx context.Context) ([]models.Container, error) {
	cs, err := m.store.ListContainers(ctx)
	if err != nil {
		m.logger.Error("list containers", zap.Error(err))
		return nil, storeErr("list containers", err)
	}
	return cs, nil
}
