package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rohits-web03/codebox/internal/models"
	"github.com/rohits-web03/codebox/internal/repositories"
	"github.com/rohits-web03/codebox/internal/utils"
	"go.uber.org/zap"
)

type SubmitShareInput struct {
	UploaderName string
	// Code is optional; one is minted when empty.
	Code      string
	Files     []FileInput
	TotalSize int64
}

// ShareService manages ungrouped share records.
type ShareService struct {
	store    repositories.Store
	minter   *CodeMinter
	resolver *Resolver
	storage  repositories.ObjectStorage
	maxFiles int
	logger   *zap.Logger
	now      func() time.Time
}

func NewShareService(
	store repositories.Store,
	minter *CodeMinter,
	resolver *Resolver,
	storage repositories.ObjectStorage,
	maxFiles int,
	logger *zap.Logger,
) *ShareService {
	return &ShareService{
		store:    store,
		minter:   minter,
		resolver: resolver,
		storage:  storage,
		maxFiles: maxFiles,
		logger:   logger.With(zap.String("component", "shares")),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ShareService) Submit(ctx context.Context, in SubmitShareInput) (*models.ShareRecord, error) {
	uploader := strings.TrimSpace(in.UploaderName)
	if uploader == "" {
		return nil, invalid("uploader name is required")
	}
	total, err := validateFiles(in.Files, s.maxFiles)
	if err != nil {
		return nil, err
	}
	if in.TotalSize < 0 {
		return nil, invalid("totalSize must not be negative")
	}
	if in.TotalSize > 0 && in.TotalSize != total {
		return nil, invalid("totalSize %d does not match the sum of file sizes %d", in.TotalSize, total)
	}
	if err := checkLocators(ctx, s.storage, in.Files); err != nil {
		return nil, err
	}

	now := s.now()
	build := func(code string) *models.ShareRecord {
		rec := &models.ShareRecord{
			Code:         code,
			UploaderName: uploader,
			TotalSize:    total,
			CreatedAt:    now,
			Files:        make([]models.FileEntry, 0, len(in.Files)),
		}
		for i, f := range in.Files {
			e := toEntry(f, code, now)
			e.Position = i
			rec.Files = append(rec.Files, e)
		}
		return rec
	}

	if in.Code != "" {
		return s.putWithCode(ctx, build(in.Code))
	}

	// A concurrent insert can take a minted code between the check and the
	// insert; the unique index catches it and we draw again.
	for i := 0; i < s.minter.attempts; i++ {
		code, err := s.minter.Mint(ctx, nil)
		if err != nil {
			return nil, err
		}
		rec := build(code)
		err = s.store.PutShareRecord(ctx, rec)
		if errors.Is(err, repositories.ErrDuplicate) {
			codeCollisionsTotal.Inc()
			continue
		}
		if err != nil {
			return nil, s.putFailed(err)
		}
		s.logger.Info("share submitted", zap.String("code", code), zap.Int("files", len(rec.Files)))
		return rec, nil
	}
	return nil, storeErr("submit share", ErrCodeSpaceExhausted)
}

func (s *ShareService) putWithCode(ctx context.Context, rec *models.ShareRecord) (*models.ShareRecord, error) {
	if !utils.IsValidCode(rec.Code) {
		return nil, invalid("code must be %d digits", utils.CodeLength)
	}
	inUse, err := s.store.CodeInUse(ctx, rec.Code)
	if err != nil {
		return nil, storeErr("check code", err)
	}
	if inUse {
		return nil, ErrConflict
	}
	if err := s.store.PutShareRecord(ctx, rec); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, s.putFailed(err)
	}
	s.logger.Info("share submitted", zap.String("code", rec.Code), zap.Int("files", len(rec.Files)))
	return rec, nil
}

func (s *ShareService) putFailed(err error) error {
	if errors.Is(err, repositories.ErrValidation) {
		return invalid("%v", err)
	}
	s.logger.Error("store share record", zap.Error(err))
	return storeErr("store share record", err)
}

func (s *ShareService) List(ctx context.Context) ([]models.ShareRecord, error) {
	recs, err := s.store.ListShareRecords(ctx)
	if err != nil {
		s.logger.Error("list share records", zap.Error(err))
		return nil, storeErr("list share records", err)
	}
	return recs, nil
}

// Delete removes the record and all its files. It returns ErrNotFound when
// no record has that code.
func (s *ShareService) Delete(ctx context.Context, code string) error {
	if !utils.IsValidCode(code) {
		return ErrNotFound
	}
	deleted, err := s.store.DeleteShareRecordByCode(ctx, code)
	if err != nil {
		s.logger.Error("delete share record", zap.String("code", code), zap.Error(err))
		return storeErr("delete share record", err)
	}
	s.resolver.Forget(code)
	if !deleted {
		return ErrNotFound
	}
	s.logger.Info("share deleted", zap.String("code", code))
	return nil
}
