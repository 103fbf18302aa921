package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/askarbek/carvault/internal/imagestore"
	"github.com/askarbek/carvault/internal/repository"
)

type ImageUsecase struct {
	store imagestore.Store
	repo  repository.ImageUploadRepository
}

func NewImageUsecase(store imagestore.Store, repo repository.ImageUploadRepository) *ImageUsecase {
	return &ImageUsecase{store: store, repo: repo}
}

type PresignResult struct {
	UploadURL string
	PublicURL string
	Key       string
}

// PresignUpload hands the client a time-limited PUT URL and records the
// pending upload so unreferenced blobs can be swept later.
func (u *ImageUsecase) PresignUpload(ctx context.Context, userID string) (*PresignResult, error) {
	key, uploadURL, err := u.store.PresignPut(ctx)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	if _, err := u.repo.Create(ctx, userID, key); err != nil {
		return nil, fmt.Errorf("record upload: %w", err)
	}

	return &PresignResult{
		UploadURL: uploadURL,
		PublicURL: u.store.PublicURL(key),
		Key:       key,
	}, nil
}

// MarkAttached flags the uploads behind the given image URLs as referenced.
// URLs not served from our image store (externally hosted images) are skipped.
func (u *ImageUsecase) MarkAttached(ctx context.Context, userID string, urls []string) error {
	var keys []string
	for _, url := range urls {
		if key, ok := u.store.KeyForURL(url); ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return u.repo.MarkAttached(ctx, userID, keys)
}

// SweepOrphans deletes uploads that were never attached to a car within
// maxAge, removing both the tracking rows and the stored blobs.
// Returns the number of blobs removed.
func (u *ImageUsecase) SweepOrphans(ctx context.Context, maxAge time.Duration) (int, error) {
	keys, err := u.repo.DeleteOrphaned(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("delete orphaned uploads: %w", err)
	}

	removed := 0
	for _, key := range keys {
		if err := u.store.Delete(ctx, key); err != nil {
			return removed, fmt.Errorf("delete blob %s: %w", key, err)
		}
		removed++
	}
	return removed, nil
}
