package repository

import (
	"context"
	"time"

	"github.com/askarbek/carvault/internal/domain"
)

type ImageUploadRepository interface {
	Create(ctx context.Context, userID, storageKey string) (*domain.ImageUpload, error)
	// MarkAttached flags the uploads matching the given storage keys as
	// referenced by a car. Unknown keys are ignored.
	MarkAttached(ctx context.Context, userID string, storageKeys []string) error
	// DeleteOrphaned removes unattached uploads older than cutoff and
	// returns their storage keys so the blobs can be deleted too.
	DeleteOrphaned(ctx context.Context, cutoff time.Time) ([]string, error)
}
