package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/askarbek/carvault/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ImageUploadRepository struct {
	pool *pgxpool.Pool
}

func NewImageUploadRepository(pool *pgxpool.Pool) *ImageUploadRepository {
	return &ImageUploadRepository{pool: pool}
}

func (r *ImageUploadRepository) Create(ctx context.Context, userID, storageKey string) (*domain.ImageUpload, error) {
	query := `
		INSERT INTO image_uploads (user_id, storage_key)
		VALUES ($1, $2)
		RETURNING id, user_id, storage_key, attached, created_at`

	var up domain.ImageUpload
	err := r.pool.QueryRow(ctx, query, userID, storageKey).Scan(
		&up.ID, &up.UserID, &up.StorageKey, &up.Attached, &up.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create image upload: %w", err)
	}
	return &up, nil
}

func (r *ImageUploadRepository) MarkAttached(ctx context.Context, userID string, storageKeys []string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE image_uploads SET attached = TRUE
		 WHERE user_id = $1 AND storage_key = ANY($2)`,
		userID, storageKeys)
	if err != nil {
		return fmt.Errorf("mark attached: %w", err)
	}
	return nil
}

func (r *ImageUploadRepository) DeleteOrphaned(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`DELETE FROM image_uploads
		 WHERE NOT attached AND created_at < $1
		 RETURNING storage_key`,
		cutoff)
	if err != nil {
		return nil, fmt.Errorf("delete orphaned: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan storage key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
