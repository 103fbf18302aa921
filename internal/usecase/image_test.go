package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/askarbek/carvault/internal/domain"
	"github.com/askarbek/carvault/internal/usecase"
)

// ---- fakes ----

const fakePublicBase = "https://img.test"

type fakeImageStore struct {
	presignPut func(ctx context.Context) (string, string, error)
	deleted    []string
	deleteErr  error
}

func (s *fakeImageStore) PresignPut(ctx context.Context) (string, string, error) {
	return s.presignPut(ctx)
}

func (s *fakeImageStore) PublicURL(key string) string {
	return fakePublicBase + "/" + key
}

func (s *fakeImageStore) KeyForURL(url string) (string, bool) {
	if !strings.HasPrefix(url, fakePublicBase+"/") {
		return "", false
	}
	return strings.TrimPrefix(url, fakePublicBase+"/"), true
}

func (s *fakeImageStore) Delete(_ context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, key)
	return nil
}

type fakeImageRepo struct {
	create         func(ctx context.Context, userID, storageKey string) (*domain.ImageUpload, error)
	markAttached   func(ctx context.Context, userID string, storageKeys []string) error
	deleteOrphaned func(ctx context.Context, cutoff time.Time) ([]string, error)
}

func (r *fakeImageRepo) Create(ctx context.Context, userID, storageKey string) (*domain.ImageUpload, error) {
	return r.create(ctx, userID, storageKey)
}

func (r *fakeImageRepo) MarkAttached(ctx context.Context, userID string, storageKeys []string) error {
	return r.markAttached(ctx, userID, storageKeys)
}

func (r *fakeImageRepo) DeleteOrphaned(ctx context.Context, cutoff time.Time) ([]string, error) {
	return r.deleteOrphaned(ctx, cutoff)
}

// ---- PresignUpload ----

func TestPresignUpload_RecordsKeyAndReturnsURLs(t *testing.T) {
	var recordedKey string
	store := &fakeImageStore{
		presignPut: func(_ context.Context) (string, string, error) {
			return "cars/2026/08/abc", "https://bucket.test/put?sig=x", nil
		},
	}
	repo := &fakeImageRepo{
		create: func(_ context.Context, userID, storageKey string) (*domain.ImageUpload, error) {
			if userID != "user-a" {
				t.Errorf("userID = %q, want user-a", userID)
			}
			recordedKey = storageKey
			return &domain.ImageUpload{ID: "up-1", UserID: userID, StorageKey: storageKey}, nil
		},
	}

	result, err := usecase.NewImageUsecase(store, repo).PresignUpload(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recordedKey != "cars/2026/08/abc" {
		t.Errorf("recorded key = %q", recordedKey)
	}
	if result.UploadURL != "https://bucket.test/put?sig=x" {
		t.Errorf("upload url = %q", result.UploadURL)
	}
	if result.PublicURL != fakePublicBase+"/cars/2026/08/abc" {
		t.Errorf("public url = %q", result.PublicURL)
	}
}

func TestPresignUpload_StoreError_Propagates(t *testing.T) {
	storeErr := errors.New("s3 unreachable")
	store := &fakeImageStore{
		presignPut: func(_ context.Context) (string, string, error) {
			return "", "", storeErr
		},
	}

	_, err := usecase.NewImageUsecase(store, &fakeImageRepo{}).PresignUpload(context.Background(), "user-a")
	if !errors.Is(err, storeErr) {
		t.Errorf("want wrapped store error, got %v", err)
	}
}

// ---- MarkAttached ----

func TestMarkAttached_SkipsForeignURLs(t *testing.T) {
	var capturedKeys []string
	repo := &fakeImageRepo{
		markAttached: func(_ context.Context, _ string, keys []string) error {
			capturedKeys = keys
			return nil
		},
	}

	urls := []string{
		fakePublicBase + "/cars/2026/08/abc",
		"https://elsewhere.example/pic.jpg",
	}
	err := usecase.NewImageUsecase(&fakeImageStore{}, repo).MarkAttached(context.Background(), "user-a", urls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(capturedKeys) != 1 || capturedKeys[0] != "cars/2026/08/abc" {
		t.Errorf("keys = %v, want [cars/2026/08/abc]", capturedKeys)
	}
}

func TestMarkAttached_OnlyForeignURLs_SkipsRepo(t *testing.T) {
	repo := &fakeImageRepo{
		markAttached: func(_ context.Context, _ string, _ []string) error {
			t.Error("repo must not be called when no urls match the store")
			return nil
		},
	}

	err := usecase.NewImageUsecase(&fakeImageStore{}, repo).MarkAttached(context.Background(), "user-a",
		[]string{"https://elsewhere.example/pic.jpg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ---- SweepOrphans ----

func TestSweepOrphans_DeletesReturnedBlobs(t *testing.T) {
	store := &fakeImageStore{}
	repo := &fakeImageRepo{
		deleteOrphaned: func(_ context.Context, cutoff time.Time) ([]string, error) {
			if !cutoff.Before(time.Now()) {
				t.Error("cutoff should be in the past")
			}
			return []string{"cars/a", "cars/b"}, nil
		},
	}

	removed, err := usecase.NewImageUsecase(store, repo).SweepOrphans(context.Background(), time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if len(store.deleted) != 2 {
		t.Errorf("deleted blobs = %v, want 2 keys", store.deleted)
	}
}

func TestSweepOrphans_BlobDeleteError_ReturnsPartialCount(t *testing.T) {
	store := &fakeImageStore{deleteErr: errors.New("access denied")}
	repo := &fakeImageRepo{
		deleteOrphaned: func(_ context.Context, _ time.Time) ([]string, error) {
			return []string{"cars/a"}, nil
		},
	}

	removed, err := usecase.NewImageUsecase(store, repo).SweepOrphans(context.Background(), time.Hour)
	if err == nil {
		t.Fatal("want error, got nil")
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
