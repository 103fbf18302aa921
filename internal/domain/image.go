package domain

import "time"

// ImageUpload tracks a presigned upload slot handed to a client. Uploads
// that never get attached to a car are swept by the janitor.
type ImageUpload struct {
	ID         string
	UserID     string
	StorageKey string
	Attached   bool
	CreatedAt  time.Time
}
