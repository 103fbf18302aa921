package domain

import (
	"errors"
	"time"
)

var (
	ErrCarNotFound       = errors.New("car not found")
	ErrCarForbidden      = errors.New("car belongs to another user")
	ErrDuplicateCarTitle = errors.New("car with this title already exists")
)

type Car struct {
	ID          string
	UserID      string
	Title       string
	Tags        []string
	Description string
	Images      []string // ordered image URLs, may be empty
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
