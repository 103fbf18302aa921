package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/askarbek/carvault/internal/domain"
	"github.com/askarbek/carvault/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

type CarRepository struct {
	pool *pgxpool.Pool
}

func NewCarRepository(pool *pgxpool.Pool) *CarRepository {
	return &CarRepository{pool: pool}
}

func (r *CarRepository) Create(ctx context.Context, c *domain.Car) (*domain.Car, error) {
	query := `
		INSERT INTO cars (user_id, title, tags, description, images)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, tags, description, images, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, c.UserID, c.Title, c.Tags, c.Description, c.Images)

	created, err := scanCar(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateCarTitle
		}
		return nil, err
	}
	return created, nil
}

func (r *CarRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	query := `
		SELECT id, user_id, title, tags, description, images, created_at, updated_at
		FROM cars
		WHERE id = $1`

	return scanCar(r.pool.QueryRow(ctx, query, id))
}

func (r *CarRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Car, error) {
	query := `
		SELECT id, user_id, title, tags, description, images, created_at, updated_at
		FROM cars
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	defer rows.Close()

	cars := []*domain.Car{}
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (r *CarRepository) Update(ctx context.Context, id string, input repository.UpdateCarInput) (*domain.Car, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{id}

	if input.Title != nil {
		args = append(args, *input.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if input.Tags != nil {
		args = append(args, input.Tags)
		set = append(set, fmt.Sprintf("tags = $%d", len(args)))
	}
	if input.Description != nil {
		args = append(args, *input.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if input.Images != nil {
		args = append(args, input.Images)
		set = append(set, fmt.Sprintf("images = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE cars SET %s
		WHERE id = $1
		RETURNING id, user_id, title, tags, description, images, created_at, updated_at`,
		strings.Join(set, ", "))

	updated, err := scanCar(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateCarTitle
		}
		return nil, err
	}
	return updated, nil
}

func (r *CarRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCarNotFound
	}
	return nil
}

func scanCar(row rowScanner) (*domain.Car, error) {
	var c domain.Car
	err := row.Scan(
		&c.ID, &c.UserID, &c.Title, &c.Tags, &c.Description, &c.Images,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCarNotFound
		}
		return nil, fmt.Errorf("scan car: %w", err)
	}
	return &c, nil
}
