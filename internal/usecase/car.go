package usecase

import (
	"context"
	"fmt"

	"github.com/askarbek/carvault/internal/domain"
	"github.com/askarbek/carvault/internal/repository"
)

// imageAttacher marks uploaded images as referenced by a car so the janitor
// leaves them alone. Satisfied by *ImageUsecase; defined here so tests can
// inject a fake.
type imageAttacher interface {
	MarkAttached(ctx context.Context, userID string, urls []string) error
}

type CarUsecase struct {
	repo   repository.CarRepository
	images imageAttacher
}

func NewCarUsecase(repo repository.CarRepository, images imageAttacher) *CarUsecase {
	return &CarUsecase{repo: repo, images: images}
}

type CreateCarInput struct {
	UserID      string
	Title       string
	Tags        []string
	Description string
	Images      []string
}

func (u *CarUsecase) CreateCar(ctx context.Context, input CreateCarInput) (*domain.Car, error) {
	if input.Images == nil {
		input.Images = []string{}
	}

	created, err := u.repo.Create(ctx, &domain.Car{
		UserID:      input.UserID,
		Title:       input.Title,
		Tags:        input.Tags,
		Description: input.Description,
		Images:      input.Images,
	})
	if err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}

	if len(created.Images) > 0 {
		if err := u.images.MarkAttached(ctx, input.UserID, created.Images); err != nil {
			return nil, fmt.Errorf("mark images attached: %w", err)
		}
	}
	return created, nil
}

func (u *CarUsecase) ListCars(ctx context.Context, userID string) ([]*domain.Car, error) {
	cars, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	return cars, nil
}

// getOwned resolves the car and enforces the ownership check shared by the
// single-record operations.
func (u *CarUsecase) getOwned(ctx context.Context, id, userID string) (*domain.Car, error) {
	car, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if car.UserID != userID {
		return nil, domain.ErrCarForbidden
	}
	return car, nil
}

func (u *CarUsecase) GetCar(ctx context.Context, id, userID string) (*domain.Car, error) {
	return u.getOwned(ctx, id, userID)
}

type UpdateCarInput struct {
	Title       *string
	Tags        []string
	Description *string
	Images      []string
}

// UpdateCar applies a partial merge: nil fields keep their prior value.
func (u *CarUsecase) UpdateCar(ctx context.Context, id, userID string, input UpdateCarInput) (*domain.Car, error) {
	if _, err := u.getOwned(ctx, id, userID); err != nil {
		return nil, err
	}

	updated, err := u.repo.Update(ctx, id, repository.UpdateCarInput{
		Title:       input.Title,
		Tags:        input.Tags,
		Description: input.Description,
		Images:      input.Images,
	})
	if err != nil {
		return nil, err
	}

	if len(input.Images) > 0 {
		if err := u.images.MarkAttached(ctx, userID, input.Images); err != nil {
			return nil, fmt.Errorf("mark images attached: %w", err)
		}
	}
	return updated, nil
}

func (u *CarUsecase) DeleteCar(ctx context.Context, id, userID string) error {
	if _, err := u.getOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	return nil
}
