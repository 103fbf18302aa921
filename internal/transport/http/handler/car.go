package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/askarbek/carvault/internal/domain"
	"github.com/askarbek/carvault/internal/usecase"
	"github.com/gin-gonic/gin"
)

// carUsecaser is the subset of CarUsecase the handler needs.
type carUsecaser interface {
	CreateCar(ctx context.Context, input usecase.CreateCarInput) (*domain.Car, error)
	ListCars(ctx context.Context, userID string) ([]*domain.Car, error)
	GetCar(ctx context.Context, id, userID string) (*domain.Car, error)
	UpdateCar(ctx context.Context, id, userID string, input usecase.UpdateCarInput) (*domain.Car, error)
	DeleteCar(ctx context.Context, id, userID string) error
}

type CarHandler struct {
	uc     carUsecaser
	logger *slog.Logger
}

func NewCarHandler(uc carUsecaser, logger *slog.Logger) *CarHandler {
	return &CarHandler{uc: uc, logger: logger.With("component", "car_handler")}
}

type createCarRequest struct {
	Title       string   `json:"title"       binding:"required,max=256"`
	Tags        []string `json:"tags"        binding:"required,min=1,dive,required"`
	Description string   `json:"description" binding:"required"`
	Images      []string `json:"img"         binding:"omitempty,dive,url"`
}

type updateCarRequest struct {
	Title       *string  `json:"title"       binding:"omitempty,max=256"`
	Tags        []string `json:"tags"        binding:"omitempty,min=1,dive,required"`
	Description *string  `json:"description" binding:"omitempty"`
	Images      []string `json:"img"         binding:"omitempty,dive,url"`
}

type carResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description"`
	Images      []string  `json:"img"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCarResponse(c *domain.Car) carResponse {
	return carResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Title:       c.Title,
		Tags:        c.Tags,
		Description: c.Description,
		Images:      c.Images,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// POST /api/cars
func (h *CarHandler) Create(ctx *gin.Context) {
	var req createCarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, err := h.uc.CreateCar(ctx.Request.Context(), usecase.CreateCarInput{
		UserID:      ctx.GetString("userID"),
		Title:       req.Title,
		Tags:        req.Tags,
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateCarTitle) {
			ctx.JSON(http.StatusConflict, gin.H{"error": errDuplicateCarTitle})
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "create car", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.JSON(http.StatusCreated, toCarResponse(car))
}

// GET /api/cars
func (h *CarHandler) List(ctx *gin.Context) {
	cars, err := h.uc.ListCars(ctx.Request.Context(), ctx.GetString("userID"))
	if err != nil {
		h.logger.ErrorContext(ctx.Request.Context(), "list cars", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]carResponse, len(cars))
	for i, c := range cars {
		items[i] = toCarResponse(c)
	}
	ctx.JSON(http.StatusOK, items)
}

// GET /api/cars/:id
func (h *CarHandler) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	car, err := h.uc.GetCar(ctx.Request.Context(), id, ctx.GetString("userID"))
	if err != nil {
		h.respondCarError(ctx, "get car", id, err)
		return
	}

	ctx.JSON(http.StatusOK, toCarResponse(car))
}

// PUT /api/cars/:id
func (h *CarHandler) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req updateCarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, err := h.uc.UpdateCar(ctx.Request.Context(), id, ctx.GetString("userID"), usecase.UpdateCarInput{
		Title:       req.Title,
		Tags:        req.Tags,
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateCarTitle) {
			ctx.JSON(http.StatusConflict, gin.H{"error": errDuplicateCarTitle})
			return
		}
		h.respondCarError(ctx, "update car", id, err)
		return
	}

	ctx.JSON(http.StatusOK, toCarResponse(car))
}

// DELETE /api/cars/:id
func (h *CarHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := h.uc.DeleteCar(ctx.Request.Context(), id, ctx.GetString("userID")); err != nil {
		h.respondCarError(ctx, "delete car", id, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
}

func (h *CarHandler) respondCarError(ctx *gin.Context, op, id string, err error) {
	switch {
	case errors.Is(err, domain.ErrCarNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": errCarNotFound})
	case errors.Is(err, domain.ErrCarForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": errCarForbidden})
	default:
		h.logger.ErrorContext(ctx.Request.Context(), op, "car_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
