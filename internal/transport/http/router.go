package httptransport

import (
	"log/slog"

	"github.com/askarbek/carvault/internal/token"
	"github.com/askarbek/carvault/internal/transport/http/handler"
	"github.com/askarbek/carvault/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, carHandler *handler.CarHandler, imageHandler *handler.ImageHandler, tokens *token.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokens)

	users := r.Group("/api/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/current", authMW, authHandler.Current)

	cars := r.Group("/api/cars", authMW)
	cars.GET("", carHandler.List)
	cars.POST("", carHandler.Create)
	cars.GET("/:id", carHandler.GetByID)
	cars.PUT("/:id", carHandler.Update)
	cars.DELETE("/:id", carHandler.Delete)

	images := r.Group("/api/images", authMW)
	images.POST("/uploads", imageHandler.PresignUpload)

	return r
}
