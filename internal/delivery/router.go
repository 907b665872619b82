package delivery

import (
	"net/http"
	"time"

	"pharmacare/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const ServiceName = "pharmacare-backend"

type UseCases struct {
	Catalog usecase.CatalogUseCase
	Cart    usecase.CartUseCase
	Users   usecase.UserUseCase
	Orders  usecase.OrderUseCase
}

// NewRouter mounts every handler under /api. allowedOrigin is the storefront
// origin allowed by CORS.
func NewRouter(uc UseCases, allowedOrigin string, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	NewDrugHandler(uc.Catalog, logger).RegisterRoutes(api)
	NewCategoryHandler(uc.Catalog, logger).RegisterRoutes(api)
	NewCartHandler(uc.Cart, logger).RegisterRoutes(api)
	NewUserHandler(uc.Users, logger).RegisterRoutes(api)
	NewOrderHandler(uc.Orders, logger).RegisterRoutes(api)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": ServiceName})
	})

	return router
}
