package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inventory-api/internal/service"
	"inventory-api/internal/storage"
)

const welcomeText = "Welcome to the Inventory Management API!"

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	products service.ProductService
	images   storage.Service
	logger   *logrus.Logger
}

// NewHandler builds the HTTP handler. images may be nil, in which case
// image uploads answer 503.
func NewHandler(users service.UserService, products service.ProductService, images storage.Service, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:    users,
		products: products,
		images:   images,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger), corsMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, welcomeText)
	})

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)

		protected := api.Group("", authMiddleware(h.users))
		protected.POST("/products", h.createProduct)
		protected.GET("/products", h.listProducts)
		protected.PUT("/products/:id/quantity", h.updateQuantity)
		protected.POST("/uploads/images", h.uploadImage)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
