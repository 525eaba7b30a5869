package handlers

import (
	"net/http"

	"parampara-storefront/internal/middleware"
	"parampara-storefront/internal/services"
	"parampara-storefront/pkg/auth"

	"github.com/gin-gonic/gin"
)

// Services bundles everything the API routes depend on.
type Services struct {
	Auth     *services.AuthService
	OTP      *services.OTPService
	Catalog  *services.CatalogService
	Orders   *services.OrderService
	Wishlist *services.WishlistService
	Feedback *services.FeedbackService
}

// NewRouter builds the gin engine with middleware and all /api routes.
func NewRouter(svc Services, jwtManager *auth.JWTManager, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Parampara Foods API is running",
		})
	})

	api := router.Group("/api")

	NewAuthHandler(svc.Auth, svc.OTP).RegisterRoutes(api, authMiddleware)
	NewProductHandler(svc.Catalog).RegisterRoutes(api)
	NewOrderHandler(svc.Orders).RegisterRoutes(api, authMiddleware)
	NewWishlistHandler(svc.Wishlist).RegisterRoutes(api, authMiddleware)
	NewFeedbackHandler(svc.Feedback).RegisterRoutes(api, authMiddleware)

	return router
}
