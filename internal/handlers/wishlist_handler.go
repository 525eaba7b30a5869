package handlers

import (
	"net/http"

	"parampara-storefront/internal/middleware"
	"parampara-storefront/internal/models"
	"parampara-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	wishlistService *services.WishlistService
}

func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

func (h *WishlistHandler) List(c *gin.Context) {
	items, err := h.wishlistService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// Add is idempotent: an existing entry is returned with 200, a new one with 201.
func (h *WishlistHandler) Add(c *gin.Context) {
	var req models.CreateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FoodID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid foodId"})
		return
	}

	item, created, err := h.wishlistService.Add(c.Request.Context(), middleware.GetUserID(c), uint(req.FoodID))
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, item)
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	foodID, ok := parseID(c, "foodId")
	if !ok {
		return
	}

	if err := h.wishlistService.Remove(c.Request.Context(), middleware.GetUserID(c), foodID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WishlistHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	wishlist := router.Group("/wishlist")
	wishlist.Use(authMiddleware.AuthRequired())
	{
		wishlist.GET("", h.List)
		wishlist.POST("", h.Add)
		wishlist.DELETE("/:foodId", h.Remove)
	}
}
