package handlers

import (
	"net/http"
	"strconv"

	"parampara-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the catalog: foods and categories.
type ProductHandler struct {
	catalogService *services.CatalogService
}

func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// @Summary List foods
// @Tags foods
// @Produce json
// @Param categoryId query int false "Category filter"
// @Success 200 {array} models.Food
// @Router /api/foods [get]
func (h *ProductHandler) ListFoods(c *gin.Context) {
	categoryID, ok := optionalUintQuery(c, "categoryId")
	if !ok {
		return
	}
	var id uint
	if categoryID != nil {
		id = *categoryID
	}

	foods, err := h.catalogService.ListFoods(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, foods)
}

func (h *ProductHandler) GetFood(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	food, err := h.catalogService.GetFood(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, food)
}

func queryLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return limit
}

// @Summary Search foods
// @Tags foods
// @Produce json
// @Param q query string true "Search text"
// @Param limit query int false "Maximum results"
// @Success 200 {array} models.Food
// @Router /api/foods/search [get]
func (h *ProductHandler) SearchFoods(c *gin.Context) {
	foods, err := h.catalogService.Search(c.Request.Context(), c.Query("q"), queryLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, foods)
}

func (h *ProductHandler) Suggestions(c *gin.Context) {
	names, err := h.catalogService.Suggestions(c.Request.Context(), c.Query("q"), queryLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, names)
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// RegisterRoutes registers the public catalog routes
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	foods := router.Group("/foods")
	{
		foods.GET("", h.ListFoods)
		foods.GET("/search", h.SearchFoods)
		foods.GET("/suggestions", h.Suggestions)
		foods.GET("/:id", h.GetFood)
	}

	router.GET("/categories", h.ListCategories)
}
