package handlers

import (
	"net/http"

	"parampara-storefront/internal/middleware"
	"parampara-storefront/internal/models"
	"parampara-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) List(c *gin.Context) {
	foodID, ok := optionalUintQuery(c, "foodId")
	if !ok {
		return
	}

	feedback, err := h.feedbackService.List(c.Request.Context(), foodID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

// @Summary Submit feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateFeedbackRequest true "Rating and comment"
// @Success 201 {object} models.Feedback
// @Router /api/feedback [post]
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req models.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.feedbackService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

func (h *FeedbackHandler) AverageRating(c *gin.Context) {
	foodID, ok := optionalUintQuery(c, "foodId")
	if !ok {
		return
	}

	summary, err := h.feedbackService.AverageRating(c.Request.Context(), foodID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	feedback := router.Group("/feedback")
	{
		feedback.GET("", h.List)
		feedback.GET("/average-rating", h.AverageRating)
		feedback.POST("", authMiddleware.AuthRequired(), h.Create)
	}
}
