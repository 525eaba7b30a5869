package services

import (
	"context"
	"errors"
	"strings"

	"parampara-storefront/internal/models"
	"parampara-storefront/internal/repositories"
)

type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepository
	foodRepo     repositories.FoodRepository
}

func NewFeedbackService(feedbackRepo repositories.FeedbackRepository, foodRepo repositories.FoodRepository) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		foodRepo:     foodRepo,
	}
}

// List returns reviews newest first; a nil foodID lists every review.
func (s *FeedbackService) List(ctx context.Context, foodID *uint) ([]models.Feedback, error) {
	records, err := s.feedbackRepo.List(ctx, foodID)
	if err != nil {
		return nil, err
	}
	feedback := make([]models.Feedback, 0, len(records))
	for _, r := range records {
		feedback = append(feedback, r.ToDTO())
	}
	return feedback, nil
}

func (s *FeedbackService) Create(ctx context.Context, userID string, req *models.CreateFeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	record := &models.FeedbackRecord{
		UserID:  userID,
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	}
	if req.FoodID != nil {
		id := uint(*req.FoodID)
		if _, err := s.foodRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrFoodNotFound
			}
			return nil, err
		}
		record.FoodID = &id
	}

	if err := s.feedbackRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	dto := record.ToDTO()
	return &dto, nil
}

type RatingSummary struct {
	FoodID        *int    `json:"foodId,omitempty"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int64   `json:"totalReviews"`
}

func (s *FeedbackService) AverageRating(ctx context.Context, foodID *uint) (*RatingSummary, error) {
	avg, total, err := s.feedbackRepo.AverageRating(ctx, foodID)
	if err != nil {
		return nil, err
	}
	summary := &RatingSummary{AverageRating: avg, TotalReviews: total}
	if foodID != nil {
		id := int(*foodID)
		summary.FoodID = &id
	}
	return summary, nil
}
