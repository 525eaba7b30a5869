package store

import (
	"context"

	"parampara-storefront/internal/apiclient"
	"parampara-storefront/internal/models"
)

// LoadFeedback fetches the reviews of one product.
func (s *Store) LoadFeedback(ctx context.Context, foodID int) ([]models.Feedback, error) {
	reviews, err := s.api.ListFeedback(ctx, foodID)
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		return nil, err
	}

	s.mu.Lock()
	s.reviews = reviews
	s.reviewsFood = foodID
	s.unlockAndNotify()
	return append([]models.Feedback(nil), reviews...), nil
}

func (s *Store) SubmitReview(ctx context.Context, foodID, rating int, comment string) (*models.Feedback, error) {
	if !s.IsAuthenticated() {
		return nil, s.reject(ErrLoginForReview)
	}
	if rating < 1 || rating > 5 {
		return nil, s.reject(ErrInvalidRating)
	}

	id := foodID
	feedback, err := s.api.CreateFeedback(ctx, models.CreateFeedbackRequest{
		Rating:  rating,
		Comment: comment,
		FoodID:  &id,
	})
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		return nil, err
	}

	s.mu.Lock()
	if s.reviewsFood == foodID {
		s.reviews = append([]models.Feedback{*feedback}, s.reviews...)
	}
	s.unlockAndNotify()
	return feedback, nil
}

func (s *Store) Reviews() []models.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Feedback(nil), s.reviews...)
}
