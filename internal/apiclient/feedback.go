package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"parampara-storefront/internal/models"
)

// ListFeedback returns reviews, limited to one product when foodID is non-zero.
func (c *Client) ListFeedback(ctx context.Context, foodID int) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := c.do(ctx, request{method: http.MethodGet, path: "/feedback", query: foodQuery(foodID)}, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (c *Client) CreateFeedback(ctx context.Context, req models.CreateFeedbackRequest) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := c.do(ctx, request{method: http.MethodPost, path: "/feedback", body: req}, &feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (c *Client) AverageRating(ctx context.Context, foodID int) (float64, error) {
	var avg float64
	if err := c.do(ctx, request{method: http.MethodGet, path: "/feedback/average-rating", query: foodQuery(foodID)}, &avg); err != nil {
		return 0, err
	}
	return avg, nil
}

func foodQuery(foodID int) url.Values {
	if foodID == 0 {
		return nil
	}
	return url.Values{"foodId": {strconv.Itoa(foodID)}}
}
