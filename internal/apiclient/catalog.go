package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"parampara-storefront/internal/models"
)

// ListFoods returns the catalog, filtered to categoryID when it is non-zero.
func (c *Client) ListFoods(ctx context.Context, categoryID int) ([]models.Food, error) {
	query := url.Values{}
	if categoryID != 0 {
		query.Set("categoryId", strconv.Itoa(categoryID))
	}

	var foods []models.Food
	if err := c.do(ctx, request{method: http.MethodGet, path: "/foods", query: query}, &foods); err != nil {
		return nil, err
	}
	return c.fixImages(foods), nil
}

func (c *Client) GetFood(ctx context.Context, id int) (*models.Food, error) {
	var food models.Food
	if err := c.do(ctx, request{method: http.MethodGet, path: "/foods/" + strconv.Itoa(id)}, &food); err != nil {
		return nil, err
	}
	food.ImageURL = c.absoluteURL(food.ImageURL)
	return &food, nil
}

func (c *Client) SearchFoods(ctx context.Context, q string, limit int) ([]models.Food, error) {
	query := url.Values{"q": {q}}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var foods []models.Food
	if err := c.do(ctx, request{method: http.MethodGet, path: "/foods/search", query: query}, &foods); err != nil {
		return nil, err
	}
	return c.fixImages(foods), nil
}

func (c *Client) Suggestions(ctx context.Context, q string, limit int) ([]string, error) {
	query := url.Values{"q": {q}}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var suggestions []string
	if err := c.do(ctx, request{method: http.MethodGet, path: "/foods/suggestions", query: query}, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, request{method: http.MethodGet, path: "/categories"}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) fixImages(foods []models.Food) []models.Food {
	for i := range foods {
		foods[i].ImageURL = c.absoluteURL(foods[i].ImageURL)
	}
	return foods
}
