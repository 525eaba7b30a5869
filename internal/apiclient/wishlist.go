package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"parampara-storefront/internal/models"
)

func (c *Client) GetWishlist(ctx context.Context) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := c.do(ctx, request{method: http.MethodGet, path: "/wishlist"}, &items); err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Food != nil {
			items[i].Food.ImageURL = c.absoluteURL(items[i].Food.ImageURL)
		}
	}
	return items, nil
}

func (c *Client) AddToWishlist(ctx context.Context, foodID int) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/wishlist",
		body:   models.CreateWishlistRequest{FoodID: foodID},
	}, &item)
	if err != nil {
		return nil, err
	}
	if item.Food != nil {
		item.Food.ImageURL = c.absoluteURL(item.Food.ImageURL)
	}
	return &item, nil
}

func (c *Client) RemoveFromWishlist(ctx context.Context, foodID int) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/wishlist/" + strconv.Itoa(foodID)}, nil)
}
