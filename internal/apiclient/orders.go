package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"parampara-storefront/internal/models"
)

func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, request{method: http.MethodPost, path: "/orders", body: req}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the caller's orders, or every order for an admin.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, request{method: http.MethodGet, path: "/orders"}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, request{method: http.MethodGet, path: "/orders/" + strconv.Itoa(id)}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order to status. Admin only.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status, notes string) (*models.Order, error) {
	var order models.Order
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/orders/" + strconv.Itoa(id) + "/status",
		body:   models.UpdateOrderStatusRequest{Status: status, Notes: notes},
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
