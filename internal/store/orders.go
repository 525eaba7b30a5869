package store

import (
	"context"
	"log"
	"strings"

	"parampara-storefront/internal/apiclient"
	"parampara-storefront/internal/models"
	"parampara-storefront/internal/navigation"
)

// PlaceOrder submits the cart as an order. Preconditions are checked in
// order (session, non-empty cart, delivery address) without touching the
// network. On success the ordered lines leave the cart, order history is
// refreshed and navigation moves to the success page. On failure the cart is
// left as it was.
func (s *Store) PlaceOrder(ctx context.Context, deliveryAddress, customerNotes string) (*models.Order, error) {
	s.mu.Lock()
	authenticated := s.session.IsAuthenticated
	lines := append([]CartLine(nil), s.cart...)
	s.mu.Unlock()

	if !authenticated {
		return nil, s.reject(ErrLoginForOrder)
	}
	if len(lines) == 0 {
		return nil, s.reject(ErrEmptyCart)
	}
	deliveryAddress = strings.TrimSpace(deliveryAddress)
	if deliveryAddress == "" {
		return nil, s.reject(ErrDeliveryAddressRequired)
	}

	req := models.CreateOrderRequest{
		DeliveryAddress: deliveryAddress,
		CustomerNotes:   strings.TrimSpace(customerNotes),
		OrderItems:      make([]models.OrderItemRequest, 0, len(lines)),
	}
	for _, line := range lines {
		req.OrderItems = append(req.OrderItems, models.OrderItemRequest{
			FoodID:   line.ProductID,
			Quantity: line.Quantity,
		})
	}

	s.beginLoading()
	order, err := s.api.CreateOrder(ctx, req)
	s.endLoading()
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		return nil, err
	}

	s.mu.Lock()
	s.removeOrderedLocked(lines)
	s.persistCartLocked()
	s.setPageLocked(navigation.PageSuccess)
	s.unlockAndNotify()

	if err := s.LoadOrders(ctx); err != nil {
		log.Printf("Failed to refresh orders after placing order: %v", err)
	}
	return order, nil
}

// removeOrderedLocked takes the ordered quantities out of the cart. Units
// added while the order was in flight stay.
func (s *Store) removeOrderedLocked(ordered []CartLine) {
	for _, o := range ordered {
		i := s.lineIndexLocked(o.ProductID)
		if i < 0 {
			continue
		}
		if s.cart[i].Quantity > o.Quantity {
			s.cart[i].Quantity -= o.Quantity
			continue
		}
		s.removeLineLocked(o.ProductID)
	}
}

// LoadOrders replaces order history with the server's list. Anonymous
// sessions get an empty history.
func (s *Store) LoadOrders(ctx context.Context) error {
	if !s.IsAuthenticated() {
		s.mu.Lock()
		s.orders = nil
		s.unlockAndNotify()
		return nil
	}

	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		return err
	}

	s.mu.Lock()
	if s.session.IsAuthenticated {
		s.orders = orders
	}
	s.unlockAndNotify()
	return nil
}

func (s *Store) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...)
}
