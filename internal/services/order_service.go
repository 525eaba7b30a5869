package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"parampara-storefront/internal/models"
	"parampara-storefront/internal/repositories"
	"parampara-storefront/pkg/auth"
	"parampara-storefront/pkg/messaging"

	"github.com/shopspring/decimal"
)

type OrderService struct {
	orderRepo repositories.OrderRepository
	foodRepo  repositories.FoodRepository
	publisher messaging.Publisher
	now       func() time.Time
}

func NewOrderService(orderRepo repositories.OrderRepository, foodRepo repositories.FoodRepository, publisher messaging.Publisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		foodRepo:  foodRepo,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateOrder prices the requested items at their current effective price,
// reserves stock and stores the order as Pending.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error) {
	address := strings.TrimSpace(req.DeliveryAddress)
	if address == "" {
		return nil, ErrAddressRequired
	}
	if len(req.OrderItems) == 0 {
		return nil, ErrEmptyOrder
	}

	// Merge repeated foods into one line
	quantities := make(map[uint]int)
	var ids []uint
	for _, item := range req.OrderItems {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		id := uint(item.FoodID)
		if _, seen := quantities[id]; !seen {
			ids = append(ids, id)
		}
		quantities[id] += item.Quantity
	}

	now := s.now()
	total := decimal.Zero
	items := make([]models.OrderItemRecord, 0, len(ids))
	for _, id := range ids {
		food, err := s.foodRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: %d", ErrFoodNotFound, id)
			}
			return nil, err
		}
		if !food.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrFoodUnavailable, food.Name)
		}
		qty := quantities[id]
		if food.StockQuantity < qty {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, food.Name)
		}

		price := food.EffectivePrice()
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		items = append(items, models.OrderItemRecord{FoodID: id, Quantity: qty, UnitPrice: price})
	}

	record := &models.OrderRecord{
		UserID:          userID,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		DeliveryAddress: address,
		CustomerNotes:   strings.TrimSpace(req.CustomerNotes),
		OrderDate:       now,
		Items:           items,
		History:         []models.OrderStatusRecord{{Status: models.OrderStatusPending, Notes: "Order placed", CreatedAt: now}},
	}
	if err := s.orderRepo.Place(ctx, record); err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	created, err := s.orderRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, messaging.EventOrderCreated, created)

	dto := created.ToDTO()
	return &dto, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	records, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return orderDTOs(records), nil
}

// ListAllOrders is the admin view across every customer.
func (s *OrderService) ListAllOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	records, err := s.orderRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return orderDTOs(records), nil
}

// GetOrder returns the order if userID placed it or role is Admin. Other
// users get ErrOrderNotFound.
func (s *OrderService) GetOrder(ctx context.Context, userID, role string, id uint) (*models.Order, error) {
	record, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if record.UserID != userID && role != auth.RoleAdmin {
		return nil, ErrOrderNotFound
	}
	dto := record.ToDTO()
	return &dto, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uint, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	if !models.ValidOrderStatus(req.Status) {
		return nil, ErrInvalidOrderStatus
	}

	record, err := s.orderRepo.UpdateStatus(ctx, id, req.Status, req.Notes, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	s.publishEvent(ctx, messaging.EventOrderStatusChanged, record)

	dto := record.ToDTO()
	return &dto, nil
}

// publishEvent reports an order change. Delivery failures are logged; the
// order itself is already stored.
func (s *OrderService) publishEvent(ctx context.Context, eventType string, order *models.OrderRecord) {
	if s.publisher == nil {
		return
	}
	event := messaging.OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: models.RoundMoney(order.TotalAmount),
		OccurredAt:  s.now(),
	}
	key := fmt.Sprintf("%d", order.ID)
	if err := s.publisher.Publish(ctx, messaging.TopicOrderEvents, key, event); err != nil {
		log.Printf("Failed to publish %s for order %d: %v", eventType, order.ID, err)
	}
}

func orderDTOs(records []models.OrderRecord) []models.Order {
	orders := make([]models.Order, 0, len(records))
	for _, r := range records {
		orders = append(orders, r.ToDTO())
	}
	return orders
}
