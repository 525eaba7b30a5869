package services

import (
	"context"
	"errors"

	"parampara-storefront/internal/models"
	"parampara-storefront/internal/repositories"
)

type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	foodRepo     repositories.FoodRepository
}

func NewWishlistService(wishlistRepo repositories.WishlistRepository, foodRepo repositories.FoodRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		foodRepo:     foodRepo,
	}
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	records, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]models.WishlistItem, 0, len(records))
	for _, r := range records {
		items = append(items, r.ToDTO())
	}
	return items, nil
}

// Add saves foodID for the user. Adding a saved food again returns the
// existing entry with created false.
func (s *WishlistService) Add(ctx context.Context, userID string, foodID uint) (item *models.WishlistItem, created bool, err error) {
	if _, err := s.foodRepo.GetByID(ctx, foodID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, false, ErrFoodNotFound
		}
		return nil, false, err
	}

	existing, err := s.wishlistRepo.Get(ctx, userID, foodID)
	if err == nil {
		dto := existing.ToDTO()
		return &dto, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, err
	}

	if err := s.wishlistRepo.Create(ctx, &models.WishlistRecord{UserID: userID, FoodID: foodID}); err != nil {
		return nil, false, err
	}
	record, err := s.wishlistRepo.Get(ctx, userID, foodID)
	if err != nil {
		return nil, false, err
	}
	dto := record.ToDTO()
	return &dto, true, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID string, foodID uint) error {
	err := s.wishlistRepo.Delete(ctx, userID, foodID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrWishlistItemMissing
	}
	return err
}
