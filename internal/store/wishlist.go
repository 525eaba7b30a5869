package store

import (
	"context"
	"net/http"

	"parampara-storefront/internal/apiclient"
	"parampara-storefront/internal/models"
)

// AddToWishlist saves product on the server and mirrors it locally once the
// server has accepted it.
func (s *Store) AddToWishlist(ctx context.Context, product models.Food) error {
	if !s.IsAuthenticated() {
		return s.reject(ErrLoginForWishlist)
	}

	item, err := s.api.AddToWishlist(ctx, product.FoodID)
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		return err
	}

	snapshot := product
	if item != nil && item.Food != nil {
		snapshot = *item.Food
	}

	s.mu.Lock()
	if s.wishlistIndexLocked(product.FoodID) < 0 {
		s.wishlist = append(s.wishlist, WishlistEntry{ProductID: product.FoodID, Product: snapshot})
		s.persistWishlistLocked()
	}
	s.unlockAndNotify()
	return nil
}

// RemoveFromWishlist deletes the product on the server, then from the local
// mirror. A 404 means the server no longer has it, so the mirror drops it too.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID int) error {
	if !s.IsAuthenticated() {
		return s.reject(ErrLoginForWishlist)
	}

	if err := s.api.RemoveFromWishlist(ctx, productID); err != nil && !apiclient.IsStatus(err, http.StatusNotFound) {
		s.setError(apiclient.UserMessage(err))
		return err
	}

	s.mu.Lock()
	if i := s.wishlistIndexLocked(productID); i >= 0 {
		s.wishlist = append(s.wishlist[:i:i], s.wishlist[i+1:]...)
		if len(s.wishlist) == 0 {
			s.wishlist = nil
		}
		s.persistWishlistLocked()
	}
	s.unlockAndNotify()
	return nil
}

// LoadWishlist replaces the mirror with the server's list. Anonymous sessions
// get an empty wishlist.
func (s *Store) LoadWishlist(ctx context.Context) error {
	if !s.IsAuthenticated() {
		s.mu.Lock()
		s.wishlist = nil
		s.persistWishlistLocked()
		s.unlockAndNotify()
		return nil
	}

	items, err := s.api.GetWishlist(ctx)
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		return err
	}

	entries := make([]WishlistEntry, 0, len(items))
	for _, item := range items {
		if item.Food == nil {
			continue
		}
		entries = append(entries, WishlistEntry{ProductID: item.FoodID, Product: *item.Food})
	}

	s.mu.Lock()
	if !s.session.IsAuthenticated {
		// logged out while the request was in flight
		s.mu.Unlock()
		return nil
	}
	s.wishlist = entries
	if len(entries) == 0 {
		s.wishlist = nil
	}
	s.persistWishlistLocked()
	s.unlockAndNotify()
	return nil
}

func (s *Store) Wishlist() []WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]WishlistEntry(nil), s.wishlist...)
}

func (s *Store) IsInWishlist(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlistIndexLocked(productID) >= 0
}

func (s *Store) wishlistIndexLocked(productID int) int {
	for i, entry := range s.wishlist {
		if entry.ProductID == productID {
			return i
		}
	}
	return -1
}
