package store

import (
	"context"
	"log"
	"strings"

	"parampara-storefront/internal/apiclient"
	"parampara-storefront/internal/models"
)

// LoadFoods fetches the catalog, limited to categoryID when it is non-zero.
// A newer LoadFoods or ViewCategory cancels this one; a superseded call
// returns ErrSuperseded and leaves state alone.
func (s *Store) LoadFoods(ctx context.Context, categoryID int) error {
	s.mu.Lock()
	fetchCtx, gen := s.catalogFetch.begin(ctx)
	s.loading++
	s.unlockAndNotify()

	foods, err := s.api.ListFoods(fetchCtx, categoryID)

	s.mu.Lock()
	s.loading--
	if !s.catalogFetch.finish(gen) {
		s.unlockAndNotify()
		return ErrSuperseded
	}
	if err != nil {
		s.errMsg = apiclient.UserMessage(err)
		s.unlockAndNotify()
		return err
	}
	s.foods = foods
	s.resolvePendingProductLocked()
	s.unlockAndNotify()
	return nil
}

func (s *Store) LoadCategories(ctx context.Context) error {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		return err
	}

	s.mu.Lock()
	s.categories = categories
	s.unlockAndNotify()
	return nil
}

// SearchFoods runs a catalog search and stores the results in navigation
// state. A blank query clears the results without a request.
func (s *Store) SearchFoods(ctx context.Context, query string) ([]models.Food, error) {
	if strings.TrimSpace(query) == "" {
		s.mu.Lock()
		s.searchFetch.invalidate()
		s.nav.SearchResults = nil
		s.unlockAndNotify()
		return nil, nil
	}

	s.mu.Lock()
	fetchCtx, gen := s.searchFetch.begin(ctx)
	s.loading++
	s.unlockAndNotify()

	results, err := s.api.SearchFoods(fetchCtx, query, s.searchLimit)

	s.mu.Lock()
	s.loading--
	if !s.searchFetch.finish(gen) {
		s.unlockAndNotify()
		return nil, ErrSuperseded
	}
	if err != nil {
		s.errMsg = apiclient.UserMessage(err)
		s.unlockAndNotify()
		return nil, err
	}
	s.nav.SearchResults = results
	s.unlockAndNotify()
	return append([]models.Food(nil), results...), nil
}

// Suggestions returns type-ahead completions. Failures are logged, not put in
// the error slot.
func (s *Store) Suggestions(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	suggestions, err := s.api.Suggestions(ctx, query, s.suggestionLimit)
	if err != nil {
		log.Printf("Failed to load search suggestions: %v", err)
		return nil, err
	}
	return suggestions, nil
}

func (s *Store) Foods() []models.Food {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Food(nil), s.foods...)
}

func (s *Store) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category(nil), s.categories...)
}

func (s *Store) findFoodLocked(foodID int) (models.Food, bool) {
	for _, f := range s.foods {
		if f.FoodID == foodID {
			return f, true
		}
	}
	return models.Food{}, false
}
