package store

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"parampara-storefront/internal/apiclient"
	"parampara-storefront/internal/models"
	"parampara-storefront/internal/navigation"
	"parampara-storefront/pkg/auth"
)

func (s *Store) Navigation() NavigationState {
	return s.Snapshot().Navigation
}

// SetPage moves to page. Unknown pages are rejected, and admin pages need an
// admin session.
func (s *Store) SetPage(page navigation.Page) error {
	if !page.Valid() {
		return ErrUnknownPage
	}

	s.mu.Lock()
	if page.IsAdmin() && !s.isAdminLocked() {
		s.errMsg = ErrAdminRequired.msg
		s.unlockAndNotify()
		return ErrAdminRequired
	}
	s.setPageLocked(page)
	s.unlockAndNotify()
	return nil
}

func (s *Store) setPageLocked(page navigation.Page) {
	s.nav.CurrentPage = page
	if page == navigation.PageProductDetail && s.nav.SelectedProduct != nil {
		s.nav.Path = navigation.ProductPath(s.nav.SelectedProduct.Name)
		return
	}
	s.nav.Path = navigation.PathFor(page)
}

func (s *Store) isAdminLocked() bool {
	return s.session.IsAuthenticated && s.session.Role == auth.RoleAdmin
}

// ViewCategory shows a category page and loads its products. A non-numeric
// id loads the whole catalog.
func (s *Store) ViewCategory(ctx context.Context, categoryID string) error {
	s.mu.Lock()
	s.nav.SelectedCategory = categoryID
	s.setPageLocked(navigation.PageCategory)
	s.unlockAndNotify()

	id, err := strconv.Atoi(strings.TrimSpace(categoryID))
	if err != nil {
		id = 0
	}
	return s.LoadFoods(ctx, id)
}

// ViewProduct selects a product and shows it under its slug path. A product
// missing from the loaded catalog is fetched by id.
func (s *Store) ViewProduct(ctx context.Context, foodID int) error {
	s.mu.Lock()
	food, ok := s.findFoodLocked(foodID)
	if ok {
		s.selectProductLocked(food)
		s.unlockAndNotify()
		return nil
	}
	s.mu.Unlock()

	fetched, err := s.api.GetFood(ctx, foodID)
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		if apiclient.IsStatus(err, http.StatusNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.mu.Lock()
	s.selectProductLocked(*fetched)
	s.unlockAndNotify()
	return nil
}

func (s *Store) selectProductLocked(food models.Food) {
	s.nav.SelectedProduct = &food
	s.setPageLocked(navigation.PageProductDetail)
}

// PerformSearch records the query, runs the search and shows the results
// page. A search overtaken by a newer one does not navigate.
func (s *Store) PerformSearch(ctx context.Context, query string) error {
	s.mu.Lock()
	s.nav.SearchQuery = query
	s.unlockAndNotify()

	_, err := s.SearchFoods(ctx, query)
	if errors.Is(err, ErrSuperseded) {
		return err
	}

	s.mu.Lock()
	if s.nav.SearchQuery == query {
		s.setPageLocked(navigation.PageSearchResults)
	}
	s.unlockAndNotify()
	return err
}

// RestoreFromPath applies a URL path. Product paths are matched by slug
// against the loaded catalog, or held until the catalog loads. Unknown pages,
// unknown products and admin pages without an admin session go home.
func (s *Store) RestoreFromPath(path string) navigation.Page {
	route := navigation.ParsePath(path)

	s.mu.Lock()
	defer s.unlockAndNotify()

	if route.ProductSlug != "" {
		if len(s.foods) == 0 {
			s.pendingSlug = route.ProductSlug
			return s.nav.CurrentPage
		}
		s.pendingSlug = route.ProductSlug
		s.resolvePendingProductLocked()
		return s.nav.CurrentPage
	}

	s.pendingSlug = ""
	page := route.Page
	if page.IsAdmin() && !s.isAdminLocked() {
		page = navigation.PageHome
	}
	s.setPageLocked(page)
	return page
}

func (s *Store) resolvePendingProductLocked() {
	if s.pendingSlug == "" || len(s.foods) == 0 {
		return
	}
	slug := s.pendingSlug
	s.pendingSlug = ""

	for _, f := range s.foods {
		if navigation.Slugify(f.Name) == slug {
			s.selectProductLocked(f)
			return
		}
	}
	s.setPageLocked(navigation.PageHome)
}
