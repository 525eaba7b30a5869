package store

import (
	"parampara-storefront/internal/models"
	"parampara-storefront/internal/navigation"
)

// CartLine is one product in the cart. Quantity is always at least 1.
type CartLine struct {
	ProductID    int     `json:"productId"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unitPrice"`
	Quantity     int     `json:"quantity"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
}

type WishlistEntry struct {
	ProductID int         `json:"productId"`
	Product   models.Food `json:"product"`
}

// Session is populated only from auth responses and token claims.
type Session struct {
	Token           string
	UserID          string
	Role            string
	Email           string
	Name            string
	IsAuthenticated bool
}

type NavigationState struct {
	CurrentPage      navigation.Page
	SelectedCategory string
	SelectedProduct  *models.Food
	SearchQuery      string
	SearchResults    []models.Food
	Path             string
}

type BillSummary struct {
	Subtotal             float64
	Shipping             float64
	Total                float64
	AmountToFreeShipping float64
}

// Snapshot is an immutable copy of the container state.
type Snapshot struct {
	Foods      []models.Food
	Categories []models.Category
	Cart       []CartLine
	CartTotal  float64
	CartCount  int
	Wishlist   []WishlistEntry
	Orders     []models.Order
	Reviews    []models.Feedback
	Session    Session
	Navigation NavigationState
	Loading    bool
	Error      string
}

// RegisterInput is what a shopper fills in on the sign-up form.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Address  string
}

type GoogleProfile struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
}
