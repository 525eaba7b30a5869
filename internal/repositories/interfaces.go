package repositories

import (
	"context"
	"errors"
	"time"

	"parampara-storefront/internal/models"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// CategoryRepository interface for category operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.CategoryRecord) error
	GetByID(ctx context.Context, id uint) (*models.CategoryRecord, error)
	List(ctx context.Context, activeOnly bool) ([]models.CategoryRecord, error)
}

// FoodRepository interface for catalog operations
type FoodRepository interface {
	Create(ctx context.Context, food *models.FoodRecord) error
	GetByID(ctx context.Context, id uint) (*models.FoodRecord, error)
	// List returns available foods; categoryID 0 means every category.
	List(ctx context.Context, categoryID uint) ([]models.FoodRecord, error)
	Search(ctx context.Context, query string, limit int) ([]models.FoodRecord, error)
	Suggestions(ctx context.Context, query string, limit int) ([]string, error)
	IncrementViewCount(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// UserRepository interface for user operations
type UserRepository interface {
	Create(ctx context.Context, user *models.UserRecord) error
	GetByID(ctx context.Context, id string) (*models.UserRecord, error)
	GetByEmail(ctx context.Context, email string) (*models.UserRecord, error)
	GetByPhone(ctx context.Context, phone string) (*models.UserRecord, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.UserRecord, error)
	Update(ctx context.Context, user *models.UserRecord) error
}

// OrderRepository interface for order operations
type OrderRepository interface {
	// Place stores the order with its items and first status entry, and takes
	// the ordered quantities out of stock, all in one transaction.
	Place(ctx context.Context, order *models.OrderRecord) error
	GetByID(ctx context.Context, id uint) (*models.OrderRecord, error)
	ListByUser(ctx context.Context, userID string) ([]models.OrderRecord, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.OrderRecord, error)
	UpdateStatus(ctx context.Context, id uint, status, notes string, at time.Time) (*models.OrderRecord, error)
}

// WishlistRepository interface for wishlist operations
type WishlistRepository interface {
	Create(ctx context.Context, item *models.WishlistRecord) error
	Get(ctx context.Context, userID string, foodID uint) (*models.WishlistRecord, error)
	ListByUser(ctx context.Context, userID string) ([]models.WishlistRecord, error)
	Delete(ctx context.Context, userID string, foodID uint) error
}

// FeedbackRepository interface for review operations
type FeedbackRepository interface {
	// Create stores the review and refreshes the food's rating and review count.
	Create(ctx context.Context, feedback *models.FeedbackRecord) error
	List(ctx context.Context, foodID *uint) ([]models.FeedbackRecord, error)
	AverageRating(ctx context.Context, foodID *uint) (float64, int64, error)
}

// PhoneVerificationRepository interface for OTP session operations
type PhoneVerificationRepository interface {
	Create(ctx context.Context, v *models.PhoneVerification) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.PhoneVerification, error)
	MarkUsed(ctx context.Context, id uint) error
	IncrementAttempt(ctx context.Context, id uint) error
	DeleteExpired(ctx context.Context, before time.Time) error
}
