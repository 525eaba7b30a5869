package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"parampara-storefront/internal/models"

	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func likePattern(query string) string {
	return "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
}

// Category Repository
type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.CategoryRecord) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.CategoryRecord, error) {
	var category models.CategoryRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, activeOnly bool) ([]models.CategoryRecord, error) {
	var categories []models.CategoryRecord
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&categories).Error
	return categories, err
}

// Food Repository
type foodRepository struct {
	db *gorm.DB
}

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) Create(ctx context.Context, food *models.FoodRecord) error {
	return r.db.WithContext(ctx).Create(food).Error
}

func (r *foodRepository) GetByID(ctx context.Context, id uint) (*models.FoodRecord, error) {
	var food models.FoodRecord
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&food).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &food, nil
}

func (r *foodRepository) List(ctx context.Context, categoryID uint) ([]models.FoodRecord, error) {
	var foods []models.FoodRecord
	q := r.db.WithContext(ctx).Preload("Category").Where("is_available = ?", true)
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	err := q.Order("name ASC").Find(&foods).Error
	return foods, err
}

func (r *foodRepository) Search(ctx context.Context, query string, limit int) ([]models.FoodRecord, error) {
	var foods []models.FoodRecord
	pattern := likePattern(query)
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_available = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ? OR LOWER(brand) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("view_count DESC, name ASC").
		Limit(limit).Find(&foods).Error
	return foods, err
}

func (r *foodRepository) Suggestions(ctx context.Context, query string, limit int) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.FoodRecord{}).
		Where("is_available = ? AND LOWER(name) LIKE ?", true, likePattern(query)).
		Order("view_count DESC, name ASC").
		Limit(limit).
		Pluck("name", &names).Error
	return names, err
}

func (r *foodRepository) IncrementViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.FoodRecord{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *foodRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.FoodRecord{}).Count(&n).Error
	return n, err
}

// User Repository
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.UserRecord) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) getBy(ctx context.Context, column, value string) (*models.UserRecord, error) {
	var user models.UserRecord
	err := r.db.WithContext(ctx).Where(column+" = ?", value).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.UserRecord, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	var user models.UserRecord
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.UserRecord, error) {
	return r.getBy(ctx, "phone_number", phone)
}

func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.UserRecord, error) {
	return r.getBy(ctx, "google_id", googleID)
}

func (r *userRepository) Update(ctx context.Context, user *models.UserRecord) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Order Repository
type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Place(ctx context.Context, order *models.OrderRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			res := tx.Model(&models.FoodRecord{}).
				Where("id = ? AND stock_quantity >= ?", item.FoodID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}
		return tx.Create(order).Error
	})
}

func (r *orderRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Items.Food").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") })
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.OrderRecord, error) {
	var order models.OrderRecord
	err := r.withDetails(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]models.OrderRecord, error) {
	var orders []models.OrderRecord
	err := r.withDetails(ctx).
		Where("user_id = ?", userID).
		Order("order_date DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListAll(ctx context.Context, limit, offset int) ([]models.OrderRecord, error) {
	var orders []models.OrderRecord
	err := r.withDetails(ctx).
		Order("order_date DESC, id DESC").
		Limit(limit).Offset(offset).Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status, notes string, at time.Time) (*models.OrderRecord, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": status, "updated_at": at}
		if status == models.OrderStatusDelivered {
			updates["delivery_date"] = at
		}
		res := tx.Model(&models.OrderRecord{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(&models.OrderStatusRecord{OrderID: id, Status: status, Notes: notes, CreatedAt: at}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Wishlist Repository
type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context, item *models.WishlistRecord) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *wishlistRepository) Get(ctx context.Context, userID string, foodID uint) (*models.WishlistRecord, error) {
	var item models.WishlistRecord
	err := r.db.WithContext(ctx).
		Preload("Food.Category").
		Where("user_id = ? AND food_id = ?", userID, foodID).
		First(&item).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID string) ([]models.WishlistRecord, error) {
	var items []models.WishlistRecord
	err := r.db.WithContext(ctx).
		Preload("Food.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	return items, err
}

func (r *wishlistRepository) Delete(ctx context.Context, userID string, foodID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND food_id = ?", userID, foodID).
		Delete(&models.WishlistRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Feedback Repository
type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.FeedbackRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(feedback).Error; err != nil {
			return err
		}
		if feedback.FoodID == nil {
			return nil
		}

		var stats struct {
			Average float64
			Total   int64
		}
		err := tx.Model(&models.FeedbackRecord{}).
			Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
			Where("food_id = ?", *feedback.FoodID).
			Scan(&stats).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.FoodRecord{}).
			Where("id = ?", *feedback.FoodID).
			UpdateColumns(map[string]interface{}{"rating": stats.Average, "review_count": stats.Total}).Error
	})
}

func (r *feedbackRepository) List(ctx context.Context, foodID *uint) ([]models.FeedbackRecord, error) {
	var feedback []models.FeedbackRecord
	q := r.db.WithContext(ctx).Preload("User")
	if foodID != nil {
		q = q.Where("food_id = ?", *foodID)
	}
	err := q.Order("created_at DESC, id DESC").Find(&feedback).Error
	return feedback, err
}

func (r *feedbackRepository) AverageRating(ctx context.Context, foodID *uint) (float64, int64, error) {
	var stats struct {
		Average float64
		Total   int64
	}
	q := r.db.WithContext(ctx).Model(&models.FeedbackRecord{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total")
	if foodID != nil {
		q = q.Where("food_id = ?", *foodID)
	}
	if err := q.Scan(&stats).Error; err != nil {
		return 0, 0, err
	}
	return stats.Average, stats.Total, nil
}

// Phone Verification Repository
type phoneVerificationRepository struct {
	db *gorm.DB
}

func NewPhoneVerificationRepository(db *gorm.DB) PhoneVerificationRepository {
	return &phoneVerificationRepository{db: db}
}

func (r *phoneVerificationRepository) Create(ctx context.Context, v *models.PhoneVerification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *phoneVerificationRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.PhoneVerification, error) {
	var v models.PhoneVerification
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&v).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

func (r *phoneVerificationRepository) MarkUsed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.PhoneVerification{}).
		Where("id = ?", id).
		Update("is_used", true).Error
}

func (r *phoneVerificationRepository) IncrementAttempt(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.PhoneVerification{}).
		Where("id = ?", id).
		UpdateColumn("attempt_count", gorm.Expr("attempt_count + ?", 1)).Error
}

func (r *phoneVerificationRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ? OR is_used = ?", before, true).
		Delete(&models.PhoneVerification{}).Error
}
