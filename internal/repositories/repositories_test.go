package repositories

import (
	"context"
	"testing"
	"time"

	"parampara-storefront/internal/models"
	"parampara-storefront/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDatabase(database.DriverSQLite, ":memory:", logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.DB.AutoMigrate(models.AllEntities()...))
	return db.DB
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.CategoryRecord, []models.FoodRecord) {
	t.Helper()
	ctx := context.Background()
	category := models.CategoryRecord{Name: "Staples", IsActive: true}
	require.NoError(t, NewCategoryRepository(db).Create(ctx, &category))

	foods := []models.FoodRecord{
		{Name: "Ragi Flour", MRP: decimal.NewFromInt(60), CategoryID: category.ID, IsAvailable: true, StockQuantity: 10, Tags: "millet"},
		{Name: "Red Rice", MRP: decimal.NewFromInt(90), SalePrice: decimal.NewNullDecimal(decimal.NewFromInt(75)), CategoryID: category.ID, IsAvailable: true, StockQuantity: 3},
		{Name: "Rice Flakes", MRP: decimal.NewFromInt(40), CategoryID: category.ID, IsAvailable: false, StockQuantity: 8},
	}
	repo := NewFoodRepository(db)
	for i := range foods {
		require.NoError(t, repo.Create(ctx, &foods[i]))
	}
	return category, foods
}

func createUser(t *testing.T, db *gorm.DB, id string) models.UserRecord {
	t.Helper()
	user := models.UserRecord{ID: id, Email: id + "@example.com", FullName: "User " + id, Role: "User"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), &user))
	return user
}

func TestFoodRepository(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	category, foods := seedCatalog(t, db)
	repo := NewFoodRepository(db)

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2, "unavailable foods are not listed")
	assert.Equal(t, "Staples", all[0].Category.Name)

	byCategory, err := repo.List(ctx, category.ID)
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	none, err := repo.List(ctx, category.ID+1)
	require.NoError(t, err)
	assert.Empty(t, none)

	found, err := repo.Search(ctx, "RICE", 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Red Rice", found[0].Name)

	byTag, err := repo.Search(ctx, "millet", 20)
	require.NoError(t, err)
	require.Len(t, byTag, 1)

	names, err := repo.Suggestions(ctx, "r", 5)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Ragi Flour", "Red Rice"}, names)

	got, err := repo.GetByID(ctx, foods[1].ID)
	require.NoError(t, err)
	assert.True(t, got.SalePrice.Valid)
	assert.True(t, got.EffectivePrice().Equal(decimal.NewFromInt(75)))

	require.NoError(t, repo.IncrementViewCount(ctx, foods[1].ID))
	got, err = repo.GetByID(ctx, foods[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := NewUserRepository(db)
	user := models.UserRecord{ID: "u-1", Email: "Asha@Example.com", PhoneNumber: "9876543210", GoogleID: "g-1", Role: "User"}
	require.NoError(t, repo.Create(ctx, &user))

	got, err := repo.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)

	got, err = repo.GetByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)

	got, err = repo.GetByGoogleID(ctx, "g-1")
	require.NoError(t, err)
	got.FullName = "Asha"
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.FullName)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderRepositoryPlace(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	_, foods := seedCatalog(t, db)
	user := createUser(t, db, "u-1")
	repo := NewOrderRepository(db)
	foodRepo := NewFoodRepository(db)
	now := time.Now()

	order := &models.OrderRecord{
		UserID:          user.ID,
		TotalAmount:     decimal.NewFromInt(195),
		Status:          models.OrderStatusPending,
		DeliveryAddress: "12 MG Road",
		OrderDate:       now,
		Items: []models.OrderItemRecord{
			{FoodID: foods[0].ID, Quantity: 2, UnitPrice: decimal.NewFromInt(60)},
			{FoodID: foods[1].ID, Quantity: 1, UnitPrice: decimal.NewFromInt(75)},
		},
		History: []models.OrderStatusRecord{{Status: models.OrderStatusPending, CreatedAt: now}},
	}
	require.NoError(t, repo.Place(ctx, order))
	require.NotZero(t, order.ID)

	ragi, err := foodRepo.GetByID(ctx, foods[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 8, ragi.StockQuantity)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Ragi Flour", got.Items[0].Food.Name)
	assert.Equal(t, user.FullName, got.User.FullName)
	assert.Len(t, got.History, 1)

	tooMany := &models.OrderRecord{
		UserID:          user.ID,
		TotalAmount:     decimal.NewFromInt(360),
		Status:          models.OrderStatusPending,
		DeliveryAddress: "12 MG Road",
		OrderDate:       now,
		Items: []models.OrderItemRecord{
			{FoodID: foods[0].ID, Quantity: 1, UnitPrice: decimal.NewFromInt(60)},
			{FoodID: foods[1].ID, Quantity: 4, UnitPrice: decimal.NewFromInt(75)},
		},
	}
	assert.ErrorIs(t, repo.Place(ctx, tooMany), ErrInsufficientStock)

	ragi, err = foodRepo.GetByID(ctx, foods[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 8, ragi.StockQuantity, "a failed order rolls back every decrement")

	orders, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	_, foods := seedCatalog(t, db)
	user := createUser(t, db, "u-1")
	repo := NewOrderRepository(db)

	order := &models.OrderRecord{
		UserID:          user.ID,
		TotalAmount:     decimal.NewFromInt(60),
		Status:          models.OrderStatusPending,
		DeliveryAddress: "12 MG Road",
		OrderDate:       time.Now(),
		Items:           []models.OrderItemRecord{{FoodID: foods[0].ID, Quantity: 1, UnitPrice: decimal.NewFromInt(60)}},
	}
	require.NoError(t, repo.Place(ctx, order))

	at := time.Now().Add(time.Hour)
	got, err := repo.UpdateStatus(ctx, order.ID, models.OrderStatusDelivered, "left with guard", at)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, got.Status)
	require.NotNil(t, got.DeliveryDate)
	require.Len(t, got.History, 1)
	assert.Equal(t, "left with guard", got.History[0].Notes)

	_, err = repo.UpdateStatus(ctx, 999, models.OrderStatusShipped, "", at)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := repo.ListAll(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWishlistRepository(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	_, foods := seedCatalog(t, db)
	user := createUser(t, db, "u-1")
	repo := NewWishlistRepository(db)

	require.NoError(t, repo.Create(ctx, &models.WishlistRecord{UserID: user.ID, FoodID: foods[0].ID}))
	assert.Error(t, repo.Create(ctx, &models.WishlistRecord{UserID: user.ID, FoodID: foods[0].ID}), "one entry per user and food")

	item, err := repo.Get(ctx, user.ID, foods[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Staples", item.Food.Category.Name)

	items, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, repo.Delete(ctx, user.ID, foods[0].ID))
	assert.ErrorIs(t, repo.Delete(ctx, user.ID, foods[0].ID), ErrNotFound)
	_, err = repo.Get(ctx, user.ID, foods[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFeedbackRepository(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	_, foods := seedCatalog(t, db)
	user := createUser(t, db, "u-1")
	repo := NewFeedbackRepository(db)
	foodID := foods[0].ID

	require.NoError(t, repo.Create(ctx, &models.FeedbackRecord{UserID: user.ID, FoodID: &foodID, Rating: 4, Comment: "Fresh"}))
	require.NoError(t, repo.Create(ctx, &models.FeedbackRecord{UserID: user.ID, FoodID: &foodID, Rating: 5}))
	require.NoError(t, repo.Create(ctx, &models.FeedbackRecord{UserID: user.ID, Rating: 1, Comment: "Site is slow"}))

	avg, total, err := repo.AverageRating(ctx, &foodID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, avg, 0.001)
	assert.EqualValues(t, 2, total)

	food, err := NewFoodRepository(db).GetByID(ctx, foodID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, food.Rating, 0.001)
	assert.Equal(t, 2, food.ReviewCount)

	forFood, err := repo.List(ctx, &foodID)
	require.NoError(t, err)
	require.Len(t, forFood, 2)
	assert.Equal(t, user.FullName, forFood[0].User.FullName)

	everything, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, everything, 3)
}

func TestPhoneVerificationRepository(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := NewPhoneVerificationRepository(db)
	now := time.Now()

	v := &models.PhoneVerification{SessionID: "s-1", PhoneNumber: "9876543210", Code: "123456", ExpiresAt: now.Add(10 * time.Minute)}
	require.NoError(t, repo.Create(ctx, v))
	require.NoError(t, repo.IncrementAttempt(ctx, v.ID))
	require.NoError(t, repo.MarkUsed(ctx, v.ID))

	got, err := repo.GetBySessionID(ctx, "s-1")
	require.NoError(t, err)
	assert.True(t, got.IsUsed)
	assert.Equal(t, 1, got.AttemptCount)

	require.NoError(t, repo.DeleteExpired(ctx, now))
	_, err = repo.GetBySessionID(ctx, "s-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
