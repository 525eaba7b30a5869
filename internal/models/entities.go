package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Persistence models used by the sandbox API.

const DefaultMinStockLevel = 5

const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
	AuthProviderPhone  = "phone"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusConfirmed  = "Confirmed"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type CategoryRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;uniqueIndex"`
	Description string `gorm:"size:500"`
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryRecord) TableName() string { return "categories" }

func (c CategoryRecord) ToDTO() Category {
	return Category{
		CategoryID:  int(c.ID),
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}

type FoodRecord struct {
	ID            uint                `gorm:"primaryKey"`
	Name          string              `gorm:"size:200;not null;index"`
	Description   string              `gorm:"size:1000"`
	MRP           decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	SalePrice     decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	CategoryID    uint                `gorm:"index;not null"`
	Category      CategoryRecord      `gorm:"foreignKey:CategoryID"`
	IsAvailable   bool
	IsOrganic     bool
	StockQuantity int
	MinStockLevel int    `gorm:"default:5"`
	ImageURL      string `gorm:"size:500"`
	Brand         string `gorm:"size:100"`
	Unit          string `gorm:"size:20"`
	Quantity      float64
	Tags          string `gorm:"size:500"`
	ViewCount     int
	Rating        float64 `gorm:"default:5"`
	ReviewCount   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (FoodRecord) TableName() string { return "foods" }

// EffectivePrice is what an order line is charged.
func (f FoodRecord) EffectivePrice() decimal.Decimal {
	if f.SalePrice.Valid {
		return f.SalePrice.Decimal
	}
	return f.MRP
}

func (f FoodRecord) ToDTO() Food {
	dto := Food{
		FoodID:        int(f.ID),
		Name:          f.Name,
		Description:   f.Description,
		MRP:           RoundMoney(f.MRP),
		CategoryID:    int(f.CategoryID),
		CategoryName:  f.Category.Name,
		IsAvailable:   f.IsAvailable,
		IsOrganic:     f.IsOrganic,
		StockQuantity: f.StockQuantity,
		ImageURL:      f.ImageURL,
		Brand:         f.Brand,
		Unit:          f.Unit,
		Quantity:      f.Quantity,
		Tags:          f.Tags,
		ViewCount:     f.ViewCount,
		Rating:        f.Rating,
		ReviewCount:   f.ReviewCount,
	}
	if f.SalePrice.Valid {
		sale := RoundMoney(f.SalePrice.Decimal)
		dto.SalePrice = &sale
	}
	dto.Derive(f.MinStockLevel)
	return dto
}

type UserRecord struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"size:255;index"`
	FullName     string `gorm:"size:200"`
	Address      string `gorm:"size:500"`
	PasswordHash string `gorm:"size:255"`
	PhoneNumber  string `gorm:"size:20;index"`
	GoogleID     string `gorm:"size:100;index"`
	PictureURL   string `gorm:"size:500"`
	AuthProvider string `gorm:"size:20;default:local"`
	Role         string `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserRecord) TableName() string { return "users" }

type OrderRecord struct {
	ID              uint                `gorm:"primaryKey"`
	UserID          string              `gorm:"size:36;index;not null"`
	User            UserRecord          `gorm:"foreignKey:UserID"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	Status          string              `gorm:"size:20;not null"`
	DeliveryAddress string              `gorm:"size:500;not null"`
	CustomerNotes   string              `gorm:"size:1000"`
	OrderDate       time.Time           `gorm:"index"`
	DeliveryDate    *time.Time
	Items           []OrderItemRecord   `gorm:"foreignKey:OrderID"`
	History         []OrderStatusRecord `gorm:"foreignKey:OrderID"`
	UpdatedAt       time.Time
}

func (OrderRecord) TableName() string { return "orders" }

func (o OrderRecord) ToDTO() Order {
	dto := Order{
		OrderID:         int(o.ID),
		UserID:          o.UserID,
		UserName:        o.User.FullName,
		TotalAmount:     RoundMoney(o.TotalAmount),
		Status:          o.Status,
		DeliveryAddress: o.DeliveryAddress,
		CustomerNotes:   o.CustomerNotes,
		OrderDate:       o.OrderDate,
		OrderItems:      make([]OrderItem, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		dto.OrderItems = append(dto.OrderItems, OrderItem{
			FoodID:    int(item.FoodID),
			FoodName:  item.Food.Name,
			Quantity:  item.Quantity,
			UnitPrice: RoundMoney(item.UnitPrice),
		})
	}
	return dto
}

type OrderItemRecord struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null"`
	FoodID    uint            `gorm:"index;not null"`
	Food      FoodRecord      `gorm:"foreignKey:FoodID"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (OrderItemRecord) TableName() string { return "order_items" }

type OrderStatusRecord struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"index;not null"`
	Status    string `gorm:"size:20;not null"`
	Notes     string `gorm:"size:500"`
	CreatedAt time.Time
}

func (OrderStatusRecord) TableName() string { return "order_status_history" }

type WishlistRecord struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    string     `gorm:"size:36;not null;uniqueIndex:idx_wishlist_user_food"`
	FoodID    uint       `gorm:"not null;uniqueIndex:idx_wishlist_user_food"`
	Food      FoodRecord `gorm:"foreignKey:FoodID"`
	CreatedAt time.Time
}

func (WishlistRecord) TableName() string { return "wishlists" }

func (w WishlistRecord) ToDTO() WishlistItem {
	dto := WishlistItem{
		WishlistID: int(w.ID),
		UserID:     w.UserID,
		FoodID:     int(w.FoodID),
		CreatedAt:  w.CreatedAt,
	}
	if w.Food.ID != 0 {
		food := w.Food.ToDTO()
		dto.Food = &food
	}
	return dto
}

type FeedbackRecord struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    string     `gorm:"size:36;index;not null"`
	User      UserRecord `gorm:"foreignKey:UserID"`
	FoodID    *uint      `gorm:"index"`
	Rating    int        `gorm:"not null"`
	Comment   string     `gorm:"size:1000"`
	CreatedAt time.Time
}

func (FeedbackRecord) TableName() string { return "feedback" }

func (f FeedbackRecord) ToDTO() Feedback {
	dto := Feedback{
		FeedbackID: int(f.ID),
		UserID:     f.UserID,
		UserName:   f.User.FullName,
		Rating:     f.Rating,
		Comment:    f.Comment,
		CreatedAt:  f.CreatedAt,
	}
	if f.FoodID != nil {
		id := int(*f.FoodID)
		dto.FoodID = &id
	}
	return dto
}

type PhoneVerification struct {
	ID           uint   `gorm:"primaryKey"`
	SessionID    string `gorm:"size:36;uniqueIndex;not null"`
	PhoneNumber  string `gorm:"size:20;index;not null"`
	Code         string `gorm:"size:6;not null"`
	ExpiresAt    time.Time
	IsUsed       bool `gorm:"default:false"`
	AttemptCount int
	CreatedAt    time.Time
}

func (PhoneVerification) TableName() string { return "phone_verifications" }

// AllEntities lists every table for AutoMigrate.
func AllEntities() []interface{} {
	return []interface{}{
		&CategoryRecord{},
		&FoodRecord{},
		&UserRecord{},
		&OrderRecord{},
		&OrderItemRecord{},
		&OrderStatusRecord{},
		&WishlistRecord{},
		&FeedbackRecord{},
		&PhoneVerification{},
	}
}
