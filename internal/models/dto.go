package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire types exchanged with the storefront REST API. Field names are camelCase
// on the wire.

type Food struct {
	FoodID             int      `json:"foodId"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	MRP                float64  `json:"mrp"`
	SalePrice          *float64 `json:"salePrice,omitempty"`
	Price              float64  `json:"price"`
	DiscountPercentage *float64 `json:"discountPercentage,omitempty"`
	IsOnSale           bool     `json:"isOnSale"`
	Savings            float64  `json:"savings"`
	CategoryID         int      `json:"categoryId"`
	CategoryName       string   `json:"categoryName"`
	IsAvailable        bool     `json:"isAvailable"`
	IsOrganic          bool     `json:"isOrganic"`
	StockQuantity      int      `json:"stockQuantity"`
	ImageURL           string   `json:"imageUrl,omitempty"`
	Brand              string   `json:"brand,omitempty"`
	Unit               string   `json:"unit,omitempty"`
	Quantity           float64  `json:"quantity"`
	Tags               string   `json:"tags,omitempty"`
	ViewCount          int      `json:"viewCount"`
	Rating             float64  `json:"rating"`
	ReviewCount        int      `json:"reviewCount"`
	IsLowStock         bool     `json:"isLowStock"`
}

// EffectivePrice is the sale price when one is set, otherwise the MRP.
func (f Food) EffectivePrice() float64 {
	if f.SalePrice != nil && *f.SalePrice > 0 {
		return *f.SalePrice
	}
	if f.MRP > 0 {
		return f.MRP
	}
	return f.Price
}

// Derive fills the computed pricing and stock fields from MRP, SalePrice and
// StockQuantity.
func (f *Food) Derive(minStockLevel int) {
	f.Price = f.MRP
	f.IsOnSale = false
	f.DiscountPercentage = nil
	f.Savings = 0

	if f.SalePrice != nil {
		f.Price = *f.SalePrice
		if *f.SalePrice < f.MRP && f.MRP > 0 {
			mrp := decimal.NewFromFloat(f.MRP)
			sale := decimal.NewFromFloat(*f.SalePrice)
			discount, _ := mrp.Sub(sale).Div(mrp).Mul(decimal.NewFromInt(100)).Round(2).Float64()
			f.IsOnSale = true
			f.DiscountPercentage = &discount
			f.Savings = RoundMoney(mrp.Sub(sale))
		}
	}

	f.IsLowStock = f.StockQuantity <= minStockLevel
}

type Category struct {
	CategoryID  int    `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type AuthResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
}

type GoogleAuthRequest struct {
	GoogleID string `json:"googleId" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
}

type GoogleAuthResponse struct {
	Token        string    `json:"token"`
	Expiration   time.Time `json:"expiration"`
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	AuthProvider string    `json:"authProvider"`
}

type PhoneSendCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type PhoneVerificationResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type PhoneVerifyRequest struct {
	PhoneNumber      string `json:"phoneNumber" binding:"required"`
	VerificationCode string `json:"verificationCode" binding:"required"`
}

type PhoneAuthResponse struct {
	Token        string    `json:"token"`
	Expiration   time.Time `json:"expiration"`
	UserID       string    `json:"userId"`
	PhoneNumber  string    `json:"phoneNumber"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	AuthProvider string    `json:"authProvider"`
	IsNewUser    bool      `json:"isNewUser"`
}

type OrderItemRequest struct {
	FoodID   int `json:"foodId" binding:"required"`
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	DeliveryAddress string             `json:"deliveryAddress" binding:"required"`
	CustomerNotes   string             `json:"customerNotes,omitempty"`
	OrderItems      []OrderItemRequest `json:"orderItems" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes,omitempty"`
}

type OrderItem struct {
	FoodID    int     `json:"foodId"`
	FoodName  string  `json:"foodName"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Order struct {
	OrderID         int         `json:"orderId"`
	UserID          string      `json:"userId"`
	UserName        string      `json:"userName"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
	DeliveryAddress string      `json:"deliveryAddress"`
	CustomerNotes   string      `json:"customerNotes,omitempty"`
	OrderDate       time.Time   `json:"orderDate"`
	OrderItems      []OrderItem `json:"orderItems"`
}

type CreateWishlistRequest struct {
	FoodID int `json:"foodId" binding:"required"`
}

type WishlistItem struct {
	WishlistID int       `json:"wishlistId"`
	UserID     string    `json:"userId"`
	FoodID     int       `json:"foodId"`
	CreatedAt  time.Time `json:"createdAt"`
	Food       *Food     `json:"food,omitempty"`
}

type CreateFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment,omitempty"`
	FoodID  *int   `json:"foodId,omitempty"`
}

type Feedback struct {
	FeedbackID int       `json:"feedbackId"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	FoodID     *int      `json:"foodId,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
