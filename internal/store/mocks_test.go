package store

import (
	"context"
	"sync"

	"parampara-storefront/internal/apiclient"
	"parampara-storefront/internal/models"
	"parampara-storefront/pkg/auth"
)

// MockAPI implements API for testing. Every call is counted by method name.
type MockAPI struct {
	mu    sync.Mutex
	calls map[string]int
	token string
	hook  func()

	Foods      []models.Food
	Categories []models.Category
	Orders     []models.Order
	Wishlist   []models.WishlistItem

	LoginResp  *models.AuthResponse
	GoogleResp *models.GoogleAuthResponse
	PhoneResp  *models.PhoneAuthResponse
	Order      *models.Order

	// Err, when set for a method name, is returned by that method.
	Err map[string]error

	// DuringCreateOrder runs inside CreateOrder, before it returns.
	DuringCreateOrder func()

	// SearchFunc overrides SearchFoods when set.
	SearchFunc func(ctx context.Context, q string) ([]models.Food, error)

	CreatedOrder    *models.CreateOrderRequest
	CreatedFeedback *models.CreateFeedbackRequest
}

func NewMockAPI() *MockAPI {
	return &MockAPI{calls: make(map[string]int), Err: make(map[string]error)}
}

func (m *MockAPI) record(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
	return m.Err[name]
}

func (m *MockAPI) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *MockAPI) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

// FailUnauthorized makes method answer like an API rejecting the token.
func (m *MockAPI) FailUnauthorized(method string) {
	m.mu.Lock()
	m.Err[method] = &apiclient.APIError{StatusCode: 401, Message: apiclient.MsgAuthRequired}
	m.mu.Unlock()
}

// fail runs the 401 handling the real client performs.
func (m *MockAPI) fail(err error) error {
	if apiclient.IsUnauthorized(err) {
		m.mu.Lock()
		m.token = ""
		hook := m.hook
		m.mu.Unlock()
		if hook != nil {
			hook()
		}
	}
	return err
}

func (m *MockAPI) ListFoods(ctx context.Context, categoryID int) ([]models.Food, error) {
	if err := m.record("ListFoods"); err != nil {
		return nil, m.fail(err)
	}
	if categoryID == 0 {
		return m.Foods, nil
	}
	var out []models.Food
	for _, f := range m.Foods {
		if f.CategoryID == categoryID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *MockAPI) GetFood(ctx context.Context, id int) (*models.Food, error) {
	if err := m.record("GetFood"); err != nil {
		return nil, m.fail(err)
	}
	for _, f := range m.Foods {
		if f.FoodID == id {
			f := f
			return &f, nil
		}
	}
	return nil, &apiclient.APIError{StatusCode: 404, Message: apiclient.MsgNotFound}
}

func (m *MockAPI) SearchFoods(ctx context.Context, q string, limit int) ([]models.Food, error) {
	if err := m.record("SearchFoods"); err != nil {
		return nil, m.fail(err)
	}
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}
	return m.Foods, nil
}

func (m *MockAPI) Suggestions(ctx context.Context, q string, limit int) ([]string, error) {
	if err := m.record("Suggestions"); err != nil {
		return nil, m.fail(err)
	}
	var out []string
	for _, f := range m.Foods {
		if len(out) < limit {
			out = append(out, f.Name)
		}
	}
	return out, nil
}

func (m *MockAPI) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := m.record("ListCategories"); err != nil {
		return nil, m.fail(err)
	}
	return m.Categories, nil
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if err := m.record("Login"); err != nil {
		return nil, err
	}
	return m.LoginResp, nil
}

func (m *MockAPI) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	if err := m.record("Register"); err != nil {
		return "", err
	}
	return "User registered successfully!", nil
}

func (m *MockAPI) GoogleAuth(ctx context.Context, req models.GoogleAuthRequest) (*models.GoogleAuthResponse, error) {
	if err := m.record("GoogleAuth"); err != nil {
		return nil, err
	}
	return m.GoogleResp, nil
}

func (m *MockAPI) SendPhoneVerificationCode(ctx context.Context, phoneNumber string) (*models.PhoneVerificationResponse, error) {
	if err := m.record("SendPhoneVerificationCode"); err != nil {
		return nil, err
	}
	return &models.PhoneVerificationResponse{Success: true, SessionID: "otp-session-1"}, nil
}

func (m *MockAPI) VerifyPhoneCode(ctx context.Context, phoneNumber, code, sessionID string) (*models.PhoneAuthResponse, error) {
	if err := m.record("VerifyPhoneCode"); err != nil {
		return nil, err
	}
	if sessionID != "otp-session-1" {
		return nil, &apiclient.APIError{StatusCode: 400, Message: apiclient.MsgInvalidCode}
	}
	return m.PhoneResp, nil
}

func (m *MockAPI) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if err := m.record("CreateOrder"); err != nil {
		return nil, m.fail(err)
	}
	m.mu.Lock()
	m.CreatedOrder = &req
	during := m.DuringCreateOrder
	m.mu.Unlock()
	if during != nil {
		during()
	}
	return m.Order, nil
}

func (m *MockAPI) ListOrders(ctx context.Context) ([]models.Order, error) {
	if err := m.record("ListOrders"); err != nil {
		return nil, m.fail(err)
	}
	return m.Orders, nil
}

func (m *MockAPI) GetWishlist(ctx context.Context) ([]models.WishlistItem, error) {
	if err := m.record("GetWishlist"); err != nil {
		return nil, m.fail(err)
	}
	return m.Wishlist, nil
}

func (m *MockAPI) AddToWishlist(ctx context.Context, foodID int) (*models.WishlistItem, error) {
	if err := m.record("AddToWishlist"); err != nil {
		return nil, m.fail(err)
	}
	return &models.WishlistItem{FoodID: foodID}, nil
}

func (m *MockAPI) RemoveFromWishlist(ctx context.Context, foodID int) error {
	if err := m.record("RemoveFromWishlist"); err != nil {
		return m.fail(err)
	}
	return nil
}

func (m *MockAPI) ListFeedback(ctx context.Context, foodID int) ([]models.Feedback, error) {
	if err := m.record("ListFeedback"); err != nil {
		return nil, m.fail(err)
	}
	return []models.Feedback{{FeedbackID: 1, Rating: 4, FoodID: &foodID}}, nil
}

func (m *MockAPI) CreateFeedback(ctx context.Context, req models.CreateFeedbackRequest) (*models.Feedback, error) {
	if err := m.record("CreateFeedback"); err != nil {
		return nil, m.fail(err)
	}
	m.mu.Lock()
	m.CreatedFeedback = &req
	m.mu.Unlock()
	return &models.Feedback{FeedbackID: 2, Rating: req.Rating, Comment: req.Comment, FoodID: req.FoodID}, nil
}

func (m *MockAPI) SetToken(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

func (m *MockAPI) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MockAPI) ClearAuth() {
	m.SetToken("")
}

func (m *MockAPI) OnUnauthorized(fn func()) {
	m.mu.Lock()
	m.hook = fn
	m.mu.Unlock()
}

// signedToken issues a real HS256 token the way the API would.
func signedToken(userID, role string) string {
	token, _, _ := auth.NewJWTManager("test-secret", 1).GenerateToken(userID, userID+"@example.com", "Test "+role, role)
	return token
}
