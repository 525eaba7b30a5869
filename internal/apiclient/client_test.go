package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parampara-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL + "/api"), server
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestListFoodsAbsolutizesImages(t *testing.T) {
	var gotQuery string
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/foods", r.URL.Path)
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, []models.Food{
			{FoodID: 1, Name: "Ragi Flour", ImageURL: "/images/ragi.jpg"},
			{FoodID: 2, Name: "Jaggery", ImageURL: "https://cdn.example.com/jaggery.jpg"},
		})
	})

	foods, err := client.ListFoods(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, foods, 2)

	assert.Equal(t, "categoryId=3", gotQuery)
	assert.Equal(t, server.URL+"/images/ragi.jpg", foods[0].ImageURL)
	assert.Equal(t, "https://cdn.example.com/jaggery.jpg", foods[1].ImageURL)

	_, err = client.ListFoods(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestSearchAndSuggestionsQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rice", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		switch r.URL.Path {
		case "/api/foods/search":
			writeJSON(w, http.StatusOK, []models.Food{{FoodID: 9, Name: "Red Rice"}})
		case "/api/foods/suggestions":
			writeJSON(w, http.StatusOK, []string{"Red Rice", "Rice Flakes"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	foods, err := client.SearchFoods(context.Background(), "rice", 5)
	require.NoError(t, err)
	assert.Equal(t, "Red Rice", foods[0].Name)

	suggestions, err := client.Suggestions(context.Background(), "rice", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Rice", "Rice Flakes"}, suggestions)
}

func TestLoginLeavesTokenToCaller(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "asha@example.com", req.Email)
		writeJSON(w, http.StatusOK, models.AuthResponse{Token: "tok", Expiration: time.Now().Add(time.Hour)})
	})

	resp, err := client.Login(context.Background(), "asha@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.Empty(t, client.Token(), "the caller adopts the token once it accepts it")
}

func TestLoginFailureIsInvalidCredentials(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized} {
		hookCalls := 0
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, status, jsonBody{"error": "Invalid credentials"})
		})
		client.SetToken("previous")
		client.OnUnauthorized(func() { hookCalls++ })

		_, err := client.Login(context.Background(), "bad@x.com", "wrong")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, status, apiErr.StatusCode)
		assert.Equal(t, MsgInvalidCredentials, UserMessage(err))
		assert.Contains(t, apiErr.Body, "Invalid credentials")
		assert.Zero(t, hookCalls)
		assert.Equal(t, "previous", client.Token())
	}
}

func TestUnauthorizedClearsTokenAndFiresHook(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer expired", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, jsonBody{"error": "Invalid token"})
	})
	client.SetToken("expired")

	fired := make(chan struct{}, 1)
	client.OnUnauthorized(func() { fired <- struct{}{} })

	_, err := client.ListOrders(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, MsgAuthRequired, UserMessage(err))
	assert.Empty(t, client.Token())
	assert.Len(t, fired, 1)
}

func TestStatusMessages(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   string
	}{
		{http.StatusBadRequest, `{"error":"validation failed"}`, MsgCheckInformation},
		{http.StatusBadRequest, `{"error":"bad"}`, MsgInvalidRequest},
		{http.StatusForbidden, ``, MsgAccessDenied},
		{http.StatusNotFound, ``, MsgNotFound},
		{http.StatusConflict, ``, MsgConflict},
		{http.StatusInternalServerError, `boom`, MsgServerError},
		{http.StatusBadGateway, ``, MsgServerError},
		{http.StatusTeapot, ``, MsgUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.ListCategories(context.Background())
			assert.Equal(t, tt.want, UserMessage(err))
			assert.True(t, IsStatus(err, tt.status))
		})
	}
}

func TestRegisterPlainTextAndErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		json.NewDecoder(r.Body).Decode(&req)
		switch req.Email {
		case "taken@example.com":
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"DuplicateEmail"}`))
		case "short@example.com":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"PasswordTooShort"}`))
		case "bad":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"InvalidEmail"}`))
		case "down@example.com":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.Write([]byte("User registered successfully!"))
		}
	})
	ctx := context.Background()

	msg, err := client.Register(ctx, models.RegisterRequest{Email: "new@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully!", msg)
	assert.Empty(t, client.Token())

	_, err = client.Register(ctx, models.RegisterRequest{Email: "taken@example.com"})
	assert.Equal(t, MsgEmailRegistered, UserMessage(err))
	_, err = client.Register(ctx, models.RegisterRequest{Email: "short@example.com"})
	assert.Equal(t, MsgPasswordTooShort, UserMessage(err))
	_, err = client.Register(ctx, models.RegisterRequest{Email: "bad"})
	assert.Equal(t, MsgInvalidEmail, UserMessage(err))
	_, err = client.Register(ctx, models.RegisterRequest{Email: "down@example.com"})
	assert.Equal(t, MsgRegistrationError, UserMessage(err))
}

func TestVerifyPhoneCodeSendsSessionHeader(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Session-Id") != "session-1" {
			writeJSON(w, http.StatusBadRequest, jsonBody{"error": "Invalid session"})
			return
		}
		writeJSON(w, http.StatusOK, models.PhoneAuthResponse{Token: "phone-token", UserID: "u1", Role: "User", IsNewUser: true})
	})

	resp, err := client.VerifyPhoneCode(context.Background(), "9876543210", "123456", "session-1")
	require.NoError(t, err)
	assert.True(t, resp.IsNewUser)
	assert.Equal(t, "phone-token", resp.Token)
	assert.Empty(t, client.Token())

	_, err = client.VerifyPhoneCode(context.Background(), "9876543210", "123456", "other")
	assert.Equal(t, MsgInvalidCode, UserMessage(err))
}

func TestTransportAndDecodeErrors(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.ListCategories(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Equal(t, MsgInvalidResponse, UserMessage(err))

	server.Close()
	_, err = client.ListCategories(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, MsgServerError, UserMessage(err))
}

func TestCanceledContextIsTransportError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Category{})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListCategories(ctx)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWishlistAndFeedbackCalls(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/wishlist", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, []models.WishlistItem{{FoodID: 4, Food: &models.Food{FoodID: 4, ImageURL: "/img/4.png"}}})
		case http.MethodPost:
			var req models.CreateWishlistRequest
			json.NewDecoder(r.Body).Decode(&req)
			writeJSON(w, http.StatusOK, models.WishlistItem{WishlistID: 1, FoodID: req.FoodID})
		}
	})
	mux.HandleFunc("/api/wishlist/4", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/feedback/average-rating", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "4", r.URL.Query().Get("foodId"))
		writeJSON(w, http.StatusOK, 4.5)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := New(server.URL+"/api/", WithToken("tok"))
	ctx := context.Background()

	items, err := client.GetWishlist(ctx)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/img/4.png", items[0].Food.ImageURL)

	item, err := client.AddToWishlist(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, item.FoodID)

	require.NoError(t, client.RemoveFromWishlist(ctx, 4))

	avg, err := client.AverageRating(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.5, avg)
}

type jsonBody map[string]interface{}

func TestGetFoodAbsolutizesImage(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/foods/7" {
			writeJSON(w, http.StatusNotFound, jsonBody{"error": "food not found"})
			return
		}
		writeJSON(w, http.StatusOK, models.Food{FoodID: 7, Name: "Organic Jaggery", ImageURL: "/images/jaggery.jpg"})
	})

	food, err := client.GetFood(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Organic Jaggery", food.Name)
	assert.Equal(t, server.URL+"/images/jaggery.jpg", food.ImageURL)

	_, err = client.GetFood(context.Background(), 8)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Equal(t, MsgNotFound, UserMessage(err))
}

func TestGetOrderAndUpdateStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/orders/12":
			writeJSON(w, http.StatusOK, models.Order{OrderID: 12, Status: "Pending", TotalAmount: 270})
		case r.Method == http.MethodPut && r.URL.Path == "/api/orders/12/status":
			var req models.UpdateOrderStatusRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Packed by Ravi", req.Notes)
			if req.Status != "Shipped" {
				writeJSON(w, http.StatusBadRequest, jsonBody{"error": "invalid order status"})
				return
			}
			writeJSON(w, http.StatusOK, models.Order{OrderID: 12, Status: req.Status, TotalAmount: 270})
		default:
			writeJSON(w, http.StatusNotFound, jsonBody{"error": "order not found"})
		}
	})
	client.SetToken("admin-token")
	ctx := context.Background()

	order, err := client.GetOrder(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, "Pending", order.Status)

	updated, err := client.UpdateOrderStatus(ctx, 12, "Shipped", "Packed by Ravi")
	require.NoError(t, err)
	assert.Equal(t, "Shipped", updated.Status)

	_, err = client.UpdateOrderStatus(ctx, 12, "Lost", "Packed by Ravi")
	assert.True(t, IsStatus(err, http.StatusBadRequest))

	_, err = client.GetOrder(ctx, 13)
	assert.Equal(t, MsgNotFound, UserMessage(err))
}
