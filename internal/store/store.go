// Package store is the storefront client's state container. It owns the cart,
// the wishlist mirror, the session, order history and navigation state, and
// keeps them in step with durable storage and the REST API.
package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"parampara-storefront/internal/models"
	"parampara-storefront/internal/navigation"
	"parampara-storefront/pkg/storage"
)

// API is the subset of the REST client the container calls.
type API interface {
	ListFoods(ctx context.Context, categoryID int) ([]models.Food, error)
	GetFood(ctx context.Context, id int) (*models.Food, error)
	SearchFoods(ctx context.Context, q string, limit int) ([]models.Food, error)
	Suggestions(ctx context.Context, q string, limit int) ([]string, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	GoogleAuth(ctx context.Context, req models.GoogleAuthRequest) (*models.GoogleAuthResponse, error)
	SendPhoneVerificationCode(ctx context.Context, phoneNumber string) (*models.PhoneVerificationResponse, error)
	VerifyPhoneCode(ctx context.Context, phoneNumber, code, sessionID string) (*models.PhoneAuthResponse, error)

	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)

	GetWishlist(ctx context.Context) ([]models.WishlistItem, error)
	AddToWishlist(ctx context.Context, foodID int) (*models.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, foodID int) error

	ListFeedback(ctx context.Context, foodID int) ([]models.Feedback, error)
	CreateFeedback(ctx context.Context, req models.CreateFeedbackRequest) (*models.Feedback, error)

	SetToken(token string)
	ClearAuth()
	OnUnauthorized(fn func())
}

type Option func(*Store)

func WithSearchLimit(n int) Option {
	return func(s *Store) { s.searchLimit = n }
}

func WithSuggestionLimit(n int) Option {
	return func(s *Store) { s.suggestionLimit = n }
}

// WithPersistTimeout bounds each write to durable storage.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Store) { s.persistTimeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is safe for concurrent use. Every mutation runs under one mutex that
// is never held across a network call; listeners run after it is released.
type Store struct {
	api     API
	storage storage.Storage

	searchLimit     int
	suggestionLimit int
	persistTimeout  time.Duration
	now             func() time.Time

	mu           sync.Mutex
	foods        []models.Food
	categories   []models.Category
	cart         []CartLine
	wishlist     []WishlistEntry
	orders       []models.Order
	reviews      []models.Feedback
	reviewsFood  int
	session      Session
	nav          NavigationState
	pendingSlug  string
	phoneSession string
	loading      int
	errMsg       string

	catalogFetch fetchSlot
	searchFetch  fetchSlot

	listeners    map[int]func(Snapshot)
	nextListener int
}

func New(api API, store storage.Storage, opts ...Option) *Store {
	s := &Store{
		api:             api,
		storage:         store,
		searchLimit:     20,
		suggestionLimit: 5,
		persistTimeout:  2 * time.Second,
		now:             time.Now,
		nav:             NavigationState{CurrentPage: navigation.PageHome, Path: "/"},
		listeners:       make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	api.OnUnauthorized(s.handleUnauthorized)
	return s
}

// fetchSlot tracks the latest fetch of one kind. Starting a fetch cancels the
// previous one; a result is applied only if its generation is still current.
type fetchSlot struct {
	gen    uint64
	cancel context.CancelFunc
}

func (f *fetchSlot) begin(parent context.Context) (context.Context, uint64) {
	if f.cancel != nil {
		f.cancel()
	}
	f.gen++
	ctx, cancel := context.WithCancel(parent)
	f.cancel = cancel
	return ctx, f.gen
}

// invalidate cancels any fetch in flight without starting a new one.
func (f *fetchSlot) invalidate() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.gen++
}

func (f *fetchSlot) finish(gen uint64) bool {
	if gen != f.gen {
		return false
	}
	f.cancel()
	f.cancel = nil
	return true
}

// unlockAndNotify releases s.mu and hands a fresh snapshot to every listener.
func (s *Store) unlockAndNotify() {
	if len(s.listeners) == 0 {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// Subscribe registers fn to receive a snapshot after each committed change.
// The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	nav := s.nav
	nav.SearchResults = append([]models.Food(nil), s.nav.SearchResults...)
	if s.nav.SelectedProduct != nil {
		p := *s.nav.SelectedProduct
		nav.SelectedProduct = &p
	}

	return Snapshot{
		Foods:      append([]models.Food(nil), s.foods...),
		Categories: append([]models.Category(nil), s.categories...),
		Cart:       append([]CartLine(nil), s.cart...),
		CartTotal:  cartTotal(s.cart),
		CartCount:  cartCount(s.cart),
		Wishlist:   append([]WishlistEntry(nil), s.wishlist...),
		Orders:     append([]models.Order(nil), s.orders...),
		Reviews:    append([]models.Feedback(nil), s.reviews...),
		Session:    s.session,
		Navigation: nav,
		Loading:    s.loading > 0,
		Error:      s.errMsg,
	}
}

// Error returns the current error slot; empty when there is none.
func (s *Store) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.unlockAndNotify()
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.unlockAndNotify()
}

// reject records a client-side failure and returns it.
func (s *Store) reject(err *UserError) error {
	s.setError(err.msg)
	return err
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

func (s *Store) beginLoading() {
	s.mu.Lock()
	s.loading++
	s.unlockAndNotify()
}

func (s *Store) endLoading() {
	s.mu.Lock()
	if s.loading > 0 {
		s.loading--
	}
	s.unlockAndNotify()
}

func (s *Store) persistCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.persistTimeout)
}

func (s *Store) persistCartLocked() {
	ctx, cancel := s.persistCtx()
	defer cancel()
	if err := storage.SetJSON(ctx, s.storage, storage.KeyCart, nonNilCart(s.cart)); err != nil {
		log.Printf("Failed to persist cart: %v", err)
	}
}

func (s *Store) persistWishlistLocked() {
	ctx, cancel := s.persistCtx()
	defer cancel()
	entries := s.wishlist
	if entries == nil {
		entries = []WishlistEntry{}
	}
	if err := storage.SetJSON(ctx, s.storage, storage.KeyWishlist, entries); err != nil {
		log.Printf("Failed to persist wishlist: %v", err)
	}
}

func (s *Store) persistTokenLocked(token string) {
	ctx, cancel := s.persistCtx()
	defer cancel()

	var err error
	if token == "" {
		err = s.storage.Delete(ctx, storage.KeyAuthToken)
	} else {
		err = s.storage.Set(ctx, storage.KeyAuthToken, token)
	}
	if err != nil {
		log.Printf("Failed to persist auth token: %v", err)
	}
}

// Restore reloads the cart, wishlist mirror and token from durable storage.
// A token whose exp claim has passed is discarded. With a live token the
// wishlist and order history are then refreshed from the API.
func (s *Store) Restore(ctx context.Context) error {
	var cart []CartLine
	if err := storage.GetJSON(ctx, s.storage, storage.KeyCart, &cart); err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("Discarding stored cart: %v", err)
		cart = nil
	}
	var wishlist []WishlistEntry
	if err := storage.GetJSON(ctx, s.storage, storage.KeyWishlist, &wishlist); err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("Discarding stored wishlist: %v", err)
		wishlist = nil
	}
	token, err := s.storage.Get(ctx, storage.KeyAuthToken)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	session, ok := sessionFromToken(token, sessionHints{}, s.now())

	s.mu.Lock()
	s.cart = validLines(cart)
	if ok {
		s.session = session
		s.wishlist = wishlist
	} else {
		s.session = Session{}
		s.wishlist = nil
		if token != "" {
			s.persistTokenLocked("")
		}
	}
	s.unlockAndNotify()

	if !ok {
		s.api.ClearAuth()
		return nil
	}

	s.api.SetToken(session.Token)
	s.refreshAfterLogin(ctx)
	return nil
}

// validLines drops stored lines that break the cart invariants.
func validLines(lines []CartLine) []CartLine {
	out := make([]CartLine, 0, len(lines))
	seen := make(map[int]int)
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if i, dup := seen[line.ProductID]; dup {
			out[i].Quantity += line.Quantity
			continue
		}
		seen[line.ProductID] = len(out)
		out = append(out, line)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
