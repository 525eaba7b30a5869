package store

import (
	"context"
	"log"
	"strings"
	"time"

	"parampara-storefront/internal/apiclient"
	"parampara-storefront/internal/models"
	"parampara-storefront/internal/navigation"
	"parampara-storefront/pkg/auth"
)

// sessionHints are identity fields an auth response carried alongside the
// token. They take precedence over token claims.
type sessionHints struct {
	UserID string
	Role   string
	Email  string
	Name   string
}

// sessionFromToken builds a session from a bearer token. Opaque tokens are
// accepted with whatever the hints provide; a JWT whose exp has passed is not.
func sessionFromToken(token string, hints sessionHints, now time.Time) (Session, bool) {
	if token == "" {
		return Session{}, false
	}

	session := Session{Token: token, IsAuthenticated: true}
	if claims, err := auth.ParseClaims(token); err == nil {
		if claims.Expired(now) {
			return Session{}, false
		}
		session.UserID = claims.UserID
		session.Role = claims.Role
		session.Email = claims.Email
		session.Name = claims.Name
	}

	if hints.UserID != "" {
		session.UserID = hints.UserID
	}
	if hints.Role != "" {
		session.Role = hints.Role
	}
	if session.Email == "" {
		session.Email = hints.Email
	}
	if hints.Name != "" {
		session.Name = hints.Name
	}
	return session, true
}

func (s *Store) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.IsAuthenticated
}

func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.IsAuthenticated && s.session.Role == auth.RoleAdmin
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return s.reject(ErrEmailRequired)
	}
	if password == "" {
		return s.reject(ErrPasswordRequired)
	}

	s.beginLoading()
	resp, err := s.api.Login(ctx, email, password)
	s.endLoading()
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		return err
	}

	return s.establishSession(ctx, resp.Token, sessionHints{Email: email})
}

// Register creates the account and then signs in with the same credentials.
func (s *Store) Register(ctx context.Context, in RegisterInput) error {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return s.reject(ErrEmailRequired)
	}
	if in.Password == "" {
		return s.reject(ErrPasswordRequired)
	}

	s.beginLoading()
	_, err := s.api.Register(ctx, models.RegisterRequest{
		Email:    in.Email,
		Password: in.Password,
		FullName: strings.TrimSpace(in.FullName),
		Address:  strings.TrimSpace(in.Address),
	})
	s.endLoading()
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		return err
	}

	return s.Login(ctx, in.Email, in.Password)
}

func (s *Store) GoogleLogin(ctx context.Context, profile GoogleProfile) error {
	if profile.GoogleID == "" || strings.TrimSpace(profile.Email) == "" {
		return s.reject(ErrGoogleProfileRequired)
	}

	s.beginLoading()
	resp, err := s.api.GoogleAuth(ctx, models.GoogleAuthRequest{
		GoogleID: profile.GoogleID,
		Email:    strings.TrimSpace(profile.Email),
		Name:     profile.Name,
		Picture:  profile.Picture,
	})
	s.endLoading()
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		return err
	}

	return s.establishSession(ctx, resp.Token, sessionHints{
		UserID: resp.UserID,
		Role:   resp.Role,
		Email:  resp.Email,
		Name:   resp.FullName,
	})
}

// SendPhoneVerificationCode asks the API to text a code and returns the
// verification session id. The id is also remembered for VerifyPhoneCode.
func (s *Store) SendPhoneVerificationCode(ctx context.Context, phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", s.reject(ErrPhoneRequired)
	}

	s.beginLoading()
	resp, err := s.api.SendPhoneVerificationCode(ctx, phone)
	s.endLoading()
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		return "", err
	}

	s.mu.Lock()
	s.phoneSession = resp.SessionID
	s.mu.Unlock()
	return resp.SessionID, nil
}

// VerifyPhoneCode completes the OTP flow. An empty sessionID uses the one
// remembered from the last SendPhoneVerificationCode.
func (s *Store) VerifyPhoneCode(ctx context.Context, phone, code, sessionID string) error {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	if phone == "" {
		return s.reject(ErrPhoneRequired)
	}
	if code == "" {
		return s.reject(ErrCodeRequired)
	}
	if sessionID == "" {
		s.mu.Lock()
		sessionID = s.phoneSession
		s.mu.Unlock()
	}
	if sessionID == "" {
		return s.reject(ErrPhoneSessionRequired)
	}

	s.beginLoading()
	resp, err := s.api.VerifyPhoneCode(ctx, phone, code, sessionID)
	s.endLoading()
	if err != nil {
		s.setError(apiclient.UserMessage(err))
		return err
	}

	s.mu.Lock()
	s.phoneSession = ""
	s.mu.Unlock()

	return s.establishSession(ctx, resp.Token, sessionHints{
		UserID: resp.UserID,
		Role:   resp.Role,
		Name:   resp.FullName,
	})
}

// establishSession adopts token only once it is accepted. A rejected token
// leaves the current session and the client's token as they were.
func (s *Store) establishSession(ctx context.Context, token string, hints sessionHints) error {
	session, ok := sessionFromToken(token, hints, s.now())
	if !ok {
		s.setError(apiclient.MsgInvalidResponse)
		return apiclient.ErrInvalidResponse
	}

	s.api.SetToken(token)

	s.mu.Lock()
	s.session = session
	s.persistTokenLocked(token)
	s.unlockAndNotify()

	s.refreshAfterLogin(ctx)
	return nil
}

// refreshAfterLogin reloads the server-held state of a new session. Failures
// land in the error slot; the session stays.
func (s *Store) refreshAfterLogin(ctx context.Context) {
	if err := s.LoadWishlist(ctx); err != nil {
		log.Printf("Failed to load wishlist after login: %v", err)
	}
	if err := s.LoadOrders(ctx); err != nil {
		log.Printf("Failed to load orders after login: %v", err)
	}
}

// Logout ends the session and forfeits the cart: cart, wishlist mirror and
// order history are cleared locally and in storage, and navigation returns
// home. No API call is made.
func (s *Store) Logout() {
	s.api.ClearAuth()

	s.mu.Lock()
	s.session = Session{}
	s.phoneSession = ""
	s.cart = nil
	s.wishlist = nil
	s.orders = nil
	s.setPageLocked(navigation.PageHome)
	s.persistTokenLocked("")
	s.persistCartLocked()
	s.persistWishlistLocked()
	s.unlockAndNotify()
}

// handleUnauthorized runs when the API rejects the bearer token. The session
// and server-held mirrors go; the cart and current page stay.
func (s *Store) handleUnauthorized() {
	s.mu.Lock()
	s.session = Session{}
	s.wishlist = nil
	s.orders = nil
	s.errMsg = apiclient.MsgAuthRequired
	s.persistTokenLocked("")
	s.persistWishlistLocked()
	s.unlockAndNotify()
}
