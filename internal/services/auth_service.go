package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"parampara-storefront/internal/models"
	"parampara-storefront/internal/repositories"
	"parampara-storefront/pkg/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type AuthService struct {
	userRepo   repositories.UserRepository
	jwtManager *auth.JWTManager
}

func NewAuthService(userRepo repositories.UserRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Register creates a local account with the User role and returns the
// confirmation text sent back to the client.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (string, error) {
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return "", err
	}
	if existing != nil {
		return "", ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	// self-service accounts are always customers
	user := &models.UserRecord{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		Address:      strings.TrimSpace(req.Address),
		PasswordHash: string(hashedPassword),
		AuthProvider: models.AuthProviderLocal,
		Role:         auth.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return "User registered successfully!", nil
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiration, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, Expiration: expiration}, nil
}

// GoogleAuth signs in with a Google profile. The account is matched by
// Google id, then by email (linking it), and created when neither exists.
func (s *AuthService) GoogleAuth(ctx context.Context, req *models.GoogleAuthRequest) (*models.GoogleAuthResponse, error) {
	user, err := s.userRepo.GetByGoogleID(ctx, req.GoogleID)
	if errors.Is(err, repositories.ErrNotFound) {
		user, err = s.userRepo.GetByEmail(ctx, req.Email)
		if err == nil {
			user.GoogleID = req.GoogleID
			if user.PictureURL == "" {
				user.PictureURL = req.Picture
			}
			err = s.userRepo.Update(ctx, user)
		}
	}
	if errors.Is(err, repositories.ErrNotFound) {
		user = &models.UserRecord{
			ID:           uuid.New().String(),
			Email:        req.Email,
			FullName:     req.Name,
			GoogleID:     req.GoogleID,
			PictureURL:   req.Picture,
			AuthProvider: models.AuthProviderGoogle,
			Role:         auth.RoleUser,
		}
		err = s.userRepo.Create(ctx, user)
	}
	if err != nil {
		return nil, err
	}

	token, expiration, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &models.GoogleAuthResponse{
		Token:        token,
		Expiration:   expiration,
		UserID:       user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		Role:         user.Role,
		AuthProvider: user.AuthProvider,
	}, nil
}

// IssueToken signs a bearer token carrying the user's id, email, name and role.
func (s *AuthService) IssueToken(user *models.UserRecord) (string, time.Time, error) {
	return s.jwtManager.GenerateToken(user.ID, user.Email, user.FullName, user.Role)
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// EnsureAdmin creates the admin account if no user has the email yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role != auth.RoleAdmin {
			log.Printf("Seed admin %s exists without the %s role", email, auth.RoleAdmin)
		}
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.UserRecord{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     "Administrator",
		PasswordHash: string(hashedPassword),
		AuthProvider: models.AuthProviderLocal,
		Role:         auth.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("Seeded admin account %s", email)
	return nil
}
