package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"parampara-storefront/internal/models"
	"parampara-storefront/internal/repositories"
	"parampara-storefront/pkg/auth"
	"parampara-storefront/pkg/sms"

	"github.com/google/uuid"
)

const (
	otpTTL         = 10 * time.Minute
	maxOTPAttempts = 5
)

type OTPService struct {
	verifications repositories.PhoneVerificationRepository
	userRepo      repositories.UserRepository
	authService   *AuthService
	sender        sms.Sender
	now           func() time.Time
}

func NewOTPService(verifications repositories.PhoneVerificationRepository, userRepo repositories.UserRepository, authService *AuthService, sender sms.Sender) *OTPService {
	return &OTPService{
		verifications: verifications,
		userRepo:      userRepo,
		authService:   authService,
		sender:        sender,
		now:           time.Now,
	}
}

// generateOTP generates a 6-digit OTP
func generateOTP() (string, error) {
	max := big.NewInt(999999)
	min := big.NewInt(100000)

	n, err := rand.Int(rand.Reader, new(big.Int).Sub(max, min))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", new(big.Int).Add(n, min).Int64()), nil
}

// normalizePhone strips spaces and dashes and checks what is left is 10 to 15
// digits with an optional leading '+'.
func normalizePhone(phone string) (string, error) {
	phone = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < 10 || len(digits) > 15 {
		return "", ErrInvalidPhone
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}
	return phone, nil
}

// SendCode stores a fresh code under a new session id and texts it to phone.
func (s *OTPService) SendCode(ctx context.Context, phone string) (*models.PhoneVerificationResponse, error) {
	phone, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}

	code, err := generateOTP()
	if err != nil {
		return nil, errors.New("failed to generate OTP")
	}

	verification := &models.PhoneVerification{
		SessionID:   uuid.New().String(),
		PhoneNumber: phone,
		Code:        code,
		ExpiresAt:   s.now().Add(otpTTL),
	}
	if err := s.verifications.Create(ctx, verification); err != nil {
		return nil, fmt.Errorf("failed to save OTP: %w", err)
	}

	if err := s.sender.SendOTP(ctx, phone, code); err != nil {
		// the code stays valid; the user can ask again
		log.Printf("Failed to send SMS: %v", err)
	}

	return &models.PhoneVerificationResponse{
		Success:   true,
		Message:   "Verification code sent",
		SessionID: verification.SessionID,
	}, nil
}

// Verify checks code against the session and signs the phone's owner in,
// creating an account on first use. A code verifies once.
func (s *OTPService) Verify(ctx context.Context, phone, code, sessionID string) (*models.PhoneAuthResponse, error) {
	phone, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}

	verification, err := s.verifications.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	if verification.IsUsed || verification.PhoneNumber != phone {
		return nil, ErrInvalidCode
	}
	if s.now().After(verification.ExpiresAt) {
		return nil, ErrCodeExpired
	}
	if verification.AttemptCount >= maxOTPAttempts {
		return nil, ErrTooManyAttempts
	}
	if verification.Code != strings.TrimSpace(code) {
		if err := s.verifications.IncrementAttempt(ctx, verification.ID); err != nil {
			log.Printf("Failed to record OTP attempt: %v", err)
		}
		return nil, ErrInvalidCode
	}

	if err := s.verifications.MarkUsed(ctx, verification.ID); err != nil {
		return nil, fmt.Errorf("failed to invalidate OTP: %w", err)
	}

	isNewUser := false
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if errors.Is(err, repositories.ErrNotFound) {
		isNewUser = true
		user = &models.UserRecord{
			ID:           uuid.New().String(),
			PhoneNumber:  phone,
			FullName:     fmt.Sprintf("User %s", phone[len(phone)-4:]),
			AuthProvider: models.AuthProviderPhone,
			Role:         auth.RoleUser,
		}
		err = s.userRepo.Create(ctx, user)
	}
	if err != nil {
		return nil, err
	}

	token, expiration, err := s.authService.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &models.PhoneAuthResponse{
		Token:        token,
		Expiration:   expiration,
		UserID:       user.ID,
		PhoneNumber:  user.PhoneNumber,
		FullName:     user.FullName,
		Role:         user.Role,
		AuthProvider: user.AuthProvider,
		IsNewUser:    isNewUser,
	}, nil
}

// CleanupExpired removes used and expired verification sessions.
func (s *OTPService) CleanupExpired(ctx context.Context) error {
	return s.verifications.DeleteExpired(ctx, s.now())
}
