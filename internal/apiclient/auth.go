package apiclient

import (
	"context"
	"net/http"

	"parampara-storefront/internal/models"
)

// Login exchanges credentials for a bearer token. The token is not adopted
// here; callers decide whether to SetToken it.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, request{
		method:     http.MethodPost,
		path:       "/auth/login",
		body:       models.LoginRequest{Email: email, Password: password},
		credential: true,
		classify:   classifyLogin,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// Register creates an account. The API answers with a plain-text message
// rather than a token.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	body, err := c.send(ctx, request{
		method:     http.MethodPost,
		path:       "/auth/register",
		body:       req,
		credential: true,
		classify:   classifyRegister,
	})
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) GoogleAuth(ctx context.Context, req models.GoogleAuthRequest) (*models.GoogleAuthResponse, error) {
	var resp models.GoogleAuthResponse
	err := c.do(ctx, request{
		method:     http.MethodPost,
		path:       "/auth/google",
		body:       req,
		credential: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) SendPhoneVerificationCode(ctx context.Context, phoneNumber string) (*models.PhoneVerificationResponse, error) {
	var resp models.PhoneVerificationResponse
	err := c.do(ctx, request{
		method:     http.MethodPost,
		path:       "/auth/phone/send-code",
		body:       models.PhoneSendCodeRequest{PhoneNumber: phoneNumber},
		credential: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) VerifyPhoneCode(ctx context.Context, phoneNumber, code, sessionID string) (*models.PhoneAuthResponse, error) {
	var resp models.PhoneAuthResponse
	err := c.do(ctx, request{
		method:     http.MethodPost,
		path:       "/auth/phone/verify",
		body:       models.PhoneVerifyRequest{PhoneNumber: phoneNumber, VerificationCode: code},
		headers:    map[string]string{"X-Session-Id": sessionID},
		credential: true,
		classify:   classifyPhoneVerify,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}
