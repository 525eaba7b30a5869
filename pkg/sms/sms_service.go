package sms

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Sender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// SMSService delivers messages through an HTTP gateway that takes the API key,
// sender id, number and message as query parameters.
type SMSService struct {
	apiKey     string
	senderID   string
	baseURL    string
	httpClient *http.Client
}

func NewSMSService(apiKey, senderID, baseURL string) *SMSService {
	return &SMSService{
		apiKey:     apiKey,
		senderID:   senderID,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func OTPMessage(code string) string {
	return fmt.Sprintf("Your Parampara Foods verification code is: %s. This code will expire in 10 minutes.", code)
}

func (s *SMSService) SendOTP(ctx context.Context, phone, code string) error {
	return s.SendMessage(ctx, phone, OTPMessage(code))
}

func (s *SMSService) SendMessage(ctx context.Context, phone, message string) error {
	params := url.Values{}
	params.Add("apikey", s.apiKey)
	params.Add("senderid", s.senderID)
	params.Add("number", phone)
	params.Add("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read SMS response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && !strings.Contains(strings.ToLower(string(body)), "success") {
		return fmt.Errorf("SMS sending failed: %s", string(body))
	}

	return nil
}

// LogSender prints codes to the log instead of sending them. Development only.
type LogSender struct{}

func (LogSender) SendOTP(ctx context.Context, phone, code string) error {
	log.Printf("SMS to %s: %s", phone, OTPMessage(code))
	return nil
}
