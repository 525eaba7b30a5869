package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendOTP(t *testing.T) {
	var query map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		query = map[string]string{
			"apikey":   q.Get("apikey"),
			"senderid": q.Get("senderid"),
			"number":   q.Get("number"),
			"message":  q.Get("message"),
		}
		w.Write([]byte("success"))
	}))
	defer server.Close()

	svc := NewSMSService("key", "PARAMP", server.URL)
	require.NoError(t, svc.SendOTP(context.Background(), "9876543210", "123456"))

	assert.Equal(t, "key", query["apikey"])
	assert.Equal(t, "PARAMP", query["senderid"])
	assert.Equal(t, "9876543210", query["number"])
	assert.Equal(t, OTPMessage("123456"), query["message"])
	assert.Contains(t, query["message"], "123456")
}

func TestSendOTPGatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("quota exceeded"))
	}))
	defer server.Close()

	err := NewSMSService("key", "PARAMP", server.URL).SendOTP(context.Background(), "9876543210", "123456")
	assert.EqualError(t, err, "SMS sending failed: quota exceeded")
}
