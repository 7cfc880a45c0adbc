package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/localmart/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) SendPhoneOTP(ctx context.Context, phoneNumber string) (string, error) {
	args := m.Called(ctx, phoneNumber)
	return args.String(0), args.Error(1)
}
func (m *mockAuthSvc) VerifyPhoneOTP(ctx context.Context, phoneNumber, code string) (string, error) {
	args := m.Called(ctx, phoneNumber, code)
	return args.String(0), args.Error(1)
}
func (m *mockAuthSvc) SendEmailOTP(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
func (m *mockAuthSvc) VerifyEmailOTP(ctx context.Context, email, code string) (string, error) {
	args := m.Called(ctx, email, code)
	return args.String(0), args.Error(1)
}
func (m *mockAuthSvc) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if u, _ := args.Get(1).(*domain.User); u != nil {
		return args.String(0), u, args.Error(2)
	}
	return args.String(0), nil, args.Error(2)
}

// --- SendPhoneOTP ---

func TestSendPhoneOTP_MissingPhone(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{}, false)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/send-phone-otp", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()
	h.SendPhoneOTP(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSendPhoneOTP_EchoEnabled_ReturnsCode(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SendPhoneOTP", mock.Anything, "+15551234567").Return("123456", nil)
	h := NewAuthHandler(svc, true)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/send-phone-otp",
		bytes.NewBufferString(`{"phoneNumber":"+15551234567"}`))
	rr := httptest.NewRecorder()
	h.SendPhoneOTP(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp OTPEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "123456", resp.OTP)
}

func TestSendPhoneOTP_EchoDisabled_OmitsCode(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SendPhoneOTP", mock.Anything, "+15551234567").Return("123456", nil)
	h := NewAuthHandler(svc, false)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/send-phone-otp",
		bytes.NewBufferString(`{"phoneNumber":"+15551234567"}`))
	rr := httptest.NewRecorder()
	h.SendPhoneOTP(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	_, hasOTP := resp["otp"]
	assert.False(t, hasOTP)
}

// --- VerifyPhoneOTP ---

func TestVerifyPhoneOTP_MissingFields(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{}, false)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/verify-phone-otp",
		bytes.NewBufferString(`{"phoneNumber":"+15551234567"}`))
	rr := httptest.NewRecorder()
	h.VerifyPhoneOTP(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVerifyPhoneOTP_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyPhoneOTP", mock.Anything, "+15551234567", "123456").Return("tok", nil)
	h := NewAuthHandler(svc, false)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/verify-phone-otp",
		bytes.NewBufferString(`{"phoneNumber":"+15551234567","otp":"123456"}`))
	rr := httptest.NewRecorder()
	h.VerifyPhoneOTP(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp VerifyEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "tok", resp.Token)
}

func TestVerifyPhoneOTP_Expired_Returns400(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyPhoneOTP", mock.Anything, "+15551234567", "123456").
		Return("", fmt.Errorf("OTP expired: %w", domain.ErrExpired))
	h := NewAuthHandler(svc, false)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/verify-phone-otp",
		bytes.NewBufferString(`{"phoneNumber":"+15551234567","otp":"123456"}`))
	rr := httptest.NewRecorder()
	h.VerifyPhoneOTP(rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Contains(t, resp["error"], "expired")
}

func TestVerifyPhoneOTP_NoRecord_Returns404(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyPhoneOTP", mock.Anything, "+15551234567", "123456").
		Return("", fmt.Errorf("no OTP issued or already consumed: %w", domain.ErrNotFound))
	h := NewAuthHandler(svc, false)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/verify-phone-otp",
		bytes.NewBufferString(`{"phoneNumber":"+15551234567","otp":"123456"}`))
	rr := httptest.NewRecorder()
	h.VerifyPhoneOTP(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// --- Login ---

func TestLogin_MissingFields(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{}, false)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"email":"a@b.com"}`))
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogin_BadCredentials_Returns401(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, "a@b.com", "wrong").
		Return("", nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized))
	h := NewAuthHandler(svc, false)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"email":"a@b.com","password":"wrong"}`))
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogin_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, "a@b.com", "hunter2hunter2").
		Return("tok", &domain.User{UserID: "u1", Email: "a@b.com"}, nil)
	h := NewAuthHandler(svc, false)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"email":"a@b.com","password":"hunter2hunter2"}`))
	rr := httptest.NewRecorder()
	h.Login(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "u1", resp.User.UserID)
}
