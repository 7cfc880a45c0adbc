package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/localmart/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockOTPStore struct{ mock.Mock }

func (m *mockOTPStore) Put(ctx context.Context, o *domain.OTP) error {
	return m.Called(ctx, o).Error(0)
}
func (m *mockOTPStore) Get(ctx context.Context, key, channel string) (*domain.OTP, error) {
	args := m.Called(ctx, key, channel)
	if o, _ := args.Get(0).(*domain.OTP); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOTPStore) Delete(ctx context.Context, key, channel string) error {
	return m.Called(ctx, key, channel).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	args := m.Called(ctx, mobile)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, phone, msg string) error {
	return m.Called(ctx, phone, msg).Error(0)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

// --- builder ---

func newService(os *mockOTPStore, us *mockUserStore, ml *mockMailer, sms *mockSMSSender, signer *mockSigner) Service {
	deps := ServiceDeps{
		OTPRepo:  os,
		UserRepo: us,
		OTPTTL:   10 * time.Minute,
	}
	if ml != nil {
		deps.Mailer = ml
	}
	if sms != nil {
		deps.SMSSender = sms
	}
	if signer != nil {
		deps.Signer = signer
	}
	return NewService(deps)
}

// --- SendPhoneOTP ---

func TestSendPhoneOTP_IssuesAndDelivers(t *testing.T) {
	os := &mockOTPStore{}
	sms := &mockSMSSender{}
	os.On("Put", mock.Anything, mock.AnythingOfType("*domain.OTP")).Return(nil)
	sms.On("SendSMS", mock.Anything, "+15551234567", mock.Anything).Return(nil)

	svc := newService(os, nil, nil, sms, nil)
	code, err := svc.SendPhoneOTP(context.Background(), "+15551234567")

	require.NoError(t, err)
	assert.Len(t, code, 6)
	os.AssertExpectations(t)
	sms.AssertExpectations(t)

	stored := os.Calls[0].Arguments.Get(1).(*domain.OTP)
	assert.Equal(t, "+15551234567", stored.Key)
	assert.Equal(t, domain.ChannelPhone, stored.Channel)
	assert.Equal(t, code, stored.Code)
	assert.Greater(t, stored.ExpiresAt, time.Now().Unix())
}

func TestSendPhoneOTP_NoSender_StillIssues(t *testing.T) {
	os := &mockOTPStore{}
	os.On("Put", mock.Anything, mock.AnythingOfType("*domain.OTP")).Return(nil)

	svc := newService(os, nil, nil, nil, nil)
	code, err := svc.SendPhoneOTP(context.Background(), "+15551234567")

	require.NoError(t, err)
	assert.Len(t, code, 6)
}

func TestSendPhoneOTP_ReissueOverwrites(t *testing.T) {
	os := &mockOTPStore{}
	os.On("Put", mock.Anything, mock.AnythingOfType("*domain.OTP")).Return(nil).Twice()

	svc := newService(os, nil, nil, nil, nil)
	_, err := svc.SendPhoneOTP(context.Background(), "+15551234567")
	require.NoError(t, err)
	code2, err := svc.SendPhoneOTP(context.Background(), "+15551234567")
	require.NoError(t, err)

	// Both writes target the same key; the store keeps only the second code.
	os.AssertExpectations(t)
	first := os.Calls[0].Arguments.Get(1).(*domain.OTP)
	second := os.Calls[1].Arguments.Get(1).(*domain.OTP)
	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, first.Channel, second.Channel)
	assert.Equal(t, code2, second.Code)
}

// --- VerifyPhoneOTP ---

func TestVerifyPhoneOTP_Match_ConsumesRecord(t *testing.T) {
	os := &mockOTPStore{}
	us := &mockUserStore{}
	os.On("Get", mock.Anything, "+15551234567", domain.ChannelPhone).Return(&domain.OTP{
		Key:       "+15551234567",
		Channel:   domain.ChannelPhone,
		Code:      "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
	}, nil)
	os.On("Delete", mock.Anything, "+15551234567", domain.ChannelPhone).Return(nil)
	us.On("GetByMobile", mock.Anything, "+15551234567").Return(nil, domain.ErrNotFound)

	svc := newService(os, us, nil, nil, nil)
	token, err := svc.VerifyPhoneOTP(context.Background(), "+15551234567", "123456")

	require.NoError(t, err)
	assert.Empty(t, token)
	os.AssertExpectations(t)
}

func TestVerifyPhoneOTP_NoRecord_ReturnsNotFound(t *testing.T) {
	os := &mockOTPStore{}
	os.On("Get", mock.Anything, "+15551234567", domain.ChannelPhone).Return(nil, domain.ErrNotFound)

	svc := newService(os, nil, nil, nil, nil)
	_, err := svc.VerifyPhoneOTP(context.Background(), "+15551234567", "123456")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestVerifyPhoneOTP_SecondVerifyFails(t *testing.T) {
	os := &mockOTPStore{}
	us := &mockUserStore{}
	os.On("Get", mock.Anything, "+15551234567", domain.ChannelPhone).Return(&domain.OTP{
		Key:       "+15551234567",
		Channel:   domain.ChannelPhone,
		Code:      "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
	}, nil).Once()
	os.On("Delete", mock.Anything, "+15551234567", domain.ChannelPhone).Return(nil).Once()
	os.On("Get", mock.Anything, "+15551234567", domain.ChannelPhone).Return(nil, domain.ErrNotFound).Once()
	us.On("GetByMobile", mock.Anything, "+15551234567").Return(nil, domain.ErrNotFound)

	svc := newService(os, us, nil, nil, nil)
	_, err := svc.VerifyPhoneOTP(context.Background(), "+15551234567", "123456")
	require.NoError(t, err)

	_, err = svc.VerifyPhoneOTP(context.Background(), "+15551234567", "123456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestVerifyPhoneOTP_Mismatch_KeepsRecord(t *testing.T) {
	os := &mockOTPStore{}
	os.On("Get", mock.Anything, "+15551234567", domain.ChannelPhone).Return(&domain.OTP{
		Key:       "+15551234567",
		Channel:   domain.ChannelPhone,
		Code:      "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
	}, nil)

	svc := newService(os, nil, nil, nil, nil)
	_, err := svc.VerifyPhoneOTP(context.Background(), "+15551234567", "999999")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMismatch))
	os.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPhoneOTP_ExpiredCorrectCode_FailsAsExpired(t *testing.T) {
	os := &mockOTPStore{}
	os.On("Get", mock.Anything, "+15551234567", domain.ChannelPhone).Return(&domain.OTP{
		Key:       "+15551234567",
		Channel:   domain.ChannelPhone,
		Code:      "123456",
		ExpiresAt: time.Now().Add(-1 * time.Minute).Unix(),
	}, nil)
	os.On("Delete", mock.Anything, "+15551234567", domain.ChannelPhone).Return(nil)

	svc := newService(os, nil, nil, nil, nil)
	_, err := svc.VerifyPhoneOTP(context.Background(), "+15551234567", "123456")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExpired))
	os.AssertExpectations(t)
}

func TestVerifyPhoneOTP_MatchWithProfile_ReturnsToken(t *testing.T) {
	os := &mockOTPStore{}
	us := &mockUserStore{}
	signer := &mockSigner{}
	os.On("Get", mock.Anything, "+15551234567", domain.ChannelPhone).Return(&domain.OTP{
		Key:       "+15551234567",
		Channel:   domain.ChannelPhone,
		Code:      "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
	}, nil)
	os.On("Delete", mock.Anything, "+15551234567", domain.ChannelPhone).Return(nil)
	us.On("GetByMobile", mock.Anything, "+15551234567").Return(&domain.User{
		UserID: "u1", Role: domain.RoleBuyer,
	}, nil)
	signer.On("Sign", "u1", domain.RoleBuyer).Return("signed-token", nil)

	svc := newService(os, us, nil, nil, signer)
	token, err := svc.VerifyPhoneOTP(context.Background(), "+15551234567", "123456")

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
}

func TestVerifyPhoneOTP_ProfileLookupFailure_Propagates(t *testing.T) {
	os := &mockOTPStore{}
	us := &mockUserStore{}
	os.On("Get", mock.Anything, "+15551234567", domain.ChannelPhone).Return(&domain.OTP{
		Key:       "+15551234567",
		Channel:   domain.ChannelPhone,
		Code:      "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
	}, nil)
	os.On("Delete", mock.Anything, "+15551234567", domain.ChannelPhone).Return(nil)
	us.On("GetByMobile", mock.Anything, "+15551234567").Return(nil, errors.New("throttled"))

	svc := newService(os, us, nil, nil, nil)
	_, err := svc.VerifyPhoneOTP(context.Background(), "+15551234567", "123456")

	// A missing profile is fine, but a store failure must not be mistaken for one.
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

// --- email channel ---

func TestSendEmailOTP_Delivers(t *testing.T) {
	os := &mockOTPStore{}
	ml := &mockMailer{}
	os.On("Put", mock.Anything, mock.AnythingOfType("*domain.OTP")).Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(os, nil, ml, nil, nil)
	code, err := svc.SendEmailOTP(context.Background(), "a@b.com")

	require.NoError(t, err)
	assert.Len(t, code, 6)
	stored := os.Calls[0].Arguments.Get(1).(*domain.OTP)
	assert.Equal(t, domain.ChannelEmail, stored.Channel)
	ml.AssertExpectations(t)
}

func TestVerifyEmailOTP_PhoneChannelCodeDoesNotCross(t *testing.T) {
	os := &mockOTPStore{}
	// Only the phone channel holds a record; the email lookup misses.
	os.On("Get", mock.Anything, "a@b.com", domain.ChannelEmail).Return(nil, domain.ErrNotFound)

	svc := newService(os, nil, nil, nil, nil)
	_, err := svc.VerifyEmailOTP(context.Background(), "a@b.com", "123456")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// --- Login ---

func TestLogin_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	signer := &mockSigner{}
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{
		UserID: "u1", Email: "a@b.com", Role: domain.RoleSeller, PasswordHash: string(hash),
	}, nil)
	signer.On("Sign", "u1", domain.RoleSeller).Return("signed-token", nil)

	svc := newService(nil, us, nil, nil, signer)
	token, user, err := svc.Login(context.Background(), "a@b.com", "hunter2hunter2")

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, "u1", user.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	us := &mockUserStore{}
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{
		UserID: "u1", PasswordHash: string(hash),
	}, nil)

	svc := newService(nil, us, nil, nil, nil)
	_, _, err = svc.Login(context.Background(), "a@b.com", "wrong-password")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_StoreFailure_NotReportedAsBadCredentials(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, errors.New("table missing"))

	svc := newService(nil, us, nil, nil, nil)
	_, _, err := svc.Login(context.Background(), "a@b.com", "whatever")

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_UnknownEmail(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "x@x.com").Return(nil, domain.ErrNotFound)

	svc := newService(nil, us, nil, nil, nil)
	_, _, err := svc.Login(context.Background(), "x@x.com", "whatever")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
