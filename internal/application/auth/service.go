package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/localmart/api/internal/domain"
	"github.com/localmart/api/internal/infrastructure/smtp"
	"github.com/localmart/api/internal/infrastructure/sns"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	// SendPhoneOTP issues a code for the phone number and returns it so the
	// handler can echo it in development mode.
	SendPhoneOTP(ctx context.Context, phoneNumber string) (string, error)
	// VerifyPhoneOTP consumes the code. When a profile with that mobile
	// number exists, a signed session token is returned as well.
	VerifyPhoneOTP(ctx context.Context, phoneNumber, code string) (token string, err error)
	SendEmailOTP(ctx context.Context, email string) (string, error)
	VerifyEmailOTP(ctx context.Context, email, code string) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
}

type otpStore interface {
	Put(ctx context.Context, o *domain.OTP) error
	Get(ctx context.Context, key, channel string) (*domain.OTP, error)
	Delete(ctx context.Context, key, channel string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.User, error)
}

type tokenSigner interface {
	Sign(userID, role string) (string, error)
}

type ServiceDeps struct {
	OTPRepo   otpStore
	UserRepo  userStore
	Mailer    smtp.Mailer
	SMSSender sns.SMSSender
	Signer    tokenSigner
	OTPTTL    time.Duration
}

type service struct {
	otpRepo  otpStore
	userRepo userStore
	mailer   smtp.Mailer
	sms      sns.SMSSender
	signer   tokenSigner
	otpTTL   time.Duration
}

func NewService(deps ServiceDeps) Service {
	ttl := deps.OTPTTL
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	return &service{
		otpRepo:  deps.OTPRepo,
		userRepo: deps.UserRepo,
		mailer:   deps.Mailer,
		sms:      deps.SMSSender,
		signer:   deps.Signer,
		otpTTL:   ttl,
	}
}

func (s *service) SendPhoneOTP(ctx context.Context, phoneNumber string) (string, error) {
	code, err := s.issue(ctx, phoneNumber, domain.ChannelPhone)
	if err != nil {
		return "", err
	}
	if s.sms == nil {
		slog.Warn("SMS sender not configured, skipping delivery", "key", phoneNumber)
		return code, nil
	}
	if err := s.sms.SendSMS(ctx, phoneNumber, "Your LocalMart verification code: "+code); err != nil {
		return "", err
	}
	return code, nil
}

func (s *service) VerifyPhoneOTP(ctx context.Context, phoneNumber, code string) (string, error) {
	if err := s.verify(ctx, phoneNumber, domain.ChannelPhone, code); err != nil {
		return "", err
	}
	// Verified phone doubles as a login when a profile carries that number.
	// No profile is fine; a store failure is not.
	u, err := s.userRepo.GetByMobile(ctx, phoneNumber)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.signFor(u), nil
}

func (s *service) SendEmailOTP(ctx context.Context, email string) (string, error) {
	code, err := s.issue(ctx, email, domain.ChannelEmail)
	if err != nil {
		return "", err
	}
	if s.mailer == nil {
		slog.Warn("mailer not configured, skipping delivery", "key", email)
		return code, nil
	}
	if err := s.mailer.SendEmail(email, "Your LocalMart verification code", "Your verification code: "+code); err != nil {
		return "", err
	}
	return code, nil
}

func (s *service) VerifyEmailOTP(ctx context.Context, email, code string) (string, error) {
	if err := s.verify(ctx, email, domain.ChannelEmail, code); err != nil {
		return "", err
	}
	u, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.signFor(u), nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	return s.signFor(u), u, nil
}

// issue writes a fresh code for (key, channel), overwriting any outstanding
// one. A single code per key at a time, last write wins.
func (s *service) issue(ctx context.Context, key, channel string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	now := time.Now()
	o := &domain.OTP{
		Key:       key,
		Channel:   channel,
		Code:      code,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(s.otpTTL).Unix(),
	}
	if err := s.otpRepo.Put(ctx, o); err != nil {
		return "", err
	}
	return code, nil
}

// verify walks the record through its states: absent, expired, mismatch, match.
// Expiry is checked before equality, so an expired-but-correct code fails as
// expired. A mismatch leaves the record intact so the caller can retry.
func (s *service) verify(ctx context.Context, key, channel, code string) error {
	o, err := s.otpRepo.Get(ctx, key, channel)
	if err != nil {
		return fmt.Errorf("no OTP issued or already consumed: %w", domain.ErrNotFound)
	}
	if o.ExpiresAt < time.Now().Unix() {
		if err := s.otpRepo.Delete(ctx, key, channel); err != nil {
			slog.Warn("failed to delete expired OTP", "key", key, "channel", channel, "err", err)
		}
		return fmt.Errorf("OTP expired: %w", domain.ErrExpired)
	}
	if o.Code != code {
		return fmt.Errorf("invalid code: %w", domain.ErrMismatch)
	}
	if err := s.otpRepo.Delete(ctx, key, channel); err != nil {
		slog.Warn("failed to delete consumed OTP", "key", key, "channel", channel, "err", err)
	}
	return nil
}

func (s *service) signFor(u *domain.User) string {
	if s.signer == nil {
		slog.Warn("token signer not configured, session token omitted", "user_id", u.UserID)
		return ""
	}
	token, err := s.signer.Sign(u.UserID, u.Role)
	if err != nil {
		slog.Warn("failed to sign session token", "user_id", u.UserID, "err", err)
		return ""
	}
	return token
}

// generateCode draws a uniform random 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
