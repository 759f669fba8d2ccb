package command

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iothub/storefront/internal/otp/domain"
)

// fakeVerificationRepository keeps the latest verification per phone
type fakeVerificationRepository struct {
	byPhone map[string]*domain.Verification
}

func newFakeVerificationRepository() *fakeVerificationRepository {
	return &fakeVerificationRepository{byPhone: make(map[string]*domain.Verification)}
}

func (f *fakeVerificationRepository) Create(v *domain.Verification) error {
	f.byPhone[v.Phone] = v
	return nil
}

func (f *fakeVerificationRepository) FindLatestByPhone(phone string) (*domain.Verification, error) {
	v, ok := f.byPhone[phone]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return v, nil
}

func (f *fakeVerificationRepository) Update(v *domain.Verification) error {
	f.byPhone[v.Phone] = v
	return nil
}

func (f *fakeVerificationRepository) DeleteByPhone(phone string) error {
	delete(f.byPhone, phone)
	return nil
}

const testPhone = "+919876543210"

func issueCode(t *testing.T, repo *fakeVerificationRepository) *domain.Verification {
	t.Helper()
	v, err := NewRequestOTPHandler(repo, nil).Handle(context.Background(), RequestOTPCommand{Phone: testPhone})
	require.NoError(t, err)
	return v
}

func TestRequestOTP(t *testing.T) {
	repo := newFakeVerificationRepository()

	v := issueCode(t, repo)

	assert.Len(t, v.Code, domain.CodeLength)
	for _, c := range v.Code {
		assert.True(t, c >= '0' && c <= '9')
	}
	assert.False(t, v.Verified)
	assert.True(t, v.ExpiresAt.After(time.Now()))
}

func TestRequestOTPInvalidPhone(t *testing.T) {
	handler := NewRequestOTPHandler(newFakeVerificationRepository(), nil)

	for _, phone := range []string{"", "12345", "not-a-phone", "+12 345"} {
		_, err := handler.Handle(context.Background(), RequestOTPCommand{Phone: phone})
		assert.Error(t, err, phone)
	}
}

func TestRequestOTPInvalidatesPriorCode(t *testing.T) {
	repo := newFakeVerificationRepository()

	first := issueCode(t, repo)
	second := issueCode(t, repo)

	latest, err := repo.FindLatestByPhone(testPhone)
	require.NoError(t, err)
	assert.Equal(t, second.Code, latest.Code)
	_ = first
}

func TestVerifyOTP(t *testing.T) {
	repo := newFakeVerificationRepository()
	v := issueCode(t, repo)

	err := NewVerifyOTPHandler(repo).Handle(VerifyOTPCommand{Phone: testPhone, Code: v.Code})
	require.NoError(t, err)

	stored, err := repo.FindLatestByPhone(testPhone)
	require.NoError(t, err)
	assert.True(t, stored.Verified)
}

func TestVerifyOTPIsSingleUse(t *testing.T) {
	repo := newFakeVerificationRepository()
	v := issueCode(t, repo)

	handler := NewVerifyOTPHandler(repo)
	require.NoError(t, handler.Handle(VerifyOTPCommand{Phone: testPhone, Code: v.Code}))

	err := handler.Handle(VerifyOTPCommand{Phone: testPhone, Code: v.Code})
	assert.ErrorContains(t, err, "already used")
}

func TestVerifyOTPWrongCodeCountsAttempt(t *testing.T) {
	repo := newFakeVerificationRepository()
	issueCode(t, repo)

	handler := NewVerifyOTPHandler(repo)
	err := handler.Handle(VerifyOTPCommand{Phone: testPhone, Code: "000000"})
	assert.ErrorContains(t, err, "invalid code")

	stored, err := repo.FindLatestByPhone(testPhone)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Attempts)
}

func TestVerifyOTPBurnsAfterMaxAttempts(t *testing.T) {
	repo := newFakeVerificationRepository()
	v := issueCode(t, repo)

	// Guaranteed wrong: codes are digits only
	wrong := "000000"
	if v.Code == wrong {
		wrong = "111111"
	}

	handler := NewVerifyOTPHandler(repo)
	for i := 0; i < domain.MaxAttempts; i++ {
		assert.Error(t, handler.Handle(VerifyOTPCommand{Phone: testPhone, Code: wrong}))
	}

	// Even the right code is rejected now
	err := handler.Handle(VerifyOTPCommand{Phone: testPhone, Code: v.Code})
	assert.ErrorContains(t, err, "too many attempts")
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	repo := newFakeVerificationRepository()
	v := issueCode(t, repo)

	handler := NewVerifyOTPHandler(repo)
	handler.now = func() time.Time { return time.Now().Add(domain.TTL + time.Minute) }

	err := handler.Handle(VerifyOTPCommand{Phone: testPhone, Code: v.Code})
	assert.ErrorContains(t, err, "expired")
}

func TestVerifyOTPValidation(t *testing.T) {
	handler := NewVerifyOTPHandler(newFakeVerificationRepository())

	assert.Error(t, handler.Handle(VerifyOTPCommand{Phone: testPhone, Code: "12345"}))
	assert.Error(t, handler.Handle(VerifyOTPCommand{Phone: testPhone, Code: "12345a"}))
	assert.Error(t, handler.Handle(VerifyOTPCommand{Phone: testPhone, Code: "123456"}), "no pending verification")
}
