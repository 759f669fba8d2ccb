package command

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/iothub/storefront/internal/otp/domain"
	"github.com/iothub/storefront/kafka"
	"github.com/iothub/storefront/pkg/logger"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// RequestOTPCommand represents the command to issue a verification code
type RequestOTPCommand struct {
	Phone string
}

// RequestOTPHandler handles OTP issuance
type RequestOTPHandler struct {
	repo      domain.VerificationRepository
	publisher *kafka.Publisher
	now       func() time.Time
}

// NewRequestOTPHandler creates a new request OTP handler. publisher may
// be nil when Kafka is disabled.
func NewRequestOTPHandler(repo domain.VerificationRepository, publisher *kafka.Publisher) *RequestOTPHandler {
	return &RequestOTPHandler{repo: repo, publisher: publisher, now: time.Now}
}

// Handle executes the request OTP command. Prior codes for the phone
// are invalidated; delivery is handed off over Kafka.
func (h *RequestOTPHandler) Handle(ctx context.Context, cmd RequestOTPCommand) (*domain.Verification, error) {
	if !phonePattern.MatchString(cmd.Phone) {
		return nil, fmt.Errorf("invalid phone number")
	}

	code, err := generateCode(domain.CodeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	if err := h.repo.DeleteByPhone(cmd.Phone); err != nil {
		return nil, err
	}

	v := &domain.Verification{
		Phone:     cmd.Phone,
		Code:      code,
		ExpiresAt: h.now().Add(domain.TTL),
	}
	if err := h.repo.Create(v); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		err := h.publisher.PublishOTPRequested(ctx, kafka.OTPRequestedEvent{
			Phone:     v.Phone,
			Code:      v.Code,
			ExpiresAt: v.ExpiresAt,
		})
		if err != nil {
			logger.Warn(ctx).Err(err).Str("phone", v.Phone).Msg("Failed to publish OTP event")
		}
	}

	return v, nil
}

func generateCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}
