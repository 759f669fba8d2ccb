package command

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/iothub/storefront/internal/otp/domain"
)

// VerifyOTPCommand represents the command to check a submitted code
type VerifyOTPCommand struct {
	Phone string
	Code  string
}

// VerifyOTPHandler handles OTP verification
type VerifyOTPHandler struct {
	repo domain.VerificationRepository
	now  func() time.Time
}

// NewVerifyOTPHandler creates a new verify OTP handler
func NewVerifyOTPHandler(repo domain.VerificationRepository) *VerifyOTPHandler {
	return &VerifyOTPHandler{repo: repo, now: time.Now}
}

// Handle executes the verify OTP command. Codes are single-use and
// burned after too many wrong guesses.
func (h *VerifyOTPHandler) Handle(cmd VerifyOTPCommand) error {
	if len(cmd.Code) != domain.CodeLength {
		return fmt.Errorf("code must be %d digits", domain.CodeLength)
	}
	for _, c := range cmd.Code {
		if c < '0' || c > '9' {
			return fmt.Errorf("code must be numeric")
		}
	}

	v, err := h.repo.FindLatestByPhone(cmd.Phone)
	if err != nil {
		return fmt.Errorf("no pending verification")
	}

	if v.Verified {
		return fmt.Errorf("code already used")
	}
	if v.IsExpired(h.now()) {
		return fmt.Errorf("code expired")
	}
	if v.Attempts >= domain.MaxAttempts {
		return fmt.Errorf("too many attempts")
	}

	if subtle.ConstantTimeCompare([]byte(v.Code), []byte(cmd.Code)) != 1 {
		v.Attempts++
		_ = h.repo.Update(v)
		return fmt.Errorf("invalid code")
	}

	v.Verified = true
	if err := h.repo.Update(v); err != nil {
		return err
	}
	return nil
}
