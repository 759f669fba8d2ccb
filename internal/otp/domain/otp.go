package domain

import "time"

// Verification is one issued OTP for phone possession checks
type Verification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Phone     string    `json:"phone" gorm:"not null;index"`
	Code      string    `json:"-" gorm:"not null"`
	Attempts  int       `json:"attempts" gorm:"default:0"`
	Verified  bool      `json:"verified" gorm:"default:false"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Verification) TableName() string {
	return "mobile_otp_verification"
}

// CodeLength is the number of digits in an issued code
const CodeLength = 6

// TTL is how long a code stays valid
const TTL = 10 * time.Minute

// MaxAttempts is the number of wrong guesses before a code is burned
const MaxAttempts = 3

// IsExpired reports whether the code is past its expiry
func (v *Verification) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// VerificationRepository defines the contract for OTP data access
type VerificationRepository interface {
	Create(v *Verification) error
	FindLatestByPhone(phone string) (*Verification, error)
	Update(v *Verification) error
	DeleteByPhone(phone string) error
}
