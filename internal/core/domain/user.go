package domain

import (
	"fmt"
	"time"
)

// VerificationLevel is the identity-proofing tier a user has completed.
type VerificationLevel string

const (
	VerificationUnverified VerificationLevel = "unverified"
	VerificationPhone      VerificationLevel = "phone"
	VerificationNINBVN     VerificationLevel = "nin_bvn"
	VerificationVideo      VerificationLevel = "video"
	VerificationBiometric  VerificationLevel = "biometric"
)

// VerificationReward is added to a user's trust score on every verification call.
const VerificationReward = 100

var verificationOrder = []VerificationLevel{
	VerificationUnverified,
	VerificationPhone,
	VerificationNINBVN,
	VerificationVideo,
	VerificationBiometric,
}

// ParseVerificationLevel validates a level received from a client.
func ParseVerificationLevel(s string) (VerificationLevel, error) {
	for _, l := range verificationOrder {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: unknown verification level %q", ErrValidation, s)
}

// Rank returns the position of the level in the ordered progression, or -1.
func (l VerificationLevel) Rank() int {
	for i, v := range verificationOrder {
		if v == l {
			return i
		}
	}
	return -1
}

// User is a tenant or landlord account.
type User struct {
	ID                string            `json:"id" yaml:"id"`
	Name              string            `json:"name" yaml:"name"`
	Email             string            `json:"email" yaml:"email"`
	Phone             string            `json:"phone" yaml:"phone"`
	VerificationLevel VerificationLevel `json:"verification_level" yaml:"verification_level"`
	TrustScore        int               `json:"trust_score" yaml:"trust_score"`
	CreatedAt         time.Time         `json:"created_at" yaml:"created_at"`
}

// Verify sets the level and applies the trust reward. Trust never decreases.
func (u *User) Verify(level VerificationLevel) {
	u.VerificationLevel = level
	u.TrustScore += VerificationReward
}
