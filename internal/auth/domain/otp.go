package domain

import "time"

// OtpCode is the single live one-time code for an email address. A new
// generation overwrites the prior code and timestamps in place; no history
// is retained, so there is at most one live OTP per email at any time.
type OtpCode struct {
	Email     string
	Code      string // 6 digits, left-zero-padded
	UserID    string // empty until a user row exists for the email
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ExpiredAt reports whether the code is past its expiry at the given time.
func (c OtpCode) ExpiredAt(now time.Time) bool { return now.After(c.ExpiresAt) }
