package kernel

import (
	"crypto/rand"
	"regexp"

	"parceltrack/internal/pkg/errs"
)

// ErrSessionKeyIsNotConstructed indicates a zero-value SessionKey.
var ErrSessionKeyIsNotConstructed = errs.NewValueIsRequiredError(
	"SessionKey must be created via GenerateSessionKey or SessionKeyFromString",
)

var sessionKeyPattern = regexp.MustCompile(`^[A-Z]\d{5}$`)

// SessionKey is the short human-typeable token that pairs a mobile scanning
// device with a stationary actor's session: one uppercase letter followed by
// five digits, e.g. "K47193". Short enough to read out loud or type on a
// handheld scanner; uniqueness across active sessions is enforced by the
// store with retry on collision.
//
// SessionKey is an immutable value object. The zero value is invalid.
type SessionKey struct {
	value string
}

// GenerateSessionKey produces a random session key. Randomness comes from
// crypto/rand and, like uuid.New, it panics if the entropy source fails.
func GenerateSessionKey() SessionKey {
	return SessionKey{value: randomLetter() + randomDigits(5)}
}

// SessionKeyFromString parses and validates a session key received from a
// client or loaded from persistence.
func SessionKeyFromString(s string) (SessionKey, error) {
	if s == "" {
		return SessionKey{}, errs.NewValueIsRequiredError("sessionKey")
	}
	if !sessionKeyPattern.MatchString(s) {
		return SessionKey{}, errs.NewValueIsInvalidError("sessionKey")
	}
	return SessionKey{value: s}, nil
}

// String returns the session key in its wire form.
func (k SessionKey) String() string {
	return k.value
}

// IsEqual compares two session keys for equality.
func (k SessionKey) IsEqual(other SessionKey) bool {
	return k.value == other.value
}

// Validate checks the session key was properly constructed.
func (k SessionKey) Validate() error {
	if k.value == "" {
		return ErrSessionKeyIsNotConstructed
	}
	return nil
}

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomLetter() string {
	// Bytes at or above the largest multiple of len(letters) would skew the
	// early letters, so they are redrawn.
	limit := byte(256 - 256%len(letters))
	buf := make([]byte, 1)
	for {
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}
		if buf[0] < limit {
			return string(letters[int(buf[0])%len(letters)])
		}
	}
}
