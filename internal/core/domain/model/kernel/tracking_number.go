package kernel

import (
	"crypto/rand"
	"regexp"

	"parceltrack/internal/pkg/errs"
)

// ErrTrackingNumberIsNotConstructed indicates a zero-value TrackingNumber.
var ErrTrackingNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingNumber must be created via GenerateTrackingNumber or TrackingNumberFromString",
)

var trackingNumberPattern = regexp.MustCompile(`^TRK-\d{6}$`)

// TrackingNumber is the human-presentable secondary identifier of a parcel,
// in the form TRK-NNNNNN. The six-digit space is small enough that collisions
// are possible; uniqueness is enforced by the store and creation retries on
// conflict.
//
// TrackingNumber is an immutable value object. The zero value is invalid.
type TrackingNumber struct {
	value string
}

// GenerateTrackingNumber produces a random tracking number TRK-NNNNNN.
// Randomness comes from crypto/rand; like uuid.New, it panics if the
// platform's entropy source fails.
func GenerateTrackingNumber() TrackingNumber {
	return TrackingNumber{value: "TRK-" + randomDigits(6)}
}

// TrackingNumberFromString parses and validates a tracking number, typically
// from a lookup path parameter or a persisted record.
func TrackingNumberFromString(s string) (TrackingNumber, error) {
	if s == "" {
		return TrackingNumber{}, errs.NewValueIsRequiredError("trackingNumber")
	}
	if !trackingNumberPattern.MatchString(s) {
		return TrackingNumber{}, errs.NewValueIsInvalidError("trackingNumber")
	}
	return TrackingNumber{value: s}, nil
}

// String returns the tracking number in its wire form, e.g. "TRK-482913".
func (t TrackingNumber) String() string {
	return t.value
}

// IsEqual compares two tracking numbers for equality.
func (t TrackingNumber) IsEqual(other TrackingNumber) bool {
	return t.value == other.value
}

// Validate checks the tracking number was properly constructed.
func (t TrackingNumber) Validate() error {
	if t.value == "" {
		return ErrTrackingNumberIsNotConstructed
	}
	return nil
}

const digits = "0123456789"

func randomDigits(n int) string {
	// Bytes at or above the largest multiple of len(digits) would skew the
	// low digits, so they are redrawn.
	limit := byte(256 - 256%len(digits))
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}
		for _, b := range buf {
			if b >= limit || len(out) == n {
				continue
			}
			out = append(out, digits[int(b)%len(digits)])
		}
	}
	return string(out)
}
