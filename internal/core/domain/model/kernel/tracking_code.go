package kernel

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"

	"dispatch/internal/pkg/errs"
)

// trackingCodePrefix is printed on every parcel label ahead of the random part.
const trackingCodePrefix = "PKG-"

// trackingCodeLength is the length of the random part of a tracking code.
const trackingCodeLength = 12

// trackingCodeAlphabet excludes visually ambiguous characters (0/O, 1/I/L)
// so codes survive being read over the phone or off a crumpled label.
const trackingCodeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

var trackingCodePattern = regexp.MustCompile(
	fmt.Sprintf(`^%s[%s]{%d}$`, trackingCodePrefix, trackingCodeAlphabet, trackingCodeLength),
)

// trackingCodeMaxByte is the largest multiple of the alphabet size that fits
// in a byte. Bytes at or above it are redrawn so every alphabet character is
// equally likely.
const trackingCodeMaxByte = byte(256 / len(trackingCodeAlphabet) * len(trackingCodeAlphabet))

// ErrTrackingCodeIsNotConstructed indicates a TrackingCode that was not
// produced by NewTrackingCode or TrackingCodeFromString.
var ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingCode must be created via NewTrackingCode or TrackingCodeFromString")

// TrackingCode is the external-facing identifier of a parcel. It is unique
// per parcel and is the handle shippers and recipients use to follow a
// shipment; internal identity stays with the parcel UUID.
//
// The zero value is invalid and fails Validate.
type TrackingCode struct {
	value string
}

// NewTrackingCode generates a fresh random tracking code.
// Uniqueness against already issued codes is the persistence layer's concern;
// the 12-character random part makes collisions vanishingly rare.
func NewTrackingCode() (TrackingCode, error) {
	var sb strings.Builder
	sb.WriteString(trackingCodePrefix)
	buf := make([]byte, trackingCodeLength)
	for sb.Len() < len(trackingCodePrefix)+trackingCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return TrackingCode{}, fmt.Errorf("reading entropy for tracking code: %w", err)
		}
		for _, b := range buf {
			if b >= trackingCodeMaxByte {
				continue
			}
			sb.WriteByte(trackingCodeAlphabet[int(b)%len(trackingCodeAlphabet)])
			if sb.Len() == len(trackingCodePrefix)+trackingCodeLength {
				break
			}
		}
	}

	return TrackingCode{value: sb.String()}, nil
}

// TrackingCodeFromString reconstructs a tracking code from its string form.
// Input is upper-cased before validation so hand-typed codes are accepted.
// Returns an error when the string does not match the label format.
func TrackingCodeFromString(s string) (TrackingCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if !trackingCodePattern.MatchString(normalized) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingCode", fmt.Errorf("%q does not match the label format", s))
	}
	return TrackingCode{value: normalized}, nil
}

// String returns the label form of the code, e.g. "PKG-7H2MQ9WDKR4T".
func (c TrackingCode) String() string {
	return c.value
}

// IsEqual compares two tracking codes for equality.
func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

// Validate checks the code was produced by a constructor.
func (c TrackingCode) Validate() error {
	if c.value == "" {
		return ErrTrackingCodeIsNotConstructed
	}
	return nil
}
