package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// codeLength is the fixed length of every security code.
const codeLength = 6

// codeAlphabet excludes visually ambiguous characters (0/O, 1/I/L) so codes
// survive being read off a phone screen at a doorstep.
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// maxGenerationAttempts bounds the retry-on-collision loop. With a 31-char
// alphabet and 6 positions the space holds ~887M codes; exhausting ten
// attempts means the active-code table is pathologically full, which is a
// configuration problem, not something to paper over.
const maxGenerationAttempts = 10

// CodeExistsFunc reports whether a candidate code is already active in the
// column it will be stored in. The lookup must run inside the same
// transaction as the insert it guards, otherwise two concurrent generations
// can both pass the check and collide on commit.
type CodeExistsFunc func(ctx context.Context, code string) (bool, error)

// SecurityCodeGenerator produces the short single-use codes that gate
// mission completion and per-parcel delivery outcomes.
//
// The generator is pure aside from the uniqueness lookup: callers inject a
// CodeExistsFunc bound to their current transaction and the column the code
// targets.
//
// Example:
//
//	gen := services.NewSecurityCodeGenerator()
//	code, err := gen.Generate(ctx, missionRepo.SecurityCodeExists)
//	if errors.Is(err, errs.ErrCodeSpaceExhausted) {
//	    // fatal configuration error, surface as 5xx
//	}
type SecurityCodeGenerator struct{}

// NewSecurityCodeGenerator creates a SecurityCodeGenerator.
func NewSecurityCodeGenerator() SecurityCodeGenerator {
	return SecurityCodeGenerator{}
}

// Generate produces a unique 6-character code, retrying on collision up to
// the attempt bound. Returns ErrCodeSpaceExhausted when every attempt
// collided.
func (g SecurityCodeGenerator) Generate(ctx context.Context, exists CodeExistsFunc) (string, error) {
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("checking code uniqueness: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", errs.ErrCodeSpaceExhausted
}

// GeneratePair produces two codes that are unique within their respective
// columns and guaranteed distinct from each other. Used for the per-parcel
// success/failure pair at delivery-mission assignment.
func (g SecurityCodeGenerator) GeneratePair(
	ctx context.Context,
	successExists CodeExistsFunc,
	failureExists CodeExistsFunc,
) (successCode string, failureCode string, err error) {
	successCode, err = g.Generate(ctx, successExists)
	if err != nil {
		return "", "", err
	}

	// The failure code must also differ from the success code just drawn.
	failureCode, err = g.Generate(ctx, func(ctx context.Context, code string) (bool, error) {
		if strings.EqualFold(code, successCode) {
			return true, nil
		}
		return failureExists(ctx, code)
	})
	if err != nil {
		return "", "", err
	}

	return successCode, failureCode, nil
}

// maxUnbiasedByte is the largest multiple of the alphabet size that fits in
// a byte. Bytes at or above it are redrawn so every alphabet character is
// equally likely.
const maxUnbiasedByte = byte(256 / len(codeAlphabet) * len(codeAlphabet))

func randomCode() (string, error) {
	var sb strings.Builder
	buf := make([]byte, codeLength)
	for sb.Len() < codeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("reading entropy for security code: %w", err)
		}
		for _, b := range buf {
			if b >= maxUnbiasedByte {
				continue
			}
			sb.WriteByte(codeAlphabet[int(b)%len(codeAlphabet)])
			if sb.Len() == codeLength {
				break
			}
		}
	}
	return sb.String(), nil
}
