// Package refstring reads, validates, and generates reference strings for
// the replacement engines.
package refstring

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/sarchlab/pagesim/replacement"
)

var (
	// ErrTokenNotInteger is returned for a token that is not a number.
	ErrTokenNotInteger = errors.New("is not an integer")

	// ErrTokenTooBig is returned for a token longer than maxTokenLength.
	ErrTokenTooBig = errors.New("is too big")

	// ErrPageOutOfRange is returned for a page outside 0..MaxPage.
	ErrPageOutOfRange = errors.New("is out of range")

	// ErrLengthOutOfRange is returned when the number of pages is outside
	// 1..MaxLength.
	ErrLengthOutOfRange = errors.New("reference string length out of range")

	// ErrFramesOutOfRange is returned when the frame count is outside
	// 1..MaxFrames.
	ErrFramesOutOfRange = errors.New("frame count out of range")
)

const maxTokenLength = 4

// Limits bounds the inputs accepted by the simulator.
type Limits struct {
	MaxPage   int
	MaxLength int
	MaxFrames int
}

// DefaultLimits returns pages 0-9, up to 50 references and up to 7 frames.
func DefaultLimits() Limits {
	return Limits{
		MaxPage:   9,
		MaxLength: 50,
		MaxFrames: 7,
	}
}

// ParseInt converts user input into an integer. Decimal input is truncated
// toward zero. The whole token must be a number: "3abc" and "0x5" are
// rejected rather than read up to their numeric prefix.
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)

	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q %w", s, ErrTokenNotInteger)
	}

	t := math.Trunc(f)
	if t > math.MaxInt32 || t < math.MinInt32 {
		return 0, fmt.Errorf("%q %w", s, ErrTokenTooBig)
	}

	return int(t), nil
}

// Parse reads whitespace-separated pages. Every invalid token is reported;
// the returned error joins all of them.
func Parse(line string, limits Limits) ([]replacement.Page, error) {
	var (
		refs []replacement.Page
		errs []error
	)

	for _, token := range strings.Fields(line) {
		page, err := parseToken(token, limits)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		refs = append(refs, page)
	}

	if err := checkLength(len(refs), limits); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return refs, nil
}

func parseToken(token string, limits Limits) (replacement.Page, error) {
	n, err := ParseInt(token)
	if err != nil {
		return 0, err
	}

	if len(token) > maxTokenLength {
		return 0, fmt.Errorf("%q %w", token, ErrTokenTooBig)
	}

	if n < 0 || n > limits.MaxPage {
		return 0, fmt.Errorf("%q %w: number must be between 0-%d",
			token, ErrPageOutOfRange, limits.MaxPage)
	}

	return replacement.Page(n), nil
}

func checkLength(n int, limits Limits) error {
	if n < 1 || n > limits.MaxLength {
		return fmt.Errorf("%w: got %d, want between 1 and %d",
			ErrLengthOutOfRange, n, limits.MaxLength)
	}

	return nil
}

// Generate returns n pages drawn uniformly from 0..MaxPage.
func Generate(
	rng *rand.Rand,
	n int,
	limits Limits,
) ([]replacement.Page, error) {
	if err := checkLength(n, limits); err != nil {
		return nil, err
	}

	refs := make([]replacement.Page, n)
	for i := range refs {
		refs[i] = replacement.Page(rng.Intn(limits.MaxPage + 1))
	}

	return refs, nil
}

// ValidateFrames checks that the frame count is within 1..MaxFrames.
func ValidateFrames(frames int, limits Limits) error {
	if frames < 1 || frames > limits.MaxFrames {
		return fmt.Errorf("%w: got %d, want between 1 and %d",
			ErrFramesOutOfRange, frames, limits.MaxFrames)
	}

	return nil
}

// EffectiveFrames caps the frame count at the length of the reference
// string, so that every engine can accept it.
func EffectiveFrames(frames, length int) int {
	return min(frames, length)
}

// Format renders pages separated by single spaces.
func Format(refs []replacement.Page) string {
	parts := make([]string, len(refs))
	for i, p := range refs {
		parts[i] = strconv.Itoa(int(p))
	}

	return strings.Join(parts, " ")
}
