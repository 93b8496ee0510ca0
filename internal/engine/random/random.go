// Package random provides a deterministic seeded pseudo-random source for the
// generation engine. Two sources constructed with the same seed produce identical
// output sequences for the same sequence of operations, which makes every
// generated payload reproducible from its seed.
package random

import (
	"unicode/utf16"

	"github.com/google/uuid"

	apperrors "github.com/syntorio/synthid/internal/errors"
)

// Source is a mulberry32 pseudo-random generator over a 32-bit state word.
// It is intentionally NOT cryptographically secure: reproducibility is the
// whole point. A Source is not safe for concurrent use; callers that share
// one across goroutines must serialize access or use Fork.
type Source struct {
	state uint32
}

// New creates a Source from an integer seed. The seed is truncated to the
// low 32 bits of its unsigned representation.
func New(seed int64) *Source {
	return &Source{state: uint32(uint64(seed))}
}

// NewString creates a Source from a string seed. The string is folded into a
// 32-bit state word with a multiplicative hash over its UTF-16 code units, so
// the same string always yields the same sequence.
func NewString(seed string) *Source {
	var hash int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		hash = hash<<5 - hash + int32(unit)
	}
	return &Source{state: uint32(hash)}
}

// Next returns a pseudo-random float64 in [0, 1) and advances the state.
func (s *Source) Next() float64 {
	s.state += 0x6d2b79f5
	t := s.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// IntN returns a pseudo-random integer in the half-open interval [min, max).
func (s *Source) IntN(min, max int) (int, error) {
	if max <= min {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "random: max must be greater than min")
	}
	span := max - min
	return min + int(s.Next()*float64(span)), nil
}

// FloatN returns a pseudo-random float64 in the half-open interval [min, max).
func (s *Source) FloatN(min, max float64) (float64, error) {
	if max <= min {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "random: max must be greater than min")
	}
	return min + s.Next()*(max-min), nil
}

// UUID returns an RFC 4122 version 4 UUID whose random bits are all drawn
// from s, so sources with equal seeds emit identical identifier sequences.
func (s *Source) UUID() string {
	var b [16]byte
	for i := range b {
		b[i] = byte(s.Next() * 256)
	}
	b[6] = b[6]&0x0f | 0x40
	b[8] = b[8]&0x3f | 0x80
	return uuid.Must(uuid.FromBytes(b[:])).String()
}

// Fork returns a new Source seeded from the current state of s. The child
// produces a sequence decorrelated from the parent while remaining a pure
// function of the parent's seed and draw history.
func (s *Source) Fork() *Source {
	return &Source{state: uint32(s.Next() * 4294967296)}
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](s *Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, apperrors.Wrap(apperrors.ErrInvalidInput, "random: cannot pick from an empty collection")
	}
	index, err := s.IntN(0, len(items))
	if err != nil {
		return zero, err
	}
	return items[index], nil
}

// Weighter is implemented by values that carry a selection weight.
type Weighter interface {
	WeightValue() float64
}

// Weighted returns an element of items chosen with probability proportional to
// its weight, using a cumulative-weight scan against a single draw in
// [0, totalWeight). The last element absorbs floating-point edge rounding.
func Weighted[T Weighter](s *Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, apperrors.Wrap(apperrors.ErrInvalidInput, "random: cannot pick from an empty collection")
	}

	var totalWeight float64
	for _, item := range items {
		totalWeight += item.WeightValue()
	}
	if totalWeight <= 0 {
		return zero, apperrors.Wrap(apperrors.ErrInvalidInput, "random: total weight must be positive")
	}

	target, err := s.FloatN(0, totalWeight)
	if err != nil {
		return zero, err
	}

	var cumulative float64
	for _, item := range items {
		cumulative += item.WeightValue()
		if target < cumulative {
			return item, nil
		}
	}
	return items[len(items)-1], nil
}
