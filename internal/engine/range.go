package engine

import (
	"fmt"

	"github.com/syntorio/synthid/internal/engine/random"
	apperrors "github.com/syntorio/synthid/internal/errors"
)

// Range is an inclusive [Min, Max] integer interval used for count and age
// parameters.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// NewRange builds a validated inclusive range.
func NewRange(min, max int) (Range, error) {
	r := Range{Min: min, Max: max}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Validate reports a configuration error when Max < Min.
func (r Range) Validate() error {
	if r.Max < r.Min {
		return apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("range max %d must not be below min %d", r.Max, r.Min),
		)
	}
	return nil
}

// Draw returns an integer drawn uniformly from the inclusive interval.
func (r Range) Draw(src *random.Source) (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	return src.IntN(r.Min, r.Max+1)
}
