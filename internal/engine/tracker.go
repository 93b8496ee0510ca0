package engine

import (
	"fmt"
	"sync"

	apperrors "github.com/syntorio/synthid/internal/errors"
)

// ErrUniquenessExhausted indicates a document number space is effectively
// saturated: the retry cap was reached without producing an unissued value.
var ErrUniquenessExhausted = apperrors.Wrap(apperrors.ErrConflict, "uniqueness space exhausted")

// maxUniqueAttempts bounds the redraw loop for unique document values so a
// saturated tracker fails instead of spinning forever.
const maxUniqueAttempts = 10000

// Tracker records previously issued document values per namespace. Its
// lifetime is owned by the caller (typically one tracker per module
// instance), making the uniqueness scope explicit. Claims never shrink
// within a run. Safe for concurrent use; insert-and-check is atomic.
type Tracker struct {
	mu     sync.Mutex
	spaces map[string]map[string]struct{}
}

// NewTracker creates an empty uniqueness tracker.
func NewTracker() *Tracker {
	return &Tracker{spaces: make(map[string]map[string]struct{})}
}

// Claim atomically records value in the named space. It returns false when
// the value was already issued.
func (t *Tracker) Claim(space, value string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	values, ok := t.spaces[space]
	if !ok {
		values = make(map[string]struct{})
		t.spaces[space] = values
	}
	if _, issued := values[value]; issued {
		return false
	}
	values[value] = struct{}{}
	return true
}

// Seen reports whether value was already issued in the named space without
// claiming it.
func (t *Tracker) Seen(space, value string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, issued := t.spaces[space][value]
	return issued
}

// ClaimUnique draws candidate values from generate until one claims
// successfully, failing with ErrUniquenessExhausted after the retry cap.
func (t *Tracker) ClaimUnique(space string, generate func() (string, error)) (string, error) {
	for attempt := 0; attempt < maxUniqueAttempts; attempt++ {
		value, err := generate()
		if err != nil {
			return "", err
		}
		if t.Claim(space, value) {
			return value, nil
		}
	}
	return "", apperrors.Wrap(ErrUniquenessExhausted, fmt.Sprintf("space %q", space))
}
