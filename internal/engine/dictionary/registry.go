package dictionary

import (
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/syntorio/synthid/internal/errors"
)

// Provider supplies a decoded dataset directly, bypassing the Loader. Used to
// install custom datasets in tests.
type Provider func() (any, error)

// decoders maps the well-known dataset names to their typed JSON decoders.
var decoders = map[string]func([]byte) (any, error){
	DatasetNames:         decodeInto[*Names],
	DatasetRegions:       decodeInto[[]Region],
	DatasetCities:        decodeInto[[]City],
	DatasetStreets:       decodeInto[[]Street],
	DatasetDivisionCodes: decodeInto[[]DivisionCode],
	DatasetCardBINs:      decodeInto[[]CardBIN],
	DatasetMCCCodes:      decodeInto[[]MCC],
}

// Registry lazily loads and caches named datasets. It is safe for concurrent
// use: a first-load race on the same name resolves to a single winning load
// via singleflight, and cached values are never mutated afterwards.
type Registry struct {
	loader Loader

	mu        sync.RWMutex
	cache     map[string]any
	providers map[string]Provider
	group     singleflight.Group
}

// NewRegistry creates a registry over the given loader.
func NewRegistry(loader Loader) *Registry {
	return &Registry{
		loader:    loader,
		cache:     make(map[string]any),
		providers: make(map[string]Provider),
	}
}

// Register installs a custom provider for a dataset name. Registering does
// not invalidate an already cached value; call Invalidate for that.
func (r *Registry) Register(name string, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = provider
}

// Get returns the decoded dataset for name, loading and caching it on first
// use. A missing dataset is a fatal ErrDictionaryNotFound.
func (r *Registry) Get(name string) (any, error) {
	r.mu.RLock()
	if value, ok := r.cache[name]; ok {
		r.mu.RUnlock()
		return value, nil
	}
	provider := r.providers[name]
	r.mu.RUnlock()

	value, err, _ := r.group.Do(name, func() (any, error) {
		// Re-check under the write path: another call may have won the race
		// between the read unlock and the singleflight slot.
		r.mu.RLock()
		if cached, ok := r.cache[name]; ok {
			r.mu.RUnlock()
			return cached, nil
		}
		r.mu.RUnlock()

		loaded, err := r.load(name, provider)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[name] = loaded
		r.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// load resolves a dataset from its provider or from the loader plus the typed
// decoder registered for its name.
func (r *Registry) load(name string, provider Provider) (any, error) {
	if provider != nil {
		return provider()
	}

	decoder, ok := decoders[name]
	if !ok {
		return nil, apperrors.Wrap(ErrDictionaryNotFound, fmt.Sprintf("no decoder for dataset %q", name))
	}

	raw, err := r.loader.Load(name)
	if err != nil {
		return nil, err
	}

	value, err := decoder(raw)
	if err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("failed to decode dictionary %q", name))
	}
	return value, nil
}

// Preload warms multiple datasets, stopping at the first failure.
func (r *Registry) Preload(names ...string) error {
	for _, name := range names {
		if _, err := r.Get(name); err != nil {
			return err
		}
	}
	return nil
}

// Invalidate clears a single cached dataset.
func (r *Registry) Invalidate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, name)
}

// Reset clears the whole cache. Used in tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]any)
}

// Names returns the names dataset.
func (r *Registry) Names() (*Names, error) {
	return get[*Names](r, DatasetNames)
}

// Regions returns the regions dataset.
func (r *Registry) Regions() ([]Region, error) {
	return get[[]Region](r, DatasetRegions)
}

// Cities returns the cities dataset.
func (r *Registry) Cities() ([]City, error) {
	return get[[]City](r, DatasetCities)
}

// Streets returns the streets dataset.
func (r *Registry) Streets() ([]Street, error) {
	return get[[]Street](r, DatasetStreets)
}

// DivisionCodes returns the passport issuing office dataset.
func (r *Registry) DivisionCodes() ([]DivisionCode, error) {
	return get[[]DivisionCode](r, DatasetDivisionCodes)
}

// CardBINs returns the card BIN dataset.
func (r *Registry) CardBINs() ([]CardBIN, error) {
	return get[[]CardBIN](r, DatasetCardBINs)
}

// MCCCodes returns the merchant category code dataset.
func (r *Registry) MCCCodes() ([]MCC, error) {
	return get[[]MCC](r, DatasetMCCCodes)
}

// get fetches a dataset and asserts its concrete type.
func get[T any](r *Registry, name string) (T, error) {
	var zero T
	value, err := r.Get(name)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("dataset %q has unexpected type %T", name, value),
		)
	}
	return typed, nil
}

// decodeInto is the generic JSON decoder used for the well-known datasets.
func decodeInto[T any](raw []byte) (any, error) {
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}
