package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyService_GenerateKey(t *testing.T) {
	svc := NewKeyService()

	plainKey, lookupHash, keyHash, err := svc.GenerateKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(plainKey, KeyPrefix))
	assert.Len(t, lookupHash, 64)
	assert.Equal(t, lookupHash, svc.LookupHash(plainKey))
	assert.NotEqual(t, plainKey, keyHash)

	t.Run("keys are unique", func(t *testing.T) {
		otherKey, otherLookup, _, err := svc.GenerateKey()
		require.NoError(t, err)
		assert.NotEqual(t, plainKey, otherKey)
		assert.NotEqual(t, lookupHash, otherLookup)
	})
}

func TestKeyService_CompareKey(t *testing.T) {
	svc := NewKeyService()

	plainKey, _, keyHash, err := svc.GenerateKey()
	require.NoError(t, err)

	assert.True(t, svc.CompareKey(plainKey, keyHash))
	assert.False(t, svc.CompareKey("sk_wrong-key", keyHash))
	assert.False(t, svc.CompareKey(plainKey, "not-a-hash"))
}

func TestKeyService_LookupHashIsDeterministic(t *testing.T) {
	svc := NewKeyService()

	first := svc.LookupHash("sk_example")
	second := svc.LookupHash("sk_example")
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, svc.LookupHash("sk_other"))
}
