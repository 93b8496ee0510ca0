package dto

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
)

// APIKeyResponse represents an API key without secret material.
type APIKeyResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateAPIKeyResponse is returned from key creation. The plain key is
// included exactly once; it cannot be recovered afterwards.
type CreateAPIKeyResponse struct {
	APIKeyResponse
	Key string `json:"key"`
}

// ListAPIKeysResponse wraps a page of API keys.
type ListAPIKeysResponse struct {
	Data []APIKeyResponse `json:"data"`
}

// MapAPIKeyToResponse converts a domain API key to its response form.
func MapAPIKeyToResponse(apiKey *authDomain.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:         apiKey.ID,
		Name:       apiKey.Name,
		Role:       string(apiKey.Role),
		Status:     string(apiKey.Status),
		ExpiresAt:  apiKey.ExpiresAt,
		LastUsedAt: apiKey.LastUsedAt,
		RevokedAt:  apiKey.RevokedAt,
		CreatedAt:  apiKey.CreatedAt,
	}
}

// MapCreateOutputToResponse converts a creation result, including the plain key.
func MapCreateOutputToResponse(output *authDomain.CreateAPIKeyOutput) CreateAPIKeyResponse {
	return CreateAPIKeyResponse{
		APIKeyResponse: MapAPIKeyToResponse(output.APIKey),
		Key:            output.PlainKey,
	}
}

// MapAPIKeysToListResponse converts a slice of domain API keys to the list response.
func MapAPIKeysToListResponse(apiKeys []*authDomain.APIKey) ListAPIKeysResponse {
	data := make([]APIKeyResponse, 0, len(apiKeys))
	for _, apiKey := range apiKeys {
		data = append(data, MapAPIKeyToResponse(apiKey))
	}
	return ListAPIKeysResponse{Data: data}
}
