// Package dto contains request and response types for the API key HTTP endpoints.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
)

// CreateAPIKeyRequest is the payload for creating a new API key.
type CreateAPIKeyRequest struct {
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Validate checks the create request fields.
func (r CreateAPIKeyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Role, validation.In(
			string(authDomain.RoleUser),
			string(authDomain.RoleAdmin),
		)),
	)
}

// ToCreateInput converts the request into a domain create input.
func (r CreateAPIKeyRequest) ToCreateInput() authDomain.CreateAPIKeyInput {
	return authDomain.CreateAPIKeyInput{
		Name:      r.Name,
		Role:      authDomain.Role(r.Role),
		ExpiresAt: r.ExpiresAt,
	}
}
