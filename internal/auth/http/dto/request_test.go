package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
)

func TestCreateAPIKeyRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request CreateAPIKeyRequest
		wantErr bool
	}{
		{
			name:    "valid with default role",
			request: CreateAPIKeyRequest{Name: "ci-pipeline"},
		},
		{
			name:    "valid admin role",
			request: CreateAPIKeyRequest{Name: "ops", Role: "admin"},
		},
		{
			name:    "missing name",
			request: CreateAPIKeyRequest{Role: "user"},
			wantErr: true,
		},
		{
			name:    "unknown role",
			request: CreateAPIKeyRequest{Name: "ci-pipeline", Role: "superuser"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateAPIKeyRequest_ToCreateInput(t *testing.T) {
	expiresAt := time.Now().UTC().Add(24 * time.Hour)
	request := CreateAPIKeyRequest{Name: "ci-pipeline", Role: "admin", ExpiresAt: &expiresAt}

	input := request.ToCreateInput()

	assert.Equal(t, "ci-pipeline", input.Name)
	assert.Equal(t, authDomain.RoleAdmin, input.Role)
	require.NotNil(t, input.ExpiresAt)
	assert.Equal(t, expiresAt, *input.ExpiresAt)
}
