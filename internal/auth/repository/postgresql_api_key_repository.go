// Package repository implements data persistence for API keys.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
	"github.com/syntorio/synthid/internal/database"
	apperrors "github.com/syntorio/synthid/internal/errors"
)

// PostgreSQLAPIKeyRepository implements APIKey persistence for PostgreSQL databases.
type PostgreSQLAPIKeyRepository struct {
	db *sql.DB
}

// NewPostgreSQLAPIKeyRepository creates a new PostgreSQL APIKey repository instance.
func NewPostgreSQLAPIKeyRepository(db *sql.DB) *PostgreSQLAPIKeyRepository {
	return &PostgreSQLAPIKeyRepository{db: db}
}

// Create inserts a new API key into the PostgreSQL database.
func (p *PostgreSQLAPIKeyRepository) Create(ctx context.Context, apiKey *authDomain.APIKey) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO api_keys
			  (id, name, lookup_hash, key_hash, role, status, expires_at, last_used_at, revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		apiKey.ID,
		apiKey.Name,
		apiKey.LookupHash,
		apiKey.KeyHash,
		apiKey.Role,
		apiKey.Status,
		apiKey.ExpiresAt,
		apiKey.LastUsedAt,
		apiKey.RevokedAt,
		apiKey.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create api key")
	}
	return nil
}

const postgresAPIKeyColumns = `id, name, lookup_hash, key_hash, role, status,
			  expires_at, last_used_at, revoked_at, created_at`

// scanAPIKey scans one API key row.
func scanAPIKey(row interface{ Scan(dest ...any) error }) (*authDomain.APIKey, error) {
	var apiKey authDomain.APIKey
	err := row.Scan(
		&apiKey.ID,
		&apiKey.Name,
		&apiKey.LookupHash,
		&apiKey.KeyHash,
		&apiKey.Role,
		&apiKey.Status,
		&apiKey.ExpiresAt,
		&apiKey.LastUsedAt,
		&apiKey.RevokedAt,
		&apiKey.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &apiKey, nil
}

// GetByID retrieves an API key by its identifier.
func (p *PostgreSQLAPIKeyRepository) GetByID(
	ctx context.Context,
	apiKeyID uuid.UUID,
) (*authDomain.APIKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresAPIKeyColumns + `
			  FROM api_keys
			  WHERE id = $1
			  LIMIT 1`

	apiKey, err := scanAPIKey(querier.QueryRowContext(ctx, query, apiKeyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, authDomain.ErrAPIKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get api key")
	}
	return apiKey, nil
}

// GetByLookupHash retrieves an API key by its SHA-256 lookup hash.
func (p *PostgreSQLAPIKeyRepository) GetByLookupHash(
	ctx context.Context,
	lookupHash string,
) (*authDomain.APIKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresAPIKeyColumns + `
			  FROM api_keys
			  WHERE lookup_hash = $1
			  LIMIT 1`

	apiKey, err := scanAPIKey(querier.QueryRowContext(ctx, query, lookupHash))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, authDomain.ErrAPIKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get api key by lookup hash")
	}
	return apiKey, nil
}

// List retrieves API keys ordered by creation time descending.
func (p *PostgreSQLAPIKeyRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.APIKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresAPIKeyColumns + `
			  FROM api_keys
			  ORDER BY created_at DESC
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list api keys")
	}
	defer func() { _ = rows.Close() }()

	var apiKeys []*authDomain.APIKey
	for rows.Next() {
		apiKey, err := scanAPIKey(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan api key")
		}
		apiKeys = append(apiKeys, apiKey)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate api keys")
	}

	return apiKeys, nil
}

// Revoke marks an API key as revoked.
func (p *PostgreSQLAPIKeyRepository) Revoke(
	ctx context.Context,
	apiKeyID uuid.UUID,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE api_keys
			  SET status = $1, revoked_at = $2
			  WHERE id = $3`

	_, err := querier.ExecContext(ctx, query, authDomain.StatusRevoked, revokedAt, apiKeyID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke api key")
	}
	return nil
}

// UpdateLastUsed records the last authentication timestamp of an API key.
func (p *PostgreSQLAPIKeyRepository) UpdateLastUsed(
	ctx context.Context,
	apiKeyID uuid.UUID,
	lastUsedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE api_keys
			  SET last_used_at = $1
			  WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, lastUsedAt, apiKeyID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update api key last used")
	}
	return nil
}
