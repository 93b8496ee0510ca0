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

// MySQLAPIKeyRepository implements APIKey persistence for MySQL databases.
type MySQLAPIKeyRepository struct {
	db *sql.DB
}

// NewMySQLAPIKeyRepository creates a new MySQL APIKey repository instance.
func NewMySQLAPIKeyRepository(db *sql.DB) *MySQLAPIKeyRepository {
	return &MySQLAPIKeyRepository{db: db}
}

const mysqlAPIKeyColumns = `id, name, lookup_hash, key_hash, role, status,
			  expires_at, last_used_at, revoked_at, created_at`

// scanBinaryAPIKey scans one API key row with a BINARY(16) identifier.
func scanBinaryAPIKey(row interface{ Scan(dest ...any) error }) (*authDomain.APIKey, error) {
	var (
		apiKey authDomain.APIKey
		rawID  []byte
	)
	err := row.Scan(
		&rawID,
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
	if err := apiKey.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal api key id")
	}
	return &apiKey, nil
}

// Create inserts a new API key into the MySQL database.
func (m *MySQLAPIKeyRepository) Create(ctx context.Context, apiKey *authDomain.APIKey) error {
	querier := database.GetTx(ctx, m.db)

	id, err := apiKey.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal api key id")
	}

	query := `INSERT INTO api_keys
			  (id, name, lookup_hash, key_hash, role, status, expires_at, last_used_at, revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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

// GetByID retrieves an API key by its identifier.
func (m *MySQLAPIKeyRepository) GetByID(
	ctx context.Context,
	apiKeyID uuid.UUID,
) (*authDomain.APIKey, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := apiKeyID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal api key id")
	}

	query := `SELECT ` + mysqlAPIKeyColumns + `
			  FROM api_keys
			  WHERE id = ?
			  LIMIT 1`

	apiKey, err := scanBinaryAPIKey(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, authDomain.ErrAPIKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get api key")
	}
	return apiKey, nil
}

// GetByLookupHash retrieves an API key by its SHA-256 lookup hash.
func (m *MySQLAPIKeyRepository) GetByLookupHash(
	ctx context.Context,
	lookupHash string,
) (*authDomain.APIKey, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlAPIKeyColumns + `
			  FROM api_keys
			  WHERE lookup_hash = ?
			  LIMIT 1`

	apiKey, err := scanBinaryAPIKey(querier.QueryRowContext(ctx, query, lookupHash))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, authDomain.ErrAPIKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get api key by lookup hash")
	}
	return apiKey, nil
}

// List retrieves API keys ordered by creation time descending.
func (m *MySQLAPIKeyRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.APIKey, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlAPIKeyColumns + `
			  FROM api_keys
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list api keys")
	}
	defer func() { _ = rows.Close() }()

	var apiKeys []*authDomain.APIKey
	for rows.Next() {
		apiKey, err := scanBinaryAPIKey(rows)
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
func (m *MySQLAPIKeyRepository) Revoke(
	ctx context.Context,
	apiKeyID uuid.UUID,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := apiKeyID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal api key id")
	}

	query := `UPDATE api_keys
			  SET status = ?, revoked_at = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, authDomain.StatusRevoked, revokedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke api key")
	}
	return nil
}

// UpdateLastUsed records the last authentication timestamp of an API key.
func (m *MySQLAPIKeyRepository) UpdateLastUsed(
	ctx context.Context,
	apiKeyID uuid.UUID,
	lastUsedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := apiKeyID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal api key id")
	}

	query := `UPDATE api_keys
			  SET last_used_at = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, lastUsedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update api key last used")
	}
	return nil
}
