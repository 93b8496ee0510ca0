// Package repository implements data persistence for generated profiles.
// Repositories support both PostgreSQL and MySQL; payloads are stored as
// JSON documents alongside the seed that produced them.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/syntorio/synthid/internal/database"
	"github.com/syntorio/synthid/internal/engine/finance"
	"github.com/syntorio/synthid/internal/engine/identity"
	apperrors "github.com/syntorio/synthid/internal/errors"
	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
)

// encodePayloads serializes the identity and optional finance payloads for
// storage.
func encodePayloads(profile *profilesDomain.Profile) (identityDoc []byte, financeDoc any, err error) {
	identityDoc, err = json.Marshal(profile.Identity)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to encode identity payload")
	}
	if profile.Finance == nil {
		return identityDoc, nil, nil
	}
	doc, err := json.Marshal(profile.Finance)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to encode finance payload")
	}
	return identityDoc, doc, nil
}

// decodePayloads restores the identity and optional finance payloads from
// their stored form.
func decodePayloads(profile *profilesDomain.Profile, identityDoc []byte, financeDoc []byte) error {
	var identityPayload identity.Payload
	if err := json.Unmarshal(identityDoc, &identityPayload); err != nil {
		return apperrors.Wrap(err, "failed to decode identity payload")
	}
	profile.Identity = identityPayload

	if len(financeDoc) == 0 {
		return nil
	}
	var financePayload finance.Payload
	if err := json.Unmarshal(financeDoc, &financePayload); err != nil {
		return apperrors.Wrap(err, "failed to decode finance payload")
	}
	profile.Finance = &financePayload
	return nil
}

// apiKeyIDValue converts the optional API key reference for storage.
func apiKeyIDValue(profile *profilesDomain.Profile) uuid.NullUUID {
	if profile.APIKeyID == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *profile.APIKeyID, Valid: true}
}

// setAPIKeyID restores the optional API key reference from its stored form.
func setAPIKeyID(profile *profilesDomain.Profile, id uuid.NullUUID) {
	if id.Valid {
		keyID := id.UUID
		profile.APIKeyID = &keyID
	}
}

// PostgreSQLProfileRepository implements Profile persistence for PostgreSQL databases.
type PostgreSQLProfileRepository struct {
	db *sql.DB
}

// NewPostgreSQLProfileRepository creates a new PostgreSQL Profile repository instance.
func NewPostgreSQLProfileRepository(db *sql.DB) *PostgreSQLProfileRepository {
	return &PostgreSQLProfileRepository{db: db}
}

// Create inserts a new profile into the PostgreSQL database.
func (p *PostgreSQLProfileRepository) Create(ctx context.Context, profile *profilesDomain.Profile) error {
	querier := database.GetTx(ctx, p.db)

	identityDoc, financeDoc, err := encodePayloads(profile)
	if err != nil {
		return err
	}

	query := `INSERT INTO profiles (id, seed, identity, finance, api_key_id, created_at, deleted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = querier.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.Seed,
		identityDoc,
		financeDoc,
		apiKeyIDValue(profile),
		profile.CreatedAt,
		profile.DeletedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create profile")
	}
	return nil
}

// Get retrieves a non-deleted profile by its identifier.
func (p *PostgreSQLProfileRepository) Get(
	ctx context.Context,
	profileID uuid.UUID,
) (*profilesDomain.Profile, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, seed, identity, finance, api_key_id, created_at, deleted_at
			  FROM profiles
			  WHERE id = $1 AND deleted_at IS NULL
			  LIMIT 1`

	var (
		profile     profilesDomain.Profile
		identityDoc []byte
		financeDoc  []byte
		apiKeyID    uuid.NullUUID
	)
	err := querier.QueryRowContext(ctx, query, profileID).Scan(
		&profile.ID,
		&profile.Seed,
		&identityDoc,
		&financeDoc,
		&apiKeyID,
		&profile.CreatedAt,
		&profile.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, profilesDomain.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get profile")
	}
	if err := decodePayloads(&profile, identityDoc, financeDoc); err != nil {
		return nil, err
	}
	setAPIKeyID(&profile, apiKeyID)

	return &profile, nil
}

// List retrieves non-deleted profiles ordered by creation time descending.
func (p *PostgreSQLProfileRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*profilesDomain.Profile, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, seed, identity, finance, api_key_id, created_at, deleted_at
			  FROM profiles
			  WHERE deleted_at IS NULL
			  ORDER BY created_at DESC
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list profiles")
	}
	defer func() { _ = rows.Close() }()

	var profiles []*profilesDomain.Profile
	for rows.Next() {
		var (
			profile     profilesDomain.Profile
			identityDoc []byte
			financeDoc  []byte
			apiKeyID    uuid.NullUUID
		)
		err := rows.Scan(
			&profile.ID,
			&profile.Seed,
			&identityDoc,
			&financeDoc,
			&apiKeyID,
			&profile.CreatedAt,
			&profile.DeletedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan profile")
		}
		if err := decodePayloads(&profile, identityDoc, financeDoc); err != nil {
			return nil, err
		}
		setAPIKeyID(&profile, apiKeyID)
		profiles = append(profiles, &profile)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate profiles")
	}

	return profiles, nil
}

// Delete performs a soft delete on a profile by setting the DeletedAt timestamp.
func (p *PostgreSQLProfileRepository) Delete(ctx context.Context, profileID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE profiles
			  SET deleted_at = $1
			  WHERE id = $2 AND deleted_at IS NULL`

	_, err := querier.ExecContext(ctx, query, time.Now().UTC(), profileID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete profile")
	}

	return nil
}

// DeleteOlderThan soft-deletes profiles created before the cutoff timestamp.
func (p *PostgreSQLProfileRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE profiles
			  SET deleted_at = $1
			  WHERE created_at < $2 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired profiles")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted profiles")
	}
	return affected, nil
}

// CountOlderThan counts live profiles created before the cutoff timestamp.
func (p *PostgreSQLProfileRepository) CountOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*)
			  FROM profiles
			  WHERE created_at < $1 AND deleted_at IS NULL`

	var count int64
	if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired profiles")
	}
	return count, nil
}
