package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/syntorio/synthid/internal/database"
	apperrors "github.com/syntorio/synthid/internal/errors"
	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
)

// MySQLProfileRepository implements Profile persistence for MySQL databases.
type MySQLProfileRepository struct {
	db *sql.DB
}

// NewMySQLProfileRepository creates a new MySQL Profile repository instance.
func NewMySQLProfileRepository(db *sql.DB) *MySQLProfileRepository {
	return &MySQLProfileRepository{db: db}
}

// Create inserts a new profile into the MySQL database.
func (m *MySQLProfileRepository) Create(ctx context.Context, profile *profilesDomain.Profile) error {
	querier := database.GetTx(ctx, m.db)

	identityDoc, financeDoc, err := encodePayloads(profile)
	if err != nil {
		return err
	}

	id, err := profile.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal profile id")
	}

	var apiKeyID []byte
	if profile.APIKeyID != nil {
		apiKeyID, err = profile.APIKeyID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal api key id")
		}
	}

	query := `INSERT INTO profiles (id, seed, identity, finance, api_key_id, created_at, deleted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		profile.Seed,
		identityDoc,
		financeDoc,
		apiKeyID,
		profile.CreatedAt,
		profile.DeletedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create profile")
	}

	return nil
}

// Get retrieves a non-deleted profile by its identifier.
func (m *MySQLProfileRepository) Get(
	ctx context.Context,
	profileID uuid.UUID,
) (*profilesDomain.Profile, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := profileID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal profile id")
	}

	query := `SELECT id, seed, identity, finance, api_key_id, created_at, deleted_at
			  FROM profiles
			  WHERE id = ? AND deleted_at IS NULL
			  LIMIT 1`

	var (
		profile     profilesDomain.Profile
		rawID       []byte
		identityDoc []byte
		financeDoc  []byte
		rawAPIKeyID []byte
	)
	err = querier.QueryRowContext(ctx, query, id).Scan(
		&rawID,
		&profile.Seed,
		&identityDoc,
		&financeDoc,
		&rawAPIKeyID,
		&profile.CreatedAt,
		&profile.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, profilesDomain.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get profile")
	}

	if err := profile.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal profile id")
	}
	if err := decodePayloads(&profile, identityDoc, financeDoc); err != nil {
		return nil, err
	}
	if err := setBinaryAPIKeyID(&profile, rawAPIKeyID); err != nil {
		return nil, err
	}

	return &profile, nil
}

// setBinaryAPIKeyID restores the optional API key reference from its
// BINARY(16) stored form.
func setBinaryAPIKeyID(profile *profilesDomain.Profile, raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	var keyID uuid.UUID
	if err := keyID.UnmarshalBinary(raw); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal api key id")
	}
	profile.APIKeyID = &keyID
	return nil
}

// List retrieves non-deleted profiles ordered by creation time descending.
func (m *MySQLProfileRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*profilesDomain.Profile, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, seed, identity, finance, api_key_id, created_at, deleted_at
			  FROM profiles
			  WHERE deleted_at IS NULL
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list profiles")
	}
	defer func() { _ = rows.Close() }()

	var profiles []*profilesDomain.Profile
	for rows.Next() {
		var (
			profile     profilesDomain.Profile
			rawID       []byte
			identityDoc []byte
			financeDoc  []byte
			rawAPIKeyID []byte
		)
		err := rows.Scan(
			&rawID,
			&profile.Seed,
			&identityDoc,
			&financeDoc,
			&rawAPIKeyID,
			&profile.CreatedAt,
			&profile.DeletedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan profile")
		}
		if err := profile.ID.UnmarshalBinary(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal profile id")
		}
		if err := decodePayloads(&profile, identityDoc, financeDoc); err != nil {
			return nil, err
		}
		if err := setBinaryAPIKeyID(&profile, rawAPIKeyID); err != nil {
			return nil, err
		}
		profiles = append(profiles, &profile)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate profiles")
	}

	return profiles, nil
}

// Delete performs a soft delete on a profile by setting the DeletedAt timestamp.
func (m *MySQLProfileRepository) Delete(ctx context.Context, profileID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := profileID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal profile id")
	}

	query := `UPDATE profiles
			  SET deleted_at = ?
			  WHERE id = ? AND deleted_at IS NULL`

	_, err = querier.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete profile")
	}

	return nil
}

// DeleteOlderThan soft-deletes profiles created before the cutoff timestamp.
func (m *MySQLProfileRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE profiles
			  SET deleted_at = ?
			  WHERE created_at < ? AND deleted_at IS NULL`

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
func (m *MySQLProfileRepository) CountOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*)
			  FROM profiles
			  WHERE created_at < ? AND deleted_at IS NULL`

	var count int64
	if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired profiles")
	}
	return count, nil
}
