package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/terangaapp/teranga-server/internal/domain"
	"github.com/terangaapp/teranga-server/internal/store"
)

// providerColumns is the ordered list of columns selected in provider queries.
// Must match the scan order in scanProvider.
const providerColumns = `id, created_at, updated_at, name, category, city,
	identity_hash, encrypted_phone, owner_id`

// scanProvider scans a sql.Row (or sql.Rows via its Scan method) into a domain.Provider.
func scanProvider(scanner interface{ Scan(dest ...any) error }) (*domain.Provider, error) {
	var p domain.Provider

	var (
		createdAt string
		updatedAt string
		ownerID   sql.NullString
	)

	err := scanner.Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
		&p.Name,
		&p.Category,
		&p.City,
		&p.IdentityHash,
		&p.EncryptedPhone,
		&ownerID,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if ownerID.Valid {
		p.OwnerID = ownerID.String
	}

	return &p, nil
}

// CreateProvider inserts a new provider into the database.
// Returns store.ErrAlreadyExists if a provider with the same identity hash
// (or ID) already exists; callers racing on the same phone number use this
// signal to fall back to a lookup.
func (s *Store) CreateProvider(ctx context.Context, provider *domain.Provider) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO providers (
			id, created_at, updated_at, name, category, city,
			identity_hash, encrypted_phone, owner_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		provider.ID,
		formatTime(provider.CreatedAt),
		formatTime(provider.UpdatedAt),
		provider.Name,
		provider.Category,
		provider.City,
		provider.IdentityHash,
		provider.EncryptedPhone,
		nullString(provider.OwnerID),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetProvider retrieves a provider by ID.
// Returns store.ErrNotFound if the provider does not exist.
func (s *Store) GetProvider(ctx context.Context, id string) (*domain.Provider, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+providerColumns+` FROM providers WHERE id = ?`, id)

	p, err := scanProvider(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetProviderByIdentityHash retrieves a provider by its identity hash.
// Returns store.ErrNotFound if no provider carries the hash.
func (s *Store) GetProviderByIdentityHash(ctx context.Context, hash string) (*domain.Provider, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+providerColumns+` FROM providers WHERE identity_hash = ?`, hash)

	p, err := scanProvider(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProvider updates a provider's mutable descriptive fields.
// The identity hash and encrypted phone are immutable once written.
// Returns store.ErrNotFound if the provider does not exist.
func (s *Store) UpdateProvider(ctx context.Context, provider *domain.Provider) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE providers
		SET updated_at = ?, name = ?, category = ?, city = ?
		WHERE id = ?`,
		formatTime(provider.UpdatedAt),
		provider.Name,
		provider.Category,
		provider.City,
		provider.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ClaimProvider sets the provider's owner if and only if it has no owner yet.
// The conditional UPDATE makes the ownership transition atomic: of any number
// of concurrent claimants, exactly one sees claimed=true. Returns
// store.ErrNotFound if the provider does not exist; (false, nil) if it exists
// but is already owned.
func (s *Store) ClaimProvider(ctx context.Context, providerID, ownerID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE providers
		SET owner_id = ?, updated_at = ?
		WHERE id = ? AND owner_id IS NULL`,
		ownerID,
		formatTime(nowUTC()),
		providerID,
	)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows > 0 {
		return true, nil
	}

	// No row changed: either the provider is missing or already claimed.
	var exists int
	err = s.db.QueryRowContext(ctx,
		`SELECT 1 FROM providers WHERE id = ?`, providerID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, store.ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// ListProviders lists providers, optionally filtered by category and/or city.
// Empty filter values match everything. Results are ordered newest first.
func (s *Store) ListProviders(ctx context.Context, category, city string) ([]*domain.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE 1=1`
	var args []any
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	if city != "" {
		query += ` AND city = ?`
		args = append(args, city)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []*domain.Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}
