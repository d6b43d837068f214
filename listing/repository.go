package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrListingNotFound signals that the listing does not exist.
var ErrListingNotFound = errors.New("listing: not found")

// Repository handles data access for listings.
type Repository interface {
	Search(ctx context.Context, filter SearchFilter) ([]Listing, error)
	GetByID(ctx context.Context, listingID int64) (Listing, error)
	Create(ctx context.Context, params CreateParams) (Listing, error)
	Update(ctx context.Context, listingID int64, params UpdateParams) (Listing, error)
	Delete(ctx context.Context, listingID int64) error
	FindOwnerID(ctx context.Context, listingID int64) (int64, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed listing repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const listingColumns = `id, owner_id, address, city, price, property_type, bedrooms, bathrooms, image_url, land_size, created_at, updated_at`

// Search returns listings matching the filter, newest first. The WHERE clause
// is assembled from the filter's present fields only; every value travels as
// a bind parameter.
func (r *PGRepository) Search(ctx context.Context, filter SearchFilter) ([]Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings`

	var (
		conditions []string
		args       []any
	)
	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.City != nil {
		addCondition("city = $%d", *filter.City)
	}
	if filter.MinPrice != nil {
		addCondition("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addCondition("price <= $%d", *filter.MaxPrice)
	}
	if filter.PropertyType != nil {
		addCondition("property_type = $%d", *filter.PropertyType)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing: search: %w", err)
	}
	defer rows.Close()

	listings := make([]Listing, 0, 16)
	for rows.Next() {
		var l Listing
		if err := rows.Scan(
			&l.ID, &l.OwnerID, &l.Address, &l.City, &l.Price, &l.PropertyType,
			&l.Bedrooms, &l.Bathrooms, &l.ImageURL, &l.LandSize, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("listing: scan: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing: iterate: %w", err)
	}
	return listings, nil
}

// GetByID retrieves a single listing.
func (r *PGRepository) GetByID(ctx context.Context, listingID int64) (Listing, error) {
	selectSQL := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	var l Listing
	err := r.pool.QueryRow(ctx, selectSQL, listingID).Scan(
		&l.ID, &l.OwnerID, &l.Address, &l.City, &l.Price, &l.PropertyType,
		&l.Bedrooms, &l.Bathrooms, &l.ImageURL, &l.LandSize, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, ErrListingNotFound
		}
		return Listing{}, fmt.Errorf("listing: get by id: %w", err)
	}
	return l, nil
}

// Create inserts a new listing owned by params.OwnerID.
func (r *PGRepository) Create(ctx context.Context, params CreateParams) (Listing, error) {
	insertSQL := `
		INSERT INTO listings (owner_id, address, city, price, property_type, bedrooms, bathrooms, image_url, land_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + listingColumns

	var l Listing
	err := r.pool.QueryRow(ctx, insertSQL,
		params.OwnerID, params.Address, params.City, params.Price, params.PropertyType,
		params.Bedrooms, params.Bathrooms, params.ImageURL, params.LandSize,
	).Scan(
		&l.ID, &l.OwnerID, &l.Address, &l.City, &l.Price, &l.PropertyType,
		&l.Bedrooms, &l.Bathrooms, &l.ImageURL, &l.LandSize, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return Listing{}, fmt.Errorf("listing: create: %w", err)
	}
	return l, nil
}

// Update applies the non-nil fields of params. The owner column is never
// touched: ownership is immutable after creation.
func (r *PGRepository) Update(ctx context.Context, listingID int64, params UpdateParams) (Listing, error) {
	var (
		sets []string
		args []any
	)
	addSet := func(clause string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf(clause, len(args)))
	}

	if params.Address != nil {
		addSet("address = $%d", *params.Address)
	}
	if params.City != nil {
		addSet("city = $%d", *params.City)
	}
	if params.Price != nil {
		addSet("price = $%d", *params.Price)
	}
	if params.PropertyType != nil {
		addSet("property_type = $%d", *params.PropertyType)
	}
	if params.Bedrooms != nil {
		addSet("bedrooms = $%d", *params.Bedrooms)
	}
	if params.Bathrooms != nil {
		addSet("bathrooms = $%d", *params.Bathrooms)
	}
	if params.ImageURL != nil {
		addSet("image_url = $%d", *params.ImageURL)
	}
	if params.LandSize != nil {
		addSet("land_size = $%d", *params.LandSize)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, listingID)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, listingID)
	updateSQL := fmt.Sprintf(
		"UPDATE listings SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), listingColumns,
	)

	var l Listing
	err := r.pool.QueryRow(ctx, updateSQL, args...).Scan(
		&l.ID, &l.OwnerID, &l.Address, &l.City, &l.Price, &l.PropertyType,
		&l.Bedrooms, &l.Bathrooms, &l.ImageURL, &l.LandSize, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, ErrListingNotFound
		}
		return Listing{}, fmt.Errorf("listing: update: %w", err)
	}
	return l, nil
}

// Delete removes a listing.
func (r *PGRepository) Delete(ctx context.Context, listingID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("listing: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrListingNotFound
	}
	return nil
}

// FindOwnerID returns the owning user id for a listing. Used by ownership
// checks; the relation is never re-derived elsewhere.
func (r *PGRepository) FindOwnerID(ctx context.Context, listingID int64) (int64, error) {
	var ownerID int64
	err := r.pool.QueryRow(ctx, `SELECT owner_id FROM listings WHERE id = $1`, listingID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrListingNotFound
		}
		return 0, fmt.Errorf("listing: find owner: %w", err)
	}
	return ownerID, nil
}
