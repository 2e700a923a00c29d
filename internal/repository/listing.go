package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/homeline/homeline-go/internal/model"
)

var ErrListingNotFound = errors.New("listing not found")

const listingColumns = `l.id, l.address, l.city, l.price, l.land_size, l.bedrooms, l.bathrooms,
	l.property_type, l.realtor_id, l.created_at, l.updated_at`

// ListingRepository handles listing and image persistence operations.
type ListingRepository struct {
	db *sqlx.DB
}

// NewListingRepository creates a new ListingRepository.
func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create inserts the listing and its images in one transaction and sets the
// generated ID on the listing.
func (r *ListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `INSERT INTO listings
			(address, city, price, land_size, bedrooms, bathrooms, property_type, realtor_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			listing.Address, listing.City, listing.Price, listing.LandSize,
			listing.Bedrooms, listing.Bathrooms, listing.PropertyType, listing.RealtorID,
		)
		if err != nil {
			return err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		if len(listing.Images) > 0 {
			images := make([]model.Image, len(listing.Images))
			for i, url := range listing.Images {
				images[i] = model.Image{URL: url, ListingID: id}
			}
			if _, err := tx.NamedExecContext(ctx,
				`INSERT INTO images (url, listing_id) VALUES (:url, :listing_id)`, images); err != nil {
				return err
			}
		}

		listing.ID = id
		return nil
	})
}

// listingRow is a listing plus the URL of its first image, if any.
type listingRow struct {
	model.Listing
	FirstImage sql.NullString `db:"first_image"`
}

// List returns every listing matching the filter, each with at most its
// first image, ordered by ID.
func (r *ListingRepository) List(ctx context.Context, filter model.ListingFilter) ([]model.Listing, error) {
	where, args := listingWhere(filter)
	query := `SELECT ` + listingColumns + `,
		(SELECT i.url FROM images i WHERE i.listing_id = l.id ORDER BY i.id LIMIT 1) AS first_image
		FROM listings l` + where + ` ORDER BY l.id`

	var rows []listingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	listings := make([]model.Listing, len(rows))
	for i, row := range rows {
		listings[i] = row.Listing
		if row.FirstImage.Valid {
			listings[i].Images = []string{row.FirstImage.String}
		}
	}
	return listings, nil
}

// GetByID retrieves a listing with all of its images.
func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	listing := &model.Listing{}
	err := r.db.GetContext(ctx, listing, `SELECT `+listingColumns+` FROM listings l WHERE l.id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	images := []string{}
	if err := r.db.SelectContext(ctx, &images, `SELECT url FROM images WHERE listing_id = ? ORDER BY id`, id); err != nil {
		return nil, err
	}
	listing.Images = images

	return listing, nil
}

// GetOwner retrieves the realtor who owns the listing.
func (r *ListingRepository) GetOwner(ctx context.Context, listingID int64) (*model.User, error) {
	owner := &model.User{}
	err := r.db.GetContext(ctx, owner, `SELECT u.id, u.name, u.email, u.phone, u.password_hash, u.role,
		u.created_at, u.updated_at
		FROM listings l JOIN users u ON u.id = l.realtor_id
		WHERE l.id = ?`, listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return owner, nil
}

// Update applies the non-nil fields of patch. An empty patch is a no-op.
func (r *ListingRepository) Update(ctx context.Context, id int64, patch model.ListingPatch) error {
	sets, args := listingSet(patch)
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := r.db.ExecContext(ctx, `UPDATE listings SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return err
}

// Delete removes the listing together with its images and inquiries in one
// transaction. The schema has no cascading deletes, so children go first.
func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE listing_id = ?`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM images WHERE listing_id = ?`, id); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrListingNotFound
		}
		return nil
	})
}

// listingWhere renders the filter as a WHERE clause over alias l.
func listingWhere(f model.ListingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.City != nil {
		conds = append(conds, "l.city = ?")
		args = append(args, *f.City)
	}
	if f.Price != nil {
		if f.Price.Gte != nil {
			conds = append(conds, "l.price >= ?")
			args = append(args, *f.Price.Gte)
		}
		if f.Price.Lte != nil {
			conds = append(conds, "l.price <= ?")
			args = append(args, *f.Price.Lte)
		}
	}
	if f.PropertyType != nil {
		conds = append(conds, "l.property_type = ?")
		args = append(args, *f.PropertyType)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func listingSet(p model.ListingPatch) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if p.Address != nil {
		add("address", *p.Address)
	}
	if p.City != nil {
		add("city", *p.City)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.LandSize != nil {
		add("land_size", *p.LandSize)
	}
	if p.Bedrooms != nil {
		add("bedrooms", *p.Bedrooms)
	}
	if p.Bathrooms != nil {
		add("bathrooms", *p.Bathrooms)
	}
	if p.PropertyType != nil {
		add("property_type", *p.PropertyType)
	}
	return sets, args
}
