package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/homeline/homeline-go/internal/model"
)

// InquiryRepository handles buyer message persistence.
type InquiryRepository struct {
	db *sqlx.DB
}

// NewInquiryRepository creates a new InquiryRepository.
func NewInquiryRepository(db *sqlx.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// Create inserts an inquiry and sets its ID and creation time. A listing
// deleted before the insert yields ErrListingNotFound.
func (r *InquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (message, realtor_id, buyer_id, listing_id) VALUES (?, ?, ?, ?)`,
		inquiry.Message, inquiry.RealtorID, inquiry.BuyerID, inquiry.ListingID,
	)
	if err != nil {
		if isMissingParentError(err, "listings") {
			return ErrListingNotFound
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	inquiry.ID = id
	inquiry.CreatedAt = time.Now().UTC()
	return nil
}

type inquiryRow struct {
	ID         int64     `db:"id"`
	Message    string    `db:"message"`
	CreatedAt  time.Time `db:"created_at"`
	BuyerName  string    `db:"buyer_name"`
	BuyerEmail string    `db:"buyer_email"`
	BuyerPhone string    `db:"buyer_phone"`
}

// ListByListing returns a listing's inquiries, oldest first, with the
// buyer's contact fields.
func (r *InquiryRepository) ListByListing(ctx context.Context, listingID int64) ([]model.InquiryView, error) {
	var rows []inquiryRow
	err := r.db.SelectContext(ctx, &rows, `SELECT m.id, m.message, m.created_at,
		u.name AS buyer_name, u.email AS buyer_email, u.phone AS buyer_phone
		FROM messages m JOIN users u ON u.id = m.buyer_id
		WHERE m.listing_id = ?
		ORDER BY m.id`, listingID)
	if err != nil {
		return nil, err
	}

	views := make([]model.InquiryView, len(rows))
	for i, row := range rows {
		views[i] = model.InquiryView{
			ID:        row.ID,
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
			Buyer: model.BuyerContact{
				Name:  row.BuyerName,
				Email: row.BuyerEmail,
				Phone: row.BuyerPhone,
			},
		}
	}
	return views, nil
}
