package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeline/homeline-go/internal/model"
)

func TestInquiryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInquiryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO messages (message, realtor_id, buyer_id, listing_id)`)).
		WithArgs("Is it still available?", int64(6), int64(30), int64(2)).
		WillReturnResult(sqlmock.NewResult(11, 1))

	inquiry := &model.Inquiry{RealtorID: 6, BuyerID: 30, ListingID: 2, Message: "Is it still available?"}
	require.NoError(t, repo.Create(context.Background(), inquiry))
	assert.Equal(t, int64(11), inquiry.ID)
	assert.False(t, inquiry.CreatedAt.IsZero())
}

func TestInquiryCreateListingGone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInquiryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO messages`)).
		WillReturnError(&mysql.MySQLError{
			Number:  1452,
			Message: "Cannot add or update a child row: a foreign key constraint fails (`homeline`.`messages`, CONSTRAINT `fk_messages_listing` FOREIGN KEY (`listing_id`) REFERENCES `listings` (`id`))",
		})

	err := repo.Create(context.Background(), &model.Inquiry{RealtorID: 6, BuyerID: 30, ListingID: 2, Message: "Hello"})
	assert.True(t, errors.Is(err, ErrListingNotFound))
}

func TestIsMissingParentError(t *testing.T) {
	listingFK := &mysql.MySQLError{Number: 1452, Message: "... CONSTRAINT `fk_messages_listing` FOREIGN KEY (`listing_id`) REFERENCES `listings` (`id`))"}
	buyerFK := &mysql.MySQLError{Number: 1452, Message: "... CONSTRAINT `fk_messages_buyer` FOREIGN KEY (`buyer_id`) REFERENCES `users` (`id`))"}

	assert.True(t, isMissingParentError(listingFK, "listings"))
	assert.False(t, isMissingParentError(buyerFK, "listings"))
	assert.False(t, isMissingParentError(&mysql.MySQLError{Number: 1062}, "listings"))
	assert.False(t, isMissingParentError(nil, "listings"))
}

func TestInquiryListByListing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInquiryRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM messages m JOIN users u ON u.id = m.buyer_id`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "message", "created_at", "buyer_name", "buyer_email", "buyer_phone"}).
			AddRow(11, "Is it still available?", now, "Laith", "laith@example.com", "555 555 5555"))

	views, err := repo.ListByListing(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Laith", views[0].Buyer.Name)
	assert.Equal(t, "laith@example.com", views[0].Buyer.Email)
}

func TestInquiryListByListingEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInquiryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM messages m`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "message", "created_at", "buyer_name", "buyer_email", "buyer_phone"}))

	views, err := repo.ListByListing(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}
