package service

import (
	"context"

	"github.com/homeline/homeline-go/internal/model"
)

// UserStore persists users. Implemented by repository.UserRepository and
// repository.MemoryUsers.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// ListingStore persists listings and their images. Create and Delete are
// atomic: either the listing and all its images are written or removed, or
// nothing is.
type ListingStore interface {
	Create(ctx context.Context, listing *model.Listing) error
	List(ctx context.Context, filter model.ListingFilter) ([]model.Listing, error)
	GetByID(ctx context.Context, id int64) (*model.Listing, error)
	GetOwner(ctx context.Context, listingID int64) (*model.User, error)
	Update(ctx context.Context, id int64, patch model.ListingPatch) error
	Delete(ctx context.Context, id int64) error
}

// InquiryStore persists buyer messages.
type InquiryStore interface {
	Create(ctx context.Context, inquiry *model.Inquiry) error
	ListByListing(ctx context.Context, listingID int64) ([]model.InquiryView, error)
}

// StructValidator validates request DTOs.
type StructValidator interface {
	Struct(s any) error
}
