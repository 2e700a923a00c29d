package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/homeline/homeline-go/internal/model"
	"github.com/homeline/homeline-go/internal/notify"
	"github.com/homeline/homeline-go/internal/repository"
)

// notifyTimeout bounds a single notification delivery.
const notifyTimeout = 30 * time.Second

// InquiryService handles buyer messages to realtors.
type InquiryService struct {
	repo     InquiryStore
	listings *ListingService
	users    UserStore
	notifier notify.Notifier
	validate StructValidator
	log      *slog.Logger

	pending sync.WaitGroup
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService(repo InquiryStore, listings *ListingService, users UserStore, notifier notify.Notifier, validate StructValidator, log *slog.Logger) *InquiryService {
	return &InquiryService{
		repo:     repo,
		listings: listings,
		users:    users,
		notifier: notifier,
		validate: validate,
		log:      log,
	}
}

// CreateInquiry stores a message from buyerID to whoever owns the listing
// right now. The realtor is notified in the background; a failed
// notification is logged and does not fail the call.
func (s *InquiryService) CreateInquiry(ctx context.Context, buyerID, listingID int64, req model.InquiryRequest) (model.InquiryResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return model.InquiryResponse{}, err
	}

	realtor, err := s.listings.GetOwnerOfListing(ctx, listingID)
	if err != nil {
		return model.InquiryResponse{}, err
	}

	inquiry := &model.Inquiry{
		RealtorID: realtor.ID,
		BuyerID:   buyerID,
		ListingID: listingID,
		Message:   req.Message,
	}
	if err := s.repo.Create(ctx, inquiry); err != nil {
		// The listing may be deleted between the owner lookup and the insert.
		if errors.Is(err, repository.ErrListingNotFound) {
			return model.InquiryResponse{}, ErrListingNotFound
		}
		return model.InquiryResponse{}, fmt.Errorf("create inquiry: %w", err)
	}

	s.notify(ctx, s.notice(ctx, realtor, inquiry), inquiry.ID)

	return model.InquiryResponse{
		ID:        inquiry.ID,
		ListingID: inquiry.ListingID,
		RealtorID: inquiry.RealtorID,
		Message:   inquiry.Message,
		CreatedAt: inquiry.CreatedAt,
	}, nil
}

// ListInquiries returns all inquiries sent about a listing.
// Ownership is checked by the caller with ListingService.EnsureOwner.
func (s *InquiryService) ListInquiries(ctx context.Context, listingID int64) ([]model.InquiryView, error) {
	return s.repo.ListByListing(ctx, listingID)
}

// Wait blocks until every notification started so far has finished.
func (s *InquiryService) Wait() {
	s.pending.Wait()
}

func (s *InquiryService) notice(ctx context.Context, realtor *model.User, inquiry *model.Inquiry) notify.InquiryNotice {
	n := notify.InquiryNotice{
		RealtorName:  realtor.Name,
		RealtorEmail: realtor.Email,
		ListingID:    inquiry.ListingID,
		Message:      inquiry.Message,
	}

	if listing, err := s.listings.GetListing(ctx, inquiry.ListingID); err == nil {
		n.ListingAddress = listing.Address
	}
	if buyer, err := s.users.GetByID(ctx, inquiry.BuyerID); err == nil {
		n.BuyerName = buyer.Name
		n.BuyerEmail = buyer.Email
		n.BuyerPhone = buyer.Phone
	}
	return n
}

// notify delivers n without holding up the request. The delivery outlives
// the request context but is bounded by notifyTimeout.
func (s *InquiryService) notify(ctx context.Context, n notify.InquiryNotice, inquiryID int64) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()

		if err := s.notifier.InquiryReceived(sendCtx, n); err != nil {
			s.log.Warn("inquiry notification failed", "inquiry_id", inquiryID, "error", err)
		}
	}()
}
