package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/homeline/homeline-go/internal/apperr"
	"github.com/homeline/homeline-go/internal/model"
	"github.com/homeline/homeline-go/internal/repository"
)

var (
	ErrListingNotFound = apperr.New(apperr.ErrNotFound, "listing not found")
	ErrNoListings      = apperr.New(apperr.ErrNotFound, "no listings match the filter")
	ErrNotListingOwner = apperr.New(apperr.ErrUnauthorized, "only the listing's realtor may do this")
)

// ListingService handles listing business logic.
type ListingService struct {
	repo     ListingStore
	validate StructValidator
	log      *slog.Logger
}

// NewListingService creates a new ListingService.
func NewListingService(repo ListingStore, validate StructValidator, log *slog.Logger) *ListingService {
	return &ListingService{repo: repo, validate: validate, log: log}
}

// CreateListing stores a listing owned by ownerID together with its images.
func (s *ListingService) CreateListing(ctx context.Context, req model.CreateListingRequest, ownerID int64) (model.ListingDetail, error) {
	if err := s.validate.Struct(req); err != nil {
		return model.ListingDetail{}, err
	}

	images := make([]string, len(req.Images))
	for i, img := range req.Images {
		images[i] = img.URL
	}

	listing := &model.Listing{
		Address:      req.Address,
		City:         req.City,
		Price:        req.Price,
		LandSize:     req.LandSize,
		Bedrooms:     req.NumberOfBedrooms,
		Bathrooms:    req.NumberOfBathrooms,
		PropertyType: req.PropertyType,
		RealtorID:    ownerID,
		Images:       images,
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return model.ListingDetail{}, fmt.Errorf("create listing: %w", err)
	}

	s.log.Info("listing created", "listing_id", listing.ID, "realtor_id", ownerID, "images", len(images))
	return listing.Detail(), nil
}

// ListListings returns the listings matching filter, each with its first
// image. No match is reported as ErrNoListings rather than an empty slice.
func (s *ListingService) ListListings(ctx context.Context, filter model.ListingFilter) ([]model.ListingSummary, error) {
	listings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, ErrNoListings
	}

	result := make([]model.ListingSummary, len(listings))
	for i := range listings {
		result[i] = listings[i].Summary()
	}
	return result, nil
}

// GetListing returns a listing with all of its images.
func (s *ListingService) GetListing(ctx context.Context, id int64) (model.ListingDetail, error) {
	listing, err := s.get(ctx, id)
	if err != nil {
		return model.ListingDetail{}, err
	}
	return listing.Detail(), nil
}

// GetOwnerOfListing returns the realtor who owns the listing.
func (s *ListingService) GetOwnerOfListing(ctx context.Context, id int64) (*model.User, error) {
	owner, err := s.repo.GetOwner(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return owner, nil
}

// EnsureOwner fails with ErrNotListingOwner unless callerID owns the listing.
func (s *ListingService) EnsureOwner(ctx context.Context, id, callerID int64) error {
	owner, err := s.GetOwnerOfListing(ctx, id)
	if err != nil {
		return err
	}
	if owner.ID != callerID {
		return ErrNotListingOwner
	}
	return nil
}

// UpdateListing applies req to an existing listing and returns the result.
// Ownership is checked by the caller with EnsureOwner.
func (s *ListingService) UpdateListing(ctx context.Context, id int64, req model.UpdateListingRequest) (model.ListingDetail, error) {
	if err := s.validate.Struct(req); err != nil {
		return model.ListingDetail{}, err
	}

	if _, err := s.get(ctx, id); err != nil {
		return model.ListingDetail{}, err
	}

	if err := s.repo.Update(ctx, id, req.Patch()); err != nil {
		return model.ListingDetail{}, fmt.Errorf("update listing %d: %w", id, err)
	}

	return s.GetListing(ctx, id)
}

// DeleteListing removes a listing and everything attached to it.
func (s *ListingService) DeleteListing(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return ErrListingNotFound
		}
		return fmt.Errorf("delete listing %d: %w", id, err)
	}

	s.log.Info("listing deleted", "listing_id", id)
	return nil
}

func (s *ListingService) get(ctx context.Context, id int64) (*model.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}
