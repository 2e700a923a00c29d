package model

import (
	"fmt"
	"time"
)

type PropertyType string

const (
	PropertyResidential PropertyType = "RESIDENTIAL"
	PropertyCondo       PropertyType = "CONDO"
)

// ParsePropertyType validates a property type from a query string or body.
func ParsePropertyType(s string) (PropertyType, error) {
	switch p := PropertyType(s); p {
	case PropertyResidential, PropertyCondo:
		return p, nil
	default:
		return "", fmt.Errorf("unknown property type %q", s)
	}
}

// Listing is a property offered by a realtor. RealtorID is fixed at creation.
// Images holds the listing's image URLs in insertion order; summary queries
// load only the first one.
type Listing struct {
	ID           int64        `db:"id"`
	Address      string       `db:"address"`
	City         string       `db:"city"`
	Price        float64      `db:"price"`
	LandSize     float64      `db:"land_size"`
	Bedrooms     int          `db:"bedrooms"`
	Bathrooms    float64      `db:"bathrooms"`
	PropertyType PropertyType `db:"property_type"`
	RealtorID    int64        `db:"realtor_id"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	Images       []string     `db:"-"`
}

// Image is a row of the images table.
type Image struct {
	ID        int64  `db:"id"`
	URL       string `db:"url"`
	ListingID int64  `db:"listing_id"`
}

// PriceRange bounds a listing price. A nil bound is open.
type PriceRange struct {
	Gte *float64
	Lte *float64
}

// ListingFilter is the search predicate for listings. Nil fields are not
// constrained; a zero ListingFilter matches every listing.
type ListingFilter struct {
	City         *string
	Price        *PriceRange
	PropertyType *PropertyType
}

// IsEmpty reports whether the filter constrains nothing.
func (f ListingFilter) IsEmpty() bool {
	return f.City == nil && f.Price == nil && f.PropertyType == nil
}

// ListingPatch is a partial listing update; nil fields are left untouched.
type ListingPatch struct {
	Address      *string
	City         *string
	Price        *float64
	LandSize     *float64
	Bedrooms     *int
	Bathrooms    *float64
	PropertyType *PropertyType
}

// IsEmpty reports whether the patch changes nothing.
func (p ListingPatch) IsEmpty() bool {
	return p.Address == nil && p.City == nil && p.Price == nil && p.LandSize == nil &&
		p.Bedrooms == nil && p.Bathrooms == nil && p.PropertyType == nil
}

// ImageRequest is one image of a new listing.
type ImageRequest struct {
	URL string `json:"url" validate:"required,url,max=2048"`
}

// CreateListingRequest represents a new listing posted by a realtor.
type CreateListingRequest struct {
	Address           string         `json:"address" validate:"required,max=255"`
	NumberOfBedrooms  int            `json:"numberOfBedrooms" validate:"gte=0"`
	NumberOfBathrooms float64        `json:"numberOfBathrooms" validate:"gte=0"`
	City              string         `json:"city" validate:"required,max=100"`
	Price             float64        `json:"price" validate:"gt=0"`
	LandSize          float64        `json:"landSize" validate:"gt=0"`
	PropertyType      PropertyType   `json:"propertyType" validate:"required,property_type"`
	Images            []ImageRequest `json:"images" validate:"dive"`
}

// UpdateListingRequest represents a partial listing update.
type UpdateListingRequest struct {
	Address           *string       `json:"address,omitempty" validate:"omitempty,min=1,max=255"`
	NumberOfBedrooms  *int          `json:"numberOfBedrooms,omitempty" validate:"omitempty,gte=0"`
	NumberOfBathrooms *float64      `json:"numberOfBathrooms,omitempty" validate:"omitempty,gte=0"`
	City              *string       `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Price             *float64      `json:"price,omitempty" validate:"omitempty,gt=0"`
	LandSize          *float64      `json:"landSize,omitempty" validate:"omitempty,gt=0"`
	PropertyType      *PropertyType `json:"propertyType,omitempty" validate:"omitempty,property_type"`
}

// Patch converts the request to a ListingPatch.
func (r UpdateListingRequest) Patch() ListingPatch {
	return ListingPatch{
		Address:      r.Address,
		City:         r.City,
		Price:        r.Price,
		LandSize:     r.LandSize,
		Bedrooms:     r.NumberOfBedrooms,
		Bathrooms:    r.NumberOfBathrooms,
		PropertyType: r.PropertyType,
	}
}

// ListingSummary is a search result: the listing with at most one image.
type ListingSummary struct {
	ID                int64        `json:"id"`
	Address           string       `json:"address"`
	City              string       `json:"city"`
	Price             float64      `json:"price"`
	PropertyType      PropertyType `json:"propertyType"`
	NumberOfBedrooms  int          `json:"numberOfBedrooms"`
	NumberOfBathrooms float64      `json:"numberOfBathrooms"`
	Image             string       `json:"image,omitempty"`
}

// ListingDetail is a single listing with all of its images.
type ListingDetail struct {
	ID                int64        `json:"id"`
	Address           string       `json:"address"`
	City              string       `json:"city"`
	Price             float64      `json:"price"`
	LandSize          float64      `json:"landSize"`
	PropertyType      PropertyType `json:"propertyType"`
	NumberOfBedrooms  int          `json:"numberOfBedrooms"`
	NumberOfBathrooms float64      `json:"numberOfBathrooms"`
	RealtorID         int64        `json:"realtorId"`
	Images            []string     `json:"images"`
}

// Summary projects the listing for search results.
func (l *Listing) Summary() ListingSummary {
	s := ListingSummary{
		ID:                l.ID,
		Address:           l.Address,
		City:              l.City,
		Price:             l.Price,
		PropertyType:      l.PropertyType,
		NumberOfBedrooms:  l.Bedrooms,
		NumberOfBathrooms: l.Bathrooms,
	}
	if len(l.Images) > 0 {
		s.Image = l.Images[0]
	}
	return s
}

// Detail projects the listing with all images.
func (l *Listing) Detail() ListingDetail {
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return ListingDetail{
		ID:                l.ID,
		Address:           l.Address,
		City:              l.City,
		Price:             l.Price,
		LandSize:          l.LandSize,
		PropertyType:      l.PropertyType,
		NumberOfBedrooms:  l.Bedrooms,
		NumberOfBathrooms: l.Bathrooms,
		RealtorID:         l.RealtorID,
		Images:            images,
	}
}
