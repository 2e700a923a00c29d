package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/homeline/homeline-go/internal/apperr"
	"github.com/homeline/homeline-go/internal/model"
)

var ErrInvalidFilter = apperr.New(apperr.ErrValidation, "invalid listing filter")

// BuildListingFilter turns raw query parameters into a listing predicate.
// Empty parameters are left out. The price range is omitted entirely unless
// at least one bound is given.
func BuildListingFilter(city, minPrice, maxPrice, propertyType string) (model.ListingFilter, error) {
	var f model.ListingFilter

	if city = strings.TrimSpace(city); city != "" {
		f.City = &city
	}

	gte, err := parsePrice(minPrice)
	if err != nil {
		return model.ListingFilter{}, err
	}
	lte, err := parsePrice(maxPrice)
	if err != nil {
		return model.ListingFilter{}, err
	}
	if gte != nil || lte != nil {
		f.Price = &model.PriceRange{Gte: gte, Lte: lte}
	}

	if propertyType != "" {
		pt, err := model.ParsePropertyType(propertyType)
		if err != nil {
			return model.ListingFilter{}, ErrInvalidFilter
		}
		f.PropertyType = &pt
	}

	return f, nil
}

func parsePrice(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil, ErrInvalidFilter
	}
	return &v, nil
}
