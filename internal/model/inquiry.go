package model

import "time"

// Inquiry is a buyer's message about a listing, addressed to the realtor who
// owned the listing when it was sent. Inquiries are never edited.
type Inquiry struct {
	ID        int64     `db:"id"`
	RealtorID int64     `db:"realtor_id"`
	BuyerID   int64     `db:"buyer_id"`
	ListingID int64     `db:"listing_id"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

// BuyerContact is the part of the buyer a realtor may see.
type BuyerContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// InquiryView is an inquiry joined with its buyer's contact fields.
type InquiryView struct {
	ID        int64        `json:"id"`
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"createdAt"`
	Buyer     BuyerContact `json:"buyer"`
}

// InquiryRequest is the body a buyer posts to a listing.
type InquiryRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// InquiryResponse is returned after an inquiry is stored.
type InquiryResponse struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listingId"`
	RealtorID int64     `json:"realtorId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
