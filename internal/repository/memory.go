package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/homeline/homeline-go/internal/model"
)

// MemoryStore keeps users, listings and inquiries in process memory. It
// mirrors the MySQL repositories' semantics and serves tests and local runs
// without a database.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[int64]model.User
	listings  map[int64]model.Listing
	inquiries map[int64]model.Inquiry
	nextID    int64
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[int64]model.User),
		listings:  make(map[int64]model.Listing),
		inquiries: make(map[int64]model.Inquiry),
	}
}

func (s *MemoryStore) Users() *MemoryUsers         { return &MemoryUsers{s} }
func (s *MemoryStore) Listings() *MemoryListings   { return &MemoryListings{s} }
func (s *MemoryStore) Inquiries() *MemoryInquiries { return &MemoryInquiries{s} }

// id must be called with mu held.
func (s *MemoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

type MemoryUsers struct{ s *MemoryStore }

func (r *MemoryUsers) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	user.ID = r.s.id()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r *MemoryUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

type MemoryListings struct{ s *MemoryStore }

func (r *MemoryListings) Create(_ context.Context, listing *model.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[listing.RealtorID]; !ok {
		return ErrUserNotFound
	}

	now := time.Now().UTC()
	listing.ID = r.s.id()
	listing.CreatedAt, listing.UpdatedAt = now, now

	stored := *listing
	stored.Images = append([]string(nil), listing.Images...)
	r.s.listings[stored.ID] = stored
	return nil
}

func (r *MemoryListings) List(_ context.Context, filter model.ListingFilter) ([]model.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.Listing
	for _, l := range r.s.listings {
		if !matches(l, filter) {
			continue
		}
		if len(l.Images) > 0 {
			l.Images = []string{l.Images[0]}
		} else {
			l.Images = nil
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryListings) GetByID(_ context.Context, id int64) (*model.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.listings[id]
	if !ok {
		return nil, ErrListingNotFound
	}
	l.Images = append([]string{}, l.Images...)
	return &l, nil
}

func (r *MemoryListings) GetOwner(_ context.Context, listingID int64) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.listings[listingID]
	if !ok {
		return nil, ErrListingNotFound
	}
	u, ok := r.s.users[l.RealtorID]
	if !ok {
		return nil, ErrListingNotFound
	}
	return &u, nil
}

func (r *MemoryListings) Update(_ context.Context, id int64, p model.ListingPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.listings[id]
	if !ok || p.IsEmpty() {
		return nil
	}

	if p.Address != nil {
		l.Address = *p.Address
	}
	if p.City != nil {
		l.City = *p.City
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.LandSize != nil {
		l.LandSize = *p.LandSize
	}
	if p.Bedrooms != nil {
		l.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		l.Bathrooms = *p.Bathrooms
	}
	if p.PropertyType != nil {
		l.PropertyType = *p.PropertyType
	}
	l.UpdatedAt = time.Now().UTC()
	r.s.listings[id] = l
	return nil
}

func (r *MemoryListings) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.listings[id]; !ok {
		return ErrListingNotFound
	}
	for qid, q := range r.s.inquiries {
		if q.ListingID == id {
			delete(r.s.inquiries, qid)
		}
	}
	delete(r.s.listings, id)
	return nil
}

func matches(l model.Listing, f model.ListingFilter) bool {
	if f.City != nil && l.City != *f.City {
		return false
	}
	if f.Price != nil {
		if f.Price.Gte != nil && l.Price < *f.Price.Gte {
			return false
		}
		if f.Price.Lte != nil && l.Price > *f.Price.Lte {
			return false
		}
	}
	if f.PropertyType != nil && l.PropertyType != *f.PropertyType {
		return false
	}
	return true
}

type MemoryInquiries struct{ s *MemoryStore }

func (r *MemoryInquiries) Create(_ context.Context, inquiry *model.Inquiry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.listings[inquiry.ListingID]; !ok {
		return ErrListingNotFound
	}

	inquiry.ID = r.s.id()
	inquiry.CreatedAt = time.Now().UTC()
	r.s.inquiries[inquiry.ID] = *inquiry
	return nil
}

func (r *MemoryInquiries) ListByListing(_ context.Context, listingID int64) ([]model.InquiryView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	views := []model.InquiryView{}
	for _, q := range r.s.inquiries {
		if q.ListingID != listingID {
			continue
		}
		buyer := r.s.users[q.BuyerID]
		views = append(views, model.InquiryView{
			ID:        q.ID,
			Message:   q.Message,
			CreatedAt: q.CreatedAt,
			Buyer: model.BuyerContact{
				Name:  buyer.Name,
				Email: buyer.Email,
				Phone: buyer.Phone,
			},
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}
