package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/homeline/homeline-go/internal/crypto"
	"github.com/homeline/homeline-go/internal/logging"
	"github.com/homeline/homeline-go/internal/model"
	"github.com/homeline/homeline-go/internal/notify"
	"github.com/homeline/homeline-go/internal/repository"
	"github.com/homeline/homeline-go/internal/validator"
)

const testKeySecret = "test-key-secret"

type services struct {
	store     *repository.MemoryStore
	tokens    *crypto.TokenIssuer
	auth      *AuthService
	listings  *ListingService
	inquiries *InquiryService
	notices   *recordingNotifier
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notify.InquiryNotice
	err     error
	// release, when set, blocks deliveries until it is closed.
	release chan struct{}
}

func (r *recordingNotifier) InquiryReceived(ctx context.Context, n notify.InquiryNotice) error {
	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
	return r.err
}

func (r *recordingNotifier) sent() []notify.InquiryNotice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.InquiryNotice(nil), r.notices...)
}

func newTestServices(t *testing.T) *services {
	t.Helper()

	store := repository.NewMemoryStore()
	hasher := crypto.NewHasher(bcrypt.MinCost)
	tokens := crypto.NewTokenIssuer("test-secret", time.Hour)
	v := validator.New()
	log := logging.Discard()
	notices := &recordingNotifier{}

	listings := NewListingService(store.Listings(), v, log)
	inquiries := NewInquiryService(store.Inquiries(), listings, store.Users(), notices, v, log)
	t.Cleanup(inquiries.Wait)

	return &services{
		store:     store,
		tokens:    tokens,
		auth:      NewAuthService(store.Users(), hasher, tokens, v, testKeySecret),
		listings:  listings,
		inquiries: inquiries,
		notices:   notices,
	}
}

func (s *services) signup(t *testing.T, name, email string, role model.Role) int64 {
	t.Helper()
	ctx := context.Background()

	req := model.SignupRequest{Name: name, Email: email, Phone: "555-123-4567", Password: "hunter22"}
	if role != model.RoleBuyer {
		key, err := s.auth.GenerateProductKey(ctx, model.ProductKeyRequest{Email: email, UserType: string(role)})
		require.NoError(t, err)
		req.ProductKey = key.ProductKey
	}

	resp, err := s.auth.Signup(ctx, req, role)
	require.NoError(t, err)

	claims, err := s.tokens.Parse(resp.Token)
	require.NoError(t, err)
	return claims.UserID
}

func newListingRequest(city string, price float64, images ...string) model.CreateListingRequest {
	req := model.CreateListingRequest{
		Address:           "12 Baker Street",
		NumberOfBedrooms:  3,
		NumberOfBathrooms: 2,
		City:              city,
		Price:             price,
		LandSize:          450,
		PropertyType:      model.PropertyResidential,
	}
	for _, u := range images {
		req.Images = append(req.Images, model.ImageRequest{URL: u})
	}
	return req
}
