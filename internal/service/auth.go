package service

import (
	"context"
	"errors"
	"strings"

	"github.com/homeline/homeline-go/internal/apperr"
	"github.com/homeline/homeline-go/internal/crypto"
	"github.com/homeline/homeline-go/internal/model"
	"github.com/homeline/homeline-go/internal/repository"
)

var (
	ErrInvalidCredentials = apperr.New(apperr.ErrUnauthorized, "invalid email or password")
	ErrInvalidProductKey  = apperr.New(apperr.ErrUnauthorized, "invalid product key")
	ErrEmailTaken         = apperr.New(apperr.ErrConflict, "email already taken")
	ErrUserNotFound       = apperr.New(apperr.ErrNotFound, "user not found")
)

// AuthService handles signup, signin and product keys.
type AuthService struct {
	repo             UserStore
	hasher           *crypto.Hasher
	tokens           *crypto.TokenIssuer
	validate         StructValidator
	productKeySecret string
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo UserStore, hasher *crypto.Hasher, tokens *crypto.TokenIssuer, validate StructValidator, productKeySecret string) *AuthService {
	return &AuthService{
		repo:             repo,
		hasher:           hasher,
		tokens:           tokens,
		validate:         validate,
		productKeySecret: productKeySecret,
	}
}

// Signup creates a user with the given role and returns a session token.
// Every role but BUYER must present the product key for its email and role.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest, role model.Role) (model.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return model.AuthResponse{}, err
	}

	if role != model.RoleBuyer {
		if req.ProductKey == "" || !s.hasher.VerifyProductKey(req.ProductKey, req.Email, string(role), s.productKeySecret) {
			return model.AuthResponse{}, ErrInvalidProductKey
		}
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return model.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.AuthResponse{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         role,
	}

	// The unique index still decides races between concurrent signups.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	return s.issue(user)
}

// Signin authenticates a user and returns a session token.
func (s *AuthService) Signin(ctx context.Context, req model.SigninRequest) (model.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return model.AuthResponse{}, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	return s.issue(user)
}

// GenerateProductKey returns the key that unlocks signup for the given email
// and role.
func (s *AuthService) GenerateProductKey(_ context.Context, req model.ProductKeyRequest) (model.ProductKeyResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return model.ProductKeyResponse{}, err
	}

	key, err := s.hasher.ProductKey(req.Email, req.UserType, s.productKeySecret)
	if err != nil {
		return model.ProductKeyResponse{}, err
	}
	return model.ProductKeyResponse{ProductKey: key}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *model.User) (model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.Name, user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
