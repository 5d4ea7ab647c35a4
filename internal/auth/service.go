package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/frahmantamala/expense-api/internal/core/common/dberr"
	"github.com/frahmantamala/expense-api/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/expense-api/internal/core/datamodel/user"
	"github.com/frahmantamala/expense-api/internal/user"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterDTO) (*user.User, error)
	Authenticate(ctx context.Context, dto LoginDTO) (*TokenResponse, error)
	ResolveToken(ctx context.Context, token string) (*internal.AuthUser, error)
}

// RepositoryAPI returns nil, nil from GetByEmail when no user matches.
type RepositoryAPI interface {
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(subject string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Service is the main auth service with dependencies
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Register creates an active account. A duplicate email is reported as a
// conflict whether the pre-check or the unique index catches it.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*user.User, error) {
	dto.Normalize()
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to check email", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailAlreadyRegistered
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	row := &userDatamodel.User{
		Email:        dto.Email,
		PasswordHash: hash,
		FullName:     dto.FullName,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.ErrEmailAlreadyRegistered
		}
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", row.ID)
	return user.FromDataModel(row), nil
}

// Authenticate checks the email and password and issues an access token.
// Unknown email, wrong password and inactive account look the same.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*TokenResponse, error) {
	dto.Username = strings.TrimSpace(dto.Username)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(ctx, dto.Username)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if u == nil || !u.IsActive {
		return nil, internal.ErrIncorrectCredentials
	}

	if err := VerifyPassword(u.PasswordHash, dto.Password); err != nil {
		return nil, internal.ErrIncorrectCredentials
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(u.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   TokenTypeBearer,
	}, nil
}

// ResolveToken maps a bearer token to an active user. Every failure other
// than a storage error is ErrInvalidCredentials.
func (s *Service) ResolveToken(ctx context.Context, token string) (*internal.AuthUser, error) {
	if token == "" {
		return nil, internal.ErrInvalidCredentials
	}

	claims, err := s.tokenGenerator.ValidateToken(token)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if u == nil || !u.IsActive {
		return nil, internal.ErrInvalidCredentials
	}

	return &internal.AuthUser{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
	}, nil
}
