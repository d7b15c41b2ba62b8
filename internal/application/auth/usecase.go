package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sellerdesk/margin-api/internal/application/dto"
	"github.com/sellerdesk/margin-api/internal/domain"
	"github.com/sellerdesk/margin-api/internal/domain/entity"
	"github.com/sellerdesk/margin-api/internal/domain/repository"
	"github.com/sellerdesk/margin-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registration and login for merchants.
type AuthUseCase struct {
	merchants repository.MerchantRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase builds the use case.
func NewAuthUseCase(merchants repository.MerchantRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{merchants: merchants, jwtCfg: jwtCfg}
}

// Register creates a merchant: hashes the password with bcrypt and
// persists. Returns ErrEmailAlreadyExists on a taken email.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.MerchantResponse, error) {
	existing, _ := uc.merchants.FindByEmail(ctx, in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	m := &entity.Merchant{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.merchants.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMerchantResponse(m), nil
}

// Login verifies email/password and returns a signed JWT plus the merchant.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	m, err := uc.merchants.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMerchantNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if m.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, m.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Merchant: *toMerchantResponse(m),
	}, nil
}

func toMerchantResponse(m *entity.Merchant) *dto.MerchantResponse {
	if m == nil {
		return nil
	}
	return &dto.MerchantResponse{
		ID:        m.ID,
		Email:     m.Email,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}
