package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sellerdesk/margin-api/internal/domain"
	"github.com/sellerdesk/margin-api/internal/domain/entity"
	"github.com/sellerdesk/margin-api/internal/domain/repository"
)

var _ repository.MerchantRepository = (*MerchantRepo)(nil)

// MerchantRepo implements the MerchantRepository port on PostgreSQL.
type MerchantRepo struct {
	q Querier
}

// NewMerchantRepository builds the persistence adapter.
func NewMerchantRepository(q Querier) *MerchantRepo {
	return &MerchantRepo{q: q}
}

const merchantColumns = `id, email, password_hash, status, created_at, updated_at`

// Create inserts a merchant. A duplicate email maps to
// domain.ErrEmailAlreadyExists.
func (r *MerchantRepo) Create(ctx context.Context, m *entity.Merchant) error {
	query := `INSERT INTO merchants (` + merchantColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Email, m.PasswordHash, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert merchant: %w", err)
	}
	return nil
}

// FindByID fetches a merchant by id; (nil, nil) when absent.
func (r *MerchantRepo) FindByID(ctx context.Context, id string) (*entity.Merchant, error) {
	return r.findOne(ctx, `SELECT `+merchantColumns+` FROM merchants WHERE id = $1`, id)
}

// FindByEmail fetches a merchant by email; (nil, nil) when absent.
func (r *MerchantRepo) FindByEmail(ctx context.Context, email string) (*entity.Merchant, error) {
	return r.findOne(ctx, `SELECT `+merchantColumns+` FROM merchants WHERE email = $1`, email)
}

func (r *MerchantRepo) findOne(ctx context.Context, query string, arg any) (*entity.Merchant, error) {
	var m entity.Merchant
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.Email, &m.PasswordHash, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merchant: %w", err)
	}
	return &m, nil
}
