package mysql

import (
	"context"

	clientDomain "microfinance-backoffice/internal/domain/client"

	"gorm.io/gorm"
)

type ClientRepository struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) *ClientRepository { return &ClientRepository{db: db} }

func (r *ClientRepository) Create(ctx context.Context, c *clientDomain.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientRepository) Save(ctx context.Context, c *clientDomain.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint64) (*clientDomain.Client, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ClientRepository) GetByClientID(ctx context.Context, clientID string) (*clientDomain.Client, error) {
	return r.first(ctx, "client_id = ?", clientID)
}

func (r *ClientRepository) GetByNationalID(ctx context.Context, nationalID string) (*clientDomain.Client, error) {
	return r.first(ctx, "national_id = ?", nationalID)
}

func (r *ClientRepository) List(ctx context.Context, status clientDomain.Status) ([]clientDomain.Client, error) {
	var out []clientDomain.Client
	q := r.db.WithContext(ctx).Order("last_name, first_name, id")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *ClientRepository) first(ctx context.Context, query string, arg any) (*clientDomain.Client, error) {
	var out clientDomain.Client
	if err := r.db.WithContext(ctx).Where(query, arg).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
