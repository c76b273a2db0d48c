package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shoplite/shoplite-backend/internal/repo"
	"github.com/shoplite/shoplite-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence operations for cart line items.
type Repository struct {
	repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{Base: repo.NewBase(tx)}
}

// ListByUser returns the user's cart lines in insertion order.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.DB(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindLine loads the single line for the (user, product) pair.
func (r *Repository) FindLine(ctx context.Context, userID uuid.UUID, productID int64) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Save persists the provided line, inserting or updating as needed.
func (r *Repository) Save(ctx context.Context, item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.DB(ctx).Save(item).Error
}

// DeleteLine removes the line for the (user, product) pair. Deleting an
// absent line is not an error.
func (r *Repository) DeleteLine(ctx context.Context, userID uuid.UUID, productID int64) error {
	return r.DB(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

// DeleteAllForUser empties the user's cart.
func (r *Repository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.DB(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
