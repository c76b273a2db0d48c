package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shoplite/shoplite-backend/pkg/db/models"
	pkgerrors "github.com/shoplite/shoplite-backend/pkg/errors"
	"gorm.io/gorm"
)

// ProductSnapshot is the catalog data frozen onto a cart line at add time.
type ProductSnapshot struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Title     string          `json:"title" validate:"required"`
	UnitPrice decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
}

// Line is the transport shape of one cart row.
type Line struct {
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Cart is the user's cart with derived totals. Subtotal and ItemCount are
// always recomputed from the lines, never stored.
type Cart struct {
	Items     []Line          `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"item_count"`
}

// Service exposes the single authoritative cart per user.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Add(ctx context.Context, userID uuid.UUID, snapshot ProductSnapshot, qty int) (*Cart, error)
	SetQuantity(ctx context.Context, userID uuid.UUID, productID int64, qty int) (*Cart, error)
	Remove(ctx context.Context, userID uuid.UUID, productID int64) (*Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) (*Cart, error)
}

type cartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindLine(ctx context.Context, userID uuid.UUID, productID int64) (*models.CartItem, error)
	Save(ctx context.Context, item *models.CartItem) error
	DeleteLine(ctx context.Context, userID uuid.UUID, productID int64) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo cartRepository
}

// NewService builds a cart service backed by the provided repository.
func NewService(repo cartRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.load(ctx, userID)
}

// Add appends qty units of the product, merging into an existing line.
// A non-positive quantity defaults to one.
func (s *service) Add(ctx context.Context, userID uuid.UUID, snapshot ProductSnapshot, qty int) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if snapshot.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if snapshot.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product title is required")
	}
	if snapshot.UnitPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price must be non-negative")
	}
	if qty <= 0 {
		qty = 1
	}

	line, err := s.repo.FindLine(ctx, userID, snapshot.ProductID)
	switch {
	case err == nil:
		line.Quantity += qty
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = &models.CartItem{
			UserID:    userID,
			ProductID: snapshot.ProductID,
			Title:     snapshot.Title,
			UnitPrice: snapshot.UnitPrice,
			Quantity:  qty,
			Image:     snapshot.Image,
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart line")
	}

	if err := s.repo.Save(ctx, line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save cart line")
	}
	return s.load(ctx, userID)
}

// SetQuantity replaces the line's quantity. Zero or below removes the line;
// a missing line is a no-op.
func (s *service) SetQuantity(ctx context.Context, userID uuid.UUID, productID int64, qty int) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	if qty <= 0 {
		if err := s.repo.DeleteLine(ctx, userID, productID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart line")
		}
		return s.load(ctx, userID)
	}

	line, err := s.repo.FindLine(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.load(ctx, userID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart line")
	}

	line.Quantity = qty
	if err := s.repo.Save(ctx, line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save cart line")
	}
	return s.load(ctx, userID)
}

// Remove drops the line for the product. Removing an absent line is a no-op.
func (s *service) Remove(ctx context.Context, userID uuid.UUID, productID int64) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.repo.DeleteLine(ctx, userID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart line")
	}
	return s.load(ctx, userID)
}

// Clear empties the cart. Clearing an empty cart still persists.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.repo.DeleteAllForUser(ctx, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return s.load(ctx, userID)
}

func (s *service) load(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart lines")
	}
	return FromModels(items), nil
}

// FromModels derives the transport cart, recomputing subtotal and item count.
func FromModels(items []models.CartItem) *Cart {
	cart := &Cart{
		Items:    make([]Line, 0, len(items)),
		Subtotal: decimal.Zero,
	}
	for _, item := range items {
		lineTotal := item.LineTotal()
		cart.Items = append(cart.Items, Line{
			ProductID: item.ProductID,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Image:     item.Image,
			LineTotal: lineTotal,
		})
		cart.Subtotal = cart.Subtotal.Add(lineTotal)
		cart.ItemCount += item.Quantity
	}
	return cart
}
