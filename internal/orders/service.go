package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shoplite/shoplite-backend/internal/cart"
	"github.com/shoplite/shoplite-backend/pkg/db"
	"github.com/shoplite/shoplite-backend/pkg/db/models"
	pkgerrors "github.com/shoplite/shoplite-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes checkout and order history.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
}

type service struct {
	db *db.Client
}

// ServiceParams packages the dependencies for the orders flow.
type ServiceParams struct {
	DB *db.Client
}

// NewService builds an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: params.DB}, nil
}

// Checkout snapshots the cart into an immutable order and empties the cart,
// all inside one transaction. An empty cart is rejected before anything is
// written.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID) (*OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	var placed *models.Order
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := cart.NewRepository(tx)
		orderRepo := NewRepository(tx)

		lines, err := cartRepo.ListByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		orderID := uuid.New()
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			total = total.Add(line.LineTotal())
			items = append(items, models.OrderItem{
				ID:        uuid.New(),
				OrderID:   orderID,
				ProductID: line.ProductID,
				Title:     line.Title,
				UnitPrice: line.UnitPrice,
				Quantity:  line.Quantity,
				Image:     line.Image,
			})
		}

		order := &models.Order{
			ID:       orderID,
			UserID:   userID,
			Total:    total,
			PlacedAt: time.Now().UTC(),
			Items:    items,
		}
		if _, err := orderRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		if err := cartRepo.DeleteAllForUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "empty cart")
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromModel(placed), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	records, err := NewRepository(s.db.DB()).ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	orders := make([]OrderDTO, 0, len(records))
	for i := range records {
		orders = append(orders, *FromModel(&records[i]))
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	if userID == uuid.Nil || orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	record, err := NewRepository(s.db.DB()).FindByIDAndUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return FromModel(record), nil
}
