package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shoplite/shoplite-backend/pkg/db/models"
)

// OrderDTO is the transport shape of a placed order.
type OrderDTO struct {
	ID       uuid.UUID       `json:"id"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
	Items    []OrderItemDTO  `json:"items"`
}

// OrderItemDTO mirrors one frozen cart line.
type OrderItemDTO struct {
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

// FromModel converts the persisted order into its transport shape.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return &OrderDTO{
		ID:       o.ID,
		Total:    o.Total,
		PlacedAt: o.PlacedAt,
		Items:    items,
	}
}
