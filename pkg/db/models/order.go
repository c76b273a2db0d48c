package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an immutable snapshot of a cart at checkout time.
type Order struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total    decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	PlacedAt time.Time       `gorm:"column:placed_at;not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Order) TableName() string { return "orders" }

// OrderItem mirrors a cart line frozen into an order.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID int64           `gorm:"column:product_id;not null"`
	Title     string          `gorm:"type:text;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Image     string          `gorm:"type:text"`
}

func (OrderItem) TableName() string { return "order_items" }
