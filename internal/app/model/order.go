package model

import (
	"time"
)

type OrderStatus string // order state code

const (
	OrderStatusCompleted OrderStatus = "completed" // checkout succeeded
)

type Order struct {
	ID              uint        `gorm:"primarykey" json:"id"`
	UserID          uint        `gorm:"not null;index" json:"user_id"`
	TotalCents      int64       `gorm:"not null" json:"total_cents"`
	Status          OrderStatus `gorm:"type:varchar(20);default:'completed'" json:"status"`
	PaymentProvider string      `gorm:"type:varchar(50)" json:"payment_provider,omitempty"`
	PaymentOrderID  string      `gorm:"type:varchar(64);index" json:"payment_order_id,omitempty"`
	PaymentID       string      `gorm:"type:varchar(64)" json:"payment_id,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots the product price at checkout time; later price
// edits on the listing never change past orders.
type OrderItem struct {
	OrderID    uint      `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	ProductID  uint      `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	PriceCents int64     `gorm:"not null" json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
