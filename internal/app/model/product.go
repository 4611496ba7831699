package model

import (
	"time"
)

type ProductStatus string // listing visibility state

const (
	ProductStatusActive ProductStatus = "active" // visible in browse and search
	ProductStatusSold   ProductStatus = "sold"   // kept for order history, hidden from browse
)

type Product struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	OwnerID     uint          `gorm:"not null;index" json:"owner_id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	CategoryID  *uint         `gorm:"index" json:"category_id,omitempty"`
	PriceCents  int64         `gorm:"not null" json:"price_cents"`
	ImageURL    string        `json:"image_url"`
	Condition   string        `gorm:"type:varchar(20);default:'good'" json:"condition"`
	Location    string        `json:"location"`
	Status      ProductStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Owner    User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
