package model

import (
	"time"
)

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	// Username is optional; uniqueness is only enforced for users who
	// set one, via a partial index that skips the empty string.
	Username        string    `gorm:"uniqueIndex:uq_users_username,where:username <> ''" json:"username,omitempty"`
	PasswordHash    string    `gorm:"not null" json:"-"`
	Bio             string    `gorm:"type:text" json:"bio,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Products []Product `gorm:"foreignKey:OwnerID" json:"products,omitempty"`
	Cart     *Cart     `gorm:"foreignKey:UserID" json:"cart,omitempty"`
	Orders   []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}

func (User) TableName() string {
	return "users"
}
