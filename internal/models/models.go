package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce_backend/internal/cart"
)

type User struct {
	ID       string    `gorm:"primaryKey;size:64"          json:"_id"`
	Name     string    `json:"name"`
	Email    string    `gorm:"uniqueIndex;not null"        json:"email"`
	Password string    `gorm:"not null"                    json:"-"`
	CartData cart.Cart `gorm:"serializer:json"             json:"cartData"`
	Date     time.Time `json:"date"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Date.IsZero() {
		u.Date = time.Now().UTC()
	}
	return nil
}

type Product struct {
	ID        string    `gorm:"primaryKey;size:64"          json:"_id"`
	ProductID int       `gorm:"column:product_id;index"     json:"id"`
	Name      string    `gorm:"not null"                    json:"name"`
	Image     string    `gorm:"not null"                    json:"image"`
	Category  string    `gorm:"not null"                    json:"category"`
	NewPrice  float64   `json:"new_price"`
	OldPrice  float64   `json:"old_price"`
	Date      time.Time `json:"date"`
	Available bool      `gorm:"default:true"                json:"available"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	return nil
}

// Sequence keeps the highest product id ever issued.
type Sequence struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int    `gorm:"not null"`
}
