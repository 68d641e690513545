package entities

import (
	"github.com/google/uuid"
)

type Product struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	IsAutoDelivery bool   `json:"is_auto_delivery"`

	Timestamp
}

type ProductOrder struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"index" json:"user_id"`
	ProductID      uint      `gorm:"index" json:"product_id"`
	Amount         int64     `json:"amount"`
	Status         string    `gorm:"index" json:"status"` // pending, processing, delivered, failed
	IsAutoDelivery bool      `json:"is_auto_delivery"`

	User    *User    `gorm:"foreignKey:UserID"`
	Product *Product `gorm:"foreignKey:ProductID"`
	Timestamp
}
