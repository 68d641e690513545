package entities

import (
	"github.com/google/uuid"
)

type WalletTopUpTransaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"index" json:"user_id"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"payment_method"` // bkash, nagad
	TransactionID string    `gorm:"uniqueIndex;not null" json:"transaction_id"`
	Status        string    `gorm:"index" json:"status"` // pending, approved, rejected
	ProofURL      string    `json:"proof_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
