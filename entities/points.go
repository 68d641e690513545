package entities

import (
	"github.com/google/uuid"
)

type PointsTransaction struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"index" json:"user_id"`
	Amount          int64     `json:"amount"` // signed, negative for spend
	TransactionType string    `gorm:"index" json:"transaction_type"` // adReward, adminAdjustment, spend, purchase
	Metadata        string    `json:"metadata"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type PointsPurchaseRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"index" json:"user_id"`
	BdtAmount     int64     `json:"bdt_amount"`
	Amount        int64     `json:"amount"` // points, computed at submission
	TransactionID string    `gorm:"uniqueIndex;not null" json:"transaction_id"`
	Status        string    `gorm:"index" json:"status"` // pending, approved, rejected

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type DiamondPurchase struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"index" json:"user_id"`
	PackageName     string    `json:"package_name"`
	Quantity        int64     `json:"quantity"`
	PointsDeducted  int64     `json:"points_deducted"`
	DiamondsAwarded int64     `json:"diamonds_awarded"`
	TransactionID   string    `json:"transaction_id"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
