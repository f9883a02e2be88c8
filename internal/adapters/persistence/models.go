package persistence

import (
	"time"
)

// TransactionModel represents the transactions table (the credit journal)
type TransactionModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	SessionID         string    `gorm:"column:session_id;not null;index:idx_transactions_session_time,priority:1"`
	Timestamp         time.Time `gorm:"column:timestamp;not null;index:idx_transactions_session_time,priority:2"`
	Turn              int       `gorm:"column:turn;not null"`
	TransactionType   string    `gorm:"column:transaction_type;not null"`
	Category          string    `gorm:"column:category;not null;index"`
	Amount            float64   `gorm:"column:amount;not null"`
	BalanceBefore     float64   `gorm:"column:balance_before;not null"`
	BalanceAfter      float64   `gorm:"column:balance_after;not null"`
	Description       string    `gorm:"column:description"`
	Metadata          string    `gorm:"column:metadata"` // JSON stored as string
	RelatedEntityType string    `gorm:"column:related_entity_type"`
	RelatedEntityID   string    `gorm:"column:related_entity_id"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// AllModels lists every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&TransactionModel{},
	}
}
