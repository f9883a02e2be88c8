package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacemining-go/internal/domain/ledger"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// GormTransactionRepository stores the journal in the transactions table
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a repository over a migrated db
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create inserts one journal row
func (r *GormTransactionRepository) Create(ctx context.Context, transaction *ledger.Transaction) error {
	model, err := toTransactionModel(transaction)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", transaction.ID(), err)
	}
	return nil
}

// FindByID loads one row of the session
func (r *GormTransactionRepository) FindByID(ctx context.Context, id ledger.TransactionID, sessionID shared.SessionID) (*ledger.Transaction, error) {
	var model TransactionModel
	err := r.forSession(ctx, sessionID).Where("id = ?", id.String()).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ledger.TransactionNotFoundError{ID: id.String(), SessionID: sessionID.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %s: %w", id, err)
	}
	return fromTransactionModel(&model)
}

// FindBySession lists the session's rows matching opts
func (r *GormTransactionRepository) FindBySession(ctx context.Context, sessionID shared.SessionID, opts ledger.QueryOptions) ([]*ledger.Transaction, error) {
	order := ledger.OrderNewestFirst
	if ledger.IsKnownOrder(opts.OrderBy) {
		order = opts.OrderBy
	}

	query := filtered(r.forSession(ctx, sessionID), opts).Order(order)
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]*ledger.Transaction, 0, len(models))
	for i := range models {
		tx, err := fromTransactionModel(&models[i])
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// CountBySession counts the session's rows matching the filters of opts
func (r *GormTransactionRepository) CountBySession(ctx context.Context, sessionID shared.SessionID, opts ledger.QueryOptions) (int, error) {
	var count int64
	if err := filtered(r.forSession(ctx, sessionID), opts).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return int(count), nil
}

func (r *GormTransactionRepository) forSession(ctx context.Context, sessionID shared.SessionID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&TransactionModel{}).Where("session_id = ?", sessionID.String())
}

// filtered narrows query by every non-nil filter; date bounds are inclusive
func filtered(query *gorm.DB, opts ledger.QueryOptions) *gorm.DB {
	conditions := []struct {
		clause string
		set    bool
		value  func() interface{}
	}{
		{"timestamp >= ?", opts.StartDate != nil, func() interface{} { return *opts.StartDate }},
		{"timestamp <= ?", opts.EndDate != nil, func() interface{} { return *opts.EndDate }},
		{"category = ?", opts.Category != nil, func() interface{} { return opts.Category.String() }},
		{"transaction_type = ?", opts.TransactionType != nil, func() interface{} { return opts.TransactionType.String() }},
		{"related_entity_type = ?", opts.RelatedEntityType != nil, func() interface{} { return *opts.RelatedEntityType }},
		{"related_entity_id = ?", opts.RelatedEntityID != nil, func() interface{} { return *opts.RelatedEntityID }},
	}
	for _, c := range conditions {
		if c.set {
			query = query.Where(c.clause, c.value())
		}
	}
	return query
}

func fromTransactionModel(model *TransactionModel) (*ledger.Transaction, error) {
	id, err := ledger.ParseTransactionID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt transaction row: %w", err)
	}
	sessionID, err := shared.ParseSessionID(model.SessionID)
	if err != nil {
		return nil, fmt.Errorf("corrupt transaction row %s: %w", model.ID, err)
	}
	txType, err := ledger.ParseTransactionType(model.TransactionType)
	if err != nil {
		return nil, fmt.Errorf("corrupt transaction row %s: %w", model.ID, err)
	}
	category, err := ledger.ParseCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("corrupt transaction row %s: %w", model.ID, err)
	}

	// unreadable metadata is dropped rather than hiding the whole row
	var metadata map[string]interface{}
	if model.Metadata != "" {
		if err := json.Unmarshal([]byte(model.Metadata), &metadata); err != nil {
			metadata = nil
		}
	}

	return ledger.RestoreTransaction(id, category, ledger.Entry{
		SessionID:       sessionID,
		Timestamp:       model.Timestamp,
		Turn:            model.Turn,
		Type:            txType,
		Amount:          model.Amount,
		BalanceBefore:   model.BalanceBefore,
		BalanceAfter:    model.BalanceAfter,
		Description:     model.Description,
		Metadata:        metadata,
		RelatedEntityID: model.RelatedEntityID,
	}), nil
}

func toTransactionModel(tx *ledger.Transaction) (*TransactionModel, error) {
	model := &TransactionModel{
		ID:                tx.ID().String(),
		SessionID:         tx.SessionID().String(),
		Timestamp:         tx.Timestamp(),
		Turn:              tx.Turn(),
		TransactionType:   tx.TransactionType().String(),
		Category:          tx.Category().String(),
		Amount:            tx.Amount(),
		BalanceBefore:     tx.BalanceBefore(),
		BalanceAfter:      tx.BalanceAfter(),
		Description:       tx.Description(),
		RelatedEntityType: tx.RelatedEntityType(),
		RelatedEntityID:   tx.RelatedEntityID(),
	}

	if metadata := tx.Metadata(); metadata != nil {
		encoded, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata of %s: %w", tx.ID(), err)
		}
		model.Metadata = string(encoded)
	}
	return model, nil
}
