package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/spacemining-go/internal/domain/ledger"
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// MockTransactionRepository is an in-memory test double for ledger.TransactionRepository.
// It honours session, type and category filters plus Limit/Offset; results stay in insertion order.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions []*ledger.Transaction
	createErr    error
}

// NewMockTransactionRepository creates a new mock transaction repository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// SetCreateError makes every subsequent Create fail with err (nil restores normal behaviour)
func (m *MockTransactionRepository) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createErr = err
}

// Create appends a transaction to the journal
func (m *MockTransactionRepository) Create(ctx context.Context, transaction *ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.transactions = append(m.transactions, transaction)
	return nil
}

// FindByID retrieves a transaction by its ID
func (m *MockTransactionRepository) FindByID(ctx context.Context, id ledger.TransactionID, sessionID shared.SessionID) (*ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, tx := range m.transactions {
		if tx.ID() == id && tx.SessionID() == sessionID {
			return tx, nil
		}
	}
	return nil, &ledger.TransactionNotFoundError{ID: id.String(), SessionID: sessionID.String()}
}

// FindBySession retrieves the session's transactions matching opts
func (m *MockTransactionRepository) FindBySession(ctx context.Context, sessionID shared.SessionID, opts ledger.QueryOptions) ([]*ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := m.filter(sessionID, opts)
	if opts.Offset >= len(matched) {
		return []*ledger.Transaction{}, nil
	}
	matched = matched[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// CountBySession counts the session's transactions matching opts
func (m *MockTransactionRepository) CountBySession(ctx context.Context, sessionID shared.SessionID, opts ledger.QueryOptions) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.filter(sessionID, opts)), nil
}

// Len returns the number of stored transactions across all sessions
func (m *MockTransactionRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transactions)
}

func (m *MockTransactionRepository) filter(sessionID shared.SessionID, opts ledger.QueryOptions) []*ledger.Transaction {
	matched := make([]*ledger.Transaction, 0, len(m.transactions))
	for _, tx := range m.transactions {
		if tx.SessionID() != sessionID {
			continue
		}
		if opts.TransactionType != nil && tx.TransactionType() != *opts.TransactionType {
			continue
		}
		if opts.Category != nil && tx.Category() != *opts.Category {
			continue
		}
		matched = append(matched, tx)
	}
	return matched
}
