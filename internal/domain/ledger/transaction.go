package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// balanceTolerance absorbs float rounding when chaining balances
const balanceTolerance = 1e-6

// maxClockSkew is how far in the future an entry may be stamped
const maxClockSkew = time.Minute

// TransactionID is the uuid of one journal entry
type TransactionID string

// NewTransactionID generates a fresh id
func NewTransactionID() TransactionID {
	return TransactionID(uuid.NewString())
}

// ParseTransactionID accepts a stored uuid
func ParseTransactionID(s string) (TransactionID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid transaction id %q: %w", s, err)
	}
	return TransactionID(s), nil
}

func (id TransactionID) String() string { return string(id) }

// Entry is one credit change as reported by the game: a sale at an outpost
// or a shop purchase. Amount is positive for income and negative for spending.
type Entry struct {
	SessionID     shared.SessionID
	Timestamp     time.Time
	Turn          int
	Type          TransactionType
	Amount        float64
	BalanceBefore float64
	BalanceAfter  float64
	Description   string
	Metadata      map[string]interface{}

	// Outpost, upgrade or ship name; which one follows from Type
	RelatedEntityID string
}

// Transaction is an accepted, immutable journal entry
type Transaction struct {
	id       TransactionID
	category Category
	entry    Entry
}

// NewTransaction checks e against the journal rules and stamps it with an id:
// a known type, a non-zero amount whose sign matches the category,
// BalanceAfter == BalanceBefore + Amount, no negative balance and no
// timestamp beyond maxClockSkew in the future.
func NewTransaction(e Entry) (*Transaction, error) {
	if e.SessionID.IsZero() {
		return nil, &InvalidEntryError{Field: "session_id", Reason: "is empty"}
	}

	category, ok := e.Type.Category()
	if !ok {
		return nil, &InvalidEntryError{Field: "transaction_type", Reason: fmt.Sprintf("%q is unknown", e.Type)}
	}

	if e.Amount == 0 {
		return nil, &InvalidEntryError{Field: "amount", Reason: "is zero"}
	}
	if category.IsIncome() != (e.Amount > 0) {
		return nil, &InvalidEntryError{
			Field:  "amount",
			Reason: fmt.Sprintf("%.2f has the wrong sign for %s", e.Amount, category),
		}
	}

	expected := e.BalanceBefore + e.Amount
	if math.Abs(e.BalanceAfter-expected) > balanceTolerance {
		return nil, &InvalidEntryError{
			Field:  "balance_after",
			Reason: fmt.Sprintf("is %.2f, expected %.2f + %.2f = %.2f", e.BalanceAfter, e.BalanceBefore, e.Amount, expected),
		}
	}
	if e.BalanceAfter < -balanceTolerance {
		return nil, &InvalidEntryError{Field: "balance_after", Reason: "is negative"}
	}

	if e.Timestamp.After(time.Now().Add(maxClockSkew)) {
		return nil, &InvalidEntryError{Field: "timestamp", Reason: fmt.Sprintf("%s is in the future", e.Timestamp)}
	}

	e.Metadata = copyMetadata(e.Metadata)
	return &Transaction{id: NewTransactionID(), category: category, entry: e}, nil
}

// RestoreTransaction rebuilds a stored transaction without re-checking it
func RestoreTransaction(id TransactionID, category Category, e Entry) *Transaction {
	return &Transaction{id: id, category: category, entry: e}
}

func (t *Transaction) ID() TransactionID                { return t.id }
func (t *Transaction) SessionID() shared.SessionID      { return t.entry.SessionID }
func (t *Transaction) Timestamp() time.Time             { return t.entry.Timestamp }
func (t *Transaction) Turn() int                        { return t.entry.Turn }
func (t *Transaction) TransactionType() TransactionType { return t.entry.Type }
func (t *Transaction) Category() Category               { return t.category }
func (t *Transaction) Amount() float64                  { return t.entry.Amount }
func (t *Transaction) BalanceBefore() float64           { return t.entry.BalanceBefore }
func (t *Transaction) BalanceAfter() float64            { return t.entry.BalanceAfter }
func (t *Transaction) Description() string              { return t.entry.Description }
func (t *Transaction) RelatedEntityID() string          { return t.entry.RelatedEntityID }

// RelatedEntityType is "outpost", "upgrade" or "ship" depending on the type
func (t *Transaction) RelatedEntityType() string { return t.entry.Type.Entity() }

// Metadata returns a copy of the entry metadata
func (t *Transaction) Metadata() map[string]interface{} {
	return copyMetadata(t.entry.Metadata)
}

// IsIncome is true for credits earned
func (t *Transaction) IsIncome() bool { return t.entry.Amount > 0 }

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s turn=%d %s %+.2f: %.2f->%.2f]",
		t.id, t.entry.Turn, t.entry.Type, t.entry.Amount, t.entry.BalanceBefore, t.entry.BalanceAfter)
}

func copyMetadata(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	copied := make(map[string]interface{}, len(m))
	for k, v := range m {
		copied[k] = v
	}
	return copied
}
