package ledger

import (
	"context"
	"time"

	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// Journal orderings accepted by QueryOptions.OrderBy
const (
	OrderNewestFirst = "timestamp DESC"
	OrderOldestFirst = "timestamp ASC"
)

// TransactionRepository stores the journal. Entries are only ever appended.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) error

	// FindByID only finds transactions belonging to sessionID
	FindByID(ctx context.Context, id TransactionID, sessionID shared.SessionID) (*Transaction, error)

	FindBySession(ctx context.Context, sessionID shared.SessionID, opts QueryOptions) ([]*Transaction, error)

	// CountBySession ignores Limit, Offset and OrderBy
	CountBySession(ctx context.Context, sessionID shared.SessionID, opts QueryOptions) (int, error)
}

// QueryOptions narrows a journal listing. Nil filters match everything and
// the date bounds are inclusive.
type QueryOptions struct {
	StartDate *time.Time
	EndDate   *time.Time

	Category        *Category
	TransactionType *TransactionType

	RelatedEntityType *string
	RelatedEntityID   *string

	// 0 lists everything
	Limit  int
	Offset int

	// OrderNewestFirst (the default) or OrderOldestFirst
	OrderBy string
}

// DefaultQueryOptions is the first page of 50, newest first
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Limit: 50, OrderBy: OrderNewestFirst}
}

// IsKnownOrder reports whether order is one of the accepted orderings
func IsKnownOrder(order string) bool {
	return order == OrderNewestFirst || order == OrderOldestFirst
}
