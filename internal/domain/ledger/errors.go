package ledger

import "fmt"

// InvalidEntryError rejects an entry that would corrupt the journal
type InvalidEntryError struct {
	Field  string
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("ledger entry rejected: %s %s", e.Field, e.Reason)
}

// TransactionNotFoundError is returned when no transaction of the session has the id
type TransactionNotFoundError struct {
	ID        string
	SessionID string
}

func (e *TransactionNotFoundError) Error() string {
	return fmt.Sprintf("transaction %s not found in session %s", e.ID, e.SessionID)
}
