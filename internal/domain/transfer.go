package domain

import "time"

// TransferStatus is the lifecycle state of a scheduled transfer
type TransferStatus string

const (
	TransferStatusCreated   TransferStatus = "created"
	TransferStatusExecuted  TransferStatus = "executed"
	TransferStatusCancelled TransferStatus = "cancelled"
)

// Terminal reports whether no further transition is possible
func (s TransferStatus) Terminal() bool {
	return s == TransferStatusExecuted || s == TransferStatusCancelled
}

// ScheduledTransfer is the read model of a recorded intent to move funds out
// of a sub-wallet no earlier than ExecuteAt. The on-ledger record carries
// is_executed/is_cancelled flags; Status derives the three-state lifecycle.
type ScheduledTransfer struct {
	ID          ObjectID
	WalletID    ObjectID
	ObjectID    ObjectID
	FromAddress Address
	ToAddress   Address
	TokenType   TokenType
	Amount      uint64
	ExecuteAt   time.Time
	Executed    bool
	Cancelled   bool
	CreatedBy   Address
	CreatedAt   time.Time
}

// Status derives the lifecycle state from the record flags.
// Executed and Cancelled are terminal and mutually exclusive on the ledger;
// executed wins if a corrupt record ever carries both.
func (t *ScheduledTransfer) Status() TransferStatus {
	switch {
	case t.Executed:
		return TransferStatusExecuted
	case t.Cancelled:
		return TransferStatusCancelled
	default:
		return TransferStatusCreated
	}
}

// Due reports whether the transfer may execute at the given ledger time
func (t *ScheduledTransfer) Due(ledgerNow time.Time) bool {
	return !ledgerNow.Before(t.ExecuteAt)
}
