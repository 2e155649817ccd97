package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotOwner is returned when the caller does not own the object
	ErrNotOwner = errors.New("caller is not the object owner")

	// ErrAlreadyExists is returned when the object already has a wallet
	ErrAlreadyExists = errors.New("wallet already exists for object")

	// ErrObjectNotFound is returned when an object cannot be read from the ledger
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvalidSchedule is returned when a transfer's execute time is in the
	// past or inside the minimum lead window
	ErrInvalidSchedule = errors.New("invalid transfer schedule")

	// ErrNotYetDue is returned when ledger time is still before execute time
	ErrNotYetDue = errors.New("transfer not yet due")

	// ErrAlreadyExecuted is returned for operations on an executed transfer
	ErrAlreadyExecuted = errors.New("transfer already executed")

	// ErrAlreadyCancelled is returned for operations on a cancelled transfer
	ErrAlreadyCancelled = errors.New("transfer already cancelled")

	// ErrInsufficientBalance is returned when a wallet or fund object cannot
	// cover the requested amount
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrUnauthorized is returned when the caller may not perform the operation
	ErrUnauthorized = errors.New("caller not authorized")

	// ErrTransferNotFound is returned when a scheduled transfer cannot be read
	ErrTransferNotFound = errors.New("scheduled transfer not found")

	// ErrNotForSale is returned when purchasing an object that is not listed
	ErrNotForSale = errors.New("object not for sale")

	// ErrTokenTypeMismatch is returned when the offered token type does not
	// match the listing's token type
	ErrTokenTypeMismatch = errors.New("token type does not match listing")

	// ErrSelfPurchase is returned when a buyer attempts to buy their own object
	ErrSelfPurchase = errors.New("cannot purchase own object")

	// ErrUnsupportedToken is returned when depositing a token type the
	// marketplace does not accept
	ErrUnsupportedToken = errors.New("token type not supported by marketplace")

	// ErrInvalidAmount is returned when an operation amount is zero
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidRecipient is returned for transfers to the zero address
	ErrInvalidRecipient = errors.New("invalid recipient address")

	// ErrLedgerRejected is the sentinel all unrecognized ledger aborts wrap
	ErrLedgerRejected = errors.New("ledger rejected mutation")
)

// LedgerRejectedError carries the ledger's raw abort reason for a mutation
// that was broadcast but did not commit. errors.Is(err, ErrLedgerRejected)
// matches it.
type LedgerRejectedError struct {
	Digest string
	Reason string
}

func (e *LedgerRejectedError) Error() string {
	if e.Digest != "" {
		return fmt.Sprintf("ledger rejected mutation %s: %s", e.Digest, e.Reason)
	}
	return fmt.Sprintf("ledger rejected mutation: %s", e.Reason)
}

func (e *LedgerRejectedError) Unwrap() error {
	return ErrLedgerRejected
}

// InsufficientBalanceError carries the shortfall for a failed payment
// resolution. errors.Is(err, ErrInsufficientBalance) matches it.
type InsufficientBalanceError struct {
	TokenType TokenType
	Required  uint64
	Available uint64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: need %d, have %d",
		e.TokenType.Symbol, e.Required, e.Available)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// Shortfall returns how many smallest units are missing
func (e *InsufficientBalanceError) Shortfall() uint64 {
	if e.Available >= e.Required {
		return 0
	}
	return e.Required - e.Available
}
