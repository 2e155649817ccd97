package domain

import "time"

// CustodyEventKind classifies a settled custody operation
type CustodyEventKind string

const (
	CustodyEventWalletCreated     CustodyEventKind = "wallet_created"
	CustodyEventDeposited         CustodyEventKind = "deposited"
	CustodyEventWithdrawn         CustodyEventKind = "withdrawn"
	CustodyEventTransferCreated   CustodyEventKind = "transfer_created"
	CustodyEventTransferExecuted  CustodyEventKind = "transfer_executed"
	CustodyEventTransferCancelled CustodyEventKind = "transfer_cancelled"
	CustodyEventPurchased         CustodyEventKind = "purchased"
)

// CustodyEvent is the normalized event published after a mutation commits.
// This is the standard format published to NATS.
type CustodyEvent struct {
	ID        string           `json:"id"` // uuid
	Kind      CustodyEventKind `json:"kind"`
	ObjectID  ObjectID         `json:"object_id"`
	WalletID  ObjectID         `json:"wallet_id,omitempty"`
	TokenType string           `json:"token_type,omitempty"`
	Amount    uint64           `json:"amount,omitempty"`
	Actor     Address          `json:"actor"`
	Digest    string           `json:"digest"` // mutation digest
	Timestamp time.Time        `json:"timestamp"`
}
