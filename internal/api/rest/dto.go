package rest

import (
	"errors"
	"fmt"
	"time"

	"github.com/objectledger/custodian/internal/domain"
)

// CreateWalletRequest binds a new wallet to a caller-owned object
type CreateWalletRequest struct {
	Caller   string `json:"caller" binding:"required"`
	ObjectID string `json:"object_id" binding:"required"`
}

func (r *CreateWalletRequest) Validate() error {
	if !domain.IsValidAddress(domain.Address(r.Caller)) {
		return fmt.Errorf("invalid caller address %q", r.Caller)
	}
	if !domain.IsValidObjectID(domain.ObjectID(r.ObjectID)) {
		return fmt.Errorf("invalid object id %q", r.ObjectID)
	}
	return nil
}

// DepositRequest credits a wallet from the caller's funds
type DepositRequest struct {
	Caller    string `json:"caller" binding:"required"`
	TokenType string `json:"token_type" binding:"required"`
	Amount    uint64 `json:"amount"`
}

func (r *DepositRequest) Validate() (domain.TokenType, error) {
	if !domain.IsValidAddress(domain.Address(r.Caller)) {
		return domain.TokenType{}, fmt.Errorf("invalid caller address %q", r.Caller)
	}
	if r.Amount == 0 {
		return domain.TokenType{}, errors.New("amount must be positive")
	}
	return domain.ParseTokenType(r.TokenType)
}

// WithdrawRequest debits a wallet to a destination address
type WithdrawRequest struct {
	Caller    string `json:"caller" binding:"required"`
	TokenType string `json:"token_type" binding:"required"`
	Amount    uint64 `json:"amount"`
	To        string `json:"to" binding:"required"`
}

func (r *WithdrawRequest) Validate() (domain.TokenType, error) {
	if !domain.IsValidAddress(domain.Address(r.Caller)) {
		return domain.TokenType{}, fmt.Errorf("invalid caller address %q", r.Caller)
	}
	if !domain.IsValidAddress(domain.Address(r.To)) {
		return domain.TokenType{}, fmt.Errorf("invalid destination address %q", r.To)
	}
	if r.Amount == 0 {
		return domain.TokenType{}, errors.New("amount must be positive")
	}
	return domain.ParseTokenType(r.TokenType)
}

// MergeFundsRequest consolidates the caller's fund objects of one token type
type MergeFundsRequest struct {
	Caller    string `json:"caller" binding:"required"`
	TokenType string `json:"token_type" binding:"required"`
}

func (r *MergeFundsRequest) Validate() (domain.TokenType, error) {
	if !domain.IsValidAddress(domain.Address(r.Caller)) {
		return domain.TokenType{}, fmt.Errorf("invalid caller address %q", r.Caller)
	}
	return domain.ParseTokenType(r.TokenType)
}

// CreateTransferRequest schedules a future transfer out of a wallet
type CreateTransferRequest struct {
	Caller    string `json:"caller" binding:"required"`
	WalletID  string `json:"wallet_id" binding:"required"`
	ObjectID  string `json:"object_id" binding:"required"`
	To        string `json:"to" binding:"required"`
	TokenType string `json:"token_type" binding:"required"`
	Amount    uint64 `json:"amount"`
	ExecuteAt string `json:"execute_at" binding:"required"` // RFC 3339
}

func (r *CreateTransferRequest) Validate() (domain.TokenType, time.Time, error) {
	if !domain.IsValidAddress(domain.Address(r.Caller)) {
		return domain.TokenType{}, time.Time{}, fmt.Errorf("invalid caller address %q", r.Caller)
	}
	if !domain.IsValidObjectID(domain.ObjectID(r.WalletID)) {
		return domain.TokenType{}, time.Time{}, fmt.Errorf("invalid wallet id %q", r.WalletID)
	}
	if !domain.IsValidObjectID(domain.ObjectID(r.ObjectID)) {
		return domain.TokenType{}, time.Time{}, fmt.Errorf("invalid object id %q", r.ObjectID)
	}
	if !domain.IsValidAddress(domain.Address(r.To)) {
		return domain.TokenType{}, time.Time{}, fmt.Errorf("invalid destination address %q", r.To)
	}
	if r.Amount == 0 {
		return domain.TokenType{}, time.Time{}, errors.New("amount must be positive")
	}

	executeAt, err := time.Parse(time.RFC3339, r.ExecuteAt)
	if err != nil {
		return domain.TokenType{}, time.Time{}, fmt.Errorf("invalid execute_at %q: %w", r.ExecuteAt, err)
	}

	tokenType, err := domain.ParseTokenType(r.TokenType)
	if err != nil {
		return domain.TokenType{}, time.Time{}, err
	}
	return tokenType, executeAt, nil
}

// CallerRequest carries only the acting address
type CallerRequest struct {
	Caller string `json:"caller" binding:"required"`
}

func (r *CallerRequest) Validate() error {
	if !domain.IsValidAddress(domain.Address(r.Caller)) {
		return fmt.Errorf("invalid caller address %q", r.Caller)
	}
	return nil
}

// ExecuteDueRequest batch-executes a set of due transfers
type ExecuteDueRequest struct {
	Caller      string   `json:"caller" binding:"required"`
	TransferIDs []string `json:"transfer_ids" binding:"required"`
}

func (r *ExecuteDueRequest) Validate() error {
	if !domain.IsValidAddress(domain.Address(r.Caller)) {
		return fmt.Errorf("invalid caller address %q", r.Caller)
	}
	if len(r.TransferIDs) == 0 {
		return errors.New("transfer_ids must not be empty")
	}
	for _, id := range r.TransferIDs {
		if !domain.IsValidObjectID(domain.ObjectID(id)) {
			return fmt.Errorf("invalid transfer id %q", id)
		}
	}
	return nil
}

// PurchaseRequest buys a listed object. The token type pins what the
// buyer expects to pay in.
type PurchaseRequest struct {
	Buyer     string `json:"buyer" binding:"required"`
	ObjectID  string `json:"object_id" binding:"required"`
	TokenType string `json:"token_type" binding:"required"`
}

func (r *PurchaseRequest) Validate() (domain.TokenType, error) {
	if !domain.IsValidAddress(domain.Address(r.Buyer)) {
		return domain.TokenType{}, fmt.Errorf("invalid buyer address %q", r.Buyer)
	}
	if !domain.IsValidObjectID(domain.ObjectID(r.ObjectID)) {
		return domain.TokenType{}, fmt.Errorf("invalid object id %q", r.ObjectID)
	}
	return domain.ParseTokenType(r.TokenType)
}

// ListObjectRequest puts an object up for sale
type ListObjectRequest struct {
	Caller    string `json:"caller" binding:"required"`
	Price     uint64 `json:"price"`
	TokenType string `json:"token_type" binding:"required"`
}

func (r *ListObjectRequest) Validate() (domain.TokenType, error) {
	if !domain.IsValidAddress(domain.Address(r.Caller)) {
		return domain.TokenType{}, fmt.Errorf("invalid caller address %q", r.Caller)
	}
	if r.Price == 0 {
		return domain.TokenType{}, errors.New("price must be positive")
	}
	return domain.ParseTokenType(r.TokenType)
}

// BalanceEntry is one wallet balance with display formatting
type BalanceEntry struct {
	TokenType string `json:"token_type"`
	Symbol    string `json:"symbol"`
	Amount    uint64 `json:"amount"`
	Display   string `json:"display"`
}

// WalletResponse is the wallet metadata read model
type WalletResponse struct {
	ID        string    `json:"id"`
	ObjectID  string    `json:"object_id"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// TransferResponse is the scheduled transfer read model
type TransferResponse struct {
	ID        string    `json:"id"`
	WalletID  string    `json:"wallet_id"`
	ObjectID  string    `json:"object_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	TokenType string    `json:"token_type"`
	Amount    uint64    `json:"amount"`
	ExecuteAt time.Time `json:"execute_at"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TransferResponseFrom converts a domain transfer into its API shape
func TransferResponseFrom(t *domain.ScheduledTransfer) TransferResponse {
	return TransferResponse{
		ID:        string(t.ID),
		WalletID:  string(t.WalletID),
		ObjectID:  string(t.ObjectID),
		From:      string(t.FromAddress),
		To:        string(t.ToAddress),
		TokenType: t.TokenType.String(),
		Amount:    t.Amount,
		ExecuteAt: t.ExecuteAt,
		Status:    string(t.Status()),
		CreatedBy: string(t.CreatedBy),
		CreatedAt: t.CreatedAt,
	}
}

// ObjectResponse is the tradable object read model
type ObjectResponse struct {
	ID        string `json:"id"`
	Owner     string `json:"owner"`
	Price     uint64 `json:"price"`
	TokenType string `json:"token_type,omitempty"`
	IsForSale bool   `json:"is_for_sale"`
	WalletID  string `json:"wallet_id,omitempty"`
}

// DigestResponse reports a committed mutation
type DigestResponse struct {
	Digest string `json:"digest"`
}
