package ledger

import (
	"fmt"

	"github.com/objectledger/custodian/internal/domain"
)

// On-ledger type suffixes for the custody package modules
const (
	TypeTradingObject     = "trading_object::TradingObject"
	TypeObjectWallet      = "object_wallet::ObjectWallet"
	TypeScheduledTransfer = "scheduled_transfer::ScheduledTransfer"
)

// TradingObjectFrom converts raw object data into the trading object read
// model. Listing fields may be absent on never-listed objects.
func TradingObjectFrom(obj *ObjectData) (*domain.TradingObject, error) {
	price, err := obj.Uint64Field("price")
	if err != nil {
		return nil, fmt.Errorf("object %s: bad price field: %w", obj.ID, err)
	}

	var tokenType domain.TokenType
	if raw := obj.StringField("token_type"); raw != "" {
		tokenType, err = domain.ParseTokenType(raw)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", obj.ID, err)
		}
	}

	return &domain.TradingObject{
		ID:        domain.ObjectID(obj.ID),
		Owner:     domain.NormalizeAddress(domain.Address(obj.Owner)),
		Price:     price,
		TokenType: tokenType,
		IsForSale: obj.BoolField("is_for_sale"),
		WalletID:  domain.ObjectID(obj.StringField("wallet_id")),
	}, nil
}

// ObjectWalletFrom converts raw object data into the wallet read model
func ObjectWalletFrom(obj *ObjectData) *domain.ObjectWallet {
	return &domain.ObjectWallet{
		ID:        domain.ObjectID(obj.ID),
		ObjectID:  domain.ObjectID(obj.StringField("object_id")),
		Owner:     domain.NormalizeAddress(domain.Address(obj.Owner)),
		CreatedAt: obj.TimeField("created_at"),
	}
}

// ScheduledTransferFrom converts raw object data into the scheduled
// transfer read model
func ScheduledTransferFrom(obj *ObjectData) (*domain.ScheduledTransfer, error) {
	amount, err := obj.Uint64Field("amount")
	if err != nil {
		return nil, fmt.Errorf("transfer %s: bad amount field: %w", obj.ID, err)
	}

	tokenType, err := domain.ParseTokenType(obj.StringField("token_type"))
	if err != nil {
		return nil, fmt.Errorf("transfer %s: %w", obj.ID, err)
	}

	// A zero execute_at would make the transfer immediately due; treat
	// it as a corrupt record rather than a schedule
	executeAt := obj.TimeField("execute_at")
	if executeAt.IsZero() {
		return nil, fmt.Errorf("transfer %s: missing or zero execute_at field", obj.ID)
	}

	return &domain.ScheduledTransfer{
		ID:          domain.ObjectID(obj.ID),
		WalletID:    domain.ObjectID(obj.StringField("wallet_id")),
		ObjectID:    domain.ObjectID(obj.StringField("object_id")),
		FromAddress: domain.NormalizeAddress(domain.Address(obj.StringField("from"))),
		ToAddress:   domain.NormalizeAddress(domain.Address(obj.StringField("to"))),
		TokenType:   tokenType,
		Amount:      amount,
		ExecuteAt:   executeAt,
		Executed:    obj.BoolField("is_executed"),
		Cancelled:   obj.BoolField("is_cancelled"),
		CreatedBy:   domain.NormalizeAddress(domain.Address(obj.StringField("created_by"))),
		CreatedAt:   obj.TimeField("created_at"),
	}, nil
}
