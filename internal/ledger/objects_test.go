package ledger_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/ledger"
)

func rawFields(pairs map[string]string) map[string]json.RawMessage {
	fields := make(map[string]json.RawMessage, len(pairs))
	for k, v := range pairs {
		fields[k] = json.RawMessage(v)
	}
	return fields
}

func TestObjectData_FieldHelpers(t *testing.T) {
	obj := &ledger.ObjectData{
		ID:   "0x1",
		Type: "0xpkg::object_wallet::ObjectWallet",
		Fields: rawFields(map[string]string{
			"name":    `"alpha"`,
			"flag":    `true`,
			"count":   `42`,
			"big":     `"18446744073709551615"`,
			"created": `1717243200000`,
		}),
	}

	assert.Equal(t, "alpha", obj.StringField("name"))
	assert.Equal(t, "", obj.StringField("missing"))
	assert.True(t, obj.BoolField("flag"))
	assert.False(t, obj.BoolField("missing"))

	count, err := obj.Uint64Field("count")
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), count)

	// String-encoded u64, the node's format for large values
	big, err := obj.Uint64Field("big")
	assert.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), big)

	created := obj.TimeField("created")
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), created)
	assert.True(t, obj.TimeField("missing").IsZero())

	assert.True(t, obj.HasType(ledger.TypeObjectWallet))
	assert.False(t, obj.HasType(ledger.TypeTradingObject))
}

func TestTradingObjectFrom(t *testing.T) {
	obj := &ledger.ObjectData{
		ID:    "0xobj",
		Type:  "0xpkg::trading_object::TradingObject",
		Owner: "0xAB",
		Fields: rawFields(map[string]string{
			"price":       `"2000000"`,
			"token_type":  `"0x2::native::NAT"`,
			"is_for_sale": `true`,
			"wallet_id":   `"0xwallet"`,
		}),
	}

	trading, err := ledger.TradingObjectFrom(obj)
	assert.NoError(t, err)
	assert.Equal(t, domain.ObjectID("0xobj"), trading.ID)
	assert.Equal(t, domain.Address("0xab"), trading.Owner)
	assert.Equal(t, uint64(2000000), trading.Price)
	assert.True(t, trading.TokenType.IsNative())
	assert.True(t, trading.IsForSale)
	assert.Equal(t, domain.ObjectID("0xwallet"), trading.WalletID)
}

func TestTradingObjectFrom_NeverListed(t *testing.T) {
	obj := &ledger.ObjectData{
		ID:    "0xobj",
		Type:  "0xpkg::trading_object::TradingObject",
		Owner: "0xab",
		Fields: rawFields(map[string]string{
			"price":       `0`,
			"is_for_sale": `false`,
		}),
	}

	trading, err := ledger.TradingObjectFrom(obj)
	assert.NoError(t, err)
	assert.True(t, trading.TokenType.IsZero())
	assert.False(t, trading.IsForSale)
	assert.Empty(t, trading.WalletID)
}

func TestScheduledTransferFrom(t *testing.T) {
	obj := &ledger.ObjectData{
		ID:   "0xtransfer",
		Type: "0xpkg::scheduled_transfer::ScheduledTransfer",
		Fields: rawFields(map[string]string{
			"wallet_id":    `"0xwallet"`,
			"object_id":    `"0xobj"`,
			"from":         `"0xAA"`,
			"to":           `"0xBB"`,
			"token_type":   `"0x2::native::NAT"`,
			"amount":       `"5000000"`,
			"execute_at":   `1717243200000`,
			"is_executed":  `false`,
			"is_cancelled": `false`,
			"created_by":   `"0xAA"`,
			"created_at":   `1717239600000`,
		}),
	}

	transfer, err := ledger.ScheduledTransferFrom(obj)
	assert.NoError(t, err)
	assert.Equal(t, domain.ObjectID("0xtransfer"), transfer.ID)
	assert.Equal(t, domain.Address("0xaa"), transfer.FromAddress)
	assert.Equal(t, domain.Address("0xbb"), transfer.ToAddress)
	assert.Equal(t, uint64(5000000), transfer.Amount)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), transfer.ExecuteAt)
	assert.Equal(t, domain.TransferStatusCreated, transfer.Status())
}

func TestScheduledTransferFrom_BadTokenType(t *testing.T) {
	obj := &ledger.ObjectData{
		ID:   "0xtransfer",
		Type: "0xpkg::scheduled_transfer::ScheduledTransfer",
		Fields: rawFields(map[string]string{
			"amount":     `100`,
			"token_type": `"garbage"`,
		}),
	}

	_, err := ledger.ScheduledTransferFrom(obj)
	assert.Error(t, err)
}

func TestScheduledTransferFrom_MissingExecuteAt(t *testing.T) {
	fields := map[string]string{
		"wallet_id":    `"0xwallet"`,
		"object_id":    `"0xobj"`,
		"from":         `"0xAA"`,
		"to":           `"0xBB"`,
		"token_type":   `"0x2::native::NAT"`,
		"amount":       `"5000000"`,
		"is_executed":  `false`,
		"is_cancelled": `false`,
		"created_by":   `"0xAA"`,
		"created_at":   `1717239600000`,
	}

	// Absent and zero both collapse to the zero time, which would make
	// the transfer immediately due
	for name, executeAt := range map[string]string{"absent": "", "zero": `0`} {
		t.Run(name, func(t *testing.T) {
			f := make(map[string]string, len(fields)+1)
			for k, v := range fields {
				f[k] = v
			}
			if executeAt != "" {
				f["execute_at"] = executeAt
			}

			_, err := ledger.ScheduledTransferFrom(&ledger.ObjectData{
				ID:     "0xtransfer",
				Type:   "0xpkg::scheduled_transfer::ScheduledTransfer",
				Fields: rawFields(f),
			})
			assert.ErrorContains(t, err, "execute_at")
		})
	}
}

func TestResult_CreatedObjectID(t *testing.T) {
	result := &ledger.Result{
		Digest: "0xd",
		ObjectChanges: []ledger.ObjectChange{
			{Type: "mutated", ObjectType: "0xpkg::trading_object::TradingObject", ObjectID: "0xobj"},
			{Type: "created", ObjectType: "0xpkg::object_wallet::ObjectWallet", ObjectID: "0xwallet"},
		},
	}

	id, ok := result.CreatedObjectID(ledger.TypeObjectWallet)
	assert.True(t, ok)
	assert.Equal(t, domain.ObjectID("0xwallet"), id)

	_, ok = result.CreatedObjectID(ledger.TypeScheduledTransfer)
	assert.False(t, ok)
}

func TestResult_EventOfType(t *testing.T) {
	result := &ledger.Result{
		Events: []ledger.Event{
			{Type: "0xpkg::object_wallet::TokenDeposited"},
		},
	}

	event, ok := result.EventOfType("TokenDeposited")
	assert.True(t, ok)
	assert.Equal(t, "0xpkg::object_wallet::TokenDeposited", event.Type)

	_, ok = result.EventOfType("TokenWithdrawn")
	assert.False(t, ok)
}
