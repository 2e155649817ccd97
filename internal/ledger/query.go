package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/objectledger/custodian/internal/adapter"
	"github.com/objectledger/custodian/internal/domain"
)

//go:generate mockgen -source=query.go -destination=../mocks/ledger_query.go -package=mocks -mock_names=QueryClient=MockQueryClient

var errNullResult = errors.New("rpc returned null result")

// QueryClient reads objects, events and token metadata from a ledger node
type QueryClient interface {
	GetObject(ctx context.Context, id domain.ObjectID) (*ObjectData, error)
	GetDynamicFields(ctx context.Context, parent domain.ObjectID) ([]DynamicField, error)
	GetFungibleObjects(ctx context.Context, owner domain.Address, tokenType domain.TokenType) ([]domain.FundObject, error)
	QueryEvents(ctx context.Context, eventType string) ([]Event, error)
	GetCoinMetadata(ctx context.Context, tokenType domain.TokenType) (*CoinMetadata, error)
	GetLedgerTime(ctx context.Context) (time.Time, error)
}

type queryClient struct {
	rpc *rpcCaller
}

// NewQueryClient builds a QueryClient against the given node endpoint
func NewQueryClient(endpoint string, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON) QueryClient {
	return &queryClient{
		rpc: newRPCCaller(endpoint, httpClient, jsonAdapter),
	}
}

func (c *queryClient) GetObject(ctx context.Context, id domain.ObjectID) (*ObjectData, error) {
	var obj ObjectData
	err := c.rpc.call(ctx, "ledger_getObject", []any{string(id)}, &obj)
	if err != nil {
		if errors.Is(err, errNullResult) {
			return nil, fmt.Errorf("%w: %s", domain.ErrObjectNotFound, id)
		}
		return nil, err
	}
	return &obj, nil
}

func (c *queryClient) GetDynamicFields(ctx context.Context, parent domain.ObjectID) ([]DynamicField, error) {
	var fields []DynamicField
	err := c.rpc.call(ctx, "ledger_getDynamicFields", []any{string(parent)}, &fields)
	if err != nil {
		if errors.Is(err, errNullResult) {
			return nil, nil
		}
		return nil, err
	}
	return fields, nil
}

// fundObjectData is the wire shape of one fungible holding. The balance
// field varies across node versions and goes through NormalizeBalance.
type fundObjectData struct {
	ID        string          `json:"id"`
	TokenType string          `json:"token_type"`
	Balance   json.RawMessage `json:"balance"`
}

func (c *queryClient) GetFungibleObjects(ctx context.Context, owner domain.Address, tokenType domain.TokenType) ([]domain.FundObject, error) {
	var raw []fundObjectData
	err := c.rpc.call(ctx, "ledger_getFungibleObjects", []any{string(owner), tokenType.String()}, &raw)
	if err != nil {
		if errors.Is(err, errNullResult) {
			return nil, nil
		}
		return nil, err
	}

	funds := make([]domain.FundObject, 0, len(raw))
	for _, f := range raw {
		balance, err := domain.NormalizeBalance(f.Balance)
		if err != nil {
			return nil, fmt.Errorf("fund object %s: %w", f.ID, err)
		}
		funds = append(funds, domain.FundObject{
			ID:        domain.ObjectID(f.ID),
			TokenType: tokenType,
			Balance:   balance,
		})
	}
	return funds, nil
}

func (c *queryClient) QueryEvents(ctx context.Context, eventType string) ([]Event, error) {
	var events []Event
	err := c.rpc.call(ctx, "ledger_queryEvents", []any{eventType}, &events)
	if err != nil {
		if errors.Is(err, errNullResult) {
			return nil, nil
		}
		return nil, err
	}
	return events, nil
}

func (c *queryClient) GetCoinMetadata(ctx context.Context, tokenType domain.TokenType) (*CoinMetadata, error) {
	var meta CoinMetadata
	err := c.rpc.call(ctx, "ledger_getCoinMetadata", []any{tokenType.String()}, &meta)
	if err != nil {
		if errors.Is(err, errNullResult) {
			return nil, nil
		}
		return nil, err
	}
	return &meta, nil
}

func (c *queryClient) GetLedgerTime(ctx context.Context) (time.Time, error) {
	var ms uint64
	if err := c.rpc.call(ctx, "ledger_getTime", []any{}, &ms); err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}
