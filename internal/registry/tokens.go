package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/ledger"
)

// TokenInfo carries display metadata for one fungible token type
type TokenInfo struct {
	TokenType string `json:"token_type"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Decimals  int32  `json:"decimals"`
	// Known is false when the token appears in neither the local table
	// nor the ledger's coin metadata
	Known bool `json:"-"`
}

// TokenResolver resolves token types to display metadata and converts
// between base units and display amounts
//
//go:generate mockgen -source=tokens.go -destination=../mocks/token_resolver.go -package=mocks -mock_names=TokenResolver=MockTokenResolver
type TokenResolver interface {
	// Resolve never fails: unknown tokens degrade to the type's own
	// symbol segment with zero decimals
	Resolve(ctx context.Context, tokenType domain.TokenType) TokenInfo

	// FormatAmount renders base units as a display string using the
	// token's decimals
	FormatAmount(ctx context.Context, tokenType domain.TokenType, amount uint64) string

	// ParseDisplayAmount converts a display string back to base units
	ParseDisplayAmount(ctx context.Context, tokenType domain.TokenType, display string) (uint64, error)
}

// TokenTableData represents the structure of the tokens.json file
type TokenTableData []TokenInfo

type tokenRegistry struct {
	query ledger.QueryClient

	mu    sync.RWMutex
	table map[string]TokenInfo
}

// LoadTokenTable loads the token registry from a JSON file. The ledger's
// coin metadata serves as fallback for token types absent from the table.
func LoadTokenTable(filePath string, query ledger.QueryClient) (TokenResolver, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec,G304 // This should be a trusted file
	if err != nil {
		return nil, fmt.Errorf("failed to read token table file: %w", err)
	}

	var tableData TokenTableData
	if err := json.Unmarshal(data, &tableData); err != nil {
		return nil, fmt.Errorf("failed to parse token table JSON: %w", err)
	}

	r := &tokenRegistry{
		query: query,
		table: make(map[string]TokenInfo),
	}

	for _, info := range tableData {
		t, err := domain.ParseTokenType(info.TokenType)
		if err != nil {
			return nil, fmt.Errorf("invalid token type %q in table: %w", info.TokenType, err)
		}
		info.Known = true
		r.table[t.String()] = info
	}

	return r, nil
}

// NewTokenResolver builds a resolver with no local table, relying entirely
// on ledger coin metadata
func NewTokenResolver(query ledger.QueryClient) TokenResolver {
	return &tokenRegistry{
		query: query,
		table: make(map[string]TokenInfo),
	}
}

func (r *tokenRegistry) Resolve(ctx context.Context, tokenType domain.TokenType) TokenInfo {
	key := tokenType.String()

	r.mu.RLock()
	info, ok := r.table[key]
	r.mu.RUnlock()
	if ok {
		return info
	}

	if r.query != nil {
		meta, err := r.query.GetCoinMetadata(ctx, tokenType)
		if err == nil && meta != nil {
			info = TokenInfo{
				TokenType: key,
				Symbol:    meta.Symbol,
				Name:      meta.Name,
				Decimals:  meta.Decimals,
				Known:     true,
			}
			r.mu.Lock()
			r.table[key] = info
			r.mu.Unlock()
			return info
		}
	}

	// Degrade to the type's own symbol segment, zero decimals
	return TokenInfo{
		TokenType: key,
		Symbol:    strings.ToUpper(tokenType.Symbol),
		Decimals:  0,
	}
}

func (r *tokenRegistry) FormatAmount(ctx context.Context, tokenType domain.TokenType, amount uint64) string {
	info := r.Resolve(ctx, tokenType)
	value := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -info.Decimals)
	return value.String()
}

func (r *tokenRegistry) ParseDisplayAmount(ctx context.Context, tokenType domain.TokenType, display string) (uint64, error) {
	info := r.Resolve(ctx, tokenType)

	value, err := decimal.NewFromString(display)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", display, err)
	}
	if value.IsNegative() {
		return 0, fmt.Errorf("amount %q is negative", display)
	}

	scaled := value.Shift(info.Decimals)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d decimal places", display, info.Decimals)
	}

	base := scaled.BigInt()
	if !base.IsUint64() {
		return 0, fmt.Errorf("amount %q overflows base units", display)
	}
	return base.Uint64(), nil
}
