package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Address represents a 32-byte ledger account address in 0x-prefixed hex
type Address string

// ObjectID represents the identifier of an on-ledger object.
// Object ids and addresses share the same format on this ledger.
type ObjectID string

const (
	// ZeroAddress is the all-zeroes address. An object owned by it is in a
	// corrupt state and must never be operated on.
	ZeroAddress Address = "0x0000000000000000000000000000000000000000000000000000000000000000"
)

var hexIDPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)

// IsValidAddress checks if an address is well-formed
func IsValidAddress(addr Address) bool {
	return hexIDPattern.MatchString(string(addr))
}

// IsValidObjectID checks if an object id is well-formed
func IsValidObjectID(id ObjectID) bool {
	return hexIDPattern.MatchString(string(id))
}

// NormalizeAddress normalizes an address to 0x-prefixed lowercase hex
func NormalizeAddress(addr Address) Address {
	s := strings.TrimSpace(string(addr))
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return Address(strings.ToLower(s))
}

// TokenType identifies a fungible asset kind as an address::module::Symbol
// triple, e.g. "0x2::native::NAT". It is constructed once via ParseTokenType
// and passed by value.
type TokenType struct {
	Address string
	Module  string
	Symbol  string
}

// NativeTokenType is the ledger's gas token. Payments in it may be drawn
// from a transaction's own gas allowance instead of a fund object.
var NativeTokenType = TokenType{Address: "0x2", Module: "native", Symbol: "NAT"}

// ParseTokenType parses and normalizes a token type string.
// The address segment is normalized to 0x-prefixed lowercase; module and
// symbol are kept verbatim.
func ParseTokenType(s string) (TokenType, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}

	parts := strings.Split(s, "::")
	if len(parts) != 3 {
		return TokenType{}, fmt.Errorf("invalid token type %q: want address::module::Symbol", s)
	}
	if !hexIDPattern.MatchString(parts[0]) {
		return TokenType{}, fmt.Errorf("invalid token type %q: bad address segment", s)
	}
	if parts[1] == "" || parts[2] == "" {
		return TokenType{}, fmt.Errorf("invalid token type %q: empty module or symbol", s)
	}

	return TokenType{
		Address: strings.ToLower(parts[0]),
		Module:  parts[1],
		Symbol:  parts[2],
	}, nil
}

// String returns the canonical string form of the token type
func (t TokenType) String() string {
	return fmt.Sprintf("%s::%s::%s", t.Address, t.Module, t.Symbol)
}

// IsNative reports whether this is the ledger's gas token
func (t TokenType) IsNative() bool {
	return t == NativeTokenType
}

// IsZero reports whether the token type is unset
func (t TokenType) IsZero() bool {
	return t == TokenType{}
}

// TradingObject is the read model of a tradable on-ledger object
type TradingObject struct {
	ID        ObjectID
	Owner     Address
	Price     uint64 // smallest units of TokenType
	TokenType TokenType
	IsForSale bool
	// WalletID is the bound sub-wallet id, empty when no wallet exists yet
	WalletID ObjectID
}

// ObjectWallet is the read model of a per-object custodial sub-wallet.
// Balances live in dynamic fields keyed by token type; a missing key is an
// implicit zero balance.
type ObjectWallet struct {
	ID        ObjectID
	ObjectID  ObjectID
	Owner     Address
	CreatedAt time.Time
}

// FundObject is a caller-owned fungible object usable as a funding source
type FundObject struct {
	ID        ObjectID
	TokenType TokenType
	Balance   uint64
}

// Balances maps a canonical token type string to a smallest-unit amount
type Balances map[string]uint64

// Get returns the balance for a token type, zero when absent
func (b Balances) Get(t TokenType) uint64 {
	return b[t.String()]
}
