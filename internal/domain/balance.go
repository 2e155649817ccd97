package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// NormalizeBalance decodes a balance value from the ledger's loosely-typed
// serialization into a smallest-unit integer. Observed shapes, all produced
// by the same node software depending on object version:
//
//	"5000000"                      plain decimal string
//	5000000                        JSON number
//	{"fields":{"balance":"5000000"}}  nested coin object
//	{"value":"5000000"}            dynamic field wrapper
//
// Anything else, and any negative or fractional value, is an error: balances
// are non-negative integers by construction.
func NormalizeBalance(raw json.RawMessage) (uint64, error) {
	if len(raw) == 0 {
		return 0, nil
	}

	// Plain string
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseBalanceString(s)
	}

	// JSON number. Decode via json.Number to reject fractional values that
	// a float64 round-trip would silently truncate.
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return parseBalanceString(n.String())
	}

	// Nested coin object
	var nested struct {
		Fields struct {
			Balance json.RawMessage `json:"balance"`
		} `json:"fields"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested.Fields.Balance) > 0 {
			return NormalizeBalance(nested.Fields.Balance)
		}
		if len(nested.Value) > 0 {
			return NormalizeBalance(nested.Value)
		}
	}

	return 0, fmt.Errorf("unrecognized balance shape: %s", string(raw))
}

func parseBalanceString(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid balance %q: %w", s, err)
	}
	return v, nil
}
