package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectledger/custodian/internal/domain"
)

func TestNormalizeBalance(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    uint64
		wantErr bool
	}{
		{name: "decimal string", raw: `"5000000"`, want: 5000000},
		{name: "empty string", raw: `""`, want: 0},
		{name: "json number", raw: `5000000`, want: 5000000},
		{name: "zero number", raw: `0`, want: 0},
		{name: "nested coin object", raw: `{"fields":{"balance":"2000000"}}`, want: 2000000},
		{name: "nested coin object with numeric balance", raw: `{"fields":{"balance":2000000}}`, want: 2000000},
		{name: "dynamic field wrapper", raw: `{"value":"300"}`, want: 300},
		{name: "doubly nested wrapper", raw: `{"value":{"fields":{"balance":"7"}}}`, want: 7},
		{name: "max uint64", raw: `"18446744073709551615"`, want: 18446744073709551615},
		{name: "negative string", raw: `"-1"`, wantErr: true},
		{name: "negative number", raw: `-1`, wantErr: true},
		{name: "fractional number", raw: `1.5`, wantErr: true},
		{name: "overflow", raw: `"18446744073709551616"`, wantErr: true},
		{name: "non-numeric string", raw: `"abc"`, wantErr: true},
		{name: "array", raw: `[1]`, wantErr: true},
		{name: "object without known keys", raw: `{"foo":"bar"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NormalizeBalance(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeBalance_Empty(t *testing.T) {
	got, err := domain.NormalizeBalance(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}
