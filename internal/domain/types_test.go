package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectledger/custodian/internal/domain"
)

func TestParseTokenType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "canonical triple",
			input: "0x2::native::NAT",
			want:  "0x2::native::NAT",
		},
		{
			name:  "missing 0x prefix",
			input: "a7350b7764187df2f2296d2c6247a32e::test_coin::TEST_COIN",
			want:  "0xa7350b7764187df2f2296d2c6247a32e::test_coin::TEST_COIN",
		},
		{
			name:  "uppercase address is lowered",
			input: "0xA735::usdc::USDC",
			want:  "0xa735::usdc::USDC",
		},
		{
			name:  "surrounding whitespace",
			input: "  0x2::native::NAT  ",
			want:  "0x2::native::NAT",
		},
		{
			name:    "two segments",
			input:   "0x2::native",
			wantErr: true,
		},
		{
			name:    "empty symbol",
			input:   "0x2::native::",
			wantErr: true,
		},
		{
			name:    "bad address segment",
			input:   "0xzz::native::NAT",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseTokenType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTokenType_IsNative(t *testing.T) {
	native, err := domain.ParseTokenType("0x2::native::NAT")
	require.NoError(t, err)
	assert.True(t, native.IsNative())

	usdc, err := domain.ParseTokenType("0xa735::usdc::USDC")
	require.NoError(t, err)
	assert.False(t, usdc.IsNative())
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, domain.Address("0xabc1"), domain.NormalizeAddress("0xABC1"))
	assert.Equal(t, domain.Address("0xabc1"), domain.NormalizeAddress("abc1"))
	assert.Equal(t, domain.Address("0xabc1"), domain.NormalizeAddress(" 0xabc1 "))
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, domain.IsValidAddress("0xabc123"))
	assert.True(t, domain.IsValidAddress(domain.ZeroAddress))
	assert.False(t, domain.IsValidAddress("abc123"))
	assert.False(t, domain.IsValidAddress("0x"))
	assert.False(t, domain.IsValidAddress("0xzz"))
}

func TestScheduledTransfer_Status(t *testing.T) {
	tr := &domain.ScheduledTransfer{}
	assert.Equal(t, domain.TransferStatusCreated, tr.Status())
	assert.False(t, tr.Status().Terminal())

	tr.Executed = true
	assert.Equal(t, domain.TransferStatusExecuted, tr.Status())
	assert.True(t, tr.Status().Terminal())

	tr = &domain.ScheduledTransfer{Cancelled: true}
	assert.Equal(t, domain.TransferStatusCancelled, tr.Status())
	assert.True(t, tr.Status().Terminal())

	// Executed wins over a corrupt record carrying both flags
	tr = &domain.ScheduledTransfer{Executed: true, Cancelled: true}
	assert.Equal(t, domain.TransferStatusExecuted, tr.Status())
}

func TestScheduledTransfer_Due(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tr := &domain.ScheduledTransfer{ExecuteAt: at}

	assert.False(t, tr.Due(at.Add(-time.Second)))
	assert.True(t, tr.Due(at))
	assert.True(t, tr.Due(at.Add(time.Second)))
}

func TestBalances_Get(t *testing.T) {
	usdc, err := domain.ParseTokenType("0xa735::usdc::USDC")
	require.NoError(t, err)

	b := domain.Balances{usdc.String(): 42}
	assert.Equal(t, uint64(42), b.Get(usdc))
	assert.Equal(t, uint64(0), b.Get(domain.NativeTokenType))
}
