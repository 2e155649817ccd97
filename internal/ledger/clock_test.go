package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/objectledger/custodian/internal/ledger"
	"github.com/objectledger/custodian/internal/mocks"
)

// testClockMocks contains all the mocks needed for testing the cached clock
type testClockMocks struct {
	ctrl  *gomock.Controller
	query *mocks.MockQueryClient
	local *mocks.MockClock
	clock ledger.Clock
}

func setupClockTest(t *testing.T) *testClockMocks {
	ctrl := gomock.NewController(t)

	query := mocks.NewMockQueryClient(ctrl)
	local := mocks.NewMockClock(ctrl)

	return &testClockMocks{
		ctrl:  ctrl,
		query: query,
		local: local,
		clock: ledger.NewClock(query, ledger.ClockConfig{
			TTL:         5 * time.Second,
			StaleWindow: 60 * time.Second,
		}, local),
	}
}

func tearDownClockTest(tm *testClockMocks) {
	tm.ctrl.Finish()
}

func TestClock_FirstFetch(t *testing.T) {
	tm := setupClockTest(t)
	defer tearDownClockTest(tm)

	ctx := context.Background()
	ledgerNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	localNow := time.Date(2025, 6, 1, 12, 0, 3, 0, time.UTC)

	// Zero fetchedAt forces a fetch regardless of elapsed
	tm.local.EXPECT().Since(time.Time{}).Return(time.Duration(1 << 62))
	tm.query.EXPECT().GetLedgerTime(ctx).Return(ledgerNow, nil)
	tm.local.EXPECT().Now().Return(localNow)

	got, err := tm.clock.Now(ctx)
	assert.NoError(t, err)
	assert.Equal(t, ledgerNow, got)
}

func TestClock_CachedExtrapolation(t *testing.T) {
	tm := setupClockTest(t)
	defer tearDownClockTest(tm)

	ctx := context.Background()
	ledgerNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	localNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tm.local.EXPECT().Since(time.Time{}).Return(time.Duration(1 << 62))
	tm.query.EXPECT().GetLedgerTime(ctx).Return(ledgerNow, nil)
	tm.local.EXPECT().Now().Return(localNow)

	_, err := tm.clock.Now(ctx)
	assert.NoError(t, err)

	// Second read 2s later stays on the cache, extrapolated
	tm.local.EXPECT().Since(localNow).Return(2 * time.Second)

	got, err := tm.clock.Now(ctx)
	assert.NoError(t, err)
	assert.Equal(t, ledgerNow.Add(2*time.Second), got)
}

func TestClock_StaleServeOnFetchError(t *testing.T) {
	tm := setupClockTest(t)
	defer tearDownClockTest(tm)

	ctx := context.Background()
	ledgerNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	localNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tm.local.EXPECT().Since(time.Time{}).Return(time.Duration(1 << 62))
	tm.query.EXPECT().GetLedgerTime(ctx).Return(ledgerNow, nil)
	tm.local.EXPECT().Now().Return(localNow)

	_, err := tm.clock.Now(ctx)
	assert.NoError(t, err)

	// TTL expired but inside the stale window, node unreachable
	tm.local.EXPECT().Since(localNow).Return(10 * time.Second)
	tm.query.EXPECT().GetLedgerTime(ctx).Return(time.Time{}, errors.New("connection refused"))

	got, err := tm.clock.Now(ctx)
	assert.NoError(t, err)
	assert.Equal(t, ledgerNow.Add(10*time.Second), got)
}

func TestClock_ErrorBeyondStaleWindow(t *testing.T) {
	tm := setupClockTest(t)
	defer tearDownClockTest(tm)

	ctx := context.Background()
	ledgerNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	localNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tm.local.EXPECT().Since(time.Time{}).Return(time.Duration(1 << 62))
	tm.query.EXPECT().GetLedgerTime(ctx).Return(ledgerNow, nil)
	tm.local.EXPECT().Now().Return(localNow)

	_, err := tm.clock.Now(ctx)
	assert.NoError(t, err)

	// Cache older than TTL + stale window: the error surfaces
	fetchErr := errors.New("connection refused")
	tm.local.EXPECT().Since(localNow).Return(2 * time.Minute)
	tm.query.EXPECT().GetLedgerTime(ctx).Return(time.Time{}, fetchErr)

	_, err = tm.clock.Now(ctx)
	assert.ErrorIs(t, err, fetchErr)
}

func TestClock_ErrorOnFirstFetch(t *testing.T) {
	tm := setupClockTest(t)
	defer tearDownClockTest(tm)

	ctx := context.Background()
	fetchErr := errors.New("connection refused")

	// No cache to fall back on
	tm.local.EXPECT().Since(time.Time{}).Return(time.Duration(0))
	tm.query.EXPECT().GetLedgerTime(ctx).Return(time.Time{}, fetchErr)

	_, err := tm.clock.Now(ctx)
	assert.ErrorIs(t, err, fetchErr)
}
