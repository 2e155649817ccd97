package sweeper_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/ledger"
	"github.com/objectledger/custodian/internal/logger"
	"github.com/objectledger/custodian/internal/mocks"
	"github.com/objectledger/custodian/internal/sweeper"
	"github.com/objectledger/custodian/internal/transfer"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const testCaller = domain.Address("0xexec")

type testSweeperMocks struct {
	ctrl     *gomock.Controller
	query    *mocks.MockQueryClient
	executor *mocks.MockBatchExecutor
	clock    *mocks.MockClock
	sweeper  sweeper.Sweeper
}

func setupTest(t *testing.T, batchSize int) *testSweeperMocks {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockQueryClient(ctrl)
	executor := mocks.NewMockBatchExecutor(ctrl)
	clock := mocks.NewMockClock(ctrl)

	s := sweeper.NewTransferSweeper(&sweeper.TransferSweeperConfig{
		PackageID: "0xpkg",
		Caller:    testCaller,
		Interval:  time.Second,
		BatchSize: batchSize,
	}, query, executor, clock)

	return &testSweeperMocks{
		ctrl:     ctrl,
		query:    query,
		executor: executor,
		clock:    clock,
		sweeper:  s,
	}
}

func tearDownTest(tm *testSweeperMocks) {
	tm.ctrl.Finish()
}

func transferCreatedEvent(transferID string) ledger.Event {
	raw, _ := json.Marshal(transferID)
	return ledger.Event{
		Type:       "0xpkg::scheduled_transfer::TransferCreated",
		ParsedJSON: map[string]json.RawMessage{"transfer_id": raw},
	}
}

// runOneCycle lets the sweeper finish one cycle and then stops it during
// the inter-cycle sleep. The sleep entry doubles as the completion signal.
func runOneCycle(t *testing.T, tm *testSweeperMocks) {
	t.Helper()

	slept := make(chan struct{}, 1)
	never := make(chan time.Time)
	tm.clock.EXPECT().After(time.Second).DoAndReturn(func(time.Duration) <-chan time.Time {
		select {
		case slept <- struct{}{}:
		default:
		}
		return never
	}).AnyTimes()

	done := make(chan error, 1)
	go func() {
		done <- tm.sweeper.Start(context.Background())
	}()

	select {
	case <-slept:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper never finished its first cycle")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, tm.sweeper.Stop(stopCtx))
	assert.NoError(t, <-done)
}

func TestSweep_ExecutesDiscoveredTransfers(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tm.clock.EXPECT().Now().Return(start).AnyTimes()
	tm.clock.EXPECT().Since(start).Return(20 * time.Millisecond).AnyTimes()

	// Duplicate creation events for 0xt1 collapse to one candidate
	tm.query.EXPECT().
		QueryEvents(gomock.Any(), "0xpkg::scheduled_transfer::TransferCreated").
		Return([]ledger.Event{
			transferCreatedEvent("0xt1"),
			transferCreatedEvent("0xt2"),
			transferCreatedEvent("0xt1"),
		}, nil).
		MinTimes(1)

	tm.executor.EXPECT().
		ExecuteDue(gomock.Any(), testCaller, []domain.ObjectID{"0xt1", "0xt2"}).
		Return(&transfer.BatchResult{
			Executed: []domain.ObjectID{"0xt1"},
			Skipped:  map[domain.ObjectID]string{"0xt2": "transfer not yet due"},
			Digest:   "0xd1",
		}, nil).
		MinTimes(1)

	runOneCycle(t, tm)
}

func TestSweep_NoCandidates(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	tm.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	tm.query.EXPECT().
		QueryEvents(gomock.Any(), gomock.Any()).
		Return(nil, nil).
		MinTimes(1)

	// No executor expectation: nothing to settle
	runOneCycle(t, tm)
}

func TestSweep_BatchSizeCapsCandidates(t *testing.T) {
	tm := setupTest(t, 2)
	defer tearDownTest(tm)

	start := time.Now()
	tm.clock.EXPECT().Now().Return(start).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Millisecond).AnyTimes()

	tm.query.EXPECT().
		QueryEvents(gomock.Any(), gomock.Any()).
		Return([]ledger.Event{
			transferCreatedEvent("0xt1"),
			transferCreatedEvent("0xt2"),
			transferCreatedEvent("0xt3"),
		}, nil).
		MinTimes(1)

	tm.executor.EXPECT().
		ExecuteDue(gomock.Any(), testCaller, []domain.ObjectID{"0xt1", "0xt2"}).
		Return(&transfer.BatchResult{}, nil).
		MinTimes(1)

	runOneCycle(t, tm)
}

func TestSweep_DiscoveryRetries(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	start := time.Now()
	tm.clock.EXPECT().Now().Return(start).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Millisecond).AnyTimes()

	// First query fails, backoff retries within the same cycle
	tm.query.EXPECT().
		QueryEvents(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("node unavailable"))
	tm.query.EXPECT().
		QueryEvents(gomock.Any(), gomock.Any()).
		Return([]ledger.Event{transferCreatedEvent("0xt1")}, nil).
		MinTimes(1)

	tm.executor.EXPECT().
		ExecuteDue(gomock.Any(), testCaller, []domain.ObjectID{"0xt1"}).
		Return(&transfer.BatchResult{Executed: []domain.ObjectID{"0xt1"}}, nil).
		MinTimes(1)

	runOneCycle(t, tm)
}

func TestStart_AlreadyRunning(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	tm.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	tm.query.EXPECT().QueryEvents(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	slept := make(chan struct{}, 1)
	never := make(chan time.Time)
	tm.clock.EXPECT().After(time.Second).DoAndReturn(func(time.Duration) <-chan time.Time {
		select {
		case slept <- struct{}{}:
		default:
		}
		return never
	}).AnyTimes()

	done := make(chan error, 1)
	go func() {
		done <- tm.sweeper.Start(context.Background())
	}()

	select {
	case <-slept:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper never finished its first cycle")
	}

	assert.Error(t, tm.sweeper.Start(context.Background()))

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, tm.sweeper.Stop(stopCtx))
	assert.NoError(t, <-done)
}

func TestStop_WithoutStart(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	assert.NoError(t, tm.sweeper.Stop(context.Background()))
}

func TestSweep_ContextCancellation(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	tm.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	tm.query.EXPECT().QueryEvents(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	never := make(chan time.Time)
	tm.clock.EXPECT().After(time.Second).Return((<-chan time.Time)(never)).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- tm.sweeper.Start(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop on context cancellation")
	}
}
