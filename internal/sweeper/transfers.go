package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/objectledger/custodian/internal/adapter"
	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/ledger"
	"github.com/objectledger/custodian/internal/logger"
	"github.com/objectledger/custodian/internal/transfer"
)

const (
	DEFAULT_SWEEP_INTERVAL = 30 * time.Second // Time to sleep between sweep cycles
)

// BatchExecutor settles a set of due transfers in one composed mutation
//
//go:generate mockgen -source=transfers.go -destination=../mocks/batch_executor.go -package=mocks -mock_names=BatchExecutor=MockBatchExecutor
type BatchExecutor interface {
	ExecuteDue(ctx context.Context, caller domain.Address, transferIDs []domain.ObjectID) (*transfer.BatchResult, error)
}

// TransferSweeperConfig holds configuration for the transfer sweeper
type TransferSweeperConfig struct {
	PackageID string         // Move package publishing the transfer events
	Caller    domain.Address // Executor identity for the batch mutations
	Interval  time.Duration  // Time between sweep cycles
	BatchSize int            // Max transfers settled per cycle
}

// transferSweeper executes scheduled transfers as they come due. Candidates
// are discovered by scanning transfer creation events; the execute batch
// itself re-checks due-ness against the ledger clock, so a lagging event
// index only delays settlement, never causes early execution.
type transferSweeper struct {
	config    *TransferSweeperConfig
	query     ledger.QueryClient
	executor  BatchExecutor
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewTransferSweeper creates a new scheduled transfer sweeper
func NewTransferSweeper(
	config *TransferSweeperConfig,
	query ledger.QueryClient,
	executor BatchExecutor,
	clock adapter.Clock,
) Sweeper {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_SWEEP_INTERVAL
	}
	return &transferSweeper{
		config:    config,
		query:     query,
		executor:  executor,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *transferSweeper) Name() string {
	return "transfer-sweeper"
}

// Start begins the sweeper's main loop
func (s *transferSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting transfer sweeper",
		zap.String("caller", string(s.config.Caller)),
		zap.Duration("interval", s.config.Interval),
		zap.Int("batch_size", s.config.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Transfer sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Transfer sweeper stop requested")
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
			if !s.sleep(ctx, s.config.Interval) {
				return nil
			}
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *transferSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping transfer sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Transfer sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Transfer sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle discovers transfer candidates and settles the due ones
func (s *transferSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	ids, err := s.discoverWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover transfer candidates: %w", err)
	}

	if len(ids) == 0 {
		logger.DebugCtx(ctx, "No transfer candidates found")
		return nil
	}

	if s.config.BatchSize > 0 && len(ids) > s.config.BatchSize {
		ids = ids[:s.config.BatchSize]
	}

	logger.InfoCtx(ctx, "Found transfer candidates", zap.Int("count", len(ids)))

	result, err := s.executor.ExecuteDue(ctx, s.config.Caller, ids)
	if err != nil {
		return fmt.Errorf("failed to execute due transfers: %w", err)
	}

	duration := s.clock.Since(startTime)
	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", duration),
		zap.Int("candidates", len(ids)),
		zap.Int("executed", len(result.Executed)),
		zap.Int("skipped", len(result.Skipped)),
		zap.String("digest", result.Digest),
	)

	return nil
}

// discoverWithRetry scans transfer creation events with exponential backoff.
// The event index is the only discovery path, so a flapping node should not
// abort the cycle on the first failed query.
func (s *transferSweeper) discoverWithRetry(ctx context.Context) ([]domain.ObjectID, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 15 * time.Second
	b.MaxElapsedTime = 1 * time.Minute
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	backoffWithContext := backoff.WithContext(b, ctx)

	var ids []domain.ObjectID
	operation := func() error {
		var err error
		ids, err = s.discover(ctx)
		return err
	}

	notifyOnError := func(err error, duration time.Duration) {
		logger.WarnCtx(ctx, "Transfer discovery failed, retrying",
			zap.Error(err),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, backoffWithContext, notifyOnError); err != nil {
		return nil, err
	}
	return ids, nil
}

// discover returns the distinct transfer IDs seen in creation events
func (s *transferSweeper) discover(ctx context.Context) ([]domain.ObjectID, error) {
	eventType := fmt.Sprintf("%s::scheduled_transfer::TransferCreated", s.config.PackageID)
	events, err := s.query.QueryEvents(ctx, eventType)
	if err != nil {
		return nil, err
	}

	var ids []domain.ObjectID
	seen := make(map[domain.ObjectID]bool)
	for i := range events {
		id := domain.ObjectID(events[i].StringAttr("transfer_id"))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// sleep sleeps for the given duration but can be interrupted by context
// cancellation or a stop request. Returns false when interrupted.
func (s *transferSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
