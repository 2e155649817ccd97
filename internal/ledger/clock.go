package ledger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/objectledger/custodian/internal/adapter"
	"github.com/objectledger/custodian/internal/logger"
)

//go:generate mockgen -source=clock.go -destination=../mocks/ledger_clock.go -package=mocks -mock_names=Clock=MockLedgerClock

// Clock reports the ledger's notion of current time. All schedule
// comparisons use this clock, never the host wall clock.
type Clock interface {
	Now(ctx context.Context) (time.Time, error)
}

// ClockConfig tunes the cached ledger clock
type ClockConfig struct {
	// TTL is how long a fetched ledger timestamp stays fresh
	TTL time.Duration
	// StaleWindow is how long after TTL expiry a cached timestamp may
	// still be served when the node is unreachable
	StaleWindow time.Duration
}

type cachedClock struct {
	query QueryClient
	cfg   ClockConfig
	local adapter.Clock

	mu        sync.Mutex
	ledgerAt  time.Time
	fetchedAt time.Time
}

// NewClock builds a ledger clock that caches node timestamps for cfg.TTL
// and extrapolates them with locally elapsed time between fetches
func NewClock(query QueryClient, cfg ClockConfig, local adapter.Clock) Clock {
	return &cachedClock{
		query: query,
		cfg:   cfg,
		local: local,
	}
}

func (c *cachedClock) Now(ctx context.Context) (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := c.local.Since(c.fetchedAt)
	if !c.fetchedAt.IsZero() && elapsed < c.cfg.TTL {
		return c.ledgerAt.Add(elapsed), nil
	}

	ledgerNow, err := c.query.GetLedgerTime(ctx)
	if err != nil {
		if !c.fetchedAt.IsZero() && elapsed < c.cfg.TTL+c.cfg.StaleWindow {
			logger.WarnCtx(ctx, "serving stale ledger time",
				zap.Duration("age", elapsed), zap.Error(err))
			return c.ledgerAt.Add(elapsed), nil
		}
		return time.Time{}, err
	}

	c.ledgerAt = ledgerNow
	c.fetchedAt = c.local.Now()
	return ledgerNow, nil
}
