package wallet

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/emitter"
	"github.com/objectledger/custodian/internal/ledger"
	"github.com/objectledger/custodian/internal/logger"
	"github.com/objectledger/custodian/internal/marketplace"
)

// Config holds wallet manager configuration
type Config struct {
	PackageID string
	// BalanceWorkers bounds the concurrency of dynamic-field balance reads
	BalanceWorkers int
}

const defaultBalanceWorkers = 10

// balanceEntry is one resolved wallet balance keyed by token type
type balanceEntry struct {
	tokenType string
	amount    uint64
}

// DepositResult reports a settled deposit. Stale marks a commit whose
// expected deposit event was not observed in the result; the deposit
// itself is authoritative.
type DepositResult struct {
	Digest string
	Stale  bool
}

// Manager owns per-object custodial wallets: creation, balances,
// deposits, withdrawals and fund housekeeping
type Manager struct {
	query  ledger.QueryClient
	mutate ledger.MutationClient
	tokens marketplace.TokenChecker
	events emitter.Publisher
	pool   pond.ResultPool[*balanceEntry]

	packageID string
}

// NewManager builds a wallet manager for one deployed custody package
func NewManager(cfg Config, query ledger.QueryClient, mutate ledger.MutationClient, tokens marketplace.TokenChecker, events emitter.Publisher) *Manager {
	workers := cfg.BalanceWorkers
	if workers <= 0 {
		workers = defaultBalanceWorkers
	}

	return &Manager{
		query:     query,
		mutate:    mutate,
		tokens:    tokens,
		events:    events,
		pool:      pond.NewResultPool[*balanceEntry](workers),
		packageID: cfg.PackageID,
	}
}

// Close releases the balance worker pool
func (m *Manager) Close() {
	m.pool.StopAndWait()
}

// CreateWallet binds a new custodial sub-wallet to a caller-owned object.
// Ownership is re-verified against the current object state before
// broadcasting.
func (m *Manager) CreateWallet(ctx context.Context, caller domain.Address, objectID domain.ObjectID) (domain.ObjectID, error) {
	obj, err := m.readTradingObject(ctx, objectID)
	if err != nil {
		return "", err
	}

	// A zero-address owner marks corrupt object state; refuse to touch it
	if obj.Owner == domain.ZeroAddress {
		return "", fmt.Errorf("%w: object %s has zero-address owner", domain.ErrNotOwner, objectID)
	}
	if obj.Owner != domain.NormalizeAddress(caller) {
		return "", fmt.Errorf("%w: object %s", domain.ErrNotOwner, objectID)
	}
	if obj.WalletID != "" {
		return "", fmt.Errorf("%w: object %s already bound to wallet %s", domain.ErrAlreadyExists, objectID, obj.WalletID)
	}

	mut := ledger.NewMutation(caller)
	mut.Kind = "create_wallet"
	mut.Invoke(
		fmt.Sprintf("%s::object_wallet::create_wallet", m.packageID),
		nil,
		ledger.ObjectArg(objectID),
	)

	sub, err := m.mutate.Submit(ctx, mut)
	if err != nil {
		return "", err
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		return "", err
	}

	walletID, ok := result.CreatedObjectID(ledger.TypeObjectWallet)
	if !ok {
		return "", fmt.Errorf("mutation %s committed but no wallet object in changes", result.Digest)
	}

	m.publish(ctx, &domain.CustodyEvent{
		Kind:     domain.CustodyEventWalletCreated,
		ObjectID: objectID,
		WalletID: walletID,
		Actor:    domain.NormalizeAddress(caller),
		Digest:   result.Digest,
	})

	return walletID, nil
}

// GetWallet reads one wallet's metadata
func (m *Manager) GetWallet(ctx context.Context, walletID domain.ObjectID) (*domain.ObjectWallet, error) {
	obj, err := m.query.GetObject(ctx, walletID)
	if err != nil {
		return nil, err
	}
	return ledger.ObjectWalletFrom(obj), nil
}

// Balances enumerates a wallet's balance table. Each dynamic field entry
// is fetched concurrently; entries with unreadable values are skipped
// with a warning. A token type absent from the map holds zero.
func (m *Manager) Balances(ctx context.Context, walletID domain.ObjectID) (domain.Balances, error) {
	fields, err := m.query.GetDynamicFields(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("enumerate wallet %s balances: %w", walletID, err)
	}

	tasks := make([]pond.Result[*balanceEntry], 0, len(fields))
	for _, field := range fields {
		tasks = append(tasks, m.pool.SubmitErr(func() (*balanceEntry, error) {
			tokenType, err := domain.ParseTokenType(field.Name)
			if err != nil {
				return nil, fmt.Errorf("balance key %q: %w", field.Name, err)
			}

			entry, err := m.query.GetObject(ctx, domain.ObjectID(field.ObjectID))
			if err != nil {
				return nil, fmt.Errorf("balance entry %s: %w", field.ObjectID, err)
			}
			amount, err := entry.Uint64Field("balance")
			if err != nil {
				return nil, fmt.Errorf("balance entry %s: %w", field.ObjectID, err)
			}

			return &balanceEntry{tokenType: tokenType.String(), amount: amount}, nil
		}))
	}

	balances := make(domain.Balances, len(tasks))
	for _, task := range tasks {
		entry, err := task.Wait()
		if err != nil {
			logger.WarnCtx(ctx, "skipping unreadable balance entry",
				zap.String("wallet_id", string(walletID)), zap.Error(err))
			continue
		}
		balances[entry.tokenType] += entry.amount
	}
	return balances, nil
}

// BalanceOf reads a single token balance, zero when the wallet holds none
func (m *Manager) BalanceOf(ctx context.Context, walletID domain.ObjectID, tokenType domain.TokenType) (uint64, error) {
	fields, err := m.query.GetDynamicFields(ctx, walletID)
	if err != nil {
		return 0, fmt.Errorf("enumerate wallet %s balances: %w", walletID, err)
	}

	want := tokenType.String()
	for _, field := range fields {
		parsed, err := domain.ParseTokenType(field.Name)
		if err != nil || parsed.String() != want {
			continue
		}
		entry, err := m.query.GetObject(ctx, domain.ObjectID(field.ObjectID))
		if err != nil {
			return 0, fmt.Errorf("balance entry %s: %w", field.ObjectID, err)
		}
		return entry.Uint64Field("balance")
	}
	return 0, nil
}

// Deposit credits a wallet with an exact amount carved off the caller's
// funds. The native token draws from the transaction's gas allowance; any
// other token requires a caller-owned fund object covering the amount.
func (m *Manager) Deposit(ctx context.Context, caller domain.Address, walletID domain.ObjectID, tokenType domain.TokenType, amount uint64) (*DepositResult, error) {
	if amount == 0 {
		return nil, domain.ErrInvalidAmount
	}

	supported, err := m.tokens.IsTokenSupported(ctx, tokenType)
	if err != nil {
		return nil, fmt.Errorf("check token support: %w", err)
	}
	if !supported {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedToken, tokenType)
	}

	mut := ledger.NewMutation(caller)
	mut.Kind = "deposit"

	splitIdx, err := m.addPaymentSplit(ctx, mut, caller, tokenType, amount)
	if err != nil {
		return nil, err
	}

	mut.Invoke(
		fmt.Sprintf("%s::object_wallet::deposit", m.packageID),
		[]string{tokenType.String()},
		ledger.ObjectArg(walletID),
		ledger.ResultArg(splitIdx),
	)

	sub, err := m.mutate.Submit(ctx, mut)
	if err != nil {
		return nil, err
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		return nil, err
	}

	// The commit is authoritative; a missing deposit event only means the
	// node's event index lags behind.
	stale := false
	if _, ok := result.EventOfType("TokenDeposited"); !ok {
		stale = true
		logger.WarnCtx(ctx, "deposit committed without visible deposit event",
			zap.String("wallet_id", string(walletID)),
			zap.String("digest", result.Digest))
	}

	m.publish(ctx, &domain.CustodyEvent{
		Kind:      domain.CustodyEventDeposited,
		WalletID:  walletID,
		TokenType: tokenType.String(),
		Amount:    amount,
		Actor:     domain.NormalizeAddress(caller),
		Digest:    result.Digest,
	})

	return &DepositResult{Digest: result.Digest, Stale: stale}, nil
}

// Withdraw debits a wallet and sends the funds to a destination address
func (m *Manager) Withdraw(ctx context.Context, caller domain.Address, walletID domain.ObjectID, tokenType domain.TokenType, amount uint64, to domain.Address) (string, error) {
	if amount == 0 {
		return "", domain.ErrInvalidAmount
	}
	if to == "" || domain.NormalizeAddress(to) == domain.ZeroAddress {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidRecipient, to)
	}

	available, err := m.BalanceOf(ctx, walletID, tokenType)
	if err != nil {
		return "", err
	}
	if available < amount {
		return "", &domain.InsufficientBalanceError{
			TokenType: tokenType,
			Required:  amount,
			Available: available,
		}
	}

	mut := ledger.NewMutation(caller)
	mut.Kind = "withdraw"
	withdrawIdx := mut.Invoke(
		fmt.Sprintf("%s::object_wallet::withdraw", m.packageID),
		[]string{tokenType.String()},
		ledger.ObjectArg(walletID),
		ledger.PureArg(amount),
	)
	mut.TransferObjects([]ledger.Arg{ledger.ResultArg(withdrawIdx)}, domain.NormalizeAddress(to))

	sub, err := m.mutate.Submit(ctx, mut)
	if err != nil {
		return "", err
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		return "", err
	}

	m.publish(ctx, &domain.CustodyEvent{
		Kind:      domain.CustodyEventWithdrawn,
		WalletID:  walletID,
		TokenType: tokenType.String(),
		Amount:    amount,
		Actor:     domain.NormalizeAddress(caller),
		Digest:    result.Digest,
	})

	return result.Digest, nil
}

// MergeFunds consolidates the caller's fund objects of one token type
// into a single object. Holding one or zero objects is a no-op and
// returns an empty digest.
func (m *Manager) MergeFunds(ctx context.Context, caller domain.Address, tokenType domain.TokenType) (string, error) {
	funds, err := m.query.GetFungibleObjects(ctx, caller, tokenType)
	if err != nil {
		return "", err
	}
	if len(funds) <= 1 {
		return "", nil
	}

	// Merge into the largest object
	sort.Slice(funds, func(i, j int) bool {
		return funds[i].Balance > funds[j].Balance
	})
	sources := make([]domain.ObjectID, 0, len(funds)-1)
	for _, f := range funds[1:] {
		sources = append(sources, f.ID)
	}

	mut := ledger.NewMutation(caller)
	mut.Kind = "merge_funds"
	mut.MergeFunds(funds[0].ID, sources)

	sub, err := m.mutate.Submit(ctx, mut)
	if err != nil {
		return "", err
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		return "", err
	}
	return result.Digest, nil
}

// addPaymentSplit appends the step carving an exact payment amount off
// the caller's funds and returns its index. Fails with the shortfall when
// no single fund object covers the amount.
func (m *Manager) addPaymentSplit(ctx context.Context, mut *ledger.Mutation, caller domain.Address, tokenType domain.TokenType, amount uint64) (int, error) {
	if tokenType.IsNative() {
		return mut.SplitGas(amount), nil
	}

	funds, err := m.query.GetFungibleObjects(ctx, caller, tokenType)
	if err != nil {
		return 0, fmt.Errorf("resolve funding source: %w", err)
	}

	var best *domain.FundObject
	var total uint64
	for i := range funds {
		total += funds[i].Balance
		if funds[i].Balance < amount {
			continue
		}
		if best == nil || funds[i].Balance < best.Balance {
			best = &funds[i]
		}
	}
	if best == nil {
		return 0, &domain.InsufficientBalanceError{
			TokenType: tokenType,
			Required:  amount,
			Available: total,
		}
	}

	return mut.SplitFunds(best.ID, amount), nil
}

// readTradingObject reads and converts one tradable object
func (m *Manager) readTradingObject(ctx context.Context, objectID domain.ObjectID) (*domain.TradingObject, error) {
	obj, err := m.query.GetObject(ctx, objectID)
	if err != nil {
		return nil, err
	}
	return ledger.TradingObjectFrom(obj)
}

// publish emits a custody event best effort; failures never fail the
// settled operation
func (m *Manager) publish(ctx context.Context, event *domain.CustodyEvent) {
	if m.events == nil {
		return
	}

	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if err := m.events.PublishCustodyEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish custody event",
			zap.String("kind", string(event.Kind)), zap.Error(err))
	}
}
