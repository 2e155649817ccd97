package transfer

import (
	"context"
	"errors"
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
)

//go:generate mockgen -source=engine.go -destination=../mocks/balance_reader.go -package=mocks -mock_names=BalanceReader=MockBalanceReader

// BalanceReader reads one wallet balance; satisfied by the wallet manager
type BalanceReader interface {
	BalanceOf(ctx context.Context, walletID domain.ObjectID, tokenType domain.TokenType) (uint64, error)
}

// Config holds transfer engine configuration
type Config struct {
	PackageID string
	// MinLeadTime is the minimum gap between ledger now and execute_at
	// accepted at creation
	MinLeadTime time.Duration
	// ListWorkers bounds the concurrency of transfer record fetches
	ListWorkers int
}

const (
	defaultMinLeadTime = 60 * time.Second
	defaultListWorkers = 10
)

// CreateResult reports a created scheduled transfer
type CreateResult struct {
	TransferID domain.ObjectID
	Digest     string
}

// BatchResult reports the outcome of a batch execution. Skipped maps a
// transfer id to the reason it was left out of the mutation.
type BatchResult struct {
	Executed []domain.ObjectID
	Skipped  map[domain.ObjectID]string
	Digest   string
}

// Engine manages cancellable future transfers against wallet balances.
// Due-ness is always judged by the ledger clock, never the host clock.
type Engine struct {
	query    ledger.QueryClient
	mutate   ledger.MutationClient
	clock    ledger.Clock
	balances BalanceReader
	events   emitter.Publisher
	pool     pond.ResultPool[*domain.ScheduledTransfer]

	packageID   string
	minLeadTime time.Duration
}

// NewEngine builds a transfer engine for one deployed custody package
func NewEngine(cfg Config, query ledger.QueryClient, mutate ledger.MutationClient, clock ledger.Clock, balances BalanceReader, events emitter.Publisher) *Engine {
	minLead := cfg.MinLeadTime
	if minLead <= 0 {
		minLead = defaultMinLeadTime
	}
	workers := cfg.ListWorkers
	if workers <= 0 {
		workers = defaultListWorkers
	}

	return &Engine{
		query:       query,
		mutate:      mutate,
		clock:       clock,
		balances:    balances,
		events:      events,
		pool:        pond.NewResultPool[*domain.ScheduledTransfer](workers),
		packageID:   cfg.PackageID,
		minLeadTime: minLead,
	}
}

// Close releases the list worker pool
func (e *Engine) Close() {
	e.pool.StopAndWait()
}

// Create schedules a future transfer out of a wallet. The object id is
// recorded on the transfer so creation events can be scanned per object.
// The execute time must be at least MinLeadTime past the ledger's current
// time.
func (e *Engine) Create(ctx context.Context, caller domain.Address, walletID, objectID domain.ObjectID, to domain.Address, tokenType domain.TokenType, amount uint64, executeAt time.Time) (*CreateResult, error) {
	if amount == 0 {
		return nil, domain.ErrInvalidAmount
	}
	if to == "" || domain.NormalizeAddress(to) == domain.ZeroAddress {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRecipient, to)
	}

	ledgerNow, err := e.clock.Now(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ledger time: %w", err)
	}
	if executeAt.Before(ledgerNow.Add(e.minLeadTime)) {
		return nil, fmt.Errorf("%w: execute_at %s is inside the %s lead window (ledger now %s)",
			domain.ErrInvalidSchedule, executeAt.UTC().Format(time.RFC3339), e.minLeadTime, ledgerNow.UTC().Format(time.RFC3339))
	}

	mut := ledger.NewMutation(caller)
	mut.Kind = "transfer_create"
	mut.Invoke(
		fmt.Sprintf("%s::scheduled_transfer::create", e.packageID),
		[]string{tokenType.String()},
		ledger.ObjectArg(walletID),
		ledger.PureArg(string(objectID)),
		ledger.PureArg(string(domain.NormalizeAddress(to))),
		ledger.PureArg(amount),
		ledger.PureArg(executeAt.UTC().UnixMilli()),
	)

	sub, err := e.mutate.Submit(ctx, mut)
	if err != nil {
		return nil, err
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		return nil, err
	}

	transferID, ok := result.CreatedObjectID(ledger.TypeScheduledTransfer)
	if !ok {
		return nil, fmt.Errorf("mutation %s committed but no transfer object in changes", result.Digest)
	}

	e.publish(ctx, &domain.CustodyEvent{
		Kind:      domain.CustodyEventTransferCreated,
		ObjectID:  objectID,
		WalletID:  walletID,
		TokenType: tokenType.String(),
		Amount:    amount,
		Actor:     domain.NormalizeAddress(caller),
		Digest:    result.Digest,
	})

	return &CreateResult{TransferID: transferID, Digest: result.Digest}, nil
}

// Get reads one scheduled transfer record
func (e *Engine) Get(ctx context.Context, transferID domain.ObjectID) (*domain.ScheduledTransfer, error) {
	obj, err := e.query.GetObject(ctx, transferID)
	if err != nil {
		if errors.Is(err, domain.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTransferNotFound, transferID)
		}
		return nil, err
	}
	return ledger.ScheduledTransferFrom(obj)
}

// Execute settles a due transfer. Any caller may execute; the funds move
// from the wallet to the recorded recipient regardless of who calls.
func (e *Engine) Execute(ctx context.Context, caller domain.Address, transferID domain.ObjectID) (string, error) {
	t, err := e.Get(ctx, transferID)
	if err != nil {
		return "", err
	}

	if err := e.checkExecutable(ctx, t); err != nil {
		return "", err
	}

	mut := ledger.NewMutation(caller)
	mut.Kind = "transfer_execute"
	e.addExecuteStep(mut, t)

	sub, err := e.mutate.Submit(ctx, mut)
	if err != nil {
		return "", err
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		return "", err
	}

	e.publish(ctx, &domain.CustodyEvent{
		Kind:      domain.CustodyEventTransferExecuted,
		ObjectID:  t.ObjectID,
		WalletID:  t.WalletID,
		TokenType: t.TokenType.String(),
		Amount:    t.Amount,
		Actor:     domain.NormalizeAddress(caller),
		Digest:    result.Digest,
	})

	return result.Digest, nil
}

// Cancel voids a pending transfer. Only the creator may cancel; no funds
// move.
func (e *Engine) Cancel(ctx context.Context, caller domain.Address, transferID domain.ObjectID) (string, error) {
	t, err := e.Get(ctx, transferID)
	if err != nil {
		return "", err
	}

	if t.CreatedBy != domain.NormalizeAddress(caller) {
		return "", fmt.Errorf("%w: only the creator may cancel transfer %s", domain.ErrUnauthorized, transferID)
	}
	if t.Executed {
		return "", fmt.Errorf("%w: %s", domain.ErrAlreadyExecuted, transferID)
	}
	if t.Cancelled {
		return "", fmt.Errorf("%w: %s", domain.ErrAlreadyCancelled, transferID)
	}

	mut := ledger.NewMutation(caller)
	mut.Kind = "transfer_cancel"
	mut.Invoke(
		fmt.Sprintf("%s::scheduled_transfer::cancel", e.packageID),
		[]string{t.TokenType.String()},
		ledger.ObjectArg(transferID),
	)

	sub, err := e.mutate.Submit(ctx, mut)
	if err != nil {
		return "", err
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		return "", err
	}

	e.publish(ctx, &domain.CustodyEvent{
		Kind:      domain.CustodyEventTransferCancelled,
		ObjectID:  t.ObjectID,
		WalletID:  t.WalletID,
		TokenType: t.TokenType.String(),
		Amount:    t.Amount,
		Actor:     domain.NormalizeAddress(caller),
		Digest:    result.Digest,
	})

	return result.Digest, nil
}

// ListForObject scans transfer creation events for one object and fetches
// the current state of each transfer concurrently. The event index may
// lag recent commits; callers needing read-after-write should poll.
func (e *Engine) ListForObject(ctx context.Context, objectID domain.ObjectID) ([]domain.ScheduledTransfer, error) {
	eventType := fmt.Sprintf("%s::scheduled_transfer::TransferCreated", e.packageID)
	events, err := e.query.QueryEvents(ctx, eventType)
	if err != nil {
		return nil, fmt.Errorf("scan transfer events: %w", err)
	}

	var ids []domain.ObjectID
	seen := make(map[domain.ObjectID]bool)
	for i := range events {
		if events[i].StringAttr("object_id") != string(objectID) {
			continue
		}
		id := domain.ObjectID(events[i].StringAttr("transfer_id"))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	tasks := make([]pond.Result[*domain.ScheduledTransfer], 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, e.pool.SubmitErr(func() (*domain.ScheduledTransfer, error) {
			return e.Get(ctx, id)
		}))
	}

	transfers := make([]domain.ScheduledTransfer, 0, len(tasks))
	for _, task := range tasks {
		t, err := task.Wait()
		if err != nil {
			// Event references a record the node cannot serve yet
			if errors.Is(err, domain.ErrTransferNotFound) {
				continue
			}
			return nil, err
		}
		transfers = append(transfers, *t)
	}

	sort.Slice(transfers, func(i, j int) bool {
		return transfers[i].CreatedAt.Before(transfers[j].CreatedAt)
	})
	return transfers, nil
}

// ExecuteDue settles every eligible transfer of the given set in one
// composed mutation. Ineligible transfers are skipped with a reason
// instead of failing the batch. No mutation is broadcast when nothing is
// eligible.
func (e *Engine) ExecuteDue(ctx context.Context, caller domain.Address, transferIDs []domain.ObjectID) (*BatchResult, error) {
	result := &BatchResult{Skipped: make(map[domain.ObjectID]string)}

	mut := ledger.NewMutation(caller)
	mut.Kind = "transfer_execute_batch"

	var eligible []*domain.ScheduledTransfer
	for _, id := range transferIDs {
		t, err := e.Get(ctx, id)
		if err != nil {
			result.Skipped[id] = err.Error()
			continue
		}
		if err := e.checkExecutable(ctx, t); err != nil {
			result.Skipped[id] = err.Error()
			continue
		}
		e.addExecuteStep(mut, t)
		eligible = append(eligible, t)
	}

	if len(eligible) == 0 {
		return result, nil
	}

	sub, err := e.mutate.Submit(ctx, mut)
	if err != nil {
		return nil, err
	}
	committed, err := sub.Wait(ctx)
	if err != nil {
		return nil, err
	}

	result.Digest = committed.Digest
	for _, t := range eligible {
		result.Executed = append(result.Executed, t.ID)
		e.publish(ctx, &domain.CustodyEvent{
			Kind:      domain.CustodyEventTransferExecuted,
			ObjectID:  t.ObjectID,
			WalletID:  t.WalletID,
			TokenType: t.TokenType.String(),
			Amount:    t.Amount,
			Actor:     domain.NormalizeAddress(caller),
			Digest:    committed.Digest,
		})
	}
	return result, nil
}

// checkExecutable runs the full precheck chain for execution: state,
// due-ness against the ledger clock, then wallet balance
func (e *Engine) checkExecutable(ctx context.Context, t *domain.ScheduledTransfer) error {
	if t.Executed {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExecuted, t.ID)
	}
	if t.Cancelled {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyCancelled, t.ID)
	}

	ledgerNow, err := e.clock.Now(ctx)
	if err != nil {
		return fmt.Errorf("read ledger time: %w", err)
	}
	if !t.Due(ledgerNow) {
		return fmt.Errorf("%w: %s due at %s, ledger now %s",
			domain.ErrNotYetDue, t.ID, t.ExecuteAt.UTC().Format(time.RFC3339), ledgerNow.UTC().Format(time.RFC3339))
	}

	available, err := e.balances.BalanceOf(ctx, t.WalletID, t.TokenType)
	if err != nil {
		return err
	}
	if available < t.Amount {
		return &domain.InsufficientBalanceError{
			TokenType: t.TokenType,
			Required:  t.Amount,
			Available: available,
		}
	}
	return nil
}

func (e *Engine) addExecuteStep(mut *ledger.Mutation, t *domain.ScheduledTransfer) {
	mut.Invoke(
		fmt.Sprintf("%s::scheduled_transfer::execute", e.packageID),
		[]string{t.TokenType.String()},
		ledger.ObjectArg(t.ID),
		ledger.ObjectArg(t.WalletID),
	)
}

func (e *Engine) publish(ctx context.Context, event *domain.CustodyEvent) {
	if e.events == nil {
		return
	}

	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if err := e.events.PublishCustodyEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish custody event",
			zap.String("kind", string(event.Kind)), zap.Error(err))
	}
}
