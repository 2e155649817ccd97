package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/objectledger/custodian/internal/adapter"
	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/emitter"
	"github.com/objectledger/custodian/internal/ledger"
	"github.com/objectledger/custodian/internal/logger"
	"github.com/objectledger/custodian/internal/poller"
)

// Step identifies one stage of the purchase flow
type Step string

const (
	StepReadListing    Step = "read_listing"
	StepResolvePayment Step = "resolve_payment"
	StepBroadcast      Step = "broadcast"
	StepVerify         Step = "verify"
)

// StepError pins a purchase failure to the step that produced it. Failures
// in read_listing and resolve_payment mean nothing was broadcast.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("purchase %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Confirmation modes. Optimistic returns as soon as the broadcast commits;
// confirmed additionally polls until the ownership change is visible.
const (
	ModeOptimistic = "optimistic"
	ModeConfirmed  = "confirmed"
)

// Config holds purchase orchestration configuration
type Config struct {
	PackageID        string
	MarketplaceID    domain.ObjectID
	ConfirmationMode string
	Poll             poller.Config
}

// Outcome reports a committed purchase. Verified is only meaningful in
// confirmed mode; Stale marks a commit whose ownership change was not yet
// visible when the verification budget ran out. The commit itself is
// authoritative either way.
type Outcome struct {
	Digest    string          `json:"digest"`
	ObjectID  domain.ObjectID `json:"object_id"`
	Price     uint64          `json:"price"`
	TokenType string          `json:"token_type"`
	Verified  bool            `json:"verified"`
	Stale     bool            `json:"stale"`
}

// Orchestrator drives the five-step purchase flow against the ledger
type Orchestrator struct {
	query  ledger.QueryClient
	mutate ledger.MutationClient
	clock  adapter.Clock
	events emitter.Publisher
	cfg    Config
}

// NewOrchestrator builds a purchase orchestrator
func NewOrchestrator(cfg Config, query ledger.QueryClient, mutate ledger.MutationClient, clock adapter.Clock, events emitter.Publisher) *Orchestrator {
	if cfg.ConfirmationMode == "" {
		cfg.ConfirmationMode = ModeOptimistic
	}
	if cfg.Poll.Attempts <= 0 {
		cfg.Poll = poller.DefaultConfig
	}

	return &Orchestrator{
		query:  query,
		mutate: mutate,
		clock:  clock,
		events: events,
		cfg:    cfg,
	}
}

// Purchase buys a listed object on behalf of the buyer. The buyer pins
// the token type they expect to pay in; a listing re-priced into another
// token between quote and purchase is rejected, never silently charged.
// The purchase price is carved off the buyer's funds exactly; settlement
// and ownership transfer commit in one mutation.
func (o *Orchestrator) Purchase(ctx context.Context, buyer domain.Address, objectID domain.ObjectID, tokenType domain.TokenType) (*Outcome, error) {
	buyer = domain.NormalizeAddress(buyer)

	// Step 1: read the current listing state
	listing, err := o.readListing(ctx, buyer, objectID, tokenType)
	if err != nil {
		return nil, &StepError{Step: StepReadListing, Err: err}
	}

	// Step 2: resolve the payment source before building anything
	mut := ledger.NewMutation(buyer)
	mut.Kind = "purchase"
	splitIdx, err := o.resolvePayment(ctx, mut, buyer, listing.TokenType, listing.Price)
	if err != nil {
		return nil, &StepError{Step: StepResolvePayment, Err: err}
	}

	// Step 3: complete the composed mutation
	mut.Invoke(
		fmt.Sprintf("%s::trading_object::purchase", o.cfg.PackageID),
		[]string{listing.TokenType.String()},
		ledger.ObjectArg(o.cfg.MarketplaceID),
		ledger.ObjectArg(objectID),
		ledger.ResultArg(splitIdx),
	)

	// Step 4: broadcast; a committed broadcast is the authoritative outcome
	sub, err := o.mutate.Submit(ctx, mut)
	if err != nil {
		return nil, &StepError{Step: StepBroadcast, Err: err}
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		return nil, &StepError{Step: StepBroadcast, Err: err}
	}

	outcome := &Outcome{
		Digest:    result.Digest,
		ObjectID:  objectID,
		Price:     listing.Price,
		TokenType: listing.TokenType.String(),
	}

	o.publish(ctx, buyer, listing, result.Digest)

	// Step 5: best-effort verification, policy controlled. Never fails the
	// purchase.
	if o.cfg.ConfirmationMode == ModeConfirmed {
		o.verify(ctx, buyer, objectID, outcome)
	}

	return outcome, nil
}

func (o *Orchestrator) readListing(ctx context.Context, buyer domain.Address, objectID domain.ObjectID, tokenType domain.TokenType) (*domain.TradingObject, error) {
	obj, err := o.query.GetObject(ctx, objectID)
	if err != nil {
		return nil, err
	}
	listing, err := ledger.TradingObjectFrom(obj)
	if err != nil {
		return nil, err
	}

	if !listing.IsForSale {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotForSale, objectID)
	}
	if listing.Owner == buyer {
		return nil, fmt.Errorf("%w: %s", domain.ErrSelfPurchase, objectID)
	}
	if listing.TokenType.IsZero() {
		return nil, fmt.Errorf("%w: listing %s has no token type", domain.ErrTokenTypeMismatch, objectID)
	}
	if listing.TokenType != tokenType {
		return nil, fmt.Errorf("%w: listing %s wants %s, buyer offered %s",
			domain.ErrTokenTypeMismatch, objectID, listing.TokenType, tokenType)
	}
	return listing, nil
}

// resolvePayment appends the exact-amount payment split and returns its
// step index. The native token draws from the gas allowance; other tokens
// need a buyer fund object covering the price.
func (o *Orchestrator) resolvePayment(ctx context.Context, mut *ledger.Mutation, buyer domain.Address, tokenType domain.TokenType, price uint64) (int, error) {
	if tokenType.IsNative() {
		return mut.SplitGas(price), nil
	}

	funds, err := o.query.GetFungibleObjects(ctx, buyer, tokenType)
	if err != nil {
		return 0, fmt.Errorf("walk buyer funds: %w", err)
	}

	var best *domain.FundObject
	var total uint64
	for i := range funds {
		total += funds[i].Balance
		if funds[i].Balance < price {
			continue
		}
		if best == nil || funds[i].Balance < best.Balance {
			best = &funds[i]
		}
	}
	if best == nil {
		return 0, &domain.InsufficientBalanceError{
			TokenType: tokenType,
			Required:  price,
			Available: total,
		}
	}
	return mut.SplitFunds(best.ID, price), nil
}

// verify polls until the object shows the buyer as owner or the listing
// is gone. Exhaustion annotates the outcome as stale.
func (o *Orchestrator) verify(ctx context.Context, buyer domain.Address, objectID domain.ObjectID, outcome *Outcome) {
	result, err := poller.Poll(ctx, o.clock, o.cfg.Poll,
		func(ctx context.Context) (*domain.TradingObject, error) {
			obj, err := o.query.GetObject(ctx, objectID)
			if err != nil {
				return nil, err
			}
			return ledger.TradingObjectFrom(obj)
		},
		func(obj *domain.TradingObject) bool {
			return obj.Owner == buyer || !obj.IsForSale
		},
	)
	if err != nil {
		logger.WarnCtx(ctx, "purchase verification probe failed",
			zap.String("object_id", string(objectID)),
			zap.String("digest", outcome.Digest),
			zap.Error(err))
		outcome.Stale = true
		return
	}

	outcome.Verified = !result.Stale
	outcome.Stale = result.Stale
	if result.Stale {
		logger.WarnCtx(ctx, "purchase committed but ownership change not yet visible",
			zap.String("object_id", string(objectID)),
			zap.String("digest", outcome.Digest),
			zap.Int("attempts", result.Attempts))
	}
}

func (o *Orchestrator) publish(ctx context.Context, buyer domain.Address, listing *domain.TradingObject, digest string) {
	if o.events == nil {
		return
	}

	event := &domain.CustodyEvent{
		ID:        uuid.NewString(),
		Kind:      domain.CustodyEventPurchased,
		ObjectID:  listing.ID,
		WalletID:  listing.WalletID,
		TokenType: listing.TokenType.String(),
		Amount:    listing.Price,
		Actor:     buyer,
		Digest:    digest,
		Timestamp: time.Now().UTC(),
	}
	if err := o.events.PublishCustodyEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish custody event",
			zap.String("kind", string(event.Kind)), zap.Error(err))
	}
}
