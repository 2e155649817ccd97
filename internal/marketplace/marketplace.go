package marketplace

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/ledger"
	"github.com/objectledger/custodian/internal/logger"
)

//go:generate mockgen -source=marketplace.go -destination=../mocks/marketplace.go -package=mocks -mock_names=TokenChecker=MockTokenChecker

// TokenChecker reports whether the marketplace accepts a token type.
// The wallet manager uses it as a deposit precheck.
type TokenChecker interface {
	IsTokenSupported(ctx context.Context, tokenType domain.TokenType) (bool, error)
}

// Info describes the shared marketplace object
type Info struct {
	ID         domain.ObjectID `json:"id"`
	Admin      domain.Address  `json:"admin"`
	Treasury   domain.Address  `json:"treasury"`
	TokenCount int             `json:"token_count"`
}

// Stats summarizes listing activity
type Stats struct {
	TotalListings  uint64 `json:"total_listings"`
	ActiveListings uint64 `json:"active_listings"`
}

// Service reads the shared marketplace object and manages listings
type Service struct {
	query  ledger.QueryClient
	mutate ledger.MutationClient

	packageID     string
	marketplaceID domain.ObjectID
}

// NewService builds a marketplace service for one deployed package
func NewService(query ledger.QueryClient, mutate ledger.MutationClient, packageID string, marketplaceID domain.ObjectID) *Service {
	return &Service{
		query:         query,
		mutate:        mutate,
		packageID:     packageID,
		marketplaceID: marketplaceID,
	}
}

// SupportedTokenTypes enumerates the marketplace's supported-token table.
// Entries that fail to parse are skipped with a warning rather than
// failing the whole scan.
func (s *Service) SupportedTokenTypes(ctx context.Context) ([]domain.TokenType, error) {
	fields, err := s.query.GetDynamicFields(ctx, s.marketplaceID)
	if err != nil {
		return nil, fmt.Errorf("scan supported tokens: %w", err)
	}

	tokens := make([]domain.TokenType, 0, len(fields))
	for _, field := range fields {
		tokenType, err := domain.ParseTokenType(field.Name)
		if err != nil {
			logger.WarnCtx(ctx, "skipping malformed supported-token entry",
				zap.String("name", field.Name), zap.Error(err))
			continue
		}
		tokens = append(tokens, tokenType)
	}
	return tokens, nil
}

// IsTokenSupported reports whether the marketplace accepts the token type
func (s *Service) IsTokenSupported(ctx context.Context, tokenType domain.TokenType) (bool, error) {
	tokens, err := s.SupportedTokenTypes(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range tokens {
		if t == tokenType {
			return true, nil
		}
	}
	return false, nil
}

// GetInfo reads the marketplace's admin, treasury and token table size
func (s *Service) GetInfo(ctx context.Context) (*Info, error) {
	obj, err := s.query.GetObject(ctx, s.marketplaceID)
	if err != nil {
		return nil, err
	}

	fields, err := s.query.GetDynamicFields(ctx, s.marketplaceID)
	if err != nil {
		return nil, err
	}

	return &Info{
		ID:         s.marketplaceID,
		Admin:      domain.NormalizeAddress(domain.Address(obj.StringField("admin"))),
		Treasury:   domain.NormalizeAddress(domain.Address(obj.StringField("treasury"))),
		TokenCount: len(fields),
	}, nil
}

// GetStats reads the marketplace listing counters
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	obj, err := s.query.GetObject(ctx, s.marketplaceID)
	if err != nil {
		return nil, err
	}

	total, err := obj.Uint64Field("total_listings")
	if err != nil {
		return nil, fmt.Errorf("marketplace: bad total_listings field: %w", err)
	}
	active, err := obj.Uint64Field("active_listings")
	if err != nil {
		return nil, fmt.Errorf("marketplace: bad active_listings field: %w", err)
	}

	return &Stats{TotalListings: total, ActiveListings: active}, nil
}

// GetTradingObject reads one tradable object
func (s *Service) GetTradingObject(ctx context.Context, objectID domain.ObjectID) (*domain.TradingObject, error) {
	obj, err := s.query.GetObject(ctx, objectID)
	if err != nil {
		return nil, err
	}
	return ledger.TradingObjectFrom(obj)
}

// ListObject puts a caller-owned object up for sale at the given price
func (s *Service) ListObject(ctx context.Context, caller domain.Address, objectID domain.ObjectID, price uint64, tokenType domain.TokenType) (string, error) {
	if price == 0 {
		return "", domain.ErrInvalidAmount
	}

	obj, err := s.GetTradingObject(ctx, objectID)
	if err != nil {
		return "", err
	}
	if obj.Owner != domain.NormalizeAddress(caller) {
		return "", fmt.Errorf("%w: object %s", domain.ErrNotOwner, objectID)
	}

	supported, err := s.IsTokenSupported(ctx, tokenType)
	if err != nil {
		return "", err
	}
	if !supported {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedToken, tokenType)
	}

	m := ledger.NewMutation(caller)
	m.Kind = "list"
	m.Invoke(
		fmt.Sprintf("%s::trading_object::list", s.packageID),
		[]string{tokenType.String()},
		ledger.ObjectArg(s.marketplaceID),
		ledger.ObjectArg(objectID),
		ledger.PureArg(price),
	)

	sub, err := s.mutate.Submit(ctx, m)
	if err != nil {
		return "", err
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		return "", err
	}
	return result.Digest, nil
}

// DelistObject takes a caller-owned object off the market
func (s *Service) DelistObject(ctx context.Context, caller domain.Address, objectID domain.ObjectID) (string, error) {
	obj, err := s.GetTradingObject(ctx, objectID)
	if err != nil {
		return "", err
	}
	if obj.Owner != domain.NormalizeAddress(caller) {
		return "", fmt.Errorf("%w: object %s", domain.ErrNotOwner, objectID)
	}
	if !obj.IsForSale {
		return "", fmt.Errorf("%w: object %s", domain.ErrNotForSale, objectID)
	}

	m := ledger.NewMutation(caller)
	m.Kind = "delist"
	m.Invoke(
		fmt.Sprintf("%s::trading_object::delist", s.packageID),
		[]string{obj.TokenType.String()},
		ledger.ObjectArg(s.marketplaceID),
		ledger.ObjectArg(objectID),
	)

	sub, err := s.mutate.Submit(ctx, m)
	if err != nil {
		return "", err
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		return "", err
	}
	return result.Digest, nil
}
