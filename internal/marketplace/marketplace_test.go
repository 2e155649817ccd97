package marketplace_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/ledger"
	"github.com/objectledger/custodian/internal/logger"
	"github.com/objectledger/custodian/internal/marketplace"
	"github.com/objectledger/custodian/internal/mocks"
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

const (
	testPackageID     = "0xpkg"
	testMarketplaceID = domain.ObjectID("0xmarket")
	testCaller        = domain.Address("0xaa")
	testObjectID      = domain.ObjectID("0xobj")
)

// testMarketMocks contains all the mocks needed for testing the marketplace service
type testMarketMocks struct {
	ctrl    *gomock.Controller
	query   *mocks.MockQueryClient
	mutate  *mocks.MockMutationClient
	service *marketplace.Service
}

func setupTest(t *testing.T) *testMarketMocks {
	ctrl := gomock.NewController(t)

	tm := &testMarketMocks{
		ctrl:   ctrl,
		query:  mocks.NewMockQueryClient(ctrl),
		mutate: mocks.NewMockMutationClient(ctrl),
	}
	tm.service = marketplace.NewService(tm.query, tm.mutate, testPackageID, testMarketplaceID)
	return tm
}

func tearDownTest(tm *testMarketMocks) {
	tm.ctrl.Finish()
}

func (tm *testMarketMocks) supportedTokens(names ...string) {
	fields := make([]ledger.DynamicField, 0, len(names))
	for i, name := range names {
		fields = append(fields, ledger.DynamicField{ObjectID: string(rune('a' + i)), Name: name})
	}
	tm.query.EXPECT().GetDynamicFields(gomock.Any(), testMarketplaceID).Return(fields, nil)
}

func listedObjectData(owner string, forSale bool) *ledger.ObjectData {
	fields := map[string]json.RawMessage{
		"price":       json.RawMessage(`"1000"`),
		"is_for_sale": json.RawMessage(`false`),
	}
	if forSale {
		fields["is_for_sale"] = json.RawMessage(`true`)
		fields["token_type"] = json.RawMessage(`"0x2::native::NAT"`)
	}
	return &ledger.ObjectData{
		ID:     string(testObjectID),
		Type:   "0xpkg::trading_object::TradingObject",
		Owner:  owner,
		Fields: fields,
	}
}

func TestSupportedTokenTypes_SkipsMalformedEntries(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.supportedTokens("0x2::native::NAT", "garbage entry", "0xc0ffee::usdc::USDC")

	tokens, err := tm.service.SupportedTokenTypes(context.Background())
	assert.NoError(t, err)
	assert.Len(t, tokens, 2)
	assert.True(t, tokens[0].IsNative())
}

func TestIsTokenSupported(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.supportedTokens("0x2::native::NAT")
	supported, err := tm.service.IsTokenSupported(ctx, domain.NativeTokenType)
	assert.NoError(t, err)
	assert.True(t, supported)

	tm.supportedTokens("0x2::native::NAT")
	usdc, err := domain.ParseTokenType("0xc0ffee::usdc::USDC")
	assert.NoError(t, err)
	supported, err = tm.service.IsTokenSupported(ctx, usdc)
	assert.NoError(t, err)
	assert.False(t, supported)
}

func TestGetInfo(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.query.EXPECT().GetObject(ctx, testMarketplaceID).Return(&ledger.ObjectData{
		ID:   string(testMarketplaceID),
		Type: "0xpkg::trading_object::Marketplace",
		Fields: map[string]json.RawMessage{
			"admin":    json.RawMessage(`"0xAD"`),
			"treasury": json.RawMessage(`"0xBE"`),
		},
	}, nil)
	tm.supportedTokens("0x2::native::NAT", "0xc0ffee::usdc::USDC")

	info, err := tm.service.GetInfo(ctx)
	assert.NoError(t, err)
	assert.Equal(t, testMarketplaceID, info.ID)
	assert.Equal(t, domain.Address("0xad"), info.Admin)
	assert.Equal(t, domain.Address("0xbe"), info.Treasury)
	assert.Equal(t, 2, info.TokenCount)
}

func TestGetStats(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.query.EXPECT().GetObject(ctx, testMarketplaceID).Return(&ledger.ObjectData{
		ID: string(testMarketplaceID),
		Fields: map[string]json.RawMessage{
			"total_listings":  json.RawMessage(`"42"`),
			"active_listings": json.RawMessage(`7`),
		},
	}, nil)

	stats, err := tm.service.GetStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), stats.TotalListings)
	assert.Equal(t, uint64(7), stats.ActiveListings)
}

func TestListObject(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.query.EXPECT().GetObject(ctx, testObjectID).Return(listedObjectData("0xaa", false), nil)
	tm.supportedTokens("0x2::native::NAT")

	var captured *ledger.Mutation
	tm.mutate.EXPECT().Submit(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, m *ledger.Mutation) (*ledger.Submission, error) {
			captured = m
			return ledger.ResolvedSubmission(&ledger.Result{Digest: "0xd1"}), nil
		})

	digest, err := tm.service.ListObject(ctx, testCaller, testObjectID, 2500, domain.NativeTokenType)
	assert.NoError(t, err)
	assert.Equal(t, "0xd1", digest)

	assert.Equal(t, "list", captured.Kind)
	step := captured.Steps[0]
	assert.Equal(t, "0xpkg::trading_object::list", step.Target)
	assert.Equal(t, uint64(2500), step.Args[2].Pure)
}

func TestListObject_Rejections(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	_, err := tm.service.ListObject(ctx, testCaller, testObjectID, 0, domain.NativeTokenType)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	tm.query.EXPECT().GetObject(ctx, testObjectID).Return(listedObjectData("0xbb", false), nil)
	_, err = tm.service.ListObject(ctx, testCaller, testObjectID, 1000, domain.NativeTokenType)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	tm.query.EXPECT().GetObject(ctx, testObjectID).Return(listedObjectData("0xaa", false), nil)
	tm.supportedTokens("0xc0ffee::usdc::USDC")
	_, err = tm.service.ListObject(ctx, testCaller, testObjectID, 1000, domain.NativeTokenType)
	assert.ErrorIs(t, err, domain.ErrUnsupportedToken)
}

func TestDelistObject(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.query.EXPECT().GetObject(ctx, testObjectID).Return(listedObjectData("0xaa", true), nil)

	var captured *ledger.Mutation
	tm.mutate.EXPECT().Submit(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, m *ledger.Mutation) (*ledger.Submission, error) {
			captured = m
			return ledger.ResolvedSubmission(&ledger.Result{Digest: "0xd2"}), nil
		})

	digest, err := tm.service.DelistObject(ctx, testCaller, testObjectID)
	assert.NoError(t, err)
	assert.Equal(t, "0xd2", digest)
	assert.Equal(t, "delist", captured.Kind)
}

func TestDelistObject_Rejections(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.query.EXPECT().GetObject(ctx, testObjectID).Return(listedObjectData("0xbb", true), nil)
	_, err := tm.service.DelistObject(ctx, testCaller, testObjectID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	tm.query.EXPECT().GetObject(ctx, testObjectID).Return(listedObjectData("0xaa", false), nil)
	_, err = tm.service.DelistObject(ctx, testCaller, testObjectID)
	assert.ErrorIs(t, err, domain.ErrNotForSale)
}
