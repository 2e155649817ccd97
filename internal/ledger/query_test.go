package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/objectledger/custodian/internal/adapter"
	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/ledger"
	"github.com/objectledger/custodian/internal/mocks"
)

// testQueryMocks contains all the mocks needed for testing the query client
type testQueryMocks struct {
	ctrl  *gomock.Controller
	http  *mocks.MockHTTPClient
	query ledger.QueryClient
}

func setupQueryTest(t *testing.T) *testQueryMocks {
	ctrl := gomock.NewController(t)
	http := mocks.NewMockHTTPClient(ctrl)

	return &testQueryMocks{
		ctrl:  ctrl,
		http:  http,
		query: ledger.NewQueryClient("http://node.test", http, adapter.NewJSON()),
	}
}

func tearDownQueryTest(tm *testQueryMocks) {
	tm.ctrl.Finish()
}

func (tm *testQueryMocks) respond(body string) {
	tm.http.EXPECT().
		PostJSON(gomock.Any(), "http://node.test", gomock.Any()).
		Return([]byte(body), nil)
}

func TestQueryClient_GetObject(t *testing.T) {
	tm := setupQueryTest(t)
	defer tearDownQueryTest(tm)

	tm.respond(`{"result":{"id":"0xobj","type":"0xpkg::trading_object::TradingObject","owner":"0xab","version":3,"fields":{"price":"1000"}}}`)

	obj, err := tm.query.GetObject(context.Background(), "0xobj")
	assert.NoError(t, err)
	assert.Equal(t, "0xobj", obj.ID)
	assert.Equal(t, uint64(3), obj.Version)

	price, err := obj.Uint64Field("price")
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), price)
}

func TestQueryClient_GetObject_NotFound(t *testing.T) {
	tm := setupQueryTest(t)
	defer tearDownQueryTest(tm)

	tm.respond(`{"result":null}`)

	_, err := tm.query.GetObject(context.Background(), "0xmissing")
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)
	assert.Contains(t, err.Error(), "0xmissing")
}

func TestQueryClient_GetObject_RPCError(t *testing.T) {
	tm := setupQueryTest(t)
	defer tearDownQueryTest(tm)

	tm.respond(`{"error":{"code":-32000,"message":"node overloaded"}}`)

	_, err := tm.query.GetObject(context.Background(), "0xobj")
	assert.ErrorContains(t, err, "node overloaded")
}

func TestQueryClient_GetDynamicFields_Null(t *testing.T) {
	tm := setupQueryTest(t)
	defer tearDownQueryTest(tm)

	tm.respond(`{"result":null}`)

	fields, err := tm.query.GetDynamicFields(context.Background(), "0xwallet")
	assert.NoError(t, err)
	assert.Empty(t, fields)
}

func TestQueryClient_GetFungibleObjects(t *testing.T) {
	tm := setupQueryTest(t)
	defer tearDownQueryTest(tm)

	// Balances arrive as numbers or strings depending on node version
	tm.respond(`{"result":[{"id":"0xf1","balance":500},{"id":"0xf2","balance":"2500"}]}`)

	nat := domain.NativeTokenType
	funds, err := tm.query.GetFungibleObjects(context.Background(), "0xab", nat)
	assert.NoError(t, err)
	assert.Len(t, funds, 2)
	assert.Equal(t, uint64(500), funds[0].Balance)
	assert.Equal(t, uint64(2500), funds[1].Balance)
	assert.Equal(t, nat, funds[0].TokenType)
}

func TestQueryClient_GetCoinMetadata_Null(t *testing.T) {
	tm := setupQueryTest(t)
	defer tearDownQueryTest(tm)

	tm.respond(`{"result":null}`)

	meta, err := tm.query.GetCoinMetadata(context.Background(), domain.NativeTokenType)
	assert.NoError(t, err)
	assert.Nil(t, meta)
}

func TestQueryClient_GetLedgerTime(t *testing.T) {
	tm := setupQueryTest(t)
	defer tearDownQueryTest(tm)

	tm.respond(`{"result":1717243200000}`)

	got, err := tm.query.GetLedgerTime(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), got)
}
