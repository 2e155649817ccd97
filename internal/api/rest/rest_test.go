package rest_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/objectledger/custodian/internal/api/middleware"
	"github.com/objectledger/custodian/internal/api/rest"
	"github.com/objectledger/custodian/internal/logger"
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

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

func setupRouter(t *testing.T) (*gin.Engine, *mocks.MockAPIHandler, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	handler := mocks.NewMockAPIHandler(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, handler, middleware.AuthConfig{APIKeys: []string{"test-key"}})
	return router, handler, ctrl
}

func ok(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestRoutes_PublicReads(t *testing.T) {
	router, handler, ctrl := setupRouter(t)
	defer ctrl.Finish()

	handler.EXPECT().HealthCheck(gomock.Any()).Do(ok)
	handler.EXPECT().GetWallet(gomock.Any()).Do(ok)
	handler.EXPECT().GetBalances(gomock.Any()).Do(ok)
	handler.EXPECT().GetTransfer(gomock.Any()).Do(ok)
	handler.EXPECT().GetObject(gomock.Any()).Do(ok)
	handler.EXPECT().ListObjectTransfers(gomock.Any()).Do(ok)
	handler.EXPECT().GetMarketplaceInfo(gomock.Any()).Do(ok)
	handler.EXPECT().GetMarketplaceStats(gomock.Any()).Do(ok)
	handler.EXPECT().GetSupportedTokens(gomock.Any()).Do(ok)
	handler.EXPECT().GetSubmission(gomock.Any()).Do(ok)

	// Reads require no credentials
	for _, path := range []string{
		"/health",
		"/api/v1/wallets/0x1",
		"/api/v1/wallets/0x1/balances",
		"/api/v1/transfers/0x2",
		"/api/v1/objects/0x3",
		"/api/v1/objects/0x3/transfers",
		"/api/v1/marketplace",
		"/api/v1/marketplace/stats",
		"/api/v1/marketplace/tokens",
		"/api/v1/submissions/01ARZ",
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}
}

func TestRoutes_MutationsRequireAuth(t *testing.T) {
	router, _, ctrl := setupRouter(t)
	defer ctrl.Finish()

	// No handler expectations: unauthenticated mutations never reach one
	for _, path := range []string{
		"/api/v1/wallets",
		"/api/v1/wallets/0x1/deposits",
		"/api/v1/wallets/0x1/withdrawals",
		"/api/v1/funds/merge",
		"/api/v1/transfers",
		"/api/v1/transfers/execute-due",
		"/api/v1/transfers/0x2/execute",
		"/api/v1/transfers/0x2/cancel",
		"/api/v1/objects/0x3/list",
		"/api/v1/objects/0x3/delist",
		"/api/v1/purchases",
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "POST %s", path)
	}
}

func TestRoutes_AuthorizedMutation(t *testing.T) {
	router, handler, ctrl := setupRouter(t)
	defer ctrl.Finish()

	handler.EXPECT().Purchase(gomock.Any()).Do(ok)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/purchases", nil)
	req.Header.Set("Authorization", "ApiKey test-key")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetSubmission_NoJournalConfigured(t *testing.T) {
	handler := rest.NewHandler(nil, nil, nil, nil, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/submissions/01ARZ", nil)
	c.Params = gin.Params{{Key: "id", Value: "01ARZ"}}

	handler.GetSubmission(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"not_found"`)
}

func TestRoutes_MetricsExposed(t *testing.T) {
	router, _, ctrl := setupRouter(t)
	defer ctrl.Finish()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
