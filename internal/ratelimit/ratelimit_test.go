package ratelimit_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/objectledger/custodian/internal/logger"
	"github.com/objectledger/custodian/internal/mocks"
	"github.com/objectledger/custodian/internal/ratelimit"
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

func TestWrapHTTPClient_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockHTTPClient(ctrl)
	wrapped := ratelimit.WrapHTTPClient(inner, ratelimit.Config{})

	// Zero rate returns the client untouched
	assert.Equal(t, inner, wrapped)
}

func TestLimitedClient_PassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockHTTPClient(ctrl)
	wrapped := ratelimit.WrapHTTPClient(inner, ratelimit.Config{RequestsPerSecond: 100, Burst: 10})

	inner.EXPECT().
		PostJSON(gomock.Any(), "https://rpc.example.test", []byte(`{}`)).
		Return([]byte(`{"result":null}`), nil)
	inner.EXPECT().
		Get(gomock.Any(), "https://rpc.example.test/health", gomock.Any()).
		Return(nil)

	body, err := wrapped.PostJSON(context.Background(), "https://rpc.example.test", []byte(`{}`))
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"result":null}`), body)

	var out struct{}
	assert.NoError(t, wrapped.Get(context.Background(), "https://rpc.example.test/health", &out))
}

func TestLimitedClient_ThrottlesBurst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockHTTPClient(ctrl)
	wrapped := ratelimit.WrapHTTPClient(inner, ratelimit.Config{RequestsPerSecond: 20, Burst: 1})

	inner.EXPECT().
		PostJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(`{}`), nil).
		Times(3)

	start := time.Now()
	for range 3 {
		_, err := wrapped.PostJSON(context.Background(), "https://rpc.example.test", []byte(`{}`))
		assert.NoError(t, err)
	}

	// Burst of 1 at 20 rps means the second and third requests each wait
	// roughly 50ms for a token
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestLimitedClient_ContextCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockHTTPClient(ctrl)
	wrapped := ratelimit.WrapHTTPClient(inner, ratelimit.Config{RequestsPerSecond: 0.001, Burst: 1})

	// Drain the single token
	inner.EXPECT().PostJSON(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte(`{}`), nil)
	_, err := wrapped.PostJSON(context.Background(), "https://rpc.example.test", []byte(`{}`))
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = wrapped.PostJSON(ctx, "https://rpc.example.test", []byte(`{}`))
	assert.ErrorContains(t, err, "rate limiter")
}
