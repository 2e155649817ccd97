package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/objectledger/custodian/internal/api/middleware"
	"github.com/objectledger/custodian/internal/logger"
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

// testKeyPair generates an RSA key pair and returns the signer plus the
// PEM-encoded public key
func testKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	assert.NoError(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemBytes)
}

func signedToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	assert.NoError(t, err)
	return token
}

func TestAuthenticate_APIKey(t *testing.T) {
	cfg := middleware.AuthConfig{APIKeys: []string{"secret-key"}}

	result := middleware.Authenticate("ApiKey secret-key", cfg)
	assert.True(t, result.Success)
	assert.Equal(t, "apikey", result.AuthType)

	result = middleware.Authenticate("ApiKey wrong-key", cfg)
	assert.False(t, result.Success)
}

func TestAuthenticate_JWT(t *testing.T) {
	key, publicPEM := testKeyPair(t)
	cfg := middleware.AuthConfig{JWTPublicKey: publicPEM}

	token := signedToken(t, key, jwt.RegisteredClaims{
		Subject:   "service-a",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	result := middleware.Authenticate("Bearer "+token, cfg)
	assert.True(t, result.Success)
	assert.Equal(t, "jwt", result.AuthType)
	assert.Equal(t, "service-a", result.AuthSubject)
}

func TestAuthenticate_ExpiredJWT(t *testing.T) {
	key, publicPEM := testKeyPair(t)
	cfg := middleware.AuthConfig{JWTPublicKey: publicPEM}

	token := signedToken(t, key, jwt.RegisteredClaims{
		Subject:   "service-a",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	result := middleware.Authenticate("Bearer "+token, cfg)
	assert.False(t, result.Success)
}

func TestAuthenticate_WrongKeyJWT(t *testing.T) {
	key, _ := testKeyPair(t)
	_, otherPublicPEM := testKeyPair(t)
	cfg := middleware.AuthConfig{JWTPublicKey: otherPublicPEM}

	token := signedToken(t, key, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	result := middleware.Authenticate("Bearer "+token, cfg)
	assert.False(t, result.Success)
}

func TestAuthenticate_MalformedHeaders(t *testing.T) {
	cfg := middleware.AuthConfig{APIKeys: []string{"secret-key"}}

	for _, header := range []string{"", "secret-key", "Basic dXNlcg=="} {
		result := middleware.Authenticate(header, cfg)
		assert.False(t, result.Success, "header %q should be rejected", header)
	}
}

func TestAuth_Middleware(t *testing.T) {
	cfg := middleware.AuthConfig{APIKeys: []string{"secret-key"}}

	router := gin.New()
	router.Use(middleware.Auth(cfg))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"auth_type": c.GetString(string(middleware.AUTH_TYPE_KEY))})
	})

	// Authorized request
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "ApiKey secret-key")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "apikey")

	// Missing credentials
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
