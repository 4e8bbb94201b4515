package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"corp-social-backend/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signHS256(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifyHS256(t *testing.T) {
	v := auth.NewVerifier(secret, nil)

	t.Run("Valid token", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{
			"sub":   "8f14e45f-ceea-467a-9af6-1a4a2b6c1e01",
			"email": "anna@corp.io",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		claims, err := v.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "8f14e45f-ceea-467a-9af6-1a4a2b6c1e01", claims.Subject)
		assert.Equal(t, "anna@corp.io", claims.Email)
	})

	t.Run("Expired token", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix()})
		_, err := v.Verify(token)
		assert.Error(t, err)
	})

	t.Run("Missing subject", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{"email": "a@corp.io"})
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, auth.ErrMissingClaim)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).SignedString([]byte("other"))
		require.NoError(t, err)
		_, err = v.Verify(token)
		assert.Error(t, err)
	})
}

// jwksServer publishes keys and counts how often the set was fetched.
func jwksServer(t *testing.T, keys ...map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	hits := new(atomic.Int32)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"keys": keys})
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

func rsaJWK(kid string, pub *rsa.PublicKey) map[string]string {
	return map[string]string{
		"kid": kid,
		"kty": "RSA",
		"use": "sig",
		"alg": "RS256",
		"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

func signRS256(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	raw, err := token.SignedString(key)
	require.NoError(t, err)
	return raw
}

func TestVerifyRS256WithJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv, hits := jwksServer(t,
		map[string]string{"kid": "ec1", "kty": "EC", "crv": "P-256"},
		map[string]string{"kid": "enc1", "kty": "RSA", "use": "enc", "n": "AQAB", "e": "AQAB"},
		rsaJWK("k1", &key.PublicKey),
	)
	v := auth.NewVerifier("", auth.NewProvider(srv.URL))

	claims, err := v.Verify(signRS256(t, key, "k1", jwt.MapClaims{"sub": "u-rsa"}))
	require.NoError(t, err)
	assert.Equal(t, "u-rsa", claims.Subject)

	// Known keys are served from memory
	_, err = v.Verify(signRS256(t, key, "k1", jwt.MapClaims{"sub": "u-rsa"}))
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	// HS256 is refused when no secret is configured
	_, err = v.Verify(signHS256(t, jwt.MapClaims{"sub": "u1"}))
	assert.ErrorIs(t, err, auth.ErrNoKeys)
}

func TestProviderKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv, hits := jwksServer(t,
		map[string]string{"kid": "enc1", "kty": "RSA", "use": "enc", "n": "AQAB", "e": "AQAB"},
		rsaJWK("k1", &key.PublicKey),
	)
	p := auth.NewProvider(srv.URL)
	ctx := context.Background()

	pub, err := p.Key(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, key.PublicKey.Equal(pub))

	_, err = p.Key(ctx, "enc1")
	assert.ErrorIs(t, err, auth.ErrUnknownKey)

	// Unknown ids do not refetch within the refresh interval
	_, err = p.Key(ctx, "rotated")
	assert.ErrorIs(t, err, auth.ErrUnknownKey)
	assert.Equal(t, int32(1), hits.Load())
}

func TestProviderUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := auth.NewProvider(srv.URL).Key(context.Background(), "k1")
	assert.ErrorContains(t, err, "unexpected status 502")
}
