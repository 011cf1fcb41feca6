package integration

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	harnessIssuer     = "https://auth.calchub.test"
	harnessAudience   = "calchub-api"
	harnessKeyEnv     = "CALCHUB_TEST_JWT_SIGNING_KEY"
	harnessSigningKey = "integration-harness-signing-key"
)

// TestClaims holds the configurable claims for generating test tokens.
type TestClaims struct {
	SubjectID string
	ExpiresIn time.Duration
	Extra     map[string]any
}

// GenerateToken signs an HS256 token accepted by a WithAuth harness.
func (h *TestHarness) GenerateToken(tc TestClaims) string {
	h.t.Helper()

	if tc.ExpiresIn == 0 {
		tc.ExpiresIn = time.Hour
	}
	claims := jwt.MapClaims{
		"sub": tc.SubjectID,
		"iss": harnessIssuer,
		"aud": harnessAudience,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tc.ExpiresIn).Unix(),
	}
	for k, v := range tc.Extra {
		claims[k] = v
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(harnessSigningKey))
	if err != nil {
		h.t.Fatalf("sign token: %v", err)
	}
	return signed
}

// BearerHeaders returns request headers carrying the given token.
func BearerHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// forgedToken signs a token with the wrong key, for negative tests.
func forgedToken(t *testing.T, subject string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": subject,
		"iss": harnessIssuer,
		"aud": harnessAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-real-key"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}
	return signed
}
