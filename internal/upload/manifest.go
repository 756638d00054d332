package upload

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ManifestClaims is a tamper-evident summary of what one upload batch
// claims to contain, signed with LEADS_UPLOAD_API_KEY the same way the
// teacher's auth package signs session tokens (see platform/auth's
// JWTManager), repurposed here from user sessions to batch integrity.
type ManifestClaims struct {
	LeadsCount int    `json:"leads_count"`
	RunID      string `json:"run_id"`
	jwt.RegisteredClaims
}

// SignManifest signs a short-lived manifest token for an upload batch,
// HMAC-signed with the upload API key. The caller sends the result as the
// X-Lead-Manifest header alongside X-API-Key.
func SignManifest(secret string, leadsCount int, runID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &ManifestClaims{
		LeadsCount: leadsCount,
		RunID:      runID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyManifest parses and validates a manifest token, returning its
// claims. Exposed for the receiving endpoint's own use and for tests;
// the upload verb itself only signs.
func VerifyManifest(secret, tokenString string) (*ManifestClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ManifestClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*ManifestClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid manifest token")
	}
	return claims, nil
}
