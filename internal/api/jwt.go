package api

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pawhaven/petbattle/internal/constants"
)

// sessionClaims is the payload of the signed session token. The
// Google-verified email rides in the subject claim and doubles as the
// player's stable ID everywhere else in the service.
type sessionClaims struct {
	Email    string `json:"sub"`
	Name     string `json:"name"`
	IssuedAt int64  `json:"iat"`
	Expires  int64  `json:"exp"`
}

var ephemeralSecret []byte

func sessionSecret() ([]byte, error) {
	if secret := os.Getenv(constants.EnvSessionSecret); secret != "" {
		return []byte(secret), nil
	}
	// Local runs without SESSION_SECRET get a process-lifetime secret;
	// restarting the server invalidates every outstanding session.
	if len(ephemeralSecret) == 0 {
		ephemeralSecret = make([]byte, 32)
		if _, err := crand.Read(ephemeralSecret); err != nil {
			return nil, errors.New("failed to generate session secret")
		}
	}
	return ephemeralSecret, nil
}

func b64url(data []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(data), "=")
}

func b64urlDecode(s string) ([]byte, error) {
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}
	return base64.URLEncoding.DecodeString(s)
}

func signHS256(data string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(data))
	return b64url(mac.Sum(nil))
}

// mintSessionToken issues the HS256-signed token stored in the session
// cookie after a successful Google sign-in.
func mintSessionToken(email, name string, ttl time.Duration) (string, error) {
	secret, err := sessionSecret()
	if err != nil {
		return "", err
	}
	hdrJSON, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	now := time.Now().Unix()
	claims := sessionClaims{Email: email, Name: name, IssuedAt: now, Expires: now + int64(ttl.Seconds())}
	clJSON, _ := json.Marshal(claims)
	unsigned := fmt.Sprintf("%s.%s", b64url(hdrJSON), b64url(clJSON))
	return unsigned + "." + signHS256(unsigned, secret), nil
}

// parseSessionToken verifies the signature and expiry of a session
// cookie's token and returns its claims.
func parseSessionToken(token string) (*sessionClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid token format")
	}
	secret, err := sessionSecret()
	if err != nil {
		return nil, err
	}
	unsigned := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(signHS256(unsigned, secret)), []byte(parts[2])) {
		return nil, errors.New("invalid signature")
	}
	payloadBytes, err := b64urlDecode(parts[1])
	if err != nil {
		return nil, err
	}
	var claims sessionClaims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return nil, err
	}
	if time.Now().Unix() > claims.Expires {
		return nil, errors.New("token expired")
	}
	return &claims, nil
}
