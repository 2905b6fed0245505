// Package token issues and verifies the unsigned bearer tokens the API
// hands out at registration and login.
//
// The encoding is JWT-shaped (base64url header, base64url claims, empty
// signature segment) but deliberately carries no signature: revocation
// relies entirely on the server comparing the presented token with the
// single valid token stored on the user row. Anyone can decode or forge
// a token; only the stored copy authenticates. Pair with a signing
// scheme before trusting tokens across a boundary.
package token

import (
	"encoding/base64"
	"errors"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// ContextUser tags claims issued for interactive API sessions.
const ContextUser = "user"

// ErrInvalid is returned for any string Verify cannot decode into
// claims. Verify never panics, whatever the input.
var ErrInvalid = errors.New("token is invalid")

// Claims is the payload carried inside a token.
type Claims struct {
	UserID  int64  `json:"user_id"`
	Context string `json:"context"`
}

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Issue serializes claims into a compact token string. An empty claims
// context defaults to ContextUser.
func Issue(claims Claims) (string, error) {
	if strings.TrimSpace(claims.Context) == "" {
		claims.Context = ContextUser
	}

	headerJSON, err := sonic.Marshal(header{Alg: "none", Typ: "JWT"})
	if err != nil {
		return "", err
	}
	claimsJSON, err := sonic.Marshal(claims)
	if err != nil {
		return "", err
	}

	encode := base64.RawURLEncoding.EncodeToString
	return encode(headerJSON) + "." + encode(claimsJSON) + ".", nil
}

// Verify parses a token string back into its claims. It returns
// ErrInvalid for malformed input and never raises for well-formed but
// meaningless claims; semantic checks belong to the caller.
func Verify(raw string) (Claims, error) {
	segments := strings.Split(strings.TrimSpace(raw), ".")
	if len(segments) < 2 || len(segments) > 3 {
		return Claims{}, ErrInvalid
	}
	if segments[0] == "" || segments[1] == "" {
		return Claims{}, ErrInvalid
	}

	payload, err := base64.RawURLEncoding.DecodeString(segments[1])
	if err != nil {
		return Claims{}, ErrInvalid
	}

	var claims Claims
	if err := sonic.Unmarshal(payload, &claims); err != nil {
		return Claims{}, ErrInvalid
	}

	return claims, nil
}
