package jwt

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/axent-pl/jwksverify/common"
	jwtx "github.com/golang-jwt/jwt/v5"
)

// Header is the decoded JOSE header of a compact serialized token.
type Header struct {
	Alg string
	Kid string
	Typ string
	Raw map[string]any
}

// ParseHeader decodes the first segment of token. The signature is not checked.
func ParseHeader(token string) (*Header, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: token must have 3 segments, got %d", common.ErrInvalidInput, len(parts))
	}
	data, err := jwtx.NewParser().DecodeSegment(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode the header: %v", common.ErrInvalidInput, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: cannot parse the header: %v", common.ErrInvalidInput, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: header is not a JSON object", common.ErrInvalidInput)
	}

	h := &Header{Raw: raw}
	for name, dst := range map[string]*string{"alg": &h.Alg, "kid": &h.Kid, "typ": &h.Typ} {
		v, ok := raw[name]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: header %q must be a string", common.ErrInvalidInput, name)
		}
		*dst = s
	}
	return h, nil
}

// TokenFromRequest extracts a bearer token from the Authorization header,
// falling back to the access_token form value.
func TokenFromRequest(r *http.Request) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: request is nil", common.ErrInvalidInput)
	}

	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 {
			return "", fmt.Errorf("%w: invalid Authorization header", common.ErrInvalidInput)
		}
		if !strings.EqualFold(parts[0], "Bearer") {
			return "", fmt.Errorf("%w: invalid Authorization scheme", common.ErrInvalidInput)
		}
		return parts[1], nil
	}

	if err := r.ParseForm(); err != nil {
		return "", fmt.Errorf("%w: could not parse form: %v", common.ErrInvalidInput, err)
	}
	token := r.FormValue("access_token")
	if token == "" {
		return "", fmt.Errorf("%w: missing access_token", common.ErrInvalidInput)
	}
	return token, nil
}
