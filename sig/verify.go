package sig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/axent-pl/jwksverify/common"
	alg "github.com/axent-pl/jwksverify/common/sig"
	"github.com/axent-pl/jwksverify/jwks"
	jwtx "github.com/golang-jwt/jwt/v5"
)

// Engine verifies signatures and computes digests through a Provider.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	Provider Provider
}

// NewEngine returns an Engine backed by p, or by GoProvider when p is nil.
func NewEngine(p Provider) *Engine {
	if p == nil {
		p = GoProvider{}
	}
	return &Engine{Provider: p}
}

func (e *Engine) provider() Provider {
	if e == nil || e.Provider == nil {
		return GoProvider{}
	}
	return e.Provider
}

// Digest computes a one-shot hash of input.
func (e *Engine) Digest(input []byte, h alg.Hash) ([]byte, error) {
	return e.provider().Digest(input, h)
}

// Hash digests the UTF-8 bytes of value with the hash named by name (e.g. "SHA-256").
func (e *Engine) Hash(value string, name string) ([]byte, error) {
	h, err := alg.ParseHash(name)
	if err != nil {
		return nil, err
	}
	return e.Digest([]byte(value), h)
}

// Verify imports key under d and checks signature over signingInput.
//
// (false, nil) means the check ran and failed. Errors wrap common.ErrKeyImport
// or common.ErrCryptoBackend when the check could not run.
func (e *Engine) Verify(signingInput, signature []byte, key jwks.Key, d alg.Descriptor) (bool, error) {
	p := e.provider()
	k, err := p.ImportKey(key, d)
	if err != nil {
		if !errors.Is(err, common.ErrKeyImport) {
			err = fmt.Errorf("%w: %w", common.ErrKeyImport, err)
		}
		return false, err
	}
	ok, err := p.Verify(d, k, signingInput, signature)
	if err != nil {
		if !errors.Is(err, common.ErrKeyImport) && !errors.Is(err, common.ErrCryptoBackend) {
			err = fmt.Errorf("%w: %w", common.ErrCryptoBackend, err)
		}
		return false, err
	}
	return ok, nil
}

// VerifyToken verifies the signature of a compact serialized token.
func (e *Engine) VerifyToken(token string, key jwks.Key, d alg.Descriptor) (bool, error) {
	signingInput, signature, err := SplitSigningInput(token)
	if err != nil {
		return false, err
	}
	return e.Verify(signingInput, signature, key, d)
}

// SplitSigningInput returns the bytes a JWS signature covers ("header.payload"
// exactly as serialized) and the decoded signature segment.
func SplitSigningInput(token string) (signingInput, signature []byte, err error) {
	i := strings.LastIndexByte(token, '.')
	if i < 0 || strings.Count(token, ".") != 2 {
		return nil, nil, fmt.Errorf("%w: token must have 3 segments", common.ErrInvalidInput)
	}
	signature, err = jwtx.NewParser().DecodeSegment(token[i+1:])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: could not decode signature: %v", common.ErrInvalidInput, err)
	}
	return []byte(token[:i]), signature, nil
}
