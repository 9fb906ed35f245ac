package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/axent-pl/jwksverify/common"
	"github.com/axent-pl/jwksverify/common/logx"
	alg "github.com/axent-pl/jwksverify/common/sig"
	"github.com/axent-pl/jwksverify/jwks"
	"github.com/axent-pl/jwksverify/metrics"
	"github.com/axent-pl/jwksverify/sig"
)

// RefreshFunc loads a fresh key set, typically by re-reading the JWKS
// referenced from a discovery document.
type RefreshFunc func(ctx context.Context) (jwks.KeySet, error)

// ValidationParams is the input of a single signature validation.
type ValidationParams struct {
	Token  string
	Header *Header
	KeySet *jwks.KeySet
	// Algorithm overrides Header.Alg when set.
	Algorithm string
	// LoadKeys is called at most once when no key in KeySet matches.
	LoadKeys RefreshFunc
}

// JWKSValidator validates the signature of a token against one of the keys
// of a JSON Web Key Set. It is stateless and safe for concurrent use.
type JWKSValidator struct {
	Registry alg.Registry
	Engine   *sig.Engine
	Metrics  *metrics.Recorder // optional
}

// NewJWKSValidator returns a validator backed by the static registry and GoProvider, without metrics.
func NewJWKSValidator() *JWKSValidator {
	return &JWKSValidator{
		Registry: alg.StaticRegistry{},
		Engine:   sig.NewEngine(nil),
	}
}

func (v *JWKSValidator) registry() alg.Registry {
	if v.Registry == nil {
		return alg.StaticRegistry{}
	}
	return v.Registry
}

// ValidateSignature selects the verification key for p.Token and checks its
// signature. It returns (true, nil) only for a valid signature; every other
// outcome, including a signature mismatch (common.ErrInvalidSignature), is an error.
//
// Key selection: a token "kid" selects the key with that kid. Without a kid
// the key type is inferred from the algorithm and exactly one key of that
// type with use "sig" must exist. When nothing matches, p.LoadKeys is called
// once and selection is repeated on the returned set.
func (v *JWKSValidator) ValidateSignature(ctx context.Context, p ValidationParams) (valid bool, err error) {
	var kid, algorithm string
	start := time.Now()
	defer func() {
		v.Metrics.ObserveValidation(err, time.Since(start))
		if err != nil {
			logx.L().Debug("signature validation failed", "kid", kid, "alg", algorithm, "error", err)
		}
	}()

	if err := checkParams(p); err != nil {
		return false, err
	}

	algorithm = p.Algorithm
	if algorithm == "" {
		algorithm = p.Header.Alg
	}
	if algorithm == "" {
		return false, common.ErrMissingAlgorithm
	}
	kid = p.Header.Kid

	keySet := *p.KeySet
	var key jwks.Key
	for retry := false; ; retry = true {
		k, found, err := selectKey(keySet, kid, algorithm)
		if err != nil {
			return false, err
		}
		if found {
			key = k
			break
		}
		if !retry && p.LoadKeys != nil {
			logx.L().Debug("no matching key, reloading jwks", "kid", kid, "alg", algorithm)
			keySet, err = p.LoadKeys(ctx)
			if err != nil {
				v.Metrics.ObserveRefresh(metrics.StatusError)
				return false, fmt.Errorf("%w: %w", common.ErrKeySetRefresh, err)
			}
			v.Metrics.ObserveRefresh(metrics.StatusSuccess)
			continue
		}
		if kid == "" {
			return false, fmt.Errorf("%w: alg %s", common.ErrNoMatchingKey, algorithm)
		}
		return false, fmt.Errorf("%w: this property is most likely loaded with the discovery document, expected key id (kid): %s",
			common.ErrKeyNotFoundForKid, kid)
	}

	d, err := v.registry().Lookup(algorithm)
	if err != nil {
		return false, err
	}
	signingInput, signature, err := sig.SplitSigningInput(p.Token)
	if err != nil {
		return false, err
	}
	ok, err := v.Engine.Verify(signingInput, signature, key, d)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: kid %q, alg %s", common.ErrInvalidSignature, key.Kid, algorithm)
	}
	return true, nil
}

// ValidateToken decodes the header of token and validates its signature.
func (v *JWKSValidator) ValidateToken(ctx context.Context, token string, keySet *jwks.KeySet, loadKeys RefreshFunc) (bool, error) {
	if token == "" {
		return v.ValidateSignature(ctx, ValidationParams{KeySet: keySet, LoadKeys: loadKeys})
	}
	header, err := ParseHeader(token)
	if err != nil {
		return false, err
	}
	return v.ValidateSignature(ctx, ValidationParams{
		Token:    token,
		Header:   header,
		KeySet:   keySet,
		LoadKeys: loadKeys,
	})
}

// CalcHash digests value with the hash named by algorithm, e.g. "SHA-256".
func (v *JWKSValidator) CalcHash(value string, algorithm string) ([]byte, error) {
	return v.Engine.Hash(value, algorithm)
}

func checkParams(p ValidationParams) error {
	if p.Token == "" {
		return fmt.Errorf("%w: token", common.ErrMissingParameter)
	}
	if p.Header == nil {
		return fmt.Errorf("%w: header", common.ErrMissingParameter)
	}
	if p.KeySet == nil {
		return fmt.Errorf("%w: jwks", common.ErrMissingParameter)
	}
	// An empty set is acceptable when it can be reloaded.
	if len(p.KeySet.Keys) == 0 && p.LoadKeys == nil {
		return fmt.Errorf("%w: jwks.keys", common.ErrMissingParameter)
	}
	return nil
}

// selectKey applies the selection policy to one key set. found is false when
// no key matches; an error is returned only for ambiguity or an algorithm
// whose key type cannot be inferred.
func selectKey(ks jwks.KeySet, kid, algorithm string) (key jwks.Key, found bool, err error) {
	if kid != "" {
		// kid matches skip the use check.
		key, found = ks.Find(kid)
		return key, found, nil
	}

	kty, err := algToKty(algorithm)
	if err != nil {
		return jwks.Key{}, false, err
	}
	matching := ks.Filter(func(k jwks.Key) bool {
		return k.Kty == kty && k.Use == "sig"
	})
	switch len(matching) {
	case 0:
		return jwks.Key{}, false, nil
	case 1:
		return matching[0], true, nil
	default:
		return jwks.Key{}, false, fmt.Errorf("%w: %d %s keys for alg %s", common.ErrAmbiguousKey, len(matching), kty, algorithm)
	}
}

func algToKty(algorithm string) (string, error) {
	switch algorithm[0] {
	case 'R':
		return "RSA", nil
	case 'E':
		return "EC", nil
	default:
		return "", fmt.Errorf("%w: %s", common.ErrUnsupportedAlgorithmFamily, algorithm)
	}
}
