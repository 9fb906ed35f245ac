package sig

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"fmt"
	"slices"

	"github.com/axent-pl/jwksverify/common"
	alg "github.com/axent-pl/jwksverify/common/sig"
	"github.com/axent-pl/jwksverify/jwks"
	jose "github.com/go-jose/go-jose/v4"
	jwtx "github.com/golang-jwt/jwt/v5"
)

// Provider is the cryptographic backend behind an Engine.
//
// ImportKey failures must wrap common.ErrKeyImport. Verify returns false with a
// nil error only when the primitive ran and the signature did not match.
type Provider interface {
	Digest(input []byte, h alg.Hash) ([]byte, error)
	ImportKey(key jwks.Key, d alg.Descriptor) (any, error)
	Verify(d alg.Descriptor, key any, signingInput, signature []byte) (bool, error)
}

// GoProvider implements Provider with the Go standard crypto packages,
// go-jose for JWK decoding and golang-jwt signing methods for verification.
type GoProvider struct{}

var _ Provider = GoProvider{}

// Digest hashes input with h; SHA-3 and BLAKE2b come from golang.org/x/crypto.
func (GoProvider) Digest(input []byte, h alg.Hash) ([]byte, error) {
	return digest(input, h)
}

// ImportKey decodes key with go-jose and restricts it to the primitive described by d.
// The result is an *rsa.PublicKey, *ecdsa.PublicKey or HMAC secret.
func (GoProvider) ImportKey(key jwks.Key, d alg.Descriptor) (any, error) {
	if !d.Family.CanVerify() {
		return nil, fmt.Errorf("%w: %s (%s) is not a signature algorithm", common.ErrKeyImport, d.Alg, d.Family)
	}
	if want := d.KeyType(); key.Kty != want {
		return nil, fmt.Errorf("%w: kty %q cannot be used with %s, want %q", common.ErrKeyImport, key.Kty, d.Alg, want)
	}
	if key.Alg != "" && key.Alg != d.Alg.String() {
		return nil, fmt.Errorf("%w: key is restricted to %q, token uses %s", common.ErrKeyImport, key.Alg, d.Alg)
	}
	if key.Use != "" && key.Use != "sig" {
		return nil, fmt.Errorf("%w: key use %q does not allow verification", common.ErrKeyImport, key.Use)
	}
	if len(key.KeyOps) > 0 && !slices.Contains(key.KeyOps, "verify") {
		return nil, fmt.Errorf("%w: key_ops %v do not allow verification", common.ErrKeyImport, key.KeyOps)
	}

	var jwk jose.JSONWebKey
	if err := jwk.UnmarshalJSON(key.Raw()); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyImport, err)
	}

	switch k := jwk.Key.(type) {
	case *rsa.PublicKey:
		return k, nil
	case *ecdsa.PublicKey:
		if k.Curve != d.Curve.Elliptic() {
			return nil, fmt.Errorf("%w: curve %s cannot be used with %s, want %s", common.ErrKeyImport, k.Curve.Params().Name, d.Alg, d.Curve)
		}
		return k, nil
	case []byte:
		if len(k) == 0 {
			return nil, fmt.Errorf("%w: empty symmetric key", common.ErrKeyImport)
		}
		return k, nil
	case *rsa.PrivateKey, *ecdsa.PrivateKey:
		return nil, fmt.Errorf("%w: key set entry carries private key material", common.ErrKeyImport)
	default:
		return nil, fmt.Errorf("%w: unsupported key type %T", common.ErrKeyImport, k)
	}
}

// Verify checks signature over signingInput with an imported key.
func (GoProvider) Verify(d alg.Descriptor, key any, signingInput, signature []byte) (bool, error) {
	method, err := SigningMethod(d)
	if err != nil {
		return false, err
	}
	err = method.Verify(string(signingInput), signature, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, rsa.ErrVerification),
		errors.Is(err, jwtx.ErrECDSAVerification),
		errors.Is(err, jwtx.ErrSignatureInvalid):
		return false, nil
	case errors.Is(err, jwtx.ErrInvalidKeyType):
		return false, fmt.Errorf("%w: %v", common.ErrKeyImport, err)
	case errors.Is(err, jwtx.ErrHashUnavailable):
		return false, fmt.Errorf("%w: %w: %v", common.ErrCryptoBackend, common.ErrUnsupportedHash, d.Hash)
	default:
		return false, fmt.Errorf("%w: %v", common.ErrCryptoBackend, err)
	}
}

// SigningMethod builds the golang-jwt signing method for a signature descriptor.
// RSA-PSS uses a salt length equal to the hash size as required for JWS.
func SigningMethod(d alg.Descriptor) (jwtx.SigningMethod, error) {
	name, err := d.Alg.ToOAuth()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCryptoBackend, err)
	}
	hash := d.Hash.CryptoHash()
	switch d.Family {
	case alg.FamilyRSAPKCS1v15:
		return &jwtx.SigningMethodRSA{Name: name, Hash: hash}, nil
	case alg.FamilyRSAPSS:
		return &jwtx.SigningMethodRSAPSS{
			SigningMethodRSA: &jwtx.SigningMethodRSA{Name: name, Hash: hash},
			Options:          &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash},
		}, nil
	case alg.FamilyECDSA:
		bits := d.Curve.Bits()
		return &jwtx.SigningMethodECDSA{Name: name, Hash: hash, KeySize: (bits + 7) / 8, CurveBits: bits}, nil
	case alg.FamilyHMAC:
		return &jwtx.SigningMethodHMAC{Name: name, Hash: hash}, nil
	default:
		return nil, fmt.Errorf("%w: %s (%s) has no verification primitive", common.ErrCryptoBackend, d.Alg, d.Family)
	}
}
