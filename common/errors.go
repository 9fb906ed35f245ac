package common

import "errors"

var ErrInvalidInput = errors.New("bad input")

// Validation failures. Call sites wrap these with the offending field, kid or alg.
var (
	ErrMissingParameter           = errors.New("missing parameter")
	ErrMissingAlgorithm           = errors.New("cannot get algorithm from header")
	ErrUnsupportedAlgorithmFamily = errors.New("cannot infer kty from alg")
	ErrUnknownAlgorithm           = errors.New("unknown algorithm")
	ErrAmbiguousKey               = errors.New("more than one matching key found, specify a kid in the token header")
	ErrNoMatchingKey              = errors.New("no matching key found")
	ErrKeyNotFoundForKid          = errors.New("expected key not found in jwks")
	ErrInvalidSignature           = errors.New("signature not valid")
	ErrKeySetRefresh              = errors.New("could not refresh jwks")
)

// Operational failures: verification could not run.
var (
	ErrKeyImport       = errors.New("key import failed")
	ErrCryptoBackend   = errors.New("crypto backend failure")
	ErrUnsupportedHash = errors.New("unsupported hash")
)
