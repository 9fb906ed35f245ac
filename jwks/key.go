package jwks

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/rsa"
	"encoding/json"
	"fmt"

	"github.com/axent-pl/jwksverify/common"
	jose "github.com/go-jose/go-jose/v4"
)

// Key is a single JSON Web Key as published in a key set. Only the members used
// for key selection are decoded; the full member set is retained for import.
type Key struct {
	Kty    string
	Kid    string
	Use    string
	Alg    string
	KeyOps []string

	raw json.RawMessage
}

type keyHeader struct {
	Kty    string   `json:"kty"`
	Kid    string   `json:"kid,omitempty"`
	Use    string   `json:"use,omitempty"`
	Alg    string   `json:"alg,omitempty"`
	KeyOps []string `json:"key_ops,omitempty"`
}

func (k *Key) UnmarshalJSON(data []byte) error {
	var h keyHeader
	if err := json.Unmarshal(data, &h); err != nil {
		return err
	}
	k.Kty, k.Kid, k.Use, k.Alg, k.KeyOps = h.Kty, h.Kid, h.Use, h.Alg, h.KeyOps
	k.raw = bytes.Clone(data)
	return nil
}

func (k Key) MarshalJSON() ([]byte, error) {
	if len(k.raw) > 0 {
		return k.raw, nil
	}
	return json.Marshal(keyHeader{Kty: k.Kty, Kid: k.Kid, Use: k.Use, Alg: k.Alg, KeyOps: k.KeyOps})
}

// Raw returns a copy of the JWK document the key was decoded from.
func (k Key) Raw() []byte {
	if len(k.raw) > 0 {
		return bytes.Clone(k.raw)
	}
	b, _ := k.MarshalJSON()
	return b
}

// KeySet is a JSON Web Key Set. It is treated as an immutable value: a
// refresh produces a new KeySet rather than editing an existing one.
type KeySet struct {
	Keys []Key `json:"keys"`
}

// Parse decodes a JWKS document. An empty "keys" array is not an error here;
// callers decide whether an empty set is acceptable.
func Parse(data []byte) (KeySet, error) {
	var ks KeySet
	if err := json.Unmarshal(data, &ks); err != nil {
		return KeySet{}, fmt.Errorf("%w: jwks decode failed: %v", common.ErrInvalidInput, err)
	}
	return ks, nil
}

// Find returns the first key whose kid equals kid.
func (ks KeySet) Find(kid string) (Key, bool) {
	for _, k := range ks.Keys {
		if k.Kid == kid {
			return k, true
		}
	}
	return Key{}, false
}

// Filter returns the keys matching pred, in set order.
func (ks KeySet) Filter(pred func(Key) bool) []Key {
	var out []Key
	for _, k := range ks.Keys {
		if pred(k) {
			out = append(out, k)
		}
	}
	return out
}

// Kids lists the key ids of the set, for diagnostics.
func (ks KeySet) Kids() []string {
	kids := make([]string, 0, len(ks.Keys))
	for _, k := range ks.Keys {
		kids = append(kids, k.Kid)
	}
	return kids
}

// NewKey builds a signature-use JWK from public key material.
// Supported inputs are *rsa.PublicKey, *ecdsa.PublicKey and []byte (HMAC secret).
func NewKey(key any, kid string, alg string) (Key, error) {
	switch key.(type) {
	case *rsa.PublicKey, *ecdsa.PublicKey, []byte:
	default:
		return Key{}, fmt.Errorf("%w: unsupported key type: %T", common.ErrInvalidInput, key)
	}
	jwk := jose.JSONWebKey{
		Key:       key,
		KeyID:     kid,
		Algorithm: alg,
		Use:       "sig",
	}
	data, err := jwk.MarshalJSON()
	if err != nil {
		return Key{}, fmt.Errorf("%w: could not marshal jwk: %v", common.ErrInvalidInput, err)
	}
	var out Key
	if err := out.UnmarshalJSON(data); err != nil {
		return Key{}, err
	}
	return out, nil
}
