package sig

import (
	"crypto"
	"crypto/elliptic"
	"fmt"
	"strings"

	"github.com/axent-pl/jwksverify/common"
)

// Family is the cryptographic primitive an algorithm identifier resolves to.
// String values use the WebCrypto algorithm names.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyRSAPKCS1v15
	FamilyRSAPSS
	FamilyRSAOAEP
	FamilyECDSA
	FamilyAESCTR
	FamilyAESCBC
	FamilyAESKW
	FamilyAESGCM
	FamilyHMAC
)

func (f Family) String() string {
	switch f {
	case FamilyRSAPKCS1v15:
		return "RSASSA-PKCS1-v1_5"
	case FamilyRSAPSS:
		return "RSA-PSS"
	case FamilyRSAOAEP:
		return "RSA-OAEP"
	case FamilyECDSA:
		return "ECDSA"
	case FamilyAESCTR:
		return "AES-CTR"
	case FamilyAESCBC:
		return "AES-CBC"
	case FamilyAESKW:
		return "AES-KW"
	case FamilyAESGCM:
		return "AES-GCM"
	case FamilyHMAC:
		return "HMAC"
	default:
		return "unknown"
	}
}

// IsRSA reports whether f operates on RSA keys.
func (f Family) IsRSA() bool {
	return f == FamilyRSAPKCS1v15 || f == FamilyRSAPSS || f == FamilyRSAOAEP
}

// IsAES reports whether f operates on AES keys.
func (f Family) IsAES() bool {
	return f == FamilyAESCTR || f == FamilyAESCBC || f == FamilyAESKW || f == FamilyAESGCM
}

// CanVerify reports whether f is a signature or MAC primitive.
func (f Family) CanVerify() bool {
	return f == FamilyRSAPKCS1v15 || f == FamilyRSAPSS || f == FamilyECDSA || f == FamilyHMAC
}

// Hash identifies a digest function. The SHA-1/SHA-2 members are used by the
// signature table; SHA-3 and BLAKE2b are only reachable through the digest helper.
type Hash int

const (
	HashNone Hash = iota
	HashSHA1
	HashSHA256
	HashSHA384
	HashSHA512
	HashSHA3_256
	HashSHA3_384
	HashSHA3_512
	HashBLAKE2b_256
	HashBLAKE2b_384
	HashBLAKE2b_512
)

var hashNames = map[Hash]string{
	HashSHA1:        "SHA-1",
	HashSHA256:      "SHA-256",
	HashSHA384:      "SHA-384",
	HashSHA512:      "SHA-512",
	HashSHA3_256:    "SHA3-256",
	HashSHA3_384:    "SHA3-384",
	HashSHA3_512:    "SHA3-512",
	HashBLAKE2b_256: "BLAKE2b-256",
	HashBLAKE2b_384: "BLAKE2b-384",
	HashBLAKE2b_512: "BLAKE2b-512",
}

func (h Hash) String() string {
	if name, ok := hashNames[h]; ok {
		return name
	}
	return "none"
}

// CryptoHash maps h onto the crypto.Hash registry.
func (h Hash) CryptoHash() crypto.Hash {
	switch h {
	case HashSHA1:
		return crypto.SHA1
	case HashSHA256:
		return crypto.SHA256
	case HashSHA384:
		return crypto.SHA384
	case HashSHA512:
		return crypto.SHA512
	case HashSHA3_256:
		return crypto.SHA3_256
	case HashSHA3_384:
		return crypto.SHA3_384
	case HashSHA3_512:
		return crypto.SHA3_512
	case HashBLAKE2b_256:
		return crypto.BLAKE2b_256
	case HashBLAKE2b_384:
		return crypto.BLAKE2b_384
	case HashBLAKE2b_512:
		return crypto.BLAKE2b_512
	default:
		return 0
	}
}

// ParseHash resolves a WebCrypto style digest name such as "SHA-256".
// Matching is case-insensitive.
func ParseHash(name string) (Hash, error) {
	name = strings.TrimSpace(name)
	for h, n := range hashNames {
		if strings.EqualFold(n, name) {
			return h, nil
		}
	}
	return HashNone, fmt.Errorf("%w: %q", common.ErrUnsupportedHash, name)
}

// Curve is a named elliptic curve.
type Curve int

const (
	CurveNone Curve = iota
	CurveP256
	CurveP384
	CurveP521
)

func (c Curve) String() string {
	switch c {
	case CurveP256:
		return "P-256"
	case CurveP384:
		return "P-384"
	case CurveP521:
		return "P-521"
	default:
		return "none"
	}
}

// Elliptic returns the crypto/elliptic curve, or nil for CurveNone.
func (c Curve) Elliptic() elliptic.Curve {
	switch c {
	case CurveP256:
		return elliptic.P256()
	case CurveP384:
		return elliptic.P384()
	case CurveP521:
		return elliptic.P521()
	default:
		return nil
	}
}

// Bits is the curve order size in bits.
func (c Curve) Bits() int {
	switch c {
	case CurveP256:
		return 256
	case CurveP384:
		return 384
	case CurveP521:
		return 521
	default:
		return 0
	}
}

// Descriptor is the immutable description of the primitive behind an algorithm identifier.
type Descriptor struct {
	Alg       SigAlg
	Family    Family
	Hash      Hash  // HashNone for AES families
	Curve     Curve // ECDSA only
	KeyLength int   // AES key length in bits
}

// KeyType returns the JWK "kty" a key must carry to be used with d.
func (d Descriptor) KeyType() string {
	switch {
	case d.Family.IsRSA():
		return "RSA"
	case d.Family == FamilyECDSA:
		return "EC"
	case d.Family.IsAES(), d.Family == FamilyHMAC:
		return "oct"
	default:
		return ""
	}
}

func (d Descriptor) String() string {
	var b strings.Builder
	b.WriteString(d.Family.String())
	if d.Hash != HashNone {
		b.WriteString("/" + d.Hash.String())
	}
	if d.Curve != CurveNone {
		b.WriteString("/" + d.Curve.String())
	}
	if d.KeyLength > 0 {
		fmt.Fprintf(&b, "/%d", d.KeyLength)
	}
	return b.String()
}
