package sig

import (
	"fmt"

	"github.com/axent-pl/jwksverify/common"
)

// SigAlg represents an algorithm identifier as it appears in a JOSE header "alg".
type SigAlg int

const (
	SigAlgUnknown SigAlg = iota

	// RSA PKCS#1 v1.5
	SigAlgRS1
	SigAlgRS256
	SigAlgRS384
	SigAlgRS512

	// RSA-PSS
	SigAlgPS256
	SigAlgPS384
	SigAlgPS512

	// RSA-OAEP (encryption only)
	SigAlgRSAOAEP
	SigAlgRSAOAEP256
	SigAlgRSAOAEP384
	SigAlgRSAOAEP512

	// ECDSA over P-256/384/521 with SHA-2
	SigAlgES256
	SigAlgES384
	SigAlgES512

	// AES (encryption / key wrapping only)
	SigAlgA128CTR
	SigAlgA192CTR
	SigAlgA256CTR
	SigAlgA128CBC
	SigAlgA192CBC
	SigAlgA256CBC
	SigAlgA128KW
	SigAlgA192KW
	SigAlgA256KW
	SigAlgA128GCM
	SigAlgA192GCM
	SigAlgA256GCM
	SigAlgA128GCMKW
	SigAlgA192GCMKW
	SigAlgA256GCMKW

	// HMAC
	SigAlgHS1
	SigAlgHS256
	SigAlgHS384
	SigAlgHS512

	sigAlgCount
)

// All returns every registered algorithm in table order.
func All() []SigAlg {
	out := make([]SigAlg, 0, sigAlgCount-1)
	for sa := SigAlgRS1; sa < sigAlgCount; sa++ {
		out = append(out, sa)
	}
	return out
}

func (sa SigAlg) String() string {
	switch sa {
	case SigAlgRS1:
		return "RS1"
	case SigAlgRS256:
		return "RS256"
	case SigAlgRS384:
		return "RS384"
	case SigAlgRS512:
		return "RS512"
	case SigAlgPS256:
		return "PS256"
	case SigAlgPS384:
		return "PS384"
	case SigAlgPS512:
		return "PS512"
	case SigAlgRSAOAEP:
		return "RSA-OAEP"
	case SigAlgRSAOAEP256:
		return "RSA-OAEP-256"
	case SigAlgRSAOAEP384:
		return "RSA-OAEP-384"
	case SigAlgRSAOAEP512:
		return "RSA-OAEP-512"
	case SigAlgES256:
		return "ES256"
	case SigAlgES384:
		return "ES384"
	case SigAlgES512:
		return "ES512"
	case SigAlgA128CTR:
		return "A128CTR"
	case SigAlgA192CTR:
		return "A192CTR"
	case SigAlgA256CTR:
		return "A256CTR"
	case SigAlgA128CBC:
		return "A128CBC"
	case SigAlgA192CBC:
		return "A192CBC"
	case SigAlgA256CBC:
		return "A256CBC"
	case SigAlgA128KW:
		return "A128KW"
	case SigAlgA192KW:
		return "A192KW"
	case SigAlgA256KW:
		return "A256KW"
	case SigAlgA128GCM:
		return "A128GCM"
	case SigAlgA192GCM:
		return "A192GCM"
	case SigAlgA256GCM:
		return "A256GCM"
	case SigAlgA128GCMKW:
		return "A128GCMKW"
	case SigAlgA192GCMKW:
		return "A192GCMKW"
	case SigAlgA256GCMKW:
		return "A256GCMKW"
	case SigAlgHS1:
		return "HS1"
	case SigAlgHS256:
		return "HS256"
	case SigAlgHS384:
		return "HS384"
	case SigAlgHS512:
		return "HS512"
	default:
		return "unknown"
	}
}

// ---------- OAuth2 / JWT <-> SigAlg ----------

func FromOAuth(s string) (SigAlg, error) {
	for _, sa := range All() {
		if sa.String() == s {
			return sa, nil
		}
	}
	return SigAlgUnknown, fmt.Errorf("%w: %q", common.ErrUnknownAlgorithm, s)
}

func (sa SigAlg) ToOAuth() (string, error) {
	if sa <= SigAlgUnknown || sa >= sigAlgCount {
		return "unknown", fmt.Errorf("%w: %d", common.ErrUnknownAlgorithm, int(sa))
	}
	return sa.String(), nil
}

// ---------- SigAlg -> primitive ----------

// Descriptor returns the primitive parameters for sa.
// The mapping follows https://www.w3.org/TR/WebCryptoAPI/#jwk-mapping
func (sa SigAlg) Descriptor() (Descriptor, error) {
	d := Descriptor{Alg: sa}
	switch sa {
	case SigAlgRS1:
		d.Family, d.Hash = FamilyRSAPKCS1v15, HashSHA1
	case SigAlgRS256:
		d.Family, d.Hash = FamilyRSAPKCS1v15, HashSHA256
	case SigAlgRS384:
		d.Family, d.Hash = FamilyRSAPKCS1v15, HashSHA384
	case SigAlgRS512:
		d.Family, d.Hash = FamilyRSAPKCS1v15, HashSHA512
	case SigAlgPS256:
		d.Family, d.Hash = FamilyRSAPSS, HashSHA256
	case SigAlgPS384:
		d.Family, d.Hash = FamilyRSAPSS, HashSHA384
	case SigAlgPS512:
		d.Family, d.Hash = FamilyRSAPSS, HashSHA512
	case SigAlgRSAOAEP:
		d.Family, d.Hash = FamilyRSAOAEP, HashSHA1
	case SigAlgRSAOAEP256:
		d.Family, d.Hash = FamilyRSAOAEP, HashSHA256
	case SigAlgRSAOAEP384:
		d.Family, d.Hash = FamilyRSAOAEP, HashSHA384
	case SigAlgRSAOAEP512:
		d.Family, d.Hash = FamilyRSAOAEP, HashSHA512
	case SigAlgES256:
		d.Family, d.Hash, d.Curve = FamilyECDSA, HashSHA256, CurveP256
	case SigAlgES384:
		d.Family, d.Hash, d.Curve = FamilyECDSA, HashSHA384, CurveP384
	case SigAlgES512:
		d.Family, d.Hash, d.Curve = FamilyECDSA, HashSHA512, CurveP521
	case SigAlgA128CTR:
		d.Family, d.KeyLength = FamilyAESCTR, 128
	case SigAlgA192CTR:
		d.Family, d.KeyLength = FamilyAESCTR, 192
	case SigAlgA256CTR:
		d.Family, d.KeyLength = FamilyAESCTR, 256
	case SigAlgA128CBC:
		d.Family, d.KeyLength = FamilyAESCBC, 128
	case SigAlgA192CBC:
		d.Family, d.KeyLength = FamilyAESCBC, 192
	case SigAlgA256CBC:
		d.Family, d.KeyLength = FamilyAESCBC, 256
	case SigAlgA128KW:
		d.Family, d.KeyLength = FamilyAESKW, 128
	case SigAlgA192KW:
		d.Family, d.KeyLength = FamilyAESKW, 192
	case SigAlgA256KW:
		d.Family, d.KeyLength = FamilyAESKW, 256
	case SigAlgA128GCM, SigAlgA128GCMKW:
		d.Family, d.KeyLength = FamilyAESGCM, 128
	case SigAlgA192GCM, SigAlgA192GCMKW:
		d.Family, d.KeyLength = FamilyAESGCM, 192
	case SigAlgA256GCM, SigAlgA256GCMKW:
		d.Family, d.KeyLength = FamilyAESGCM, 256
	case SigAlgHS1:
		d.Family, d.Hash = FamilyHMAC, HashSHA1
	case SigAlgHS256:
		d.Family, d.Hash = FamilyHMAC, HashSHA256
	case SigAlgHS384:
		d.Family, d.Hash = FamilyHMAC, HashSHA384
	case SigAlgHS512:
		d.Family, d.Hash = FamilyHMAC, HashSHA512
	default:
		return Descriptor{}, fmt.Errorf("%w: no primitive mapping for %v", common.ErrUnknownAlgorithm, sa)
	}
	return d, nil
}
