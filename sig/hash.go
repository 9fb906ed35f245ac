package sig

import (
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"fmt"
	"hash"

	"github.com/axent-pl/jwksverify/common"
	alg "github.com/axent-pl/jwksverify/common/sig"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// newHash returns a fresh hash.Hash for h, or common.ErrUnsupportedHash.
func newHash(h alg.Hash) (hash.Hash, error) {
	switch h {
	case alg.HashSHA1, alg.HashSHA256, alg.HashSHA384, alg.HashSHA512:
		ch := h.CryptoHash()
		if !ch.Available() {
			return nil, fmt.Errorf("%w: %v not linked", common.ErrUnsupportedHash, h)
		}
		return ch.New(), nil
	case alg.HashSHA3_256:
		return sha3.New256(), nil
	case alg.HashSHA3_384:
		return sha3.New384(), nil
	case alg.HashSHA3_512:
		return sha3.New512(), nil
	case alg.HashBLAKE2b_256:
		return blake2b.New256(nil)
	case alg.HashBLAKE2b_384:
		return blake2b.New384(nil)
	case alg.HashBLAKE2b_512:
		return blake2b.New512(nil)
	default:
		return nil, fmt.Errorf("%w: %v", common.ErrUnsupportedHash, h)
	}
}

func digest(input []byte, h alg.Hash) ([]byte, error) {
	hh, err := newHash(h)
	if err != nil {
		return nil, err
	}
	if _, err := hh.Write(input); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCryptoBackend, err)
	}
	return hh.Sum(nil), nil
}
