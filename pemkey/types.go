// Package pemkey decodes unencrypted RSA private keys from PEM
// armour, accepting either a bare PKCS#1 RSAPrivateKey or a PKCS#8
// PrivateKeyInfo wrapping one.
//
// # Decoding
//
// Decode a PEM-armoured key string:
//
//	key, err := pemkey.Decode(pemText)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The armour label on the input selects the parsing mode; any other
// label (ENCRYPTED, EC, DSA, any PUBLIC KEY form) is rejected with
// ErrUnsupportedKeyFormat.
package pemkey

import "math/big"

// RsaPrivateKey is the parsed PKCS#1 structure, common to both the
// PKCS#1 and PKCS#8 input forms.
type RsaPrivateKey struct {
	Version         int
	Modulus         *big.Int // n
	PublicExponent  *big.Int // e
	PrivateExponent *big.Int // d
	Prime1          *big.Int // p
	Prime2          *big.Int // q
	Exponent1       *big.Int // dP = d mod (p-1)
	Exponent2       *big.Int // dQ = d mod (q-1)
	Coefficient     *big.Int // qInv = q^-1 mod p
}

// K returns the byte length of the modulus, ceil(bitLen(n)/8). This is
// both the RSA signature length and the required EM length used by
// rs256.Sign/Verify.
func (k *RsaPrivateKey) K() int {
	return (k.Modulus.BitLen() + 7) / 8
}

// Equal reports whether two keys have identical component integers.
// Used by tests to confirm PKCS#1 and PKCS#8 encodings of the same
// key decode to the same value.
func (k *RsaPrivateKey) Equal(other *RsaPrivateKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.Version == other.Version &&
		bigEqual(k.Modulus, other.Modulus) &&
		bigEqual(k.PublicExponent, other.PublicExponent) &&
		bigEqual(k.PrivateExponent, other.PrivateExponent) &&
		bigEqual(k.Prime1, other.Prime1) &&
		bigEqual(k.Prime2, other.Prime2) &&
		bigEqual(k.Exponent1, other.Exponent1) &&
		bigEqual(k.Exponent2, other.Exponent2) &&
		bigEqual(k.Coefficient, other.Coefficient)
}

func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}
