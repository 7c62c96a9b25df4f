// Package codec provides the numeric primitives RFC 8017 builds RSA
// signing on: OS2IP/I2OSP conversions between byte strings and
// non-negative integers, modular exponentiation, and a constant-time
// byte comparison.
package codec

import (
	"errors"
	"math/big"
)

// ErrIntegerTooLarge is returned by I2OSP when x cannot fit in k octets.
var ErrIntegerTooLarge = errors.New("codec: integer too large for requested octet length")

// OS2IP (Octet String to Integer Primitive) interprets b as a
// big-endian non-negative integer. An empty b yields zero.
func OS2IP(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// I2OSP (Integer to Octet String Primitive) encodes x as exactly k
// big-endian bytes, left-padded with 0x00. It errors if x does not fit
// in k octets (x >= 256^k) or if x is negative.
func I2OSP(x *big.Int, k int) ([]byte, error) {
	if x.Sign() < 0 {
		return nil, errors.New("codec: I2OSP of negative integer")
	}
	if k < 0 {
		return nil, errors.New("codec: I2OSP with negative length")
	}

	raw := x.Bytes()
	if len(raw) > k {
		return nil, ErrIntegerTooLarge
	}

	out := make([]byte, k)
	copy(out[k-len(raw):], raw)
	return out, nil
}

// ModPow computes base^exp mod m for non-negative base and exp and a
// positive modulus. It is a thin, named wrapper over big.Int.Exp:
// math/big already implements square-and-multiply modular
// exponentiation, so there is no benefit to reimplementing it by hand.
// CRT acceleration via p, q, dP, dQ, qInv is an optional optimization
// per RFC 8017 and is intentionally not applied here, so the
// externally observable contract stays the plain m^d mod n path.
func ModPow(base, exp, m *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, m)
}

// ConstantTimeCompare reports whether a and b are equal, comparing in
// time that depends only on len(a) and len(b), never on their
// content. Unequal lengths return false immediately without scanning
// either slice (length is not considered secret here); equal-length
// slices are compared by OR-accumulating the XOR of every byte pair
// with no early return, so a mismatch at byte 0 takes exactly as long
// to detect as a mismatch at the last byte.
func ConstantTimeCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var acc byte
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}
