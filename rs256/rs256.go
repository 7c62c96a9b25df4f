// Package rs256 signs and verifies byte messages with
// RSASSA-PKCS1-v1_5 using SHA-256 (RS256), per RFC 8017 §8.2. It
// consumes a parsed key from package pemkey and never handles PEM
// text directly.
//
// # Signing
//
// Sign a message with a parsed private key:
//
//	signature, err := rs256.Sign(key, message)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Verification
//
// Verify a signature against a message:
//
//	ok := rs256.Verify(key, message, signature)
package rs256

import (
	"fmt"

	"github.com/anchorageoss/rs256signer/codec"
	"github.com/anchorageoss/rs256signer/pemkey"
)

// minEncodedMessageLen is the smallest k for which EMSA-PKCS1-v1_5
// encoding can fit: 51-byte DigestInfo + 0x00 0x01 + 0x00 separator +
// an 8-byte minimum PS run.
const minEncodedMessageLen = digestInfoLen + 3 + 8

// Sign produces an RS256 signature over message using key, per
// RFC 8017 §8.2.1. The result is exactly key.K() bytes.
func Sign(key *pemkey.RsaPrivateKey, message []byte) ([]byte, error) {
	k := key.K()
	if k < minEncodedMessageLen {
		return nil, fmt.Errorf("%w: modulus is %d bytes, need at least %d", ErrMessageTooLong, k, minEncodedMessageLen)
	}

	em := encodeEM(message, k)

	m := codec.OS2IP(em)
	if m.Cmp(key.Modulus) >= 0 {
		return nil, fmt.Errorf("%w: message representative is not less than the modulus", ErrIntegerOutOfRange)
	}

	s := codec.ModPow(m, key.PrivateExponent, key.Modulus)

	signature, err := codec.I2OSP(s, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntegerOutOfRange, err)
	}
	return signature, nil
}

// Verify reports whether signature is a valid RS256 signature over
// message under key, per RFC 8017 §8.2.2. It returns false for any
// length mismatch, range failure, or content mismatch; it never
// returns an error.
func Verify(key *pemkey.RsaPrivateKey, message, signature []byte) bool {
	k := key.K()
	if len(signature) != k {
		return false
	}

	s := codec.OS2IP(signature)
	if s.Cmp(key.Modulus) >= 0 {
		return false
	}

	m := codec.ModPow(s, key.PublicExponent, key.Modulus)

	emPrime, err := codec.I2OSP(m, k)
	if err != nil {
		return false
	}

	if k < minEncodedMessageLen {
		return false
	}
	expectedEM := encodeEM(message, k)

	return codec.ConstantTimeCompare(emPrime, expectedEM)
}

// encodeEM builds the EMSA-PKCS1-v1_5 encoded message of length k:
// 0x00 || 0x01 || PS || 0x00 || T, where T is the SHA-256 DigestInfo
// for message and PS is a run of 0xFF bytes filling the remaining
// space. Callers must ensure k >= minEncodedMessageLen.
func encodeEM(message []byte, k int) []byte {
	t := buildDigestInfo(message)
	psLen := k - len(t) - 3

	em := make([]byte, k)
	em[0] = 0x00
	em[1] = 0x01
	for i := 0; i < psLen; i++ {
		em[2+i] = 0xff
	}
	em[2+psLen] = 0x00
	copy(em[3+psLen:], t)
	return em
}
