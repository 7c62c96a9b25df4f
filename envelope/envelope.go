// Package envelope wraps a signed RS256 assertion (message, signature,
// signer fingerprint, timestamp) into a small Borsh-coded binary blob,
// for callers who want a single opaque value to store or transmit
// alongside a raw rs256 signature.
//
// # Building an envelope
//
//	assertion := envelope.SignedAssertion{
//		Message:        message,
//		Signature:      signature,
//		KeyFingerprint: envelope.Fingerprint(key),
//		IssuedAtUnix:   time.Now().Unix(),
//	}
//	blob, err := envelope.Encode(assertion)
//
// # Reading one back
//
//	assertion, err := envelope.Decode(blob)
package envelope

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/near/borsh-go"

	"github.com/anchorageoss/rs256signer/codec"
	"github.com/anchorageoss/rs256signer/pemkey"
)

// SignedAssertion is the Borsh-coded payload this package carries: an
// RS256-signed message plus enough metadata for a verifier to know
// which key to check it against.
type SignedAssertion struct {
	Message        []byte   `borsh:"message"`
	Signature      []byte   `borsh:"signature"`
	KeyFingerprint [32]byte `borsh:"key_fingerprint"`
	IssuedAtUnix   int64    `borsh:"issued_at_unix"`
}

// Fingerprint computes a stable identifier for key: SHA-256 of the
// big-endian encoding of its modulus followed by the big-endian
// encoding of its public exponent. It depends only on the public
// parts of the key, so PKCS#1 and PKCS#8 encodings of the same key
// produce the same fingerprint.
func Fingerprint(key *pemkey.RsaPrivateKey) [32]byte {
	k := key.K()
	// Modulus always fits in k bytes by definition of K(); the
	// exponent is encoded at its own minimal byte length since it has
	// no fixed width in the key format.
	nBytes, err := codec.I2OSP(key.Modulus, k)
	if err != nil {
		// Unreachable: k is derived from Modulus.BitLen() itself.
		panic(fmt.Sprintf("envelope: modulus does not fit its own byte length: %v", err))
	}
	eBytes := key.PublicExponent.Bytes()

	h := sha256.New()
	h.Write(nBytes)
	h.Write(eBytes)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Encode Borsh-serializes a into its binary envelope form.
func Encode(a SignedAssertion) ([]byte, error) {
	b, err := borsh.Serialize(a)
	if err != nil {
		return nil, fmt.Errorf("envelope: serialize: %w", err)
	}
	return b, nil
}

// Decode Borsh-deserializes envelopeBytes into a SignedAssertion.
func Decode(envelopeBytes []byte) (*SignedAssertion, error) {
	var a SignedAssertion
	if err := borsh.Deserialize(&a, envelopeBytes); err != nil {
		return nil, fmt.Errorf("envelope: deserialize: %w", err)
	}
	return &a, nil
}

// EncodeBase64 is Encode followed by standard base64 encoding, for
// embedding an envelope in text contexts (JSON fields, CLI output).
func EncodeBase64(a SignedAssertion) (string, error) {
	b, err := Encode(a)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeBase64 is the inverse of EncodeBase64.
func DecodeBase64(b64 string) (*SignedAssertion, error) {
	b, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("envelope: base64 decode: %w", err)
	}
	return Decode(b)
}
