package pemkey

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/anchorageoss/rs256signer/internal/der"
)

// ErrUnsupportedKeyFormat is returned when the PEM armour label is
// neither "RSA PRIVATE KEY" nor "PRIVATE KEY" (including any
// ENCRYPTED, EC, DSA, or PUBLIC KEY label), or when a PKCS#8
// AlgorithmIdentifier names an OID other than rsaEncryption.
var ErrUnsupportedKeyFormat = errors.New("pemkey: unsupported key format")

// ErrMalformedKey is returned when base64 decoding or ASN.1 structural
// parsing fails any invariant of the PKCS#1/PKCS#8 layout.
var ErrMalformedKey = errors.New("pemkey: malformed key")

// rsaEncryptionOID is the PKCS#1 AlgorithmIdentifier OID a PKCS#8
// PrivateKeyInfo must carry: 1.2.840.113549.1.1.1.
const rsaEncryptionOID = "1.2.840.113549.1.1.1"

const (
	labelPKCS1 = "RSA PRIVATE KEY"
	labelPKCS8 = "PRIVATE KEY"
)

// Decode parses a PEM-armoured RSA private key. The label of the
// first "-----BEGIN ...-----" / "-----END ...-----" block selects the
// parsing mode: PKCS#1 for "RSA PRIVATE KEY", PKCS#8 for
// "PRIVATE KEY". Any other label is ErrUnsupportedKeyFormat.
func Decode(pemText string) (*RsaPrivateKey, error) {
	label, body, err := splitPEM(pemText)
	if err != nil {
		return nil, err
	}

	derBytes, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: base64 decode failed: %v", ErrMalformedKey, err)
	}

	switch label {
	case labelPKCS1:
		return parsePKCS1(derBytes)
	case labelPKCS8:
		return parsePKCS8(derBytes)
	default:
		return nil, fmt.Errorf("%w: unrecognized PEM label %q", ErrUnsupportedKeyFormat, label)
	}
}

// splitPEM extracts the armour label and the whitespace-stripped
// base64 body between the first matching BEGIN/END delimiter pair.
func splitPEM(pemText string) (label, body string, err error) {
	const delim = "-----"

	beginIdx := strings.Index(pemText, delim+"BEGIN ")
	if beginIdx == -1 {
		return "", "", fmt.Errorf("%w: no PEM BEGIN delimiter found", ErrMalformedKey)
	}
	rest := pemText[beginIdx+len(delim)+len("BEGIN "):]

	endOfLabel := strings.Index(rest, delim)
	if endOfLabel == -1 {
		return "", "", fmt.Errorf("%w: unterminated PEM BEGIN delimiter", ErrMalformedKey)
	}
	label = rest[:endOfLabel]
	rest = rest[endOfLabel+len(delim):]

	endDelim := delim + "END " + label + delim
	endIdx := strings.Index(rest, endDelim)
	if endIdx == -1 {
		return "", "", fmt.Errorf("%w: no matching PEM END delimiter for label %q", ErrMalformedKey, label)
	}

	body = stripWhitespace(rest[:endIdx])
	return label, body, nil
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parsePKCS1 parses a PKCS#1 RSAPrivateKey: an outer SEQUENCE
// containing nine consecutive INTEGER fields (version, n, e, d, p, q,
// dP, dQ, qInv).
func parsePKCS1(body []byte) (*RsaPrivateKey, error) {
	seq, err := der.NewReader(body).ReadSequence()
	if err != nil {
		return nil, malformed("PKCS#1 outer SEQUENCE", err)
	}

	version, err := seq.ReadSmallInteger()
	if err != nil {
		return nil, malformed("PKCS#1 version", err)
	}
	if version != 0 {
		return nil, fmt.Errorf("%w: unsupported PKCS#1 version %d", ErrMalformedKey, version)
	}

	key := &RsaPrivateKey{Version: version}

	ints, err := readIntegers(seq, 8)
	if err != nil {
		return nil, malformed("PKCS#1 key components", err)
	}

	key.Modulus = ints[0]
	key.PublicExponent = ints[1]
	key.PrivateExponent = ints[2]
	key.Prime1 = ints[3]
	key.Prime2 = ints[4]
	key.Exponent1 = ints[5]
	key.Exponent2 = ints[6]
	key.Coefficient = ints[7]

	return key, nil
}

// readIntegers reads exactly n consecutive INTEGER fields from r.
func readIntegers(r *der.Reader, n int) ([]*big.Int, error) {
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		v, err := r.ReadInteger()
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// parsePKCS8 parses a PKCS#8 PrivateKeyInfo: version INTEGER (must be
// 0), AlgorithmIdentifier SEQUENCE (OID must be rsaEncryption, NULL
// parameters ignored), then an OCTET STRING whose content is a
// PKCS#1 RSAPrivateKey DER blob.
func parsePKCS8(body []byte) (*RsaPrivateKey, error) {
	seq, err := der.NewReader(body).ReadSequence()
	if err != nil {
		return nil, malformed("PKCS#8 outer SEQUENCE", err)
	}

	version, err := seq.ReadSmallInteger()
	if err != nil {
		return nil, malformed("PKCS#8 version", err)
	}
	if version != 0 {
		return nil, fmt.Errorf("%w: unsupported PKCS#8 version %d", ErrMalformedKey, version)
	}

	algSeq, err := seq.ReadSequence()
	if err != nil {
		return nil, malformed("PKCS#8 AlgorithmIdentifier", err)
	}
	oid, err := algSeq.ReadObjectID()
	if err != nil {
		return nil, malformed("PKCS#8 algorithm OID", err)
	}
	if oid != rsaEncryptionOID {
		return nil, fmt.Errorf("%w: PKCS#8 algorithm OID %q is not rsaEncryption", ErrUnsupportedKeyFormat, oid)
	}
	// Parameters, if present, are a NULL for rsaEncryption; ignored.
	if !algSeq.AtEnd() {
		_ = algSeq.ReadNull()
	}

	keyBytes, err := seq.ReadOctetString()
	if err != nil {
		return nil, malformed("PKCS#8 privateKey OCTET STRING", err)
	}

	return parsePKCS1(keyBytes)
}

func malformed(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedKey, what, err)
}
