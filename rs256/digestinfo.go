package rs256

import "crypto/sha256"

// digestInfoPrefix is the fixed 19-byte ASN.1 DigestInfo prefix for
// SHA-256: SEQUENCE { SEQUENCE { OID sha256, NULL }, OCTET STRING }
// up to but not including the 32 hash bytes.
var digestInfoPrefix = []byte{
	0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48,
	0x01, 0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20,
}

// digestInfoLen is the total length of a SHA-256 DigestInfo: the
// 19-byte prefix plus a 32-byte hash.
const digestInfoLen = 19 + sha256.Size

// buildDigestInfo returns the 51-byte DigestInfo for message: the
// fixed prefix followed by SHA256(message).
func buildDigestInfo(message []byte) []byte {
	sum := sha256.Sum256(message)
	info := make([]byte, 0, digestInfoLen)
	info = append(info, digestInfoPrefix...)
	info = append(info, sum[:]...)
	return info
}
