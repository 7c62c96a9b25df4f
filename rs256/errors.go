package rs256

import "errors"

// ErrMessageTooLong is returned by Sign when the modulus is too short
// to hold the EMSA-PKCS1-v1_5 encoded message: k must be at least
// 51 (DigestInfo) + 11 (0x00 0x01 PS 0x00, with |PS| >= 8) = 62 bytes.
var ErrMessageTooLong = errors.New("rs256: modulus too short to hold padded DigestInfo")

// ErrIntegerOutOfRange is returned by Sign when the message
// representative m is not less than the modulus n. This cannot occur
// for a well-formed EM (which always starts 0x00 0x01) but is checked
// defensively per RFC 8017 §8.2.1 step 2.b.
var ErrIntegerOutOfRange = errors.New("rs256: message representative out of range")
