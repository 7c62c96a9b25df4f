package der

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInteger(t *testing.T) {
	t.Run("strips leading zero sign-pad", func(t *testing.T) {
		// INTEGER with content 0x00 0x80: the 0x00 is a sign pad since
		// 0x80 has its high bit set. Decoded value must be 0x80, not
		// 0x0080.
		buf := []byte{TagInteger, 0x02, 0x00, 0x80}
		r := NewReader(buf)

		v, err := r.ReadInteger()
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(0x80), v)
		assert.True(t, r.AtEnd())
	})

	t.Run("no strip when not a sign pad", func(t *testing.T) {
		// 0x00 0x7F: 0x7F does not have its high bit set, so no pad is
		// present to strip (this content is already the minimal
		// encoding).
		buf := []byte{TagInteger, 0x02, 0x00, 0x7f}
		r := NewReader(buf)

		v, err := r.ReadInteger()
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(0x7f), v)
	})

	t.Run("small value", func(t *testing.T) {
		buf := []byte{TagInteger, 0x01, 0x00}
		r := NewReader(buf)

		v, err := r.ReadInteger()
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(0), v)
	})

	t.Run("truncated content errors", func(t *testing.T) {
		r := NewReader([]byte{TagInteger, 0x05, 0x01})
		_, err := r.ReadInteger()
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("tag mismatch errors", func(t *testing.T) {
		r := NewReader([]byte{TagNull, 0x00})
		_, err := r.ReadInteger()
		assert.Error(t, err)
	})
}

func TestReadLongFormLength(t *testing.T) {
	content := make([]byte, 300)
	for i := range content {
		content[i] = byte(i)
	}
	buf := append([]byte{TagOctetString, 0x82, 0x01, 0x2c}, content...)

	r := NewReader(buf)
	got, err := r.ReadOctetString()
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.True(t, r.AtEnd())
}

func TestReadSequence(t *testing.T) {
	t.Run("scopes a sub-reader to its content", func(t *testing.T) {
		inner := []byte{TagInteger, 0x01, 0x05}
		buf := append([]byte{TagSequence, byte(len(inner))}, inner...)

		r := NewReader(buf)
		seq, err := r.ReadSequence()
		require.NoError(t, err)
		assert.True(t, r.AtEnd())

		v, err := seq.ReadInteger()
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(5), v)
		assert.True(t, seq.AtEnd())
	})
}

func TestReadObjectID(t *testing.T) {
	t.Run("rsaEncryption", func(t *testing.T) {
		// 06 09 2A 86 48 86 F7 0D 01 01 01 -> 1.2.840.113549.1.1.1
		buf := []byte{TagObjectID, 0x09, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x01}
		r := NewReader(buf)

		oid, err := r.ReadObjectID()
		require.NoError(t, err)
		assert.Equal(t, "1.2.840.113549.1.1.1", oid)
	})
}

func TestReadNull(t *testing.T) {
	r := NewReader([]byte{TagNull, 0x00})
	require.NoError(t, r.ReadNull())
}
