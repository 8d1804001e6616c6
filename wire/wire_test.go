package wire

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	_, _, g, _ := bn254.Generators()
	var s fr.Element
	s.SetUint64(12345)

	var buf bytes.Buffer
	WritePoint(&buf, &g)
	WriteScalar(&buf, &s)
	WriteUint32(&buf, 7)

	r := NewReader(buf.Bytes())
	p, err := r.Point()
	require.NoError(t, err)
	require.True(t, p.Equal(&g))
	got, err := r.Scalar()
	require.NoError(t, err)
	require.True(t, got.Equal(&s))
	n, err := r.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(7), n)
	require.NoError(t, r.Done())
}

func TestTruncated(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	_, err := r.Point()
	require.ErrorIs(t, err, ErrFormat)
	_, err = NewReader(nil).Scalar()
	require.ErrorIs(t, err, ErrFormat)
	_, err = NewReader([]byte{0x01}).Uint32()
	require.ErrorIs(t, err, ErrFormat)
}

func TestNonCanonicalScalar(t *testing.T) {
	// The field modulus itself is not a canonical encoding.
	raw := fr.Modulus().Bytes()
	padded := make([]byte, fr.Bytes)
	copy(padded[fr.Bytes-len(raw):], raw)

	_, err := NewReader(padded).Scalar()
	require.ErrorIs(t, err, ErrFormat)
}

func TestTrailingBytes(t *testing.T) {
	var s fr.Element
	s.SetUint64(1)
	var buf bytes.Buffer
	WriteScalar(&buf, &s)
	buf.WriteByte(0x00)

	r := NewReader(buf.Bytes())
	_, err := r.Scalar()
	require.NoError(t, err)
	require.ErrorIs(t, r.Done(), ErrFormat)
}
