package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestSignedRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 42, -42, 1 << 40, -(1 << 40)} {
		enc := EncodeSigned(v)
		dec, err := DecodeSigned(&enc)
		require.NoError(t, err)
		require.Equal(t, v, dec)
	}
}

func TestSignedArithmetic(t *testing.T) {
	// Field arithmetic on encoded values matches integer arithmetic.
	a := EncodeSigned(-7)
	b := EncodeSigned(10)
	var sum fr.Element
	sum.Add(&a, &b)
	dec, err := DecodeSigned(&sum)
	require.NoError(t, err)
	require.Equal(t, int64(3), dec)
}

func TestDecodeOutOfRange(t *testing.T) {
	var huge fr.Element
	huge.SetUint64(1)
	for i := 0; i < 80; i++ {
		huge.Double(&huge)
	}
	_, err := DecodeSigned(&huge)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestEncodeVector(t *testing.T) {
	enc, err := EncodeVector([]int64{1, -2, 3})
	require.NoError(t, err)
	require.Len(t, enc, 3)

	_, err = EncodeVector(nil)
	require.ErrorIs(t, err, ErrEmptyVector)
}

func TestPadToPowerOfTwo(t *testing.T) {
	v, err := EncodeVector([]int64{1, 2, 3})
	require.NoError(t, err)
	padded := PadToPowerOfTwo(v)
	require.Len(t, padded, 4)
	require.True(t, padded[3].IsZero())

	// Already a power of two: unchanged.
	v, err = EncodeVector([]int64{1, 2, 3, 4})
	require.NoError(t, err)
	require.Len(t, PadToPowerOfTwo(v), 4)
}

func TestFixedPointRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1.5, -2.25, 9.80665} {
		require.InDelta(t, f, FixedToFloat(FloatToFixed(f)), 1.0/ScalingFactor)
	}
}

func TestLoadTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	data := "ax,ay,az\n1.0,2.0,3.0\n-1.5,0.0,2.5\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	axes, err := LoadTrace(path)
	require.NoError(t, err)
	require.Len(t, axes, 3)
	require.Len(t, axes[0], 2)
	require.Equal(t, FloatToFixed(1.0), axes[0][0])
	require.Equal(t, FloatToFixed(-1.5), axes[0][1])
	require.Equal(t, FloatToFixed(2.5), axes[2][1])
}

func TestLoadTraceRagged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	data := "ax,ay\n1.0,2.0\n1.0\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := LoadTrace(path)
	require.Error(t, err)
}

func TestLoadModelParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.txt")
	data := "threshold: 50\n1\n-2\n3\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	weights, threshold, err := LoadModelParameters(path)
	require.NoError(t, err)
	require.Equal(t, int64(50), threshold)
	require.Equal(t, []int64{1, -2, 3}, weights)

	bad := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("1\n2\n"), 0o644))
	_, _, err = LoadModelParameters(bad)
	require.Error(t, err)
}
