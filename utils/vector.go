package utils

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var (
	// ErrEmptyVector reports an encode request with no samples.
	ErrEmptyVector = errors.New("utils: empty vector")
	// ErrOutOfRange reports a field element with no in-range signed
	// representative.
	ErrOutOfRange = errors.New("utils: value out of signed range")
)

// EncodeSigned maps a signed integer into the scalar field. Negative values
// map to the field negation of their magnitude, so field arithmetic on
// encoded values matches integer arithmetic as long as magnitudes stay far
// below the modulus.
func EncodeSigned(v int64) fr.Element {
	var out fr.Element
	if v >= 0 {
		out.SetUint64(uint64(v))
		return out
	}
	out.SetUint64(uint64(-v))
	out.Neg(&out)
	return out
}

// EncodeVector maps a slice of signed samples into field elements.
func EncodeVector(v []int64) ([]fr.Element, error) {
	if len(v) == 0 {
		return nil, ErrEmptyVector
	}
	out := make([]fr.Element, len(v))
	for i, s := range v {
		out[i] = EncodeSigned(s)
	}
	return out, nil
}

// DecodeSigned recovers the signed integer a field element encodes, using the
// centered representative: values above the modulus midpoint decode as
// negative. Fails when the representative does not fit in an int64.
func DecodeSigned(v *fr.Element) (int64, error) {
	var n big.Int
	v.BigInt(&n)

	modulus := fr.Modulus()
	var half big.Int
	half.Rsh(modulus, 1)

	neg := false
	if n.Cmp(&half) > 0 {
		n.Sub(modulus, &n)
		neg = true
	}
	if !n.IsInt64() {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, n.String())
	}
	out := n.Int64()
	if neg {
		out = -out
	}
	return out, nil
}

// PadToPowerOfTwo zero-fills a vector up to the next power of two. Statistics
// proved over a padded vector are statistics of the padded vector; the padded
// length is part of the public statement.
func PadToPowerOfTwo(v []fr.Element) []fr.Element {
	n := len(v)
	if n == 0 {
		return v
	}
	size := 1
	for size < n {
		size *= 2
	}
	if size == n {
		return v
	}
	out := make([]fr.Element, size)
	copy(out, v)
	return out
}
