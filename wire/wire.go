// Package wire implements the canonical byte encoding shared by all proof
// objects: compressed group elements, canonical field elements, big-endian
// counts. Field order is significant: verification re-derives transcript
// challenges from the serialized order, so re-ordering breaks otherwise-valid
// proofs. Decoding is total: malformed bytes surface as ErrFormat, never as a
// panic.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrFormat reports a serialized point or scalar that does not decode to a
// valid group or field element, or a truncated buffer.
var ErrFormat = errors.New("wire: malformed encoding")

const (
	pointSize  = bn254.SizeOfG1AffineCompressed
	scalarSize = fr.Bytes
)

// WritePoint appends the compressed encoding of a point.
func WritePoint(w *bytes.Buffer, p *bn254.G1Affine) {
	buf := p.Bytes()
	w.Write(buf[:])
}

// WriteScalar appends the canonical big-endian encoding of a scalar.
func WriteScalar(w *bytes.Buffer, s *fr.Element) {
	buf := s.Bytes()
	w.Write(buf[:])
}

// WriteUint32 appends a big-endian count.
func WriteUint32(w *bytes.Buffer, v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	w.Write(buf[:])
}

// Reader decodes a proof buffer sequentially.
type Reader struct {
	buf []byte
	off int
}

// NewReader wraps a serialized proof.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

func (r *Reader) take(n int) ([]byte, error) {
	if len(r.buf)-r.off < n {
		return nil, fmt.Errorf("%w: truncated at offset %d", ErrFormat, r.off)
	}
	out := r.buf[r.off : r.off+n]
	r.off += n
	return out, nil
}

// Point decodes a compressed group element, enforcing curve and subgroup
// membership.
func (r *Reader) Point() (bn254.G1Affine, error) {
	raw, err := r.take(pointSize)
	if err != nil {
		return bn254.G1Affine{}, err
	}
	var p bn254.G1Affine
	if _, err := p.SetBytes(raw); err != nil {
		return bn254.G1Affine{}, fmt.Errorf("%w: invalid point: %v", ErrFormat, err)
	}
	return p, nil
}

// Scalar decodes a canonical field element, rejecting non-reduced encodings.
func (r *Reader) Scalar() (fr.Element, error) {
	raw, err := r.take(scalarSize)
	if err != nil {
		return fr.Element{}, err
	}
	var s fr.Element
	if err := s.SetBytesCanonical(raw); err != nil {
		return fr.Element{}, fmt.Errorf("%w: non-canonical scalar: %v", ErrFormat, err)
	}
	return s, nil
}

// Uint32 decodes a big-endian count.
func (r *Reader) Uint32() (uint32, error) {
	raw, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(raw), nil
}

// Done reports an error unless the buffer was fully consumed. Trailing bytes
// in an adversarial proof must not be silently ignored.
func (r *Reader) Done() error {
	if r.off != len(r.buf) {
		return fmt.Errorf("%w: %d trailing bytes", ErrFormat, len(r.buf)-r.off)
	}
	return nil
}
