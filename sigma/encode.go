package sigma

import (
	"bytes"

	"github.com/iquerejeta/zkSVM/wire"
)

// maxResponses bounds the response-vector length a decoder accepts.
const maxResponses = 1 << 20

// EncodeTo appends the announcement, the response count, the responses, and
// the blinding response.
func (p *OpeningProof) EncodeTo(w *bytes.Buffer) {
	wire.WritePoint(w, &p.A)
	wire.WriteUint32(w, uint32(len(p.Z)))
	for i := range p.Z {
		wire.WriteScalar(w, &p.Z[i])
	}
	wire.WriteScalar(w, &p.ZR)
}

// DecodeFrom reads an opening proof in the canonical layout.
func (p *OpeningProof) DecodeFrom(r *wire.Reader) error {
	var err error
	if p.A, err = r.Point(); err != nil {
		return err
	}
	n, err := r.Uint32()
	if err != nil {
		return err
	}
	if n > maxResponses {
		return wire.ErrFormat
	}
	p.Z = p.Z[:0]
	for i := uint32(0); i < n; i++ {
		z, err := r.Scalar()
		if err != nil {
			return err
		}
		p.Z = append(p.Z, z)
	}
	p.ZR, err = r.Scalar()
	return err
}

// EncodeTo appends both announcements, the shared responses, and the two
// blinding responses.
func (p *EqualityProof) EncodeTo(w *bytes.Buffer) {
	wire.WritePoint(w, &p.A1)
	wire.WritePoint(w, &p.A2)
	wire.WriteUint32(w, uint32(len(p.Z)))
	for i := range p.Z {
		wire.WriteScalar(w, &p.Z[i])
	}
	wire.WriteScalar(w, &p.ZR1)
	wire.WriteScalar(w, &p.ZR2)
}

// DecodeFrom reads an equality proof in the canonical layout.
func (p *EqualityProof) DecodeFrom(r *wire.Reader) error {
	var err error
	if p.A1, err = r.Point(); err != nil {
		return err
	}
	if p.A2, err = r.Point(); err != nil {
		return err
	}
	n, err := r.Uint32()
	if err != nil {
		return err
	}
	if n > maxResponses {
		return wire.ErrFormat
	}
	p.Z = p.Z[:0]
	for i := uint32(0); i < n; i++ {
		z, err := r.Scalar()
		if err != nil {
			return err
		}
		p.Z = append(p.Z, z)
	}
	if p.ZR1, err = r.Scalar(); err != nil {
		return err
	}
	p.ZR2, err = r.Scalar()
	return err
}

// EncodeTo appends the two announcements and three responses.
func (p *SquareProof) EncodeTo(w *bytes.Buffer) {
	wire.WritePoint(w, &p.A1)
	wire.WritePoint(w, &p.A2)
	wire.WriteScalar(w, &p.Z)
	wire.WriteScalar(w, &p.ZR1)
	wire.WriteScalar(w, &p.ZR2)
}

// DecodeFrom reads a square proof in the canonical layout.
func (p *SquareProof) DecodeFrom(r *wire.Reader) error {
	var err error
	if p.A1, err = r.Point(); err != nil {
		return err
	}
	if p.A2, err = r.Point(); err != nil {
		return err
	}
	if p.Z, err = r.Scalar(); err != nil {
		return err
	}
	if p.ZR1, err = r.Scalar(); err != nil {
		return err
	}
	p.ZR2, err = r.Scalar()
	return err
}

// EncodeTo appends the two announcements and two responses.
func (p *LinkProof) EncodeTo(w *bytes.Buffer) {
	wire.WritePoint(w, &p.A1)
	wire.WritePoint(w, &p.A2)
	wire.WriteScalar(w, &p.Z)
	wire.WriteScalar(w, &p.ZR)
}

// DecodeFrom reads a link proof in the canonical layout.
func (p *LinkProof) DecodeFrom(r *wire.Reader) error {
	var err error
	if p.A1, err = r.Point(); err != nil {
		return err
	}
	if p.A2, err = r.Point(); err != nil {
		return err
	}
	if p.Z, err = r.Scalar(); err != nil {
		return err
	}
	p.ZR, err = r.Scalar()
	return err
}

// EncodeTo appends the announcement and response.
func (p *DLogProof) EncodeTo(w *bytes.Buffer) {
	wire.WritePoint(w, &p.A)
	wire.WriteScalar(w, &p.Z)
}

// DecodeFrom reads a Schnorr proof in the canonical layout.
func (p *DLogProof) DecodeFrom(r *wire.Reader) error {
	var err error
	if p.A, err = r.Point(); err != nil {
		return err
	}
	p.Z, err = r.Scalar()
	return err
}
