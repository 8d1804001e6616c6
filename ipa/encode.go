package ipa

import (
	"bytes"

	"github.com/iquerejeta/zkSVM/wire"
)

// EncodeTo appends the canonical encoding: four points A, S, T1, T2, three
// scalars t_x, tau_x, e, the round count, the (L, R) pairs in round order,
// and the two final folded scalars.
func (p *ZKProof) EncodeTo(w *bytes.Buffer) {
	wire.WritePoint(w, &p.A)
	wire.WritePoint(w, &p.S)
	wire.WritePoint(w, &p.T1)
	wire.WritePoint(w, &p.T2)
	wire.WriteScalar(w, &p.TX)
	wire.WriteScalar(w, &p.TXBlinding)
	wire.WriteScalar(w, &p.EBlinding)
	wire.WriteUint32(w, uint32(len(p.Inner.L)))
	for i := range p.Inner.L {
		wire.WritePoint(w, &p.Inner.L[i])
		wire.WritePoint(w, &p.Inner.R[i])
	}
	wire.WriteScalar(w, &p.Inner.A)
	wire.WriteScalar(w, &p.Inner.B)
}

// Bytes serializes the proof.
func (p *ZKProof) Bytes() []byte {
	var buf bytes.Buffer
	p.EncodeTo(&buf)
	return buf.Bytes()
}

// maxRounds bounds the round count a decoder will accept; 2^32 generators is
// far beyond any parameter set.
const maxRounds = 32

// DecodeFrom reads a proof in the canonical layout.
func (p *ZKProof) DecodeFrom(r *wire.Reader) error {
	var err error
	if p.A, err = r.Point(); err != nil {
		return err
	}
	if p.S, err = r.Point(); err != nil {
		return err
	}
	if p.T1, err = r.Point(); err != nil {
		return err
	}
	if p.T2, err = r.Point(); err != nil {
		return err
	}
	if p.TX, err = r.Scalar(); err != nil {
		return err
	}
	if p.TXBlinding, err = r.Scalar(); err != nil {
		return err
	}
	if p.EBlinding, err = r.Scalar(); err != nil {
		return err
	}
	rounds, err := r.Uint32()
	if err != nil {
		return err
	}
	if rounds > maxRounds {
		return wire.ErrFormat
	}
	p.Inner.L = p.Inner.L[:0]
	p.Inner.R = p.Inner.R[:0]
	for i := uint32(0); i < rounds; i++ {
		l, err := r.Point()
		if err != nil {
			return err
		}
		rr, err := r.Point()
		if err != nil {
			return err
		}
		p.Inner.L = append(p.Inner.L, l)
		p.Inner.R = append(p.Inner.R, rr)
	}
	if p.Inner.A, err = r.Scalar(); err != nil {
		return err
	}
	if p.Inner.B, err = r.Scalar(); err != nil {
		return err
	}
	return nil
}
