package algebraic

import (
	"bytes"

	"github.com/iquerejeta/zkSVM/wire"
)

// EncodeTo appends the sum and average commitments followed by the
// sub-proofs.
func (p *AverageProof) EncodeTo(w *bytes.Buffer) {
	wire.WritePoint(w, &p.CSum)
	wire.WritePoint(w, &p.CAvg)
	p.IPA.EncodeTo(w)
	p.Opening.EncodeTo(w)
}

// DecodeFrom reads an average proof in the canonical layout.
func (p *AverageProof) DecodeFrom(r *wire.Reader) error {
	var err error
	if p.CSum, err = r.Point(); err != nil {
		return err
	}
	if p.CAvg, err = r.Point(); err != nil {
		return err
	}
	if err := p.IPA.DecodeFrom(r); err != nil {
		return err
	}
	return p.Opening.DecodeFrom(r)
}

// EncodeTo appends the commitments and aggregate points followed by the
// sub-proofs.
func (p *VarianceProof) EncodeTo(w *bytes.Buffer) {
	wire.WritePoint(w, &p.CxH)
	wire.WritePoint(w, &p.PG)
	wire.WritePoint(w, &p.PH)
	wire.WritePoint(w, &p.DD)
	wire.WritePoint(w, &p.CVar)
	p.Equality.EncodeTo(w)
	p.LinkG.EncodeTo(w)
	p.LinkH.EncodeTo(w)
	p.IPA.EncodeTo(w)
}

// DecodeFrom reads a variance proof in the canonical layout.
func (p *VarianceProof) DecodeFrom(r *wire.Reader) error {
	var err error
	if p.CxH, err = r.Point(); err != nil {
		return err
	}
	if p.PG, err = r.Point(); err != nil {
		return err
	}
	if p.PH, err = r.Point(); err != nil {
		return err
	}
	if p.DD, err = r.Point(); err != nil {
		return err
	}
	if p.CVar, err = r.Point(); err != nil {
		return err
	}
	if err := p.Equality.DecodeFrom(r); err != nil {
		return err
	}
	if err := p.LinkG.DecodeFrom(r); err != nil {
		return err
	}
	if err := p.LinkH.DecodeFrom(r); err != nil {
		return err
	}
	return p.IPA.DecodeFrom(r)
}

// EncodeTo appends the standard-deviation commitment and the square proof.
func (p *StdProof) EncodeTo(w *bytes.Buffer) {
	wire.WritePoint(w, &p.CStd)
	p.Square.EncodeTo(w)
}

// DecodeFrom reads a standard-deviation proof in the canonical layout.
func (p *StdProof) DecodeFrom(r *wire.Reader) error {
	var err error
	if p.CStd, err = r.Point(); err != nil {
		return err
	}
	return p.Square.DecodeFrom(r)
}

// EncodeTo appends the difference and shared inner-product commitments
// followed by the two arguments.
func (p *DiffProof) EncodeTo(w *bytes.Buffer) {
	wire.WritePoint(w, &p.Cd)
	wire.WritePoint(w, &p.V)
	p.DiffIPA.EncodeTo(w)
	p.BaseIPA.EncodeTo(w)
}

// DecodeFrom reads a difference proof in the canonical layout.
func (p *DiffProof) DecodeFrom(r *wire.Reader) error {
	var err error
	if p.Cd, err = r.Point(); err != nil {
		return err
	}
	if p.V, err = r.Point(); err != nil {
		return err
	}
	if err := p.DiffIPA.DecodeFrom(r); err != nil {
		return err
	}
	return p.BaseIPA.DecodeFrom(r)
}
