package svm

import (
	"bytes"

	"github.com/iquerejeta/zkSVM/wire"
)

// maxAxes bounds the axis count a decoder accepts.
const maxAxes = 1 << 10

// EncodeTo appends the padded length, the axis count, the axis proofs in
// order, the decision score and the decision link proof.
func (p *Proof) EncodeTo(w *bytes.Buffer) {
	wire.WriteUint32(w, p.N)
	wire.WriteUint32(w, uint32(len(p.Axes)))
	for i := range p.Axes {
		axis := &p.Axes[i]
		wire.WritePoint(w, &axis.Cx)
		axis.Average.EncodeTo(w)
		axis.Variance.EncodeTo(w)
		axis.Std.EncodeTo(w)
		axis.Diff.EncodeTo(w)
	}
	wire.WriteScalar(w, &p.Decision)
	p.Link.EncodeTo(w)
}

// Bytes serializes the proof.
func (p *Proof) Bytes() []byte {
	var buf bytes.Buffer
	p.EncodeTo(&buf)
	return buf.Bytes()
}

// DecodeFrom reads a proof in the canonical layout.
func (p *Proof) DecodeFrom(r *wire.Reader) error {
	var err error
	if p.N, err = r.Uint32(); err != nil {
		return err
	}
	count, err := r.Uint32()
	if err != nil {
		return err
	}
	if count == 0 || count > maxAxes {
		return wire.ErrFormat
	}
	p.Axes = make([]AxisProof, count)
	for i := range p.Axes {
		axis := &p.Axes[i]
		if axis.Cx, err = r.Point(); err != nil {
			return err
		}
		if err := axis.Average.DecodeFrom(r); err != nil {
			return err
		}
		if err := axis.Variance.DecodeFrom(r); err != nil {
			return err
		}
		if err := axis.Std.DecodeFrom(r); err != nil {
			return err
		}
		if err := axis.Diff.DecodeFrom(r); err != nil {
			return err
		}
	}
	if p.Decision, err = r.Scalar(); err != nil {
		return err
	}
	return p.Link.DecodeFrom(r)
}
