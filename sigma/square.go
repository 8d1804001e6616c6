package sigma

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/transcript"
)

// SquareProof proves that two scalar commitments Cx and Cy open to values x
// and y with y = x^2. It runs two linked Schnorr proofs with a shared response
// Z: one for x over the base G, one for x over the base Cx. Since
// Cy = x*Cx + (ry - x*rx)*H when y = x^2, the second proof pins the square.
type SquareProof struct {
	A1  bn254.G1Affine
	A2  bn254.G1Affine
	Z   fr.Element
	ZR1 fr.Element
	ZR2 fr.Element
}

// ProveSquare proves y = x^2 given the openings (x, rx) of Cx and the blinding
// ry of Cy = x^2*G + ry*H.
func ProveSquare(params *pedersen.Params, t *transcript.Transcript, x, rx, ry *fr.Element) (*SquareProof, error) {
	cx := params.CommitScalar(x, rx)
	var y fr.Element
	y.Square(x)
	cy := params.CommitScalar(&y, ry)

	b, err := pedersen.RandomScalar()
	if err != nil {
		return nil, err
	}
	s1, err := pedersen.RandomScalar()
	if err != nil {
		return nil, err
	}
	s2, err := pedersen.RandomScalar()
	if err != nil {
		return nil, err
	}

	a1 := params.CommitScalar(&b, &s1)
	bCx := pedersen.Scale(&cx, &b)
	s2H := pedersen.Scale(&params.H, &s2)
	a2 := pedersen.Add(&bCx, &s2H)

	t.AppendPoint("square-Cx", &cx)
	t.AppendPoint("square-Cy", &cy)
	t.AppendPoint("square-A1", &a1)
	t.AppendPoint("square-A2", &a2)
	c := t.ChallengeScalar("square-c")

	// Blinding of Cy viewed as a commitment over the base pair (Cx, H).
	var ryShift, tmp fr.Element
	tmp.Mul(x, rx)
	ryShift.Sub(ry, &tmp)

	proof := &SquareProof{A1: a1, A2: a2}
	tmp.Mul(&c, x)
	proof.Z.Add(&b, &tmp)
	tmp.Mul(&c, rx)
	proof.ZR1.Add(&s1, &tmp)
	tmp.Mul(&c, &ryShift)
	proof.ZR2.Add(&s2, &tmp)
	return proof, nil
}

// Verify checks Z*G + ZR1*H == A1 + c*Cx and Z*Cx + ZR2*H == A2 + c*Cy.
func (p *SquareProof) Verify(params *pedersen.Params, t *transcript.Transcript, cx, cy *bn254.G1Affine) error {
	t.AppendPoint("square-Cx", cx)
	t.AppendPoint("square-Cy", cy)
	t.AppendPoint("square-A1", &p.A1)
	t.AppendPoint("square-A2", &p.A2)
	c := t.ChallengeScalar("square-c")

	var one fr.Element
	one.SetOne()

	ok, err := msmIsZero(
		[]bn254.G1Affine{p.A1, *cx, params.G, params.H},
		[]fr.Element{one, c, negated(&p.Z), negated(&p.ZR1)},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVerification
	}

	ok, err = msmIsZero(
		[]bn254.G1Affine{p.A2, *cy, *cx, params.H},
		[]fr.Element{one, c, negated(&p.Z), negated(&p.ZR2)},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVerification
	}
	return nil
}
