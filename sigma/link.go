package sigma

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/transcript"
)

// LinkProof proves that a scalar commitment C = x*G + r*H and a bare point
// P = x*K share the same exponent x, without revealing x or r. The algebraic
// layer uses it to tie published aggregate points to committed sums.
type LinkProof struct {
	A1 bn254.G1Affine
	A2 bn254.G1Affine
	Z  fr.Element
	ZR fr.Element
}

// ProveLink proves that C = x*G + r*H and P = x*K share x, over an arbitrary
// link base K.
func ProveLink(params *pedersen.Params, t *transcript.Transcript, x, r *fr.Element, k *bn254.G1Affine) (*LinkProof, error) {
	commitment := params.CommitScalar(x, r)
	point := pedersen.Scale(k, x)

	b, err := pedersen.RandomScalar()
	if err != nil {
		return nil, err
	}
	s, err := pedersen.RandomScalar()
	if err != nil {
		return nil, err
	}
	a1 := params.CommitScalar(&b, &s)
	a2 := pedersen.Scale(k, &b)

	t.AppendPoint("link-C", &commitment)
	t.AppendPoint("link-P", &point)
	t.AppendPoint("link-K", k)
	t.AppendPoint("link-A1", &a1)
	t.AppendPoint("link-A2", &a2)
	c := t.ChallengeScalar("link-c")

	proof := &LinkProof{A1: a1, A2: a2}
	var tmp fr.Element
	tmp.Mul(&c, x)
	proof.Z.Add(&b, &tmp)
	tmp.Mul(&c, r)
	proof.ZR.Add(&s, &tmp)
	return proof, nil
}

// Verify checks Z*G + ZR*H == A1 + c*C and Z*K == A2 + c*P.
func (p *LinkProof) Verify(params *pedersen.Params, t *transcript.Transcript, commitment, point, k *bn254.G1Affine) error {
	t.AppendPoint("link-C", commitment)
	t.AppendPoint("link-P", point)
	t.AppendPoint("link-K", k)
	t.AppendPoint("link-A1", &p.A1)
	t.AppendPoint("link-A2", &p.A2)
	c := t.ChallengeScalar("link-c")

	var one fr.Element
	one.SetOne()

	ok, err := msmIsZero(
		[]bn254.G1Affine{p.A1, *commitment, params.G, params.H},
		[]fr.Element{one, c, negated(&p.Z), negated(&p.ZR)},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVerification
	}

	ok, err = msmIsZero(
		[]bn254.G1Affine{p.A2, *point, *k},
		[]fr.Element{one, c, negated(&p.Z)},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVerification
	}
	return nil
}

// DLogProof is a Schnorr proof of knowledge of x in P = x*K.
type DLogProof struct {
	A bn254.G1Affine
	Z fr.Element
}

// ProveDLog proves knowledge of the exponent x of P = x*K.
func ProveDLog(t *transcript.Transcript, x *fr.Element, k *bn254.G1Affine) (*DLogProof, error) {
	point := pedersen.Scale(k, x)

	b, err := pedersen.RandomScalar()
	if err != nil {
		return nil, err
	}
	a := pedersen.Scale(k, &b)

	t.AppendPoint("dlog-P", &point)
	t.AppendPoint("dlog-K", k)
	t.AppendPoint("dlog-A", &a)
	c := t.ChallengeScalar("dlog-c")

	proof := &DLogProof{A: a}
	proof.Z.Mul(&c, x)
	proof.Z.Add(&proof.Z, &b)
	return proof, nil
}

// Verify checks Z*K == A + c*P.
func (p *DLogProof) Verify(t *transcript.Transcript, point, k *bn254.G1Affine) error {
	t.AppendPoint("dlog-P", point)
	t.AppendPoint("dlog-K", k)
	t.AppendPoint("dlog-A", &p.A)
	c := t.ChallengeScalar("dlog-c")

	var one fr.Element
	one.SetOne()
	ok, err := msmIsZero(
		[]bn254.G1Affine{p.A, *point, *k},
		[]fr.Element{one, c, negated(&p.Z)},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVerification
	}
	return nil
}
