package ipa

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/transcript"
)

// ZKProof is the zero-knowledge inner-product argument. On top of the plain
// folding proof it carries the vector commitment A, the masking commitment S,
// the blinding-polynomial commitments T1 and T2, and the randomized
// evaluations t(x), tau(x), e that let the verifier check the commitment
// equations without learning the vectors or their inner product. The inner
// product itself lives in a separate Pedersen commitment V returned by Prove.
type ZKProof struct {
	A  bn254.G1Affine
	S  bn254.G1Affine
	T1 bn254.G1Affine
	T2 bn254.G1Affine

	TX         fr.Element
	TXBlinding fr.Element
	EBlinding  fr.Element

	Inner Proof
}

// Prove builds a zero-knowledge proof that <l, r> equals the value committed
// in the returned commitment V = <l,r>*G + vBlinding*H. aBlinding is the
// blinding factor of the vector commitment A = aBlinding*H + <l,Gs> + <r,Hs>;
// callers that pin A to an outer homomorphic combination choose it
// accordingly and verify with MatchesA.
func Prove(params *pedersen.Params, t *transcript.Transcript, l, r []fr.Element, vBlinding, aBlinding fr.Element) (*ZKProof, bn254.G1Affine, error) {
	if err := checkVectors(params, l, r); err != nil {
		return nil, bn254.G1Affine{}, err
	}
	n := len(l)

	c, err := InnerProduct(l, r)
	if err != nil {
		return nil, bn254.G1Affine{}, err
	}
	v := params.CommitScalar(&c, &vBlinding)

	a, err := vectorPairCommit(params, l, r, &aBlinding)
	if err != nil {
		return nil, bn254.G1Affine{}, err
	}

	// Masking vectors: the blinding step that upgrades the base protocol to
	// zero knowledge.
	sBlinding, err := pedersen.RandomScalar()
	if err != nil {
		return nil, bn254.G1Affine{}, err
	}
	sL, err := pedersen.RandomVector(n)
	if err != nil {
		return nil, bn254.G1Affine{}, err
	}
	sR, err := pedersen.RandomVector(n)
	if err != nil {
		return nil, bn254.G1Affine{}, err
	}
	s, err := vectorPairCommit(params, sL, sR, &sBlinding)
	if err != nil {
		return nil, bn254.G1Affine{}, err
	}

	// t(X) = <l + sL*X, r + sR*X> = c + t1*X + t2*X^2.
	lsR, err := InnerProduct(l, sR)
	if err != nil {
		return nil, bn254.G1Affine{}, err
	}
	sLr, err := InnerProduct(sL, r)
	if err != nil {
		return nil, bn254.G1Affine{}, err
	}
	var t1 fr.Element
	t1.Add(&lsR, &sLr)
	t2, err := InnerProduct(sL, sR)
	if err != nil {
		return nil, bn254.G1Affine{}, err
	}

	tau1, err := pedersen.RandomScalar()
	if err != nil {
		return nil, bn254.G1Affine{}, err
	}
	tau2, err := pedersen.RandomScalar()
	if err != nil {
		return nil, bn254.G1Affine{}, err
	}
	cT1 := params.CommitScalar(&t1, &tau1)
	cT2 := params.CommitScalar(&t2, &tau2)

	t.AppendPoint("V", &v)
	t.AppendPoint("A", &a)
	t.AppendPoint("S", &s)
	t.AppendPoint("T1", &cT1)
	t.AppendPoint("T2", &cT2)
	x := t.ChallengeScalar("x")

	var xSq fr.Element
	xSq.Square(&x)

	var tx, txBlinding, eBlinding, tmp fr.Element
	tx.Mul(&t1, &x)
	tmp.Mul(&t2, &xSq)
	tx.Add(&tx, &tmp)
	tx.Add(&tx, &c)

	txBlinding.Mul(&tau1, &x)
	tmp.Mul(&tau2, &xSq)
	txBlinding.Add(&txBlinding, &tmp)
	txBlinding.Add(&txBlinding, &vBlinding)

	eBlinding.Mul(&sBlinding, &x)
	eBlinding.Add(&eBlinding, &aBlinding)

	lx := make([]fr.Element, n)
	rx := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		tmp.Mul(&sL[i], &x)
		lx[i].Add(&l[i], &tmp)
		tmp.Mul(&sR[i], &x)
		rx[i].Add(&r[i], &tmp)
	}

	t.AppendScalar("t_x", &tx)
	t.AppendScalar("t_x_blinding", &txBlinding)
	t.AppendScalar("e_blinding", &eBlinding)
	w := t.ChallengeScalar("w")
	q := pedersen.Scale(&params.G, &w)

	gs := make([]bn254.G1Affine, n)
	hs := make([]bn254.G1Affine, n)
	copy(gs, params.Gs[:n])
	copy(hs, params.Hs[:n])
	inner, err := provePlain(t, &q, gs, hs, lx, rx)
	if err != nil {
		return nil, bn254.G1Affine{}, err
	}

	// The verifier draws a batching scalar here; the prover must absorb the
	// same challenge to keep both transcripts aligned for whatever proof
	// follows on them.
	_ = t.ChallengeScalar("batch")

	proof := &ZKProof{
		A: a, S: s, T1: cT1, T2: cT2,
		TX: tx, TXBlinding: txBlinding, EBlinding: eBlinding,
		Inner: *inner,
	}
	return proof, v, nil
}

// vectorPairCommit computes blinding*H + <l, Gs> + <r, Hs>.
func vectorPairCommit(params *pedersen.Params, l, r []fr.Element, blinding *fr.Element) (bn254.G1Affine, error) {
	n := len(l)
	points := make([]bn254.G1Affine, 0, 2*n+1)
	scalars := make([]fr.Element, 0, 2*n+1)
	points = append(points, params.H)
	scalars = append(scalars, *blinding)
	points = append(points, params.Gs[:n]...)
	scalars = append(scalars, l...)
	points = append(points, params.Hs[:n]...)
	scalars = append(scalars, r...)

	var out bn254.G1Affine
	if _, err := out.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return bn254.G1Affine{}, fmt.Errorf("ipa: multiexp: %w", err)
	}
	return out, nil
}

// MatchesA reports whether the proof's vector commitment equals an expected
// point. Algebraic proofs recompute the expected A homomorphically from outer
// commitments, which is what ties the IPA witness to them.
func (p *ZKProof) MatchesA(expected *bn254.G1Affine) bool {
	return p.A.Equal(expected)
}

// Verify checks the proof against the inner-product commitment V for vectors
// of length n. It returns ErrVerification (never panics) on any mismatch: the
// whole check is a single multiexp that must land on the identity, combining
// the folded rounds, the vector commitment equation, and the t(x) commitment
// equation under a transcript-derived batching scalar.
func (p *ZKProof) Verify(params *pedersen.Params, t *transcript.Transcript, v *bn254.G1Affine, n int) error {
	if n <= 0 || !isPowerOfTwo(n) || n > params.Capacity() {
		return fmt.Errorf("%w: n=%d", ErrLength, n)
	}

	t.AppendPoint("V", v)
	t.AppendPoint("A", &p.A)
	t.AppendPoint("S", &p.S)
	t.AppendPoint("T1", &p.T1)
	t.AppendPoint("T2", &p.T2)
	x := t.ChallengeScalar("x")

	t.AppendScalar("t_x", &p.TX)
	t.AppendScalar("t_x_blinding", &p.TXBlinding)
	t.AppendScalar("e_blinding", &p.EBlinding)
	w := t.ChallengeScalar("w")

	uSq, uInvSq, s, err := p.Inner.verificationScalars(n, t)
	if err != nil {
		return err
	}

	// Batching scalar for the two commitment equations. Derived after every
	// proof element is absorbed, so it is unpredictable at proving time.
	batch := t.ChallengeScalar("batch")

	a, b := p.Inner.A, p.Inner.B

	var xSq fr.Element
	xSq.Square(&x)

	// Scalar for T1: batch*x; for T2: batch*x^2.
	var sT1, sT2 fr.Element
	sT1.Mul(&batch, &x)
	sT2.Mul(&batch, &xSq)

	// Scalar for H: -e - batch*tau_x.
	var sH, tmp fr.Element
	sH.Mul(&batch, &p.TXBlinding)
	sH.Add(&sH, &p.EBlinding)
	sH.Neg(&sH)

	// Scalar for G: w*(t_x - a*b) - batch*t_x.
	var sG fr.Element
	tmp.Mul(&a, &b)
	sG.Sub(&p.TX, &tmp)
	sG.Mul(&sG, &w)
	tmp.Mul(&batch, &p.TX)
	sG.Sub(&sG, &tmp)

	rounds := len(p.Inner.L)
	total := 4 + 2*rounds + 2 + 2*n + 1
	points := make([]bn254.G1Affine, 0, total)
	scalars := make([]fr.Element, 0, total)

	var one fr.Element
	one.SetOne()
	points = append(points, p.A, p.S, p.T1, p.T2)
	scalars = append(scalars, one, x, sT1, sT2)
	points = append(points, p.Inner.L...)
	scalars = append(scalars, uSq...)
	points = append(points, p.Inner.R...)
	scalars = append(scalars, uInvSq...)
	points = append(points, params.H, params.G)
	scalars = append(scalars, sH, sG)
	for i := 0; i < n; i++ {
		var gi fr.Element
		gi.Mul(&a, &s[i])
		gi.Neg(&gi)
		points = append(points, params.Gs[i])
		scalars = append(scalars, gi)
	}
	for i := 0; i < n; i++ {
		var hi fr.Element
		hi.Mul(&b, &s[n-1-i])
		hi.Neg(&hi)
		points = append(points, params.Hs[i])
		scalars = append(scalars, hi)
	}
	points = append(points, *v)
	scalars = append(scalars, batch)

	var check bn254.G1Affine
	if _, err := check.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return fmt.Errorf("ipa: multiexp: %w", err)
	}
	if !check.IsInfinity() {
		return ErrVerification
	}
	return nil
}
