// Package ipa implements the inner-product argument: a recursive-folding
// proof that two committed vectors have a claimed inner product. Two variants
// share the folding core. The plain argument (Proof) is the base Bulletproofs
// construction and publishes the final folded scalars directly; the
// zero-knowledge layer (ZKProof) masks the witness vectors with a random
// blinding polynomial first, so neither the vectors nor the inner product
// leak.
package ipa

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/transcript"
)

var (
	// ErrVerification reports a proof that failed its equation check.
	ErrVerification = errors.New("ipa: verification failed")
	// ErrLength reports vectors whose length is zero, mismatched, not a
	// power of two, or beyond generator capacity.
	ErrLength = errors.New("ipa: invalid vector length")
)

// Proof is the plain (non zero-knowledge) inner-product argument: one (L, R)
// commitment pair per folding round plus the final folded scalars. A vector
// of length 1 folds in zero rounds.
type Proof struct {
	L []bn254.G1Affine
	R []bn254.G1Affine
	A fr.Element
	B fr.Element
}

// InnerProduct computes <a, b>.
func InnerProduct(a, b []fr.Element) (fr.Element, error) {
	if len(a) != len(b) {
		return fr.Element{}, fmt.Errorf("%w: %d vs %d", ErrLength, len(a), len(b))
	}
	var out, term fr.Element
	for i := range a {
		term.Mul(&a[i], &b[i])
		out.Add(&out, &term)
	}
	return out, nil
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// checkVectors validates the common length contract.
func checkVectors(params *pedersen.Params, a, b []fr.Element) error {
	n := len(a)
	switch {
	case n == 0:
		return fmt.Errorf("%w: empty vector", ErrLength)
	case len(b) != n:
		return fmt.Errorf("%w: %d vs %d", ErrLength, n, len(b))
	case !isPowerOfTwo(n):
		return fmt.Errorf("%w: %d is not a power of two", ErrLength, n)
	case n > params.Capacity():
		return fmt.Errorf("%w: %d exceeds generator capacity %d", ErrLength, n, params.Capacity())
	}
	return nil
}

// provePlain runs the recursive folding over mutable copies of the inputs.
// One round per bit of log2(n): split in halves, commit the cross inner
// products as L and R, fold under the transcript challenge, halve.
func provePlain(t *transcript.Transcript, q *bn254.G1Affine, gs, hs []bn254.G1Affine, a, b []fr.Element) (*Proof, error) {
	n := len(a)
	t.AppendUint64("ipa-n", uint64(n))

	rounds := bits.TrailingZeros(uint(n))
	proof := &Proof{
		L: make([]bn254.G1Affine, 0, rounds),
		R: make([]bn254.G1Affine, 0, rounds),
	}

	for n > 1 {
		half := n / 2
		aL, aR := a[:half], a[half:n]
		bL, bR := b[:half], b[half:n]
		gL, gR := gs[:half], gs[half:n]
		hL, hR := hs[:half], hs[half:n]

		cL, err := InnerProduct(aL, bR)
		if err != nil {
			return nil, err
		}
		cR, err := InnerProduct(aR, bL)
		if err != nil {
			return nil, err
		}

		l, err := crossCommit(gR, hL, q, aL, bR, &cL)
		if err != nil {
			return nil, err
		}
		r, err := crossCommit(gL, hR, q, aR, bL, &cR)
		if err != nil {
			return nil, err
		}
		proof.L = append(proof.L, l)
		proof.R = append(proof.R, r)

		t.AppendPoint("L", &l)
		t.AppendPoint("R", &r)
		u := t.ChallengeScalar("u")
		var uInv fr.Element
		uInv.Inverse(&u)

		for i := 0; i < half; i++ {
			var t1, t2 fr.Element
			// a' = aL*u + aR*u^-1
			t1.Mul(&aL[i], &u)
			t2.Mul(&aR[i], &uInv)
			a[i].Add(&t1, &t2)
			// b' = bL*u^-1 + bR*u
			t1.Mul(&bL[i], &uInv)
			t2.Mul(&bR[i], &u)
			b[i].Add(&t1, &t2)
			// G' = GL*u^-1 + GR*u, H' = HL*u + HR*u^-1
			gs[i] = foldPoints(&gL[i], &gR[i], &uInv, &u)
			hs[i] = foldPoints(&hL[i], &hR[i], &u, &uInv)
		}
		n = half
	}

	proof.A = a[0]
	proof.B = b[0]
	return proof, nil
}

// crossCommit computes <x, gs> + <y, hs> + c*Q in one multiexp.
func crossCommit(gs, hs []bn254.G1Affine, q *bn254.G1Affine, x, y []fr.Element, c *fr.Element) (bn254.G1Affine, error) {
	points := make([]bn254.G1Affine, 0, len(gs)+len(hs)+1)
	scalars := make([]fr.Element, 0, len(x)+len(y)+1)
	points = append(points, gs...)
	scalars = append(scalars, x...)
	points = append(points, hs...)
	scalars = append(scalars, y...)
	points = append(points, *q)
	scalars = append(scalars, *c)

	var out bn254.G1Affine
	if _, err := out.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return bn254.G1Affine{}, fmt.Errorf("ipa: multiexp: %w", err)
	}
	return out, nil
}

func foldPoints(p1, p2 *bn254.G1Affine, k1, k2 *fr.Element) bn254.G1Affine {
	a := pedersen.Scale(p1, k1)
	b := pedersen.Scale(p2, k2)
	a.Add(&a, &b)
	return a
}

// verificationScalars replays the round transcript and returns the squared
// challenges, their inverses, and the s vector of folded challenge products
// used to undo all rounds in a single multiexp.
func (p *Proof) verificationScalars(n int, t *transcript.Transcript) (uSq, uInvSq, s []fr.Element, err error) {
	if !isPowerOfTwo(n) {
		return nil, nil, nil, fmt.Errorf("%w: %d is not a power of two", ErrLength, n)
	}
	rounds := bits.TrailingZeros(uint(n))
	if len(p.L) != rounds || len(p.R) != rounds {
		return nil, nil, nil, fmt.Errorf("%w: %d rounds for n=%d", ErrLength, len(p.L), n)
	}

	t.AppendUint64("ipa-n", uint64(n))

	u := make([]fr.Element, rounds)
	uInv := make([]fr.Element, rounds)
	uSq = make([]fr.Element, rounds)
	uInvSq = make([]fr.Element, rounds)
	var allInv fr.Element
	allInv.SetOne()
	for j := 0; j < rounds; j++ {
		t.AppendPoint("L", &p.L[j])
		t.AppendPoint("R", &p.R[j])
		u[j] = t.ChallengeScalar("u")
		if u[j].IsZero() {
			return nil, nil, nil, ErrVerification
		}
		uInv[j].Inverse(&u[j])
		uSq[j].Square(&u[j])
		uInvSq[j].Square(&uInv[j])
		allInv.Mul(&allInv, &uInv[j])
	}

	// s[i] = prod_j u_j^{+-1}, sign given by bit j of i (big-endian rounds).
	s = make([]fr.Element, n)
	s[0] = allInv
	for i := 1; i < n; i++ {
		lg := bits.Len(uint(i)) - 1
		k := 1 << lg
		s[i].Mul(&s[i-k], &uSq[rounds-1-lg])
	}
	return uSq, uInvSq, s, nil
}
