package algebraic

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/iquerejeta/zkSVM/ipa"
	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/sigma"
	"github.com/iquerejeta/zkSVM/transcript"
)

// VarianceProof proves that CVar commits to the variance of the vector inside
// Cx. The deviation vector d_i = n*x_i - sum satisfies <d, d> = n^3 *
// variance; the proof pins the IPA's vector commitment to
// n*Cx + n*CxH - PG - PH, where CxH re-commits x under the H bases
// (equality-proved) and PG, PH are the sum-scaled aggregate bases, each
// linked to the sum commitment produced by the average proof.
type VarianceProof struct {
	CxH  bn254.G1Affine
	PG   bn254.G1Affine
	PH   bn254.G1Affine
	DD   bn254.G1Affine
	CVar bn254.G1Affine

	Equality sigma.EqualityProof
	LinkG    sigma.LinkProof
	LinkH    sigma.LinkProof
	IPA      ipa.ZKProof
}

// VarianceOpening is the prover-side opening of the variance commitment,
// consumed by the standard-deviation proof and by the classifier when it
// combines feature commitments.
type VarianceOpening struct {
	Variance    fr.Element
	VarBlinding fr.Element
}

// ProveVariance builds a variance proof for the opening (x, rx) of Cx.
// sumBlinding is the blinding factor of the sum commitment returned by
// ProveAverage; the two proofs must share it so the verifier can check them
// against the same sum.
func ProveVariance(params *pedersen.Params, t *transcript.Transcript, x []fr.Element, rx, sumBlinding *fr.Element) (*VarianceProof, *VarianceOpening, error) {
	n := len(x)
	nEl := nElement(n)
	sum := sumVector(x)

	// Re-commit x under the H bases so <d, d> fits the two-vector layout of
	// the inner-product argument.
	rxH, err := pedersen.RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	equality, err := sigma.ProveEquality(params.GGens(n), params.HGens(n), t, x, rx, &rxH)
	if err != nil {
		return nil, nil, fmt.Errorf("algebraic: variance equality: %w", err)
	}
	cxH, err := params.CommitVectorH(x, &rxH)
	if err != nil {
		return nil, nil, err
	}

	// Aggregate bases scaled by the committed sum.
	sumGs := pedersen.SumPoints(params.Gs[:n])
	sumHs := pedersen.SumPoints(params.Hs[:n])
	pg := pedersen.Scale(&sumGs, &sum)
	ph := pedersen.Scale(&sumHs, &sum)
	linkG, err := sigma.ProveLink(params, t, &sum, sumBlinding, &sumGs)
	if err != nil {
		return nil, nil, fmt.Errorf("algebraic: variance sum link: %w", err)
	}
	linkH, err := sigma.ProveLink(params, t, &sum, sumBlinding, &sumHs)
	if err != nil {
		return nil, nil, fmt.Errorf("algebraic: variance sum link: %w", err)
	}

	// d_i = n*x_i - sum; aBlinding = n*(rx + rxH) pins A to
	// n*Cx + n*CxH - PG - PH.
	d := make([]fr.Element, n)
	var tmp fr.Element
	for i := range d {
		tmp.Mul(&nEl, &x[i])
		d[i].Sub(&tmp, &sum)
	}
	var aBlinding fr.Element
	aBlinding.Add(rx, &rxH)
	aBlinding.Mul(&aBlinding, &nEl)

	ddBlinding, err := pedersen.RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	inner, dd, err := ipa.Prove(params, t, d, d, ddBlinding, aBlinding)
	if err != nil {
		return nil, nil, fmt.Errorf("algebraic: variance ipa: %w", err)
	}

	// CVar = n^-3 * DD as an opening: variance = <d, d> / n^3.
	var nCubedInv fr.Element
	nCubedInv.Square(&nEl)
	nCubedInv.Mul(&nCubedInv, &nEl)
	nCubedInv.Inverse(&nCubedInv)

	ddValue, err := ipa.InnerProduct(d, d)
	if err != nil {
		return nil, nil, err
	}
	var variance, varBlinding fr.Element
	variance.Mul(&ddValue, &nCubedInv)
	varBlinding.Mul(&ddBlinding, &nCubedInv)
	cVar := params.CommitScalar(&variance, &varBlinding)

	proof := &VarianceProof{
		CxH: cxH, PG: pg, PH: ph, DD: dd, CVar: cVar,
		Equality: *equality, LinkG: *linkG, LinkH: *linkH,
		IPA: *inner,
	}
	open := &VarianceOpening{Variance: variance, VarBlinding: varBlinding}
	return proof, open, nil
}

// Verify checks the variance proof against the input commitment Cx and the
// sum commitment cSum from the matching average proof, for vectors of
// length n.
func (p *VarianceProof) Verify(params *pedersen.Params, t *transcript.Transcript, cx, cSum *bn254.G1Affine, n int) error {
	if n <= 0 || n > params.Capacity() {
		return fmt.Errorf("%w: n=%d", ErrVerification, n)
	}

	if err := p.Equality.Verify(params.GGens(n), params.HGens(n), t, cx, &p.CxH); err != nil {
		return fmt.Errorf("algebraic: variance equality: %w", err)
	}

	sumGs := pedersen.SumPoints(params.Gs[:n])
	sumHs := pedersen.SumPoints(params.Hs[:n])
	if err := p.LinkG.Verify(params, t, cSum, &p.PG, &sumGs); err != nil {
		return fmt.Errorf("algebraic: variance sum link: %w", err)
	}
	if err := p.LinkH.Verify(params, t, cSum, &p.PH, &sumHs); err != nil {
		return fmt.Errorf("algebraic: variance sum link: %w", err)
	}

	// A == n*Cx + n*CxH - PG - PH forces the IPA witness to be the deviation
	// vector of the committed x.
	nCx := pedersen.ScaleUint(cx, uint64(n))
	nCxH := pedersen.ScaleUint(&p.CxH, uint64(n))
	expectedA := pedersen.Add(&nCx, &nCxH)
	expectedA = pedersen.Sub(&expectedA, &p.PG)
	expectedA = pedersen.Sub(&expectedA, &p.PH)
	if !p.IPA.MatchesA(&expectedA) {
		return fmt.Errorf("%w: variance vector commitment", ErrVerification)
	}
	if err := p.IPA.Verify(params, t, &p.DD, n); err != nil {
		return fmt.Errorf("algebraic: variance ipa: %w", err)
	}

	// n^3 * CVar == DD.
	nEl := nElement(n)
	var nCubed fr.Element
	nCubed.Square(&nEl)
	nCubed.Mul(&nCubed, &nEl)
	scaled := pedersen.Scale(&p.CVar, &nCubed)
	if !scaled.Equal(&p.DD) {
		return fmt.Errorf("%w: variance scaling", ErrVerification)
	}
	return nil
}
