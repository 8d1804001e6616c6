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

// AverageProof proves that CAvg commits to the average of the vector inside a
// commitment Cx. CSum commits to <x, 1> and comes out of a zero-knowledge
// inner-product argument whose vector commitment is pinned to Cx, so the sum
// is tied to the exact committed vector; CAvg is then an n-th of CSum, checked
// homomorphically.
type AverageProof struct {
	CSum bn254.G1Affine
	CAvg bn254.G1Affine

	IPA     ipa.ZKProof
	Opening sigma.OpeningProof
}

// AverageOpening is the prover-side opening of an average proof's
// commitments. The variance proof reuses the sum blinding to link its
// aggregate points to the same sum; the classifier reuses the average
// blinding when it combines feature commitments.
type AverageOpening struct {
	Sum         fr.Element
	SumBlinding fr.Element
	Avg         fr.Element
	AvgBlinding fr.Element
}

// ProveAverage builds an average proof for the opening (x, rx) of Cx.
func ProveAverage(params *pedersen.Params, t *transcript.Transcript, x []fr.Element, rx *fr.Element) (*AverageProof, *AverageOpening, error) {
	n := len(x)
	sumBlinding, err := pedersen.RandomScalar()
	if err != nil {
		return nil, nil, err
	}

	// <x, 1> = sum, with A pinned to Cx + sum(Hs) through aBlinding = rx.
	inner, cSum, err := ipa.Prove(params, t, x, onesVector(n), sumBlinding, *rx)
	if err != nil {
		return nil, nil, fmt.Errorf("algebraic: average ipa: %w", err)
	}

	nInv := nElement(n)
	nInv.Inverse(&nInv)

	sum := sumVector(x)
	var avg, avgBlinding fr.Element
	avg.Mul(&sum, &nInv)
	avgBlinding.Mul(&sumBlinding, &nInv)
	cAvg := params.CommitScalar(&avg, &avgBlinding)

	opening, err := sigma.ProveOpening(params.ScalarGens(), t, []fr.Element{avg}, &avgBlinding)
	if err != nil {
		return nil, nil, fmt.Errorf("algebraic: average opening: %w", err)
	}

	proof := &AverageProof{CSum: cSum, CAvg: cAvg, IPA: *inner, Opening: *opening}
	open := &AverageOpening{Sum: sum, SumBlinding: sumBlinding, Avg: avg, AvgBlinding: avgBlinding}
	return proof, open, nil
}

// Verify checks the average proof against the input commitment Cx for vectors
// of length n.
func (p *AverageProof) Verify(params *pedersen.Params, t *transcript.Transcript, cx *bn254.G1Affine, n int) error {
	if n <= 0 || n > params.Capacity() {
		return fmt.Errorf("%w: n=%d", ErrVerification, n)
	}

	// The IPA's vector commitment must be the homomorphic combination of Cx
	// and the all-ones commitment under the H bases.
	sumHs := pedersen.SumPoints(params.Hs[:n])
	expectedA := pedersen.Add(cx, &sumHs)
	if !p.IPA.MatchesA(&expectedA) {
		return fmt.Errorf("%w: average vector commitment", ErrVerification)
	}
	if err := p.IPA.Verify(params, t, &p.CSum, n); err != nil {
		return fmt.Errorf("algebraic: average ipa: %w", err)
	}

	// n*CAvg == CSum ties the averaged commitment to the proven sum.
	scaled := pedersen.ScaleUint(&p.CAvg, uint64(n))
	if !scaled.Equal(&p.CSum) {
		return fmt.Errorf("%w: average scaling", ErrVerification)
	}

	if err := p.Opening.Verify(params.ScalarGens(), t, &p.CAvg); err != nil {
		return fmt.Errorf("algebraic: average opening: %w", err)
	}
	return nil
}
