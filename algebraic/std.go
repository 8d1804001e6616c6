package algebraic

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/sigma"
	"github.com/iquerejeta/zkSVM/transcript"
)

// StdProof proves that CStd commits to the exact square root of the value
// inside a variance commitment, via the square relation std^2 = variance.
type StdProof struct {
	CStd   bn254.G1Affine
	Square sigma.SquareProof
}

// StdOpening is the prover-side opening of the standard-deviation
// commitment.
type StdOpening struct {
	Std         fr.Element
	StdBlinding fr.Element
}

// ProveStd builds a standard-deviation proof from the variance opening
// produced by ProveVariance. Fails with ErrNonSquareVariance when the
// variance has no square root in the field; callers then rescale their
// inputs.
func ProveStd(params *pedersen.Params, t *transcript.Transcript, varOpen *VarianceOpening) (*StdProof, *StdOpening, error) {
	var std fr.Element
	if std.Sqrt(&varOpen.Variance) == nil {
		return nil, nil, ErrNonSquareVariance
	}
	// Both roots square to the variance; commit the smaller representative so
	// integer variances get their integer root.
	var neg fr.Element
	neg.Neg(&std)
	if neg.Cmp(&std) < 0 {
		std = neg
	}
	rStd, err := pedersen.RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	cStd := params.CommitScalar(&std, &rStd)

	square, err := sigma.ProveSquare(params, t, &std, &rStd, &varOpen.VarBlinding)
	if err != nil {
		return nil, nil, fmt.Errorf("algebraic: std square: %w", err)
	}
	proof := &StdProof{CStd: cStd, Square: *square}
	open := &StdOpening{Std: std, StdBlinding: rStd}
	return proof, open, nil
}

// Verify checks the proof against the variance commitment.
func (p *StdProof) Verify(params *pedersen.Params, t *transcript.Transcript, cVar *bn254.G1Affine) error {
	if err := p.Square.Verify(params, t, &p.CStd, cVar); err != nil {
		return fmt.Errorf("algebraic: std square: %w", err)
	}
	return nil
}
