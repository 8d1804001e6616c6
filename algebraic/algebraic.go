// Package algebraic implements the statistic proofs over committed sensor
// vectors: average, variance with standard deviation, and successive
// differences. Each proof is a composition of the zero-knowledge inner-product
// argument with sigma protocols and homomorphic commitment checks; the
// statistics themselves stay hidden inside Pedersen commitments that the
// classifier layer combines.
package algebraic

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/iquerejeta/zkSVM/pedersen"
)

var (
	// ErrVerification reports a statistic proof that failed a check.
	ErrVerification = errors.New("algebraic: verification failed")
	// ErrNonSquareVariance reports a variance with no field square root.
	// Standard deviation is committed as the exact root; callers hitting this
	// rescale their inputs.
	ErrNonSquareVariance = errors.New("algebraic: variance has no square root")
)

// onesVector returns (1, 1, ..., 1).
func onesVector(n int) []fr.Element {
	out := make([]fr.Element, n)
	for i := range out {
		out[i].SetOne()
	}
	return out
}

// powersVector returns (1, z, z^2, ..., z^{n-1}).
func powersVector(z *fr.Element, n int) []fr.Element {
	out := make([]fr.Element, n)
	out[0].SetOne()
	for i := 1; i < n; i++ {
		out[i].Mul(&out[i-1], z)
	}
	return out
}

// sumVector computes sum v_i.
func sumVector(v []fr.Element) fr.Element {
	var out fr.Element
	for i := range v {
		out.Add(&out, &v[i])
	}
	return out
}

// basesCombination computes sum c_i*Bases_i for a generator view, with zero
// blinding. The pinned-A checks recompute commitment points this way.
func basesCombination(gens pedersen.VectorGens, c []fr.Element) (bn254.G1Affine, error) {
	var zero fr.Element
	return gens.Commit(c, &zero)
}

// nElement returns n as a field element.
func nElement(n int) fr.Element {
	var out fr.Element
	out.SetUint64(uint64(n))
	return out
}
