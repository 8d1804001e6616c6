// Package sigma implements the three-move (commit, challenge, response)
// proofs of knowledge used as building blocks by the algebraic layer:
// knowledge of a commitment opening, equality of openings under two generator
// sets, the square relation between two committed values, the link between a
// committed value and a bare discrete log, and plain Schnorr knowledge of
// exponent. All protocols are made non-interactive with the module's
// Fiat-Shamir transcript and leak nothing beyond the truth of the statement.
package sigma

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var (
	// ErrVerification reports a proof that failed its equation check.
	ErrVerification = errors.New("sigma: verification failed")
	// ErrInvalidGenerators reports an opening longer than the generator set.
	ErrInvalidGenerators = errors.New("sigma: opening length does not match generators")
)

// msmIsZero evaluates sum scalars_i * points_i and reports whether it is the
// identity. Every sigma verification reduces to one such check.
func msmIsZero(points []bn254.G1Affine, scalars []fr.Element) (bool, error) {
	var acc bn254.G1Affine
	if _, err := acc.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return false, err
	}
	return acc.IsInfinity(), nil
}

func negated(s *fr.Element) fr.Element {
	var out fr.Element
	out.Neg(s)
	return out
}
