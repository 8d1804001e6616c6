package algebraic

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/iquerejeta/zkSVM/ipa"
	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/transcript"
)

// DiffProof proves that Cd commits to the successive-difference vector of the
// vector inside Cx: diff_i = x_i - x_{i+1}, with the last entry x_{n-1}
// itself. The n linear relations collapse into one inner-product identity
// under a transcript challenge z,
//
//	<diff, (1, z, ..., z^{n-1})> == <x, v(z)>,  v_0 = 1, v_i = z^i - z^{i-1},
//
// proved by two inner-product arguments sharing a single hidden-value
// commitment V, each pinned to its own vector commitment.
type DiffProof struct {
	Cd bn254.G1Affine
	V  bn254.G1Affine

	DiffIPA ipa.ZKProof
	BaseIPA ipa.ZKProof
}

// DiffVector computes the successive differences of x.
func DiffVector(x []fr.Element) []fr.Element {
	n := len(x)
	out := make([]fr.Element, n)
	for i := 0; i < n-1; i++ {
		out[i].Sub(&x[i], &x[i+1])
	}
	out[n-1] = x[n-1]
	return out
}

// ProveDiff builds a difference proof for the opening (x, rx) of Cx. The
// commitment Cd to the difference vector is part of the proof.
func ProveDiff(params *pedersen.Params, t *transcript.Transcript, x []fr.Element, rx *fr.Element) (*DiffProof, error) {
	n := len(x)
	cx, err := params.CommitVector(x, rx)
	if err != nil {
		return nil, err
	}

	diff := DiffVector(x)
	rd, err := pedersen.RandomScalar()
	if err != nil {
		return nil, err
	}
	cd, err := params.CommitVector(diff, &rd)
	if err != nil {
		return nil, err
	}

	t.AppendPoint("diff-Cx", &cx)
	t.AppendPoint("diff-Cd", &cd)
	z := t.ChallengeScalar("diff-z")
	zs, vs := diffChallengeVectors(&z, n)

	// Both arguments commit the same inner product under the same blinding,
	// so their V coincide; one shared point binds the two sides.
	vBlinding, err := pedersen.RandomScalar()
	if err != nil {
		return nil, err
	}
	diffIPA, v1, err := ipa.Prove(params, t, diff, zs, vBlinding, rd)
	if err != nil {
		return nil, fmt.Errorf("algebraic: diff ipa: %w", err)
	}
	baseIPA, v2, err := ipa.Prove(params, t, x, vs, vBlinding, *rx)
	if err != nil {
		return nil, fmt.Errorf("algebraic: diff ipa: %w", err)
	}
	if !v1.Equal(&v2) {
		return nil, fmt.Errorf("%w: diff inner products disagree", ErrVerification)
	}

	return &DiffProof{Cd: cd, V: v1, DiffIPA: *diffIPA, BaseIPA: *baseIPA}, nil
}

// Verify checks the difference proof against the input commitment Cx for
// vectors of length n.
func (p *DiffProof) Verify(params *pedersen.Params, t *transcript.Transcript, cx *bn254.G1Affine, n int) error {
	if n <= 0 || n > params.Capacity() {
		return fmt.Errorf("%w: n=%d", ErrVerification, n)
	}

	t.AppendPoint("diff-Cx", cx)
	t.AppendPoint("diff-Cd", &p.Cd)
	z := t.ChallengeScalar("diff-z")
	zs, vs := diffChallengeVectors(&z, n)

	hGens := params.HGens(n)
	zsH, err := basesCombination(hGens, zs)
	if err != nil {
		return err
	}
	vsH, err := basesCombination(hGens, vs)
	if err != nil {
		return err
	}

	expectedA := pedersen.Add(&p.Cd, &zsH)
	if !p.DiffIPA.MatchesA(&expectedA) {
		return fmt.Errorf("%w: diff vector commitment", ErrVerification)
	}
	expectedA = pedersen.Add(cx, &vsH)
	if !p.BaseIPA.MatchesA(&expectedA) {
		return fmt.Errorf("%w: diff base vector commitment", ErrVerification)
	}

	if err := p.DiffIPA.Verify(params, t, &p.V, n); err != nil {
		return fmt.Errorf("algebraic: diff ipa: %w", err)
	}
	if err := p.BaseIPA.Verify(params, t, &p.V, n); err != nil {
		return fmt.Errorf("algebraic: diff ipa: %w", err)
	}
	return nil
}

// diffChallengeVectors returns the challenge powers (1, z, ..., z^{n-1}) and
// the folded coefficients v with v_0 = 1, v_i = z^i - z^{i-1}.
func diffChallengeVectors(z *fr.Element, n int) (zs, vs []fr.Element) {
	zs = powersVector(z, n)
	vs = make([]fr.Element, n)
	vs[0].SetOne()
	for i := 1; i < n; i++ {
		vs[i].Sub(&zs[i], &zs[i-1])
	}
	return zs, vs
}
