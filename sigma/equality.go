package sigma

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/transcript"
)

// EqualityProof proves that two vector commitments under two different
// generator sets open to the same vector. The shared response vector Z forces
// a single witness across both statements; only the blinding responses differ.
type EqualityProof struct {
	A1  bn254.G1Affine
	A2  bn254.G1Affine
	Z   []fr.Element
	ZR1 fr.Element
	ZR2 fr.Element
}

// ProveEquality proves that commit(gens1, opening, r1) and
// commit(gens2, opening, r2) commit to the same opening.
func ProveEquality(gens1, gens2 pedersen.VectorGens, t *transcript.Transcript, opening []fr.Element, r1, r2 *fr.Element) (*EqualityProof, error) {
	if len(opening) > gens1.Size() || len(opening) > gens2.Size() {
		return nil, ErrInvalidGenerators
	}
	c1, err := gens1.Commit(opening, r1)
	if err != nil {
		return nil, err
	}
	c2, err := gens2.Commit(opening, r2)
	if err != nil {
		return nil, err
	}

	masks, err := pedersen.RandomVector(len(opening))
	if err != nil {
		return nil, err
	}
	mb1, err := pedersen.RandomScalar()
	if err != nil {
		return nil, err
	}
	mb2, err := pedersen.RandomScalar()
	if err != nil {
		return nil, err
	}
	a1, err := gens1.Commit(masks, &mb1)
	if err != nil {
		return nil, err
	}
	a2, err := gens2.Commit(masks, &mb2)
	if err != nil {
		return nil, err
	}

	t.AppendPoint("equality-C1", &c1)
	t.AppendPoint("equality-C2", &c2)
	t.AppendPoint("equality-A1", &a1)
	t.AppendPoint("equality-A2", &a2)
	c := t.ChallengeScalar("equality-c")

	proof := &EqualityProof{A1: a1, A2: a2, Z: make([]fr.Element, len(opening))}
	var tmp fr.Element
	for i := range opening {
		tmp.Mul(&c, &opening[i])
		proof.Z[i].Add(&masks[i], &tmp)
	}
	tmp.Mul(&c, r1)
	proof.ZR1.Add(&mb1, &tmp)
	tmp.Mul(&c, r2)
	proof.ZR2.Add(&mb2, &tmp)
	return proof, nil
}

// Verify checks both response equations against the two commitments. The
// equations are checked independently: summing them into one multiexp would
// let a cheating prover cancel an error in one against the other.
func (p *EqualityProof) Verify(gens1, gens2 pedersen.VectorGens, t *transcript.Transcript, c1, c2 *bn254.G1Affine) error {
	n := len(p.Z)
	if n > gens1.Size() || n > gens2.Size() {
		return ErrInvalidGenerators
	}

	t.AppendPoint("equality-C1", c1)
	t.AppendPoint("equality-C2", c2)
	t.AppendPoint("equality-A1", &p.A1)
	t.AppendPoint("equality-A2", &p.A2)
	c := t.ChallengeScalar("equality-c")

	check := func(gens pedersen.VectorGens, a, comm *bn254.G1Affine, zr *fr.Element) error {
		points := make([]bn254.G1Affine, 0, n+3)
		scalars := make([]fr.Element, 0, n+3)
		var one fr.Element
		one.SetOne()
		points = append(points, *a, *comm, gens.Blinding)
		scalars = append(scalars, one, c, negated(zr))
		for i := 0; i < n; i++ {
			points = append(points, gens.Bases[i])
			scalars = append(scalars, negated(&p.Z[i]))
		}
		ok, err := msmIsZero(points, scalars)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVerification
		}
		return nil
	}

	if err := check(gens1, &p.A1, c1, &p.ZR1); err != nil {
		return err
	}
	return check(gens2, &p.A2, c2, &p.ZR2)
}

// ProveSameValue proves two scalar commitments open to the same value: their
// difference is a commitment to zero, so it is a pure blinding point whose
// exponent r1 - r2 the prover knows.
func ProveSameValue(params *pedersen.Params, t *transcript.Transcript, r1, r2 *fr.Element) (*DLogProof, error) {
	var dr fr.Element
	dr.Sub(r1, r2)
	return ProveDLog(t, &dr, &params.H)
}

// VerifySameValue checks a same-value proof against the two commitments.
func (p *DLogProof) VerifySameValue(params *pedersen.Params, t *transcript.Transcript, c1, c2 *bn254.G1Affine) error {
	diff := pedersen.Sub(c1, c2)
	return p.Verify(t, &diff, &params.H)
}
