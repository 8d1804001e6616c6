package sigma

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/transcript"
)

// OpeningProof proves knowledge of an opening (v, r) of a vector commitment
// C = <v, Bases> + r*Blinding without revealing either. A is the prover's
// announcement commitment to random masks; Z and ZR are the masked responses.
type OpeningProof struct {
	A  bn254.G1Affine
	Z  []fr.Element
	ZR fr.Element
}

// ProveOpening builds a proof of knowledge of (opening, randomization) for the
// commitment they produce under gens. The commitment itself is recomputed and
// absorbed into the transcript, binding the proof to the exact statement.
func ProveOpening(gens pedersen.VectorGens, t *transcript.Transcript, opening []fr.Element, randomization *fr.Element) (*OpeningProof, error) {
	if len(opening) > gens.Size() {
		return nil, ErrInvalidGenerators
	}
	commitment, err := gens.Commit(opening, randomization)
	if err != nil {
		return nil, err
	}

	masks, err := pedersen.RandomVector(len(opening))
	if err != nil {
		return nil, err
	}
	maskBlinding, err := pedersen.RandomScalar()
	if err != nil {
		return nil, err
	}
	a, err := gens.Commit(masks, &maskBlinding)
	if err != nil {
		return nil, err
	}

	t.AppendPoint("opening-C", &commitment)
	t.AppendPoint("opening-A", &a)
	c := t.ChallengeScalar("opening-c")

	proof := &OpeningProof{A: a, Z: make([]fr.Element, len(opening))}
	var tmp fr.Element
	for i := range opening {
		tmp.Mul(&c, &opening[i])
		proof.Z[i].Add(&masks[i], &tmp)
	}
	tmp.Mul(&c, randomization)
	proof.ZR.Add(&maskBlinding, &tmp)
	return proof, nil
}

// Verify checks the proof against a commitment: A + c*C must equal the
// commitment to the responses, <Z, Bases> + ZR*Blinding.
func (p *OpeningProof) Verify(gens pedersen.VectorGens, t *transcript.Transcript, commitment *bn254.G1Affine) error {
	n := len(p.Z)
	if n > gens.Size() {
		return ErrInvalidGenerators
	}

	t.AppendPoint("opening-C", commitment)
	t.AppendPoint("opening-A", &p.A)
	c := t.ChallengeScalar("opening-c")

	// A + c*C - ZR*Blinding - sum Z_i*Bases_i == 0.
	points := make([]bn254.G1Affine, 0, n+3)
	scalars := make([]fr.Element, 0, n+3)
	var one fr.Element
	one.SetOne()
	points = append(points, p.A, *commitment, gens.Blinding)
	scalars = append(scalars, one, c, negated(&p.ZR))
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
