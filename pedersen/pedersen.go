// Package pedersen provides the commitment engine shared by every proof in
// this module: scalar and vector Pedersen commitments over BN254 G1, their
// homomorphic combinations, and the deterministic generator parameter set.
package pedersen

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var (
	// ErrInvalidGenerators reports a vector longer than the generator set.
	ErrInvalidGenerators = errors.New("pedersen: vector length exceeds generator capacity")
	// ErrRandomness reports a failed blinding-factor draw. Fatal to the
	// proving call: predictable blinding breaks zero-knowledge.
	ErrRandomness = errors.New("pedersen: randomness source failure")
)

// Domain separation tags for generator derivation. Versioned: prover and
// verifier must share the exact same parameter set.
const (
	dstBlinding = "zkSVM/v1/generators/H"
	dstGVector  = "zkSVM/v1/generators/G-vec"
	dstHVector  = "zkSVM/v1/generators/H-vec"
)

// Params is the public parameter set: the scalar bases (G for values, H for
// blinding factors) and two generator vectors for vector commitments. All
// points are derived deterministically, so there is no trusted setup, and the
// struct is immutable after Setup: safe for concurrent reads across proof
// sessions.
type Params struct {
	// G is the canonical BN254 G1 generator; scalar commitments bind values
	// to it.
	G bn254.G1Affine
	// H is the blinding base, hashed to the curve so its discrete log
	// relative to G is unknown.
	H bn254.G1Affine
	// Gs and Hs are the vector commitment bases.
	Gs []bn254.G1Affine
	Hs []bn254.G1Affine

	// Aggregate base points, precomputed for the algebraic proofs.
	SumGs bn254.G1Affine
	SumHs bn254.G1Affine
}

// Setup derives a parameter set supporting vectors of length up to n.
func Setup(n int) (*Params, error) {
	if n <= 0 {
		return nil, fmt.Errorf("pedersen: capacity must be positive, got %d", n)
	}
	_, _, g, _ := bn254.Generators()

	h, err := bn254.HashToG1([]byte(dstBlinding), []byte(dstBlinding))
	if err != nil {
		return nil, fmt.Errorf("pedersen: deriving blinding base: %w", err)
	}

	p := &Params{G: g, H: h, Gs: make([]bn254.G1Affine, n), Hs: make([]bn254.G1Affine, n)}
	for i := 0; i < n; i++ {
		p.Gs[i], err = bn254.HashToG1([]byte(fmt.Sprintf("%s/%d", dstGVector, i)), []byte(dstGVector))
		if err != nil {
			return nil, fmt.Errorf("pedersen: deriving G vector base %d: %w", i, err)
		}
		p.Hs[i], err = bn254.HashToG1([]byte(fmt.Sprintf("%s/%d", dstHVector, i)), []byte(dstHVector))
		if err != nil {
			return nil, fmt.Errorf("pedersen: deriving H vector base %d: %w", i, err)
		}
	}
	p.SumGs = SumPoints(p.Gs)
	p.SumHs = SumPoints(p.Hs)
	return p, nil
}

// Capacity returns the maximum supported vector length.
func (p *Params) Capacity() int { return len(p.Gs) }

// CommitScalar computes v*G + r*H.
func (p *Params) CommitScalar(v, r *fr.Element) bn254.G1Affine {
	var vG, rH bn254.G1Affine
	vG = Scale(&p.G, v)
	rH = Scale(&p.H, r)
	vG.Add(&vG, &rH)
	return vG
}

// CommitVector commits to a vector under the G bases: sum v_i*Gs_i + r*H.
func (p *Params) CommitVector(v []fr.Element, r *fr.Element) (bn254.G1Affine, error) {
	return commit(p.Gs, p.H, v, r)
}

// CommitVectorH commits to a vector under the H bases: sum v_i*Hs_i + r*H.
func (p *Params) CommitVectorH(v []fr.Element, r *fr.Element) (bn254.G1Affine, error) {
	return commit(p.Hs, p.H, v, r)
}

// OpenScalar recomputes a scalar commitment and compares.
func (p *Params) OpenScalar(c *bn254.G1Affine, v, r *fr.Element) bool {
	expected := p.CommitScalar(v, r)
	return expected.Equal(c)
}

// OpenVector recomputes a vector commitment and compares.
func (p *Params) OpenVector(c *bn254.G1Affine, v []fr.Element, r *fr.Element) bool {
	expected, err := p.CommitVector(v, r)
	if err != nil {
		return false
	}
	return expected.Equal(c)
}

func commit(bases []bn254.G1Affine, blinding bn254.G1Affine, v []fr.Element, r *fr.Element) (bn254.G1Affine, error) {
	if len(v) > len(bases) {
		return bn254.G1Affine{}, ErrInvalidGenerators
	}
	points := make([]bn254.G1Affine, 0, len(v)+1)
	scalars := make([]fr.Element, 0, len(v)+1)
	points = append(points, blinding)
	scalars = append(scalars, *r)
	points = append(points, bases[:len(v)]...)
	scalars = append(scalars, v...)

	var c bn254.G1Affine
	if _, err := c.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return bn254.G1Affine{}, fmt.Errorf("pedersen: multiexp: %w", err)
	}
	return c, nil
}

// Add returns c1 + c2. Commitments are additively homomorphic:
// commit(v1,r1) + commit(v2,r2) == commit(v1+v2, r1+r2).
func Add(c1, c2 *bn254.G1Affine) bn254.G1Affine {
	var out bn254.G1Affine
	out.Add(c1, c2)
	return out
}

// Sub returns c1 - c2.
func Sub(c1, c2 *bn254.G1Affine) bn254.G1Affine {
	var out bn254.G1Affine
	out.Sub(c1, c2)
	return out
}

// Scale returns k*C.
func Scale(c *bn254.G1Affine, k *fr.Element) bn254.G1Affine {
	var bi big.Int
	k.BigInt(&bi)
	var out bn254.G1Affine
	out.ScalarMultiplication(c, &bi)
	return out
}

// ScaleUint returns k*C for a small integer factor.
func ScaleUint(c *bn254.G1Affine, k uint64) bn254.G1Affine {
	var e fr.Element
	e.SetUint64(k)
	return Scale(c, &e)
}

// SumPoints adds a slice of points.
func SumPoints(pts []bn254.G1Affine) bn254.G1Affine {
	var acc bn254.G1Jac
	for i := range pts {
		acc.AddMixed(&pts[i])
	}
	var out bn254.G1Affine
	out.FromJacobian(&acc)
	return out
}

// RandomScalar draws a blinding factor from crypto/rand.
func RandomScalar() (fr.Element, error) {
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		return fr.Element{}, fmt.Errorf("%w: %v", ErrRandomness, err)
	}
	return e, nil
}

// RandomVector draws n independent scalars.
func RandomVector(n int) ([]fr.Element, error) {
	out := make([]fr.Element, n)
	for i := range out {
		var err error
		if out[i], err = RandomScalar(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
