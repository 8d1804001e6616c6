package pedersen

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// VectorGens is a view over a concrete generator set used for a vector
// commitment. The sigma protocols work against arbitrary base sets: the same
// opening can be proven under the G bases, the H bases, or a set rebased onto
// a commitment point (how the square proof pins the quadratic term).
type VectorGens struct {
	Bases    []bn254.G1Affine
	Blinding bn254.G1Affine
}

// GGens returns the first n G bases as a generator set.
func (p *Params) GGens(n int) VectorGens {
	return VectorGens{Bases: p.Gs[:n], Blinding: p.H}
}

// HGens returns the first n H bases as a generator set.
func (p *Params) HGens(n int) VectorGens {
	return VectorGens{Bases: p.Hs[:n], Blinding: p.H}
}

// ScalarGens returns the scalar commitment bases as a length-1 generator set.
func (p *Params) ScalarGens() VectorGens {
	return VectorGens{Bases: []bn254.G1Affine{p.G}, Blinding: p.H}
}

// Rebase returns a length-1 generator set whose value base is an arbitrary
// point, keeping the blinding base.
func (g VectorGens) Rebase(base bn254.G1Affine) VectorGens {
	return VectorGens{Bases: []bn254.G1Affine{base}, Blinding: g.Blinding}
}

// Size returns the number of value bases.
func (g VectorGens) Size() int { return len(g.Bases) }

// Commit computes sum v_i*Bases_i + r*Blinding.
func (g VectorGens) Commit(v []fr.Element, r *fr.Element) (bn254.G1Affine, error) {
	return commit(g.Bases, g.Blinding, v, r)
}
