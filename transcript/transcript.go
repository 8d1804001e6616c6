// Package transcript implements the Fiat-Shamir transcript used by every
// proof in this module. A transcript is an append-only hash state: prover and
// verifier feed it the same labelled messages in the same order and derive
// bit-identical challenge scalars, which is what makes the protocols
// non-interactive. Each proof session owns its own transcript; the type is
// not safe for concurrent use.
package transcript

import (
	"encoding/binary"
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"
)

// challengeDST domain-separates the hash-to-field step from any other use of
// fr.Hash in the module.
var challengeDST = []byte("zkSVM/transcript/challenge/v1")

// Transcript is a deterministic challenge generator over a running sha3-256
// state. Every message is length-framed so that distinct append sequences can
// never collide, and every derived challenge is folded back into the state so
// the same label may be reused later with a different result.
type Transcript struct {
	h hash.Hash
}

// New creates a transcript bound to a protocol label.
func New(label string) *Transcript {
	t := &Transcript{h: sha3.New256()}
	t.Append("protocol", []byte(label))
	return t
}

// Append absorbs a labelled message into the transcript state.
func (t *Transcript) Append(label string, data []byte) {
	t.writeFrame([]byte(label))
	t.writeFrame(data)
}

// AppendPoint absorbs the compressed encoding of a group element.
func (t *Transcript) AppendPoint(label string, p *bn254.G1Affine) {
	buf := p.Bytes()
	t.Append(label, buf[:])
}

// AppendScalar absorbs the canonical encoding of a field element.
func (t *Transcript) AppendScalar(label string, s *fr.Element) {
	buf := s.Bytes()
	t.Append(label, buf[:])
}

// AppendUint64 absorbs an integer, big-endian.
func (t *Transcript) AppendUint64(label string, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	t.Append(label, buf[:])
}

// ChallengeScalar derives a field element from the current state and advances
// the state. The result is uniform in the scalar field.
func (t *Transcript) ChallengeScalar(label string) fr.Element {
	t.Append("challenge", []byte(label))
	digest := t.h.Sum(nil)
	elems, err := fr.Hash(digest, challengeDST, 1)
	if err != nil {
		// fr.Hash only fails for absurd output counts; a count of 1 cannot.
		panic("transcript: hash to field failed: " + err.Error())
	}
	c := elems[0]
	t.AppendScalar("challenge-output", &c)
	return c
}

func (t *Transcript) writeFrame(data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	t.h.Write(length[:])
	t.h.Write(data)
}
