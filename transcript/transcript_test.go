package transcript

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestDeterministicChallenges(t *testing.T) {
	a := New("test")
	b := New("test")

	a.Append("msg", []byte("hello"))
	b.Append("msg", []byte("hello"))

	ca := a.ChallengeScalar("x")
	cb := b.ChallengeScalar("x")
	require.True(t, ca.Equal(&cb))

	// Same label again must give a different challenge on an advanced state.
	ca2 := a.ChallengeScalar("x")
	require.False(t, ca.Equal(&ca2))
}

func TestAppendOrderMatters(t *testing.T) {
	a := New("test")
	b := New("test")

	a.Append("m1", []byte("one"))
	a.Append("m2", []byte("two"))
	b.Append("m2", []byte("two"))
	b.Append("m1", []byte("one"))

	ca := a.ChallengeScalar("x")
	cb := b.ChallengeScalar("x")
	require.False(t, ca.Equal(&cb))
}

func TestFramingPreventsConcatenationCollisions(t *testing.T) {
	a := New("test")
	b := New("test")

	a.Append("m", []byte("ab"))
	a.Append("m", []byte("c"))
	b.Append("m", []byte("a"))
	b.Append("m", []byte("bc"))

	ca := a.ChallengeScalar("x")
	cb := b.ChallengeScalar("x")
	require.False(t, ca.Equal(&cb))
}

func TestProtocolLabelSeparation(t *testing.T) {
	a := New("proto-a")
	b := New("proto-b")
	ca := a.ChallengeScalar("x")
	cb := b.ChallengeScalar("x")
	require.False(t, ca.Equal(&cb))
}

func TestChallengeIsReduced(t *testing.T) {
	tr := New("test")
	c := tr.ChallengeScalar("x")
	var zero fr.Element
	require.False(t, c.Equal(&zero), "challenge should not be zero")
}
