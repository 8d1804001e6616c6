package sigma

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/transcript"
	"github.com/iquerejeta/zkSVM/wire"
)

func setup(t *testing.T, n int) *pedersen.Params {
	t.Helper()
	params, err := pedersen.Setup(n)
	require.NoError(t, err)
	return params
}

func TestOpeningProof(t *testing.T) {
	params := setup(t, 8)
	gens := params.GGens(8)

	v, err := pedersen.RandomVector(8)
	require.NoError(t, err)
	r, err := pedersen.RandomScalar()
	require.NoError(t, err)
	c, err := gens.Commit(v, &r)
	require.NoError(t, err)

	proof, err := ProveOpening(gens, transcript.New("opening-test"), v, &r)
	require.NoError(t, err)
	require.NoError(t, proof.Verify(gens, transcript.New("opening-test"), &c))

	// Different commitment must fail.
	bad := pedersen.Add(&c, &params.G)
	require.ErrorIs(t, proof.Verify(gens, transcript.New("opening-test"), &bad), ErrVerification)

	// Different transcript label must fail.
	require.ErrorIs(t, proof.Verify(gens, transcript.New("other"), &c), ErrVerification)
}

func TestOpeningProofScalarGens(t *testing.T) {
	params := setup(t, 1)
	gens := params.ScalarGens()

	var v fr.Element
	v.SetUint64(42)
	r, err := pedersen.RandomScalar()
	require.NoError(t, err)
	c := params.CommitScalar(&v, &r)

	proof, err := ProveOpening(gens, transcript.New("t"), []fr.Element{v}, &r)
	require.NoError(t, err)
	require.NoError(t, proof.Verify(gens, transcript.New("t"), &c))
}

func TestEqualityProof(t *testing.T) {
	params := setup(t, 4)
	gens1 := params.GGens(4)
	gens2 := params.HGens(4)

	v, err := pedersen.RandomVector(4)
	require.NoError(t, err)
	r1, err := pedersen.RandomScalar()
	require.NoError(t, err)
	r2, err := pedersen.RandomScalar()
	require.NoError(t, err)
	c1, err := gens1.Commit(v, &r1)
	require.NoError(t, err)
	c2, err := gens2.Commit(v, &r2)
	require.NoError(t, err)

	proof, err := ProveEquality(gens1, gens2, transcript.New("eq-test"), v, &r1, &r2)
	require.NoError(t, err)
	require.NoError(t, proof.Verify(gens1, gens2, transcript.New("eq-test"), &c1, &c2))

	// Commitment to a different vector under gens2 must fail.
	w, err := pedersen.RandomVector(4)
	require.NoError(t, err)
	cw, err := gens2.Commit(w, &r2)
	require.NoError(t, err)
	require.ErrorIs(t, proof.Verify(gens1, gens2, transcript.New("eq-test"), &c1, &cw), ErrVerification)
}

func TestSameValueProof(t *testing.T) {
	params := setup(t, 1)

	var v fr.Element
	v.SetUint64(9)
	r1, err := pedersen.RandomScalar()
	require.NoError(t, err)
	r2, err := pedersen.RandomScalar()
	require.NoError(t, err)
	c1 := params.CommitScalar(&v, &r1)
	c2 := params.CommitScalar(&v, &r2)

	proof, err := ProveSameValue(params, transcript.New("same"), &r1, &r2)
	require.NoError(t, err)
	require.NoError(t, proof.VerifySameValue(params, transcript.New("same"), &c1, &c2))

	// Commitments to different values must fail.
	var w fr.Element
	w.SetUint64(10)
	c3 := params.CommitScalar(&w, &r2)
	require.ErrorIs(t, proof.VerifySameValue(params, transcript.New("same"), &c1, &c3), ErrVerification)
}

func TestSquareProof(t *testing.T) {
	params := setup(t, 1)

	var x, y fr.Element
	x.SetUint64(7)
	y.Square(&x)

	rx, err := pedersen.RandomScalar()
	require.NoError(t, err)
	ry, err := pedersen.RandomScalar()
	require.NoError(t, err)
	cx := params.CommitScalar(&x, &rx)
	cy := params.CommitScalar(&y, &ry)

	proof, err := ProveSquare(params, transcript.New("sq-test"), &x, &rx, &ry)
	require.NoError(t, err)
	require.NoError(t, proof.Verify(params, transcript.New("sq-test"), &cx, &cy))

	// Commitment to a non-square must fail.
	var notSquare fr.Element
	notSquare.SetUint64(50)
	cBad := params.CommitScalar(&notSquare, &ry)
	require.ErrorIs(t, proof.Verify(params, transcript.New("sq-test"), &cx, &cBad), ErrVerification)
}

func TestLinkProof(t *testing.T) {
	params := setup(t, 2)

	x, err := pedersen.RandomScalar()
	require.NoError(t, err)
	r, err := pedersen.RandomScalar()
	require.NoError(t, err)
	k := params.SumGs
	c := params.CommitScalar(&x, &r)
	p := pedersen.Scale(&k, &x)

	proof, err := ProveLink(params, transcript.New("link-test"), &x, &r, &k)
	require.NoError(t, err)
	require.NoError(t, proof.Verify(params, transcript.New("link-test"), &c, &p, &k))

	// Point with a different exponent must fail.
	badP := pedersen.Add(&p, &k)
	require.ErrorIs(t, proof.Verify(params, transcript.New("link-test"), &c, &badP, &k), ErrVerification)
}

func TestDLogProof(t *testing.T) {
	params := setup(t, 1)

	x, err := pedersen.RandomScalar()
	require.NoError(t, err)
	k := params.H
	p := pedersen.Scale(&k, &x)

	proof, err := ProveDLog(transcript.New("dlog-test"), &x, &k)
	require.NoError(t, err)
	require.NoError(t, proof.Verify(transcript.New("dlog-test"), &p, &k))

	badP := pedersen.Add(&p, &k)
	require.ErrorIs(t, proof.Verify(transcript.New("dlog-test"), &badP, &k), ErrVerification)
}

func TestEncodingRoundTrips(t *testing.T) {
	params := setup(t, 4)
	gens := params.GGens(4)

	v, err := pedersen.RandomVector(4)
	require.NoError(t, err)
	r, err := pedersen.RandomScalar()
	require.NoError(t, err)
	c, err := gens.Commit(v, &r)
	require.NoError(t, err)

	opening, err := ProveOpening(gens, transcript.New("rt"), v, &r)
	require.NoError(t, err)

	var buf bytes.Buffer
	opening.EncodeTo(&buf)
	var decoded OpeningProof
	rd := wire.NewReader(buf.Bytes())
	require.NoError(t, decoded.DecodeFrom(rd))
	require.NoError(t, rd.Done())
	require.NoError(t, decoded.Verify(gens, transcript.New("rt"), &c))

	r2, err := pedersen.RandomScalar()
	require.NoError(t, err)
	gens2 := params.HGens(4)
	c2, err := gens2.Commit(v, &r2)
	require.NoError(t, err)
	equality, err := ProveEquality(gens, gens2, transcript.New("rt"), v, &r, &r2)
	require.NoError(t, err)

	buf.Reset()
	equality.EncodeTo(&buf)
	var decodedEq EqualityProof
	rd = wire.NewReader(buf.Bytes())
	require.NoError(t, decodedEq.DecodeFrom(rd))
	require.NoError(t, rd.Done())
	require.NoError(t, decodedEq.Verify(gens, gens2, transcript.New("rt"), &c, &c2))
}

func TestOpeningBitFlipSoundness(t *testing.T) {
	params := setup(t, 2)
	gens := params.GGens(2)

	v, err := pedersen.RandomVector(2)
	require.NoError(t, err)
	r, err := pedersen.RandomScalar()
	require.NoError(t, err)
	c, err := gens.Commit(v, &r)
	require.NoError(t, err)

	proof, err := ProveOpening(gens, transcript.New("flip"), v, &r)
	require.NoError(t, err)

	var buf bytes.Buffer
	proof.EncodeTo(&buf)
	raw := buf.Bytes()

	for i := 0; i < len(raw); i++ {
		mutated := make([]byte, len(raw))
		copy(mutated, raw)
		mutated[i] ^= 0x01

		var decoded OpeningProof
		rd := wire.NewReader(mutated)
		if err := decoded.DecodeFrom(rd); err != nil {
			continue
		}
		if err := rd.Done(); err != nil {
			continue
		}
		require.Error(t, decoded.Verify(gens, transcript.New("flip"), &c),
			"bit flip at byte %d accepted", i)
	}
}
