package algebraic

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/transcript"
	"github.com/iquerejeta/zkSVM/wire"
)

func intsVector(vals ...int64) []fr.Element {
	out := make([]fr.Element, len(vals))
	for i, v := range vals {
		if v >= 0 {
			out[i].SetUint64(uint64(v))
		} else {
			out[i].SetUint64(uint64(-v))
			out[i].Neg(&out[i])
		}
	}
	return out
}

func TestAverageRoundTrip(t *testing.T) {
	params, err := pedersen.Setup(4)
	require.NoError(t, err)

	x := intsVector(2, 4, 6, 8)
	rx, err := pedersen.RandomScalar()
	require.NoError(t, err)
	cx, err := params.CommitVector(x, &rx)
	require.NoError(t, err)

	proof, open, err := ProveAverage(params, transcript.New("avg-test"), x, &rx)
	require.NoError(t, err)
	require.NoError(t, proof.Verify(params, transcript.New("avg-test"), &cx, 4))

	// The sum commitment opens to 20, the average commitment to 5.
	var sum, avg fr.Element
	sum.SetUint64(20)
	avg.SetUint64(5)
	require.True(t, sum.Equal(&open.Sum))
	require.True(t, avg.Equal(&open.Avg))
	require.True(t, params.OpenScalar(&proof.CSum, &sum, &open.SumBlinding))
	require.True(t, params.OpenScalar(&proof.CAvg, &avg, &open.AvgBlinding))
}

func TestAverageRejectsWrongCommitment(t *testing.T) {
	params, err := pedersen.Setup(4)
	require.NoError(t, err)

	x := intsVector(2, 4, 6, 8)
	rx, err := pedersen.RandomScalar()
	require.NoError(t, err)
	cx, err := params.CommitVector(x, &rx)
	require.NoError(t, err)

	proof, _, err := ProveAverage(params, transcript.New("avg-test"), x, &rx)
	require.NoError(t, err)

	bad := pedersen.Add(&cx, &params.G)
	require.Error(t, proof.Verify(params, transcript.New("avg-test"), &bad, 4))
}

func TestVarianceRoundTrip(t *testing.T) {
	params, err := pedersen.Setup(4)
	require.NoError(t, err)

	// Variance 1, standard deviation 1.
	x := intsVector(1, 3, 1, 3)
	rx, err := pedersen.RandomScalar()
	require.NoError(t, err)
	cx, err := params.CommitVector(x, &rx)
	require.NoError(t, err)

	avgProof, avgOpen, err := ProveAverage(params, transcript.New("avg"), x, &rx)
	require.NoError(t, err)
	require.NoError(t, avgProof.Verify(params, transcript.New("avg"), &cx, 4))

	varProof, varOpen, err := ProveVariance(params, transcript.New("var"), x, &rx, &avgOpen.SumBlinding)
	require.NoError(t, err)
	require.NoError(t, varProof.Verify(params, transcript.New("var"), &cx, &avgProof.CSum, 4))

	stdProof, stdOpen, err := ProveStd(params, transcript.New("std"), varOpen)
	require.NoError(t, err)
	require.NoError(t, stdProof.Verify(params, transcript.New("std"), &varProof.CVar))

	// std^2 == variance in the committed openings.
	var sq fr.Element
	sq.Square(&stdOpen.Std)
	require.True(t, sq.Equal(&varOpen.Variance))
}

func TestVarianceSpecVector(t *testing.T) {
	params, err := pedersen.Setup(4)
	require.NoError(t, err)

	// Population variance of [2, 4, 6, 8] is 5.
	x := intsVector(2, 4, 6, 8)
	rx, err := pedersen.RandomScalar()
	require.NoError(t, err)
	cx, err := params.CommitVector(x, &rx)
	require.NoError(t, err)

	avgProof, avgOpen, err := ProveAverage(params, transcript.New("avg"), x, &rx)
	require.NoError(t, err)

	varProof, varOpen, err := ProveVariance(params, transcript.New("var"), x, &rx, &avgOpen.SumBlinding)
	require.NoError(t, err)
	require.NoError(t, varProof.Verify(params, transcript.New("var"), &cx, &avgProof.CSum, 4))

	var five fr.Element
	five.SetUint64(5)
	require.True(t, five.Equal(&varOpen.Variance))
	require.True(t, params.OpenScalar(&varProof.CVar, &five, &varOpen.VarBlinding))
}

func TestVarianceRejectsForeignSum(t *testing.T) {
	params, err := pedersen.Setup(4)
	require.NoError(t, err)

	x := intsVector(1, 3, 1, 3)
	rx, err := pedersen.RandomScalar()
	require.NoError(t, err)
	cx, err := params.CommitVector(x, &rx)
	require.NoError(t, err)

	avgProof, avgOpen, err := ProveAverage(params, transcript.New("avg"), x, &rx)
	require.NoError(t, err)

	varProof, _, err := ProveVariance(params, transcript.New("var"), x, &rx, &avgOpen.SumBlinding)
	require.NoError(t, err)

	// A sum commitment the link proofs were not built for must be rejected.
	bad := pedersen.Add(&avgProof.CSum, &params.G)
	require.Error(t, varProof.Verify(params, transcript.New("var"), &cx, &bad, 4))
}

func TestDiffVector(t *testing.T) {
	got := DiffVector(intsVector(2, 4, 6, 8))
	want := intsVector(-2, -2, -2, 8)
	require.Equal(t, len(want), len(got))
	for i := range want {
		require.True(t, got[i].Equal(&want[i]), "entry %d", i)
	}
}

func TestDiffRoundTrip(t *testing.T) {
	params, err := pedersen.Setup(4)
	require.NoError(t, err)

	x := intsVector(2, 4, 6, 8)
	rx, err := pedersen.RandomScalar()
	require.NoError(t, err)
	cx, err := params.CommitVector(x, &rx)
	require.NoError(t, err)

	proof, err := ProveDiff(params, transcript.New("diff-test"), x, &rx)
	require.NoError(t, err)
	require.NoError(t, proof.Verify(params, transcript.New("diff-test"), &cx, 4))
}

func TestDiffRejectsTamperedDifference(t *testing.T) {
	params, err := pedersen.Setup(4)
	require.NoError(t, err)

	x := intsVector(2, 4, 6, 8)
	rx, err := pedersen.RandomScalar()
	require.NoError(t, err)
	cx, err := params.CommitVector(x, &rx)
	require.NoError(t, err)

	proof, err := ProveDiff(params, transcript.New("diff-test"), x, &rx)
	require.NoError(t, err)

	proof.Cd = pedersen.Add(&proof.Cd, &params.G)
	require.Error(t, proof.Verify(params, transcript.New("diff-test"), &cx, 4))
}

func TestDiffDegenerateLength(t *testing.T) {
	params, err := pedersen.Setup(1)
	require.NoError(t, err)

	x := intsVector(7)
	rx, err := pedersen.RandomScalar()
	require.NoError(t, err)
	cx, err := params.CommitVector(x, &rx)
	require.NoError(t, err)

	proof, err := ProveDiff(params, transcript.New("diff-1"), x, &rx)
	require.NoError(t, err)
	require.NoError(t, proof.Verify(params, transcript.New("diff-1"), &cx, 1))
}

func TestEncodingRoundTrips(t *testing.T) {
	params, err := pedersen.Setup(4)
	require.NoError(t, err)

	x := intsVector(1, 3, 1, 3)
	rx, err := pedersen.RandomScalar()
	require.NoError(t, err)
	cx, err := params.CommitVector(x, &rx)
	require.NoError(t, err)

	avgProof, avgOpen, err := ProveAverage(params, transcript.New("avg"), x, &rx)
	require.NoError(t, err)
	varProof, varOpen, err := ProveVariance(params, transcript.New("var"), x, &rx, &avgOpen.SumBlinding)
	require.NoError(t, err)
	stdProof, _, err := ProveStd(params, transcript.New("std"), varOpen)
	require.NoError(t, err)
	diffProof, err := ProveDiff(params, transcript.New("diff"), x, &rx)
	require.NoError(t, err)

	var buf bytes.Buffer
	avgProof.EncodeTo(&buf)
	var avgDecoded AverageProof
	rd := wire.NewReader(buf.Bytes())
	require.NoError(t, avgDecoded.DecodeFrom(rd))
	require.NoError(t, rd.Done())
	require.NoError(t, avgDecoded.Verify(params, transcript.New("avg"), &cx, 4))

	buf.Reset()
	varProof.EncodeTo(&buf)
	var varDecoded VarianceProof
	rd = wire.NewReader(buf.Bytes())
	require.NoError(t, varDecoded.DecodeFrom(rd))
	require.NoError(t, rd.Done())
	require.NoError(t, varDecoded.Verify(params, transcript.New("var"), &cx, &avgProof.CSum, 4))

	buf.Reset()
	stdProof.EncodeTo(&buf)
	var stdDecoded StdProof
	rd = wire.NewReader(buf.Bytes())
	require.NoError(t, stdDecoded.DecodeFrom(rd))
	require.NoError(t, rd.Done())
	require.NoError(t, stdDecoded.Verify(params, transcript.New("std"), &varProof.CVar))

	buf.Reset()
	diffProof.EncodeTo(&buf)
	var diffDecoded DiffProof
	rd = wire.NewReader(buf.Bytes())
	require.NoError(t, diffDecoded.DecodeFrom(rd))
	require.NoError(t, rd.Done())
	require.NoError(t, diffDecoded.Verify(params, transcript.New("diff"), &cx, 4))
}
