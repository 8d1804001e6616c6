package svm

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/sync/errgroup"

	"github.com/iquerejeta/zkSVM/algebraic"
	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/sigma"
	"github.com/iquerejeta/zkSVM/transcript"
	"github.com/iquerejeta/zkSVM/utils"
)

// AxisProof bundles the commitment to one padded sensor axis with its three
// statistic proofs.
type AxisProof struct {
	Cx       bn254.G1Affine
	Average  algebraic.AverageProof
	Variance algebraic.VarianceProof
	Std      algebraic.StdProof
	Diff     algebraic.DiffProof
}

// Proof is the composed classification proof: one AxisProof per sensor axis,
// the public decision score, and a proof that the score is exactly the one
// the committed features produce under the public model.
type Proof struct {
	N        uint32
	Axes     []AxisProof
	Decision fr.Element
	Link     sigma.DLogProof
}

// Transcript domain labels. Every sub-proof runs on a fresh transcript seeded
// with its label and axis index, so axis workers share no transcript state.
const (
	labelAverage  = "zkSVM/average"
	labelVariance = "zkSVM/variance"
	labelStd      = "zkSVM/std"
	labelDiff     = "zkSVM/diff"
	labelDecision = "zkSVM/decision"
)

func axisTranscript(label string, axis int) *transcript.Transcript {
	t := transcript.New(label)
	t.AppendUint64("axis", uint64(axis))
	return t
}

// axisFeatures carries one axis' committed feature openings to the decision
// step.
type axisFeatures struct {
	values    [FeaturesPerAxis]fr.Element
	blindings [FeaturesPerAxis]fr.Element
}

// Prove builds a classification proof over raw signed sensor axes. All axes
// must have the same sample count; each is zero-padded to the next power of
// two and the statistics are those of the padded vector.
func Prove(params *pedersen.Params, model *Model, axes [][]int64) (*Proof, error) {
	if err := model.validate(len(axes)); err != nil {
		return nil, err
	}
	for i, axis := range axes {
		if len(axis) == 0 {
			return nil, fmt.Errorf("%w: axis %d is empty", ErrModel, i)
		}
		if len(axis) != len(axes[0]) {
			return nil, fmt.Errorf("%w: axis %d has %d samples, axis 0 has %d",
				ErrModel, i, len(axis), len(axes[0]))
		}
	}

	proof := &Proof{Axes: make([]AxisProof, len(axes))}
	features := make([]axisFeatures, len(axes))

	var g errgroup.Group
	for i := range axes {
		i := i
		g.Go(func() error {
			enc, err := utils.EncodeVector(axes[i])
			if err != nil {
				return err
			}
			x := utils.PadToPowerOfTwo(enc)

			rx, err := pedersen.RandomScalar()
			if err != nil {
				return err
			}
			cx, err := params.CommitVector(x, &rx)
			if err != nil {
				return err
			}

			avgProof, avgOpen, err := algebraic.ProveAverage(params, axisTranscript(labelAverage, i), x, &rx)
			if err != nil {
				return fmt.Errorf("axis %d: %w", i, err)
			}
			varProof, varOpen, err := algebraic.ProveVariance(params, axisTranscript(labelVariance, i), x, &rx, &avgOpen.SumBlinding)
			if err != nil {
				return fmt.Errorf("axis %d: %w", i, err)
			}
			stdProof, stdOpen, err := algebraic.ProveStd(params, axisTranscript(labelStd, i), varOpen)
			if err != nil {
				return fmt.Errorf("axis %d: %w", i, err)
			}
			diffProof, err := algebraic.ProveDiff(params, axisTranscript(labelDiff, i), x, &rx)
			if err != nil {
				return fmt.Errorf("axis %d: %w", i, err)
			}

			proof.Axes[i] = AxisProof{Cx: cx, Average: *avgProof, Variance: *varProof, Std: *stdProof, Diff: *diffProof}
			features[i] = axisFeatures{
				values:    [FeaturesPerAxis]fr.Element{avgOpen.Avg, varOpen.Variance, stdOpen.Std},
				blindings: [FeaturesPerAxis]fr.Element{avgOpen.AvgBlinding, varOpen.VarBlinding, stdOpen.StdBlinding},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	proof.N = uint32(paddedLen(len(axes[0])))

	// decision = sum w_i*feature_i - threshold. The matching blinding
	// combination opens C_lin - decision*G under the blinding base alone,
	// which the Schnorr proof below demonstrates.
	var decision, blinding, tmp fr.Element
	for i := range features {
		for j := 0; j < FeaturesPerAxis; j++ {
			w := utils.EncodeSigned(model.Weights[i*FeaturesPerAxis+j])
			tmp.Mul(&w, &features[i].values[j])
			decision.Add(&decision, &tmp)
			tmp.Mul(&w, &features[i].blindings[j])
			blinding.Add(&blinding, &tmp)
		}
	}
	threshold := utils.EncodeSigned(model.Threshold)
	decision.Sub(&decision, &threshold)
	proof.Decision = decision

	t := decisionTranscript(model, proof)
	link, err := sigma.ProveDLog(t, &blinding, &params.H)
	if err != nil {
		return nil, err
	}
	proof.Link = *link
	return proof, nil
}

// decisionTranscript binds the model, the padded length, the decision and
// every feature commitment before the decision link proof.
func decisionTranscript(model *Model, proof *Proof) *transcript.Transcript {
	t := transcript.New(labelDecision)
	t.AppendUint64("n", uint64(proof.N))
	for _, w := range model.Weights {
		s := utils.EncodeSigned(w)
		t.AppendScalar("weight", &s)
	}
	threshold := utils.EncodeSigned(model.Threshold)
	t.AppendScalar("threshold", &threshold)
	for i := range proof.Axes {
		t.AppendPoint("avg", &proof.Axes[i].Average.CAvg)
		t.AppendPoint("var", &proof.Axes[i].Variance.CVar)
		t.AppendPoint("std", &proof.Axes[i].Std.CStd)
	}
	t.AppendScalar("decision", &proof.Decision)
	return t
}

func paddedLen(n int) int {
	size := 1
	for size < n {
		size *= 2
	}
	return size
}
