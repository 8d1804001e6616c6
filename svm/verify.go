package svm

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/utils"
	"github.com/iquerejeta/zkSVM/wire"
)

// Verify checks a composed classification proof against the public model.
// All sub-proofs must pass; on any failure the result is the opaque
// ErrVerification, with the failing stage logged at debug level only.
func Verify(params *pedersen.Params, model *Model, proof *Proof) error {
	if err := model.validate(len(proof.Axes)); err != nil {
		return err
	}
	n := int(proof.N)
	if n <= 0 || n > params.Capacity() {
		log.Debug().Int("n", n).Msg("classification proof with invalid length")
		return ErrVerification
	}

	var g errgroup.Group
	for i := range proof.Axes {
		i := i
		g.Go(func() error {
			axis := &proof.Axes[i]
			if err := axis.Average.Verify(params, axisTranscript(labelAverage, i), &axis.Cx, n); err != nil {
				log.Debug().Err(err).Int("axis", i).Msg("average proof rejected")
				return ErrVerification
			}
			if err := axis.Variance.Verify(params, axisTranscript(labelVariance, i), &axis.Cx, &axis.Average.CSum, n); err != nil {
				log.Debug().Err(err).Int("axis", i).Msg("variance proof rejected")
				return ErrVerification
			}
			if err := axis.Std.Verify(params, axisTranscript(labelStd, i), &axis.Variance.CVar); err != nil {
				log.Debug().Err(err).Int("axis", i).Msg("standard deviation proof rejected")
				return ErrVerification
			}
			if err := axis.Diff.Verify(params, axisTranscript(labelDiff, i), &axis.Cx, n); err != nil {
				log.Debug().Err(err).Int("axis", i).Msg("difference proof rejected")
				return ErrVerification
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ErrVerification
	}

	// C_lin - decision*G must open under the blinding base alone; the Schnorr
	// proof on it pins the public decision to the committed features.
	cLin := linearCombination(params, model, proof)
	decisionG := pedersen.Scale(&params.G, &proof.Decision)
	point := pedersen.Sub(&cLin, &decisionG)
	if err := proof.Link.Verify(decisionTranscript(model, proof), &point, &params.H); err != nil {
		log.Debug().Err(err).Msg("decision link proof rejected")
		return ErrVerification
	}
	return nil
}

// linearCombination computes sum w_i*C_feature_i - threshold*G over the
// feature commitments carried by the axis proofs.
func linearCombination(params *pedersen.Params, model *Model, proof *Proof) bn254.G1Affine {
	var acc bn254.G1Jac
	for i := range proof.Axes {
		feats := [FeaturesPerAxis]*bn254.G1Affine{
			&proof.Axes[i].Average.CAvg,
			&proof.Axes[i].Variance.CVar,
			&proof.Axes[i].Std.CStd,
		}
		for j, c := range feats {
			w := utils.EncodeSigned(model.Weights[i*FeaturesPerAxis+j])
			scaled := pedersen.Scale(c, &w)
			acc.AddMixed(&scaled)
		}
	}
	threshold := utils.EncodeSigned(model.Threshold)
	threshold.Neg(&threshold)
	scaled := pedersen.Scale(&params.G, &threshold)
	acc.AddMixed(&scaled)

	var out bn254.G1Affine
	out.FromJacobian(&acc)
	return out
}

// VerifyBytes is the total verification entry point for serialized proofs:
// it never panics and returns false on anything malformed or invalid.
func VerifyBytes(params *pedersen.Params, model *Model, raw []byte) bool {
	var proof Proof
	r := wire.NewReader(raw)
	if err := proof.DecodeFrom(r); err != nil {
		log.Debug().Err(err).Msg("classification proof failed to decode")
		return false
	}
	if err := r.Done(); err != nil {
		log.Debug().Err(err).Msg("classification proof has trailing bytes")
		return false
	}
	return Verify(params, model, &proof) == nil
}
