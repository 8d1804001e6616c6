// Package svm composes the statistic proofs into a zero-knowledge proof of
// classification: a prover shows that a public linear SVM applied to hidden
// per-axis statistics (average, variance, standard deviation) of hidden
// sensor traces yields a public decision score, without revealing the traces
// or the statistics.
package svm

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/iquerejeta/zkSVM/utils"
)

var (
	// ErrVerification is the only error verification reports. The failing
	// stage is logged at debug level, never surfaced: a distinguishable
	// rejection reason is information about the hidden witness.
	ErrVerification = errors.New("svm: verification failed")
	// ErrModel reports a model/input shape mismatch.
	ErrModel = errors.New("svm: invalid model or input shape")
)

// FeaturesPerAxis is the number of committed statistics the classifier
// consumes per sensor axis: average, variance, standard deviation.
const FeaturesPerAxis = 3

// Model is the public linear classifier: one weight per committed feature and
// a threshold. The decision score is sum w_i*feature_i - threshold.
type Model struct {
	Weights   []int64
	Threshold int64
}

// Axes returns the number of sensor axes the model covers.
func (m *Model) Axes() int { return len(m.Weights) / FeaturesPerAxis }

func (m *Model) validate(axes int) error {
	if axes == 0 {
		return fmt.Errorf("%w: no axes", ErrModel)
	}
	if len(m.Weights) != axes*FeaturesPerAxis {
		return fmt.Errorf("%w: %d weights for %d axes", ErrModel, len(m.Weights), axes)
	}
	return nil
}

// Classify interprets a decision score: positive scores classify as positive.
// The score is decoded through its centered signed representative.
func (m *Model) Classify(decision *fr.Element) (bool, error) {
	score, err := utils.DecodeSigned(decision)
	if err != nil {
		return false, err
	}
	return score > 0, nil
}
